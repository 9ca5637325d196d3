package services

import (
	"context"
	"strings"
	"sync"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/CampusVoice/campus-voice-backend/internal/attachment"
	"github.com/CampusVoice/campus-voice-backend/internal/store"
	"github.com/CampusVoice/campus-voice-backend/internal/store/postgres"
	"github.com/CampusVoice/campus-voice-backend/logger"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// SubmissionNotifier is notified after a record is durably stored.
type SubmissionNotifier interface {
	NotifySubmission(ctx context.Context, fb *types.Feedback)
}

type feedbackMetrics struct {
	submissionsTotal prometheus.Counter
	deletionsTotal   prometheus.Counter
	rejectionsTotal  prometheus.Counter
}

// FeedbackService owns the feedback record lifecycle: validation, persistence,
// the moderator-facing cached listing, and removal.
type FeedbackService struct {
	store    store.FeedbackStore
	notifier SubmissionNotifier
	metrics  *feedbackMetrics
	log      *zap.SugaredLogger

	mu     sync.RWMutex
	cached []*types.Feedback
	loaded bool
}

func NewFeedbackService(s store.FeedbackStore, notifier SubmissionNotifier) *FeedbackService {
	return NewFeedbackServiceWithRegistry(s, notifier, prometheus.DefaultRegisterer)
}

func NewFeedbackServiceWithRegistry(s store.FeedbackStore, notifier SubmissionNotifier, reg prometheus.Registerer) *FeedbackService {
	metrics := &feedbackMetrics{
		submissionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusvoice_feedback_submissions_total",
			Help: "Total number of feedback records stored",
		}),
		deletionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusvoice_feedback_deletions_total",
			Help: "Total number of feedback records removed by moderators",
		}),
		rejectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusvoice_feedback_rejections_total",
			Help: "Total number of submissions rejected by validation",
		}),
	}
	reg.MustRegister(metrics.submissionsTotal)
	reg.MustRegister(metrics.deletionsTotal)
	reg.MustRegister(metrics.rejectionsTotal)

	return &FeedbackService{
		store:    s,
		notifier: notifier,
		metrics:  metrics,
		log:      logger.GetLogger(),
	}
}

// Submit validates a submission and persists it. The caller's input is never
// mutated: on any failure the submission comes back unchanged for a retry.
// The returned record carries the store-assigned id and creation timestamp.
func (s *FeedbackService) Submit(ctx context.Context, create types.FeedbackCreate) (*types.Feedback, error) {
	if err := create.Validate(); err != nil {
		s.metrics.rejectionsTotal.Inc()
		return nil, err
	}

	if strings.TrimSpace(create.Attachment) != "" {
		if err := attachment.Validate(create.Attachment); err != nil {
			s.metrics.rejectionsTotal.Inc()
			return nil, err
		}
	}

	fb := create.ToFeedback(uuid.NewString())

	inserted, err := s.store.Insert(ctx, fb)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	s.metrics.submissionsTotal.Inc()
	s.log.Infow("Feedback stored",
		"id", inserted.ID,
		"category", inserted.Category,
		"hasAttachment", inserted.Attachment != "")

	// Keep the moderator cache coherent without forcing a reload.
	s.mu.Lock()
	if s.loaded {
		s.cached = append([]*types.Feedback{inserted}, s.cached...)
	}
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.NotifySubmission(ctx, inserted)
	}

	return inserted, nil
}

// List returns the full collection ordered newest first. The first call loads
// from the store; later calls serve the cached copy unless reload is set.
func (s *FeedbackService) List(ctx context.Context, reload bool) ([]*types.Feedback, error) {
	s.mu.RLock()
	if s.loaded && !reload {
		out := make([]*types.Feedback, len(s.cached))
		copy(out, s.cached)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	s.mu.Lock()
	s.cached = records
	s.loaded = true
	out := make([]*types.Feedback, len(s.cached))
	copy(out, s.cached)
	s.mu.Unlock()

	return out, nil
}

// Remove deletes a record by id. The cached listing is updated by id match
// against whatever is currently cached, so a removal applied after a reload
// can never bring the record back. Unknown ids are reported, not ignored.
func (s *FeedbackService) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if postgres.IsNotFound(err) {
			return apperrors.RecordNotFound(id)
		}
		return apperrors.NewDatabaseError(err)
	}

	s.mu.Lock()
	if s.loaded {
		kept := s.cached[:0]
		for _, fb := range s.cached {
			if fb.ID != id {
				kept = append(kept, fb)
			}
		}
		s.cached = kept
	}
	s.mu.Unlock()

	s.metrics.deletionsTotal.Inc()
	s.log.Infow("Feedback removed", "id", id)
	return nil
}
