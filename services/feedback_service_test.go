package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/CampusVoice/campus-voice-backend/internal/store"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeedbackStore is an in-memory store.FeedbackStore for service tests.
type fakeFeedbackStore struct {
	records   []*types.Feedback
	insertErr error
	listErr   error
	deleteErr error
	listCalls int
}

func (f *fakeFeedbackStore) Insert(_ context.Context, fb *types.Feedback) (*types.Feedback, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	stored := *fb
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	f.records = append([]*types.Feedback{&stored}, f.records...)
	return &stored, nil
}

func (f *fakeFeedbackStore) List(_ context.Context) ([]*types.Feedback, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*types.Feedback, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeFeedbackStore) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, fb := range f.records {
		if fb.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type recordingNotifier struct {
	notified []*types.Feedback
}

func (r *recordingNotifier) NotifySubmission(_ context.Context, fb *types.Feedback) {
	r.notified = append(r.notified, fb)
}

func newTestFeedbackService(t *testing.T, s store.FeedbackStore, n SubmissionNotifier) *FeedbackService {
	t.Helper()
	return NewFeedbackServiceWithRegistry(s, n, prometheus.NewRegistry())
}

func validCreate() types.FeedbackCreate {
	return types.FeedbackCreate{
		Name:     "Alice",
		Category: "facility",
		Body:     "The library wifi drops every afternoon.",
	}
}

func TestFeedbackService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid submission and notifies", func(t *testing.T) {
		fake := &fakeFeedbackStore{}
		notifier := &recordingNotifier{}
		svc := newTestFeedbackService(t, fake, notifier)

		fb, err := svc.Submit(ctx, validCreate())
		require.NoError(t, err)
		assert.NotEmpty(t, fb.ID)
		assert.False(t, fb.CreatedAt.IsZero())
		assert.NotEmpty(t, fb.ClientRef)
		require.Len(t, notifier.notified, 1)
		assert.Equal(t, fb.ID, notifier.notified[0].ID)
	})

	t.Run("rejects missing required fields without touching the store", func(t *testing.T) {
		fake := &fakeFeedbackStore{}
		svc := newTestFeedbackService(t, fake, nil)

		create := validCreate()
		create.Body = "   "

		_, err := svc.Submit(ctx, create)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ValidationError, appErr.Type)
		assert.Empty(t, fake.records)
	})

	t.Run("rejects a malformed attachment", func(t *testing.T) {
		svc := newTestFeedbackService(t, &fakeFeedbackStore{}, nil)

		create := validCreate()
		create.Attachment = "data:image/png;base64,not!!!base64"

		_, err := svc.Submit(ctx, create)
		require.Error(t, err)
	})

	t.Run("store failure surfaces as a database error, input preserved", func(t *testing.T) {
		fake := &fakeFeedbackStore{insertErr: errors.New("connection refused")}
		svc := newTestFeedbackService(t, fake, nil)

		create := validCreate()
		_, err := svc.Submit(ctx, create)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.DatabaseError, appErr.Type)
		// The rejected submission is unchanged and can be retried as-is.
		assert.Equal(t, validCreate(), create)
	})

	t.Run("unknown category is accepted", func(t *testing.T) {
		fake := &fakeFeedbackStore{}
		svc := newTestFeedbackService(t, fake, nil)

		create := validCreate()
		create.Category = "parking"

		fb, err := svc.Submit(ctx, create)
		require.NoError(t, err)
		assert.Equal(t, types.Category("parking"), fb.Category)
	})
}

func TestFeedbackService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("first call loads, later calls serve the cache", func(t *testing.T) {
		fake := &fakeFeedbackStore{}
		svc := newTestFeedbackService(t, fake, nil)
		_, err := svc.Submit(ctx, validCreate())
		require.NoError(t, err)

		first, err := svc.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, first, 1)
		assert.Equal(t, 1, fake.listCalls)

		second, err := svc.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, second, 1)
		assert.Equal(t, 1, fake.listCalls)

		_, err = svc.List(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 2, fake.listCalls)
	})

	t.Run("submissions after a load appear without a reload", func(t *testing.T) {
		fake := &fakeFeedbackStore{}
		svc := newTestFeedbackService(t, fake, nil)

		_, err := svc.List(ctx, false)
		require.NoError(t, err)

		fb, err := svc.Submit(ctx, validCreate())
		require.NoError(t, err)

		listed, err := svc.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, fb.ID, listed[0].ID)
		assert.Equal(t, 1, fake.listCalls)
	})

	t.Run("store failure surfaces as a database error", func(t *testing.T) {
		fake := &fakeFeedbackStore{listErr: errors.New("connection refused")}
		svc := newTestFeedbackService(t, fake, nil)

		_, err := svc.List(ctx, false)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.DatabaseError, appErr.Type)
	})
}

func TestFeedbackService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes from store and cached listing", func(t *testing.T) {
		fake := &fakeFeedbackStore{}
		svc := newTestFeedbackService(t, fake, nil)

		keep, err := svc.Submit(ctx, validCreate())
		require.NoError(t, err)
		doomed, err := svc.Submit(ctx, validCreate())
		require.NoError(t, err)

		_, err = svc.List(ctx, false)
		require.NoError(t, err)

		require.NoError(t, svc.Remove(ctx, doomed.ID))

		listed, err := svc.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, keep.ID, listed[0].ID)
	})

	t.Run("unknown id is a not-found error", func(t *testing.T) {
		svc := newTestFeedbackService(t, &fakeFeedbackStore{}, nil)

		err := svc.Remove(ctx, uuid.NewString())
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.NotFoundError, appErr.Type)
	})

	t.Run("removal applied after reload cannot resurrect the record", func(t *testing.T) {
		fake := &fakeFeedbackStore{}
		svc := newTestFeedbackService(t, fake, nil)

		doomed, err := svc.Submit(ctx, validCreate())
		require.NoError(t, err)
		_, err = svc.List(ctx, false)
		require.NoError(t, err)

		// A reload lands between the delete decision and its application.
		_, err = svc.List(ctx, true)
		require.NoError(t, err)

		require.NoError(t, svc.Remove(ctx, doomed.ID))

		listed, err := svc.List(ctx, false)
		require.NoError(t, err)
		for _, fb := range listed {
			assert.NotEqual(t, doomed.ID, fb.ID)
		}
	})

	t.Run("store failure surfaces as a database error", func(t *testing.T) {
		fake := &fakeFeedbackStore{deleteErr: errors.New("connection refused")}
		svc := newTestFeedbackService(t, fake, nil)

		err := svc.Remove(ctx, uuid.NewString())
		require.Error(t, err)
		assert.False(t, strings.Contains(err.Error(), "not found"))
	})
}
