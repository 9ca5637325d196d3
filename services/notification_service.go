package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/CampusVoice/campus-voice-backend/config"
	"github.com/CampusVoice/campus-voice-backend/logger"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"
)

const submissionEmailTemplate = `
<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>New feedback submitted</h2>
  <p><strong>Category:</strong> {{.Category}}</p>
  <p><strong>From:</strong> {{.Name}}{{if .Faculty}} ({{.Faculty}}){{end}}</p>
  <p style="white-space: pre-wrap;">{{.Body}}</p>
  {{if .ProposedSolution}}<p><strong>Proposed solution:</strong> {{.ProposedSolution}}</p>{{end}}
  {{if .HasAttachment}}<p>An attachment was included. View it in the dashboard.</p>{{end}}
  <p><a href="{{.DashboardURL}}">Open the moderation dashboard</a></p>
</body>
</html>`

type notificationMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// emailSender is the slice of the Resend client used, extracted for tests.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// NotificationService emails moderators when new feedback arrives. When
// disabled it is a no-op, so callers never need to branch on configuration.
type NotificationService struct {
	config       *config.EmailConfig
	sender       emailSender
	dashboardURL string
	metrics      *notificationMetrics
}

func NewNotificationService(cfg *config.EmailConfig, dashboardURL string) *NotificationService {
	return NewNotificationServiceWithRegistry(cfg, dashboardURL, prometheus.DefaultRegisterer)
}

func NewNotificationServiceWithRegistry(cfg *config.EmailConfig, dashboardURL string, reg prometheus.Registerer) *NotificationService {
	logger.GetLogger().Infow("Initializing notification service",
		"enabled", cfg.Enabled, "from", cfg.FromAddress)

	metrics := &notificationMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "campusvoice_notification_send_duration_seconds",
			Help:    "Time taken to send moderator notification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusvoice_notification_errors_total",
			Help: "Total number of notification sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusvoice_notifications_sent_total",
			Help: "Total number of moderator notifications sent",
		}),
	}
	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	svc := &NotificationService{
		config:       cfg,
		dashboardURL: dashboardURL,
		metrics:      metrics,
	}
	if cfg.Enabled {
		svc.sender = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return svc
}

// NotifySubmission sends the moderator email for a stored record. Failures
// are logged and counted but never propagated: notification is best-effort
// and must not affect the submitter's result.
func (s *NotificationService) NotifySubmission(ctx context.Context, fb *types.Feedback) {
	if !s.config.Enabled || s.sender == nil {
		return
	}

	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	tmpl, err := template.New("submission").Parse(submissionEmailTemplate)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to parse notification template", "error", err)
		return
	}

	var htmlContent bytes.Buffer
	err = tmpl.Execute(&htmlContent, map[string]any{
		"Category":         fb.Category,
		"Name":             fb.Name,
		"Faculty":          fb.Faculty,
		"Body":             fb.Body,
		"ProposedSolution": fb.ProposedSolution,
		"HasAttachment":    fb.Attachment != "",
		"DashboardURL":     s.dashboardURL,
	})
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to execute notification template", "error", err)
		return
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{s.config.ModeratorTo},
		Subject: fmt.Sprintf("New feedback: %s", fb.Category),
		Html:    htmlContent.String(),
	}

	if _, err := s.sender.SendWithContext(ctx, params); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send moderator notification",
			"error", err,
			"feedbackId", fb.ID)
		return
	}

	s.metrics.sentCount.Inc()
	log.Infow("Moderator notification sent", "feedbackId", fb.ID)
}
