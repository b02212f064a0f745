package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"

	"github.com/kobbyjust/feedback-ingest/logger"
	"github.com/kobbyjust/feedback-ingest/types"
)

// ResendEmailService sends the admin notification through Resend. Selected
// with EMAIL_PROVIDER=resend for deployments without SES sending access.
type ResendEmailService struct {
	client       *resend.Client
	adminAddress string
	metrics      *EmailMetrics
}

// NewResendEmailService creates a Resend-backed notifier.
func NewResendEmailService(apiKey, adminAddress string) *ResendEmailService {
	return NewResendEmailServiceWithRegistry(apiKey, adminAddress, prometheus.DefaultRegisterer)
}

func NewResendEmailServiceWithRegistry(apiKey, adminAddress string, reg prometheus.Registerer) *ResendEmailService {
	logger.GetLogger().Infow("Initializing Resend email service",
		"admin", logger.MaskEmail(adminAddress))
	return &ResendEmailService{
		client:       resend.NewClient(apiKey),
		adminAddress: adminAddress,
		metrics:      NewEmailMetrics(reg),
	}
}

// SendFeedbackNotification composes the HTML notification and sends it
// admin-to-admin through Resend.
func (s *ResendEmailService) SendFeedbackNotification(ctx context.Context, record *types.FeedbackRecord) error {
	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	htmlBody, err := RenderFeedbackEmail(record)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to render notification body", "error", err)
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.adminAddress,
		To:      []string{s.adminAddress},
		Subject: feedbackEmailSubject,
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send notification email",
			"error", err,
			"admin", logger.MaskEmail(s.adminAddress))
		return fmt.Errorf("resend send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Notification email sent",
		"admin", logger.MaskEmail(s.adminAddress),
		"messageId", sent.Id)

	return nil
}
