package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kobbyjust/feedback-ingest/logger"
	"github.com/kobbyjust/feedback-ingest/types"
)

const feedbackEmailSubject = "New Feedback Received"

// Notifier sends the admin notification for one submission.
type Notifier interface {
	SendFeedbackNotification(ctx context.Context, record *types.FeedbackRecord) error
}

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// NewEmailMetrics registers and returns the notification metrics.
func NewEmailMetrics(reg prometheus.Registerer) *EmailMetrics {
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedback_email_send_duration_seconds",
			Help:    "Time taken to send admin notification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_email_errors_total",
			Help: "Total number of notification sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_emails_sent_total",
			Help: "Total number of notifications sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return metrics
}

// SESSendAPI is the subset of the SES client used by the notifier.
type SESSendAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESEmailService sends the admin notification through Amazon SES.
// Sender and recipient are both the configured admin address.
type SESEmailService struct {
	client       SESSendAPI
	adminAddress string
	metrics      *EmailMetrics
}

// NewSESEmailService creates an SES-backed notifier.
func NewSESEmailService(client SESSendAPI, adminAddress string) *SESEmailService {
	return NewSESEmailServiceWithRegistry(client, adminAddress, prometheus.DefaultRegisterer)
}

func NewSESEmailServiceWithRegistry(client SESSendAPI, adminAddress string, reg prometheus.Registerer) *SESEmailService {
	logger.GetLogger().Infow("Initializing SES email service",
		"admin", logger.MaskEmail(adminAddress))
	return &SESEmailService{
		client:       client,
		adminAddress: adminAddress,
		metrics:      NewEmailMetrics(reg),
	}
}

// SendFeedbackNotification composes the HTML notification and sends it
// admin-to-admin through SES.
func (s *SESEmailService) SendFeedbackNotification(ctx context.Context, record *types.FeedbackRecord) error {
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

	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.adminAddress),
		Destination: &sestypes.Destination{
			ToAddresses: []string{s.adminAddress},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data: aws.String(feedbackEmailSubject),
			},
			Body: &sestypes.Body{
				Html: &sestypes.Content{
					Data: aws.String(htmlBody),
				},
			},
		},
	})
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send notification email",
			"error", err,
			"admin", logger.MaskEmail(s.adminAddress))
		return fmt.Errorf("ses send email failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Notification email sent",
		"admin", logger.MaskEmail(s.adminAddress),
		"messageId", aws.ToString(out.MessageId))

	return nil
}

// feedbackEmailData is the template payload. Message is pre-rendered HTML
// because submitted newlines become <br> tags after escaping.
type feedbackEmailData struct {
	Name          string
	Email         string
	Message       template.HTML
	AttachmentURL string
}

// RenderFeedbackEmail produces the HTML notification body for a record.
// Caller-supplied values are HTML-escaped; newlines in the message render as
// line breaks, and the attachment block is present only when a link exists.
func RenderFeedbackEmail(record *types.FeedbackRecord) (string, error) {
	tmpl, err := template.New("feedback").Parse(feedbackEmailTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	escaped := template.HTMLEscapeString(record.Message)
	data := feedbackEmailData{
		Name:    record.Name,
		Email:   record.Email,
		Message: template.HTML(strings.ReplaceAll(escaped, "\n", "<br>")),
	}
	if record.AttachmentLink != nil {
		data.AttachmentURL = *record.AttachmentLink
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return htmlContent.String(), nil
}

// Template constants
const feedbackEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;
            background-color: #f1f5f9;
            padding: 40px 0;
        }
        .container {
            max-width: 600px;
            margin: auto;
            background-color: #ffffff;
            border-radius: 10px;
            box-shadow: 0 4px 12px rgba(0, 0, 0, 0.1);
            padding: 30px;
        }
        h2 {
            color: #1d4ed8;
            border-bottom: 2px solid #e2e8f0;
            padding-bottom: 10px;
            margin-bottom: 20px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 20px;
        }
        td {
            padding: 12px 10px;
            vertical-align: top;
            border-bottom: 1px solid #e2e8f0;
        }
        td.label {
            font-weight: bold;
            background-color: #f8fafc;
            width: 30%;
            color: #475569;
        }
        .attachment-link {
            margin-top: 20px;
            display: block;
            color: #2563eb;
            font-weight: bold;
            text-decoration: none;
        }
        .footer {
            margin-top: 30px;
            font-size: 12px;
            color: #94a3b8;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>&#128233; New Feedback Received</h2>
        <table>
            <tr>
                <td class="label">Name</td>
                <td>{{.Name}}</td>
            </tr>
            <tr>
                <td class="label">Email</td>
                <td>{{.Email}}</td>
            </tr>
            <tr>
                <td class="label">Message</td>
                <td>{{.Message}}</td>
            </tr>
            {{if .AttachmentURL}}
            <tr>
                <td class="label">Attachment</td>
                <td><a href="{{.AttachmentURL}}" target="_blank" class="attachment-link">&#128206; View PDF Attachment</a></td>
            </tr>
            {{end}}
        </table>
        <div class="footer">
            This email was automatically sent from your feedback form.
        </div>
    </div>
</body>
</html>`
