// Package notify handles post-booking collaborators: the intake form email
// and scheduled appointment reminders. Everything here is fire-and-forget
// from the engine's point of view; a notification failure never unwinds a
// booking.
package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

// EmailSender defines the interface for sending emails. Implementations can
// be swapped (SendGrid, SMTP, log-only) without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// SendGridSender sends emails via the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender creates a SendGrid email sender. Returns nil when no API
// key is configured so callers can fall back to the log sender.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "Harborview Health"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via SendGrid.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("notify: sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}

	s.logger.Debug("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

// LogSender is a development EmailSender that only logs.
type LogSender struct {
	logger *logging.Logger
}

// NewLogSender creates a log-only email sender.
func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the email instead of delivering it.
func (s *LogSender) Send(_ context.Context, msg EmailMessage) error {
	s.logger.Info("email (log sender)", "to", msg.To, "subject", msg.Subject)
	return nil
}
