// Package email delivers lifecycle notification emails over SMTP.
package email

import (
	"context"

	"propertyhub_backend/platform/config"
)

// Attachment is a file attached to an outgoing email.
type Attachment struct {
	FileName string
	Content  []byte
}

// Sender delivers the maintenance lifecycle emails.
type Sender interface {
	SendMaintenanceAssignedEmail(ctx context.Context, toEmail, jobTitle, scheduledDate, address string) error
	SendMaintenanceReminderEmail(ctx context.Context, toEmail, jobTitle, scheduledDate string) error
	SendPaymentReceiptEmail(ctx context.Context, toEmail, jobTitle string, amountMinor int64) error
	SendCancellationRequestedEmail(ctx context.Context, toEmail, jobTitle, reason string) error
}

// NewSender builds the configured Sender: SMTP when email is enabled,
// otherwise a no-op.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}

// NoopSender drops all emails. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendMaintenanceAssignedEmail(context.Context, string, string, string, string) error {
	return nil
}

func (NoopSender) SendMaintenanceReminderEmail(context.Context, string, string, string) error {
	return nil
}

func (NoopSender) SendPaymentReceiptEmail(context.Context, string, string, int64) error {
	return nil
}

func (NoopSender) SendCancellationRequestedEmail(context.Context, string, string, string) error {
	return nil
}
