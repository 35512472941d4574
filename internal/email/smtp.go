package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendMaintenanceAssignedEmail(ctx context.Context, toEmail, jobTitle, scheduledDate, address string) error {
	content, err := renderEmailTemplate("maintenance_assigned.html", maintenanceAssignedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Vakman toegewezen",
			Heading: "Een vakman is toegewezen",
		},
		JobTitle:      jobTitle,
		ScheduledDate: scheduledDate,
		Address:       address,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectMaintenanceAssigned, content)
}

func (s *SMTPSender) SendMaintenanceReminderEmail(ctx context.Context, toEmail, jobTitle, scheduledDate string) error {
	content, err := renderEmailTemplate("maintenance_reminder.html", maintenanceReminderEmailData{
		baseEmailData: baseEmailData{
			Title:   "Herinnering onderhoudsafspraak",
			Heading: "Uw onderhoudsafspraak komt eraan",
		},
		JobTitle:      jobTitle,
		ScheduledDate: scheduledDate,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectMaintenanceReminder, content)
}

func (s *SMTPSender) SendPaymentReceiptEmail(ctx context.Context, toEmail, jobTitle string, amountMinor int64) error {
	content, err := renderEmailTemplate("payment_receipt.html", paymentReceiptEmailData{
		baseEmailData: baseEmailData{
			Title:   "Betaling verwerkt",
			Heading: "Betaling verwerkt",
		},
		JobTitle:        jobTitle,
		AmountFormatted: formatCurrencyEUR(amountMinor),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectPaymentReceipt, content)
}

func (s *SMTPSender) SendCancellationRequestedEmail(ctx context.Context, toEmail, jobTitle, reason string) error {
	content, err := renderEmailTemplate("cancellation_requested.html", cancellationRequestedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Annuleringsverzoek",
			Heading: "Annuleringsverzoek ontvangen",
		},
		JobTitle: jobTitle,
		Reason:   reason,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectCancellationRequested, content)
}

// Compile-time check that SMTPSender implements Sender.
var _ Sender = (*SMTPSender)(nil)
