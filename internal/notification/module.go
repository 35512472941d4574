// Package notification subscribes to maintenance lifecycle events and sends
// the matching emails. Domain modules publish events and never touch email
// providers or templates directly.
package notification

import (
	"context"

	"propertyhub_backend/internal/email"
	"propertyhub_backend/internal/events"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactReader resolves profile IDs to email addresses and loads the
// notification view of a maintenance request.
type ContactReader interface {
	EmailFor(ctx context.Context, profileID uuid.UUID) (string, error)
	MaintenanceSummary(ctx context.Context, maintenanceID uuid.UUID) (*MaintenanceSummary, error)
}

// Module wires event subscriptions to the email sender.
type Module struct {
	contacts ContactReader
	sender   email.Sender
	log      *logger.Logger
}

// NewModule creates the notification module and registers its subscriptions.
func NewModule(pool *pgxpool.Pool, bus events.Bus, sender email.Sender, log *logger.Logger) *Module {
	m := &Module{
		contacts: NewRepository(pool),
		sender:   sender,
		log:      log,
	}

	bus.Subscribe(events.EventMaintenanceVendorAssigned, events.HandlerFunc(m.onVendorAssigned))
	bus.Subscribe(events.EventMaintenanceCancellationRequested, events.HandlerFunc(m.onCancellationRequested))
	bus.Subscribe(events.EventMaintenancePaid, events.HandlerFunc(m.onPaid))
	bus.Subscribe(events.EventMaintenanceReminderDue, events.HandlerFunc(m.onReminderDue))

	return m
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "notification"
}

func (m *Module) onVendorAssigned(ctx context.Context, event events.Event) error {
	e, ok := event.(events.MaintenanceVendorAssigned)
	if !ok {
		return nil
	}

	summary, err := m.contacts.MaintenanceSummary(ctx, e.MaintenanceID)
	if err != nil {
		return err
	}

	// Requester side hears about the assignment.
	recipient := summary.TenantID
	if recipient == nil {
		recipient = summary.LandlordID
	}
	if recipient == nil {
		return nil
	}

	return m.deliver(ctx, *recipient, func(to string) error {
		return m.sender.SendMaintenanceAssignedEmail(ctx, to, summary.Title, summary.ScheduleDate, summary.Address)
	})
}

func (m *Module) onCancellationRequested(ctx context.Context, event events.Event) error {
	e, ok := event.(events.MaintenanceCancellationRequested)
	if !ok {
		return nil
	}

	summary, err := m.contacts.MaintenanceSummary(ctx, e.MaintenanceID)
	if err != nil {
		return err
	}
	if summary.VendorID == nil {
		return nil
	}

	return m.deliver(ctx, *summary.VendorID, func(to string) error {
		return m.sender.SendCancellationRequestedEmail(ctx, to, summary.Title, e.Reason)
	})
}

func (m *Module) onPaid(ctx context.Context, event events.Event) error {
	e, ok := event.(events.MaintenancePaid)
	if !ok {
		return nil
	}

	summary, err := m.contacts.MaintenanceSummary(ctx, e.MaintenanceID)
	if err != nil {
		return err
	}

	return m.deliver(ctx, e.VendorID, func(to string) error {
		return m.sender.SendPaymentReceiptEmail(ctx, to, summary.Title, e.AmountMinor)
	})
}

func (m *Module) onReminderDue(ctx context.Context, event events.Event) error {
	e, ok := event.(events.MaintenanceReminderDue)
	if !ok {
		return nil
	}

	summary, err := m.contacts.MaintenanceSummary(ctx, e.MaintenanceID)
	if err != nil {
		return err
	}

	for _, recipient := range []*uuid.UUID{summary.TenantID, summary.VendorID} {
		if recipient == nil {
			continue
		}
		if err := m.deliver(ctx, *recipient, func(to string) error {
			return m.sender.SendMaintenanceReminderEmail(ctx, to, summary.Title, summary.ScheduleDate)
		}); err != nil {
			return err
		}
	}

	return nil
}

// deliver resolves the recipient's email and runs the send. A missing contact
// row is logged and swallowed; notifications never block the lifecycle.
func (m *Module) deliver(ctx context.Context, profileID uuid.UUID, send func(to string) error) error {
	to, err := m.contacts.EmailFor(ctx, profileID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			m.log.Warn("no contact email for profile", "profile_id", profileID)
			return nil
		}
		return err
	}
	return send(to)
}
