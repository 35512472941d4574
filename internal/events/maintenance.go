package events

import (
	"time"

	"github.com/google/uuid"
)

// Event names for the maintenance lifecycle.
const (
	EventMaintenanceCreated               = "maintenance.created"
	EventMaintenanceVendorAssigned        = "maintenance.vendor_assigned"
	EventMaintenanceRescheduled           = "maintenance.rescheduled"
	EventMaintenanceCancellationRequested = "maintenance.cancellation_requested"
	EventMaintenanceCancelled             = "maintenance.cancelled"
	EventMaintenancePaid                  = "maintenance.paid"
	EventMaintenanceCompleted             = "maintenance.completed"
	EventMaintenanceReminderDue           = "maintenance.reminder_due"
)

// MaintenanceCreated fires after a maintenance request is persisted.
type MaintenanceCreated struct {
	BaseEvent
	MaintenanceID    uuid.UUID
	PropertyID       uuid.UUID
	CategoryID       uuid.UUID
	TenantID         *uuid.UUID
	LandlordID       *uuid.UUID
	HandleByLandlord bool
	ScheduleDate     *time.Time
}

func (MaintenanceCreated) EventName() string { return EventMaintenanceCreated }

// MaintenanceVendorAssigned fires when a vendor accepts an open offer.
type MaintenanceVendorAssigned struct {
	BaseEvent
	MaintenanceID uuid.UUID
	VendorID      uuid.UUID
	ServiceID     uuid.UUID
}

func (MaintenanceVendorAssigned) EventName() string { return EventMaintenanceVendorAssigned }

// MaintenanceRescheduled fires after a successful reschedule.
type MaintenanceRescheduled struct {
	BaseEvent
	MaintenanceID uuid.UUID
	OldDate       time.Time
	NewDate       time.Time
	RemainingMax  int
}

func (MaintenanceRescheduled) EventName() string { return EventMaintenanceRescheduled }

// MaintenanceCancellationRequested fires when the tenant flags cancellation.
type MaintenanceCancellationRequested struct {
	BaseEvent
	MaintenanceID uuid.UUID
	TenantID      uuid.UUID
	Reason        string
}

func (MaintenanceCancellationRequested) EventName() string {
	return EventMaintenanceCancellationRequested
}

// MaintenanceCancelled fires when the assigned vendor consents and the
// request reaches its terminal cancelled state.
type MaintenanceCancelled struct {
	BaseEvent
	MaintenanceID uuid.UUID
	VendorID      uuid.UUID
}

func (MaintenanceCancelled) EventName() string { return EventMaintenanceCancelled }

// MaintenancePaid fires after the payment gate succeeds.
type MaintenancePaid struct {
	BaseEvent
	MaintenanceID uuid.UUID
	LandlordID    uuid.UUID
	VendorID      uuid.UUID
	AmountMinor   int64
	Currency      string
}

func (MaintenancePaid) EventName() string { return EventMaintenancePaid }

// MaintenanceReminderDue fires when a scheduled appointment reminder comes
// due on the worker.
type MaintenanceReminderDue struct {
	BaseEvent
	MaintenanceID uuid.UUID
	PropertyID    uuid.UUID
	ScheduleDate  time.Time
}

func (MaintenanceReminderDue) EventName() string { return EventMaintenanceReminderDue }

// MaintenanceCompleted fires when the vendor confirms completion.
type MaintenanceCompleted struct {
	BaseEvent
	MaintenanceID uuid.UUID
	VendorID      uuid.UUID
}

func (MaintenanceCompleted) EventName() string { return EventMaintenanceCompleted }
