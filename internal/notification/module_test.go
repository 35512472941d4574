package notification

import (
	"context"
	"testing"

	"propertyhub_backend/internal/events"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeContacts struct {
	emails    map[uuid.UUID]string
	summaries map[uuid.UUID]*MaintenanceSummary
}

func (f fakeContacts) EmailFor(_ context.Context, profileID uuid.UUID) (string, error) {
	email, ok := f.emails[profileID]
	if !ok {
		return "", apperr.NotFound("contact not found")
	}
	return email, nil
}

func (f fakeContacts) MaintenanceSummary(_ context.Context, maintenanceID uuid.UUID) (*MaintenanceSummary, error) {
	summary, ok := f.summaries[maintenanceID]
	if !ok {
		return nil, apperr.NotFound("maintenance request not found")
	}
	return summary, nil
}

type testSender struct {
	assignedCalls     int
	reminderCalls     int
	receiptCalls      int
	cancellationCalls int
	lastRecipient     string
}

func (s *testSender) SendMaintenanceAssignedEmail(_ context.Context, to, _, _, _ string) error {
	s.assignedCalls++
	s.lastRecipient = to
	return nil
}

func (s *testSender) SendMaintenanceReminderEmail(_ context.Context, to, _, _ string) error {
	s.reminderCalls++
	s.lastRecipient = to
	return nil
}

func (s *testSender) SendPaymentReceiptEmail(_ context.Context, to, _ string, _ int64) error {
	s.receiptCalls++
	s.lastRecipient = to
	return nil
}

func (s *testSender) SendCancellationRequestedEmail(_ context.Context, to, _, _ string) error {
	s.cancellationCalls++
	s.lastRecipient = to
	return nil
}

func newTestModule(contacts fakeContacts, sender *testSender) *Module {
	return &Module{
		contacts: contacts,
		sender:   sender,
		log:      logger.New("development"),
	}
}

func TestOnVendorAssigned_NotifiesTenant(t *testing.T) {
	maintenanceID := uuid.New()
	tenantID := uuid.New()
	sender := &testSender{}
	m := newTestModule(fakeContacts{
		emails: map[uuid.UUID]string{tenantID: "tenant@example.com"},
		summaries: map[uuid.UUID]*MaintenanceSummary{maintenanceID: {
			Title:        "Leaking kitchen tap",
			ScheduleDate: "14-09-2026 10:30",
			Address:      "Keizersgracht 1, Amsterdam",
			TenantID:     &tenantID,
		}},
	}, sender)

	err := m.onVendorAssigned(context.Background(), events.MaintenanceVendorAssigned{
		MaintenanceID: maintenanceID,
		VendorID:      uuid.New(),
	})
	if err != nil {
		t.Fatalf("onVendorAssigned returned error: %v", err)
	}
	if sender.assignedCalls != 1 {
		t.Fatalf("expected 1 assignment email, got %d", sender.assignedCalls)
	}
	if sender.lastRecipient != "tenant@example.com" {
		t.Fatalf("expected tenant recipient, got %s", sender.lastRecipient)
	}
}

func TestOnVendorAssigned_MissingContactIsSwallowed(t *testing.T) {
	maintenanceID := uuid.New()
	tenantID := uuid.New()
	sender := &testSender{}
	m := newTestModule(fakeContacts{
		emails: map[uuid.UUID]string{},
		summaries: map[uuid.UUID]*MaintenanceSummary{maintenanceID: {
			Title:    "Broken boiler",
			TenantID: &tenantID,
		}},
	}, sender)

	err := m.onVendorAssigned(context.Background(), events.MaintenanceVendorAssigned{
		MaintenanceID: maintenanceID,
	})
	if err != nil {
		t.Fatalf("expected missing contact to be swallowed, got %v", err)
	}
	if sender.assignedCalls != 0 {
		t.Fatalf("expected no email without a contact, got %d", sender.assignedCalls)
	}
}

func TestOnPaid_SendsReceiptToVendor(t *testing.T) {
	maintenanceID := uuid.New()
	vendorID := uuid.New()
	sender := &testSender{}
	m := newTestModule(fakeContacts{
		emails: map[uuid.UUID]string{vendorID: "vendor@example.com"},
		summaries: map[uuid.UUID]*MaintenanceSummary{maintenanceID: {
			Title: "Leaking kitchen tap",
		}},
	}, sender)

	err := m.onPaid(context.Background(), events.MaintenancePaid{
		MaintenanceID: maintenanceID,
		VendorID:      vendorID,
		AmountMinor:   15000,
		Currency:      "EUR",
	})
	if err != nil {
		t.Fatalf("onPaid returned error: %v", err)
	}
	if sender.receiptCalls != 1 {
		t.Fatalf("expected 1 receipt email, got %d", sender.receiptCalls)
	}
	if sender.lastRecipient != "vendor@example.com" {
		t.Fatalf("expected vendor recipient, got %s", sender.lastRecipient)
	}
}

func TestOnCancellationRequested_NoVendorNoEmail(t *testing.T) {
	maintenanceID := uuid.New()
	sender := &testSender{}
	m := newTestModule(fakeContacts{
		summaries: map[uuid.UUID]*MaintenanceSummary{maintenanceID: {
			Title: "Leaking kitchen tap",
		}},
	}, sender)

	err := m.onCancellationRequested(context.Background(), events.MaintenanceCancellationRequested{
		MaintenanceID: maintenanceID,
		TenantID:      uuid.New(),
		Reason:        "tenant moved out",
	})
	if err != nil {
		t.Fatalf("onCancellationRequested returned error: %v", err)
	}
	if sender.cancellationCalls != 0 {
		t.Fatalf("expected no email without an assigned vendor, got %d", sender.cancellationCalls)
	}
}

func TestOnReminderDue_NotifiesBothParties(t *testing.T) {
	maintenanceID := uuid.New()
	tenantID := uuid.New()
	vendorID := uuid.New()
	sender := &testSender{}
	m := newTestModule(fakeContacts{
		emails: map[uuid.UUID]string{
			tenantID: "tenant@example.com",
			vendorID: "vendor@example.com",
		},
		summaries: map[uuid.UUID]*MaintenanceSummary{maintenanceID: {
			Title:        "Leaking kitchen tap",
			ScheduleDate: "14-09-2026 10:30",
			TenantID:     &tenantID,
			VendorID:     &vendorID,
		}},
	}, sender)

	err := m.onReminderDue(context.Background(), events.MaintenanceReminderDue{
		MaintenanceID: maintenanceID,
	})
	if err != nil {
		t.Fatalf("onReminderDue returned error: %v", err)
	}
	if sender.reminderCalls != 2 {
		t.Fatalf("expected 2 reminder emails, got %d", sender.reminderCalls)
	}
}
