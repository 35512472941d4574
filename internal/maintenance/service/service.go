// Package service implements the maintenance lifecycle engine: creation with
// whitelist routing, vendor assignment behind the capacity gate, bounded
// reschedules, dual-consent cancellation and payment-gated completion.
package service

import (
	"context"
	"time"

	"propertyhub_backend/internal/events"
	"propertyhub_backend/internal/maintenance/domain"
	"propertyhub_backend/internal/maintenance/repository"
	"propertyhub_backend/internal/scheduler"
	vendorrepo "propertyhub_backend/internal/vendors/repository"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"
	"propertyhub_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Store is the persistence interface the engine depends on.
type Store interface {
	Create(ctx context.Context, m *repository.Maintenance) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Maintenance, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]repository.Maintenance, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]repository.Maintenance, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]repository.Maintenance, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID, status *domain.Status) ([]repository.Maintenance, error)
	ListOpenForVendor(ctx context.Context, vendorID uuid.UUID) ([]repository.Maintenance, error)
	AssignVendor(ctx context.Context, id, vendorID, offeringID uuid.UUID, availability string) error
	SetChatRoom(ctx context.Context, id, roomID uuid.UUID) error
	Reschedule(ctx context.Context, id uuid.UUID, newDate time.Time) (*repository.RescheduleResult, error)
	RescheduleHistory(ctx context.Context, id uuid.UUID) ([]repository.RescheduleEntry, error)
	RequestCancellation(ctx context.Context, id uuid.UUID, reason *string) error
	CancelUnassigned(ctx context.Context, id uuid.UUID, reason *string) error
	ConsentCancellation(ctx context.Context, id uuid.UUID, vendorID, offeringID *uuid.UUID) error
	MarkPaid(ctx context.Context, id uuid.UUID, amountMinor int64, currency string) (bool, error)
	RevertPayment(ctx context.Context, id uuid.UUID) error
	CompleteAndRelease(ctx context.Context, id, vendorID, offeringID uuid.UUID) error
	SetLandlordDecision(ctx context.Context, id uuid.UUID, decision domain.DecisionStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// PropertyReader resolves the landlord owning a property.
type PropertyReader interface {
	LandlordOf(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error)
}

// SubcategoryReader reports which of the given subcategory IDs exist.
type SubcategoryReader interface {
	FindSubcategoryIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// WhitelistChecker evaluates the landlord's standing self-handle rules.
type WhitelistChecker interface {
	IsWhitelisted(ctx context.Context, landlordID, categoryID uuid.UUID, subcategoryIDs []uuid.UUID, propertyID uuid.UUID) (bool, error)
}

// CapacityGate guards vendor assignment against overload.
type CapacityGate interface {
	CandidateOffering(ctx context.Context, vendorID, categoryID uuid.UUID) (*vendorrepo.Offering, error)
	NextAvailability(o *vendorrepo.Offering) vendorrepo.Availability
}

// FundsTransferrer moves the maintenance fee between wallets.
type FundsTransferrer interface {
	TransferMaintenanceFee(ctx context.Context, fromUserID, toUserID uuid.UUID, amountMinor int64, maintenanceID uuid.UUID) error
}

// ChatChannel opens the per-job thread between the two parties.
type ChatChannel interface {
	OpenMaintenanceRoom(ctx context.Context, maintenanceID, userA, userB uuid.UUID) (uuid.UUID, error)
}

// Actor is the authenticated caller's role-scoped profile IDs.
type Actor struct {
	UserID     uuid.UUID
	TenantID   *uuid.UUID
	LandlordID *uuid.UUID
	VendorID   *uuid.UUID
}

// CreateInput holds validated input for filing a request. The fee is not part
// of it: the amount stays unset until the landlord pays.
type CreateInput struct {
	PropertyID     uuid.UUID
	CategoryID     uuid.UUID
	SubcategoryIDs []uuid.UUID
	Title          string
	Description    string
	ScheduleDate   time.Time
}

// Service is the maintenance lifecycle engine.
type Service struct {
	repo       Store
	properties PropertyReader
	catalog    SubcategoryReader
	whitelist  WhitelistChecker
	capacity   CapacityGate
	funds      FundsTransferrer
	chat       ChatChannel
	reminders  scheduler.ReminderScheduler
	eventBus   events.Bus
	log        *logger.Logger

	rescheduleMax int
	reminderLead  time.Duration
	currency      string
}

// Options carries the business knobs the engine is configured with.
type Options struct {
	RescheduleMax int
	ReminderLead  time.Duration
	Currency      string
}

// New creates the lifecycle engine. reminders may be nil when no scheduler is
// configured; reminder scheduling is then skipped.
func New(
	repo Store,
	properties PropertyReader,
	catalog SubcategoryReader,
	whitelist WhitelistChecker,
	capacity CapacityGate,
	funds FundsTransferrer,
	chat ChatChannel,
	reminders scheduler.ReminderScheduler,
	eventBus events.Bus,
	log *logger.Logger,
	opts Options,
) *Service {
	if opts.RescheduleMax <= 0 {
		opts.RescheduleMax = 3
	}
	if opts.Currency == "" {
		opts.Currency = "EUR"
	}

	return &Service{
		repo:          repo,
		properties:    properties,
		catalog:       catalog,
		whitelist:     whitelist,
		capacity:      capacity,
		funds:         funds,
		chat:          chat,
		reminders:     reminders,
		eventBus:      eventBus,
		log:           log,
		rescheduleMax: opts.RescheduleMax,
		reminderLead:  opts.ReminderLead,
		currency:      opts.Currency,
	}
}

// Create files a new maintenance request. Tenant-created requests are routed
// through the landlord's whitelist: a match means the landlord handles the
// job personally and it never reaches the vendor pool.
func (s *Service) Create(ctx context.Context, actor Actor, input CreateInput) (*repository.Maintenance, error) {
	var tenantID, landlordID *uuid.UUID
	switch {
	case actor.TenantID != nil:
		tenantID = actor.TenantID
	case actor.LandlordID != nil:
		landlordID = actor.LandlordID
	default:
		return nil, apperr.Unauthorized("please log in as either a tenant or a landlord")
	}

	propertyLandlord, err := s.properties.LandlordOf(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}

	subcategoryIDs := dedupe(input.SubcategoryIDs)
	found, err := s.catalog.FindSubcategoryIDs(ctx, subcategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(subcategoryIDs) {
		return nil, apperr.BadRequest("one or more subcategories do not exist")
	}

	handleByLandlord := landlordID != nil
	if !handleByLandlord {
		whitelisted, err := s.whitelist.IsWhitelisted(ctx, propertyLandlord, input.CategoryID, subcategoryIDs, input.PropertyID)
		if err != nil {
			return nil, err
		}
		handleByLandlord = whitelisted
	}

	var decision *domain.DecisionStatus
	if handleByLandlord {
		pending := domain.DecisionPending
		decision = &pending
	}

	now := time.Now()
	m := &repository.Maintenance{
		ID:               uuid.New(),
		PropertyID:       input.PropertyID,
		CategoryID:       input.CategoryID,
		TenantID:         tenantID,
		LandlordID:       landlordID,
		Title:            sanitize.Text(input.Title),
		Description:      sanitize.Text(input.Description),
		Status:           domain.StatusPending,
		LandlordDecision: decision,
		PaymentStatus:    domain.PaymentPending,
		HandleByLandlord: handleByLandlord,
		ScheduleDate:     input.ScheduleDate,
		RescheduleMax:    s.rescheduleMax,
		Currency:         s.currency,
		CreatedAt:        now,
		UpdatedAt:        now,
		SubcategoryIDs:   subcategoryIDs,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.log.StateTransition(m.ID.String(), "", string(domain.StatusPending), actor.UserID.String())

	s.eventBus.Publish(ctx, events.MaintenanceCreated{
		BaseEvent:        events.NewBaseEvent(),
		MaintenanceID:    m.ID,
		PropertyID:       m.PropertyID,
		CategoryID:       m.CategoryID,
		TenantID:         m.TenantID,
		LandlordID:       m.LandlordID,
		HandleByLandlord: m.HandleByLandlord,
		ScheduleDate:     &m.ScheduleDate,
	})

	s.scheduleReminder(ctx, m)

	return m, nil
}

// GetByID returns a request the caller is a party to.
func (s *Service) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*repository.Maintenance, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, actor, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns the caller's requests according to their role.
func (s *Service) List(ctx context.Context, actor Actor) ([]repository.Maintenance, error) {
	switch {
	case actor.TenantID != nil:
		return s.repo.ListByTenant(ctx, *actor.TenantID)
	case actor.LandlordID != nil:
		return s.repo.ListByLandlord(ctx, *actor.LandlordID)
	case actor.VendorID != nil:
		return s.repo.ListByVendor(ctx, *actor.VendorID)
	}
	return nil, apperr.Forbidden("no profile associated with this account")
}

// ListOpen returns unassigned requests in the vendor's offered categories.
func (s *Service) ListOpen(ctx context.Context, vendorID uuid.UUID) ([]repository.Maintenance, error) {
	return s.repo.ListOpenForVendor(ctx, vendorID)
}

// ListByProperty returns one property's request history, optionally filtered
// by status. Only the owning landlord may read it.
func (s *Service) ListByProperty(ctx context.Context, landlordID, propertyID uuid.UUID, status *domain.Status) ([]repository.Maintenance, error) {
	owner, err := s.properties.LandlordOf(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if owner != landlordID {
		return nil, apperr.Unauthorized("you are not the landlord of this property")
	}
	if status != nil && !status.Valid() {
		return nil, apperr.Validation("unknown status filter")
	}
	return s.repo.ListByProperty(ctx, propertyID, status)
}

// AcceptJob assigns the vendor to an open request. The capacity gate runs on
// the job count as read before the increment; the claim itself is a
// conditional update, so two vendors racing for one job cannot both win.
func (s *Service) AcceptJob(ctx context.Context, vendorID, id uuid.UUID) (*repository.Maintenance, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.HandleByLandlord {
		return nil, apperr.Conflict("job is handled by the landlord")
	}
	if m.VendorID != nil {
		return nil, apperr.Conflict("job already assigned to a vendor")
	}
	if m.Status != domain.StatusPending {
		return nil, apperr.Conflict("job is not open for assignment")
	}

	offering, err := s.capacity.CandidateOffering(ctx, vendorID, m.CategoryID)
	if err != nil {
		return nil, err
	}
	next := s.capacity.NextAvailability(offering)

	if err := s.repo.AssignVendor(ctx, id, vendorID, offering.ID, string(next)); err != nil {
		return nil, err
	}

	s.log.StateTransition(id.String(), string(domain.StatusPending), string(domain.StatusAssigned), vendorID.String())

	s.openChatRoom(ctx, m, vendorID)

	s.eventBus.Publish(ctx, events.MaintenanceVendorAssigned{
		BaseEvent:     events.NewBaseEvent(),
		MaintenanceID: id,
		VendorID:      vendorID,
		ServiceID:     offering.ID,
	})

	return s.repo.GetByID(ctx, id)
}

// Reschedule moves the appointment, consuming one reschedule credit.
func (s *Service) Reschedule(ctx context.Context, actor Actor, id uuid.UUID, newDate time.Time) (*repository.Maintenance, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeManage(ctx, actor, m); err != nil {
		return nil, err
	}
	if domain.IsTerminal(m.Status) || m.Status == domain.StatusCancellationRequest {
		return nil, apperr.Conflict("job is no longer active")
	}

	result, err := s.repo.Reschedule(ctx, id, newDate)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, events.MaintenanceRescheduled{
		BaseEvent:     events.NewBaseEvent(),
		MaintenanceID: id,
		OldDate:       result.OldDate,
		NewDate:       result.NewDate,
		RemainingMax:  result.RemainingMax,
	})

	m, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.scheduleReminder(ctx, m)

	return m, nil
}

// RescheduleHistory returns the audit trail of schedule changes.
func (s *Service) RescheduleHistory(ctx context.Context, actor Actor, id uuid.UUID) ([]repository.RescheduleEntry, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, actor, m); err != nil {
		return nil, err
	}
	return s.repo.RescheduleHistory(ctx, id)
}

// Cancel handles both halves of the dual-consent protocol. The requesting
// side (tenant, or the landlord who filed the job) flags cancellation; the
// assigned vendor's call consents and moves the job to its terminal state.
func (s *Service) Cancel(ctx context.Context, actor Actor, id uuid.UUID, reason string) (*repository.Maintenance, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.TenantID != nil && m.TenantID != nil && *actor.TenantID == *m.TenantID,
		actor.LandlordID != nil && m.LandlordID != nil && *actor.LandlordID == *m.LandlordID:
		return s.requestCancellation(ctx, m, reason)

	case actor.VendorID != nil && m.VendorID != nil && *actor.VendorID == *m.VendorID:
		return s.consentCancellation(ctx, m, *actor.VendorID)
	}

	return nil, apperr.Unauthorized("you are not allowed to cancel this job")
}

func (s *Service) requestCancellation(ctx context.Context, m *repository.Maintenance, reason string) (*repository.Maintenance, error) {
	var reasonPtr *string
	if trimmed := sanitize.Text(reason); trimmed != "" {
		reasonPtr = &trimmed
	}

	// Unassigned requests have no vendor to consent; one write takes them
	// straight to the terminal state.
	if m.VendorID == nil {
		if err := s.repo.CancelUnassigned(ctx, m.ID, reasonPtr); err != nil {
			return nil, err
		}
		s.log.StateTransition(m.ID.String(), string(m.Status), string(domain.StatusCancel), requesterID(m))
		return s.repo.GetByID(ctx, m.ID)
	}

	if err := s.repo.RequestCancellation(ctx, m.ID, reasonPtr); err != nil {
		return nil, err
	}

	s.log.StateTransition(m.ID.String(), string(m.Status), string(domain.StatusCancellationRequest), requesterID(m))

	if m.TenantID != nil {
		s.eventBus.Publish(ctx, events.MaintenanceCancellationRequested{
			BaseEvent:     events.NewBaseEvent(),
			MaintenanceID: m.ID,
			TenantID:      *m.TenantID,
			Reason:        reason,
		})
	}

	return s.repo.GetByID(ctx, m.ID)
}

func (s *Service) consentCancellation(ctx context.Context, m *repository.Maintenance, vendorID uuid.UUID) (*repository.Maintenance, error) {
	if err := s.repo.ConsentCancellation(ctx, m.ID, m.VendorID, m.VendorServiceID); err != nil {
		return nil, err
	}

	s.log.StateTransition(m.ID.String(), string(domain.StatusCancellationRequest), string(domain.StatusCancel), vendorID.String())

	s.eventBus.Publish(ctx, events.MaintenanceCancelled{
		BaseEvent:     events.NewBaseEvent(),
		MaintenanceID: m.ID,
		VendorID:      vendorID,
	})

	return s.repo.GetByID(ctx, m.ID)
}

// Pay runs the payment gate: the landlord's wallet is debited by the amount
// they submit, the vendor's credited, and the payment slot is claimed exactly
// once. The amount is recorded on the claim and cleared again when a failed
// transfer releases the slot.
func (s *Service) Pay(ctx context.Context, actor Actor, id uuid.UUID, amountMinor int64, currency string) (*repository.Maintenance, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.LandlordID == nil {
		return nil, apperr.Unauthorized("only the landlord can pay for this job")
	}
	if err := s.authorizeLandlord(ctx, *actor.LandlordID, m); err != nil {
		return nil, err
	}
	if m.VendorID == nil {
		return nil, apperr.BadRequest("no vendor assigned to this job")
	}
	if amountMinor <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}
	if currency == "" {
		currency = s.currency
	}

	claimed, err := s.repo.MarkPaid(ctx, id, amountMinor, currency)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, apperr.Conflict("payment has already been processed")
	}

	if err := s.funds.TransferMaintenanceFee(ctx, *actor.LandlordID, *m.VendorID, amountMinor, id); err != nil {
		// A failed revert leaves the slot claimed with no funds moved; the
		// error log is the operator's cue to reconcile the row by hand.
		if revertErr := s.repo.RevertPayment(ctx, id); revertErr != nil {
			s.log.Error("failed to revert payment claim after transfer failure",
				"maintenance_id", id, "error", revertErr)
		}
		s.log.PaymentEvent(id.String(), amountMinor, currency, false, err.Error())
		return nil, err
	}

	s.log.PaymentEvent(id.String(), amountMinor, currency, true, "")

	s.eventBus.Publish(ctx, events.MaintenancePaid{
		BaseEvent:     events.NewBaseEvent(),
		MaintenanceID: id,
		LandlordID:    *actor.LandlordID,
		VendorID:      *m.VendorID,
		AmountMinor:   amountMinor,
		Currency:      currency,
	})

	return s.repo.GetByID(ctx, id)
}

// Complete finishes an assigned job. Completion is gated on the payment
// having gone through; the vendor's capacity is released in the same
// transaction as the state change.
func (s *Service) Complete(ctx context.Context, vendorID, id uuid.UUID) (*repository.Maintenance, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.VendorID == nil || *m.VendorID != vendorID {
		return nil, apperr.Unauthorized("job is not assigned to you")
	}
	if m.PaymentStatus != domain.PaymentCompleted {
		return nil, apperr.BadRequest("payment has not been completed yet")
	}
	if m.VendorServiceID == nil {
		return nil, apperr.Internal("job has no vendor service attached")
	}

	if err := s.repo.CompleteAndRelease(ctx, id, vendorID, *m.VendorServiceID); err != nil {
		return nil, err
	}

	s.log.StateTransition(id.String(), string(domain.StatusAssigned), string(domain.StatusCompleted), vendorID.String())

	s.eventBus.Publish(ctx, events.MaintenanceCompleted{
		BaseEvent:     events.NewBaseEvent(),
		MaintenanceID: id,
		VendorID:      vendorID,
	})

	return s.repo.GetByID(ctx, id)
}

// Decide records the landlord's decision on a request routed to them.
func (s *Service) Decide(ctx context.Context, landlordID, id uuid.UUID, decision domain.DecisionStatus) (*repository.Maintenance, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !m.HandleByLandlord {
		return nil, apperr.BadRequest("job is not routed to the landlord")
	}
	if err := s.authorizeLandlord(ctx, landlordID, m); err != nil {
		return nil, err
	}

	if err := s.repo.SetLandlordDecision(ctx, id, decision); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete soft-deletes a request that is not mid-lifecycle. Landlord only.
func (s *Service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.LandlordID == nil {
		return apperr.Unauthorized("only the landlord can delete this job")
	}
	if err := s.authorizeLandlord(ctx, *actor.LandlordID, m); err != nil {
		return err
	}
	if m.Status == domain.StatusAssigned || m.Status == domain.StatusCancellationRequest {
		return apperr.Conflict("job is still active")
	}

	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) scheduleReminder(ctx context.Context, m *repository.Maintenance) {
	if s.reminders == nil || s.reminderLead <= 0 {
		return
	}

	runAt := m.ScheduleDate.Add(-s.reminderLead)
	if !runAt.After(time.Now()) {
		return
	}

	payload := scheduler.MaintenanceReminderPayload{
		MaintenanceID: m.ID.String(),
		PropertyID:    m.PropertyID.String(),
		ScheduleDate:  scheduler.FormatScheduleDate(m.ScheduleDate),
	}
	if err := s.reminders.ScheduleMaintenanceReminder(ctx, payload, runAt); err != nil {
		s.log.Warn("failed to schedule maintenance reminder",
			"maintenance_id", m.ID, "error", err)
	}
}

func (s *Service) openChatRoom(ctx context.Context, m *repository.Maintenance, vendorID uuid.UUID) {
	if s.chat == nil {
		return
	}

	var counterpart uuid.UUID
	switch {
	case m.TenantID != nil:
		counterpart = *m.TenantID
	case m.LandlordID != nil:
		counterpart = *m.LandlordID
	default:
		return
	}

	roomID, err := s.chat.OpenMaintenanceRoom(ctx, m.ID, vendorID, counterpart)
	if err != nil {
		s.log.Warn("failed to open maintenance chat room",
			"maintenance_id", m.ID, "error", err)
		return
	}
	if err := s.repo.SetChatRoom(ctx, m.ID, roomID); err != nil {
		s.log.Warn("failed to bind chat room to maintenance",
			"maintenance_id", m.ID, "error", err)
	}
}

// authorizeView allows any party to the job: the filing tenant, the landlord
// (as creator or property owner) and the assigned vendor.
func (s *Service) authorizeView(ctx context.Context, actor Actor, m *repository.Maintenance) error {
	if actor.TenantID != nil && m.TenantID != nil && *actor.TenantID == *m.TenantID {
		return nil
	}
	if actor.VendorID != nil && m.VendorID != nil && *actor.VendorID == *m.VendorID {
		return nil
	}
	if actor.LandlordID != nil {
		if err := s.authorizeLandlord(ctx, *actor.LandlordID, m); err == nil {
			return nil
		}
	}
	return apperr.Forbidden("you are not a party to this job")
}

// authorizeManage allows the requester side only: the filing tenant or the
// landlord.
func (s *Service) authorizeManage(ctx context.Context, actor Actor, m *repository.Maintenance) error {
	if actor.TenantID != nil && m.TenantID != nil && *actor.TenantID == *m.TenantID {
		return nil
	}
	if actor.LandlordID != nil {
		return s.authorizeLandlord(ctx, *actor.LandlordID, m)
	}
	return apperr.Unauthorized("you are not allowed to manage this job")
}

func (s *Service) authorizeLandlord(ctx context.Context, landlordID uuid.UUID, m *repository.Maintenance) error {
	if m.LandlordID != nil && *m.LandlordID == landlordID {
		return nil
	}
	owner, err := s.properties.LandlordOf(ctx, m.PropertyID)
	if err != nil {
		return err
	}
	if owner != landlordID {
		return apperr.Unauthorized("you are not the landlord of this property")
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func requesterID(m *repository.Maintenance) string {
	if m.TenantID != nil {
		return m.TenantID.String()
	}
	if m.LandlordID != nil {
		return m.LandlordID.String()
	}
	return ""
}
