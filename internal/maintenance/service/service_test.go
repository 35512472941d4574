package service

import (
	"context"
	"testing"
	"time"

	"propertyhub_backend/internal/events"
	"propertyhub_backend/internal/maintenance/domain"
	"propertyhub_backend/internal/maintenance/repository"
	vendorrepo "propertyhub_backend/internal/vendors/repository"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	items      map[uuid.UUID]*repository.Maintenance
	history    map[uuid.UUID][]repository.RescheduleEntry
	released   int
	consentErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:   make(map[uuid.UUID]*repository.Maintenance),
		history: make(map[uuid.UUID][]repository.RescheduleEntry),
	}
}

func (f *fakeStore) get(id uuid.UUID) (*repository.Maintenance, error) {
	m, ok := f.items[id]
	if !ok || m.IsDeleted {
		return nil, apperr.NotFound("maintenance request not found")
	}
	return m, nil
}

func (f *fakeStore) Create(_ context.Context, m *repository.Maintenance) error {
	f.items[m.ID] = m
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*repository.Maintenance, error) {
	return f.get(id)
}

func (f *fakeStore) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]repository.Maintenance, error) {
	var result []repository.Maintenance
	for _, m := range f.items {
		if !m.IsDeleted && m.TenantID != nil && *m.TenantID == tenantID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeStore) ListByLandlord(_ context.Context, landlordID uuid.UUID) ([]repository.Maintenance, error) {
	var result []repository.Maintenance
	for _, m := range f.items {
		if !m.IsDeleted && m.LandlordID != nil && *m.LandlordID == landlordID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeStore) ListByVendor(_ context.Context, vendorID uuid.UUID) ([]repository.Maintenance, error) {
	var result []repository.Maintenance
	for _, m := range f.items {
		if !m.IsDeleted && m.VendorID != nil && *m.VendorID == vendorID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeStore) ListByProperty(_ context.Context, propertyID uuid.UUID, status *domain.Status) ([]repository.Maintenance, error) {
	var result []repository.Maintenance
	for _, m := range f.items {
		if m.IsDeleted || m.PropertyID != propertyID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		result = append(result, *m)
	}
	return result, nil
}

func (f *fakeStore) ListOpenForVendor(_ context.Context, _ uuid.UUID) ([]repository.Maintenance, error) {
	var result []repository.Maintenance
	for _, m := range f.items {
		if !m.IsDeleted && m.Status == domain.StatusPending && !m.HandleByLandlord && m.VendorID == nil {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeStore) AssignVendor(_ context.Context, id, vendorID, offeringID uuid.UUID, _ string) error {
	m, err := f.get(id)
	if err != nil {
		return err
	}
	if m.VendorID != nil || m.Status != domain.StatusPending {
		return apperr.Conflict("job already assigned to a vendor")
	}
	m.VendorID = &vendorID
	m.VendorServiceID = &offeringID
	m.Status = domain.StatusAssigned
	return nil
}

func (f *fakeStore) SetChatRoom(_ context.Context, id, roomID uuid.UUID) error {
	m, err := f.get(id)
	if err != nil {
		return err
	}
	m.ChatRoomID = &roomID
	return nil
}

func (f *fakeStore) Reschedule(_ context.Context, id uuid.UUID, newDate time.Time) (*repository.RescheduleResult, error) {
	m, err := f.get(id)
	if err != nil {
		return nil, err
	}
	if m.RescheduleMax <= 0 {
		return nil, apperr.BadRequest("maximum reschedules reached")
	}
	oldDate := m.ScheduleDate
	f.history[id] = append(f.history[id], repository.RescheduleEntry{
		ID:            uuid.New(),
		MaintenanceID: id,
		OldDate:       oldDate,
		NewDate:       newDate,
		CreatedAt:     time.Now(),
	})
	m.ScheduleDate = newDate
	m.RescheduleMax--
	return &repository.RescheduleResult{OldDate: oldDate, NewDate: newDate, RemainingMax: m.RescheduleMax}, nil
}

func (f *fakeStore) RescheduleHistory(_ context.Context, id uuid.UUID) ([]repository.RescheduleEntry, error) {
	return f.history[id], nil
}

func (f *fakeStore) RequestCancellation(_ context.Context, id uuid.UUID, reason *string) error {
	m, err := f.get(id)
	if err != nil {
		return err
	}
	if m.Status != domain.StatusPending && m.Status != domain.StatusAssigned {
		return apperr.Conflict("cancellation cannot be requested in the current state")
	}
	m.FlagCancellation = true
	m.CancellationReason = reason
	m.Status = domain.StatusCancellationRequest
	return nil
}

func (f *fakeStore) CancelUnassigned(_ context.Context, id uuid.UUID, reason *string) error {
	m, err := f.get(id)
	if err != nil {
		return err
	}
	if m.VendorID != nil || m.Status != domain.StatusPending {
		return apperr.Conflict("cancellation cannot be requested in the current state")
	}
	m.FlagCancellation = true
	m.CancellationReason = reason
	m.Status = domain.StatusCancel
	return nil
}

func (f *fakeStore) ConsentCancellation(_ context.Context, id uuid.UUID, vendorID, offeringID *uuid.UUID) error {
	if f.consentErr != nil {
		return f.consentErr
	}
	m, err := f.get(id)
	if err != nil {
		return err
	}
	if m.Status != domain.StatusCancellationRequest {
		return apperr.Conflict("no cancellation request to consent to")
	}
	m.VendorConsentCancellation = true
	m.Status = domain.StatusCancel
	if vendorID != nil && offeringID != nil {
		f.released++
	}
	return nil
}

func (f *fakeStore) MarkPaid(_ context.Context, id uuid.UUID, amountMinor int64, currency string) (bool, error) {
	m, err := f.get(id)
	if err != nil {
		return false, err
	}
	if m.PaymentStatus != domain.PaymentPending {
		return false, nil
	}
	m.PaymentStatus = domain.PaymentCompleted
	m.AmountMinor = &amountMinor
	m.Currency = currency
	return true, nil
}

func (f *fakeStore) RevertPayment(_ context.Context, id uuid.UUID) error {
	m, err := f.get(id)
	if err != nil {
		return err
	}
	m.PaymentStatus = domain.PaymentPending
	m.AmountMinor = nil
	return nil
}

func (f *fakeStore) CompleteAndRelease(_ context.Context, id, _, _ uuid.UUID) error {
	m, err := f.get(id)
	if err != nil {
		return err
	}
	if m.Status != domain.StatusAssigned {
		return apperr.Conflict("job cannot be completed in the current state")
	}
	m.Status = domain.StatusCompleted
	f.released++
	return nil
}

func (f *fakeStore) SetLandlordDecision(_ context.Context, id uuid.UUID, decision domain.DecisionStatus) error {
	m, err := f.get(id)
	if err != nil {
		return err
	}
	if !m.HandleByLandlord || m.LandlordDecision == nil || *m.LandlordDecision != domain.DecisionPending {
		return apperr.Conflict("landlord decision has already been made")
	}
	m.LandlordDecision = &decision
	return nil
}

func (f *fakeStore) SoftDelete(_ context.Context, id uuid.UUID) error {
	m, err := f.get(id)
	if err != nil {
		return err
	}
	m.IsDeleted = true
	return nil
}

type fakeProperties struct {
	landlord uuid.UUID
	err      error
}

func (f fakeProperties) LandlordOf(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
	return f.landlord, f.err
}

type fakeCatalog struct {
	known map[uuid.UUID]bool
}

func (f fakeCatalog) FindSubcategoryIDs(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	for _, id := range ids {
		if f.known[id] {
			found = append(found, id)
		}
	}
	return found, nil
}

type fakeWhitelist struct {
	whitelisted bool
	calls       int
}

func (f *fakeWhitelist) IsWhitelisted(_ context.Context, _, _ uuid.UUID, _ []uuid.UUID, _ uuid.UUID) (bool, error) {
	f.calls++
	return f.whitelisted, nil
}

type fakeCapacity struct {
	offering *vendorrepo.Offering
	err      error
	next     vendorrepo.Availability
}

func (f fakeCapacity) CandidateOffering(_ context.Context, _, _ uuid.UUID) (*vendorrepo.Offering, error) {
	return f.offering, f.err
}

func (f fakeCapacity) NextAvailability(_ *vendorrepo.Offering) vendorrepo.Availability {
	return f.next
}

type fakeFunds struct {
	err        error
	calls      int
	lastAmount int64
}

func (f *fakeFunds) TransferMaintenanceFee(_ context.Context, _, _ uuid.UUID, amountMinor int64, _ uuid.UUID) error {
	f.calls++
	f.lastAmount = amountMinor
	return f.err
}

type fakeChat struct {
	roomID uuid.UUID
	calls  int
}

func (f *fakeChat) OpenMaintenanceRoom(_ context.Context, _, _, _ uuid.UUID) (uuid.UUID, error) {
	f.calls++
	return f.roomID, nil
}

type captureBus struct {
	names []string
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.names = append(b.names, event.EventName())
}

func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.names = append(b.names, event.EventName())
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func (b *captureBus) has(name string) bool {
	for _, n := range b.names {
		if n == name {
			return true
		}
	}
	return false
}

type env struct {
	store     *fakeStore
	props     fakeProperties
	catalog   fakeCatalog
	whitelist *fakeWhitelist
	capacity  fakeCapacity
	funds     *fakeFunds
	chat      *fakeChat
	bus       *captureBus

	landlordID    uuid.UUID
	subcategoryID uuid.UUID
}

func newEnv() *env {
	landlordID := uuid.New()
	subcategoryID := uuid.New()
	offeringID := uuid.New()
	return &env{
		store:     newFakeStore(),
		props:     fakeProperties{landlord: landlordID},
		catalog:   fakeCatalog{known: map[uuid.UUID]bool{subcategoryID: true}},
		whitelist: &fakeWhitelist{},
		capacity: fakeCapacity{
			offering: &vendorrepo.Offering{ID: offeringID, CurrentJobs: 0},
			next:     vendorrepo.AvailabilityNo,
		},
		funds:         &fakeFunds{},
		chat:          &fakeChat{roomID: uuid.New()},
		bus:           &captureBus{},
		landlordID:    landlordID,
		subcategoryID: subcategoryID,
	}
}

func (e *env) service() *Service {
	return New(e.store, e.props, e.catalog, e.whitelist, e.capacity, e.funds, e.chat,
		nil, e.bus, logger.New("development"), Options{RescheduleMax: 3, Currency: "EUR"})
}

func (e *env) createInput() CreateInput {
	return CreateInput{
		PropertyID:     uuid.New(),
		CategoryID:     uuid.New(),
		SubcategoryIDs: []uuid.UUID{e.subcategoryID},
		Title:          "Leaking kitchen tap",
		Description:    "Drips constantly, cabinet below is getting damp.",
		ScheduleDate:   time.Now().Add(72 * time.Hour),
	}
}

func tenantActor(tenantID uuid.UUID) Actor {
	return Actor{UserID: uuid.New(), TenantID: &tenantID}
}

func landlordActor(landlordID uuid.UUID) Actor {
	return Actor{UserID: uuid.New(), LandlordID: &landlordID}
}

func TestCreate_WhitelistedTenantRequestRoutesToLandlord(t *testing.T) {
	e := newEnv()
	e.whitelist.whitelisted = true
	svc := e.service()

	m, err := svc.Create(context.Background(), tenantActor(uuid.New()), e.createInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !m.HandleByLandlord {
		t.Fatal("expected whitelisted request to be routed to the landlord")
	}
	if m.LandlordDecision == nil || *m.LandlordDecision != domain.DecisionPending {
		t.Fatalf("expected landlord decision PENDING, got %v", m.LandlordDecision)
	}
	if m.Status != domain.StatusPending {
		t.Fatalf("expected status PENDING, got %s", m.Status)
	}
	if !e.bus.has(events.EventMaintenanceCreated) {
		t.Fatal("expected maintenance.created event")
	}
}

func TestCreate_NonWhitelistedTenantRequestStaysInVendorPool(t *testing.T) {
	e := newEnv()
	svc := e.service()

	m, err := svc.Create(context.Background(), tenantActor(uuid.New()), e.createInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if m.HandleByLandlord {
		t.Fatal("expected non-whitelisted request to stay in the vendor pool")
	}
	if m.LandlordDecision != nil {
		t.Fatalf("expected no landlord decision, got %v", *m.LandlordDecision)
	}
	if m.RescheduleMax != 3 {
		t.Fatalf("expected 3 reschedule credits, got %d", m.RescheduleMax)
	}
	if m.PaymentStatus != domain.PaymentPending {
		t.Fatalf("expected payment PENDING, got %s", m.PaymentStatus)
	}
	if m.AmountMinor != nil {
		t.Fatalf("expected no amount before payment, got %d", *m.AmountMinor)
	}
	if e.whitelist.calls != 1 {
		t.Fatalf("expected 1 whitelist evaluation, got %d", e.whitelist.calls)
	}
}

func TestCreate_LandlordRequestSkipsWhitelist(t *testing.T) {
	e := newEnv()
	svc := e.service()

	m, err := svc.Create(context.Background(), landlordActor(e.landlordID), e.createInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !m.HandleByLandlord {
		t.Fatal("expected landlord-filed request to be self-handled")
	}
	if e.whitelist.calls != 0 {
		t.Fatalf("expected no whitelist evaluation for a landlord-filed request, got %d", e.whitelist.calls)
	}
}

func TestCreate_UnknownSubcategoryRejected(t *testing.T) {
	e := newEnv()
	svc := e.service()

	input := e.createInput()
	input.SubcategoryIDs = append(input.SubcategoryIDs, uuid.New())

	_, err := svc.Create(context.Background(), tenantActor(uuid.New()), input)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for unknown subcategory, got %v", err)
	}
}

func TestCreate_RequiresTenantOrLandlordProfile(t *testing.T) {
	e := newEnv()
	svc := e.service()

	vendorID := uuid.New()
	_, err := svc.Create(context.Background(), Actor{UserID: uuid.New(), VendorID: &vendorID}, e.createInput())
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for vendor-only actor, got %v", err)
	}
}

func createPending(t *testing.T, e *env, svc *Service, tenantID uuid.UUID) *repository.Maintenance {
	t.Helper()
	m, err := svc.Create(context.Background(), tenantActor(tenantID), e.createInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return m
}

func TestAcceptJob_AssignsVendorAndOpensChat(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	vendorID := uuid.New()
	got, err := svc.AcceptJob(context.Background(), vendorID, m.ID)
	if err != nil {
		t.Fatalf("AcceptJob returned error: %v", err)
	}
	if got.Status != domain.StatusAssigned {
		t.Fatalf("expected status ASSIGNED, got %s", got.Status)
	}
	if got.VendorID == nil || *got.VendorID != vendorID {
		t.Fatal("expected the accepting vendor to be recorded")
	}
	if e.chat.calls != 1 {
		t.Fatalf("expected 1 chat room opened, got %d", e.chat.calls)
	}
	if got.ChatRoomID == nil || *got.ChatRoomID != e.chat.roomID {
		t.Fatal("expected chat room to be bound to the job")
	}
	if !e.bus.has(events.EventMaintenanceVendorAssigned) {
		t.Fatal("expected maintenance.vendor_assigned event")
	}
}

func TestAcceptJob_RejectsSecondVendor(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	if _, err := svc.AcceptJob(context.Background(), uuid.New(), m.ID); err != nil {
		t.Fatalf("first AcceptJob returned error: %v", err)
	}
	_, err := svc.AcceptJob(context.Background(), uuid.New(), m.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for second vendor, got %v", err)
	}
}

func TestAcceptJob_RejectsLandlordHandledJob(t *testing.T) {
	e := newEnv()
	e.whitelist.whitelisted = true
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	_, err := svc.AcceptJob(context.Background(), uuid.New(), m.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for landlord-handled job, got %v", err)
	}
}

func TestAcceptJob_CapacityGateBlocksAssignment(t *testing.T) {
	e := newEnv()
	e.capacity.err = apperr.BadRequest("job level exceeded")
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	_, err := svc.AcceptJob(context.Background(), uuid.New(), m.ID)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected capacity gate rejection, got %v", err)
	}

	got, err := e.store.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Status != domain.StatusPending || got.VendorID != nil {
		t.Fatal("expected job to remain open after a capacity rejection")
	}
}

func TestReschedule_ConsumesCreditsUntilExhausted(t *testing.T) {
	e := newEnv()
	svc := e.service()
	tenantID := uuid.New()
	m := createPending(t, e, svc, tenantID)
	actor := tenantActor(tenantID)

	for i := 0; i < 3; i++ {
		newDate := time.Now().Add(time.Duration(96+24*i) * time.Hour)
		got, err := svc.Reschedule(context.Background(), actor, m.ID, newDate)
		if err != nil {
			t.Fatalf("reschedule %d returned error: %v", i+1, err)
		}
		if got.RescheduleMax != 2-i {
			t.Fatalf("expected %d credits after reschedule %d, got %d", 2-i, i+1, got.RescheduleMax)
		}
	}

	_, err := svc.Reschedule(context.Background(), actor, m.ID, time.Now().Add(200*time.Hour))
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request once credits are exhausted, got %v", err)
	}

	history, err := svc.RescheduleHistory(context.Background(), actor, m.ID)
	if err != nil {
		t.Fatalf("RescheduleHistory returned error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(history))
	}
}

func TestReschedule_RejectedByStranger(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	_, err := svc.Reschedule(context.Background(), tenantActor(uuid.New()), m.ID, time.Now().Add(96*time.Hour))
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for a different tenant, got %v", err)
	}
}

func TestCancel_DualConsentWithAssignedVendor(t *testing.T) {
	e := newEnv()
	svc := e.service()
	tenantID := uuid.New()
	m := createPending(t, e, svc, tenantID)

	vendorID := uuid.New()
	if _, err := svc.AcceptJob(context.Background(), vendorID, m.ID); err != nil {
		t.Fatalf("AcceptJob returned error: %v", err)
	}

	got, err := svc.Cancel(context.Background(), tenantActor(tenantID), m.ID, "tenant moved out")
	if err != nil {
		t.Fatalf("tenant Cancel returned error: %v", err)
	}
	if got.Status != domain.StatusCancellationRequest {
		t.Fatalf("expected CANCELLATION_REQUEST after tenant request, got %s", got.Status)
	}
	if !got.FlagCancellation {
		t.Fatal("expected cancellation flag to be set")
	}
	if !e.bus.has(events.EventMaintenanceCancellationRequested) {
		t.Fatal("expected maintenance.cancellation_requested event")
	}

	got, err = svc.Cancel(context.Background(), Actor{UserID: uuid.New(), VendorID: &vendorID}, m.ID, "")
	if err != nil {
		t.Fatalf("vendor Cancel returned error: %v", err)
	}
	if got.Status != domain.StatusCancel {
		t.Fatalf("expected CANCEL after vendor consent, got %s", got.Status)
	}
	if !got.VendorConsentCancellation {
		t.Fatal("expected vendor consent to be recorded")
	}
	if e.store.released != 1 {
		t.Fatalf("expected vendor capacity released once, got %d", e.store.released)
	}
	if !e.bus.has(events.EventMaintenanceCancelled) {
		t.Fatal("expected maintenance.cancelled event")
	}
}

func TestCancel_UnassignedRequestGoesTerminalImmediately(t *testing.T) {
	e := newEnv()
	svc := e.service()
	tenantID := uuid.New()
	m := createPending(t, e, svc, tenantID)

	got, err := svc.Cancel(context.Background(), tenantActor(tenantID), m.ID, "no longer needed")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if got.Status != domain.StatusCancel {
		t.Fatalf("expected CANCEL without vendor consent, got %s", got.Status)
	}
	if !got.FlagCancellation {
		t.Fatal("expected cancellation flag to be set")
	}
	if e.store.released != 0 {
		t.Fatalf("expected no capacity release for an unassigned job, got %d", e.store.released)
	}
}

func TestCancel_UnassignedDoesNotPassThroughConsent(t *testing.T) {
	e := newEnv()
	e.store.consentErr = apperr.Internal("consent write unavailable")
	svc := e.service()
	tenantID := uuid.New()
	m := createPending(t, e, svc, tenantID)

	got, err := svc.Cancel(context.Background(), tenantActor(tenantID), m.ID, "no longer needed")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if got.Status != domain.StatusCancel {
		t.Fatalf("expected CANCEL in a single step, got %s", got.Status)
	}
}

func TestCancel_RejectedForNonParties(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	_, err := svc.Cancel(context.Background(), tenantActor(uuid.New()), m.ID, "")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for a non-party, got %v", err)
	}
}

func assignedJob(t *testing.T, e *env, svc *Service) (*repository.Maintenance, uuid.UUID) {
	t.Helper()
	m := createPending(t, e, svc, uuid.New())
	vendorID := uuid.New()
	if _, err := svc.AcceptJob(context.Background(), vendorID, m.ID); err != nil {
		t.Fatalf("AcceptJob returned error: %v", err)
	}
	return m, vendorID
}

func TestPay_TransfersFeeExactlyOnce(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m, _ := assignedJob(t, e, svc)
	actor := landlordActor(e.landlordID)

	got, err := svc.Pay(context.Background(), actor, m.ID, 15000, "EUR")
	if err != nil {
		t.Fatalf("Pay returned error: %v", err)
	}
	if got.PaymentStatus != domain.PaymentCompleted {
		t.Fatalf("expected payment COMPLETED, got %s", got.PaymentStatus)
	}
	if got.AmountMinor == nil || *got.AmountMinor != 15000 {
		t.Fatalf("expected amount 15000 recorded on payment, got %v", got.AmountMinor)
	}
	if e.funds.calls != 1 || e.funds.lastAmount != 15000 {
		t.Fatalf("expected 1 transfer of 15000, got %d transfers of %d", e.funds.calls, e.funds.lastAmount)
	}
	if !e.bus.has(events.EventMaintenancePaid) {
		t.Fatal("expected maintenance.paid event")
	}

	_, err = svc.Pay(context.Background(), actor, m.ID, 15000, "EUR")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for a second payment, got %v", err)
	}
	if e.funds.calls != 1 {
		t.Fatalf("expected no second transfer, got %d", e.funds.calls)
	}
}

func TestPay_DefaultsCurrencyAndRejectsBadAmounts(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m, _ := assignedJob(t, e, svc)
	actor := landlordActor(e.landlordID)

	_, err := svc.Pay(context.Background(), actor, m.ID, 0, "")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for a zero amount, got %v", err)
	}
	if e.funds.calls != 0 {
		t.Fatalf("expected no transfer for a rejected amount, got %d", e.funds.calls)
	}

	got, err := svc.Pay(context.Background(), actor, m.ID, 8000, "")
	if err != nil {
		t.Fatalf("Pay returned error: %v", err)
	}
	if got.Currency != "EUR" {
		t.Fatalf("expected platform currency EUR when none is given, got %s", got.Currency)
	}
}

func TestPay_FailedTransferReleasesPaymentSlot(t *testing.T) {
	e := newEnv()
	e.funds.err = apperr.BadRequest("insufficient funds")
	svc := e.service()
	m, _ := assignedJob(t, e, svc)

	_, err := svc.Pay(context.Background(), landlordActor(e.landlordID), m.ID, 15000, "EUR")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected transfer failure to surface, got %v", err)
	}

	got, err := e.store.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.PaymentStatus != domain.PaymentPending {
		t.Fatalf("expected payment slot released after failed transfer, got %s", got.PaymentStatus)
	}
	if got.AmountMinor != nil {
		t.Fatalf("expected amount cleared after failed transfer, got %d", *got.AmountMinor)
	}

	e.funds.err = nil
	if _, err := svc.Pay(context.Background(), landlordActor(e.landlordID), m.ID, 15000, "EUR"); err != nil {
		t.Fatalf("retry after failed transfer returned error: %v", err)
	}
}

func TestPay_RequiresLandlord(t *testing.T) {
	e := newEnv()
	svc := e.service()
	tenantID := uuid.New()
	m := createPending(t, e, svc, tenantID)

	_, err := svc.Pay(context.Background(), tenantActor(tenantID), m.ID, 15000, "EUR")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for tenant payment, got %v", err)
	}
}

func TestPay_RequiresAssignedVendor(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	_, err := svc.Pay(context.Background(), landlordActor(e.landlordID), m.ID, 15000, "EUR")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request without an assigned vendor, got %v", err)
	}
}

func TestComplete_GatedOnPayment(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m, vendorID := assignedJob(t, e, svc)

	_, err := svc.Complete(context.Background(), vendorID, m.ID)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected completion to be blocked before payment, got %v", err)
	}

	if _, err := svc.Pay(context.Background(), landlordActor(e.landlordID), m.ID, 15000, "EUR"); err != nil {
		t.Fatalf("Pay returned error: %v", err)
	}

	got, err := svc.Complete(context.Background(), vendorID, m.ID)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got.Status != domain.StatusCompleted {
		t.Fatalf("expected status COMPLETED, got %s", got.Status)
	}
	if e.store.released != 1 {
		t.Fatalf("expected vendor capacity released once, got %d", e.store.released)
	}
	if !e.bus.has(events.EventMaintenanceCompleted) {
		t.Fatal("expected maintenance.completed event")
	}
}

func TestComplete_OnlyByAssignedVendor(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m, _ := assignedJob(t, e, svc)

	_, err := svc.Complete(context.Background(), uuid.New(), m.ID)
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for a different vendor, got %v", err)
	}
}

func TestDecide_RecordsLandlordDecisionOnce(t *testing.T) {
	e := newEnv()
	e.whitelist.whitelisted = true
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	got, err := svc.Decide(context.Background(), e.landlordID, m.ID, domain.DecisionApproved)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if got.LandlordDecision == nil || *got.LandlordDecision != domain.DecisionApproved {
		t.Fatalf("expected decision APPROVED, got %v", got.LandlordDecision)
	}

	_, err = svc.Decide(context.Background(), e.landlordID, m.ID, domain.DecisionDeclined)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for a second decision, got %v", err)
	}
}

func TestDecide_RejectedForVendorPoolJobs(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	_, err := svc.Decide(context.Background(), e.landlordID, m.ID, domain.DecisionApproved)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for a job not routed to the landlord, got %v", err)
	}
}

func TestDelete_RejectsActiveJob(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())
	if _, err := svc.AcceptJob(context.Background(), uuid.New(), m.ID); err != nil {
		t.Fatalf("AcceptJob returned error: %v", err)
	}

	err := svc.Delete(context.Background(), landlordActor(e.landlordID), m.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict deleting an assigned job, got %v", err)
	}
}

func TestDelete_LandlordOnly(t *testing.T) {
	e := newEnv()
	svc := e.service()
	tenantID := uuid.New()
	m := createPending(t, e, svc, tenantID)

	err := svc.Delete(context.Background(), tenantActor(tenantID), m.ID)
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for tenant delete, got %v", err)
	}

	if err := svc.Delete(context.Background(), landlordActor(e.landlordID), m.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	_, err = e.store.GetByID(context.Background(), m.ID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestCreate_DeduplicatesSubcategories(t *testing.T) {
	e := newEnv()
	svc := e.service()

	input := e.createInput()
	input.SubcategoryIDs = []uuid.UUID{e.subcategoryID, e.subcategoryID}

	m, err := svc.Create(context.Background(), tenantActor(uuid.New()), input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(m.SubcategoryIDs) != 1 {
		t.Fatalf("expected duplicate subcategories collapsed to 1, got %d", len(m.SubcategoryIDs))
	}
}

func TestListByProperty_OwningLandlordOnly(t *testing.T) {
	e := newEnv()
	svc := e.service()
	m := createPending(t, e, svc, uuid.New())

	result, err := svc.ListByProperty(context.Background(), e.landlordID, m.PropertyID, nil)
	if err != nil {
		t.Fatalf("ListByProperty returned error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 request on the property, got %d", len(result))
	}

	assigned := domain.StatusAssigned
	result, err = svc.ListByProperty(context.Background(), e.landlordID, m.PropertyID, &assigned)
	if err != nil {
		t.Fatalf("ListByProperty with filter returned error: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected no ASSIGNED requests, got %d", len(result))
	}

	_, err = svc.ListByProperty(context.Background(), uuid.New(), m.PropertyID, nil)
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for a different landlord, got %v", err)
	}
}
