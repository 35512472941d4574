package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propertyhub_backend/internal/maintenance/domain"
	"propertyhub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Maintenance is the persisted maintenance request. The status column is the
// authoritative lifecycle position; flag_cancellation and
// vendor_consent_cancellation record which side acted on a cancellation.
type Maintenance struct {
	ID                        uuid.UUID              `db:"id"`
	PropertyID                uuid.UUID              `db:"property_id"`
	CategoryID                uuid.UUID              `db:"category_id"`
	TenantID                  *uuid.UUID             `db:"tenant_id"`
	LandlordID                *uuid.UUID             `db:"landlord_id"`
	VendorID                  *uuid.UUID             `db:"vendor_id"`
	VendorServiceID           *uuid.UUID             `db:"vendor_service_id"`
	Title                     string                 `db:"title"`
	Description               string                 `db:"description"`
	Status                    domain.Status          `db:"status"`
	LandlordDecision          *domain.DecisionStatus `db:"landlord_decision"`
	PaymentStatus             domain.PaymentStatus   `db:"payment_status"`
	HandleByLandlord          bool                   `db:"handle_by_landlord"`
	ScheduleDate              time.Time              `db:"schedule_date"`
	RescheduleMax             int                    `db:"re_schedule_max"`
	AmountMinor               *int64                 `db:"amount"`
	Currency                  string                 `db:"currency"`
	FlagCancellation          bool                   `db:"flag_cancellation"`
	CancellationReason        *string                `db:"cancellation_reason"`
	VendorConsentCancellation bool                   `db:"vendor_consent_cancellation"`
	ChatRoomID                *uuid.UUID             `db:"chat_room_id"`
	IsDeleted                 bool                   `db:"is_deleted"`
	CreatedAt                 time.Time              `db:"created_at"`
	UpdatedAt                 time.Time              `db:"updated_at"`

	// SubcategoryIDs is loaded from the join table.
	SubcategoryIDs []uuid.UUID `db:"-"`
}

// RescheduleResult reports what a successful reschedule did.
type RescheduleResult struct {
	OldDate      time.Time
	NewDate      time.Time
	RemainingMax int
}

// Repository provides database operations for maintenance requests.
type Repository struct {
	pool *pgxpool.Pool
}

const maintenanceNotFoundMsg = "maintenance request not found"

const maintenanceColumns = `id, property_id, category_id, tenant_id, landlord_id, vendor_id, vendor_service_id,
	title, description, status, landlord_decision, payment_status, handle_by_landlord,
	schedule_date, re_schedule_max, amount, currency,
	flag_cancellation, cancellation_reason, vendor_consent_cancellation,
	chat_room_id, is_deleted, created_at, updated_at`

// New creates a new maintenance repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create persists the request and its subcategory links in one transaction.
func (r *Repository) Create(ctx context.Context, m *Maintenance) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin create: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO maintenances (
			id, property_id, category_id, tenant_id, landlord_id, vendor_id, vendor_service_id,
			title, description, status, landlord_decision, payment_status, handle_by_landlord,
			schedule_date, re_schedule_max, amount, currency,
			flag_cancellation, cancellation_reason, vendor_consent_cancellation,
			chat_room_id, is_deleted, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17,
			$18, $19, $20,
			$21, $22, $23, $24
		)`

	_, err = tx.Exec(ctx, insert,
		m.ID, m.PropertyID, m.CategoryID, m.TenantID, m.LandlordID, m.VendorID, m.VendorServiceID,
		m.Title, m.Description, m.Status, m.LandlordDecision, m.PaymentStatus, m.HandleByLandlord,
		m.ScheduleDate, m.RescheduleMax, m.AmountMinor, m.Currency,
		m.FlagCancellation, m.CancellationReason, m.VendorConsentCancellation,
		m.ChatRoomID, m.IsDeleted, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create maintenance: %w", err)
	}

	for _, subID := range m.SubcategoryIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO maintenance_subcategories (maintenance_id, subcategory_id) VALUES ($1, $2)`,
			m.ID, subID)
		if err != nil {
			return fmt.Errorf("failed to link subcategory: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit create: %w", err)
	}

	return nil
}

// GetByID retrieves a request with its subcategory links.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances WHERE id = $1 AND is_deleted = false`

	m, err := scanMaintenance(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	subs, err := r.subcategoryIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	m.SubcategoryIDs = subs

	return m, nil
}

// ListByTenant returns the tenant's requests, newest first.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances
		WHERE tenant_id = $1 AND is_deleted = false ORDER BY created_at DESC`
	return r.list(ctx, query, tenantID)
}

// ListByLandlord returns requests on the landlord's properties, newest first.
func (r *Repository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances m
		WHERE is_deleted = false
		  AND (landlord_id = $1 OR property_id IN (SELECT id FROM properties WHERE landlord_id = $1))
		ORDER BY created_at DESC`
	return r.list(ctx, query, landlordID)
}

// ListByVendor returns the vendor's assigned jobs, newest first.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances
		WHERE vendor_id = $1 AND is_deleted = false ORDER BY created_at DESC`
	return r.list(ctx, query, vendorID)
}

// ListByProperty returns a property's request history, newest first,
// optionally filtered by status.
func (r *Repository) ListByProperty(ctx context.Context, propertyID uuid.UUID, status *domain.Status) ([]Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances
		WHERE property_id = $1 AND is_deleted = false
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC`
	return r.list(ctx, query, propertyID, status)
}

// ListOpenForVendor returns unassigned, vendor-eligible requests in the
// categories the vendor offers.
func (r *Repository) ListOpenForVendor(ctx context.Context, vendorID uuid.UUID) ([]Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances
		WHERE is_deleted = false
		  AND status = 'PENDING'
		  AND handle_by_landlord = false
		  AND vendor_id IS NULL
		  AND category_id IN (
			SELECT category_id FROM vendor_services
			WHERE vendor_id = $1 AND is_deleted = false AND availability = 'YES'
		  )
		ORDER BY schedule_date ASC`
	return r.list(ctx, query, vendorID)
}

// AssignVendor claims an open request for a vendor and bumps the offering's
// job count in one transaction. The claim is a conditional update on
// vendor_id IS NULL, so exactly one of any concurrent claimants wins.
func (r *Repository) AssignVendor(ctx context.Context, id, vendorID, offeringID uuid.UUID, availability string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin assign: %w", err)
	}
	defer tx.Rollback(ctx)

	claim := `
		UPDATE maintenances
		SET vendor_id = $2, vendor_service_id = $3, status = $4, updated_at = $5
		WHERE id = $1 AND vendor_id IS NULL AND status = $6 AND is_deleted = false`

	result, err := tx.Exec(ctx, claim, id, vendorID, offeringID, domain.StatusAssigned, time.Now(), domain.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to claim maintenance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.Conflict("job already assigned to a vendor")
	}

	bump := `
		UPDATE vendor_services
		SET current_jobs = current_jobs + 1, availability = $3, updated_at = $4
		WHERE id = $1 AND vendor_id = $2 AND is_deleted = false`

	result, err = tx.Exec(ctx, bump, offeringID, vendorID, availability, time.Now())
	if err != nil {
		return fmt.Errorf("failed to increment vendor jobs: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("vendor service not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assign: %w", err)
	}

	return nil
}

// SetChatRoom records the chat room opened for the request.
func (r *Repository) SetChatRoom(ctx context.Context, id, roomID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE maintenances SET chat_room_id = $2, updated_at = $3 WHERE id = $1`,
		id, roomID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set chat room: %w", err)
	}
	return nil
}

// Reschedule moves the appointment, appends a history row and consumes one
// reschedule credit, all in one transaction. The row is locked first so the
// credit check and the decrement see the same value.
func (r *Repository) Reschedule(ctx context.Context, id uuid.UUID, newDate time.Time) (*RescheduleResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin reschedule: %w", err)
	}
	defer tx.Rollback(ctx)

	var oldDate time.Time
	var remaining int
	err = tx.QueryRow(ctx,
		`SELECT schedule_date, re_schedule_max FROM maintenances WHERE id = $1 AND is_deleted = false FOR UPDATE`,
		id).Scan(&oldDate, &remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(maintenanceNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to lock maintenance: %w", err)
	}

	if remaining <= 0 {
		return nil, apperr.BadRequest("maximum reschedules reached")
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO maintenance_reschedule_history (id, maintenance_id, old_date, new_date, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), id, oldDate, newDate, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to record reschedule: %w", err)
	}

	err = tx.QueryRow(ctx,
		`UPDATE maintenances
		 SET schedule_date = $2, re_schedule_max = GREATEST(re_schedule_max - 1, 0), updated_at = $3
		 WHERE id = $1
		 RETURNING re_schedule_max`,
		id, newDate, time.Now()).Scan(&remaining)
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit reschedule: %w", err)
	}

	return &RescheduleResult{OldDate: oldDate, NewDate: newDate, RemainingMax: remaining}, nil
}

// RescheduleHistory returns a request's reschedule audit trail.
func (r *Repository) RescheduleHistory(ctx context.Context, id uuid.UUID) ([]RescheduleEntry, error) {
	query := `SELECT id, maintenance_id, old_date, new_date, created_at
		FROM maintenance_reschedule_history WHERE maintenance_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list reschedule history: %w", err)
	}
	defer rows.Close()

	var result []RescheduleEntry
	for rows.Next() {
		var e RescheduleEntry
		if err := rows.Scan(&e.ID, &e.MaintenanceID, &e.OldDate, &e.NewDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reschedule entry: %w", err)
		}
		result = append(result, e)
	}

	return result, rows.Err()
}

// RescheduleEntry is one row of the reschedule audit trail.
type RescheduleEntry struct {
	ID            uuid.UUID `db:"id"`
	MaintenanceID uuid.UUID `db:"maintenance_id"`
	OldDate       time.Time `db:"old_date"`
	NewDate       time.Time `db:"new_date"`
	CreatedAt     time.Time `db:"created_at"`
}

// RequestCancellation flags the request and moves it to the
// cancellation-requested state. Legal only before completion.
func (r *Repository) RequestCancellation(ctx context.Context, id uuid.UUID, reason *string) error {
	query := `
		UPDATE maintenances
		SET flag_cancellation = true, cancellation_reason = $2, status = $3, updated_at = $4
		WHERE id = $1 AND status IN ($5, $6) AND is_deleted = false`

	result, err := r.pool.Exec(ctx, query, id, reason,
		domain.StatusCancellationRequest, time.Now(), domain.StatusPending, domain.StatusAssigned)
	if err != nil {
		return fmt.Errorf("failed to request cancellation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.Conflict("cancellation cannot be requested in the current state")
	}

	return nil
}

// CancelUnassigned cancels a request that has no vendor attached. There is no
// counterpart to consent, so one conditional update takes it straight to the
// terminal state; a request can never strand in CANCELLATION_REQUEST.
func (r *Repository) CancelUnassigned(ctx context.Context, id uuid.UUID, reason *string) error {
	query := `
		UPDATE maintenances
		SET flag_cancellation = true, cancellation_reason = $2, status = $3, updated_at = $4
		WHERE id = $1 AND vendor_id IS NULL AND status = $5 AND is_deleted = false`

	result, err := r.pool.Exec(ctx, query, id, reason,
		domain.StatusCancel, time.Now(), domain.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to cancel maintenance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.Conflict("cancellation cannot be requested in the current state")
	}

	return nil
}

// ConsentCancellation records the vendor's consent, moves the request to its
// terminal cancelled state and releases the vendor's capacity in one
// transaction.
func (r *Repository) ConsentCancellation(ctx context.Context, id uuid.UUID, vendorID, offeringID *uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin cancellation: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE maintenances
		SET vendor_consent_cancellation = true, status = $2, updated_at = $3
		WHERE id = $1 AND status = $4 AND is_deleted = false`

	result, err := tx.Exec(ctx, query, id, domain.StatusCancel, time.Now(), domain.StatusCancellationRequest)
	if err != nil {
		return fmt.Errorf("failed to consent cancellation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.Conflict("no cancellation request to consent to")
	}

	if vendorID != nil && offeringID != nil {
		if err := releaseCapacity(ctx, tx, *offeringID, *vendorID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}

	return nil
}

// MarkPaid flips the payment status to completed and records the amount and
// currency the landlord paid. The amount column stays NULL until this
// succeeds. The condition on the current status makes the payment step
// idempotent under races: only one caller observes a row change.
func (r *Repository) MarkPaid(ctx context.Context, id uuid.UUID, amountMinor int64, currency string) (bool, error) {
	query := `
		UPDATE maintenances SET payment_status = $2, amount = $3, currency = $4, updated_at = $5
		WHERE id = $1 AND payment_status = $6 AND is_deleted = false`

	result, err := r.pool.Exec(ctx, query, id, domain.PaymentCompleted, amountMinor, currency, time.Now(), domain.PaymentPending)
	if err != nil {
		return false, fmt.Errorf("failed to mark paid: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// RevertPayment returns the payment status to pending and clears the recorded
// amount. Compensation path for a failed funds transfer after the payment
// slot was claimed.
func (r *Repository) RevertPayment(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE maintenances SET payment_status = $2, amount = NULL, updated_at = $3 WHERE id = $1`,
		id, domain.PaymentPending, time.Now())
	if err != nil {
		return fmt.Errorf("failed to revert payment: %w", err)
	}
	return nil
}

// CompleteAndRelease moves an assigned request to completed and frees the
// vendor's capacity in one transaction.
func (r *Repository) CompleteAndRelease(ctx context.Context, id, vendorID, offeringID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin complete: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE maintenances SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4 AND is_deleted = false`

	result, err := tx.Exec(ctx, query, id, domain.StatusCompleted, time.Now(), domain.StatusAssigned)
	if err != nil {
		return fmt.Errorf("failed to complete maintenance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.Conflict("job cannot be completed in the current state")
	}

	if err := releaseCapacity(ctx, tx, offeringID, vendorID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit complete: %w", err)
	}

	return nil
}

// SetLandlordDecision records the landlord's decision.
func (r *Repository) SetLandlordDecision(ctx context.Context, id uuid.UUID, decision domain.DecisionStatus) error {
	query := `
		UPDATE maintenances SET landlord_decision = $2, updated_at = $3
		WHERE id = $1 AND handle_by_landlord = true AND landlord_decision = $4 AND is_deleted = false`

	result, err := r.pool.Exec(ctx, query, id, decision, time.Now(), domain.DecisionPending)
	if err != nil {
		return fmt.Errorf("failed to set landlord decision: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.Conflict("landlord decision has already been made")
	}

	return nil
}

// SoftDelete hides the request from all reads.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE maintenances SET is_deleted = true, updated_at = $2 WHERE id = $1 AND is_deleted = false`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete maintenance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(maintenanceNotFoundMsg)
	}
	return nil
}

// releaseCapacity decrements an offering's job count, floored at zero, and
// reopens it for new work.
func releaseCapacity(ctx context.Context, tx pgx.Tx, offeringID, vendorID uuid.UUID) error {
	query := `
		UPDATE vendor_services
		SET current_jobs = GREATEST(current_jobs - 1, 0), availability = 'YES', updated_at = $3
		WHERE id = $1 AND vendor_id = $2 AND is_deleted = false`

	if _, err := tx.Exec(ctx, query, offeringID, vendorID, time.Now()); err != nil {
		return fmt.Errorf("failed to release vendor capacity: %w", err)
	}
	return nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Maintenance, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenances: %w", err)
	}
	defer rows.Close()

	var result []Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}

	return result, rows.Err()
}

func (r *Repository) subcategoryIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subcategory_id FROM maintenance_subcategories WHERE maintenance_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance subcategories: %w", err)
	}
	defer rows.Close()

	var result []uuid.UUID
	for rows.Next() {
		var subID uuid.UUID
		if err := rows.Scan(&subID); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory id: %w", err)
		}
		result = append(result, subID)
	}

	return result, rows.Err()
}

func scanMaintenance(row pgx.Row) (*Maintenance, error) {
	var m Maintenance
	err := row.Scan(
		&m.ID, &m.PropertyID, &m.CategoryID, &m.TenantID, &m.LandlordID, &m.VendorID, &m.VendorServiceID,
		&m.Title, &m.Description, &m.Status, &m.LandlordDecision, &m.PaymentStatus, &m.HandleByLandlord,
		&m.ScheduleDate, &m.RescheduleMax, &m.AmountMinor, &m.Currency,
		&m.FlagCancellation, &m.CancellationReason, &m.VendorConsentCancellation,
		&m.ChatRoomID, &m.IsDeleted, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(maintenanceNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to scan maintenance: %w", err)
	}
	return &m, nil
}
