package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propertyhub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Availability signals whether a vendor offering can take new jobs.
type Availability string

const (
	AvailabilityYes Availability = "YES"
	AvailabilityNo  Availability = "NO"
)

// Offering is a vendor's registered capability for a maintenance category.
// Job-count and availability state live here, not on the vendor itself.
type Offering struct {
	ID            uuid.UUID    `db:"id"`
	VendorID      uuid.UUID    `db:"vendor_id"`
	CategoryID    uuid.UUID    `db:"category_id"`
	SubcategoryID *uuid.UUID   `db:"subcategory_id"`
	CurrentJobs   int          `db:"current_jobs"`
	Availability  Availability `db:"availability"`
	IsDeleted     bool         `db:"is_deleted"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

// JobStats summarizes a vendor's maintenance workload.
type JobStats struct {
	TotalRevenue    int64      `json:"totalRevenue"`
	Paid            int        `json:"paid"`
	NewRequests     int        `json:"newRequests"`
	Complete        int        `json:"complete"`
	Cancelled       int        `json:"cancelled"`
	PendingApproval int        `json:"pendingApproval"`
	NextAppointment *time.Time `json:"nextAppointment,omitempty"`
}

// Repository provides database operations for vendor offerings.
type Repository struct {
	pool *pgxpool.Pool
}

const offeringNotFoundMsg = "vendor service not found"

const offeringColumns = `id, vendor_id, category_id, subcategory_id, current_jobs, availability, is_deleted, created_at, updated_at`

// New creates a new vendors repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new offering.
func (r *Repository) Create(ctx context.Context, o *Offering) error {
	query := `
		INSERT INTO vendor_services (
			id, vendor_id, category_id, subcategory_id, current_jobs, availability, is_deleted, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		o.ID, o.VendorID, o.CategoryID, o.SubcategoryID, o.CurrentJobs, o.Availability, o.IsDeleted, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create vendor service: %w", err)
	}

	return nil
}

// GetByID retrieves an offering by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM vendor_services WHERE id = $1 AND is_deleted = false`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByVendorAndCategory retrieves the vendor's offering for a category.
// This is the candidate service consulted before assignment.
func (r *Repository) GetByVendorAndCategory(ctx context.Context, vendorID, categoryID uuid.UUID) (*Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM vendor_services
		WHERE vendor_id = $1 AND category_id = $2 AND is_deleted = false
		ORDER BY created_at LIMIT 1`
	return r.scanOne(r.pool.QueryRow(ctx, query, vendorID, categoryID))
}

// ListByVendor returns all of a vendor's offerings.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM vendor_services
		WHERE vendor_id = $1 AND is_deleted = false ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor services: %w", err)
	}
	defer rows.Close()

	var result []Offering
	for rows.Next() {
		var o Offering
		if err := rows.Scan(&o.ID, &o.VendorID, &o.CategoryID, &o.SubcategoryID, &o.CurrentJobs, &o.Availability, &o.IsDeleted, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vendor service: %w", err)
		}
		result = append(result, o)
	}

	return result, rows.Err()
}

// SetAvailability flips the availability flag. The write is scoped by both
// offering and vendor ID so one vendor can never mutate another's offering.
func (r *Repository) SetAvailability(ctx context.Context, id, vendorID uuid.UUID, availability Availability) error {
	query := `UPDATE vendor_services SET availability = $3, updated_at = $4
		WHERE id = $1 AND vendor_id = $2 AND is_deleted = false`

	result, err := r.pool.Exec(ctx, query, id, vendorID, availability, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update vendor service availability: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(offeringNotFoundMsg)
	}

	return nil
}

// JobStats aggregates the vendor's maintenance workload: counts per lifecycle
// state, completed-payment revenue and the next upcoming schedule date.
func (r *Repository) JobStats(ctx context.Context, vendorID uuid.UUID) (*JobStats, error) {
	var stats JobStats

	query := `SELECT
			COALESCE(SUM(amount) FILTER (WHERE payment_status = 'COMPLETED'), 0),
			COUNT(*) FILTER (WHERE payment_status = 'COMPLETED'),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'COMPLETED'),
			COUNT(*) FILTER (WHERE status = 'CANCEL'),
			COUNT(*) FILTER (WHERE landlord_decision = 'PENDING' AND status = 'ASSIGNED')
		FROM maintenances
		WHERE vendor_id = $1 AND is_deleted = false`

	err := r.pool.QueryRow(ctx, query, vendorID).Scan(
		&stats.TotalRevenue, &stats.Paid, &stats.NewRequests, &stats.Complete, &stats.Cancelled, &stats.PendingApproval,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vendor stats: %w", err)
	}

	next := `SELECT schedule_date FROM maintenances
		WHERE vendor_id = $1 AND is_deleted = false AND schedule_date > now()
		ORDER BY schedule_date ASC LIMIT 1`

	var nextDate time.Time
	err = r.pool.QueryRow(ctx, next, vendorID).Scan(&nextDate)
	switch {
	case err == nil:
		stats.NextAppointment = &nextDate
	case errors.Is(err, pgx.ErrNoRows):
		// no upcoming appointment
	default:
		return nil, fmt.Errorf("failed to find next appointment: %w", err)
	}

	return &stats, nil
}

func (r *Repository) scanOne(row pgx.Row) (*Offering, error) {
	var o Offering
	err := row.Scan(&o.ID, &o.VendorID, &o.CategoryID, &o.SubcategoryID, &o.CurrentJobs, &o.Availability, &o.IsDeleted, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(offeringNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get vendor service: %w", err)
	}
	return &o, nil
}
