package notification

import (
	"context"
	"errors"
	"fmt"

	"propertyhub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the contact projection. Profiles and their email addresses
// are owned by the external auth service; this table is a read-only copy kept
// in sync by that service.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new notification repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EmailFor resolves a profile ID (tenant, landlord or vendor) to its email.
func (r *Repository) EmailFor(ctx context.Context, profileID uuid.UUID) (string, error) {
	var email string
	err := r.pool.QueryRow(ctx,
		`SELECT email FROM contacts WHERE profile_id = $1`, profileID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("contact not found")
		}
		return "", fmt.Errorf("failed to look up contact: %w", err)
	}
	return email, nil
}

// MaintenanceSummary is what the notification emails need to know about a job.
type MaintenanceSummary struct {
	Title        string
	ScheduleDate string
	Address      string
	TenantID     *uuid.UUID
	LandlordID   *uuid.UUID
	VendorID     *uuid.UUID
	AmountMinor  int64
}

// MaintenanceSummary loads the notification view of a maintenance request,
// including the property address.
func (r *Repository) MaintenanceSummary(ctx context.Context, maintenanceID uuid.UUID) (*MaintenanceSummary, error) {
	var s MaintenanceSummary
	err := r.pool.QueryRow(ctx, `
		SELECT m.title, to_char(m.schedule_date, 'DD-MM-YYYY HH24:MI'),
		       concat_ws(', ', p.address, p.city),
		       m.tenant_id, m.landlord_id, m.vendor_id, COALESCE(m.amount, 0)
		FROM maintenances m
		JOIN properties p ON p.id = m.property_id
		WHERE m.id = $1`, maintenanceID).
		Scan(&s.Title, &s.ScheduleDate, &s.Address, &s.TenantID, &s.LandlordID, &s.VendorID, &s.AmountMinor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("maintenance request not found")
		}
		return nil, fmt.Errorf("failed to load maintenance summary: %w", err)
	}
	return &s, nil
}
