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

// Property represents the property database model. The maintenance engine
// only needs existence and landlord ownership; the rest is display data.
type Property struct {
	ID         uuid.UUID `db:"id"`
	LandlordID uuid.UUID `db:"landlord_id"`
	Name       string    `db:"name"`
	Address    string    `db:"address"`
	City       string    `db:"city"`
	IsDeleted  bool      `db:"is_deleted"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Repository provides database operations for properties.
type Repository struct {
	pool *pgxpool.Pool
}

const propertyNotFoundMsg = "property not found"

const propertyColumns = `id, landlord_id, name, address, city, is_deleted, created_at, updated_at`

// New creates a new properties repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID retrieves a property by its ID. Soft-deleted rows are not returned.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	var p Property
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 AND is_deleted = false`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.LandlordID, &p.Name, &p.Address, &p.City, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(propertyNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return &p, nil
}

// ListByLandlord returns all non-deleted properties owned by a landlord.
func (r *Repository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties
		WHERE landlord_id = $1 AND is_deleted = false ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var result []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.ID, &p.LandlordID, &p.Name, &p.Address, &p.City, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		result = append(result, p)
	}

	return result, rows.Err()
}
