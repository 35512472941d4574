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

// Rule is a landlord's standing instruction to handle matching maintenance
// requests themselves. Nil PropertyID or SubcategoryID means the rule applies
// to all properties or all subcategories.
type Rule struct {
	ID            uuid.UUID  `db:"id"`
	LandlordID    uuid.UUID  `db:"landlord_id"`
	CategoryID    uuid.UUID  `db:"category_id"`
	SubcategoryID *uuid.UUID `db:"subcategory_id"`
	PropertyID    *uuid.UUID `db:"property_id"`
	IsActive      bool       `db:"is_active"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Repository provides database operations for whitelist rules.
type Repository struct {
	pool *pgxpool.Pool
}

const ruleColumns = `id, landlord_id, category_id, subcategory_id, property_id, is_active, created_at, updated_at`

// New creates a new whitelist repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new rule.
func (r *Repository) Create(ctx context.Context, rule *Rule) error {
	query := `
		INSERT INTO maintenance_whitelists (
			id, landlord_id, category_id, subcategory_id, property_id, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		rule.ID, rule.LandlordID, rule.CategoryID, rule.SubcategoryID, rule.PropertyID, rule.IsActive, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create whitelist rule: %w", err)
	}

	return nil
}

// ListByLandlord returns all of a landlord's rules.
func (r *Repository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM maintenance_whitelists
		WHERE landlord_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list whitelist rules: %w", err)
	}
	defer rows.Close()

	var result []Rule
	for rows.Next() {
		var rule Rule
		if err := scanRule(rows, &rule); err != nil {
			return nil, err
		}
		result = append(result, rule)
	}

	return result, rows.Err()
}

// FindMatch returns the most specific active rule matching the given request
// shape, or nil when no rule matches. Specificity: a rule naming both the
// property and the subcategory beats one naming only the property, which
// beats one naming only the subcategory, which beats a category-wide rule.
func (r *Repository) FindMatch(ctx context.Context, landlordID, categoryID uuid.UUID, subcategoryIDs []uuid.UUID, propertyID uuid.UUID) (*Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM maintenance_whitelists
		WHERE landlord_id = $1
		  AND category_id = $2
		  AND is_active = true
		  AND (property_id IS NULL OR property_id = $3)
		  AND (subcategory_id IS NULL OR subcategory_id = ANY($4))
		ORDER BY
			(property_id IS NOT NULL)::int DESC,
			(subcategory_id IS NOT NULL)::int DESC,
			created_at DESC
		LIMIT 1`

	var rule Rule
	row := r.pool.QueryRow(ctx, query, landlordID, categoryID, propertyID, subcategoryIDs)
	err := row.Scan(&rule.ID, &rule.LandlordID, &rule.CategoryID, &rule.SubcategoryID, &rule.PropertyID, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to match whitelist rule: %w", err)
	}

	return &rule, nil
}

// SetActive toggles a rule. The write is scoped by landlord ID.
func (r *Repository) SetActive(ctx context.Context, id, landlordID uuid.UUID, active bool) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE maintenance_whitelists SET is_active = $3, updated_at = $4 WHERE id = $1 AND landlord_id = $2`,
		id, landlordID, active, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update whitelist rule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("whitelist rule not found")
	}
	return nil
}

// Delete removes a rule. The write is scoped by landlord ID.
func (r *Repository) Delete(ctx context.Context, id, landlordID uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM maintenance_whitelists WHERE id = $1 AND landlord_id = $2`,
		id, landlordID)
	if err != nil {
		return fmt.Errorf("failed to delete whitelist rule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("whitelist rule not found")
	}
	return nil
}

func scanRule(rows pgx.Rows, rule *Rule) error {
	if err := rows.Scan(&rule.ID, &rule.LandlordID, &rule.CategoryID, &rule.SubcategoryID, &rule.PropertyID, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return fmt.Errorf("failed to scan whitelist rule: %w", err)
	}
	return nil
}
