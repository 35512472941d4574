package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Category is a top-level maintenance classification (plumbing, electrical, ...).
type Category struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// Subcategory narrows a category (e.g. plumbing → leaking pipe).
type Subcategory struct {
	ID         uuid.UUID `db:"id"`
	CategoryID uuid.UUID `db:"category_id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
}

// Repository provides database operations for the maintenance catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListCategories returns all categories.
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var result []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

// ListSubcategories returns the subcategories of one category.
func (r *Repository) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]Subcategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, category_id, name, created_at FROM subcategories WHERE category_id = $1 ORDER BY name`,
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	defer rows.Close()

	var result []Subcategory
	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		result = append(result, s)
	}

	return result, rows.Err()
}

// FindSubcategoryIDs returns the subset of the given IDs that exist.
// Callers compare lengths to detect unknown IDs.
func (r *Repository) FindSubcategoryIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id FROM subcategories WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find subcategories: %w", err)
	}
	defer rows.Close()

	var found []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory id: %w", err)
		}
		found = append(found, id)
	}

	return found, rows.Err()
}
