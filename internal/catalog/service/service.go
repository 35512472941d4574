// Package service exposes the maintenance catalog: categories, subcategories
// and the existence check the lifecycle engine runs on creation.
package service

import (
	"context"

	"propertyhub_backend/internal/catalog/repository"

	"github.com/google/uuid"
)

// Service provides business logic for the catalog.
type Service struct {
	repo *repository.Repository
}

// New creates a new catalog service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// ListCategories returns all maintenance categories.
func (s *Service) ListCategories(ctx context.Context) ([]repository.Category, error) {
	return s.repo.ListCategories(ctx)
}

// ListSubcategories returns the subcategories under one category.
func (s *Service) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]repository.Subcategory, error) {
	return s.repo.ListSubcategories(ctx, categoryID)
}

// FindSubcategoryIDs returns which of the given subcategory IDs exist.
func (s *Service) FindSubcategoryIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.FindSubcategoryIDs(ctx, ids)
}
