// Package service provides read access to properties. The maintenance engine
// depends on this to validate existence and resolve the owning landlord.
package service

import (
	"context"

	"propertyhub_backend/internal/properties/repository"

	"github.com/google/uuid"
)

// Service provides business logic for properties.
type Service struct {
	repo *repository.Repository
}

// New creates a new properties service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// GetByID returns a property or a typed not-found error.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*repository.Property, error) {
	return s.repo.GetByID(ctx, id)
}

// LandlordOf resolves the landlord owning a property.
func (s *Service) LandlordOf(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	property, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return uuid.Nil, err
	}
	return property.LandlordID, nil
}

// ListByLandlord returns the landlord's properties.
func (s *Service) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]repository.Property, error) {
	return s.repo.ListByLandlord(ctx, landlordID)
}
