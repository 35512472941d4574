// Package service implements vendor offering management and the capacity
// policy consulted when a vendor is assigned to a maintenance job.
package service

import (
	"context"
	"time"

	"propertyhub_backend/internal/vendors/repository"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"

	"github.com/google/uuid"
)

// OfferingStore is the persistence interface the service depends on.
type OfferingStore interface {
	Create(ctx context.Context, o *repository.Offering) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Offering, error)
	GetByVendorAndCategory(ctx context.Context, vendorID, categoryID uuid.UUID) (*repository.Offering, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]repository.Offering, error)
	SetAvailability(ctx context.Context, id, vendorID uuid.UUID, availability repository.Availability) error
	JobStats(ctx context.Context, vendorID uuid.UUID) (*repository.JobStats, error)
}

// Service provides business logic for vendor offerings and capacity.
type Service struct {
	store      OfferingStore
	log        *logger.Logger
	jobCeiling int
}

// RegisterOfferingInput holds validated input for registering an offering.
type RegisterOfferingInput struct {
	VendorID      uuid.UUID
	CategoryID    uuid.UUID
	SubcategoryID *uuid.UUID
}

// New creates a new vendors service. jobCeiling is the maximum number of
// concurrent jobs one offering may carry before assignment is refused.
func New(store OfferingStore, log *logger.Logger, jobCeiling int) *Service {
	if jobCeiling <= 0 {
		jobCeiling = 1
	}
	return &Service{store: store, log: log, jobCeiling: jobCeiling}
}

// RegisterOffering registers a new category offering for a vendor.
// New offerings start with zero jobs and availability YES.
func (s *Service) RegisterOffering(ctx context.Context, input RegisterOfferingInput) (*repository.Offering, error) {
	now := time.Now()
	offering := &repository.Offering{
		ID:            uuid.New(),
		VendorID:      input.VendorID,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		CurrentJobs:   0,
		Availability:  repository.AvailabilityYes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Create(ctx, offering); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to register vendor service", err)
	}

	s.log.Info("vendor service registered",
		"vendor_service_id", offering.ID,
		"vendor_id", offering.VendorID,
		"category_id", offering.CategoryID)

	return offering, nil
}

// ListOfferings returns all of a vendor's offerings.
func (s *Service) ListOfferings(ctx context.Context, vendorID uuid.UUID) ([]repository.Offering, error) {
	return s.store.ListByVendor(ctx, vendorID)
}

// SetAvailability lets a vendor take an offering in or out of rotation.
func (s *Service) SetAvailability(ctx context.Context, vendorID, offeringID uuid.UUID, availability repository.Availability) error {
	if availability != repository.AvailabilityYes && availability != repository.AvailabilityNo {
		return apperr.Validation("availability must be YES or NO")
	}
	return s.store.SetAvailability(ctx, offeringID, vendorID, availability)
}

// JobStats returns the vendor's dashboard numbers.
func (s *Service) JobStats(ctx context.Context, vendorID uuid.UUID) (*repository.JobStats, error) {
	return s.store.JobStats(ctx, vendorID)
}

// CandidateOffering finds the vendor's offering for a category and checks it
// against the job ceiling. It is the capacity gate the maintenance lifecycle
// consults before assignment: the returned offering is the one whose job
// count the assignment transaction will increment.
func (s *Service) CandidateOffering(ctx context.Context, vendorID, categoryID uuid.UUID) (*repository.Offering, error) {
	offering, err := s.store.GetByVendorAndCategory(ctx, vendorID, categoryID)
	if err != nil {
		return nil, err
	}

	if offering.CurrentJobs > s.jobCeiling {
		return nil, apperr.BadRequest("job level exceeded")
	}

	return offering, nil
}

// NextAvailability reports what the availability flag should become once the
// given offering takes one more job. The decision is made on the job count as
// read before the increment, so an offering at the ceiling taking one more
// job still reads YES; only a count already past the ceiling flips it to NO.
func (s *Service) NextAvailability(o *repository.Offering) repository.Availability {
	if o.CurrentJobs > s.jobCeiling {
		return repository.AvailabilityNo
	}
	return repository.AvailabilityYes
}
