// Package service implements whitelist rule management and the evaluation the
// lifecycle engine runs when a tenant files a maintenance request.
package service

import (
	"context"
	"time"

	"propertyhub_backend/internal/whitelist/repository"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"

	"github.com/google/uuid"
)

// RuleStore is the persistence interface the service depends on.
type RuleStore interface {
	Create(ctx context.Context, rule *repository.Rule) error
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]repository.Rule, error)
	FindMatch(ctx context.Context, landlordID, categoryID uuid.UUID, subcategoryIDs []uuid.UUID, propertyID uuid.UUID) (*repository.Rule, error)
	SetActive(ctx context.Context, id, landlordID uuid.UUID, active bool) error
	Delete(ctx context.Context, id, landlordID uuid.UUID) error
}

// Service provides business logic for whitelist rules.
type Service struct {
	store RuleStore
	log   *logger.Logger
}

// CreateRuleInput holds validated input for creating a rule.
type CreateRuleInput struct {
	LandlordID    uuid.UUID
	CategoryID    uuid.UUID
	SubcategoryID *uuid.UUID
	PropertyID    *uuid.UUID
}

// New creates a new whitelist service.
func New(store RuleStore, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// CreateRule adds a rule. Rules start active.
func (s *Service) CreateRule(ctx context.Context, input CreateRuleInput) (*repository.Rule, error) {
	now := time.Now()
	rule := &repository.Rule{
		ID:            uuid.New(),
		LandlordID:    input.LandlordID,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		PropertyID:    input.PropertyID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Create(ctx, rule); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create whitelist rule", err)
	}

	s.log.Info("whitelist rule created",
		"rule_id", rule.ID,
		"landlord_id", rule.LandlordID,
		"category_id", rule.CategoryID)

	return rule, nil
}

// ListRules returns a landlord's rules.
func (s *Service) ListRules(ctx context.Context, landlordID uuid.UUID) ([]repository.Rule, error) {
	return s.store.ListByLandlord(ctx, landlordID)
}

// SetRuleActive toggles a rule on or off.
func (s *Service) SetRuleActive(ctx context.Context, landlordID, ruleID uuid.UUID, active bool) error {
	return s.store.SetActive(ctx, ruleID, landlordID, active)
}

// DeleteRule removes a rule.
func (s *Service) DeleteRule(ctx context.Context, landlordID, ruleID uuid.UUID) error {
	return s.store.Delete(ctx, ruleID, landlordID)
}

// IsWhitelisted reports whether the landlord has an active rule matching the
// request shape. A match means the landlord handles the job personally and no
// vendor will be assigned.
func (s *Service) IsWhitelisted(ctx context.Context, landlordID, categoryID uuid.UUID, subcategoryIDs []uuid.UUID, propertyID uuid.UUID) (bool, error) {
	rule, err := s.store.FindMatch(ctx, landlordID, categoryID, subcategoryIDs, propertyID)
	if err != nil {
		return false, err
	}
	return rule != nil, nil
}
