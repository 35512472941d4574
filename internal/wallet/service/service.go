// Package service implements wallet balances and the funds transfer the
// maintenance payment step runs through.
package service

import (
	"context"

	"propertyhub_backend/internal/wallet/repository"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"

	"github.com/google/uuid"
)

// Ledger is the persistence interface the service depends on.
type Ledger interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID, currency string) (*repository.Wallet, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]repository.Transaction, error)
	Transfer(ctx context.Context, input repository.TransferInput) error
}

// Service provides business logic for wallets.
type Service struct {
	ledger          Ledger
	log             *logger.Logger
	defaultCurrency string
}

// New creates a new wallet service.
func New(ledger Ledger, log *logger.Logger, defaultCurrency string) *Service {
	if defaultCurrency == "" {
		defaultCurrency = "EUR"
	}
	return &Service{ledger: ledger, log: log, defaultCurrency: defaultCurrency}
}

// Balance returns the user's wallet, creating it on first use.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (*repository.Wallet, error) {
	return s.ledger.GetOrCreate(ctx, userID, s.defaultCurrency)
}

// Transactions returns the user's ledger history.
func (s *Service) Transactions(ctx context.Context, userID uuid.UUID, limit int) ([]repository.Transaction, error) {
	return s.ledger.ListTransactions(ctx, userID, limit)
}

// TransferMaintenanceFee moves the maintenance fee from the payer to the
// vendor and records both ledger entries atomically. Both wallets are created
// on first use so a fresh vendor can still be credited.
func (s *Service) TransferMaintenanceFee(ctx context.Context, fromUserID, toUserID uuid.UUID, amountMinor int64, maintenanceID uuid.UUID) error {
	if amountMinor <= 0 {
		return apperr.Validation("transfer amount must be positive")
	}

	if _, err := s.ledger.GetOrCreate(ctx, fromUserID, s.defaultCurrency); err != nil {
		return err
	}
	if _, err := s.ledger.GetOrCreate(ctx, toUserID, s.defaultCurrency); err != nil {
		return err
	}

	err := s.ledger.Transfer(ctx, repository.TransferInput{
		FromUserID:    fromUserID,
		ToUserID:      toUserID,
		AmountMinor:   amountMinor,
		Reference:     repository.ReferenceMaintenanceFee,
		MaintenanceID: &maintenanceID,
	})
	if err != nil {
		return err
	}

	s.log.Info("maintenance fee transferred",
		"maintenance_id", maintenanceID,
		"from_user_id", fromUserID,
		"to_user_id", toUserID,
		"amount_minor", amountMinor)

	return nil
}
