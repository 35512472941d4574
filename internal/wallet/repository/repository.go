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

// TransactionType labels a ledger entry as money leaving or entering a wallet.
type TransactionType string

const (
	TransactionDebit  TransactionType = "DEBIT"
	TransactionCredit TransactionType = "CREDIT"
)

// ReferenceMaintenanceFee marks ledger entries created by maintenance payments.
const ReferenceMaintenanceFee = "MAINTENANCE_FEE"

// Wallet holds a user's balance in minor units of a single currency.
type Wallet struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Balance   int64     `db:"balance"`
	Currency  string    `db:"currency"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Transaction is one ledger entry against a wallet.
type Transaction struct {
	ID            uuid.UUID       `db:"id"`
	WalletID      uuid.UUID       `db:"wallet_id"`
	Amount        int64           `db:"amount"`
	Type          TransactionType `db:"type"`
	Reference     string          `db:"reference"`
	MaintenanceID *uuid.UUID      `db:"maintenance_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

// TransferInput describes a wallet-to-wallet transfer.
type TransferInput struct {
	FromUserID    uuid.UUID
	ToUserID      uuid.UUID
	AmountMinor   int64
	Reference     string
	MaintenanceID *uuid.UUID
}

// Repository provides database operations for wallets and their ledgers.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new wallet repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetOrCreate returns the user's wallet, creating an empty one on first use.
func (r *Repository) GetOrCreate(ctx context.Context, userID uuid.UUID, currency string) (*Wallet, error) {
	query := `
		INSERT INTO wallets (id, user_id, balance, currency, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = wallets.updated_at
		RETURNING id, user_id, balance, currency, created_at, updated_at`

	var w Wallet
	err := r.pool.QueryRow(ctx, query, uuid.New(), userID, currency, time.Now()).
		Scan(&w.ID, &w.UserID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create wallet: %w", err)
	}

	return &w, nil
}

// ListTransactions returns the user's ledger entries, newest first.
func (r *Repository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT t.id, t.wallet_id, t.amount, t.type, t.reference, t.maintenance_id, t.created_at
		FROM transactions t
		JOIN wallets w ON w.id = t.wallet_id
		WHERE w.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var result []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Amount, &t.Type, &t.Reference, &t.MaintenanceID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		result = append(result, t)
	}

	return result, rows.Err()
}

// Transfer moves funds between two wallets and records both ledger entries in
// a single database transaction. Wallet rows are locked in a fixed order so
// two concurrent transfers between the same pair cannot deadlock.
func (r *Repository) Transfer(ctx context.Context, input TransferInput) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transfer: %w", err)
	}
	defer tx.Rollback(ctx)

	from, to, err := r.lockPair(ctx, tx, input.FromUserID, input.ToUserID)
	if err != nil {
		return err
	}

	if from.Currency != to.Currency {
		return apperr.BadRequest("wallet currency mismatch")
	}
	if from.Balance < input.AmountMinor {
		return apperr.BadRequest("insufficient funds")
	}

	now := time.Now()
	if _, err := tx.Exec(ctx,
		`UPDATE wallets SET balance = balance - $2, updated_at = $3 WHERE id = $1`,
		from.ID, input.AmountMinor, now); err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE wallets SET balance = balance + $2, updated_at = $3 WHERE id = $1`,
		to.ID, input.AmountMinor, now); err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	insert := `
		INSERT INTO transactions (id, wallet_id, amount, type, reference, maintenance_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := tx.Exec(ctx, insert,
		uuid.New(), from.ID, input.AmountMinor, TransactionDebit, input.Reference, input.MaintenanceID, now); err != nil {
		return fmt.Errorf("failed to record debit: %w", err)
	}
	if _, err := tx.Exec(ctx, insert,
		uuid.New(), to.ID, input.AmountMinor, TransactionCredit, input.Reference, input.MaintenanceID, now); err != nil {
		return fmt.Errorf("failed to record credit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}

	return nil
}

// lockPair selects both wallets FOR UPDATE, always locking the wallet with the
// smaller user ID first.
func (r *Repository) lockPair(ctx context.Context, tx pgx.Tx, fromUserID, toUserID uuid.UUID) (*Wallet, *Wallet, error) {
	first, second := fromUserID, toUserID
	if second.String() < first.String() {
		first, second = second, first
	}

	firstWallet, err := lockWallet(ctx, tx, first)
	if err != nil {
		return nil, nil, err
	}
	secondWallet, err := lockWallet(ctx, tx, second)
	if err != nil {
		return nil, nil, err
	}

	if firstWallet.UserID == fromUserID {
		return firstWallet, secondWallet, nil
	}
	return secondWallet, firstWallet, nil
}

func lockWallet(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := tx.QueryRow(ctx,
		`SELECT id, user_id, balance, currency, created_at, updated_at FROM wallets WHERE user_id = $1 FOR UPDATE`,
		userID).Scan(&w.ID, &w.UserID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("wallet not found")
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &w, nil
}
