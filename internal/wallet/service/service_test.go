package service

import (
	"context"
	"testing"
	"time"

	"propertyhub_backend/internal/wallet/repository"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeLedger struct {
	wallets      map[uuid.UUID]*repository.Wallet
	transactions []repository.Transaction
	transferErr  error
	lastTransfer repository.TransferInput
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{wallets: make(map[uuid.UUID]*repository.Wallet)}
}

func (f *fakeLedger) GetOrCreate(_ context.Context, userID uuid.UUID, currency string) (*repository.Wallet, error) {
	if w, ok := f.wallets[userID]; ok {
		return w, nil
	}
	w := &repository.Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Balance:   0,
		Currency:  currency,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.wallets[userID] = w
	return w, nil
}

func (f *fakeLedger) ListTransactions(_ context.Context, userID uuid.UUID, _ int) ([]repository.Transaction, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, nil
	}
	var result []repository.Transaction
	for _, tx := range f.transactions {
		if tx.WalletID == w.ID {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (f *fakeLedger) Transfer(_ context.Context, input repository.TransferInput) error {
	if f.transferErr != nil {
		return f.transferErr
	}
	f.lastTransfer = input

	from := f.wallets[input.FromUserID]
	to := f.wallets[input.ToUserID]
	if from == nil || to == nil {
		return apperr.NotFound("wallet not found")
	}
	if from.Balance < input.AmountMinor {
		return apperr.BadRequest("insufficient funds")
	}
	from.Balance -= input.AmountMinor
	to.Balance += input.AmountMinor
	f.transactions = append(f.transactions,
		repository.Transaction{ID: uuid.New(), WalletID: from.ID, Amount: input.AmountMinor, Type: repository.TransactionDebit, Reference: input.Reference, MaintenanceID: input.MaintenanceID},
		repository.Transaction{ID: uuid.New(), WalletID: to.ID, Amount: input.AmountMinor, Type: repository.TransactionCredit, Reference: input.Reference, MaintenanceID: input.MaintenanceID},
	)
	return nil
}

func TestBalance_CreatesWalletOnFirstUse(t *testing.T) {
	svc := New(newFakeLedger(), logger.New("development"), "EUR")

	w, err := svc.Balance(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}
	if w.Balance != 0 {
		t.Fatalf("expected zero balance on a fresh wallet, got %d", w.Balance)
	}
	if w.Currency != "EUR" {
		t.Fatalf("expected EUR wallet, got %s", w.Currency)
	}
}

func TestTransferMaintenanceFee_MovesFundsAndRecordsLedger(t *testing.T) {
	ledger := newFakeLedger()
	svc := New(ledger, logger.New("development"), "EUR")
	landlordID := uuid.New()
	vendorID := uuid.New()
	maintenanceID := uuid.New()

	payer, err := svc.Balance(context.Background(), landlordID)
	if err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}
	payer.Balance = 20000

	if err := svc.TransferMaintenanceFee(context.Background(), landlordID, vendorID, 15000, maintenanceID); err != nil {
		t.Fatalf("TransferMaintenanceFee returned error: %v", err)
	}

	if payer.Balance != 5000 {
		t.Fatalf("expected payer balance 5000, got %d", payer.Balance)
	}
	if got := ledger.wallets[vendorID].Balance; got != 15000 {
		t.Fatalf("expected vendor balance 15000, got %d", got)
	}
	if ledger.lastTransfer.Reference != repository.ReferenceMaintenanceFee {
		t.Fatalf("expected reference %s, got %s", repository.ReferenceMaintenanceFee, ledger.lastTransfer.Reference)
	}
	if ledger.lastTransfer.MaintenanceID == nil || *ledger.lastTransfer.MaintenanceID != maintenanceID {
		t.Fatal("expected the maintenance ID on the transfer")
	}

	vendorTxs, err := svc.Transactions(context.Background(), vendorID, 10)
	if err != nil {
		t.Fatalf("Transactions returned error: %v", err)
	}
	if len(vendorTxs) != 1 || vendorTxs[0].Type != repository.TransactionCredit {
		t.Fatalf("expected one credit entry for the vendor, got %+v", vendorTxs)
	}
}

func TestTransferMaintenanceFee_RejectsNonPositiveAmount(t *testing.T) {
	svc := New(newFakeLedger(), logger.New("development"), "EUR")

	err := svc.TransferMaintenanceFee(context.Background(), uuid.New(), uuid.New(), 0, uuid.New())
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
}

func TestTransferMaintenanceFee_InsufficientFunds(t *testing.T) {
	ledger := newFakeLedger()
	svc := New(ledger, logger.New("development"), "EUR")

	err := svc.TransferMaintenanceFee(context.Background(), uuid.New(), uuid.New(), 15000, uuid.New())
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
}

func TestTransferMaintenanceFee_CreatesVendorWalletOnFirstPayment(t *testing.T) {
	ledger := newFakeLedger()
	svc := New(ledger, logger.New("development"), "EUR")
	landlordID := uuid.New()
	vendorID := uuid.New()

	payer, _ := svc.Balance(context.Background(), landlordID)
	payer.Balance = 15000

	if err := svc.TransferMaintenanceFee(context.Background(), landlordID, vendorID, 15000, uuid.New()); err != nil {
		t.Fatalf("TransferMaintenanceFee returned error: %v", err)
	}
	if _, ok := ledger.wallets[vendorID]; !ok {
		t.Fatal("expected the vendor wallet to be created before the transfer")
	}
}
