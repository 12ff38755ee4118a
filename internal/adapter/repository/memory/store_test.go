package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/repository/memory"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

func seedAccount(t *testing.T, store *memory.Store) domain.Account {
	t.Helper()
	account, err := store.Create(context.Background(), domain.Account{
		ID:               "acc-1",
		AccountNumber:    "G12345678901",
		Kind:             domain.KindCurrent,
		CustomerID:       "CUST-1",
		BranchID:         1,
		Currency:         domain.CurrencyHTG,
		Balance:          decimal.NewFromInt(2000),
		AvailableBalance: decimal.NewFromInt(2000),
		Status:           domain.AccountStatusActive,
		OpeningDate:      time.Now(),
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func TestCancelTransactionRejectsNonCompletedOriginals(t *testing.T) {
	store := memory.NewStore()
	account := seedAccount(t, store)

	now := time.Now()
	deposit := domain.Transaction{
		ID:            "tx-1",
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Kind:          domain.KindCurrent,
		Type:          domain.TransactionTypeDeposit,
		Amount:        decimal.NewFromInt(500),
		Currency:      domain.CurrencyHTG,
		BalanceBefore: decimal.NewFromInt(2000),
		BalanceAfter:  decimal.NewFromInt(2500),
		Status:        domain.TransactionStatusCompleted,
		ProcessedAt:   now,
		CreatedAt:     now,
	}
	account.Balance = decimal.NewFromInt(2500)
	if _, err := store.PostTransaction(context.Background(), account, deposit); err != nil {
		t.Fatalf("post deposit: %v", err)
	}

	reversal := domain.Transaction{
		ID:                   "tx-2",
		AccountID:            account.ID,
		AccountNumber:        account.AccountNumber,
		Kind:                 domain.KindCurrent,
		Type:                 domain.TransactionTypeWithdrawal,
		Amount:               decimal.NewFromInt(500),
		Currency:             domain.CurrencyHTG,
		Status:               domain.TransactionStatusCompleted,
		RelatedTransactionID: deposit.ID,
		ProcessedAt:          now,
		CreatedAt:            now,
	}
	account.Balance = decimal.NewFromInt(2000)
	if _, err := store.CancelTransaction(context.Background(), account, reversal, deposit.ID, "annulée"); err != nil {
		t.Fatalf("first cancellation: %v", err)
	}

	// The original is now CANCELLED, so a second reversal must be refused
	// even when it reaches the store directly.
	second := reversal
	second.ID = "tx-3"
	_, err := store.CancelTransaction(context.Background(), account, second, deposit.ID, "annulée")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on a cancelled original, got %v", err)
	}

	entries, _, err := store.ListByAccount(context.Background(), domain.KindCurrent, domain.TransactionFilter{
		AccountID: account.ID,
		Page:      1,
		PageSize:  domain.MaxPageSize,
	})
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("rejected cancellation must not insert a reversal, got %d entries", len(entries))
	}
}
