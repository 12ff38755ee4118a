package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/adapter/repository/memory"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/config"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
	"github.com/kaysa-fintech/account-ledger/internal/usecase/services"
)

func testDefaults() config.AccountDefaults {
	d := func(raw string) decimal.Decimal {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			panic(err)
		}
		return parsed
	}

	return config.AccountDefaults{
		Current: map[domain.Currency]config.CurrentDefaults{
			domain.CurrencyHTG: {
				MinimumBalance:         d("500"),
				DailyWithdrawalLimit:   d("100000"),
				MonthlyWithdrawalLimit: d("500000"),
				DailyDepositLimit:      d("1000000"),
			},
			domain.CurrencyUSD: {
				MinimumBalance:         d("25"),
				DailyWithdrawalLimit:   d("2000"),
				MonthlyWithdrawalLimit: d("10000"),
				DailyDepositLimit:      d("20000"),
			},
		},
		Term: map[domain.Currency]config.TermDefaults{
			domain.CurrencyHTG: {
				InterestRates: map[domain.TermType]decimal.Decimal{
					domain.TermThreeMonths:      d("0.025"),
					domain.TermSixMonths:        d("0.035"),
					domain.TermTwelveMonths:     d("0.045"),
					domain.TermTwentyFourMonths: d("0.055"),
				},
				Penalties: map[domain.TermType]decimal.Decimal{
					domain.TermThreeMonths:      d("0.05"),
					domain.TermSixMonths:        d("0.075"),
					domain.TermTwelveMonths:     d("0.10"),
					domain.TermTwentyFourMonths: d("0.15"),
				},
			},
			domain.CurrencyUSD: {
				InterestRates: map[domain.TermType]decimal.Decimal{
					domain.TermThreeMonths:      d("0.0125"),
					domain.TermSixMonths:        d("0.0175"),
					domain.TermTwelveMonths:     d("0.0225"),
					domain.TermTwentyFourMonths: d("0.0275"),
				},
				Penalties: map[domain.TermType]decimal.Decimal{
					domain.TermThreeMonths:      d("0.05"),
					domain.TermSixMonths:        d("0.075"),
					domain.TermTwelveMonths:     d("0.10"),
					domain.TermTwentyFourMonths: d("0.15"),
				},
			},
		},
	}
}

type testEnv struct {
	store     *memory.Store
	ledger    *memory.TransactionRepository
	customers *memory.CustomerDirectory
	branches  *memory.BranchDirectory
	actors    *memory.ActorDirectory
	current   *services.CurrentAccountService
	term      *services.TermSavingsService
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	ledger := memory.NewTransactionRepository(store)
	customers := memory.NewCustomerDirectory(map[string]string{
		"CUST-1": "Marie Joseph",
		"CUST-2": "Jean Baptiste",
		"CUST-3": "Rose Delva",
	})
	branches := memory.NewBranchDirectory(nil)
	actors := memory.NewActorDirectory(nil)
	defaults := testDefaults()

	return &testEnv{
		store:     store,
		ledger:    ledger,
		customers: customers,
		branches:  branches,
		actors:    actors,
		current:   services.NewCurrentAccountService(store, ledger, customers, branches, actors, defaults),
		term:      services.NewTermSavingsService(store, ledger, customers, branches, actors, defaults),
	}
}

func (e *testEnv) openCurrent(t *testing.T, customerID, currency, deposit string) models.AccountResponse {
	t.Helper()
	response, err := e.current.OpenAccount(context.Background(), models.CurrentAccountOpeningRequest{
		CustomerID:     customerID,
		BranchID:       1,
		Currency:       currency,
		InitialDeposit: deposit,
	}, "teller-1")
	if err != nil {
		t.Fatalf("open current account: %v", err)
	}
	return *response.Data
}

func (e *testEnv) openTerm(t *testing.T, customerID, currency, deposit, termType string) models.AccountResponse {
	t.Helper()
	response, err := e.term.OpenAccount(context.Background(), models.TermSavingsOpeningRequest{
		CustomerID:     customerID,
		BranchID:       1,
		Currency:       currency,
		InitialDeposit: deposit,
		TermType:       termType,
	}, "teller-1")
	if err != nil {
		t.Fatalf("open term savings account: %v", err)
	}
	return *response.Data
}

func (e *testEnv) account(t *testing.T, kind domain.AccountKind, id string) domain.Account {
	t.Helper()
	account, err := e.store.GetByID(context.Background(), kind, id)
	if err != nil {
		t.Fatalf("fetch account %s: %v", id, err)
	}
	return account
}

func (e *testEnv) rewind(t *testing.T, account domain.Account) {
	t.Helper()
	if _, err := e.store.Update(context.Background(), account); err != nil {
		t.Fatalf("rewind account %s: %v", account.AccountNumber, err)
	}
}

func (e *testEnv) transactions(t *testing.T, kind domain.AccountKind, accountID string) []domain.Transaction {
	t.Helper()
	entries, _, err := e.store.ListByAccount(context.Background(), kind, domain.TransactionFilter{
		AccountID: accountID,
		Page:      1,
		PageSize:  domain.MaxPageSize,
	})
	if err != nil {
		t.Fatalf("list transactions for %s: %v", accountID, err)
	}
	return entries
}

func mustData[T any](t *testing.T, response commons.Response[T], err error) T {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Data == nil {
		t.Fatal("expected response data")
	}
	return *response.Data
}
