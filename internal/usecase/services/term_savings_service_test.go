package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// matureAccount rewinds the opening and maturity dates so the account looks
// like it was opened elapsedDays ago and matured an hour ago.
func matureAccount(t *testing.T, env *testEnv, id string, elapsedDays int) domain.Account {
	t.Helper()
	account := env.account(t, domain.KindTermSavings, id)
	account.OpeningDate = time.Now().Add(-time.Duration(elapsedDays) * 24 * time.Hour)
	account.Term.MaturityDate = time.Now().Add(-time.Hour)
	env.rewind(t, account)
	return env.account(t, domain.KindTermSavings, id)
}

func TestOpenTermSavingsLocksTheDeposit(t *testing.T) {
	env := newTestEnv()

	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")

	if account.Balance != "10000.00" || account.AvailableBalance != "0.00" {
		t.Fatalf("expected funds locked until maturity, got %s / %s", account.Balance, account.AvailableBalance)
	}
	if account.Term == nil {
		t.Fatal("expected term details on the response")
	}
	if account.Term.InterestRate != "0.025" {
		t.Fatalf("expected default HTG three month rate 0.025, got %s", account.Term.InterestRate)
	}

	entries := env.transactions(t, domain.KindTermSavings, account.ID)
	if len(entries) != 1 || entries[0].Reference != "OPEN-"+account.AccountNumber {
		t.Fatalf("expected one opening entry, got %d", len(entries))
	}
}

func TestOpenTermSavingsRequiresDeposit(t *testing.T) {
	env := newTestEnv()

	_, err := env.term.OpenAccount(context.Background(), models.TermSavingsOpeningRequest{
		CustomerID: "CUST-1",
		BranchID:   1,
		Currency:   "HTG",
		TermType:   "THREE_MONTHS",
	}, "teller-1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without an initial deposit, got %v", err)
	}
}

func TestWithdrawalBeforeMaturityIsRejected(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")

	_, err := env.term.ProcessTransaction(context.Background(), models.TransactionRequest{
		AccountNumber: account.AccountNumber,
		Type:          "WITHDRAWAL",
		Amount:        "1000",
		Currency:      "HTG",
	}, "teller-1")
	if !errors.Is(err, domain.ErrEarlyWithdrawalNotAllowed) {
		t.Fatalf("expected ErrEarlyWithdrawalNotAllowed, got %v", err)
	}
}

func TestDepositOnTermAccountGrowsTheLockedBalance(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")

	depositResp, err := env.term.ProcessTransaction(context.Background(), models.TransactionRequest{
		AccountNumber: account.AccountNumber,
		Type:          "DEPOSIT",
		Amount:        "2000",
		Currency:      "HTG",
	}, "teller-1")
	deposit := mustData(t, depositResp, err)
	if !strings.HasPrefix(deposit.Reference, "DEP-"+account.AccountNumber) {
		t.Fatalf("unexpected deposit reference %q", deposit.Reference)
	}
	if deposit.Description != "Dépôt sur dépôt à terme" {
		t.Fatalf("unexpected description %q", deposit.Description)
	}

	stored := env.account(t, domain.KindTermSavings, account.ID)
	if stored.Balance.StringFixed(2) != "12000.00" || !stored.AvailableBalance.IsZero() {
		t.Fatalf("expected 12000.00 locked, got %s / %s", stored.Balance.StringFixed(2), stored.AvailableBalance.StringFixed(2))
	}
}

func TestCalculateInterestAtMaturityUnlocksTheBalance(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")

	if _, err := env.term.CalculateInterest(context.Background(), account.ID); !errors.Is(err, domain.ErrMaturityNotReached) {
		t.Fatalf("expected ErrMaturityNotReached before maturity, got %v", err)
	}

	matureAccount(t, env, account.ID, 90)

	// 10000 * 0.025 * 90 / 365.25 rounded to cents.
	resultResp, err := env.term.CalculateInterest(context.Background(), account.ID)
	result := mustData(t, resultResp, err)
	if result.InterestAccrued != "61.60" {
		t.Fatalf("expected interest 61.60, got %s", result.InterestAccrued)
	}
	if result.ElapsedDays != 90 {
		t.Fatalf("expected 90 elapsed days, got %d", result.ElapsedDays)
	}

	stored := env.account(t, domain.KindTermSavings, account.ID)
	if stored.Balance.StringFixed(2) != "10061.60" {
		t.Fatalf("expected balance 10061.60, got %s", stored.Balance.StringFixed(2))
	}
	if !stored.AvailableBalance.Equal(stored.Balance) {
		t.Fatal("maturity must unlock the full balance")
	}
	if stored.Term.LastInterestCalculation == nil {
		t.Fatal("expected the interest calculation stamp")
	}
}

func TestCalculateInterestTwiceIsANoOp(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")
	matureAccount(t, env, account.ID, 90)

	firstResp, err := env.term.CalculateInterest(context.Background(), account.ID)
	first := mustData(t, firstResp, err)
	secondResp, err := env.term.CalculateInterest(context.Background(), account.ID)
	second := mustData(t, secondResp, err)

	if first.InterestAccrued != second.InterestAccrued {
		t.Fatalf("repeat accrual must report the same figures: %s vs %s", first.InterestAccrued, second.InterestAccrued)
	}
	if env.account(t, domain.KindTermSavings, account.ID).Balance.StringFixed(2) != "10061.60" {
		t.Fatal("repeat accrual must not move the balance")
	}

	var interestEntries int
	for _, entry := range env.transactions(t, domain.KindTermSavings, account.ID) {
		if entry.Type == domain.TransactionTypeInterest {
			interestEntries++
		}
	}
	if interestEntries != 1 {
		t.Fatalf("expected exactly one interest entry, got %d", interestEntries)
	}
}

func TestWithdrawalAfterMaturityIsLimitedToAvailableBalance(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")
	matureAccount(t, env, account.ID, 90)
	if _, err := env.term.CalculateInterest(context.Background(), account.ID); err != nil {
		t.Fatalf("accrue interest: %v", err)
	}

	withdrawalResp, err := env.term.ProcessTransaction(context.Background(), models.TransactionRequest{
		AccountNumber: account.AccountNumber,
		Type:          "WITHDRAWAL",
		Amount:        "61.60",
		Currency:      "HTG",
	}, "teller-1")
	withdrawal := mustData(t, withdrawalResp, err)
	if withdrawal.BalanceAfter != "10000.00" {
		t.Fatalf("unexpected balance after withdrawal %s", withdrawal.BalanceAfter)
	}
	if withdrawal.Description != "Retrait sur dépôt à terme" {
		t.Fatalf("unexpected description %q", withdrawal.Description)
	}

	_, err = env.term.ProcessTransaction(context.Background(), models.TransactionRequest{
		AccountNumber: account.AccountNumber,
		Type:          "WITHDRAWAL",
		Amount:        "20000",
		Currency:      "HTG",
	}, "teller-1")
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestRenewCapitalizingInterestRelocksEverything(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")
	matureAccount(t, env, account.ID, 90)

	renewedResp, err := env.term.RenewAccount(context.Background(), account.ID, models.TermRenewalRequest{
		TermType:           "SIX_MONTHS",
		CapitalizeInterest: true,
	}, "teller-1")
	renewed := mustData(t, renewedResp, err)

	if renewed.Balance != "10061.60" || renewed.AvailableBalance != "0.00" {
		t.Fatalf("expected capitalized and relocked funds, got %s / %s", renewed.Balance, renewed.AvailableBalance)
	}
	if renewed.Term.TermType != "SIX_MONTHS" || renewed.Term.InterestRate != "0.035" {
		t.Fatalf("unexpected renewed term %s at %s", renewed.Term.TermType, renewed.Term.InterestRate)
	}
	if renewed.Term.AccruedInterest != "0.00" {
		t.Fatalf("renewal must reset accrued interest, got %s", renewed.Term.AccruedInterest)
	}
	if renewed.Term.LastInterestCalculation != nil {
		t.Fatal("renewal must clear the interest calculation stamp")
	}
}

func TestRenewPayingOutInterestWithdrawsItFirst(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")
	matureAccount(t, env, account.ID, 90)

	renewedResp, err := env.term.RenewAccount(context.Background(), account.ID, models.TermRenewalRequest{
		CapitalizeInterest: false,
	}, "teller-1")
	renewed := mustData(t, renewedResp, err)

	if renewed.Balance != "10000.00" || renewed.AvailableBalance != "0.00" {
		t.Fatalf("expected principal relocked without interest, got %s / %s", renewed.Balance, renewed.AvailableBalance)
	}
	if renewed.Term.TermType != "THREE_MONTHS" {
		t.Fatalf("renewal without a term keeps the current one, got %s", renewed.Term.TermType)
	}

	var payout bool
	for _, entry := range env.transactions(t, domain.KindTermSavings, account.ID) {
		if entry.Type == domain.TransactionTypeWithdrawal && entry.Description == "Retrait des intérêts - Renouvellement" {
			payout = true
			if entry.Amount.StringFixed(2) != "61.60" {
				t.Fatalf("unexpected payout amount %s", entry.Amount.StringFixed(2))
			}
		}
	}
	if !payout {
		t.Fatal("expected an interest payout entry")
	}
}

func TestRenewBeforeMaturityIsRejected(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")

	_, err := env.term.RenewAccount(context.Background(), account.ID, models.TermRenewalRequest{
		CapitalizeInterest: true,
	}, "teller-1")
	if !errors.Is(err, domain.ErrMaturityNotReached) {
		t.Fatalf("expected ErrMaturityNotReached, got %v", err)
	}
}

func TestEarlyClosureRequiresAPenaltyPercentage(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")

	// Without a penalty percentage the account simply has not matured.
	_, err := env.term.CloseAccount(context.Background(), account.ID, models.TermClosureRequest{
		Reason: "urgence familiale",
	}, "supervisor-1")
	if !errors.Is(err, domain.ErrMaturityNotReached) {
		t.Fatalf("expected ErrMaturityNotReached without a penalty percentage, got %v", err)
	}

	zero := "0"
	_, err = env.term.CloseAccount(context.Background(), account.ID, models.TermClosureRequest{
		Reason:                 "urgence familiale",
		EarlyWithdrawalPenalty: &zero,
	}, "supervisor-1")
	if !errors.Is(err, domain.ErrMaturityNotReached) {
		t.Fatalf("expected ErrMaturityNotReached for a zero percentage, got %v", err)
	}

	bad := "abc"
	_, err = env.term.CloseAccount(context.Background(), account.ID, models.TermClosureRequest{
		EarlyWithdrawalPenalty: &bad,
	}, "supervisor-1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for a non-numeric percentage, got %v", err)
	}

	if env.account(t, domain.KindTermSavings, account.ID).Status != domain.AccountStatusActive {
		t.Fatal("rejected closures must leave the account active")
	}
}

func TestEarlyClosureAppliesTheCallerSuppliedPenalty(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")

	pct := "5"
	closedResp, err := env.term.CloseAccount(context.Background(), account.ID, models.TermClosureRequest{
		Reason:                 "urgence familiale",
		EarlyWithdrawalPenalty: &pct,
	}, "supervisor-1")
	closed := mustData(t, closedResp, err)

	if closed.Status != "CLOSED" || closed.Balance != "0.00" {
		t.Fatalf("unexpected closure state: %s balance %s", closed.Status, closed.Balance)
	}
	if !strings.Contains(closed.ClosureReason, "urgence familiale") ||
		!strings.Contains(closed.ClosureReason, "Pénalité: 500.00 HTG") ||
		!strings.Contains(closed.ClosureReason, "Net versé: 9500.00 HTG") {
		t.Fatalf("unexpected closure reason %q", closed.ClosureReason)
	}

	var payout bool
	for _, entry := range env.transactions(t, domain.KindTermSavings, account.ID) {
		if strings.HasPrefix(entry.Reference, "CLOSE-"+account.AccountNumber) {
			payout = true
			if entry.Fees == nil || entry.Fees.StringFixed(2) != "500.00" {
				t.Fatal("expected the 5 percent penalty recorded as fees")
			}
			if entry.Amount.StringFixed(2) != "10000.00" {
				t.Fatalf("early closure withdraws the full balance, got %s", entry.Amount.StringFixed(2))
			}
		}
	}
	if !payout {
		t.Fatal("expected an early closure payout entry")
	}
}

func TestMaturedClosureAccruesThenPaysOut(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")
	matureAccount(t, env, account.ID, 90)

	closedResp, err := env.term.CloseAccount(context.Background(), account.ID, models.TermClosureRequest{
		Reason: "échéance atteinte",
	}, "supervisor-1")
	closed := mustData(t, closedResp, err)

	if closed.Status != "CLOSED" || closed.Balance != "0.00" {
		t.Fatalf("unexpected closure state: %s balance %s", closed.Status, closed.Balance)
	}

	var payout bool
	for _, entry := range env.transactions(t, domain.KindTermSavings, account.ID) {
		if entry.Reference == "MATURE-CLOSE-"+account.AccountNumber {
			payout = true
			if entry.Amount.StringFixed(2) != "10061.60" {
				t.Fatalf("matured closure pays out principal plus interest, got %s", entry.Amount.StringFixed(2))
			}
			if entry.Description != "Retrait à l'échéance" {
				t.Fatalf("unexpected payout description %q", entry.Description)
			}
		}
	}
	if !payout {
		t.Fatal("expected a matured closure payout entry")
	}

	// Double closure is rejected.
	_, err = env.term.CloseAccount(context.Background(), account.ID, models.TermClosureRequest{}, "supervisor-1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestDeleteTermAccountOnlyAfterClosure(t *testing.T) {
	env := newTestEnv()
	account := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")

	if _, err := env.term.DeleteAccount(context.Background(), account.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState deleting an active account, got %v", err)
	}

	pct := "5"
	if _, err := env.term.CloseAccount(context.Background(), account.ID, models.TermClosureRequest{
		EarlyWithdrawalPenalty: &pct,
	}, "supervisor-1"); err != nil {
		t.Fatalf("close account: %v", err)
	}

	if _, err := env.term.DeleteAccount(context.Background(), account.ID); err != nil {
		t.Fatalf("delete closed account: %v", err)
	}
	if _, err := env.term.GetAccount(context.Background(), account.ID); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound after deletion, got %v", err)
	}
}

func TestBatchInterestRunSkipsAlreadyAccrued(t *testing.T) {
	env := newTestEnv()
	pending := env.openTerm(t, "CUST-1", "HTG", "10000", "THREE_MONTHS")
	done := env.openTerm(t, "CUST-2", "HTG", "5000", "THREE_MONTHS")
	env.openTerm(t, "CUST-3", "HTG", "2000", "THREE_MONTHS") // not matured

	matureAccount(t, env, pending.ID, 90)
	matureAccount(t, env, done.ID, 90)
	if _, err := env.term.CalculateInterest(context.Background(), done.ID); err != nil {
		t.Fatalf("accrue interest: %v", err)
	}

	batchResp, err := env.term.CalculateInterestForAll(context.Background())
	batch := mustData(t, batchResp, err)
	if batch.Processed != 1 || batch.Skipped != 1 {
		t.Fatalf("expected 1 processed and 1 skipped, got %d / %d", batch.Processed, batch.Skipped)
	}
	if len(batch.Results) != 1 || batch.Results[0].AccountNumber != pending.AccountNumber {
		t.Fatal("expected the pending account in the batch results")
	}
}
