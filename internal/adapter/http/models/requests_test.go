package models_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

func TestCurrentAccountOpeningRequestValidate(t *testing.T) {
	valid := models.CurrentAccountOpeningRequest{
		CustomerID:     "CUST-1",
		BranchID:       1,
		Currency:       "HTG",
		InitialDeposit: "2500",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	// No deposit at all is allowed for current accounts.
	valid.InitialDeposit = ""
	if err := valid.Validate(); err != nil {
		t.Fatalf("zero-deposit opening rejected: %v", err)
	}

	bad := models.CurrentAccountOpeningRequest{Currency: "EUR", InitialDeposit: "-5"}
	err := bad.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, want := range []string{"customerId", "branchId", "currency", "initialDeposit"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}

	limit := "abc"
	withBadLimit := valid
	withBadLimit.OverdraftLimit = &limit
	if err := withBadLimit.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for a non-numeric limit, got %v", err)
	}
}

func TestCurrentAccountUpdateRequestValidate(t *testing.T) {
	status := "SUSPENDED"
	valid := models.CurrentAccountUpdateRequest{Status: &status}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid update rejected: %v", err)
	}

	bogus := "FROZEN"
	if err := (models.CurrentAccountUpdateRequest{Status: &bogus}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatal("expected ErrValidation for an unknown status")
	}

	negative := "-100"
	if err := (models.CurrentAccountUpdateRequest{MinimumBalance: &negative}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatal("expected ErrValidation for a negative limit")
	}
}

func TestTransactionRequestValidate(t *testing.T) {
	valid := models.TransactionRequest{
		AccountNumber: "G12345678901",
		Type:          "DEPOSIT",
		Amount:        "100",
		Currency:      "HTG",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := map[string]models.TransactionRequest{
		"missing account": {Type: "DEPOSIT", Amount: "100", Currency: "HTG"},
		"bad type":        {AccountNumber: "G1", Type: "REFUND", Amount: "100", Currency: "HTG"},
		"zero amount":     {AccountNumber: "G1", Type: "DEPOSIT", Amount: "0", Currency: "HTG"},
		"bad amount":      {AccountNumber: "G1", Type: "DEPOSIT", Amount: "ten", Currency: "HTG"},
		"bad currency":    {AccountNumber: "G1", Type: "DEPOSIT", Amount: "100", Currency: "GBP"},
	}
	for name, req := range cases {
		if err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestTransferRequestValidate(t *testing.T) {
	valid := models.TransferRequest{
		SourceAccountNumber:      "G11111111111",
		DestinationAccountNumber: "G22222222222",
		Amount:                   "50",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transfer rejected: %v", err)
	}

	same := valid
	same.DestinationAccountNumber = same.SourceAccountNumber
	err := same.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for a same-account transfer, got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot be the same") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestTermSavingsOpeningRequestValidate(t *testing.T) {
	valid := models.TermSavingsOpeningRequest{
		CustomerID:     "CUST-1",
		BranchID:       1,
		Currency:       "USD",
		InitialDeposit: "1000",
		TermType:       "TWELVE_MONTHS",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	noDeposit := valid
	noDeposit.InitialDeposit = ""
	if err := noDeposit.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatal("expected ErrValidation without a deposit")
	}

	zeroDeposit := valid
	zeroDeposit.InitialDeposit = "0"
	if err := zeroDeposit.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatal("expected ErrValidation for a zero deposit")
	}

	badTerm := valid
	badTerm.TermType = "NINE_MONTHS"
	if err := badTerm.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatal("expected ErrValidation for an unknown term type")
	}
}

func TestTermRenewalRequestValidate(t *testing.T) {
	if err := (models.TermRenewalRequest{CapitalizeInterest: true}).Validate(); err != nil {
		t.Fatalf("empty renewal rejected: %v", err)
	}
	if err := (models.TermRenewalRequest{TermType: "SIX_MONTHS"}).Validate(); err != nil {
		t.Fatalf("valid renewal rejected: %v", err)
	}
	if err := (models.TermRenewalRequest{TermType: "FOREVER"}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatal("expected ErrValidation for an unknown term type")
	}

	rate := "-0.01"
	if err := (models.TermRenewalRequest{InterestRate: &rate}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatal("expected ErrValidation for a negative rate")
	}
}

func TestAccountFilterRequestToFilter(t *testing.T) {
	filter, err := models.AccountFilterRequest{
		Currency:   "HTG",
		Status:     "ACTIVE",
		BranchID:   "2",
		DateFrom:   "2026-01-01",
		MinBalance: "100",
		SortBy:     "balance",
		Page:       "2",
		PageSize:   "10",
	}.ToFilter()
	if err != nil {
		t.Fatalf("valid filter rejected: %v", err)
	}
	if filter.Currency == nil || *filter.Currency != domain.CurrencyHTG {
		t.Fatal("expected parsed currency")
	}
	if filter.Status == nil || *filter.Status != domain.AccountStatusActive {
		t.Fatal("expected parsed status")
	}
	if filter.BranchID == nil || *filter.BranchID != 2 {
		t.Fatal("expected parsed branch id")
	}
	if filter.DateFrom == nil || filter.DateFrom.Year() != 2026 {
		t.Fatal("expected parsed date")
	}
	if filter.SortBy != domain.SortByBalance || filter.Page != 2 || filter.PageSize != 10 {
		t.Fatalf("unexpected sort or pagination: %s %d %d", filter.SortBy, filter.Page, filter.PageSize)
	}

	if _, err := (models.AccountFilterRequest{SortBy: "favoriteColor"}).ToFilter(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for an unknown sort field, got %v", err)
	}
	if _, err := (models.AccountFilterRequest{Currency: "EUR"}).ToFilter(); !errors.Is(err, domain.ErrValidation) {
		t.Fatal("expected ErrValidation for an unknown currency")
	}
	if _, err := (models.AccountFilterRequest{DateTo: "not-a-date"}).ToFilter(); !errors.Is(err, domain.ErrValidation) {
		t.Fatal("expected ErrValidation for an unparseable date")
	}
}

func TestAccountFilterRequestClampsPagination(t *testing.T) {
	filter, err := models.AccountFilterRequest{Page: "0", PageSize: "1000"}.ToFilter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", filter.Page)
	}
	if filter.PageSize != domain.MaxPageSize {
		t.Fatalf("expected page size clamped to %d, got %d", domain.MaxPageSize, filter.PageSize)
	}
}
