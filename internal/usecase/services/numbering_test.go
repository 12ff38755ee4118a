package services

import (
	"context"
	"strings"
	"testing"

	"github.com/lib/pq"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

type numberCheckStub struct {
	repo_interfaces.AccountRepository
	collisions int
	calls      int
}

func (s *numberCheckStub) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	s.calls++
	return s.calls <= s.collisions, nil
}

func TestGenerateAccountNumberFormat(t *testing.T) {
	cases := []struct {
		currency domain.Currency
		prefix   string
	}{
		{domain.CurrencyHTG, "G"},
		{domain.CurrencyUSD, "D"},
	}

	for _, tc := range cases {
		number, err := generateAccountNumber(context.Background(), &numberCheckStub{}, tc.currency)
		if err != nil {
			t.Fatalf("generate %s number: %v", tc.currency, err)
		}
		if !strings.HasPrefix(number, tc.prefix) {
			t.Fatalf("expected prefix %s, got %q", tc.prefix, number)
		}
		if len(number) != accountNumberDigits+1 {
			t.Fatalf("expected %d characters, got %q", accountNumberDigits+1, number)
		}
		for _, r := range number[1:] {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits after the prefix, got %q", number)
			}
		}
	}
}

func TestGenerateAccountNumberRetriesPastCollisions(t *testing.T) {
	stub := &numberCheckStub{collisions: numberGenMaxAttempts - 1}
	if _, err := generateAccountNumber(context.Background(), stub, domain.CurrencyHTG); err != nil {
		t.Fatalf("expected the last attempt to succeed: %v", err)
	}
	if stub.calls != numberGenMaxAttempts {
		t.Fatalf("expected %d existence checks, got %d", numberGenMaxAttempts, stub.calls)
	}
}

func TestGenerateAccountNumberGivesUpAfterMaxAttempts(t *testing.T) {
	stub := &numberCheckStub{collisions: numberGenMaxAttempts}
	if _, err := generateAccountNumber(context.Background(), stub, domain.CurrencyHTG); err == nil {
		t.Fatal("expected an error once every attempt collides")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pq.Error{Code: pqUniqueViolationCode}) {
		t.Fatal("expected the duplicate key code to match")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("foreign key violations must not match")
	}
	if isUniqueViolation(context.Canceled) {
		t.Fatal("unrelated errors must not match")
	}
}
