package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/lib/pq"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

const (
	accountNumberDigits   = 11
	numberGenMaxAttempts  = 5
	pqUniqueViolationCode = "23505"
)

// generateAccountNumber returns a currency-prefixed account number that is
// unused across every account kind: "G" (HTG) or "D" (USD) followed by eleven
// random digits. The collision check keeps the rare clash from surfacing as a
// database error; the unique constraint remains the final arbiter.
func generateAccountNumber(ctx context.Context, repo repo_interfaces.AccountRepository, currency domain.Currency) (string, error) {
	for attempt := 0; attempt < numberGenMaxAttempts; attempt++ {
		candidate, err := randomDigits(accountNumberDigits)
		if err != nil {
			return "", err
		}
		candidate = currency.Prefix() + candidate

		exists, err := repo.AccountNumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("account number generation exhausted %d attempts", numberGenMaxAttempts)
}

func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		idx, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("random digit: %w", err)
		}
		digits[i] = byte('0' + idx.Int64())
	}
	return string(digits), nil
}

// isUniqueViolation detects the postgres duplicate-key error raised when two
// openings race past the pre-insert collision check.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolationCode
}
