package commons_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

func TestStatusForMapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{domain.ErrRecordNotFound, http.StatusNotFound},
		{domain.ErrDuplicateAccount, http.StatusConflict},
		{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{domain.ErrAccountInactive, http.StatusUnprocessableEntity},
		{domain.ErrInvalidState, http.StatusUnprocessableEntity},
		{domain.ErrMaturityNotReached, http.StatusUnprocessableEntity},
		{domain.ErrEarlyWithdrawalNotAllowed, http.StatusUnprocessableEntity},
		{domain.ErrUnsupportedReversal, http.StatusUnprocessableEntity},
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrCurrencyMismatch, http.StatusBadRequest},
		{errors.New("database gone"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := commons.StatusFor(tc.err); got != tc.want {
			t.Fatalf("StatusFor(%v): expected %d, got %d", tc.err, tc.want, got)
		}
	}

	// Wrapped sentinels keep their mapping.
	wrapped := fmt.Errorf("%w: balance would fall below the account floor", domain.ErrInsufficientFunds)
	if got := commons.StatusFor(wrapped); got != http.StatusUnprocessableEntity {
		t.Fatalf("wrapped sentinel: expected 422, got %d", got)
	}
}
