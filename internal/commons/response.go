package commons

import (
	"errors"
	"net/http"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errs ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

// StatusFor maps a domain error onto the HTTP status the channel surface
// should answer with.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrMaturityNotReached),
		errors.Is(err, domain.ErrEarlyWithdrawalNotAllowed),
		errors.Is(err, domain.ErrUnsupportedReversal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
