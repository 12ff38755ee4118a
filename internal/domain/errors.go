package domain

import "errors"

var (
	ErrRecordNotFound            = errors.New("record not found")
	ErrCurrencyMismatch          = errors.New("currency does not match account currency")
	ErrAccountInactive           = errors.New("account is not active")
	ErrInvalidState              = errors.New("operation not valid for current status")
	ErrInsufficientFunds         = errors.New("insufficient funds")
	ErrDuplicateAccount          = errors.New("customer already holds an active account in this currency")
	ErrMaturityNotReached        = errors.New("account has not reached maturity")
	ErrEarlyWithdrawalNotAllowed = errors.New("withdrawal not allowed before maturity")
	ErrUnsupportedReversal       = errors.New("transaction type cannot be reversed")
	ErrValidation                = errors.New("validation failed")
)
