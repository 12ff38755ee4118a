package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

type TermSavingsOpeningRequest struct {
	CustomerID     string `json:"customerId"`
	BranchID       int    `json:"branchId"`
	Currency       string `json:"currency"`
	InitialDeposit string `json:"initialDeposit"`
	TermType       string `json:"termType"`

	InterestRate           *string `json:"interestRate,omitempty"`
	EarlyWithdrawalPenalty *string `json:"earlyWithdrawalPenalty,omitempty"`
}

func (r TermSavingsOpeningRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if r.BranchID <= 0 {
		errs = append(errs, "branchId is required")
	}
	if _, ok := domain.ParseCurrency(strings.TrimSpace(r.Currency)); !ok {
		errs = append(errs, "currency must be one of HTG, USD")
	}
	if _, ok := domain.ParseTermType(strings.TrimSpace(r.TermType)); !ok {
		errs = append(errs, "termType must be one of THREE_MONTHS, SIX_MONTHS, TWELVE_MONTHS, TWENTY_FOUR_MONTHS")
	}
	deposit := strings.TrimSpace(r.InitialDeposit)
	if deposit == "" {
		errs = append(errs, "initialDeposit is required")
	} else if parsed, err := decimal.NewFromString(deposit); err != nil {
		errs = append(errs, "initialDeposit must be numeric")
	} else if !parsed.IsPositive() {
		errs = append(errs, "initialDeposit must be greater than zero")
	}
	if r.InterestRate != nil {
		if parsed, err := decimal.NewFromString(strings.TrimSpace(*r.InterestRate)); err != nil || parsed.IsNegative() {
			errs = append(errs, "interestRate must be a non-negative number")
		}
	}
	if r.EarlyWithdrawalPenalty != nil {
		if parsed, err := decimal.NewFromString(strings.TrimSpace(*r.EarlyWithdrawalPenalty)); err != nil || parsed.IsNegative() {
			errs = append(errs, "earlyWithdrawalPenalty must be a non-negative number")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

type TermRenewalRequest struct {
	TermType           string  `json:"termType,omitempty"`
	InterestRate       *string `json:"interestRate,omitempty"`
	CapitalizeInterest bool    `json:"capitalizeInterest"`
}

func (r TermRenewalRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.TermType) != "" {
		if _, ok := domain.ParseTermType(strings.TrimSpace(r.TermType)); !ok {
			errs = append(errs, "termType must be one of THREE_MONTHS, SIX_MONTHS, TWELVE_MONTHS, TWENTY_FOUR_MONTHS")
		}
	}
	if r.InterestRate != nil {
		if parsed, err := decimal.NewFromString(strings.TrimSpace(*r.InterestRate)); err != nil || parsed.IsNegative() {
			errs = append(errs, "interestRate must be a non-negative number")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

// TermClosureRequest closes a term account. The penalty percentage is only
// consulted before maturity, where it is the caller's explicit consent to an
// early closure.
type TermClosureRequest struct {
	Reason                 string  `json:"reason,omitempty"`
	EarlyWithdrawalPenalty *string `json:"earlyWithdrawalPenaltyPercent,omitempty"`
}

type InterestCalculationResponse struct {
	AccountNumber   string `json:"accountNumber"`
	InterestAccrued string `json:"interestAccrued"`
	InterestRate    string `json:"interestRate"`
	ElapsedDays     int    `json:"elapsedDays"`
	CalculatedAt    string `json:"calculatedAt"`
}

type BatchInterestResponse struct {
	Processed int                           `json:"processed"`
	Skipped   int                           `json:"skipped"`
	Results   []InterestCalculationResponse `json:"results"`
}
