package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	KindCurrent     AccountKind = "CURRENT"
	KindSavings     AccountKind = "SAVINGS"
	KindTermSavings AccountKind = "TERM_SAVINGS"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusInactive  AccountStatus = "INACTIVE"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

type Currency string

const (
	CurrencyHTG Currency = "HTG"
	CurrencyUSD Currency = "USD"
)

// Prefix returns the single-letter account number prefix for the currency.
func (c Currency) Prefix() string {
	if c == CurrencyUSD {
		return "D"
	}
	return "G"
}

func ParseCurrency(raw string) (Currency, bool) {
	switch Currency(raw) {
	case CurrencyHTG, CurrencyUSD:
		return Currency(raw), true
	}
	return "", false
}

type TermType string

const (
	TermThreeMonths      TermType = "THREE_MONTHS"
	TermSixMonths        TermType = "SIX_MONTHS"
	TermTwelveMonths     TermType = "TWELVE_MONTHS"
	TermTwentyFourMonths TermType = "TWENTY_FOUR_MONTHS"
)

// Months returns the term length; unknown values fall back to twelve months.
func (t TermType) Months() int {
	switch t {
	case TermThreeMonths:
		return 3
	case TermSixMonths:
		return 6
	case TermTwelveMonths:
		return 12
	case TermTwentyFourMonths:
		return 24
	}
	return 12
}

func (t TermType) Label() string {
	switch t {
	case TermThreeMonths:
		return "3 Mois"
	case TermSixMonths:
		return "6 Mois"
	case TermTwentyFourMonths:
		return "24 Mois"
	}
	return "12 Mois"
}

func ParseTermType(raw string) (TermType, bool) {
	switch TermType(raw) {
	case TermThreeMonths, TermSixMonths, TermTwelveMonths, TermTwentyFourMonths:
		return TermType(raw), true
	}
	return "", false
}

// Account is the single polymorphic account entity. Kind selects which of the
// optional detail blocks is populated: Current carries limits and signers,
// TermSavings carries the term schedule. Ordinary savings accounts live in an
// external service and only appear here as aggregation summaries.
type Account struct {
	ID               string
	AccountNumber    string
	Kind             AccountKind
	CustomerID       string
	BranchID         int
	Currency         Currency
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
	Status           AccountStatus
	OpeningDate      time.Time
	LastTransaction  *time.Time
	ClosedAt         *time.Time
	ClosedBy         string
	ClosureReason    string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Current *CurrentDetails
	Term    *TermDetails
}

// CurrentDetails holds the limit set and security material of a current
// account. OverdraftLimit of zero means overdraft is disabled and the
// MinimumBalance floor applies instead.
type CurrentDetails struct {
	MinimumBalance         decimal.Decimal
	DailyWithdrawalLimit   decimal.Decimal
	MonthlyWithdrawalLimit decimal.Decimal
	DailyDepositLimit      decimal.Decimal
	OverdraftLimit         decimal.Decimal

	PinHash            string
	SecurityQuestion   string
	SecurityAnswerHash string
	DepositMethod      string
	OriginOfFunds      string
	TransactionFreq    string
	AccountPurpose     string

	Signers []AuthorizedSigner
}

// TermDetails holds the term-deposit schedule. AvailableBalance on the parent
// account stays at zero until interest is posted at or after MaturityDate.
type TermDetails struct {
	TermType                TermType
	MaturityDate            time.Time
	InterestRate            decimal.Decimal
	AccruedInterest         decimal.Decimal
	EarlyWithdrawalPenalty  decimal.Decimal
	LastInterestCalculation *time.Time
}

// EffectiveFloor is the lowest balance a withdrawal may leave on a current
// account: -overdraftLimit when overdraft is enabled, minimumBalance otherwise.
func (d CurrentDetails) EffectiveFloor() decimal.Decimal {
	if d.OverdraftLimit.IsPositive() {
		return d.OverdraftLimit.Neg()
	}
	return d.MinimumBalance
}

// Matured reports whether the term has reached maturity at the given instant.
func (d TermDetails) Matured(now time.Time) bool {
	return !d.MaturityDate.After(now)
}

// InterestAccruedSinceMaturity reports whether interest has already been
// posted for the current term. Renewal clears LastInterestCalculation, so a
// stamp at or after maturity means the balance is already unlocked.
func (d TermDetails) InterestAccruedSinceMaturity() bool {
	return d.LastInterestCalculation != nil && !d.LastInterestCalculation.Before(d.MaturityDate)
}

type AuthorizedSigner struct {
	ID                 string
	AccountID          string
	FullName           string
	Role               string
	DocumentType       string
	DocumentNumber     string
	Phone              string
	Relationship       string
	Address            string
	AuthorizationLimit decimal.Decimal
	IsActive           bool
	CreatedAt          time.Time
}
