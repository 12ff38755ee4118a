package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

type SignerRequest struct {
	FullName           string `json:"fullName"`
	Role               string `json:"role,omitempty"`
	DocumentType       string `json:"documentType,omitempty"`
	DocumentNumber     string `json:"documentNumber"`
	Phone              string `json:"phone,omitempty"`
	Relationship       string `json:"relationshipToCustomer,omitempty"`
	Address            string `json:"address,omitempty"`
	AuthorizationLimit string `json:"authorizationLimit,omitempty"`
}

type CurrentAccountOpeningRequest struct {
	CustomerID     string `json:"customerId"`
	BranchID       int    `json:"branchId"`
	Currency       string `json:"currency"`
	InitialDeposit string `json:"initialDeposit,omitempty"`

	MinimumBalance         *string `json:"minimumBalance,omitempty"`
	DailyWithdrawalLimit   *string `json:"dailyWithdrawalLimit,omitempty"`
	MonthlyWithdrawalLimit *string `json:"monthlyWithdrawalLimit,omitempty"`
	DailyDepositLimit      *string `json:"dailyDepositLimit,omitempty"`
	OverdraftLimit         *string `json:"overdraftLimit,omitempty"`

	Pin                  string `json:"pin,omitempty"`
	SecurityQuestion     string `json:"securityQuestion,omitempty"`
	SecurityAnswer       string `json:"securityAnswer,omitempty"`
	DepositMethod        string `json:"depositMethod,omitempty"`
	OriginOfFunds        string `json:"originOfFunds,omitempty"`
	TransactionFrequency string `json:"transactionFrequency,omitempty"`
	AccountPurpose       string `json:"accountPurpose,omitempty"`

	AuthorizedSigners []SignerRequest `json:"authorizedSigners,omitempty"`
}

func (r CurrentAccountOpeningRequest) Validate() error {
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
	if strings.TrimSpace(r.InitialDeposit) != "" {
		if parsed, err := decimal.NewFromString(strings.TrimSpace(r.InitialDeposit)); err != nil {
			errs = append(errs, "initialDeposit must be numeric")
		} else if parsed.IsNegative() {
			errs = append(errs, "initialDeposit cannot be negative")
		}
	}
	for i, opt := range []*string{r.MinimumBalance, r.DailyWithdrawalLimit, r.MonthlyWithdrawalLimit, r.DailyDepositLimit, r.OverdraftLimit} {
		if opt == nil {
			continue
		}
		if parsed, err := decimal.NewFromString(strings.TrimSpace(*opt)); err != nil || parsed.IsNegative() {
			names := []string{"minimumBalance", "dailyWithdrawalLimit", "monthlyWithdrawalLimit", "dailyDepositLimit", "overdraftLimit"}
			errs = append(errs, names[i]+" must be a non-negative number")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

type CurrentAccountUpdateRequest struct {
	Status                 *string         `json:"status,omitempty"`
	MinimumBalance         *string         `json:"minimumBalance,omitempty"`
	DailyWithdrawalLimit   *string         `json:"dailyWithdrawalLimit,omitempty"`
	MonthlyWithdrawalLimit *string         `json:"monthlyWithdrawalLimit,omitempty"`
	DailyDepositLimit      *string         `json:"dailyDepositLimit,omitempty"`
	OverdraftLimit         *string         `json:"overdraftLimit,omitempty"`
	AuthorizedSigners      []SignerRequest `json:"authorizedSigners,omitempty"`
}

func (r CurrentAccountUpdateRequest) Validate() error {
	var errs []string

	if r.Status != nil {
		switch domain.AccountStatus(*r.Status) {
		case domain.AccountStatusActive, domain.AccountStatusSuspended, domain.AccountStatusInactive, domain.AccountStatusClosed:
		default:
			errs = append(errs, "status is not a valid account status")
		}
	}
	for i, opt := range []*string{r.MinimumBalance, r.DailyWithdrawalLimit, r.MonthlyWithdrawalLimit, r.DailyDepositLimit, r.OverdraftLimit} {
		if opt == nil {
			continue
		}
		if parsed, err := decimal.NewFromString(strings.TrimSpace(*opt)); err != nil || parsed.IsNegative() {
			names := []string{"minimumBalance", "dailyWithdrawalLimit", "monthlyWithdrawalLimit", "dailyDepositLimit", "overdraftLimit"}
			errs = append(errs, names[i]+" must be a non-negative number")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

type TransactionRequest struct {
	AccountNumber string `json:"accountNumber"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"description,omitempty"`
	BranchID      int    `json:"branchId,omitempty"`
}

func (r TransactionRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}
	if _, ok := domain.ParseTransactionType(strings.TrimSpace(r.Type)); !ok {
		errs = append(errs, "type must be one of DEPOSIT, WITHDRAWAL, INTEREST, FEE, OTHER")
	}
	if _, ok := domain.ParseCurrency(strings.TrimSpace(r.Currency)); !ok {
		errs = append(errs, "currency must be one of HTG, USD")
	}
	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if parsed, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	} else if !parsed.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

type TransferRequest struct {
	SourceAccountNumber      string `json:"sourceAccountNumber"`
	DestinationAccountNumber string `json:"destinationAccountNumber"`
	Amount                   string `json:"amount"`
	Currency                 string `json:"currency,omitempty"`
	Description              string `json:"description,omitempty"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.SourceAccountNumber) == "" {
		errs = append(errs, "sourceAccountNumber is required")
	}
	if strings.TrimSpace(r.DestinationAccountNumber) == "" {
		errs = append(errs, "destinationAccountNumber is required")
	}
	if strings.TrimSpace(r.SourceAccountNumber) != "" &&
		strings.TrimSpace(r.SourceAccountNumber) == strings.TrimSpace(r.DestinationAccountNumber) {
		errs = append(errs, "sourceAccountNumber and destinationAccountNumber cannot be the same")
	}
	if strings.TrimSpace(r.Currency) != "" {
		if _, ok := domain.ParseCurrency(strings.TrimSpace(r.Currency)); !ok {
			errs = append(errs, "currency must be one of HTG, USD")
		}
	}
	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if parsed, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	} else if !parsed.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

type CancelTransactionRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CloseAccountRequest struct {
	Reason string `json:"reason"`
}
