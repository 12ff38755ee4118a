package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// AccountResponse is the shared account view. Kind decides which optional
// blocks are populated.
type AccountResponse struct {
	ID               string  `json:"id"`
	AccountNumber    string  `json:"accountNumber"`
	Kind             string  `json:"kind"`
	CustomerID       string  `json:"customerId"`
	CustomerName     string  `json:"customerName,omitempty"`
	BranchID         int     `json:"branchId"`
	BranchName       string  `json:"branchName,omitempty"`
	Currency         string  `json:"currency"`
	Balance          string  `json:"balance"`
	AvailableBalance string  `json:"availableBalance"`
	Status           string  `json:"status"`
	OpeningDate      string  `json:"openingDate"`
	LastTransaction  *string `json:"lastTransactionDate,omitempty"`
	ClosedAt         *string `json:"closedAt,omitempty"`
	ClosedBy         string  `json:"closedBy,omitempty"`
	ClosureReason    string  `json:"closureReason,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`

	Current *CurrentDetailsResponse `json:"current,omitempty"`
	Term    *TermDetailsResponse    `json:"term,omitempty"`
}

type CurrentDetailsResponse struct {
	MinimumBalance         string           `json:"minimumBalance"`
	DailyWithdrawalLimit   string           `json:"dailyWithdrawalLimit"`
	MonthlyWithdrawalLimit string           `json:"monthlyWithdrawalLimit"`
	DailyDepositLimit      string           `json:"dailyDepositLimit"`
	OverdraftLimit         string           `json:"overdraftLimit"`
	HasPin                 bool             `json:"hasPin"`
	SecurityQuestion       string           `json:"securityQuestion,omitempty"`
	DepositMethod          string           `json:"depositMethod,omitempty"`
	OriginOfFunds          string           `json:"originOfFunds,omitempty"`
	TransactionFrequency   string           `json:"transactionFrequency,omitempty"`
	AccountPurpose         string           `json:"accountPurpose,omitempty"`
	AuthorizedSigners      []SignerResponse `json:"authorizedSigners"`
}

type TermDetailsResponse struct {
	TermType                string  `json:"termType"`
	TermLabel               string  `json:"termLabel"`
	MaturityDate            string  `json:"maturityDate"`
	InterestRate            string  `json:"interestRate"`
	AccruedInterest         string  `json:"accruedInterest"`
	EarlyWithdrawalPenalty  string  `json:"earlyWithdrawalPenalty"`
	LastInterestCalculation *string `json:"lastInterestCalculation,omitempty"`
}

type SignerResponse struct {
	ID                 string `json:"id"`
	FullName           string `json:"fullName"`
	Role               string `json:"role,omitempty"`
	DocumentType       string `json:"documentType,omitempty"`
	DocumentNumber     string `json:"documentNumber,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Relationship       string `json:"relationshipToCustomer,omitempty"`
	Address            string `json:"address,omitempty"`
	AuthorizationLimit string `json:"authorizationLimit"`
	IsActive           bool   `json:"isActive"`
	CreatedAt          string `json:"createdAt"`
}

type BalanceResponse struct {
	AccountNumber string `json:"accountNumber"`
	Current       string `json:"current"`
	Available     string `json:"available"`
	Currency      string `json:"currency"`
	LastUpdated   string `json:"lastUpdated"`
}

type TransactionResponse struct {
	ID                   string  `json:"id"`
	AccountID            string  `json:"accountId"`
	AccountNumber        string  `json:"accountNumber"`
	Type                 string  `json:"type"`
	Amount               string  `json:"amount"`
	Currency             string  `json:"currency"`
	BalanceBefore        string  `json:"balanceBefore"`
	BalanceAfter         string  `json:"balanceAfter"`
	Description          string  `json:"description"`
	Reference            string  `json:"reference"`
	ProcessedBy          string  `json:"processedBy"`
	ProcessedByName      string  `json:"processedByName,omitempty"`
	BranchID             int     `json:"branchId"`
	BranchName           string  `json:"branchName,omitempty"`
	Status               string  `json:"status"`
	Fees                 *string `json:"fees,omitempty"`
	ExchangeRate         *string `json:"exchangeRate,omitempty"`
	RelatedTransactionID string  `json:"relatedTransactionId,omitempty"`
	ProcessedAt          string  `json:"processedAt"`
	CreatedAt            string  `json:"createdAt"`
}

type TransferResponse struct {
	SourceTransaction      TransactionResponse `json:"sourceTransaction"`
	DestinationTransaction TransactionResponse `json:"destinationTransaction"`
}

type AccountListResponse struct {
	Accounts   []AccountResponse `json:"accounts"`
	TotalCount int               `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalCount   int                   `json:"totalCount"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
}

type StatisticsResponse struct {
	TotalAccounts      int            `json:"totalAccounts"`
	ActiveAccounts     int            `json:"activeAccounts"`
	TotalBalanceHTG    string         `json:"totalBalanceHTG"`
	TotalBalanceUSD    string         `json:"totalBalanceUSD"`
	AverageBalance     string         `json:"averageBalance"`
	AccountsByStatus   map[string]int `json:"accountsByStatus"`
	AccountsByCurrency map[string]int `json:"accountsByCurrency"`
	AccountsByTermType map[string]int `json:"accountsByTermType,omitempty"`
	NewAccountsMonth   int            `json:"newAccountsThisMonth"`
	DormantAccounts    int            `json:"dormantAccounts"`
	MaturedAccounts    int            `json:"maturedAccounts,omitempty"`
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

func FormatDecimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

// MapAccount renders a domain account into the shared response shape.
// Directory-resolved names are filled in by the service layer.
func MapAccount(account domain.Account) AccountResponse {
	out := AccountResponse{
		ID:               account.ID,
		AccountNumber:    account.AccountNumber,
		Kind:             string(account.Kind),
		CustomerID:       account.CustomerID,
		BranchID:         account.BranchID,
		Currency:         string(account.Currency),
		Balance:          account.Balance.StringFixed(2),
		AvailableBalance: account.AvailableBalance.StringFixed(2),
		Status:           string(account.Status),
		OpeningDate:      FormatTime(account.OpeningDate),
		LastTransaction:  FormatTimePtr(account.LastTransaction),
		ClosedAt:         FormatTimePtr(account.ClosedAt),
		ClosedBy:         account.ClosedBy,
		ClosureReason:    account.ClosureReason,
		CreatedAt:        FormatTime(account.CreatedAt),
		UpdatedAt:        FormatTime(account.UpdatedAt),
	}

	if account.Current != nil {
		details := &CurrentDetailsResponse{
			MinimumBalance:         account.Current.MinimumBalance.StringFixed(2),
			DailyWithdrawalLimit:   account.Current.DailyWithdrawalLimit.StringFixed(2),
			MonthlyWithdrawalLimit: account.Current.MonthlyWithdrawalLimit.StringFixed(2),
			DailyDepositLimit:      account.Current.DailyDepositLimit.StringFixed(2),
			OverdraftLimit:         account.Current.OverdraftLimit.StringFixed(2),
			HasPin:                 account.Current.PinHash != "",
			SecurityQuestion:       account.Current.SecurityQuestion,
			DepositMethod:          account.Current.DepositMethod,
			OriginOfFunds:          account.Current.OriginOfFunds,
			TransactionFrequency:   account.Current.TransactionFreq,
			AccountPurpose:         account.Current.AccountPurpose,
			AuthorizedSigners:      []SignerResponse{},
		}
		for _, signer := range account.Current.Signers {
			details.AuthorizedSigners = append(details.AuthorizedSigners, SignerResponse{
				ID:                 signer.ID,
				FullName:           signer.FullName,
				Role:               signer.Role,
				DocumentType:       signer.DocumentType,
				DocumentNumber:     signer.DocumentNumber,
				Phone:              signer.Phone,
				Relationship:       signer.Relationship,
				Address:            signer.Address,
				AuthorizationLimit: signer.AuthorizationLimit.StringFixed(2),
				IsActive:           signer.IsActive,
				CreatedAt:          FormatTime(signer.CreatedAt),
			})
		}
		out.Current = details
	}

	if account.Term != nil {
		out.Term = &TermDetailsResponse{
			TermType:                string(account.Term.TermType),
			TermLabel:               account.Term.TermType.Label(),
			MaturityDate:            FormatTime(account.Term.MaturityDate),
			InterestRate:            account.Term.InterestRate.String(),
			AccruedInterest:         account.Term.AccruedInterest.StringFixed(2),
			EarlyWithdrawalPenalty:  account.Term.EarlyWithdrawalPenalty.String(),
			LastInterestCalculation: FormatTimePtr(account.Term.LastInterestCalculation),
		}
	}

	return out
}

// MapTransaction renders a ledger entry; display names are resolved by the
// caller when directories are available.
func MapTransaction(entry domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                   entry.ID,
		AccountID:            entry.AccountID,
		AccountNumber:        entry.AccountNumber,
		Type:                 string(entry.Type),
		Amount:               entry.Amount.StringFixed(2),
		Currency:             string(entry.Currency),
		BalanceBefore:        entry.BalanceBefore.StringFixed(2),
		BalanceAfter:         entry.BalanceAfter.StringFixed(2),
		Description:          entry.Description,
		Reference:            entry.Reference,
		ProcessedBy:          entry.ProcessedBy,
		BranchID:             entry.BranchID,
		Status:               string(entry.Status),
		Fees:                 FormatDecimalPtr(entry.Fees),
		ExchangeRate:         FormatDecimalPtr(entry.ExchangeRate),
		RelatedTransactionID: entry.RelatedTransactionID,
		ProcessedAt:          FormatTime(entry.ProcessedAt),
		CreatedAt:            FormatTime(entry.CreatedAt),
	}
}
