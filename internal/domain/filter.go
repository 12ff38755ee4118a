package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type SortField string

const (
	SortByAccountNumber SortField = "accountNumber"
	SortByBalance       SortField = "balance"
	SortByOpeningDate   SortField = "openingDate"
	SortByLastActivity  SortField = "lastTransactionDate"
	SortByBranch        SortField = "branchId"
	SortByCurrency      SortField = "currency"
	SortByCreatedAt     SortField = "createdAt"
	SortByUpdatedAt     SortField = "updatedAt"
)

// ParseSortField maps a caller-supplied sort key onto the closed enumeration
// of sortable fields. Unknown values are rejected at the boundary instead of
// silently falling back.
func ParseSortField(raw string) (SortField, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SortByAccountNumber, true
	}
	for _, f := range []SortField{
		SortByAccountNumber, SortByBalance, SortByOpeningDate, SortByLastActivity,
		SortByBranch, SortByCurrency, SortByCreatedAt, SortByUpdatedAt,
	} {
		if strings.EqualFold(trimmed, string(f)) {
			return f, true
		}
	}
	return "", false
}

// comparator orders two accounts ascending for one sortable field.
var comparators = map[SortField]func(a, b Account) int{
	SortByAccountNumber: func(a, b Account) int { return strings.Compare(a.AccountNumber, b.AccountNumber) },
	SortByBalance:       func(a, b Account) int { return a.Balance.Cmp(b.Balance) },
	SortByOpeningDate:   func(a, b Account) int { return a.OpeningDate.Compare(b.OpeningDate) },
	SortByLastActivity: func(a, b Account) int {
		return lastActivity(a).Compare(lastActivity(b))
	},
	SortByBranch: func(a, b Account) int {
		switch {
		case a.BranchID < b.BranchID:
			return -1
		case a.BranchID > b.BranchID:
			return 1
		}
		return 0
	},
	SortByCurrency:  func(a, b Account) int { return strings.Compare(string(a.Currency), string(b.Currency)) },
	SortByCreatedAt: func(a, b Account) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortByUpdatedAt: func(a, b Account) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

func lastActivity(a Account) time.Time {
	if a.LastTransaction != nil {
		return *a.LastTransaction
	}
	return a.OpeningDate
}

// SortAccounts orders accounts in place by the given field, account number
// ascending as tie-break so pagination stays stable.
func SortAccounts(accounts []Account, field SortField, descending bool) {
	cmp, ok := comparators[field]
	if !ok {
		cmp = comparators[SortByAccountNumber]
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		c := cmp(accounts[i], accounts[j])
		if c == 0 {
			c = strings.Compare(accounts[i].AccountNumber, accounts[j].AccountNumber)
		}
		if descending {
			return c > 0
		}
		return c < 0
	})
}

// AccountFilter narrows account listings. Zero values mean "no constraint".
type AccountFilter struct {
	Search     string
	Currency   *Currency
	Status     *AccountStatus
	BranchID   *int
	DateFrom   *time.Time
	DateTo     *time.Time
	MinBalance *decimal.Decimal
	MaxBalance *decimal.Decimal

	SortBy         SortField
	SortDescending bool
	Page           int
	PageSize       int
}

// Normalize clamps pagination into the supported range: page >= 1, pageSize
// within [1, MaxPageSize], and fills in the default sort field.
func (f *AccountFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.SortBy == "" {
		f.SortBy = SortByAccountNumber
	}
}

// Matches reports whether the account satisfies every set constraint. The
// search term matches against the account number and the customer id.
func (f AccountFilter) Matches(a Account) bool {
	if f.Search != "" &&
		!strings.Contains(a.AccountNumber, f.Search) &&
		!strings.Contains(a.CustomerID, f.Search) {
		return false
	}
	if f.Currency != nil && a.Currency != *f.Currency {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.BranchID != nil && a.BranchID != *f.BranchID {
		return false
	}
	if f.DateFrom != nil && a.OpeningDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && a.OpeningDate.After(*f.DateTo) {
		return false
	}
	if f.MinBalance != nil && a.Balance.LessThan(*f.MinBalance) {
		return false
	}
	if f.MaxBalance != nil && a.Balance.GreaterThan(*f.MaxBalance) {
		return false
	}
	return true
}

// TransactionFilter narrows ledger listings for one account.
type TransactionFilter struct {
	AccountID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}

func (f *TransactionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}
