package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// AccountFilterRequest mirrors the list query string. All fields are optional
// strings so that a malformed value surfaces as a validation error rather
// than a silent zero.
type AccountFilterRequest struct {
	Search         string `json:"search,omitempty"`
	Currency       string `json:"currency,omitempty"`
	Status         string `json:"status,omitempty"`
	BranchID       string `json:"branchId,omitempty"`
	DateFrom       string `json:"dateFrom,omitempty"`
	DateTo         string `json:"dateTo,omitempty"`
	MinBalance     string `json:"minBalance,omitempty"`
	MaxBalance     string `json:"maxBalance,omitempty"`
	SortBy         string `json:"sortBy,omitempty"`
	SortDescending bool   `json:"sortDescending,omitempty"`
	Page           string `json:"page,omitempty"`
	PageSize       string `json:"pageSize,omitempty"`
}

// ToFilter validates the raw values and produces a normalized domain filter.
func (r AccountFilterRequest) ToFilter() (domain.AccountFilter, error) {
	var errs []string

	filter := domain.AccountFilter{
		Search:         strings.TrimSpace(r.Search),
		SortDescending: r.SortDescending,
	}

	if strings.TrimSpace(r.Currency) != "" {
		currency, ok := domain.ParseCurrency(strings.TrimSpace(r.Currency))
		if !ok {
			errs = append(errs, "currency must be one of HTG, USD")
		} else {
			filter.Currency = &currency
		}
	}
	if strings.TrimSpace(r.Status) != "" {
		status := domain.AccountStatus(strings.TrimSpace(r.Status))
		switch status {
		case domain.AccountStatusActive, domain.AccountStatusSuspended, domain.AccountStatusInactive, domain.AccountStatusClosed:
			filter.Status = &status
		default:
			errs = append(errs, "status is not a valid account status")
		}
	}
	if strings.TrimSpace(r.BranchID) != "" {
		branchID, err := strconv.Atoi(strings.TrimSpace(r.BranchID))
		if err != nil || branchID <= 0 {
			errs = append(errs, "branchId must be a positive integer")
		} else {
			filter.BranchID = &branchID
		}
	}
	if strings.TrimSpace(r.DateFrom) != "" {
		from, err := parseDate(strings.TrimSpace(r.DateFrom))
		if err != nil {
			errs = append(errs, "dateFrom must be an RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			filter.DateFrom = &from
		}
	}
	if strings.TrimSpace(r.DateTo) != "" {
		to, err := parseDate(strings.TrimSpace(r.DateTo))
		if err != nil {
			errs = append(errs, "dateTo must be an RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			filter.DateTo = &to
		}
	}
	if strings.TrimSpace(r.MinBalance) != "" {
		minBalance, err := decimal.NewFromString(strings.TrimSpace(r.MinBalance))
		if err != nil {
			errs = append(errs, "minBalance must be numeric")
		} else {
			filter.MinBalance = &minBalance
		}
	}
	if strings.TrimSpace(r.MaxBalance) != "" {
		maxBalance, err := decimal.NewFromString(strings.TrimSpace(r.MaxBalance))
		if err != nil {
			errs = append(errs, "maxBalance must be numeric")
		} else {
			filter.MaxBalance = &maxBalance
		}
	}
	sortField, ok := domain.ParseSortField(strings.TrimSpace(r.SortBy))
	if !ok {
		errs = append(errs, "sortBy is not a sortable field")
	} else {
		filter.SortBy = sortField
	}
	if strings.TrimSpace(r.Page) != "" {
		page, err := strconv.Atoi(strings.TrimSpace(r.Page))
		if err != nil {
			errs = append(errs, "page must be an integer")
		} else {
			filter.Page = page
		}
	}
	if strings.TrimSpace(r.PageSize) != "" {
		size, err := strconv.Atoi(strings.TrimSpace(r.PageSize))
		if err != nil {
			errs = append(errs, "pageSize must be an integer")
		} else {
			filter.PageSize = size
		}
	}

	if len(errs) > 0 {
		return domain.AccountFilter{}, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}
	filter.Normalize()
	return filter, nil
}

// TransactionFilterRequest mirrors the per-account statement query string.
type TransactionFilterRequest struct {
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
	Page     string `json:"page,omitempty"`
	PageSize string `json:"pageSize,omitempty"`
}

func (r TransactionFilterRequest) ToFilter() (domain.TransactionFilter, error) {
	var errs []string

	var filter domain.TransactionFilter
	if strings.TrimSpace(r.DateFrom) != "" {
		from, err := parseDate(strings.TrimSpace(r.DateFrom))
		if err != nil {
			errs = append(errs, "dateFrom must be an RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			filter.DateFrom = &from
		}
	}
	if strings.TrimSpace(r.DateTo) != "" {
		to, err := parseDate(strings.TrimSpace(r.DateTo))
		if err != nil {
			errs = append(errs, "dateTo must be an RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			filter.DateTo = &to
		}
	}
	if strings.TrimSpace(r.Page) != "" {
		page, err := strconv.Atoi(strings.TrimSpace(r.Page))
		if err != nil {
			errs = append(errs, "page must be an integer")
		} else {
			filter.Page = page
		}
	}
	if strings.TrimSpace(r.PageSize) != "" {
		size, err := strconv.Atoi(strings.TrimSpace(r.PageSize))
		if err != nil {
			errs = append(errs, "pageSize must be an integer")
		} else {
			filter.PageSize = size
		}
	}

	if len(errs) > 0 {
		return domain.TransactionFilter{}, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}
	filter.Normalize()
	return filter, nil
}

func parseDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}
