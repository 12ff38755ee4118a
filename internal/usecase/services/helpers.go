package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// Accounts with no posting for this many days count as dormant in statistics.
const dormancyDays = 90

func isDormant(account domain.Account, now time.Time) bool {
	if account.Status != domain.AccountStatusActive {
		return false
	}
	last := account.OpeningDate
	if account.LastTransaction != nil {
		last = *account.LastTransaction
	}
	return now.Sub(last) > dormancyDays*24*time.Hour
}

// compactTimestamp renders the millisecond-precision stamp embedded in
// transaction references.
func compactTimestamp(t time.Time) string {
	return t.Format("20060102150405") + fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
}

// reversalReference builds the reference of a compensating entry, e.g.
// REV-DEP-20240115-103045-4821 for a reversed deposit.
func reversalReference(original domain.TransactionType, now time.Time) string {
	abbrev := "WDR"
	if original == domain.TransactionTypeDeposit {
		abbrev = "DEP"
	}
	suffix, err := randomDigits(4)
	if err != nil {
		suffix = fmt.Sprintf("%04d", now.Nanosecond()%10000)
	}
	return fmt.Sprintf("REV-%s-%s-%s-%s", abbrev, now.Format("20060102"), now.Format("150405"), suffix)
}

// paginateAccounts slices one page out of an already sorted listing and
// reports the page count for the response envelope.
func paginateAccounts(accounts []domain.Account, page, pageSize int) ([]domain.Account, int) {
	totalPages := (len(accounts) + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start >= len(accounts) {
		return []domain.Account{}, totalPages
	}
	end := start + pageSize
	if end > len(accounts) {
		end = len(accounts)
	}
	return accounts[start:end], totalPages
}

// resolveAccountNames fills the directory-derived display names on a mapped
// account. Lookups are best effort; a directory failure leaves the name blank
// rather than failing the request.
func resolveAccountNames(ctx context.Context, customers domain.CustomerDirectory, branches domain.BranchDirectory, resp *models.AccountResponse, customerID string, branchID int) {
	if customers != nil {
		if name, err := customers.DisplayName(ctx, customerID); err == nil {
			resp.CustomerName = name
		}
	}
	if branches != nil {
		if name, err := branches.Name(ctx, branchID); err == nil {
			resp.BranchName = name
		}
	}
}

// resolveTransactionNames fills operator and branch display names on a mapped
// ledger entry, best effort.
func resolveTransactionNames(ctx context.Context, actors domain.ActorDirectory, branches domain.BranchDirectory, resp *models.TransactionResponse, processedBy string, branchID int) {
	if actors != nil && processedBy != "" {
		if name, err := actors.DisplayName(ctx, processedBy); err == nil {
			resp.ProcessedByName = name
		}
	}
	if branches != nil && branchID > 0 {
		if name, err := branches.Name(ctx, branchID); err == nil {
			resp.BranchName = name
		}
	}
}
