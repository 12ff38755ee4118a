package service_interfaces

import (
	"context"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// SavingsAccountService is the minimal surface the aggregation facade needs
// from the ordinary-savings kind. It deals in domain values directly because
// the facade does its own response mapping after the merge.
type SavingsAccountService interface {
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
}
