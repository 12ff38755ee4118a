package service_interfaces

import (
	"context"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

type TermSavingsService interface {
	OpenAccount(ctx context.Context, req models.TermSavingsOpeningRequest, openedBy string) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, filter domain.AccountFilter) (commons.Response[models.AccountListResponse], error)
	GetBalance(ctx context.Context, accountNumber string) (commons.Response[models.BalanceResponse], error)
	GetStatistics(ctx context.Context) (commons.Response[models.StatisticsResponse], error)
	ProcessTransaction(ctx context.Context, req models.TransactionRequest, processedBy string) (commons.Response[models.TransactionResponse], error)
	CalculateInterest(ctx context.Context, id string) (commons.Response[models.InterestCalculationResponse], error)
	CalculateInterestForAll(ctx context.Context) (commons.Response[models.BatchInterestResponse], error)
	RenewAccount(ctx context.Context, id string, req models.TermRenewalRequest, renewedBy string) (commons.Response[models.AccountResponse], error)
	CloseAccount(ctx context.Context, id string, req models.TermClosureRequest, closedBy string) (commons.Response[models.AccountResponse], error)
	SuspendAccount(ctx context.Context, id string, actor string) (commons.Response[models.AccountResponse], error)
	ReactivateAccount(ctx context.Context, id string, actor string) (commons.Response[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	ListTransactions(ctx context.Context, accountID string, filter domain.TransactionFilter) (commons.Response[models.TransactionListResponse], error)
}
