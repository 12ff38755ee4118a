package service_interfaces

import (
	"context"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

type ClientAccountService interface {
	ListAccounts(ctx context.Context, filter domain.AccountFilter) (commons.Response[models.AccountListResponse], error)
	GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error)
	GetStatistics(ctx context.Context) (commons.Response[models.StatisticsResponse], error)
}
