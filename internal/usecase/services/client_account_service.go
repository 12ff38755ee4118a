package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
	"github.com/kaysa-fintech/account-ledger/internal/logger"
	"github.com/kaysa-fintech/account-ledger/internal/usecase/service_interfaces"
)

// ClientAccountService is the read-side facade over every account kind. Each
// kind is fetched concurrently; a failing kind is logged and contributes an
// empty slice so the client view degrades instead of failing outright.
type ClientAccountService struct {
	accounts  repo_interfaces.AccountRepository
	savings   service_interfaces.SavingsAccountService
	customers domain.CustomerDirectory
	branches  domain.BranchDirectory
}

func NewClientAccountService(
	accounts repo_interfaces.AccountRepository,
	savings service_interfaces.SavingsAccountService,
	customers domain.CustomerDirectory,
	branches domain.BranchDirectory,
) *ClientAccountService {
	return &ClientAccountService{
		accounts:  accounts,
		savings:   savings,
		customers: customers,
		branches:  branches,
	}
}

func (s *ClientAccountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) (commons.Response[models.AccountListResponse], error) {
	filter.Normalize()

	merged := s.fetchAllKinds(ctx, filter)

	// Repositories already filter their own rows; the savings collaborator
	// may not, so the merged set is filtered once more before sorting.
	filtered := merged[:0]
	for _, account := range merged {
		if filter.Matches(account) {
			filtered = append(filtered, account)
		}
	}

	domain.SortAccounts(filtered, filter.SortBy, filter.SortDescending)
	page, totalPages := paginateAccounts(filtered, filter.Page, filter.PageSize)

	response := models.AccountListResponse{
		Accounts:   make([]models.AccountResponse, 0, len(page)),
		TotalCount: len(filtered),
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}
	for _, account := range page {
		mapped := models.MapAccount(account)
		resolveAccountNames(ctx, s.customers, s.branches, &mapped, account.CustomerID, account.BranchID)
		response.Accounts = append(response.Accounts, mapped)
	}

	return commons.SuccessResponse("accounts listed successfully", response), nil
}

// fetchAllKinds gathers each kind in parallel. Goroutines never surface their
// error through the group: a failed kind is logged and skipped.
func (s *ClientAccountService) fetchAllKinds(ctx context.Context, filter domain.AccountFilter) []domain.Account {
	var current, term, savings []domain.Account

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts, err := s.accounts.List(gctx, domain.KindCurrent, filter)
		if err != nil {
			logger.Error("client account service current listing failed", err, nil)
			return nil
		}
		current = accounts
		return nil
	})
	g.Go(func() error {
		accounts, err := s.accounts.List(gctx, domain.KindTermSavings, filter)
		if err != nil {
			logger.Error("client account service term listing failed", err, nil)
			return nil
		}
		term = accounts
		return nil
	})
	g.Go(func() error {
		if s.savings == nil {
			return nil
		}
		accounts, err := s.savings.ListAccounts(gctx, filter)
		if err != nil {
			logger.Error("client account service savings listing failed", err, nil)
			return nil
		}
		savings = accounts
		return nil
	})
	_ = g.Wait()

	merged := make([]domain.Account, 0, len(current)+len(term)+len(savings))
	merged = append(merged, current...)
	merged = append(merged, term...)
	merged = append(merged, savings...)
	return merged
}

func (s *ClientAccountService) GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	account, err := s.findByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("client account service get account failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	response := models.MapAccount(account)
	resolveAccountNames(ctx, s.customers, s.branches, &response, account.CustomerID, account.BranchID)
	return commons.SuccessResponse("account fetched successfully", response), nil
}

func (s *ClientAccountService) GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	accountNumber = strings.TrimSpace(accountNumber)

	for _, kind := range []domain.AccountKind{domain.KindCurrent, domain.KindTermSavings} {
		account, err := s.accounts.GetByNumber(ctx, kind, accountNumber)
		if err == nil {
			response := models.MapAccount(account)
			resolveAccountNames(ctx, s.customers, s.branches, &response, account.CustomerID, account.BranchID)
			return commons.SuccessResponse("account fetched successfully", response), nil
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			logger.Error("client account service get account by number failed", err, logger.Fields{
				"accountNumber": accountNumber,
				"kind":          kind,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
		}
	}

	if s.savings != nil {
		account, err := s.savings.GetAccountByNumber(ctx, accountNumber)
		if err == nil {
			response := models.MapAccount(account)
			resolveAccountNames(ctx, s.customers, s.branches, &response, account.CustomerID, account.BranchID)
			return commons.SuccessResponse("account fetched successfully", response), nil
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			logger.Error("client account service savings get by number failed", err, logger.Fields{
				"accountNumber": accountNumber,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
		}
	}

	err := fmt.Errorf("%w: account %s", domain.ErrRecordNotFound, accountNumber)
	return commons.ErrorResponse[models.AccountResponse]("account not found"), err
}

func (s *ClientAccountService) findByID(ctx context.Context, id string) (domain.Account, error) {
	for _, kind := range []domain.AccountKind{domain.KindCurrent, domain.KindTermSavings} {
		account, err := s.accounts.GetByID(ctx, kind, id)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, err
		}
	}
	if s.savings != nil {
		account, err := s.savings.GetAccount(ctx, id)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, err
		}
	}
	return domain.Account{}, fmt.Errorf("%w: account %s", domain.ErrRecordNotFound, id)
}

func (s *ClientAccountService) GetStatistics(ctx context.Context) (commons.Response[models.StatisticsResponse], error) {
	var filter domain.AccountFilter
	filter.Normalize()

	merged := s.fetchAllKinds(ctx, filter)
	response := buildStatistics(merged, time.Now())
	return commons.SuccessResponse("statistics computed successfully", response), nil
}
