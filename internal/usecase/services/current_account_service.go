package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/config"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
	"github.com/kaysa-fintech/account-ledger/internal/logger"
)

type CurrentAccountService struct {
	accounts  repo_interfaces.AccountRepository
	ledger    repo_interfaces.TransactionRepository
	customers domain.CustomerDirectory
	branches  domain.BranchDirectory
	actors    domain.ActorDirectory
	defaults  config.AccountDefaults
	locks     *accountLocker
}

func NewCurrentAccountService(
	accounts repo_interfaces.AccountRepository,
	ledger repo_interfaces.TransactionRepository,
	customers domain.CustomerDirectory,
	branches domain.BranchDirectory,
	actors domain.ActorDirectory,
	defaults config.AccountDefaults,
) *CurrentAccountService {
	return &CurrentAccountService{
		accounts:  accounts,
		ledger:    ledger,
		customers: customers,
		branches:  branches,
		actors:    actors,
		defaults:  defaults,
		locks:     newAccountLocker(),
	}
}

func (s *CurrentAccountService) OpenAccount(ctx context.Context, req models.CurrentAccountOpeningRequest, openedBy string) (commons.Response[models.AccountResponse], error) {
	logger.Info("current account service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("current account service open account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	currency, _ := domain.ParseCurrency(strings.TrimSpace(req.Currency))

	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		logger.Error("current account service open account customer lookup failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to verify customer right now"), err
	}
	if !exists {
		err := fmt.Errorf("%w: customer %s", domain.ErrRecordNotFound, customerID)
		return commons.ErrorResponse[models.AccountResponse]("customer not found", err.Error()), err
	}

	if _, err := s.accounts.FindActiveByCustomer(ctx, domain.KindCurrent, customerID, currency); err == nil {
		err := fmt.Errorf("%w: customer %s, currency %s", domain.ErrDuplicateAccount, customerID, currency)
		return commons.ErrorResponse[models.AccountResponse]("duplicate account", err.Error()), err
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		logger.Error("current account service open account duplicate check failed", err, logger.Fields{
			"customerId": customerID,
			"currency":   currency,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	defaults := s.defaults.Current[currency]
	details := &domain.CurrentDetails{
		MinimumBalance:         amountOrDefault(req.MinimumBalance, defaults.MinimumBalance),
		DailyWithdrawalLimit:   amountOrDefault(req.DailyWithdrawalLimit, defaults.DailyWithdrawalLimit),
		MonthlyWithdrawalLimit: amountOrDefault(req.MonthlyWithdrawalLimit, defaults.MonthlyWithdrawalLimit),
		DailyDepositLimit:      amountOrDefault(req.DailyDepositLimit, defaults.DailyDepositLimit),
		OverdraftLimit:         amountOrDefault(req.OverdraftLimit, decimal.Zero),
		SecurityQuestion:       strings.TrimSpace(req.SecurityQuestion),
		DepositMethod:          strings.TrimSpace(req.DepositMethod),
		OriginOfFunds:          strings.TrimSpace(req.OriginOfFunds),
		TransactionFreq:        strings.TrimSpace(req.TransactionFrequency),
		AccountPurpose:         strings.TrimSpace(req.AccountPurpose),
	}

	if strings.TrimSpace(req.Pin) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.Pin)), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("current account service open account pin hash failed", err, nil)
			return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
		}
		details.PinHash = string(hash)
	}
	if strings.TrimSpace(req.SecurityAnswer) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.SecurityAnswer)), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("current account service open account security answer hash failed", err, nil)
			return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
		}
		details.SecurityAnswerHash = string(hash)
	}
	details.Signers = mapSigners(req.AuthorizedSigners)

	now := time.Now()
	account := domain.Account{
		ID:               uuid.NewString(),
		Kind:             domain.KindCurrent,
		CustomerID:       customerID,
		BranchID:         req.BranchID,
		Currency:         currency,
		Balance:          decimal.Zero,
		AvailableBalance: decimal.Zero,
		Status:           domain.AccountStatusActive,
		OpeningDate:      now,
		Current:          details,
	}

	created, err := s.createWithFreshNumber(ctx, account, currency)
	if err != nil {
		logger.Error("current account service open account create failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	deposit := amountOrDefault(&req.InitialDeposit, decimal.Zero)
	if deposit.IsPositive() {
		created.Balance = deposit
		created.AvailableBalance = deposit
		created.LastTransaction = &now

		entry := domain.Transaction{
			ID:            uuid.NewString(),
			AccountID:     created.ID,
			AccountNumber: created.AccountNumber,
			Kind:          domain.KindCurrent,
			Type:          domain.TransactionTypeDeposit,
			Amount:        deposit,
			Currency:      currency,
			BalanceBefore: decimal.Zero,
			BalanceAfter:  deposit,
			Description:   "Dépôt initial - Ouverture de compte",
			Reference:     "OPEN-" + created.AccountNumber,
			ProcessedBy:   openedBy,
			BranchID:      created.BranchID,
			Status:        domain.TransactionStatusCompleted,
			ProcessedAt:   now,
			CreatedAt:     now,
		}
		if _, err := s.accounts.PostTransaction(ctx, created, entry); err != nil {
			logger.Error("current account service open account initial deposit failed", err, logger.Fields{
				"accountNumber": created.AccountNumber,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to post the initial deposit"), err
		}
	}

	response := models.MapAccount(created)
	resolveAccountNames(ctx, s.customers, s.branches, &response, created.CustomerID, created.BranchID)

	logger.Info("current account service open account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
		"customerId":    created.CustomerID,
	})

	return commons.SuccessResponse("current account opened successfully", response), nil
}

// createWithFreshNumber inserts the account under a generated number. A
// unique violation means another opening raced past the collision check, so
// one more number is tried before giving up.
func (s *CurrentAccountService) createWithFreshNumber(ctx context.Context, account domain.Account, currency domain.Currency) (domain.Account, error) {
	for attempt := 0; attempt < 2; attempt++ {
		number, err := generateAccountNumber(ctx, s.accounts, currency)
		if err != nil {
			return domain.Account{}, err
		}
		account.AccountNumber = number

		created, err := s.accounts.Create(ctx, account)
		if err == nil {
			return created, nil
		}
		if !isUniqueViolation(err) {
			return domain.Account{}, err
		}
	}
	return domain.Account{}, fmt.Errorf("account number collision persisted across retries")
}

func (s *CurrentAccountService) GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accounts.GetByID(ctx, domain.KindCurrent, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("current account service get account failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	response := models.MapAccount(account)
	resolveAccountNames(ctx, s.customers, s.branches, &response, account.CustomerID, account.BranchID)
	return commons.SuccessResponse("account fetched successfully", response), nil
}

func (s *CurrentAccountService) GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accounts.GetByNumber(ctx, domain.KindCurrent, strings.TrimSpace(accountNumber))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("current account service get account by number failed", err, logger.Fields{"accountNumber": accountNumber})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	response := models.MapAccount(account)
	resolveAccountNames(ctx, s.customers, s.branches, &response, account.CustomerID, account.BranchID)
	return commons.SuccessResponse("account fetched successfully", response), nil
}

func (s *CurrentAccountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) (commons.Response[models.AccountListResponse], error) {
	filter.Normalize()

	accounts, err := s.accounts.List(ctx, domain.KindCurrent, filter)
	if err != nil {
		logger.Error("current account service list accounts failed", err, nil)
		return commons.ErrorResponse[models.AccountListResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	domain.SortAccounts(accounts, filter.SortBy, filter.SortDescending)
	page, totalPages := paginateAccounts(accounts, filter.Page, filter.PageSize)

	response := models.AccountListResponse{
		Accounts:   make([]models.AccountResponse, 0, len(page)),
		TotalCount: len(accounts),
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

func (s *CurrentAccountService) UpdateAccount(ctx context.Context, id string, req models.CurrentAccountUpdateRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("current account service update account request", logger.Fields{
		"accountId": id,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("current account service update account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accounts.GetByID(ctx, domain.KindCurrent, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("current account service update account fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to update account right now"), err
	}

	if account.Status == domain.AccountStatusClosed {
		err := fmt.Errorf("%w: account is closed", domain.ErrInvalidState)
		return commons.ErrorResponse[models.AccountResponse]("account is closed", err.Error()), err
	}

	if req.Status != nil {
		account.Status = domain.AccountStatus(*req.Status)
	}
	if account.Current != nil {
		account.Current.MinimumBalance = amountOrDefault(req.MinimumBalance, account.Current.MinimumBalance)
		account.Current.DailyWithdrawalLimit = amountOrDefault(req.DailyWithdrawalLimit, account.Current.DailyWithdrawalLimit)
		account.Current.MonthlyWithdrawalLimit = amountOrDefault(req.MonthlyWithdrawalLimit, account.Current.MonthlyWithdrawalLimit)
		account.Current.DailyDepositLimit = amountOrDefault(req.DailyDepositLimit, account.Current.DailyDepositLimit)
		account.Current.OverdraftLimit = amountOrDefault(req.OverdraftLimit, account.Current.OverdraftLimit)
	}

	updated, err := s.accounts.Update(ctx, account)
	if err != nil {
		logger.Error("current account service update account save failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to update account right now"), err
	}

	if req.AuthorizedSigners != nil {
		if err := s.accounts.ReplaceSigners(ctx, updated.ID, mapSigners(req.AuthorizedSigners)); err != nil {
			logger.Error("current account service update account signers failed", err, logger.Fields{"accountId": id})
			return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to replace authorized signers"), err
		}
		if updated, err = s.accounts.GetByID(ctx, domain.KindCurrent, id); err != nil {
			logger.Error("current account service update account refetch failed", err, logger.Fields{"accountId": id})
			return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to fetch account right now"), err
		}
	}

	response := models.MapAccount(updated)
	resolveAccountNames(ctx, s.customers, s.branches, &response, updated.CustomerID, updated.BranchID)

	logger.Info("current account service update account success", logger.Fields{
		"accountId":     updated.ID,
		"accountNumber": updated.AccountNumber,
	})

	return commons.SuccessResponse("account updated successfully", response), nil
}

func (s *CurrentAccountService) SuspendAccount(ctx context.Context, id string, actor string) (commons.Response[models.AccountResponse], error) {
	return s.toggleStatus(ctx, id, actor, domain.AccountStatusSuspended)
}

func (s *CurrentAccountService) ReactivateAccount(ctx context.Context, id string, actor string) (commons.Response[models.AccountResponse], error) {
	return s.toggleStatus(ctx, id, actor, domain.AccountStatusActive)
}

func (s *CurrentAccountService) toggleStatus(ctx context.Context, id, actor string, target domain.AccountStatus) (commons.Response[models.AccountResponse], error) {
	account, err := s.accounts.GetByID(ctx, domain.KindCurrent, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("current account service toggle status fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to change status", "Unable to change status right now"), err
	}

	updated, entry, err := statusAuditEntry(account, target, actor)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("invalid status transition", err.Error()), err
	}

	if _, err := s.accounts.PostTransaction(ctx, updated, entry); err != nil {
		logger.Error("current account service toggle status save failed", err, logger.Fields{
			"accountId": id,
			"target":    target,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to change status", "Unable to change status right now"), err
	}

	response := models.MapAccount(updated)
	resolveAccountNames(ctx, s.customers, s.branches, &response, updated.CustomerID, updated.BranchID)

	logger.Info("current account service status changed", logger.Fields{
		"accountNumber": updated.AccountNumber,
		"status":        updated.Status,
	})

	return commons.SuccessResponse("account status updated successfully", response), nil
}

func (s *CurrentAccountService) CloseAccount(ctx context.Context, id string, req models.CloseAccountRequest, closedBy string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accounts.GetByID(ctx, domain.KindCurrent, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("current account service close account fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	// Re-read under the account lock so the zero-balance check cannot race
	// with a concurrent posting.
	unlock := s.locks.lock(account.AccountNumber)
	defer unlock()
	if account, err = s.accounts.GetByID(ctx, domain.KindCurrent, id); err != nil {
		logger.Error("current account service close account fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	if account.Status == domain.AccountStatusClosed {
		err := fmt.Errorf("%w: account is already closed", domain.ErrInvalidState)
		return commons.ErrorResponse[models.AccountResponse]("account is already closed", err.Error()), err
	}
	if !account.Balance.IsZero() {
		err := fmt.Errorf("%w: balance must be zero before closure", domain.ErrInvalidState)
		return commons.ErrorResponse[models.AccountResponse]("balance must be zero before closure", err.Error()), err
	}

	now := time.Now()
	account.Status = domain.AccountStatusClosed
	account.ClosedAt = &now
	account.ClosedBy = closedBy
	account.ClosureReason = strings.TrimSpace(req.Reason)

	updated, err := s.accounts.Update(ctx, account)
	if err != nil {
		logger.Error("current account service close account save failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	response := models.MapAccount(updated)
	resolveAccountNames(ctx, s.customers, s.branches, &response, updated.CustomerID, updated.BranchID)

	logger.Info("current account service account closed", logger.Fields{
		"accountNumber": updated.AccountNumber,
		"closedBy":      closedBy,
	})

	return commons.SuccessResponse("account closed successfully", response), nil
}

func (s *CurrentAccountService) GetBalance(ctx context.Context, accountNumber string) (commons.Response[models.BalanceResponse], error) {
	account, err := s.accounts.GetByNumber(ctx, domain.KindCurrent, strings.TrimSpace(accountNumber))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.BalanceResponse]("account not found"), err
		}
		logger.Error("current account service get balance failed", err, logger.Fields{"accountNumber": accountNumber})
		return commons.ErrorResponse[models.BalanceResponse]("failed to get balance", "Unable to fetch balance right now"), err
	}

	response := models.BalanceResponse{
		AccountNumber: account.AccountNumber,
		Current:       account.Balance.StringFixed(2),
		Available:     account.AvailableBalance.StringFixed(2),
		Currency:      string(account.Currency),
		LastUpdated:   models.FormatTime(account.UpdatedAt),
	}
	return commons.SuccessResponse("balance fetched successfully", response), nil
}

func (s *CurrentAccountService) GetStatistics(ctx context.Context) (commons.Response[models.StatisticsResponse], error) {
	var filter domain.AccountFilter
	filter.Normalize()

	accounts, err := s.accounts.List(ctx, domain.KindCurrent, filter)
	if err != nil {
		logger.Error("current account service statistics failed", err, nil)
		return commons.ErrorResponse[models.StatisticsResponse]("failed to compute statistics", "Unable to compute statistics right now"), err
	}

	response := buildStatistics(accounts, time.Now())
	return commons.SuccessResponse("statistics computed successfully", response), nil
}

func (s *CurrentAccountService) ProcessTransaction(ctx context.Context, req models.TransactionRequest, processedBy string) (commons.Response[models.TransactionResponse], error) {
	logger.Info("current account service process transaction request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("current account service process transaction validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	txType, _ := domain.ParseTransactionType(strings.TrimSpace(req.Type))
	if txType != domain.TransactionTypeDeposit && txType != domain.TransactionTypeWithdrawal {
		err := fmt.Errorf("%w: type must be DEPOSIT or WITHDRAWAL", domain.ErrValidation)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	currency, _ := domain.ParseCurrency(strings.TrimSpace(req.Currency))
	accountNumber := strings.TrimSpace(req.AccountNumber)

	// Serialise per account so the floor check and the balance write see the
	// same snapshot even under concurrent postings.
	unlock := s.locks.lock(accountNumber)
	defer unlock()

	account, err := s.accounts.GetByNumber(ctx, domain.KindCurrent, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("account not found"), err
		}
		logger.Error("current account service process transaction fetch failed", err, logger.Fields{"accountNumber": req.AccountNumber})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	if account.Status != domain.AccountStatusActive {
		err := fmt.Errorf("%w: status is %s", domain.ErrAccountInactive, account.Status)
		return commons.ErrorResponse[models.TransactionResponse]("account is not active", err.Error()), err
	}
	if account.Currency != currency {
		err := fmt.Errorf("%w: account is in %s", domain.ErrCurrencyMismatch, account.Currency)
		return commons.ErrorResponse[models.TransactionResponse]("currency mismatch", err.Error()), err
	}

	now := time.Now()
	before := account.Balance
	var after decimal.Decimal
	var reference, description string

	switch txType {
	case domain.TransactionTypeDeposit:
		after = before.Add(amount)
		reference = "CACC-DEP-" + compactTimestamp(now)
		description = "Dépôt compte courant"
	default:
		after = before.Sub(amount)
		if account.Current != nil && after.LessThan(account.Current.EffectiveFloor()) {
			err := fmt.Errorf("%w: balance would fall below the account floor", domain.ErrInsufficientFunds)
			return commons.ErrorResponse[models.TransactionResponse]("insufficient funds", err.Error()), err
		}
		reference = "CACC-WDR-" + compactTimestamp(now)
		description = "Retrait compte courant"
	}
	if strings.TrimSpace(req.Description) != "" {
		description = strings.TrimSpace(req.Description)
	}

	branchID := req.BranchID
	if branchID <= 0 {
		branchID = account.BranchID
	}

	account.Balance = after
	account.AvailableBalance = after
	account.LastTransaction = &now

	entry := domain.Transaction{
		ID:            uuid.NewString(),
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Kind:          domain.KindCurrent,
		Type:          txType,
		Amount:        amount,
		Currency:      currency,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   description,
		Reference:     reference,
		ProcessedBy:   processedBy,
		BranchID:      branchID,
		Status:        domain.TransactionStatusCompleted,
		ProcessedAt:   now,
		CreatedAt:     now,
	}

	posted, err := s.accounts.PostTransaction(ctx, account, entry)
	if err != nil {
		logger.Error("current account service process transaction post failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
			"reference":     reference,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	response := models.MapTransaction(posted)
	resolveTransactionNames(ctx, s.actors, s.branches, &response, posted.ProcessedBy, posted.BranchID)

	logger.Info("current account service transaction processed", logger.Fields{
		"accountNumber": posted.AccountNumber,
		"reference":     posted.Reference,
		"type":          posted.Type,
		"amount":        posted.Amount,
	})

	return commons.SuccessResponse("transaction processed successfully", response), nil
}

func (s *CurrentAccountService) ProcessTransfer(ctx context.Context, req models.TransferRequest, processedBy string) (commons.Response[models.TransferResponse], error) {
	logger.Info("current account service process transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("current account service process transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	sourceNumber := strings.TrimSpace(req.SourceAccountNumber)
	destinationNumber := strings.TrimSpace(req.DestinationAccountNumber)

	unlock := s.locks.lockPair(sourceNumber, destinationNumber)
	defer unlock()

	source, err := s.accounts.GetByNumber(ctx, domain.KindCurrent, sourceNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("source account not found"), err
		}
		logger.Error("current account service process transfer source fetch failed", err, logger.Fields{"accountNumber": req.SourceAccountNumber})
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}
	destination, err := s.accounts.GetByNumber(ctx, domain.KindCurrent, destinationNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("destination account not found"), err
		}
		logger.Error("current account service process transfer destination fetch failed", err, logger.Fields{"accountNumber": req.DestinationAccountNumber})
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if source.Status != domain.AccountStatusActive {
		err := fmt.Errorf("%w: source status is %s", domain.ErrAccountInactive, source.Status)
		return commons.ErrorResponse[models.TransferResponse]("source account is not active", err.Error()), err
	}
	if destination.Status != domain.AccountStatusActive {
		err := fmt.Errorf("%w: destination status is %s", domain.ErrAccountInactive, destination.Status)
		return commons.ErrorResponse[models.TransferResponse]("destination account is not active", err.Error()), err
	}
	if source.Currency != destination.Currency {
		err := fmt.Errorf("%w: %s to %s", domain.ErrCurrencyMismatch, source.Currency, destination.Currency)
		return commons.ErrorResponse[models.TransferResponse]("currency mismatch", err.Error()), err
	}
	if strings.TrimSpace(req.Currency) != "" {
		currency, _ := domain.ParseCurrency(strings.TrimSpace(req.Currency))
		if currency != source.Currency {
			err := fmt.Errorf("%w: accounts are in %s", domain.ErrCurrencyMismatch, source.Currency)
			return commons.ErrorResponse[models.TransferResponse]("currency mismatch", err.Error()), err
		}
	}

	sourceBefore := source.Balance
	sourceAfter := sourceBefore.Sub(amount)
	if source.Current != nil && sourceAfter.LessThan(source.Current.EffectiveFloor()) {
		err := fmt.Errorf("%w: balance would fall below the account floor", domain.ErrInsufficientFunds)
		return commons.ErrorResponse[models.TransferResponse]("insufficient funds", err.Error()), err
	}
	destinationBefore := destination.Balance
	destinationAfter := destinationBefore.Add(amount)

	now := time.Now()
	reference := "CACC-TRF-" + compactTimestamp(now)
	description := strings.TrimSpace(req.Description)

	source.Balance = sourceAfter
	source.AvailableBalance = sourceAfter
	source.LastTransaction = &now
	destination.Balance = destinationAfter
	destination.AvailableBalance = destinationAfter
	destination.LastTransaction = &now

	sourceLegID := uuid.NewString()
	destinationLegID := uuid.NewString()

	sourceDescription := description
	if sourceDescription == "" {
		sourceDescription = "Transfert vers " + destination.AccountNumber
	}
	destinationDescription := description
	if destinationDescription == "" {
		destinationDescription = "Transfert de " + source.AccountNumber
	}

	sourceLeg := domain.Transaction{
		ID:                   sourceLegID,
		AccountID:            source.ID,
		AccountNumber:        source.AccountNumber,
		Kind:                 domain.KindCurrent,
		Type:                 domain.TransactionTypeWithdrawal,
		Amount:               amount,
		Currency:             source.Currency,
		BalanceBefore:        sourceBefore,
		BalanceAfter:         sourceAfter,
		Description:          sourceDescription,
		Reference:            reference,
		ProcessedBy:          processedBy,
		BranchID:             source.BranchID,
		Status:               domain.TransactionStatusCompleted,
		RelatedTransactionID: destinationLegID,
		ProcessedAt:          now,
		CreatedAt:            now,
	}
	destinationLeg := domain.Transaction{
		ID:                   destinationLegID,
		AccountID:            destination.ID,
		AccountNumber:        destination.AccountNumber,
		Kind:                 domain.KindCurrent,
		Type:                 domain.TransactionTypeDeposit,
		Amount:               amount,
		Currency:             destination.Currency,
		BalanceBefore:        destinationBefore,
		BalanceAfter:         destinationAfter,
		Description:          destinationDescription,
		Reference:            reference,
		ProcessedBy:          processedBy,
		BranchID:             destination.BranchID,
		Status:               domain.TransactionStatusCompleted,
		RelatedTransactionID: sourceLegID,
		ProcessedAt:          now,
		CreatedAt:            now,
	}

	result, err := s.accounts.ProcessTransfer(ctx, source, destination, sourceLeg, destinationLeg)
	if err != nil {
		logger.Error("current account service process transfer failed", err, logger.Fields{
			"sourceAccountNumber":      source.AccountNumber,
			"destinationAccountNumber": destination.AccountNumber,
			"reference":                reference,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	sourceResponse := models.MapTransaction(result.SourceTransaction)
	resolveTransactionNames(ctx, s.actors, s.branches, &sourceResponse, result.SourceTransaction.ProcessedBy, result.SourceTransaction.BranchID)
	destinationResponse := models.MapTransaction(result.DestinationTransaction)
	resolveTransactionNames(ctx, s.actors, s.branches, &destinationResponse, result.DestinationTransaction.ProcessedBy, result.DestinationTransaction.BranchID)

	logger.Info("current account service transfer processed", logger.Fields{
		"sourceAccountNumber":      source.AccountNumber,
		"destinationAccountNumber": destination.AccountNumber,
		"reference":                reference,
		"amount":                   amount,
	})

	return commons.SuccessResponse("transfer processed successfully", models.TransferResponse{
		SourceTransaction:      sourceResponse,
		DestinationTransaction: destinationResponse,
	}), nil
}

func (s *CurrentAccountService) CancelTransaction(ctx context.Context, transactionID string, req models.CancelTransactionRequest, cancelledBy string) (commons.Response[models.TransactionResponse], error) {
	logger.Info("current account service cancel transaction request", logger.Fields{
		"transactionId": transactionID,
		"reason":        req.Reason,
	})

	original, err := s.ledger.GetByID(ctx, domain.KindCurrent, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("transaction not found"), err
		}
		logger.Error("current account service cancel transaction fetch failed", err, logger.Fields{"transactionId": transactionID})
		return commons.ErrorResponse[models.TransactionResponse]("failed to cancel transaction", "Unable to cancel transaction right now"), err
	}

	if original.Status != domain.TransactionStatusCompleted {
		err := fmt.Errorf("%w: transaction status is %s", domain.ErrInvalidState, original.Status)
		return commons.ErrorResponse[models.TransactionResponse]("transaction cannot be cancelled", err.Error()), err
	}
	if original.Type != domain.TransactionTypeDeposit && original.Type != domain.TransactionTypeWithdrawal {
		err := fmt.Errorf("%w: %s", domain.ErrUnsupportedReversal, original.Type)
		return commons.ErrorResponse[models.TransactionResponse]("transaction type cannot be reversed", err.Error()), err
	}

	unlock := s.locks.lock(original.AccountNumber)
	defer unlock()

	account, err := s.accounts.GetByID(ctx, domain.KindCurrent, original.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("account not found"), err
		}
		logger.Error("current account service cancel transaction account fetch failed", err, logger.Fields{"accountId": original.AccountID})
		return commons.ErrorResponse[models.TransactionResponse]("failed to cancel transaction", "Unable to cancel transaction right now"), err
	}
	if account.Status == domain.AccountStatusClosed {
		err := fmt.Errorf("%w: account is closed", domain.ErrInvalidState)
		return commons.ErrorResponse[models.TransactionResponse]("account is closed", err.Error()), err
	}

	reversalType := domain.TransactionTypeDeposit
	if original.Type == domain.TransactionTypeDeposit {
		reversalType = domain.TransactionTypeWithdrawal
	}

	now := time.Now()
	before := account.Balance
	after := before.Sub(original.SignedAmount())
	if reversalType == domain.TransactionTypeWithdrawal && account.Current != nil && after.LessThan(account.Current.EffectiveFloor()) {
		err := fmt.Errorf("%w: reversal would leave the balance below the account floor", domain.ErrInsufficientFunds)
		return commons.ErrorResponse[models.TransactionResponse]("insufficient funds", err.Error()), err
	}

	account.Balance = after
	account.AvailableBalance = after
	account.LastTransaction = &now

	reason := strings.TrimSpace(req.Reason)
	cancelledDescription := original.Description + " [ANNULÉE]"
	reversalDescription := "Annulation: " + original.Description
	if reason != "" {
		cancelledDescription = fmt.Sprintf("%s [ANNULÉE: %s]", original.Description, reason)
	}

	reversal := domain.Transaction{
		ID:                   uuid.NewString(),
		AccountID:            account.ID,
		AccountNumber:        account.AccountNumber,
		Kind:                 domain.KindCurrent,
		Type:                 reversalType,
		Amount:               original.Amount,
		Currency:             original.Currency,
		BalanceBefore:        before,
		BalanceAfter:         after,
		Description:          reversalDescription,
		Reference:            reversalReference(original.Type, now),
		ProcessedBy:          cancelledBy,
		BranchID:             original.BranchID,
		Status:               domain.TransactionStatusCompleted,
		RelatedTransactionID: original.ID,
		ProcessedAt:          now,
		CreatedAt:            now,
	}

	posted, err := s.accounts.CancelTransaction(ctx, account, reversal, original.ID, cancelledDescription)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return commons.ErrorResponse[models.TransactionResponse]("transaction cannot be cancelled", err.Error()), err
		}
		logger.Error("current account service cancel transaction post failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to cancel transaction", "Unable to cancel transaction right now"), err
	}

	response := models.MapTransaction(posted)
	resolveTransactionNames(ctx, s.actors, s.branches, &response, posted.ProcessedBy, posted.BranchID)

	logger.Info("current account service transaction cancelled", logger.Fields{
		"transactionId":     original.ID,
		"reversalReference": posted.Reference,
	})

	return commons.SuccessResponse("transaction cancelled successfully", response), nil
}

func (s *CurrentAccountService) ListTransactions(ctx context.Context, accountID string, filter domain.TransactionFilter) (commons.Response[models.TransactionListResponse], error) {
	filter.AccountID = accountID
	filter.Normalize()

	entries, total, err := s.ledger.ListByAccount(ctx, domain.KindCurrent, filter)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionListResponse]("account not found"), err
		}
		logger.Error("current account service list transactions failed", err, logger.Fields{"accountId": accountID})
		return commons.ErrorResponse[models.TransactionListResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	response := models.TransactionListResponse{
		Transactions: make([]models.TransactionResponse, 0, len(entries)),
		TotalCount:   total,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}
	for _, entry := range entries {
		mapped := models.MapTransaction(entry)
		resolveTransactionNames(ctx, s.actors, s.branches, &mapped, entry.ProcessedBy, entry.BranchID)
		response.Transactions = append(response.Transactions, mapped)
	}

	return commons.SuccessResponse("transactions listed successfully", response), nil
}

func amountOrDefault(raw *string, fallback decimal.Decimal) decimal.Decimal {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return fallback
	}
	return parsed
}

// mapSigners converts request signers, skipping rows missing the identity
// fields instead of failing the whole request.
func mapSigners(signers []models.SignerRequest) []domain.AuthorizedSigner {
	out := make([]domain.AuthorizedSigner, 0, len(signers))
	for _, signer := range signers {
		if strings.TrimSpace(signer.FullName) == "" || strings.TrimSpace(signer.DocumentNumber) == "" {
			continue
		}
		limit := decimal.Zero
		if strings.TrimSpace(signer.AuthorizationLimit) != "" {
			if parsed, err := decimal.NewFromString(strings.TrimSpace(signer.AuthorizationLimit)); err == nil && !parsed.IsNegative() {
				limit = parsed
			}
		}
		out = append(out, domain.AuthorizedSigner{
			ID:                 uuid.NewString(),
			FullName:           strings.TrimSpace(signer.FullName),
			Role:               strings.TrimSpace(signer.Role),
			DocumentType:       strings.TrimSpace(signer.DocumentType),
			DocumentNumber:     strings.TrimSpace(signer.DocumentNumber),
			Phone:              strings.TrimSpace(signer.Phone),
			Relationship:       strings.TrimSpace(signer.Relationship),
			Address:            strings.TrimSpace(signer.Address),
			AuthorizationLimit: limit,
			IsActive:           true,
			CreatedAt:          time.Now(),
		})
	}
	return out
}

// statusAuditEntry validates a suspend or reactivate transition and produces
// the zero-amount audit posting that records it.
func statusAuditEntry(account domain.Account, target domain.AccountStatus, actor string) (domain.Account, domain.Transaction, error) {
	switch target {
	case domain.AccountStatusSuspended:
		if account.Status != domain.AccountStatusActive {
			return domain.Account{}, domain.Transaction{}, fmt.Errorf("%w: only active accounts can be suspended", domain.ErrInvalidState)
		}
	case domain.AccountStatusActive:
		if account.Status != domain.AccountStatusSuspended && account.Status != domain.AccountStatusInactive {
			return domain.Account{}, domain.Transaction{}, fmt.Errorf("%w: only suspended or inactive accounts can be reactivated", domain.ErrInvalidState)
		}
	default:
		return domain.Account{}, domain.Transaction{}, fmt.Errorf("%w: unsupported status target %s", domain.ErrInvalidState, target)
	}

	now := time.Now()
	prefix := "SUSPEND"
	description := "Suspension du compte"
	if target == domain.AccountStatusActive {
		prefix = "ACTIVATE"
		description = "Réactivation du compte"
	}

	account.Status = target
	entry := domain.Transaction{
		ID:            uuid.NewString(),
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Kind:          account.Kind,
		Type:          domain.TransactionTypeOther,
		Amount:        decimal.Zero,
		Currency:      account.Currency,
		BalanceBefore: account.Balance,
		BalanceAfter:  account.Balance,
		Description:   description,
		Reference:     fmt.Sprintf("%s-%s-%s", prefix, account.AccountNumber, compactTimestamp(now)),
		ProcessedBy:   actor,
		BranchID:      account.BranchID,
		Status:        domain.TransactionStatusCompleted,
		ProcessedAt:   now,
		CreatedAt:     now,
	}
	return account, entry, nil
}

// buildStatistics aggregates one kind's accounts into the statistics view.
func buildStatistics(accounts []domain.Account, now time.Time) models.StatisticsResponse {
	response := models.StatisticsResponse{
		AccountsByStatus:   map[string]int{},
		AccountsByCurrency: map[string]int{},
	}

	totalHTG := decimal.Zero
	totalUSD := decimal.Zero
	combined := decimal.Zero
	byTerm := map[string]int{}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for _, account := range accounts {
		response.TotalAccounts++
		response.AccountsByStatus[string(account.Status)]++
		response.AccountsByCurrency[string(account.Currency)]++
		if account.Status == domain.AccountStatusActive {
			response.ActiveAccounts++
		}
		if account.Currency == domain.CurrencyUSD {
			totalUSD = totalUSD.Add(account.Balance)
		} else {
			totalHTG = totalHTG.Add(account.Balance)
		}
		combined = combined.Add(account.Balance)
		if !account.OpeningDate.Before(monthStart) {
			response.NewAccountsMonth++
		}
		if isDormant(account, now) {
			response.DormantAccounts++
		}
		if account.Term != nil {
			byTerm[string(account.Term.TermType)]++
			if account.Status == domain.AccountStatusActive && account.Term.Matured(now) {
				response.MaturedAccounts++
			}
		}
	}

	response.TotalBalanceHTG = totalHTG.StringFixed(2)
	response.TotalBalanceUSD = totalUSD.StringFixed(2)
	if response.TotalAccounts > 0 {
		response.AverageBalance = combined.Div(decimal.NewFromInt(int64(response.TotalAccounts))).Round(2).StringFixed(2)
	} else {
		response.AverageBalance = "0.00"
	}
	if len(byTerm) > 0 {
		response.AccountsByTermType = byTerm
	}
	return response
}
