package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/config"
	"github.com/kaysa-fintech/account-ledger/internal/domain"
	"github.com/kaysa-fintech/account-ledger/internal/logger"
)

// daysPerYear is the divisor of the pro-rata interest formula:
// interest = balance * annualRate * elapsedDays / 365.25.
var daysPerYear = decimal.NewFromFloat(365.25)

type TermSavingsService struct {
	accounts  repo_interfaces.AccountRepository
	ledger    repo_interfaces.TransactionRepository
	customers domain.CustomerDirectory
	branches  domain.BranchDirectory
	actors    domain.ActorDirectory
	defaults  config.AccountDefaults
	locks     *accountLocker
}

func NewTermSavingsService(
	accounts repo_interfaces.AccountRepository,
	ledger repo_interfaces.TransactionRepository,
	customers domain.CustomerDirectory,
	branches domain.BranchDirectory,
	actors domain.ActorDirectory,
	defaults config.AccountDefaults,
) *TermSavingsService {
	return &TermSavingsService{
		accounts:  accounts,
		ledger:    ledger,
		customers: customers,
		branches:  branches,
		actors:    actors,
		defaults:  defaults,
		locks:     newAccountLocker(),
	}
}

func (s *TermSavingsService) OpenAccount(ctx context.Context, req models.TermSavingsOpeningRequest, openedBy string) (commons.Response[models.AccountResponse], error) {
	logger.Info("term savings service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("term savings service open account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	currency, _ := domain.ParseCurrency(strings.TrimSpace(req.Currency))
	termType, _ := domain.ParseTermType(strings.TrimSpace(req.TermType))
	deposit, _ := decimal.NewFromString(strings.TrimSpace(req.InitialDeposit))

	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		logger.Error("term savings service open account customer lookup failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to verify customer right now"), err
	}
	if !exists {
		err := fmt.Errorf("%w: customer %s", domain.ErrRecordNotFound, customerID)
		return commons.ErrorResponse[models.AccountResponse]("customer not found", err.Error()), err
	}

	if _, err := s.accounts.FindActiveByCustomer(ctx, domain.KindTermSavings, customerID, currency); err == nil {
		err := fmt.Errorf("%w: customer %s, currency %s", domain.ErrDuplicateAccount, customerID, currency)
		return commons.ErrorResponse[models.AccountResponse]("duplicate account", err.Error()), err
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		logger.Error("term savings service open account duplicate check failed", err, logger.Fields{
			"customerId": customerID,
			"currency":   currency,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	defaults := s.defaults.Term[currency]
	rate := amountOrDefault(req.InterestRate, defaults.InterestRates[termType])
	penalty := amountOrDefault(req.EarlyWithdrawalPenalty, defaults.Penalties[termType])

	now := time.Now()
	account := domain.Account{
		ID:               uuid.NewString(),
		Kind:             domain.KindTermSavings,
		CustomerID:       customerID,
		BranchID:         req.BranchID,
		Currency:         currency,
		Balance:          decimal.Zero,
		AvailableBalance: decimal.Zero,
		Status:           domain.AccountStatusActive,
		OpeningDate:      now,
		Term: &domain.TermDetails{
			TermType:               termType,
			MaturityDate:           now.AddDate(0, termType.Months(), 0),
			InterestRate:           rate,
			AccruedInterest:        decimal.Zero,
			EarlyWithdrawalPenalty: penalty,
		},
	}

	created, err := s.createWithFreshNumber(ctx, account, currency)
	if err != nil {
		logger.Error("term savings service open account create failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	// Principal is locked until maturity, so the available balance stays
	// at zero while the ledger balance carries the deposit.
	created.Balance = deposit
	created.AvailableBalance = decimal.Zero
	created.LastTransaction = &now

	entry := domain.Transaction{
		ID:            uuid.NewString(),
		AccountID:     created.ID,
		AccountNumber: created.AccountNumber,
		Kind:          domain.KindTermSavings,
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
		logger.Error("term savings service open account initial deposit failed", err, logger.Fields{
			"accountNumber": created.AccountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to post the initial deposit"), err
	}

	response := models.MapAccount(created)
	resolveAccountNames(ctx, s.customers, s.branches, &response, created.CustomerID, created.BranchID)

	logger.Info("term savings service open account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
		"termType":      termType,
		"maturityDate":  created.Term.MaturityDate,
	})

	return commons.SuccessResponse("term savings account opened successfully", response), nil
}

func (s *TermSavingsService) createWithFreshNumber(ctx context.Context, account domain.Account, currency domain.Currency) (domain.Account, error) {
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

func (s *TermSavingsService) GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accounts.GetByID(ctx, domain.KindTermSavings, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("term savings service get account failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	response := models.MapAccount(account)
	resolveAccountNames(ctx, s.customers, s.branches, &response, account.CustomerID, account.BranchID)
	return commons.SuccessResponse("account fetched successfully", response), nil
}

func (s *TermSavingsService) GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accounts.GetByNumber(ctx, domain.KindTermSavings, strings.TrimSpace(accountNumber))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("term savings service get account by number failed", err, logger.Fields{"accountNumber": accountNumber})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	response := models.MapAccount(account)
	resolveAccountNames(ctx, s.customers, s.branches, &response, account.CustomerID, account.BranchID)
	return commons.SuccessResponse("account fetched successfully", response), nil
}

func (s *TermSavingsService) ListAccounts(ctx context.Context, filter domain.AccountFilter) (commons.Response[models.AccountListResponse], error) {
	filter.Normalize()

	accounts, err := s.accounts.List(ctx, domain.KindTermSavings, filter)
	if err != nil {
		logger.Error("term savings service list accounts failed", err, nil)
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

func (s *TermSavingsService) GetBalance(ctx context.Context, accountNumber string) (commons.Response[models.BalanceResponse], error) {
	account, err := s.accounts.GetByNumber(ctx, domain.KindTermSavings, strings.TrimSpace(accountNumber))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.BalanceResponse]("account not found"), err
		}
		logger.Error("term savings service get balance failed", err, logger.Fields{"accountNumber": accountNumber})
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

func (s *TermSavingsService) GetStatistics(ctx context.Context) (commons.Response[models.StatisticsResponse], error) {
	var filter domain.AccountFilter
	filter.Normalize()

	accounts, err := s.accounts.List(ctx, domain.KindTermSavings, filter)
	if err != nil {
		logger.Error("term savings service statistics failed", err, nil)
		return commons.ErrorResponse[models.StatisticsResponse]("failed to compute statistics", "Unable to compute statistics right now"), err
	}

	response := buildStatistics(accounts, time.Now())
	return commons.SuccessResponse("statistics computed successfully", response), nil
}

func (s *TermSavingsService) ProcessTransaction(ctx context.Context, req models.TransactionRequest, processedBy string) (commons.Response[models.TransactionResponse], error) {
	logger.Info("term savings service process transaction request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("term savings service process transaction validation failed", err, nil)
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

	unlock := s.locks.lock(accountNumber)
	defer unlock()

	account, err := s.accounts.GetByNumber(ctx, domain.KindTermSavings, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("account not found"), err
		}
		logger.Error("term savings service process transaction fetch failed", err, logger.Fields{"accountNumber": req.AccountNumber})
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
		reference = fmt.Sprintf("DEP-%s-%s", account.AccountNumber, compactTimestamp(now))
		description = "Dépôt sur dépôt à terme"
		account.Balance = after
	default:
		// Funds stay locked until interest has been posted at maturity.
		if account.Term != nil && !account.Term.Matured(now) {
			err := fmt.Errorf("%w: maturity date is %s", domain.ErrEarlyWithdrawalNotAllowed, account.Term.MaturityDate.Format("2006-01-02"))
			return commons.ErrorResponse[models.TransactionResponse]("withdrawal not allowed before maturity", err.Error()), err
		}
		if amount.GreaterThan(account.AvailableBalance) {
			err := fmt.Errorf("%w: available balance is %s", domain.ErrInsufficientFunds, account.AvailableBalance.StringFixed(2))
			return commons.ErrorResponse[models.TransactionResponse]("insufficient funds", err.Error()), err
		}
		after = before.Sub(amount)
		reference = fmt.Sprintf("WTH-%s-%s", account.AccountNumber, compactTimestamp(now))
		description = "Retrait sur dépôt à terme"
		account.Balance = after
		account.AvailableBalance = account.AvailableBalance.Sub(amount)
	}
	if strings.TrimSpace(req.Description) != "" {
		description = strings.TrimSpace(req.Description)
	}
	account.LastTransaction = &now

	branchID := req.BranchID
	if branchID <= 0 {
		branchID = account.BranchID
	}

	entry := domain.Transaction{
		ID:            uuid.NewString(),
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Kind:          domain.KindTermSavings,
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
		logger.Error("term savings service process transaction post failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
			"reference":     reference,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	response := models.MapTransaction(posted)
	resolveTransactionNames(ctx, s.actors, s.branches, &response, posted.ProcessedBy, posted.BranchID)

	logger.Info("term savings service transaction processed", logger.Fields{
		"accountNumber": posted.AccountNumber,
		"reference":     posted.Reference,
		"type":          posted.Type,
		"amount":        posted.Amount,
	})

	return commons.SuccessResponse("transaction processed successfully", response), nil
}

func (s *TermSavingsService) CalculateInterest(ctx context.Context, id string) (commons.Response[models.InterestCalculationResponse], error) {
	account, err := s.accounts.GetByID(ctx, domain.KindTermSavings, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.InterestCalculationResponse]("account not found"), err
		}
		logger.Error("term savings service calculate interest fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.InterestCalculationResponse]("failed to calculate interest", "Unable to calculate interest right now"), err
	}

	// Re-read under the account lock so two concurrent accrual requests
	// cannot both pass the already-accrued check.
	unlock := s.locks.lock(account.AccountNumber)
	defer unlock()
	if account, err = s.accounts.GetByID(ctx, domain.KindTermSavings, id); err != nil {
		logger.Error("term savings service calculate interest fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.InterestCalculationResponse]("failed to calculate interest", "Unable to calculate interest right now"), err
	}

	result, err := s.accrueInterest(ctx, account, time.Now(), "system")
	if err != nil {
		if errors.Is(err, domain.ErrMaturityNotReached) {
			return commons.ErrorResponse[models.InterestCalculationResponse]("account has not reached maturity", err.Error()), err
		}
		if errors.Is(err, domain.ErrAccountInactive) {
			return commons.ErrorResponse[models.InterestCalculationResponse]("account is not active", err.Error()), err
		}
		logger.Error("term savings service calculate interest failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.InterestCalculationResponse]("failed to calculate interest", "Unable to calculate interest right now"), err
	}

	return commons.SuccessResponse("interest calculated successfully", result), nil
}

func (s *TermSavingsService) CalculateInterestForAll(ctx context.Context) (commons.Response[models.BatchInterestResponse], error) {
	now := time.Now()
	matured, err := s.accounts.ListMaturedTerm(ctx, now)
	if err != nil {
		logger.Error("term savings service batch interest listing failed", err, nil)
		return commons.ErrorResponse[models.BatchInterestResponse]("failed to calculate interest", "Unable to list matured accounts right now"), err
	}

	response := models.BatchInterestResponse{Results: []models.InterestCalculationResponse{}}
	for _, account := range matured {
		result, err := s.accrueUnderLock(ctx, account, now)
		if err != nil {
			if errors.Is(err, errAlreadyAccrued) {
				response.Skipped++
				continue
			}
			logger.Error("term savings service batch interest accrual failed", err, logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			response.Skipped++
			continue
		}
		response.Processed++
		response.Results = append(response.Results, result)
	}

	logger.Info("term savings service batch interest complete", logger.Fields{
		"processed": response.Processed,
		"skipped":   response.Skipped,
	})

	return commons.SuccessResponse("interest calculated successfully", response), nil
}

// errAlreadyAccrued marks a batch candidate whose interest was posted by a
// concurrent request between listing and locking.
var errAlreadyAccrued = errors.New("interest already accrued")

// accrueUnderLock serialises one batch accrual against other postings on the
// same account and re-reads the row before deciding whether work remains.
func (s *TermSavingsService) accrueUnderLock(ctx context.Context, account domain.Account, now time.Time) (models.InterestCalculationResponse, error) {
	unlock := s.locks.lock(account.AccountNumber)
	defer unlock()

	fresh, err := s.accounts.GetByID(ctx, domain.KindTermSavings, account.ID)
	if err != nil {
		return models.InterestCalculationResponse{}, err
	}
	if fresh.Term != nil && fresh.Term.InterestAccruedSinceMaturity() {
		return models.InterestCalculationResponse{}, errAlreadyAccrued
	}
	return s.accrueInterest(ctx, fresh, now, "system")
}

// accrueInterest posts maturity interest for one account. Calling it again
// after a successful accrual is a deterministic no-op that reports the figure
// already on the books.
func (s *TermSavingsService) accrueInterest(ctx context.Context, account domain.Account, now time.Time, actor string) (models.InterestCalculationResponse, error) {
	if account.Term == nil {
		return models.InterestCalculationResponse{}, fmt.Errorf("%w: account carries no term schedule", domain.ErrInvalidState)
	}
	if account.Status != domain.AccountStatusActive {
		return models.InterestCalculationResponse{}, fmt.Errorf("%w: status is %s", domain.ErrAccountInactive, account.Status)
	}
	if !account.Term.Matured(now) {
		return models.InterestCalculationResponse{}, fmt.Errorf("%w: maturity date is %s", domain.ErrMaturityNotReached, account.Term.MaturityDate.Format("2006-01-02"))
	}

	if account.Term.InterestAccruedSinceMaturity() {
		return models.InterestCalculationResponse{
			AccountNumber:   account.AccountNumber,
			InterestAccrued: account.Term.AccruedInterest.StringFixed(2),
			InterestRate:    account.Term.InterestRate.String(),
			ElapsedDays:     elapsedDays(account.OpeningDate, *account.Term.LastInterestCalculation),
			CalculatedAt:    models.FormatTime(*account.Term.LastInterestCalculation),
		}, nil
	}

	days := elapsedDays(account.OpeningDate, now)
	interest := account.Balance.
		Mul(account.Term.InterestRate).
		Mul(decimal.NewFromInt(int64(days))).
		Div(daysPerYear).
		Round(2)

	before := account.Balance
	after := before.Add(interest)

	account.Balance = after
	account.AvailableBalance = after
	account.LastTransaction = &now
	account.Term.AccruedInterest = account.Term.AccruedInterest.Add(interest)
	account.Term.LastInterestCalculation = &now

	if interest.IsZero() {
		// Nothing to post; just stamp the accrual so the balance unlocks.
		if _, err := s.accounts.Update(ctx, account); err != nil {
			return models.InterestCalculationResponse{}, err
		}
	} else {
		entry := domain.Transaction{
			ID:            uuid.NewString(),
			AccountID:     account.ID,
			AccountNumber: account.AccountNumber,
			Kind:          domain.KindTermSavings,
			Type:          domain.TransactionTypeInterest,
			Amount:        interest,
			Currency:      account.Currency,
			BalanceBefore: before,
			BalanceAfter:  after,
			Description:   "Intérêts à l'échéance",
			Reference:     fmt.Sprintf("INT-%s-%s", account.AccountNumber, now.Format("20060102")),
			ProcessedBy:   actor,
			BranchID:      account.BranchID,
			Status:        domain.TransactionStatusCompleted,
			ProcessedAt:   now,
			CreatedAt:     now,
		}
		if _, err := s.accounts.PostTransaction(ctx, account, entry); err != nil {
			return models.InterestCalculationResponse{}, err
		}
	}

	logger.Info("term savings service interest accrued", logger.Fields{
		"accountNumber": account.AccountNumber,
		"interest":      interest,
		"elapsedDays":   days,
	})

	return models.InterestCalculationResponse{
		AccountNumber:   account.AccountNumber,
		InterestAccrued: interest.StringFixed(2),
		InterestRate:    account.Term.InterestRate.String(),
		ElapsedDays:     days,
		CalculatedAt:    models.FormatTime(now),
	}, nil
}

func (s *TermSavingsService) RenewAccount(ctx context.Context, id string, req models.TermRenewalRequest, renewedBy string) (commons.Response[models.AccountResponse], error) {
	logger.Info("term savings service renew account request", logger.Fields{
		"accountId": id,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("term savings service renew account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accounts.GetByID(ctx, domain.KindTermSavings, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("term savings service renew account fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to renew account", "Unable to renew account right now"), err
	}
	if account.Term == nil {
		err := fmt.Errorf("%w: account carries no term schedule", domain.ErrInvalidState)
		return commons.ErrorResponse[models.AccountResponse]("invalid account", err.Error()), err
	}

	unlock := s.locks.lock(account.AccountNumber)
	defer unlock()
	if account, err = s.accounts.GetByID(ctx, domain.KindTermSavings, id); err != nil {
		logger.Error("term savings service renew account fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to renew account", "Unable to renew account right now"), err
	}

	now := time.Now()
	if _, err := s.accrueInterest(ctx, account, now, renewedBy); err != nil {
		if errors.Is(err, domain.ErrMaturityNotReached) {
			return commons.ErrorResponse[models.AccountResponse]("account has not reached maturity", err.Error()), err
		}
		if errors.Is(err, domain.ErrAccountInactive) {
			return commons.ErrorResponse[models.AccountResponse]("account is not active", err.Error()), err
		}
		logger.Error("term savings service renew account accrual failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to renew account", "Unable to renew account right now"), err
	}

	// Reload: accrual may have moved balances and stamped the term block.
	account, err = s.accounts.GetByID(ctx, domain.KindTermSavings, id)
	if err != nil {
		logger.Error("term savings service renew account refetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to renew account", "Unable to renew account right now"), err
	}

	if !req.CapitalizeInterest && account.Term.AccruedInterest.IsPositive() {
		interest := account.Term.AccruedInterest
		before := account.Balance
		after := before.Sub(interest)

		account.Balance = after
		account.AvailableBalance = decimal.Zero
		account.LastTransaction = &now

		entry := domain.Transaction{
			ID:            uuid.NewString(),
			AccountID:     account.ID,
			AccountNumber: account.AccountNumber,
			Kind:          domain.KindTermSavings,
			Type:          domain.TransactionTypeWithdrawal,
			Amount:        interest,
			Currency:      account.Currency,
			BalanceBefore: before,
			BalanceAfter:  after,
			Description:   "Retrait des intérêts - Renouvellement",
			Reference:     fmt.Sprintf("WTH-%s-%s", account.AccountNumber, compactTimestamp(now)),
			ProcessedBy:   renewedBy,
			BranchID:      account.BranchID,
			Status:        domain.TransactionStatusCompleted,
			ProcessedAt:   now,
			CreatedAt:     now,
		}
		if _, err := s.accounts.PostTransaction(ctx, account, entry); err != nil {
			logger.Error("term savings service renew account interest payout failed", err, logger.Fields{"accountId": id})
			return commons.ErrorResponse[models.AccountResponse]("failed to renew account", "Unable to pay out interest"), err
		}
	}

	termType := account.Term.TermType
	if strings.TrimSpace(req.TermType) != "" {
		termType, _ = domain.ParseTermType(strings.TrimSpace(req.TermType))
	}
	rate := amountOrDefault(req.InterestRate, s.defaults.Term[account.Currency].InterestRates[termType])

	account.OpeningDate = now
	account.AvailableBalance = decimal.Zero
	account.Term.TermType = termType
	account.Term.MaturityDate = now.AddDate(0, termType.Months(), 0)
	account.Term.InterestRate = rate
	account.Term.AccruedInterest = decimal.Zero
	account.Term.EarlyWithdrawalPenalty = s.defaults.Term[account.Currency].Penalties[termType]
	account.Term.LastInterestCalculation = nil

	updated, err := s.accounts.Update(ctx, account)
	if err != nil {
		logger.Error("term savings service renew account save failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to renew account", "Unable to renew account right now"), err
	}

	response := models.MapAccount(updated)
	resolveAccountNames(ctx, s.customers, s.branches, &response, updated.CustomerID, updated.BranchID)

	logger.Info("term savings service account renewed", logger.Fields{
		"accountNumber": updated.AccountNumber,
		"termType":      termType,
		"maturityDate":  updated.Term.MaturityDate,
	})

	return commons.SuccessResponse("account renewed successfully", response), nil
}

func (s *TermSavingsService) CloseAccount(ctx context.Context, id string, req models.TermClosureRequest, closedBy string) (commons.Response[models.AccountResponse], error) {
	logger.Info("term savings service close account request", logger.Fields{
		"accountId": id,
		"payload":   logger.SanitizePayload(req),
	})

	account, err := s.accounts.GetByID(ctx, domain.KindTermSavings, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("term savings service close account fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	unlock := s.locks.lock(account.AccountNumber)
	defer unlock()
	if account, err = s.accounts.GetByID(ctx, domain.KindTermSavings, id); err != nil {
		logger.Error("term savings service close account fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	if account.Status == domain.AccountStatusClosed {
		err := fmt.Errorf("%w: account is already closed", domain.ErrInvalidState)
		return commons.ErrorResponse[models.AccountResponse]("account is already closed", err.Error()), err
	}
	if account.Term == nil {
		err := fmt.Errorf("%w: account carries no term schedule", domain.ErrInvalidState)
		return commons.ErrorResponse[models.AccountResponse]("invalid account", err.Error()), err
	}

	now := time.Now()
	if account.Term.Matured(now) {
		return s.closeMatured(ctx, account, now, req, closedBy)
	}
	return s.closeEarly(ctx, account, now, req, closedBy)
}

func (s *TermSavingsService) closeMatured(ctx context.Context, account domain.Account, now time.Time, req models.TermClosureRequest, closedBy string) (commons.Response[models.AccountResponse], error) {
	if _, err := s.accrueInterest(ctx, account, now, closedBy); err != nil {
		logger.Error("term savings service close account accrual failed", err, logger.Fields{"accountId": account.ID})
		return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to post maturity interest"), err
	}
	account, err := s.accounts.GetByID(ctx, domain.KindTermSavings, account.ID)
	if err != nil {
		logger.Error("term savings service close account refetch failed", err, logger.Fields{"accountId": account.ID})
		return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	before := account.Balance
	account.Balance = decimal.Zero
	account.AvailableBalance = decimal.Zero
	account.Status = domain.AccountStatusClosed
	account.ClosedAt = &now
	account.ClosedBy = closedBy
	account.ClosureReason = strings.TrimSpace(req.Reason)
	account.LastTransaction = &now

	if before.IsPositive() {
		entry := domain.Transaction{
			ID:            uuid.NewString(),
			AccountID:     account.ID,
			AccountNumber: account.AccountNumber,
			Kind:          domain.KindTermSavings,
			Type:          domain.TransactionTypeWithdrawal,
			Amount:        before,
			Currency:      account.Currency,
			BalanceBefore: before,
			BalanceAfter:  decimal.Zero,
			Description:   "Retrait à l'échéance",
			Reference:     "MATURE-CLOSE-" + account.AccountNumber,
			ProcessedBy:   closedBy,
			BranchID:      account.BranchID,
			Status:        domain.TransactionStatusCompleted,
			ProcessedAt:   now,
			CreatedAt:     now,
		}
		if _, err := s.accounts.PostTransaction(ctx, account, entry); err != nil {
			logger.Error("term savings service close account payout failed", err, logger.Fields{"accountId": account.ID})
			return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to pay out the balance"), err
		}
	} else {
		if _, err := s.accounts.Update(ctx, account); err != nil {
			logger.Error("term savings service close account save failed", err, logger.Fields{"accountId": account.ID})
			return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to close account right now"), err
		}
	}

	response := models.MapAccount(account)
	resolveAccountNames(ctx, s.customers, s.branches, &response, account.CustomerID, account.BranchID)

	logger.Info("term savings service account closed at maturity", logger.Fields{
		"accountNumber": account.AccountNumber,
		"paidOut":       before,
	})

	return commons.SuccessResponse("account closed successfully", response), nil
}

func (s *TermSavingsService) closeEarly(ctx context.Context, account domain.Account, now time.Time, req models.TermClosureRequest, closedBy string) (commons.Response[models.AccountResponse], error) {
	if req.EarlyWithdrawalPenalty == nil || strings.TrimSpace(*req.EarlyWithdrawalPenalty) == "" {
		err := fmt.Errorf("%w: early closure requires earlyWithdrawalPenaltyPercent", domain.ErrMaturityNotReached)
		return commons.ErrorResponse[models.AccountResponse]("account has not reached maturity", err.Error()), err
	}
	pct, parseErr := decimal.NewFromString(strings.TrimSpace(*req.EarlyWithdrawalPenalty))
	if parseErr != nil {
		err := fmt.Errorf("%w: earlyWithdrawalPenaltyPercent must be a valid number", domain.ErrValidation)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}
	if !pct.IsPositive() {
		err := fmt.Errorf("%w: early closure requires a positive penalty percentage", domain.ErrMaturityNotReached)
		return commons.ErrorResponse[models.AccountResponse]("account has not reached maturity", err.Error()), err
	}

	before := account.Balance
	penalty := before.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
	net := before.Sub(penalty)

	account.Balance = decimal.Zero
	account.AvailableBalance = decimal.Zero
	account.Status = domain.AccountStatusClosed
	account.ClosedAt = &now
	account.ClosedBy = closedBy
	account.LastTransaction = &now
	reason := strings.TrimSpace(req.Reason)
	breakdown := fmt.Sprintf("Clôture anticipée - Pénalité: %s %s, Net versé: %s %s",
		penalty.StringFixed(2), account.Currency, net.StringFixed(2), account.Currency)
	if reason != "" {
		account.ClosureReason = reason + " | " + breakdown
	} else {
		account.ClosureReason = breakdown
	}

	entry := domain.Transaction{
		ID:            uuid.NewString(),
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Kind:          domain.KindTermSavings,
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        before,
		Currency:      account.Currency,
		BalanceBefore: before,
		BalanceAfter:  decimal.Zero,
		Description:   breakdown,
		Reference:     fmt.Sprintf("CLOSE-%s-%s", account.AccountNumber, compactTimestamp(now)),
		ProcessedBy:   closedBy,
		BranchID:      account.BranchID,
		Status:        domain.TransactionStatusCompleted,
		Fees:          &penalty,
		ProcessedAt:   now,
		CreatedAt:     now,
	}
	if _, err := s.accounts.PostTransaction(ctx, account, entry); err != nil {
		logger.Error("term savings service early closure failed", err, logger.Fields{"accountId": account.ID})
		return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	response := models.MapAccount(account)
	resolveAccountNames(ctx, s.customers, s.branches, &response, account.CustomerID, account.BranchID)

	logger.Info("term savings service account closed early", logger.Fields{
		"accountNumber": account.AccountNumber,
		"penalty":       penalty,
		"netPaidOut":    net,
	})

	return commons.SuccessResponse("account closed successfully", response), nil
}

func (s *TermSavingsService) SuspendAccount(ctx context.Context, id string, actor string) (commons.Response[models.AccountResponse], error) {
	return s.toggleStatus(ctx, id, actor, domain.AccountStatusSuspended)
}

func (s *TermSavingsService) ReactivateAccount(ctx context.Context, id string, actor string) (commons.Response[models.AccountResponse], error) {
	return s.toggleStatus(ctx, id, actor, domain.AccountStatusActive)
}

func (s *TermSavingsService) toggleStatus(ctx context.Context, id, actor string, target domain.AccountStatus) (commons.Response[models.AccountResponse], error) {
	account, err := s.accounts.GetByID(ctx, domain.KindTermSavings, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("term savings service toggle status fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to change status", "Unable to change status right now"), err
	}

	updated, entry, err := statusAuditEntry(account, target, actor)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("invalid status transition", err.Error()), err
	}

	if _, err := s.accounts.PostTransaction(ctx, updated, entry); err != nil {
		logger.Error("term savings service toggle status save failed", err, logger.Fields{
			"accountId": id,
			"target":    target,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to change status", "Unable to change status right now"), err
	}

	response := models.MapAccount(updated)
	resolveAccountNames(ctx, s.customers, s.branches, &response, updated.CustomerID, updated.BranchID)

	logger.Info("term savings service status changed", logger.Fields{
		"accountNumber": updated.AccountNumber,
		"status":        updated.Status,
	})

	return commons.SuccessResponse("account status updated successfully", response), nil
}

func (s *TermSavingsService) DeleteAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accounts.GetByID(ctx, domain.KindTermSavings, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("term savings service delete account fetch failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to delete account", "Unable to delete account right now"), err
	}

	if account.Status == domain.AccountStatusActive || !account.Balance.IsZero() {
		err := fmt.Errorf("%w: only non-active accounts with a zero balance can be deleted", domain.ErrInvalidState)
		return commons.ErrorResponse[models.AccountResponse]("account cannot be deleted", err.Error()), err
	}

	if err := s.accounts.Delete(ctx, domain.KindTermSavings, id); err != nil {
		logger.Error("term savings service delete account failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to delete account", "Unable to delete account right now"), err
	}

	response := models.MapAccount(account)

	logger.Info("term savings service account deleted", logger.Fields{
		"accountNumber": account.AccountNumber,
	})

	return commons.SuccessResponse("account deleted successfully", response), nil
}

func (s *TermSavingsService) ListTransactions(ctx context.Context, accountID string, filter domain.TransactionFilter) (commons.Response[models.TransactionListResponse], error) {
	filter.AccountID = accountID
	filter.Normalize()

	entries, total, err := s.ledger.ListByAccount(ctx, domain.KindTermSavings, filter)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionListResponse]("account not found"), err
		}
		logger.Error("term savings service list transactions failed", err, logger.Fields{"accountId": accountID})
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

// elapsedDays counts whole days between two instants.
func elapsedDays(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
