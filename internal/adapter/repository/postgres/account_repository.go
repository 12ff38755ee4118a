package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
	"github.com/kaysa-fintech/account-ledger/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `
	id, account_number, kind, customer_id, branch_id, currency,
	balance, available_balance, status,
	opening_date, last_transaction_date, closed_at, closed_by, closure_reason,
	minimum_balance, daily_withdrawal_limit, monthly_withdrawal_limit, daily_deposit_limit, overdraft_limit,
	pin_hash, security_question, security_answer_hash, deposit_method, origin_of_funds, transaction_frequency, account_purpose,
	term_type, maturity_date, interest_rate, accrued_interest, early_withdrawal_penalty, last_interest_calculation,
	created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountNumber": account.AccountNumber,
		"kind":          account.Kind,
		"customerId":    account.CustomerID,
		"currency":      account.Currency,
	})

	const query = `
INSERT INTO accounts (
	id, account_number, kind, customer_id, branch_id, currency,
	balance, available_balance, status,
	opening_date, last_transaction_date, closed_at, closed_by, closure_reason,
	minimum_balance, daily_withdrawal_limit, monthly_withdrawal_limit, daily_deposit_limit, overdraft_limit,
	pin_hash, security_question, security_answer_hash, deposit_method, origin_of_funds, transaction_frequency, account_purpose,
	term_type, maturity_date, interest_rate, accrued_interest, early_withdrawal_penalty, last_interest_calculation
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
	$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32
)
RETURNING created_at, updated_at`

	args := accountArgs(account)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&account.CreatedAt, &account.UpdatedAt); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	if len(accountSigners(account)) > 0 {
		if err := r.ReplaceSigners(ctx, account.ID, accountSigners(account)); err != nil {
			return domain.Account{}, err
		}
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, kind domain.AccountKind, id string) (domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE id = $1 AND kind = $2`
	account, err := r.scanOne(r.db.QueryRowContext(ctx, query, id, kind))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}
	return r.attachSigners(ctx, account)
}

func (r *AccountRepository) GetByNumber(ctx context.Context, kind domain.AccountKind, accountNumber string) (domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE account_number = $1 AND kind = $2`
	account, err := r.scanOne(r.db.QueryRowContext(ctx, query, accountNumber, kind))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("get account by number: %w", err)
	}
	return r.attachSigners(ctx, account)
}

func (r *AccountRepository) List(ctx context.Context, kind domain.AccountKind, filter domain.AccountFilter) ([]domain.Account, error) {
	var (
		where = []string{"kind = $1"}
		args  = []any{kind}
	)

	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.Search != "" {
		args = append(args, filter.Search)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(account_number LIKE '%%' || $%d || '%%' OR customer_id LIKE '%%' || $%d || '%%')", n, n))
	}
	if filter.Currency != nil {
		add("currency = $%d", *filter.Currency)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.BranchID != nil {
		add("branch_id = $%d", *filter.BranchID)
	}
	if filter.DateFrom != nil {
		add("opening_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("opening_date <= $%d", *filter.DateTo)
	}
	if filter.MinBalance != nil {
		add("balance >= $%d", *filter.MinBalance)
	}
	if filter.MaxBalance != nil {
		add("balance <= $%d", *filter.MaxBalance)
	}

	query := `SELECT` + accountColumns + ` FROM accounts WHERE ` + strings.Join(where, " AND ") + ` ORDER BY account_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		account, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		out = append(out, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

func (r *AccountRepository) ListMaturedTerm(ctx context.Context, now time.Time) ([]domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts
WHERE kind = $1 AND status = $2 AND maturity_date <= $3
ORDER BY account_number`

	rows, err := r.db.QueryContext(ctx, query, domain.KindTermSavings, domain.AccountStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("list matured term accounts: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		account, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("list matured term accounts: %w", err)
		}
		out = append(out, account)
	}
	return out, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	if err := execAccountUpdate(ctx, r.db, account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (r *AccountRepository) ReplaceSigners(ctx context.Context, accountID string, signers []domain.AuthorizedSigner) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace signers: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM authorized_signers WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete signers: %w", err)
	}

	const insert = `
INSERT INTO authorized_signers (
	id, account_id, full_name, role, document_type, document_number,
	phone, relationship, address, authorization_limit, is_active, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	for _, signer := range signers {
		if _, err = tx.ExecContext(ctx, insert,
			signer.ID, accountID, signer.FullName, signer.Role, signer.DocumentType,
			signer.DocumentNumber, signer.Phone, signer.Relationship, signer.Address,
			signer.AuthorizationLimit, signer.IsActive, signer.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert signer: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace signers: %w", err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, kind domain.AccountKind, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete account: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM transactions WHERE account_id = $1`, id); err != nil {
		return fmt.Errorf("delete account ledger: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1 AND kind = $2`, id, kind)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if affected == 0 {
		err = domain.ErrRecordNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete account: %w", err)
	}
	return nil
}

func (r *AccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM accounts WHERE account_number = $1`, accountNumber,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("check account number: %w", err)
	}
	return count > 0, nil
}

func (r *AccountRepository) FindActiveByCustomer(ctx context.Context, kind domain.AccountKind, customerID string, currency domain.Currency) (domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts
WHERE kind = $1 AND customer_id = $2 AND currency = $3 AND status = $4
LIMIT 1`

	account, err := r.scanOne(r.db.QueryRowContext(ctx, query, kind, customerID, currency, domain.AccountStatusActive))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("find active account for customer: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) PostTransaction(ctx context.Context, account domain.Account, entry domain.Transaction) (domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("begin posting: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = execAccountUpdate(ctx, tx, account); err != nil {
		return domain.Transaction{}, err
	}
	if err = insertTransaction(ctx, tx, entry); err != nil {
		return domain.Transaction{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Transaction{}, fmt.Errorf("commit posting: %w", err)
	}
	return entry, nil
}

func (r *AccountRepository) ProcessTransfer(ctx context.Context, source, destination domain.Account, sourceLeg, destinationLeg domain.Transaction) (domain.TransferResult, error) {
	logger.Info("account repository process transfer", logger.Fields{
		"sourceAccountNumber":      source.AccountNumber,
		"destinationAccountNumber": destination.AccountNumber,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.TransferResult{}, fmt.Errorf("begin transfer: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = execAccountUpdate(ctx, tx, source); err != nil {
		return domain.TransferResult{}, err
	}
	if err = execAccountUpdate(ctx, tx, destination); err != nil {
		return domain.TransferResult{}, err
	}
	if err = insertTransaction(ctx, tx, sourceLeg); err != nil {
		return domain.TransferResult{}, err
	}
	if err = insertTransaction(ctx, tx, destinationLeg); err != nil {
		return domain.TransferResult{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.TransferResult{}, fmt.Errorf("commit transfer: %w", err)
	}

	return domain.TransferResult{
		SourceTransaction:      sourceLeg,
		DestinationTransaction: destinationLeg,
	}, nil
}

func (r *AccountRepository) CancelTransaction(ctx context.Context, account domain.Account, reversal domain.Transaction, originalID, cancelledDescription string) (domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("begin cancellation: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = execAccountUpdate(ctx, tx, account); err != nil {
		return domain.Transaction{}, err
	}
	if err = insertTransaction(ctx, tx, reversal); err != nil {
		return domain.Transaction{}, err
	}

	result, err := tx.ExecContext(ctx, `
UPDATE transactions
SET status = $2, description = $3
WHERE id = $1 AND status = $4`,
		originalID, domain.TransactionStatusCancelled, cancelledDescription, domain.TransactionStatusCompleted)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("flip original transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("flip original transaction: %w", err)
	}
	if affected == 0 {
		err = domain.ErrInvalidState
		return domain.Transaction{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Transaction{}, fmt.Errorf("commit cancellation: %w", err)
	}
	return reversal, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execAccountUpdate(ctx context.Context, db execer, account domain.Account) error {
	const query = `
UPDATE accounts
SET balance = $2,
    available_balance = $3,
    status = $4,
    last_transaction_date = $5,
    closed_at = $6,
    closed_by = $7,
    closure_reason = $8,
    minimum_balance = $9,
    daily_withdrawal_limit = $10,
    monthly_withdrawal_limit = $11,
    daily_deposit_limit = $12,
    overdraft_limit = $13,
    term_type = $14,
    maturity_date = $15,
    interest_rate = $16,
    accrued_interest = $17,
    early_withdrawal_penalty = $18,
    last_interest_calculation = $19,
    opening_date = $20,
    updated_at = NOW()
WHERE id = $1`

	var (
		minBal, dailyW, monthlyW, dailyD, overdraft decimal.NullDecimal
		termType                                    sql.NullString
		maturity, lastCalc                          sql.NullTime
		rate, accrued, penalty                      decimal.NullDecimal
	)
	if account.Current != nil {
		minBal = validDecimal(account.Current.MinimumBalance)
		dailyW = validDecimal(account.Current.DailyWithdrawalLimit)
		monthlyW = validDecimal(account.Current.MonthlyWithdrawalLimit)
		dailyD = validDecimal(account.Current.DailyDepositLimit)
		overdraft = validDecimal(account.Current.OverdraftLimit)
	}
	if account.Term != nil {
		termType = sql.NullString{String: string(account.Term.TermType), Valid: true}
		maturity = sql.NullTime{Time: account.Term.MaturityDate, Valid: true}
		rate = validDecimal(account.Term.InterestRate)
		accrued = validDecimal(account.Term.AccruedInterest)
		penalty = validDecimal(account.Term.EarlyWithdrawalPenalty)
		if account.Term.LastInterestCalculation != nil {
			lastCalc = sql.NullTime{Time: *account.Term.LastInterestCalculation, Valid: true}
		}
	}

	result, err := db.ExecContext(ctx, query,
		account.ID,
		account.Balance,
		account.AvailableBalance,
		account.Status,
		nullTime(account.LastTransaction),
		nullTime(account.ClosedAt),
		nullString(account.ClosedBy),
		nullString(account.ClosureReason),
		minBal, dailyW, monthlyW, dailyD, overdraft,
		termType, maturity, rate, accrued, penalty, lastCalc,
		account.OpeningDate,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func insertTransaction(ctx context.Context, db execer, entry domain.Transaction) error {
	const query = `
INSERT INTO transactions (
	id, account_id, account_number, kind, type, amount, currency,
	balance_before, balance_after, description, reference, processed_by,
	branch_id, status, fees, exchange_rate, related_transaction_id,
	processed_at, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := db.ExecContext(ctx, query,
		entry.ID,
		entry.AccountID,
		entry.AccountNumber,
		entry.Kind,
		entry.Type,
		entry.Amount,
		entry.Currency,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.Description,
		entry.Reference,
		entry.ProcessedBy,
		entry.BranchID,
		entry.Status,
		nullDecimalPtr(entry.Fees),
		nullDecimalPtr(entry.ExchangeRate),
		nullString(entry.RelatedTransactionID),
		entry.ProcessedAt,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AccountRepository) scanOne(row rowScanner) (domain.Account, error) {
	var (
		account                                     domain.Account
		lastTx, closedAt                            sql.NullTime
		closedBy, closureReason                     sql.NullString
		minBal, dailyW, monthlyW, dailyD, overdraft decimal.NullDecimal
		pinHash, secQuestion, secAnswer             sql.NullString
		depositMethod, origin, txFreq, purpose      sql.NullString
		termType                                    sql.NullString
		maturity, lastCalc                          sql.NullTime
		rate, accrued, penalty                      decimal.NullDecimal
	)

	err := row.Scan(
		&account.ID, &account.AccountNumber, &account.Kind, &account.CustomerID,
		&account.BranchID, &account.Currency,
		&account.Balance, &account.AvailableBalance, &account.Status,
		&account.OpeningDate, &lastTx, &closedAt, &closedBy, &closureReason,
		&minBal, &dailyW, &monthlyW, &dailyD, &overdraft,
		&pinHash, &secQuestion, &secAnswer, &depositMethod, &origin, &txFreq, &purpose,
		&termType, &maturity, &rate, &accrued, &penalty, &lastCalc,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, err
	}

	if lastTx.Valid {
		t := lastTx.Time
		account.LastTransaction = &t
	}
	if closedAt.Valid {
		t := closedAt.Time
		account.ClosedAt = &t
	}
	account.ClosedBy = closedBy.String
	account.ClosureReason = closureReason.String

	switch account.Kind {
	case domain.KindCurrent:
		account.Current = &domain.CurrentDetails{
			MinimumBalance:         minBal.Decimal,
			DailyWithdrawalLimit:   dailyW.Decimal,
			MonthlyWithdrawalLimit: monthlyW.Decimal,
			DailyDepositLimit:      dailyD.Decimal,
			OverdraftLimit:         overdraft.Decimal,
			PinHash:                pinHash.String,
			SecurityQuestion:       secQuestion.String,
			SecurityAnswerHash:     secAnswer.String,
			DepositMethod:          depositMethod.String,
			OriginOfFunds:          origin.String,
			TransactionFreq:        txFreq.String,
			AccountPurpose:         purpose.String,
		}
	case domain.KindTermSavings:
		details := &domain.TermDetails{
			TermType:               domain.TermType(termType.String),
			MaturityDate:           maturity.Time,
			InterestRate:           rate.Decimal,
			AccruedInterest:        accrued.Decimal,
			EarlyWithdrawalPenalty: penalty.Decimal,
		}
		if lastCalc.Valid {
			t := lastCalc.Time
			details.LastInterestCalculation = &t
		}
		account.Term = details
	}

	return account, nil
}

func (r *AccountRepository) attachSigners(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.Current == nil {
		return account, nil
	}

	const query = `
SELECT id, account_id, full_name, COALESCE(role, ''), COALESCE(document_type, ''), COALESCE(document_number, ''),
       COALESCE(phone, ''), COALESCE(relationship, ''), COALESCE(address, ''), authorization_limit, is_active, created_at
FROM authorized_signers
WHERE account_id = $1
ORDER BY full_name`

	rows, err := r.db.QueryContext(ctx, query, account.ID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("list signers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var signer domain.AuthorizedSigner
		if err := rows.Scan(
			&signer.ID, &signer.AccountID, &signer.FullName, &signer.Role,
			&signer.DocumentType, &signer.DocumentNumber, &signer.Phone,
			&signer.Relationship, &signer.Address, &signer.AuthorizationLimit,
			&signer.IsActive, &signer.CreatedAt,
		); err != nil {
			return domain.Account{}, fmt.Errorf("scan signer: %w", err)
		}
		account.Current.Signers = append(account.Current.Signers, signer)
	}
	return account, rows.Err()
}

func accountArgs(account domain.Account) []any {
	var (
		minBal, dailyW, monthlyW, dailyD, overdraft decimal.NullDecimal
		pinHash, secQuestion, secAnswer             sql.NullString
		depositMethod, origin, txFreq, purpose      sql.NullString
		termType                                    sql.NullString
		maturity, lastCalc                          sql.NullTime
		rate, accrued, penalty                      decimal.NullDecimal
	)
	if account.Current != nil {
		minBal = validDecimal(account.Current.MinimumBalance)
		dailyW = validDecimal(account.Current.DailyWithdrawalLimit)
		monthlyW = validDecimal(account.Current.MonthlyWithdrawalLimit)
		dailyD = validDecimal(account.Current.DailyDepositLimit)
		overdraft = validDecimal(account.Current.OverdraftLimit)
		pinHash = nullString(account.Current.PinHash)
		secQuestion = nullString(account.Current.SecurityQuestion)
		secAnswer = nullString(account.Current.SecurityAnswerHash)
		depositMethod = nullString(account.Current.DepositMethod)
		origin = nullString(account.Current.OriginOfFunds)
		txFreq = nullString(account.Current.TransactionFreq)
		purpose = nullString(account.Current.AccountPurpose)
	}
	if account.Term != nil {
		termType = sql.NullString{String: string(account.Term.TermType), Valid: true}
		maturity = sql.NullTime{Time: account.Term.MaturityDate, Valid: true}
		rate = validDecimal(account.Term.InterestRate)
		accrued = validDecimal(account.Term.AccruedInterest)
		penalty = validDecimal(account.Term.EarlyWithdrawalPenalty)
		if account.Term.LastInterestCalculation != nil {
			lastCalc = sql.NullTime{Time: *account.Term.LastInterestCalculation, Valid: true}
		}
	}

	return []any{
		account.ID, account.AccountNumber, account.Kind, account.CustomerID,
		account.BranchID, account.Currency,
		account.Balance, account.AvailableBalance, account.Status,
		account.OpeningDate, nullTime(account.LastTransaction),
		nullTime(account.ClosedAt), nullString(account.ClosedBy), nullString(account.ClosureReason),
		minBal, dailyW, monthlyW, dailyD, overdraft,
		pinHash, secQuestion, secAnswer, depositMethod, origin, txFreq, purpose,
		termType, maturity, rate, accrued, penalty, lastCalc,
	}
}

func accountSigners(account domain.Account) []domain.AuthorizedSigner {
	if account.Current == nil {
		return nil
	}
	return account.Current.Signers
}

func validDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func nullDecimalPtr(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
