package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	id, account_id, account_number, kind, type, amount, currency,
	balance_before, balance_after, description, reference, processed_by,
	branch_id, status, fees, exchange_rate, related_transaction_id,
	processed_at, created_at`

func (r *TransactionRepository) GetByID(ctx context.Context, kind domain.AccountKind, id string) (domain.Transaction, error) {
	query := `SELECT` + transactionColumns + ` FROM transactions WHERE id = $1 AND kind = $2`

	entry, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, kind))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Transaction{}, err
		}
		return domain.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}
	return entry, nil
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, kind domain.AccountKind, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	where := "kind = $1 AND account_id = $2"
	args := []any{kind, filter.AccountID}

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where += fmt.Sprintf(" AND processed_at >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where += fmt.Sprintf(" AND processed_at <= $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM transactions WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := `SELECT` + transactionColumns + ` FROM transactions WHERE ` + where +
		fmt.Sprintf(` ORDER BY processed_at DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		entry, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list transactions: %w", err)
		}
		out = append(out, entry)
	}
	return out, total, rows.Err()
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		entry              domain.Transaction
		fees, exchangeRate decimal.NullDecimal
		related            sql.NullString
	)

	err := row.Scan(
		&entry.ID, &entry.AccountID, &entry.AccountNumber, &entry.Kind,
		&entry.Type, &entry.Amount, &entry.Currency,
		&entry.BalanceBefore, &entry.BalanceAfter, &entry.Description,
		&entry.Reference, &entry.ProcessedBy, &entry.BranchID, &entry.Status,
		&fees, &exchangeRate, &related,
		&entry.ProcessedAt, &entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, err
	}

	if fees.Valid {
		v := fees.Decimal
		entry.Fees = &v
	}
	if exchangeRate.Valid {
		v := exchangeRate.Decimal
		entry.ExchangeRate = &v
	}
	entry.RelatedTransactionID = related.String

	return entry, nil
}
