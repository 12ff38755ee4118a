package memory

import (
	"context"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// TransactionRepository exposes the ledger reads of a Store under the
// repository contract. The Store itself satisfies AccountRepository.
type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) GetByID(ctx context.Context, kind domain.AccountKind, id string) (domain.Transaction, error) {
	return r.store.GetTransactionByID(ctx, kind, id)
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, kind domain.AccountKind, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	return r.store.ListByAccount(ctx, kind, filter)
}
