package repo_interfaces

import (
	"context"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// TransactionRepository reads the append-only ledger. Writes happen through
// AccountRepository so balance and ledger always move together.
type TransactionRepository interface {
	GetByID(ctx context.Context, kind domain.AccountKind, id string) (domain.Transaction, error)
	// ListByAccount returns one page of entries, newest first, plus the total
	// count of matching entries.
	ListByAccount(ctx context.Context, kind domain.AccountKind, filter domain.TransactionFilter) ([]domain.Transaction, int, error)
}
