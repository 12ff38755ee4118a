package repo_interfaces

import (
	"context"
	"time"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// AccountRepository persists accounts of the kinds managed by this engine and
// applies every balance mutation together with its ledger entries as one
// atomic unit.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, kind domain.AccountKind, id string) (domain.Account, error)
	GetByNumber(ctx context.Context, kind domain.AccountKind, accountNumber string) (domain.Account, error)
	List(ctx context.Context, kind domain.AccountKind, filter domain.AccountFilter) ([]domain.Account, error)
	ListMaturedTerm(ctx context.Context, now time.Time) ([]domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
	ReplaceSigners(ctx context.Context, accountID string, signers []domain.AuthorizedSigner) error
	Delete(ctx context.Context, kind domain.AccountKind, id string) error

	// AccountNumberExists checks for collisions across every kind.
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
	// FindActiveByCustomer enforces the one-active-account-per-customer-per-
	// currency rule at opening time.
	FindActiveByCustomer(ctx context.Context, kind domain.AccountKind, customerID string, currency domain.Currency) (domain.Account, error)

	// PostTransaction durably applies the account's updated balances together
	// with one ledger entry, or neither.
	PostTransaction(ctx context.Context, account domain.Account, entry domain.Transaction) (domain.Transaction, error)
	// ProcessTransfer applies both balance updates and both cross-linked legs
	// as a single all-or-nothing unit.
	ProcessTransfer(ctx context.Context, source, destination domain.Account, sourceLeg, destinationLeg domain.Transaction) (domain.TransferResult, error)
	// CancelTransaction applies the reversal entry, the account's restored
	// balances, and the original entry's CANCELLED flip atomically.
	CancelTransaction(ctx context.Context, account domain.Account, reversal domain.Transaction, originalID, cancelledDescription string) (domain.Transaction, error)
}
