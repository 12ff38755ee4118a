package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// SavingsService is the in-memory stand-in for the external ordinary-savings
// system consumed by the aggregation facade.
type SavingsService struct {
	mu       sync.Mutex
	accounts []domain.Account
}

func NewSavingsService() *SavingsService {
	return &SavingsService{}
}

// Register seeds a savings account summary. Kind is forced so callers cannot
// slip other kinds into the savings view.
func (s *SavingsService) Register(account domain.Account) {
	account.Kind = domain.KindSavings
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, account)
}

func (s *SavingsService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		if filter.Matches(account) {
			out = append(out, account)
		}
	}
	return out, nil
}

func (s *SavingsService) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return domain.Account{}, fmt.Errorf("%w: savings account %s", domain.ErrRecordNotFound, id)
}

func (s *SavingsService) GetAccountByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.AccountNumber == accountNumber {
			return account, nil
		}
	}
	return domain.Account{}, fmt.Errorf("%w: savings account %s", domain.ErrRecordNotFound, accountNumber)
}
