package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// Store is a mutex-guarded in-memory implementation of the account and
// transaction repositories. It backs the test suites and any deployment that
// runs without postgres. Every mutating call applies its account update and
// ledger inserts under one lock acquisition, mirroring the transactional
// guarantees of the postgres adapter.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]domain.Account     // account id -> account
	transactions map[string]domain.Transaction // transaction id -> entry
	order        []string                      // transaction ids in insertion order
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
	}
}

func cloneAccount(a domain.Account) domain.Account {
	out := a
	if a.LastTransaction != nil {
		t := *a.LastTransaction
		out.LastTransaction = &t
	}
	if a.ClosedAt != nil {
		t := *a.ClosedAt
		out.ClosedAt = &t
	}
	if a.Current != nil {
		cd := *a.Current
		cd.Signers = append([]domain.AuthorizedSigner(nil), a.Current.Signers...)
		out.Current = &cd
	}
	if a.Term != nil {
		td := *a.Term
		if a.Term.LastInterestCalculation != nil {
			t := *a.Term.LastInterestCalculation
			td.LastInterestCalculation = &t
		}
		out.Term = &td
	}
	return out
}

func (s *Store) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	s.accounts[account.ID] = cloneAccount(account)
	return account, nil
}

func (s *Store) GetByID(ctx context.Context, kind domain.AccountKind, id string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok || account.Kind != kind {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return cloneAccount(account), nil
}

func (s *Store) GetByNumber(ctx context.Context, kind domain.AccountKind, accountNumber string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Kind == kind && account.AccountNumber == accountNumber {
			return cloneAccount(account), nil
		}
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (s *Store) List(ctx context.Context, kind domain.AccountKind, filter domain.AccountFilter) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Account
	for _, account := range s.accounts {
		if account.Kind == kind && filter.Matches(account) {
			out = append(out, cloneAccount(account))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, nil
}

func (s *Store) ListMaturedTerm(ctx context.Context, now time.Time) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Account
	for _, account := range s.accounts {
		if account.Kind == domain.KindTermSavings &&
			account.Status == domain.AccountStatusActive &&
			account.Term != nil && account.Term.Matured(now) {
			out = append(out, cloneAccount(account))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, nil
}

func (s *Store) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.ID]
	if !ok || stored.Kind != account.Kind {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	account.CreatedAt = stored.CreatedAt
	account.UpdatedAt = time.Now().UTC()
	s.accounts[account.ID] = cloneAccount(account)
	return account, nil
}

func (s *Store) ReplaceSigners(ctx context.Context, accountID string, signers []domain.AuthorizedSigner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok || account.Current == nil {
		return domain.ErrRecordNotFound
	}
	account.Current.Signers = append([]domain.AuthorizedSigner(nil), signers...)
	s.accounts[accountID] = account
	return nil
}

func (s *Store) Delete(ctx context.Context, kind domain.AccountKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok || account.Kind != kind {
		return domain.ErrRecordNotFound
	}
	delete(s.accounts, id)

	kept := s.order[:0]
	for _, txID := range s.order {
		if s.transactions[txID].AccountID == id {
			delete(s.transactions, txID)
			continue
		}
		kept = append(kept, txID)
	}
	s.order = kept
	return nil
}

func (s *Store) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.AccountNumber == accountNumber {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) FindActiveByCustomer(ctx context.Context, kind domain.AccountKind, customerID string, currency domain.Currency) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Kind == kind && account.CustomerID == customerID &&
			account.Currency == currency && account.Status == domain.AccountStatusActive {
			return cloneAccount(account), nil
		}
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (s *Store) PostTransaction(ctx context.Context, account domain.Account, entry domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	account.UpdatedAt = time.Now().UTC()
	s.accounts[account.ID] = cloneAccount(account)
	s.insertLocked(entry)
	return entry, nil
}

func (s *Store) ProcessTransfer(ctx context.Context, source, destination domain.Account, sourceLeg, destinationLeg domain.Transaction) (domain.TransferResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[source.ID]; !ok {
		return domain.TransferResult{}, domain.ErrRecordNotFound
	}
	if _, ok := s.accounts[destination.ID]; !ok {
		return domain.TransferResult{}, domain.ErrRecordNotFound
	}

	now := time.Now().UTC()
	source.UpdatedAt = now
	destination.UpdatedAt = now
	s.accounts[source.ID] = cloneAccount(source)
	s.accounts[destination.ID] = cloneAccount(destination)
	s.insertLocked(sourceLeg)
	s.insertLocked(destinationLeg)

	return domain.TransferResult{
		SourceTransaction:      sourceLeg,
		DestinationTransaction: destinationLeg,
	}, nil
}

func (s *Store) CancelTransaction(ctx context.Context, account domain.Account, reversal domain.Transaction, originalID, cancelledDescription string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.transactions[originalID]
	if !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	if original.Status != domain.TransactionStatusCompleted {
		return domain.Transaction{}, fmt.Errorf("%w: transaction status is %s", domain.ErrInvalidState, original.Status)
	}
	if _, ok := s.accounts[account.ID]; !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}

	account.UpdatedAt = time.Now().UTC()
	s.accounts[account.ID] = cloneAccount(account)
	s.insertLocked(reversal)

	original.Status = domain.TransactionStatusCancelled
	original.Description = cancelledDescription
	s.transactions[originalID] = original

	return reversal, nil
}

func (s *Store) GetTransactionByID(ctx context.Context, kind domain.AccountKind, id string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.transactions[id]
	if !ok || entry.Kind != kind {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	return entry, nil
}

func (s *Store) ListByAccount(ctx context.Context, kind domain.AccountKind, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.Transaction
	for _, txID := range s.order {
		entry := s.transactions[txID]
		if entry.Kind != kind || entry.AccountID != filter.AccountID {
			continue
		}
		if filter.DateFrom != nil && entry.ProcessedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && entry.ProcessedAt.After(*filter.DateTo) {
			continue
		}
		matched = append(matched, entry)
	}

	// Newest first, insertion order as tie-break.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ProcessedAt.After(matched[j].ProcessedAt)
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.PageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *Store) insertLocked(entry domain.Transaction) {
	s.transactions[entry.ID] = entry
	s.order = append(s.order, entry.ID)
}
