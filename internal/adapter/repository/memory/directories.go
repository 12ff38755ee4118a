package memory

import (
	"context"
	"sync"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

// CustomerDirectory is an in-memory customer registry used in tests and in
// deployments where the real customer service is not wired.
type CustomerDirectory struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewCustomerDirectory(names map[string]string) *CustomerDirectory {
	if names == nil {
		names = make(map[string]string)
	}
	return &CustomerDirectory{names: names}
}

func (d *CustomerDirectory) Register(customerID, displayName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[customerID] = displayName
}

func (d *CustomerDirectory) Exists(_ context.Context, customerID string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.names[customerID]
	return ok, nil
}

func (d *CustomerDirectory) DisplayName(_ context.Context, customerID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[customerID]
	if !ok {
		return "", domain.ErrRecordNotFound
	}
	return name, nil
}

// BranchDirectory resolves branch ids to display names.
type BranchDirectory struct {
	names map[int]string
}

func NewBranchDirectory(names map[int]string) *BranchDirectory {
	if names == nil {
		names = map[int]string{
			1: "Siège Central",
			2: "Succursale Nord",
			3: "Succursale Sud",
		}
	}
	return &BranchDirectory{names: names}
}

func (d *BranchDirectory) Name(_ context.Context, branchID int) (string, error) {
	name, ok := d.names[branchID]
	if !ok {
		return "", domain.ErrRecordNotFound
	}
	return name, nil
}

// ActorDirectory resolves "processed by" operator ids to display names.
// Unknown actors resolve to their raw id so ledger responses stay renderable
// when the identity service lags behind.
type ActorDirectory struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewActorDirectory(names map[string]string) *ActorDirectory {
	if names == nil {
		names = make(map[string]string)
	}
	return &ActorDirectory{names: names}
}

func (d *ActorDirectory) Register(actorID, displayName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[actorID] = displayName
}

func (d *ActorDirectory) DisplayName(_ context.Context, actorID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if name, ok := d.names[actorID]; ok {
		return name, nil
	}
	return actorID, nil
}
