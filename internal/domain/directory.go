package domain

import "context"

// The engine resolves customers, branches and operators through external
// directories. They are collaborators of the ledger, not part of it.

type CustomerDirectory interface {
	Exists(ctx context.Context, customerID string) (bool, error)
	DisplayName(ctx context.Context, customerID string) (string, error)
}

type BranchDirectory interface {
	Name(ctx context.Context, branchID int) (string, error)
}

type ActorDirectory interface {
	DisplayName(ctx context.Context, actorID string) (string, error)
}
