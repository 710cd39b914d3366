package stats

import "context"

// RepositoryInterface defines the contract for aggregate queries
type RepositoryInterface interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
