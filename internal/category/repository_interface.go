package category

import "context"

// RepositoryInterface defines the contract for category data access
type RepositoryInterface interface {
	List(ctx context.Context) ([]Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	ResolveNames(ctx context.Context, labels []string) ([]Category, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
