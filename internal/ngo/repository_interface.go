package ngo

import "context"

// RepositoryInterface defines the contract for NGO data access
type RepositoryInterface interface {
	Create(ctx context.Context, n *NGO) error
	GetByID(ctx context.Context, id string) (*NGO, error)
	List(ctx context.Context, f Filters, limit, offset int) ([]NGO, int, error)
	ListBlacklisted(ctx context.Context, f BlacklistFilters, limit, offset int) ([]NGO, int, error)
	Update(ctx context.Context, id string, req UpdateNGORequest) (*NGO, error)
	Verify(ctx context.Context, id string) (*NGO, error)
	Blacklist(ctx context.Context, id string, rec *BlacklistRecord) error
	Unblacklist(ctx context.Context, id string) error
	MapData(ctx context.Context, includeBlacklisted bool) ([]MapPoint, error)
	Search(ctx context.Context, term string, limit int) ([]NGO, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
