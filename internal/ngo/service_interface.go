package ngo

import (
	"context"

	"github.com/sevasetu/ngo-directory-service/internal/pagination"
)

// ServiceInterface defines the contract for NGO business logic
type ServiceInterface interface {
	CreateNGO(ctx context.Context, req CreateNGORequest) (*NGO, error)
	GetNGO(ctx context.Context, id string) (*NGO, error)
	ListNGOs(ctx context.Context, f Filters, params pagination.Params) ([]NGO, pagination.Meta, error)
	ListBlacklistedNGOs(ctx context.Context, f BlacklistFilters, params pagination.Params) ([]NGO, pagination.Meta, error)
	UpdateNGO(ctx context.Context, id string, req UpdateNGORequest) (*NGO, error)
	VerifyNGO(ctx context.Context, id string) (*NGO, error)
	BlacklistNGO(ctx context.Context, id string, req BlacklistRequest) (*BlacklistRecord, error)
	UnblacklistNGO(ctx context.Context, id string) error
	GetMapData(ctx context.Context, includeBlacklisted bool) ([]MapPoint, error)
	SearchNGOs(ctx context.Context, term string) ([]NGO, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
