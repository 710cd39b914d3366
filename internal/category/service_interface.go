package category

import "context"

// ServiceInterface defines the contract for category business logic
type ServiceInterface interface {
	ListCategories(ctx context.Context) ([]Category, error)
	VocabularyNames(ctx context.Context) ([]string, error)
	Resolve(ctx context.Context, labels []string) ([]Category, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
