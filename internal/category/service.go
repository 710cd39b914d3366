package category

import (
	"context"
	"fmt"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// VocabularyNames returns the canonical category names used as the closed
// vocabulary for enrichment suggestions.
func (s *Service) VocabularyNames(ctx context.Context) ([]string, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category vocabulary: %w", err)
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}

// Resolve maps free-text labels to canonical categories. Unresolvable labels
// are advisory and dropped; zero matches is not an error.
func (s *Service) Resolve(ctx context.Context, labels []string) ([]Category, error) {
	resolved, err := s.repo.ResolveNames(ctx, labels)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category labels: %w", err)
	}
	return resolved, nil
}
