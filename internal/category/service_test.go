package category

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockRepository struct {
	listFunc         func(ctx context.Context) ([]Category, error)
	getBySlugFunc    func(ctx context.Context, slug string) (*Category, error)
	resolveNamesFunc func(ctx context.Context, labels []string) ([]Category, error)
}

func (m *mockRepository) List(ctx context.Context) ([]Category, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ResolveNames(ctx context.Context, labels []string) ([]Category, error) {
	if m.resolveNamesFunc != nil {
		return m.resolveNamesFunc(ctx, labels)
	}
	// Default: run the real matching logic against listFunc data
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]Category)
	for _, c := range all {
		byName[strings.ToLower(c.Name)] = c
	}
	seen := make(map[string]bool)
	var out []Category
	for _, l := range labels {
		if c, ok := byName[strings.ToLower(strings.TrimSpace(l))]; ok && !seen[c.ID] {
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func taxonomy() []Category {
	return []Category{
		{ID: "c1", Name: "Education", Slug: "education"},
		{ID: "c2", Name: "Health", Slug: "health"},
		{ID: "c3", Name: "Child Welfare", Slug: "child-welfare"},
	}
}

// TestResolve_CaseInsensitive tests case-normalized exact matching
func TestResolve_CaseInsensitive(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Category, error) { return taxonomy(), nil },
	}
	service := NewService(repo)

	resolved, err := service.Resolve(context.Background(), []string{"EDUCATION", "health", " Child Welfare "})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(resolved) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(resolved))
	}
}

// TestResolve_DropsUnmatched tests that advisory labels with no match vanish silently
func TestResolve_DropsUnmatched(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Category, error) { return taxonomy(), nil },
	}
	service := NewService(repo)

	resolved, err := service.Resolve(context.Background(), []string{"Astrology", "Health"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(resolved) != 1 || resolved[0].Slug != "health" {
		t.Errorf("Expected only health, got %v", resolved)
	}
}

// TestResolve_Idempotent tests deduplication by category identity
func TestResolve_Idempotent(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Category, error) { return taxonomy(), nil },
	}
	service := NewService(repo)

	resolved, err := service.Resolve(context.Background(), []string{"Health", "health", "HEALTH"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(resolved) != 1 {
		t.Errorf("Expected 1 category after dedup, got %d", len(resolved))
	}
}

// TestResolve_EmptyIsValid tests that zero resolvable labels is not an error
func TestResolve_EmptyIsValid(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Category, error) { return taxonomy(), nil },
	}
	service := NewService(repo)

	resolved, err := service.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(resolved) != 0 {
		t.Errorf("Expected empty result, got %v", resolved)
	}
}

// TestVocabularyNames tests the closed vocabulary projection
func TestVocabularyNames(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Category, error) { return taxonomy(), nil },
	}
	service := NewService(repo)

	names, err := service.VocabularyNames(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(names) != 3 || names[0] != "Education" {
		t.Errorf("Unexpected vocabulary: %v", names)
	}
}
