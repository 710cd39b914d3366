package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, slug, COALESCE(icon, ''), COALESCE(description, '')
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	query := `
		SELECT id, name, slug, COALESCE(icon, ''), COALESCE(description, '')
		FROM categories
		WHERE slug = $1
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Description)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// ResolveNames matches labels against canonical category names using exact,
// case-normalized comparison. Unmatched labels are dropped; the result is
// deduplicated by category identity.
func (r *Repository) ResolveNames(ctx context.Context, labels []string) ([]Category, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Category, len(all))
	for _, c := range all {
		byName[strings.ToLower(c.Name)] = c
	}

	seen := make(map[string]bool)
	var resolved []Category
	for _, label := range labels {
		c, ok := byName[strings.ToLower(strings.TrimSpace(label))]
		if !ok || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		resolved = append(resolved, c)
	}

	return resolved, nil
}
