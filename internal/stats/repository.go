package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Count queries share the default listing visibility: inactive and
// blacklisted NGOs are hidden everywhere except the blacklist count itself,
// so the totals always agree with the per-category and per-state breakdowns.
const (
	totalNGOsQuery       = `SELECT COUNT(*) FROM ngos WHERE active = TRUE AND blacklisted = FALSE`
	verifiedNGOsQuery    = `SELECT COUNT(*) FROM ngos WHERE active = TRUE AND blacklisted = FALSE AND verified = TRUE`
	blacklistedNGOsQuery = `SELECT COUNT(*) FROM ngos WHERE blacklisted = TRUE`

	activePostsQuery = `
		SELECT COUNT(*)
		FROM volunteer_posts p
		JOIN ngos n ON n.id = p.ngo_id
		WHERE p.active = TRUE AND (p.deadline IS NULL OR p.deadline >= CURRENT_DATE)
		  AND n.active = TRUE AND n.blacklisted = FALSE`

	upcomingEventsQuery = `
		SELECT COUNT(*)
		FROM events e
		JOIN ngos n ON n.id = e.ngo_id
		WHERE e.event_date >= now()
		  AND n.active = TRUE AND n.blacklisted = FALSE`
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Snapshot collects all aggregate counts inside one repeatable-read
// transaction so the numbers are mutually consistent even while writes land.
func (r *Repository) Snapshot(ctx context.Context) (*Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin stats transaction: %w", err)
	}
	defer tx.Rollback()

	snap := &Snapshot{
		ByCategory:  []CategoryCount{},
		ByState:     []StateCount{},
		GeneratedAt: time.Now().UTC(),
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{totalNGOsQuery, &snap.TotalNGOs},
		{verifiedNGOsQuery, &snap.VerifiedNGOs},
		{blacklistedNGOsQuery, &snap.BlacklistedNGOs},
		{activePostsQuery, &snap.ActiveVolunteerPosts},
		{upcomingEventsQuery, &snap.UpcomingEvents},
	}
	for _, c := range counts {
		if err := tx.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT c.name, c.slug, COUNT(nc.ngo_id)
		FROM categories c
		JOIN ngo_categories nc ON nc.category_id = c.id
		JOIN ngos n ON n.id = nc.ngo_id
		WHERE n.active = TRUE AND n.blacklisted = FALSE
		GROUP BY c.name, c.slug
		HAVING COUNT(nc.ngo_id) > 0
		ORDER BY COUNT(nc.ngo_id) DESC, c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Slug, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		snap.ByCategory = append(snap.ByCategory, cc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	stateRows, err := tx.QueryContext(ctx, `
		SELECT state, COUNT(*)
		FROM ngos
		WHERE active = TRUE AND blacklisted = FALSE AND state IS NOT NULL AND state <> ''
		GROUP BY state
		ORDER BY COUNT(*) DESC, state
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query state counts: %w", err)
	}
	defer stateRows.Close()

	for stateRows.Next() {
		var sc StateCount
		if err := stateRows.Scan(&sc.State, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %w", err)
		}
		snap.ByState = append(snap.ByState, sc)
	}
	if err = stateRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating state counts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stats transaction: %w", err)
	}

	return snap, nil
}
