package posts

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ngoEligible guards writes under an NGO: the owner must exist, be active and
// not blacklisted.
func (r *Repository) ngoEligible(ctx context.Context, ngoID string) error {
	var eligible bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM ngos WHERE id = $1 AND active = TRUE AND blacklisted = FALSE)`,
		ngoID,
	).Scan(&eligible)
	if err != nil {
		return fmt.Errorf("failed to check ngo eligibility: %w", err)
	}
	if !eligible {
		return ErrNGONotEligible
	}
	return nil
}

func (r *Repository) CreatePost(ctx context.Context, p *VolunteerPost) error {
	if err := r.ngoEligible(ctx, p.NGOID); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO volunteer_posts (id, ngo_id, title, description, requirements, location, deadline, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.NGOID, p.Title,
		nullString(p.Description), nullString(p.Requirements), nullString(p.Location),
		p.Deadline, p.Active, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert volunteer post: %w", err)
	}
	return nil
}

// ListPosts returns open posts of visible NGOs. Posts vanish from the listing
// when their NGO is blacklisted or deactivated.
func (r *Repository) ListPosts(ctx context.Context, limit, offset int) ([]VolunteerPost, int, error) {
	whereClause := `
		WHERE p.active = TRUE
		  AND (p.deadline IS NULL OR p.deadline >= CURRENT_DATE)
		  AND n.active = TRUE AND n.blacklisted = FALSE`

	var totalCount int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM volunteer_posts p
		JOIN ngos n ON n.id = p.ngo_id
		%s
	`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count volunteer posts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.ngo_id, n.name, p.title,
		       COALESCE(p.description, ''), COALESCE(p.requirements, ''), COALESCE(p.location, ''),
		       p.deadline, p.active, p.created_at
		FROM volunteer_posts p
		JOIN ngos n ON n.id = p.ngo_id
		%s
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query volunteer posts: %w", err)
	}
	defer rows.Close()

	var posts []VolunteerPost
	for rows.Next() {
		var p VolunteerPost
		if err := rows.Scan(&p.ID, &p.NGOID, &p.NGOName, &p.Title,
			&p.Description, &p.Requirements, &p.Location,
			&p.Deadline, &p.Active, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan volunteer post: %w", err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating volunteer posts: %w", err)
	}

	return posts, totalCount, nil
}

func (r *Repository) CreateEvent(ctx context.Context, e *Event) error {
	if err := r.ngoEligible(ctx, e.NGOID); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, ngo_id, title, description, event_date, location, registration_link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.NGOID, e.Title,
		nullString(e.Description), e.EventDate, nullString(e.Location), nullString(e.RegistrationLink),
		e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// ListEvents returns upcoming events of visible NGOs, soonest first
func (r *Repository) ListEvents(ctx context.Context, limit, offset int) ([]Event, int, error) {
	whereClause := `
		WHERE e.event_date >= now()
		  AND n.active = TRUE AND n.blacklisted = FALSE`

	var totalCount int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM events e
		JOIN ngos n ON n.id = e.ngo_id
		%s
	`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.ngo_id, n.name, e.title,
		       COALESCE(e.description, ''), e.event_date,
		       COALESCE(e.location, ''), COALESCE(e.registration_link, ''), e.created_at
		FROM events e
		JOIN ngos n ON n.id = e.ngo_id
		%s
		ORDER BY e.event_date, e.id
		LIMIT $1 OFFSET $2
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.NGOID, &e.NGOName, &e.Title,
			&e.Description, &e.EventDate, &e.Location, &e.RegistrationLink, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating events: %w", err)
	}

	return events, totalCount, nil
}

// CreateApplication stores an application against an open post
func (r *Repository) CreateApplication(ctx context.Context, a *Application) error {
	var deadline sql.NullTime
	var active bool
	err := r.db.QueryRowContext(ctx,
		`SELECT deadline, active FROM volunteer_posts WHERE id = $1`,
		a.VolunteerPostID,
	).Scan(&deadline, &active)
	if err == sql.ErrNoRows {
		return ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query volunteer post: %w", err)
	}
	if !active || (deadline.Valid && deadline.Time.Before(time.Now().Truncate(24*time.Hour))) {
		return ErrPostClosed
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO applications (id, user_id, volunteer_post_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.UserID, a.VolunteerPostID, nullString(a.Message), a.Status, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// ListApplicationsByUser returns a user's applications, newest first
func (r *Repository) ListApplicationsByUser(ctx context.Context, userID string) ([]Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.user_id, a.volunteer_post_id, p.title, COALESCE(a.message, ''), a.status, a.created_at
		FROM applications a
		JOIN volunteer_posts p ON p.id = a.volunteer_post_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.VolunteerPostID, &a.PostTitle, &a.Message, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return apps, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
