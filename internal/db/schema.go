package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// schemaStatements create the directory tables. Statements are idempotent so the
// seed job can be re-run safely.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		slug        TEXT NOT NULL UNIQUE,
		icon        TEXT,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS ngos (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		registration_no    TEXT UNIQUE,
		darpan_id          TEXT UNIQUE,
		mission            TEXT,
		description        TEXT,
		founded_year       INTEGER,
		email              TEXT,
		phone              TEXT,
		website            TEXT,
		address            TEXT,
		city               TEXT,
		state              TEXT,
		district           TEXT,
		country            TEXT NOT NULL DEFAULT 'India',
		latitude           DOUBLE PRECISION,
		longitude          DOUBLE PRECISION,
		registered_with    TEXT,
		registration_date  DATE,
		act_name           TEXT,
		type_of_ngo        TEXT,
		verified           BOOLEAN NOT NULL DEFAULT FALSE,
		active             BOOLEAN NOT NULL DEFAULT TRUE,
		blacklisted        BOOLEAN NOT NULL DEFAULT FALSE,
		transparency_score INTEGER NOT NULL DEFAULT 0,
		source             TEXT,
		scraped_at         TIMESTAMPTZ,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ngo_categories (
		ngo_id      TEXT NOT NULL REFERENCES ngos(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL REFERENCES categories(id),
		PRIMARY KEY (ngo_id, category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS office_bearers (
		id          TEXT PRIMARY KEY,
		ngo_id      TEXT NOT NULL REFERENCES ngos(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		designation TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS blacklist_records (
		id             TEXT PRIMARY KEY,
		ngo_id         TEXT NOT NULL UNIQUE REFERENCES ngos(id) ON DELETE CASCADE,
		blacklisted_by TEXT,
		blacklist_date DATE,
		reason         TEXT,
		wef_date       DATE,
		last_updated   DATE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT,
		role          TEXT NOT NULL DEFAULT 'USER',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS volunteer_posts (
		id           TEXT PRIMARY KEY,
		ngo_id       TEXT NOT NULL REFERENCES ngos(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		description  TEXT,
		requirements TEXT,
		location     TEXT,
		deadline     DATE,
		active       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id                TEXT PRIMARY KEY,
		ngo_id            TEXT NOT NULL REFERENCES ngos(id) ON DELETE CASCADE,
		title             TEXT NOT NULL,
		description       TEXT,
		event_date        TIMESTAMPTZ NOT NULL,
		location          TEXT,
		registration_link TEXT,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL REFERENCES users(id),
		volunteer_post_id TEXT NOT NULL REFERENCES volunteer_posts(id) ON DELETE CASCADE,
		message           TEXT,
		status            TEXT NOT NULL DEFAULT 'pending',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ngos_state ON ngos (state)`,
	`CREATE INDEX IF NOT EXISTS idx_ngos_blacklisted ON ngos (blacklisted)`,
	`CREATE INDEX IF NOT EXISTS idx_ngo_categories_category ON ngo_categories (category_id)`,
}

// ApplySchema creates all tables and indexes if they do not exist yet.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	log.Println("✓ Database schema applied")
	return nil
}
