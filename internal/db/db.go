// Package db provides PostgreSQL persistence for candidates and their
// screening history.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the schema when it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS candidates (
			id BIGSERIAL PRIMARY KEY,
			name TEXT,
			email TEXT,
			phone TEXT,
			location TEXT,
			skills JSONB NOT NULL DEFAULT '[]',
			certifications JSONB NOT NULL DEFAULT '[]',
			summary TEXT,
			total_experience_years DOUBLE PRECISION,
			resume_text TEXT NOT NULL DEFAULT '',
			resume_filename TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_email ON candidates (email)`,
		`CREATE TABLE IF NOT EXISTS experiences (
			id BIGSERIAL PRIMARY KEY,
			candidate_id BIGINT NOT NULL REFERENCES candidates(id),
			role TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			duration TEXT,
			years DOUBLE PRECISION,
			responsibilities JSONB NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_experiences_candidate ON experiences (candidate_id)`,
		`CREATE TABLE IF NOT EXISTS educations (
			id BIGSERIAL PRIMARY KEY,
			candidate_id BIGINT NOT NULL REFERENCES candidates(id),
			degree TEXT NOT NULL DEFAULT '',
			institution TEXT NOT NULL DEFAULT '',
			year TEXT,
			gpa TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_educations_candidate ON educations (candidate_id)`,
		`CREATE TABLE IF NOT EXISTS screening_records (
			id BIGSERIAL PRIMARY KEY,
			candidate_id BIGINT NOT NULL REFERENCES candidates(id),
			job_description TEXT NOT NULL,
			job_title TEXT NOT NULL,
			match_score DOUBLE PRECISION NOT NULL,
			justification TEXT NOT NULL DEFAULT '',
			strengths JSONB NOT NULL DEFAULT '[]',
			concerns JSONB NOT NULL DEFAULT '[]',
			recommended_action TEXT NOT NULL,
			screened_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_screenings_candidate ON screening_records (candidate_id)`,
		`CREATE INDEX IF NOT EXISTS idx_screenings_screened_at ON screening_records (screened_at)`,
		`CREATE INDEX IF NOT EXISTS idx_screenings_action ON screening_records (recommended_action)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// jsonList marshals a string list for a jsonb column; nil becomes [].
func jsonList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to marshal list: %w", err)
	}
	return string(data), nil
}

// scanList unmarshals a jsonb column into a string list.
func scanList(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil
	}
	return values
}
