package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const screeningColumns = `id, candidate_id, job_description, job_title, match_score,
	justification, strengths, concerns, recommended_action, screened_at`

// GetScreeningRecords lists screening records, most recent first, with
// optional minimum-score and recommended-action filters.
func (db *DB) GetScreeningRecords(ctx context.Context, filters ScreeningFilters) ([]ScreeningRecord, error) {
	if filters.Limit <= 0 {
		filters.Limit = 100
	}

	query := `SELECT ` + screeningColumns + ` FROM screening_records WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.MinScore != nil {
		query += fmt.Sprintf(" AND match_score >= $%d", argNum)
		args = append(args, *filters.MinScore)
		argNum++
	}
	if filters.RecommendedAction != "" {
		query += fmt.Sprintf(" AND recommended_action = $%d", argNum)
		args = append(args, filters.RecommendedAction)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY screened_at DESC OFFSET $%d LIMIT $%d", argNum, argNum+1)
	args = append(args, filters.Skip, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list screening records: %w", err)
	}
	defer rows.Close()
	return scanScreeningRecords(rows)
}

// GetCandidateScreeningHistory returns all screening records for one
// candidate, most recent first.
func (db *DB) GetCandidateScreeningHistory(ctx context.Context, candidateID int64) ([]ScreeningRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+screeningColumns+` FROM screening_records
		 WHERE candidate_id = $1 ORDER BY screened_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list screening history: %w", err)
	}
	defer rows.Close()
	return scanScreeningRecords(rows)
}

// GetShortlistedCandidates returns, for every candidate with at least one
// Shortlist-labeled record, that candidate paired with their most recent
// Shortlist record, ordered by match score descending.
func (db *DB) GetShortlistedCandidates(ctx context.Context, limit int) ([]ShortlistedCandidate, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT c.id, c.name, c.email, c.phone, c.location, c.skills, c.certifications,
		        c.summary, c.total_experience_years, c.resume_text, c.resume_filename,
		        c.created_at, c.updated_at,
		        r.id, r.candidate_id, r.job_description, r.job_title, r.match_score,
		        r.justification, r.strengths, r.concerns, r.recommended_action, r.screened_at
		 FROM (
			SELECT DISTINCT ON (candidate_id) *
			FROM screening_records
			WHERE recommended_action = 'Shortlist'
			ORDER BY candidate_id, screened_at DESC
		 ) r
		 JOIN candidates c ON c.id = r.candidate_id
		 ORDER BY r.match_score DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlisted candidates: %w", err)
	}
	defer rows.Close()

	var shortlisted []ShortlistedCandidate
	for rows.Next() {
		var sc ShortlistedCandidate
		var skills, certifications, strengths, concerns []byte
		err := rows.Scan(
			&sc.Candidate.ID, &sc.Candidate.Name, &sc.Candidate.Email, &sc.Candidate.Phone,
			&sc.Candidate.Location, &skills, &certifications, &sc.Candidate.Summary,
			&sc.Candidate.TotalExperienceYears, &sc.Candidate.ResumeText,
			&sc.Candidate.ResumeFilename, &sc.Candidate.CreatedAt, &sc.Candidate.UpdatedAt,
			&sc.Record.ID, &sc.Record.CandidateID, &sc.Record.JobDescription,
			&sc.Record.JobTitle, &sc.Record.MatchScore, &sc.Record.Justification,
			&strengths, &concerns, &sc.Record.RecommendedAction, &sc.Record.ScreenedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shortlisted candidate: %w", err)
		}
		sc.Candidate.Skills = scanList(skills)
		sc.Candidate.Certifications = scanList(certifications)
		sc.Record.Strengths = scanList(strengths)
		sc.Record.Concerns = scanList(concerns)
		shortlisted = append(shortlisted, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shortlisted candidates: %w", err)
	}
	return shortlisted, nil
}

// GetDatabaseStats returns dataset counts.
func (db *DB) GetDatabaseStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := db.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM candidates),
			COUNT(*),
			COUNT(*) FILTER (WHERE recommended_action = 'Shortlist'),
			COUNT(*) FILTER (WHERE recommended_action = 'Maybe'),
			COUNT(*) FILTER (WHERE recommended_action = 'Reject')
		 FROM screening_records`,
	).Scan(&stats.TotalCandidates, &stats.TotalScreenings, &stats.Shortlisted,
		&stats.Maybe, &stats.Rejected)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	return &stats, nil
}

// DeleteCandidate removes a candidate and all their child rows in one
// transaction. Returns nil (not an error) when the candidate does not
// exist; otherwise the summary reports exactly what was removed.
func (db *DB) DeleteCandidate(ctx context.Context, id int64) (*DeletionSummary, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var name *string
	err = tx.QueryRow(ctx, `SELECT name FROM candidates WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up candidate: %w", err)
	}

	summary := DeletionSummary{}
	if name != nil {
		summary.CandidateName = *name
	}

	result, err := tx.Exec(ctx, `DELETE FROM experiences WHERE candidate_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete experiences: %w", err)
	}
	summary.Experiences = result.RowsAffected()

	result, err = tx.Exec(ctx, `DELETE FROM educations WHERE candidate_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete educations: %w", err)
	}
	summary.Educations = result.RowsAffected()

	result, err = tx.Exec(ctx, `DELETE FROM screening_records WHERE candidate_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete screening records: %w", err)
	}
	summary.Screenings = result.RowsAffected()

	if _, err := tx.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete candidate: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}
	return &summary, nil
}

func scanScreeningRecords(rows pgx.Rows) ([]ScreeningRecord, error) {
	var records []ScreeningRecord
	for rows.Next() {
		var r ScreeningRecord
		var strengths, concerns []byte
		err := rows.Scan(&r.ID, &r.CandidateID, &r.JobDescription, &r.JobTitle,
			&r.MatchScore, &r.Justification, &strengths, &concerns,
			&r.RecommendedAction, &r.ScreenedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan screening record: %w", err)
		}
		r.Strengths = scanList(strengths)
		r.Concerns = scanList(concerns)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read screening records: %w", err)
	}
	return records, nil
}
