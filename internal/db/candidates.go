package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-screener/internal/types"
)

const candidateColumns = `id, name, email, phone, location, skills, certifications, summary,
	total_experience_years, resume_text, resume_filename, created_at, updated_at`

// SaveScreeningResult persists one screening in a single transaction:
// the candidate is merged-or-inserted by email, their experience and
// education rows are replaced wholesale with the new extraction, and one
// screening record is appended. Returns the candidate's identifier.
//
// The merge is falsy-preserving: a profile field is overwritten only when
// the new value is non-empty, so a re-screen that failed to extract a
// phone number does not erase a previously stored one. Resume text and
// filename are always overwritten. Candidates without an email are never
// merged; each such screening inserts a fresh row.
func (db *DB) SaveScreeningResult(ctx context.Context, result *types.ScreeningResult, resumeText string) (int64, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	profile := result.Candidate

	var existing *Candidate
	if profile.Email != "" {
		existing, err = scanCandidateRow(tx.QueryRow(ctx,
			`SELECT `+candidateColumns+` FROM candidates WHERE email = $1`,
			profile.Email,
		))
		if err != nil {
			return 0, err
		}
	}

	skills, err := jsonList(profile.Skills)
	if err != nil {
		return 0, err
	}
	certifications, err := jsonList(profile.Certifications)
	if err != nil {
		return 0, err
	}

	var candidateID int64
	if existing != nil {
		merged := mergeProfile(existing, profile)
		mergedSkills, err := jsonList(merged.Skills)
		if err != nil {
			return 0, err
		}
		mergedCerts, err := jsonList(merged.Certifications)
		if err != nil {
			return 0, err
		}

		_, err = tx.Exec(ctx,
			`UPDATE candidates
			 SET name = $1, phone = $2, location = $3, skills = $4::jsonb,
			     certifications = $5::jsonb, summary = $6, total_experience_years = $7,
			     resume_text = $8, resume_filename = $9, updated_at = NOW()
			 WHERE id = $10`,
			merged.Name, merged.Phone, merged.Location, mergedSkills,
			mergedCerts, merged.Summary, merged.TotalExperienceYears,
			resumeText, result.ResumeFilename, existing.ID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to update candidate: %w", err)
		}
		candidateID = existing.ID

		// Old child rows are deleted, not merged
		if _, err := tx.Exec(ctx, `DELETE FROM experiences WHERE candidate_id = $1`, candidateID); err != nil {
			return 0, fmt.Errorf("failed to delete experiences: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM educations WHERE candidate_id = $1`, candidateID); err != nil {
			return 0, fmt.Errorf("failed to delete educations: %w", err)
		}
	} else {
		err = tx.QueryRow(ctx,
			`INSERT INTO candidates (name, email, phone, location, skills, certifications,
			                         summary, total_experience_years, resume_text, resume_filename)
			 VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8, $9, $10)
			 RETURNING id`,
			textOrNil(profile.Name), textOrNil(profile.Email), textOrNil(profile.Phone),
			textOrNil(profile.Location), skills, certifications, textOrNil(profile.Summary),
			profile.TotalExperienceYears, resumeText, result.ResumeFilename,
		).Scan(&candidateID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert candidate: %w", err)
		}
	}

	for _, exp := range profile.Experience {
		responsibilities, err := jsonList(exp.Responsibilities)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO experiences (candidate_id, role, company, duration, years, responsibilities)
			 VALUES ($1, $2, $3, $4, $5, $6::jsonb)`,
			candidateID, exp.Role, exp.Company, textOrNil(exp.Duration), exp.Years, responsibilities,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert experience: %w", err)
		}
	}

	for _, edu := range profile.Education {
		_, err = tx.Exec(ctx,
			`INSERT INTO educations (candidate_id, degree, institution, year, gpa)
			 VALUES ($1, $2, $3, $4, $5)`,
			candidateID, edu.Degree, edu.Institution, textOrNil(edu.Year), textOrNil(edu.GPA),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert education: %w", err)
		}
	}

	match := result.MatchScore
	strengths, err := jsonList(match.Strengths)
	if err != nil {
		return 0, err
	}
	concerns, err := jsonList(match.Concerns)
	if err != nil {
		return 0, err
	}
	screenedAt := result.ScreenedAt
	if screenedAt.IsZero() {
		screenedAt = time.Now().UTC()
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO screening_records (candidate_id, job_description, job_title, match_score,
		                                justification, strengths, concerns, recommended_action, screened_at)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8, $9)`,
		candidateID, result.JobDescription, extractJobTitle(result.JobDescription),
		match.Score, match.Justification, strengths, concerns, match.RecommendedAction, screenedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert screening record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit screening result: %w", err)
	}
	return candidateID, nil
}

// mergeProfile folds a freshly extracted profile into an existing
// candidate row. Fields are overwritten only when the new value is
// non-empty; empty extractions preserve stored data.
func mergeProfile(existing *Candidate, profile types.CandidateProfile) Candidate {
	merged := *existing
	merged.Name = mergeText(existing.Name, profile.Name)
	merged.Phone = mergeText(existing.Phone, profile.Phone)
	merged.Location = mergeText(existing.Location, profile.Location)
	merged.Summary = mergeText(existing.Summary, profile.Summary)
	merged.Skills = mergeList(existing.Skills, profile.Skills)
	merged.Certifications = mergeList(existing.Certifications, profile.Certifications)
	if profile.TotalExperienceYears != nil {
		merged.TotalExperienceYears = profile.TotalExperienceYears
	}
	return merged
}

func mergeText(prev *string, next string) *string {
	if next != "" {
		return &next
	}
	return prev
}

func mergeList(prev, next []string) []string {
	if len(next) > 0 {
		return next
	}
	return prev
}

// extractJobTitle derives a display title from the first line of the job
// description, truncated to 255 characters.
func extractJobTitle(jobDescription string) string {
	trimmed := strings.TrimSpace(jobDescription)
	if trimmed == "" {
		return "Unknown Position"
	}
	line := strings.TrimSpace(strings.SplitN(trimmed, "\n", 2)[0])
	if runes := []rune(line); len(runes) > 255 {
		line = string(runes[:255])
	}
	return line
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetAllCandidates lists candidates in insertion order with pagination.
func (db *DB) GetAllCandidates(ctx context.Context, skip, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY id OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()
	return scanCandidates(rows)
}

// GetCandidateByID returns one candidate with experience and education
// children, or nil when not found.
func (db *DB) GetCandidateByID(ctx context.Context, id int64) (*Candidate, error) {
	candidate, err := scanCandidateRow(db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id,
	))
	if err != nil || candidate == nil {
		return nil, err
	}

	expRows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, role, company, duration, years, responsibilities
		 FROM experiences WHERE candidate_id = $1 ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer expRows.Close()
	for expRows.Next() {
		var exp Experience
		var responsibilities []byte
		if err := expRows.Scan(&exp.ID, &exp.CandidateID, &exp.Role, &exp.Company,
			&exp.Duration, &exp.Years, &responsibilities); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		exp.Responsibilities = scanList(responsibilities)
		candidate.Experiences = append(candidate.Experiences, exp)
	}

	eduRows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, degree, institution, year, gpa
		 FROM educations WHERE candidate_id = $1 ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list educations: %w", err)
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var edu Education
		if err := eduRows.Scan(&edu.ID, &edu.CandidateID, &edu.Degree,
			&edu.Institution, &edu.Year, &edu.GPA); err != nil {
			return nil, fmt.Errorf("failed to scan education: %w", err)
		}
		candidate.Educations = append(candidate.Educations, edu)
	}

	return candidate, nil
}

// GetCandidateByEmail returns one candidate by exact email match, or nil
// when not found.
func (db *DB) GetCandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	return scanCandidateRow(db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE email = $1`, email,
	))
}

// SearchCandidatesBySkill returns candidates whose skills contain the
// given token as a case-insensitive substring.
func (db *DB) SearchCandidatesBySkill(ctx context.Context, skill string) ([]Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates
		 WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(skills) AS s(value)
			WHERE s.value ILIKE '%' || $1 || '%'
		 )
		 ORDER BY id`,
		skill,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	defer rows.Close()
	return scanCandidates(rows)
}

// scanCandidateRow scans a single candidate row, mapping no-rows to nil.
func scanCandidateRow(row pgx.Row) (*Candidate, error) {
	var c Candidate
	var skills, certifications []byte
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Location, &skills,
		&certifications, &c.Summary, &c.TotalExperienceYears, &c.ResumeText,
		&c.ResumeFilename, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan candidate: %w", err)
	}
	c.Skills = scanList(skills)
	c.Certifications = scanList(certifications)
	return &c, nil
}

func scanCandidates(rows pgx.Rows) ([]Candidate, error) {
	var candidates []Candidate
	for rows.Next() {
		candidate, err := scanCandidateRow(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}
