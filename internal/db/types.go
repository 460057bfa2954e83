package db

import "time"

// Candidate is one stored candidate row. There is one row per unique
// email; candidates without an email are never merged. Experiences and
// Educations are populated only by GetCandidateByID.
type Candidate struct {
	ID       int64   `json:"id"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`

	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
	Summary        *string  `json:"summary,omitempty"`

	TotalExperienceYears *float64 `json:"total_experience_years,omitempty"`
	ResumeText           string   `json:"-"`
	ResumeFilename       string   `json:"resume_filename,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Experiences []Experience `json:"experiences,omitempty"`
	Educations  []Education  `json:"educations,omitempty"`
}

// Experience is one stored work-experience row. Rows always hold the
// latest extraction's entries; they are wholly replaced on re-screen.
type Experience struct {
	ID               int64    `json:"-"`
	CandidateID      int64    `json:"-"`
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Duration         *string  `json:"duration,omitempty"`
	Years            *float64 `json:"years,omitempty"`
	Responsibilities []string `json:"responsibilities"`
}

// Education is one stored education row, replaced on re-screen like
// Experience.
type Education struct {
	ID          int64   `json:"-"`
	CandidateID int64   `json:"-"`
	Degree      string  `json:"degree"`
	Institution string  `json:"institution"`
	Year        *string `json:"year,omitempty"`
	GPA         *string `json:"gpa,omitempty"`
}

// ScreeningRecord is one screening event. Records are immutable once
// created; a candidate's history only grows.
type ScreeningRecord struct {
	ID                int64     `json:"id"`
	CandidateID       int64     `json:"candidate_id"`
	JobDescription    string    `json:"job_description"`
	JobTitle          string    `json:"job_title"`
	MatchScore        float64   `json:"match_score"`
	Justification     string    `json:"justification"`
	Strengths         []string  `json:"strengths"`
	Concerns          []string  `json:"concerns"`
	RecommendedAction string    `json:"recommended_action"`
	ScreenedAt        time.Time `json:"screened_at"`
}

// ShortlistedCandidate pairs a candidate with their most recent
// Shortlist-labeled screening record.
type ShortlistedCandidate struct {
	Candidate Candidate       `json:"candidate"`
	Record    ScreeningRecord `json:"record"`
}

// Stats summarizes the dataset.
type Stats struct {
	TotalCandidates int64 `json:"total_candidates"`
	TotalScreenings int64 `json:"total_screenings"`
	Shortlisted     int64 `json:"shortlisted"`
	Maybe           int64 `json:"maybe"`
	Rejected        int64 `json:"rejected"`
}

// DeletionSummary reports what a cascading candidate delete removed.
type DeletionSummary struct {
	CandidateName string `json:"candidate"`
	Experiences   int64  `json:"experiences"`
	Educations    int64  `json:"educations"`
	Screenings    int64  `json:"screenings"`
}

// ScreeningFilters holds optional filters for listing screening records.
type ScreeningFilters struct {
	Skip              int
	Limit             int
	MinScore          *float64
	RecommendedAction string
}
