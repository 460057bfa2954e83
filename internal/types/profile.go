// Package types provides type definitions for structured screening data
// shared across the resume-screener system.
package types

import "time"

// Recommended-action tiers attached to a screening.
const (
	ActionShortlist = "Shortlist"
	ActionMaybe     = "Maybe"
	ActionReject    = "Reject"
)

// Experience is a single work-experience entry extracted from a resume.
type Experience struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration,omitempty"`
	Years            *float64 `json:"years,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// Education is a single education entry extracted from a resume.
// Year may carry "Expected" or "Final Year" markers; GPA keeps its scale
// suffix verbatim (e.g. "8.5/10", "3.6/4.0", "85%").
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// CandidateProfile is the structured candidate data extracted from one
// resume. Email, when present, is the natural dedup key for persistence.
type CandidateProfile struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`

	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`

	TotalExperienceYears *float64 `json:"total_experience_years,omitempty"`
	Certifications       []string `json:"certifications,omitempty"`
	Summary              string   `json:"summary,omitempty"`
}

// MatchScore is the model's assessment of a candidate against one job
// description. Score is in [1.0, 10.0], one decimal by convention.
type MatchScore struct {
	Score             float64  `json:"score"`
	Justification     string   `json:"justification"`
	Strengths         []string `json:"strengths"`
	Concerns          []string `json:"concerns"`
	RecommendedAction string   `json:"recommended_action"`
}

// ScreeningResult is the output of one full screening: the extracted
// profile plus its score against the supplied job description.
type ScreeningResult struct {
	Candidate      CandidateProfile `json:"candidate"`
	MatchScore     MatchScore       `json:"match_score"`
	JobDescription string           `json:"job_description"`
	ScreenedAt     time.Time        `json:"screened_at"`
	ResumeFilename string           `json:"resume_filename"`
}
