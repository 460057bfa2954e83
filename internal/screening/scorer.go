package screening

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/prompts"
	"github.com/jonathan/resume-screener/internal/types"
)

// DecisionRule maps a numeric match score to a recommended action. The
// rule is rendered into the scoring prompt and the model applies it
// itself; the scorer does not re-derive the action from the returned
// score. Swapping in a different rule (e.g. a three-way split with a
// "Maybe" band) changes nothing downstream of the prompt.
type DecisionRule struct {
	ShortlistAt float64
}

// DefaultDecisionRule shortlists at 7.0 and rejects below it.
var DefaultDecisionRule = DecisionRule{ShortlistAt: 7.0}

// Action applies the rule to a score.
func (r DecisionRule) Action(score float64) string {
	if score >= r.ShortlistAt {
		return types.ActionShortlist
	}
	return types.ActionReject
}

// Scorer rates an extracted candidate against a job description using
// the model.
type Scorer struct {
	client llm.Client
	opts   llm.GenerateOptions
	rule   DecisionRule
}

// NewScorer creates a scorer with scoring-specific generation options.
func NewScorer(client llm.Client, opts llm.GenerateOptions, rule DecisionRule) *Scorer {
	return &Scorer{client: client, opts: opts, rule: rule}
}

// Score builds the scoring prompt from the resume text, job description
// and extracted profile, invokes the model once and parses the reply into
// a MatchScore. A score outside [1, 10] or a malformed reply fails with a
// ShapeError / ResponseParseError; provider failures are wrapped in
// ScoringError.
func (s *Scorer) Score(ctx context.Context, resumeText, jobDescription string, candidate *types.CandidateProfile) (*types.MatchScore, error) {
	prompt := s.buildScoringPrompt(resumeText, jobDescription, candidate)

	reply, err := s.client.Generate(ctx, prompt, s.opts)
	if err != nil {
		return nil, &ScoringError{Cause: err}
	}

	doc, err := decodeReply(reply)
	if err != nil {
		return nil, err
	}

	if err := validateShape(matchScoreSchema, doc); err != nil {
		return nil, err
	}

	var score types.MatchScore
	if err := json.Unmarshal(doc, &score); err != nil {
		return nil, &ScoringError{Cause: err}
	}
	return &score, nil
}

func (s *Scorer) buildScoringPrompt(resumeText, jobDescription string, candidate *types.CandidateProfile) string {
	details := educationDetails(candidate.Education)
	best, found := highestGPA(candidate.Education)

	skills := "Not specified"
	if len(candidate.Skills) > 0 {
		skills = strings.Join(candidate.Skills, ", ")
	}

	education := "Not specified"
	if len(details) > 0 {
		education = strings.Join(details, ", ")
	}

	totalExperience := "Not specified"
	if candidate.TotalExperienceYears != nil {
		totalExperience = strconv.FormatFloat(*candidate.TotalExperienceYears, 'f', -1, 64)
	}

	template := prompts.MustGet("screening.json", "score-candidate")
	return prompts.Format(template, map[string]string{
		"JobDescription":     jobDescription,
		"Name":               candidate.Name,
		"Skills":             skills,
		"TotalExperience":    totalExperience,
		"Education":          education,
		"GPACategory":        gpaCategory(best, found),
		"ResumeText":         resumeText,
		"ShortlistThreshold": strconv.FormatFloat(s.rule.ShortlistAt, 'f', 1, 64),
	})
}

// educationDetails renders one summary line per education entry for the
// scoring prompt.
func educationDetails(entries []types.Education) []string {
	var details []string
	for _, e := range entries {
		detail := fmt.Sprintf("%s from %s", e.Degree, e.Institution)
		if e.Year != "" {
			detail += fmt.Sprintf(" (%s)", e.Year)
		}
		if e.GPA != "" {
			detail += fmt.Sprintf(" [GPA: %s]", e.GPA)
		}
		details = append(details, detail)
	}
	return details
}

// highestGPA returns the best GPA across education entries, normalized to
// a 10-point scale. The portion before a "/" scale suffix is parsed as a
// number; values at or below 4.0 are assumed to be on a 4-point scale and
// rescaled. Entries whose prefix does not parse are skipped.
func highestGPA(entries []types.Education) (float64, bool) {
	var best float64
	found := false
	for _, e := range entries {
		if e.GPA == "" {
			continue
		}
		prefix := strings.TrimSpace(strings.SplitN(e.GPA, "/", 2)[0])
		value, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			continue
		}
		if value <= 4.0 {
			value = value / 4.0 * 10
		}
		if !found || value > best {
			best = value
			found = true
		}
	}
	return best, found
}

// gpaCategory maps a normalized GPA to the qualitative bucket embedded in
// the scoring prompt.
func gpaCategory(gpa float64, found bool) string {
	switch {
	case !found:
		return "Not specified"
	case gpa >= 9.0:
		return "Best (9.0+)"
	case gpa >= 8.0:
		return "Good (8.0-9.0)"
	case gpa >= 7.0:
		return "Average (7.0-8.0)"
	case gpa >= 6.0:
		return "Below Average (6.0-7.0)"
	default:
		return "Poor (<6.0)"
	}
}
