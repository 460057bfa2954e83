package screening

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/types"
)

// Minimum trimmed input lengths in characters, checked before any model
// call is made:
// a model call is never spent on an input that cannot possibly be valid.
const (
	minResumeChars         = 50
	minJobDescriptionChars = 10
)

// Pipeline runs the two-stage screening flow: profile extraction followed
// by match scoring. Stages are strictly sequential; a failure in either
// stage propagates unchanged and no partial result is ever returned.
type Pipeline struct {
	extractor *Extractor
	scorer    *Scorer
}

// NewPipeline wires an extractor and a scorer over the same client with
// stage-specific generation options.
func NewPipeline(client llm.Client, extraction, scoring llm.GenerateOptions, rule DecisionRule) *Pipeline {
	return &Pipeline{
		extractor: NewExtractor(client, extraction),
		scorer:    NewScorer(client, scoring, rule),
	}
}

// Screen validates the inputs, extracts the candidate profile, scores it
// against the job description and assembles the screening result,
// stamping it at assembly time.
func (p *Pipeline) Screen(ctx context.Context, resumeText, jobDescription, filename string) (*types.ScreeningResult, error) {
	if utf8.RuneCountInString(strings.TrimSpace(resumeText)) < minResumeChars {
		return nil, &ValidationError{
			Field:   "resume_text",
			Message: fmt.Sprintf("must be at least %d characters", minResumeChars),
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(jobDescription)) < minJobDescriptionChars {
		return nil, &ValidationError{
			Field:   "job_description",
			Message: fmt.Sprintf("must be at least %d characters", minJobDescriptionChars),
		}
	}

	candidate, err := p.extractor.Extract(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	score, err := p.scorer.Score(ctx, resumeText, jobDescription, candidate)
	if err != nil {
		return nil, err
	}

	return &types.ScreeningResult{
		Candidate:      *candidate,
		MatchScore:     *score,
		JobDescription: jobDescription,
		ScreenedAt:     time.Now().UTC(),
		ResumeFilename: filename,
	}, nil
}
