// Package screening implements the resume-screening pipeline: LLM-based
// profile extraction, match scoring against a job description, and the
// orchestration that combines the two into a screening result.
package screening

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/prompts"
	"github.com/jonathan/resume-screener/internal/types"
)

// Extractor turns raw resume text into a structured candidate profile
// using the model. Every call re-queries the model; nothing is cached.
type Extractor struct {
	client llm.Client
	opts   llm.GenerateOptions
}

// NewExtractor creates an extractor with extraction-specific generation
// options.
func NewExtractor(client llm.Client, opts llm.GenerateOptions) *Extractor {
	return &Extractor{client: client, opts: opts}
}

// Extract builds the extraction prompt, invokes the model once and parses
// the reply into a CandidateProfile. Parse and shape failures surface as
// ResponseParseError / ShapeError; provider failures are wrapped in
// ExtractionError.
func (e *Extractor) Extract(ctx context.Context, resumeText string) (*types.CandidateProfile, error) {
	prompt := buildExtractionPrompt(resumeText)

	reply, err := e.client.Generate(ctx, prompt, e.opts)
	if err != nil {
		return nil, &ExtractionError{Cause: err}
	}

	doc, err := decodeReply(reply)
	if err != nil {
		return nil, err
	}

	if err := validateShape(candidateProfileSchema, doc); err != nil {
		return nil, err
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, &ExtractionError{Cause: err}
	}
	return &profile, nil
}

func buildExtractionPrompt(resumeText string) string {
	template := prompts.MustGet("screening.json", "extract-candidate-profile")
	return prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})
}
