package screening

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/types"
)

const validScoreReply = `{
	"score": 8.5,
	"justification": "Strong overlap with the role's core stack.",
	"strengths": ["Go experience", "Database background"],
	"concerns": ["No Kubernetes exposure"],
	"recommended_action": "Shortlist"
}`

var longResume = strings.Repeat("Experienced backend engineer. ", 10)

func newTestPipeline(client llm.Client) *Pipeline {
	return NewPipeline(client, llm.GenerateOptions{}, llm.GenerateOptions{}, DefaultDecisionRule)
}

func TestPipeline_Screen(t *testing.T) {
	client := &stubClient{replies: []string{validProfileReply, validScoreReply}}
	p := newTestPipeline(client)

	before := time.Now().UTC()
	result, err := p.Screen(context.Background(), longResume, "Backend engineer, Go and PostgreSQL.", "jane_doe.pdf")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "Jane Doe", result.Candidate.Name)
	assert.InDelta(t, 8.5, result.MatchScore.Score, 1e-9)
	assert.Equal(t, types.ActionShortlist, result.MatchScore.RecommendedAction)
	assert.Equal(t, "Backend engineer, Go and PostgreSQL.", result.JobDescription)
	assert.Equal(t, "jane_doe.pdf", result.ResumeFilename)
	assert.False(t, result.ScreenedAt.Before(before))

	// scoring prompt is built from the extracted profile
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], "Jane Doe")
}

func TestPipeline_Screen_ShortResumeRejectedBeforeAnyCall(t *testing.T) {
	client := &stubClient{replies: []string{validProfileReply}}
	p := newTestPipeline(client)

	_, err := p.Screen(context.Background(), "too short", "Backend engineer, Go and PostgreSQL.", "x.pdf")
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "resume_text", validationErr.Field)
	assert.Equal(t, 0, client.calls)
}

func TestPipeline_Screen_ShortJobDescriptionRejectedBeforeAnyCall(t *testing.T) {
	client := &stubClient{replies: []string{validProfileReply}}
	p := newTestPipeline(client)

	_, err := p.Screen(context.Background(), longResume, "short", "x.pdf")
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "job_description", validationErr.Field)
	assert.Equal(t, 0, client.calls)
}

func TestPipeline_Screen_WhitespaceDoesNotCountTowardMinimums(t *testing.T) {
	client := &stubClient{replies: []string{validProfileReply}}
	p := newTestPipeline(client)

	padded := "abc" + strings.Repeat(" ", 100)
	_, err := p.Screen(context.Background(), padded, "Backend engineer, Go and PostgreSQL.", "x.pdf")
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "resume_text", validationErr.Field)
}

func TestPipeline_Screen_MinimumsCountCharactersNotBytes(t *testing.T) {
	client := &stubClient{replies: []string{validProfileReply}}
	p := newTestPipeline(client)

	// 30 two-byte characters: 60 bytes, but still below the 50-character
	// resume minimum.
	short := strings.Repeat("é", 30)
	_, err := p.Screen(context.Background(), short, "Backend engineer, Go and PostgreSQL.", "x.pdf")
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "resume_text", validationErr.Field)
	assert.Equal(t, 0, client.calls)
}

func TestPipeline_Screen_ExtractionFailureStopsScoring(t *testing.T) {
	client := &stubClient{replies: []string{"not json"}}
	p := newTestPipeline(client)

	_, err := p.Screen(context.Background(), longResume, "Backend engineer, Go and PostgreSQL.", "x.pdf")
	require.Error(t, err)

	var parseErr *ResponseParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, client.calls)
}

func TestPipeline_Screen_ScoringFailureReturnsNoPartialResult(t *testing.T) {
	client := &stubClient{replies: []string{validProfileReply, `{"score": 42}`}}
	p := newTestPipeline(client)

	result, err := p.Screen(context.Background(), longResume, "Backend engineer, Go and PostgreSQL.", "x.pdf")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 2, client.calls)
}
