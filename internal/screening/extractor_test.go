package screening

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/llm"
)

// stubClient is a canned-reply llm.Client for pipeline tests. Replies are
// consumed in order; the last one repeats.
type stubClient struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (c *stubClient) Generate(_ context.Context, prompt string, _ llm.GenerateOptions) (string, error) {
	c.prompts = append(c.prompts, prompt)
	idx := c.calls
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	if idx >= len(c.replies) {
		idx = len(c.replies) - 1
	}
	return c.replies[idx], nil
}

func (c *stubClient) Close() error { return nil }

const validProfileReply = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"phone": "+1-555-0100",
	"location": "Boston, MA",
	"skills": ["Go", "PostgreSQL", "Docker"],
	"experience": [
		{
			"role": "Backend Engineer",
			"company": "Acme Corp",
			"duration": "2020 - Present",
			"years": 4,
			"responsibilities": ["Built APIs", "Ran migrations"]
		}
	],
	"education": [
		{
			"degree": "BS Computer Science",
			"institution": "MIT",
			"year": "2020",
			"gpa": "3.8/4.0"
		}
	],
	"total_experience_years": 4,
	"certifications": ["CKA"],
	"summary": "Backend engineer focused on data-heavy services."
}`

func TestExtractor_Extract(t *testing.T) {
	client := &stubClient{replies: []string{validProfileReply}}
	ex := NewExtractor(client, llm.GenerateOptions{})

	profile, err := ex.Extract(context.Background(), "resume text")
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "jane@example.com", profile.Email)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, profile.Skills)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Backend Engineer", profile.Experience[0].Role)
	require.NotNil(t, profile.Experience[0].Years)
	assert.InDelta(t, 4, *profile.Experience[0].Years, 1e-9)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "3.8/4.0", profile.Education[0].GPA)
	require.NotNil(t, profile.TotalExperienceYears)
	assert.InDelta(t, 4, *profile.TotalExperienceYears, 1e-9)
}

func TestExtractor_Extract_FencedReply(t *testing.T) {
	client := &stubClient{replies: []string{"```json\n" + validProfileReply + "\n```"}}
	ex := NewExtractor(client, llm.GenerateOptions{})

	profile, err := ex.Extract(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestExtractor_Extract_NullFieldsTolerated(t *testing.T) {
	client := &stubClient{replies: []string{`{
		"name": null,
		"email": null,
		"skills": [],
		"experience": [],
		"education": [],
		"total_experience_years": null
	}`}}
	ex := NewExtractor(client, llm.GenerateOptions{})

	profile, err := ex.Extract(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Empty(t, profile.Name)
	assert.Nil(t, profile.TotalExperienceYears)
}

func TestExtractor_Extract_UnparseableReply(t *testing.T) {
	client := &stubClient{replies: []string{"I could not process this resume."}}
	ex := NewExtractor(client, llm.GenerateOptions{})

	_, err := ex.Extract(context.Background(), "resume text")
	require.Error(t, err)

	var parseErr *ResponseParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestExtractor_Extract_WrongShapeRejected(t *testing.T) {
	// experience entries must carry role and company
	client := &stubClient{replies: []string{`{
		"experience": [{"duration": "2020 - 2022"}]
	}`}}
	ex := NewExtractor(client, llm.GenerateOptions{})

	_, err := ex.Extract(context.Background(), "resume text")
	require.Error(t, err)

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.NotEmpty(t, shapeErr.Field)
}

func TestExtractor_Extract_ProviderFailure(t *testing.T) {
	cause := errors.New("connection refused")
	client := &stubClient{err: cause}
	ex := NewExtractor(client, llm.GenerateOptions{})

	_, err := ex.Extract(context.Background(), "resume text")
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.ErrorIs(t, err, cause)
}
