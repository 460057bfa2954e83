package screening

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/types"
)

func TestHighestGPA(t *testing.T) {
	tests := []struct {
		name      string
		entries   []types.Education
		expected  float64
		wantFound bool
	}{
		{
			name:      "Four point scale is rescaled",
			entries:   []types.Education{{Degree: "MS", Institution: "Stanford", GPA: "3.6/4.0"}},
			expected:  9.0,
			wantFound: true,
		},
		{
			name:      "Ten point scale kept as is",
			entries:   []types.Education{{Degree: "BTech", Institution: "IIT", GPA: "8.5/10"}},
			expected:  8.5,
			wantFound: true,
		},
		{
			name:      "Bare value at or below four is treated as four point",
			entries:   []types.Education{{Degree: "BS", Institution: "UT", GPA: "4.0"}},
			expected:  10.0,
			wantFound: true,
		},
		{
			name: "Best across multiple entries",
			entries: []types.Education{
				{Degree: "BS", Institution: "A", GPA: "7.2/10"},
				{Degree: "MS", Institution: "B", GPA: "8.9/10"},
			},
			expected:  8.9,
			wantFound: true,
		},
		{
			name:      "Malformed GPA is skipped",
			entries:   []types.Education{{Degree: "BS", Institution: "A", GPA: "N/A"}},
			wantFound: false,
		},
		{
			name: "Malformed entry does not hide a valid one",
			entries: []types.Education{
				{Degree: "BS", Institution: "A", GPA: "N/A"},
				{Degree: "MS", Institution: "B", GPA: "8.0/10"},
			},
			expected:  8.0,
			wantFound: true,
		},
		{
			name:      "No GPA anywhere",
			entries:   []types.Education{{Degree: "BS", Institution: "A"}},
			wantFound: false,
		},
		{
			name:      "No education at all",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := highestGPA(tt.entries)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.InDelta(t, tt.expected, got, 1e-9)
			}
		})
	}
}

func TestGPACategory(t *testing.T) {
	tests := []struct {
		name     string
		gpa      float64
		found    bool
		expected string
	}{
		{"Best tier", 9.2, true, "Best (9.0+)"},
		{"Boundary of best", 9.0, true, "Best (9.0+)"},
		{"Good tier", 8.5, true, "Good (8.0-9.0)"},
		{"Average tier", 7.3, true, "Average (7.0-8.0)"},
		{"Below average tier", 6.1, true, "Below Average (6.0-7.0)"},
		{"Poor tier", 4.5, true, "Poor (<6.0)"},
		{"Not found", 0, false, "Not specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gpaCategory(tt.gpa, tt.found))
		})
	}
}

func TestDecisionRule_Action(t *testing.T) {
	rule := DefaultDecisionRule
	assert.Equal(t, types.ActionShortlist, rule.Action(7.0))
	assert.Equal(t, types.ActionShortlist, rule.Action(9.8))
	assert.Equal(t, types.ActionReject, rule.Action(6.9))

	strict := DecisionRule{ShortlistAt: 8.5}
	assert.Equal(t, types.ActionReject, strict.Action(8.0))
	assert.Equal(t, types.ActionShortlist, strict.Action(8.5))
}

func TestScorer_Score(t *testing.T) {
	profile := &types.CandidateProfile{
		Name:   "Jane Doe",
		Skills: []string{"Go", "PostgreSQL"},
		Education: []types.Education{
			{Degree: "BS Computer Science", Institution: "MIT", Year: "2020", GPA: "3.6/4.0"},
		},
	}

	client := &stubClient{replies: []string{`{
		"score": 8.5,
		"justification": "Strong match on core skills.",
		"strengths": ["Go experience"],
		"concerns": [],
		"recommended_action": "Shortlist"
	}`}}

	scorer := NewScorer(client, llm.GenerateOptions{}, DefaultDecisionRule)
	score, err := scorer.Score(context.Background(), "resume text", "job description", profile)
	require.NoError(t, err)
	require.NotNil(t, score)

	assert.InDelta(t, 8.5, score.Score, 1e-9)
	assert.Equal(t, types.ActionShortlist, score.RecommendedAction)
	assert.Equal(t, "Strong match on core skills.", score.Justification)
}

func TestScorer_Score_PromptCarriesCandidateContext(t *testing.T) {
	profile := &types.CandidateProfile{
		Name:   "Jane Doe",
		Skills: []string{"Go", "PostgreSQL"},
		Education: []types.Education{
			{Degree: "BS Computer Science", Institution: "MIT", Year: "2020", GPA: "3.6/4.0"},
		},
	}

	client := &stubClient{replies: []string{`{
		"score": 7.0,
		"justification": "ok",
		"strengths": [],
		"concerns": [],
		"recommended_action": "Shortlist"
	}`}}

	scorer := NewScorer(client, llm.GenerateOptions{}, DecisionRule{ShortlistAt: 7.5})
	_, err := scorer.Score(context.Background(), "the resume body", "the job posting", profile)
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)

	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "Go, PostgreSQL")
	assert.Contains(t, prompt, "BS Computer Science from MIT (2020) [GPA: 3.6/4.0]")
	assert.Contains(t, prompt, "Best (9.0+)")
	assert.Contains(t, prompt, "7.5")
	assert.Contains(t, prompt, "the job posting")
	assert.Contains(t, prompt, "the resume body")
}

func TestScorer_Score_MissingFieldsRejected(t *testing.T) {
	client := &stubClient{replies: []string{`{"score": 8.0}`}}
	scorer := NewScorer(client, llm.GenerateOptions{}, DefaultDecisionRule)

	_, err := scorer.Score(context.Background(), "resume", "job", &types.CandidateProfile{})
	require.Error(t, err)

	var shapeErr *ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestScorer_Score_OutOfRangeScoreRejected(t *testing.T) {
	tests := []struct {
		name  string
		score string
	}{
		{"Above range", "11"},
		{"Below range", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{replies: []string{`{
				"score": ` + tt.score + `,
				"justification": "x",
				"strengths": [],
				"concerns": [],
				"recommended_action": "Reject"
			}`}}
			scorer := NewScorer(client, llm.GenerateOptions{}, DefaultDecisionRule)

			_, err := scorer.Score(context.Background(), "resume", "job", &types.CandidateProfile{})
			require.Error(t, err)

			var shapeErr *ShapeError
			assert.ErrorAs(t, err, &shapeErr)
		})
	}
}

func TestEducationDetails(t *testing.T) {
	entries := []types.Education{
		{Degree: "MS", Institution: "Stanford", Year: "2018", GPA: "3.9"},
		{Degree: "BS", Institution: "Berkeley"},
	}
	details := educationDetails(entries)
	require.Len(t, details, 2)
	assert.Equal(t, "MS from Stanford (2018) [GPA: 3.9]", details[0])
	assert.Equal(t, "BS from Berkeley", details[1])
	assert.False(t, strings.Contains(details[1], "GPA"))
}
