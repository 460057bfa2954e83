package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "gemini-2.0-flash", 0)
	require.Error(t, err)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Contains(t, providerErr.Message, "API key")
}

func TestNewGeminiClient_RequiresModel(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "key", "", 0)
	require.Error(t, err)

	var providerErr *ProviderError
	assert.ErrorAs(t, err, &providerErr)
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &ProviderError{Message: "failed to generate content", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")

	bare := &ProviderError{Message: "no candidates in response"}
	assert.NoError(t, bare.Unwrap())
	assert.Contains(t, bare.Error(), "no candidates")
}

func TestExtractTextFromResponse(t *testing.T) {
	tests := []struct {
		name      string
		resp      *genai.GenerateContentResponse
		expected  string
		wantError bool
	}{
		{
			name:      "No candidates",
			resp:      &genai.GenerateContentResponse{},
			wantError: true,
		},
		{
			name: "Candidate without content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
			wantError: true,
		},
		{
			name: "Single text part",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"score": 8}`)}},
				}},
			},
			expected: `{"score": 8}`,
		},
		{
			name: "Multiple text parts joined",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"sco`), genai.Text(`re": 8}`)}},
				}},
			},
			expected: `{"score": 8}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extractTextFromResponse(tt.resp)
			if tt.wantError {
				var providerErr *ProviderError
				require.ErrorAs(t, err, &providerErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}
