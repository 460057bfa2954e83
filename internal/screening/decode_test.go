package screening

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReply(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
		expected  string
	}{
		{
			name:     "Plain JSON",
			input:    `{"name": "Jane Doe"}`,
			expected: `{"name": "Jane Doe"}`,
		},
		{
			name:     "JSON wrapped in json fence",
			input:    "```json\n{\"name\": \"Jane Doe\"}\n```",
			expected: "\n{\"name\": \"Jane Doe\"}\n",
		},
		{
			name:     "JSON wrapped in bare fence",
			input:    "```\n{\"name\": \"Jane Doe\"}\n```",
			expected: "\n{\"name\": \"Jane Doe\"}\n",
		},
		{
			name:     "Leading and trailing whitespace",
			input:    "  \n```json\n{\"score\": 7.5}\n```\n  ",
			expected: "\n{\"score\": 7.5}\n",
		},
		{
			name:      "Not JSON at all",
			input:     "I am sorry, I cannot help with that.",
			wantError: true,
		},
		{
			name:      "Prose before the fence",
			input:     "Here is the result:\n```json\n{\"score\": 7}\n```",
			wantError: true,
		},
		{
			name:      "Truncated JSON",
			input:     `{"name": "Jane`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := decodeReply(tt.input)
			if tt.wantError {
				require.Error(t, err)
				var parseErr *ResponseParseError
				require.ErrorAs(t, err, &parseErr)
				assert.NotEmpty(t, parseErr.Snippet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(doc))
		})
	}
}

func TestDecodeReply_SnippetIsTruncated(t *testing.T) {
	long := "not json " + strings.Repeat("x", 2000)
	_, err := decodeReply(long)
	require.Error(t, err)

	var parseErr *ResponseParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Len(t, parseErr.Snippet, snippetLimit)
}

func TestDecodeReply_SnippetDoesNotSplitMultiByteRunes(t *testing.T) {
	long := "no es json " + strings.Repeat("é", 2000)
	_, err := decodeReply(long)
	require.Error(t, err)

	var parseErr *ResponseParseError
	require.ErrorAs(t, err, &parseErr)
	assert.True(t, utf8.ValidString(parseErr.Snippet))
	assert.Equal(t, snippetLimit, utf8.RuneCountInString(parseErr.Snippet))
}
