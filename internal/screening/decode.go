package screening

import (
	"encoding/json"
	"strings"
)

// snippetLimit is how much of an unparseable reply is kept for diagnostics.
const snippetLimit = 500

// decodeReply recovers the JSON payload from a raw model reply. Models
// often wrap JSON in a markdown code fence even when told not to: if the
// trimmed reply starts with a triple-backtick fence, the first enclosed
// segment is taken, and a leading "json" language tag is removed as a
// fixed 4-character strip. No further heuristics are applied; a reply
// that mixes prose and JSON outside a single well-formed fence fails.
func decodeReply(raw string) ([]byte, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		parts := strings.Split(text, "```")
		if len(parts) > 1 {
			text = parts[1]
		}
		if strings.HasPrefix(text, "json") {
			text = text[4:]
		}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &ResponseParseError{Cause: err, Snippet: truncate(text, snippetLimit)}
	}
	return []byte(text), nil
}

// truncate limits s to n characters without splitting a multi-byte rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
