package screening

import "fmt"

// ValidationError reports an input that cannot possibly produce a valid
// screening. It is returned before any model call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// ResponseParseError reports a model reply that is not decodable JSON,
// even after fence stripping. Snippet carries the first 500 characters of
// the offending text for diagnostics.
type ResponseParseError struct {
	Cause   error
	Snippet string
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("failed to parse model reply as JSON: %v", e.Cause)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Cause
}

// ShapeError reports decoded JSON that lacks required fields or has wrong
// types for the target schema.
type ShapeError struct {
	Field   string
	Message string
}

func (e *ShapeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("shape error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("shape error: %s", e.Message)
}

// ExtractionError wraps a failure in the candidate-extraction stage that
// is not a parse or shape problem (typically a provider failure).
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("candidate extraction failed: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ScoringError wraps a failure in the match-scoring stage that is not a
// parse or shape problem.
type ScoringError struct {
	Cause error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("match scoring failed: %v", e.Cause)
}

func (e *ScoringError) Unwrap() error {
	return e.Cause
}
