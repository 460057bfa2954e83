// Package server provides the HTTP REST API for the resume screener.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/screening"
)

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid username or password"
}

// ErrCandidateNotFound indicates the candidate does not exist
type ErrCandidateNotFound struct {
	ID int64
}

func (e *ErrCandidateNotFound) Error() string {
	return "candidate not found"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// LLM failures map to 502 because the fault lives upstream of this
// service, not in the client's request.
func HTTPStatus(err error) int {
	var (
		validation  *screening.ValidationError
		parse       *screening.ResponseParseError
		shape       *screening.ShapeError
		extraction  *screening.ExtractionError
		scoring     *screening.ScoringError
		provider    *llm.ProviderError
		pdf         *ingestion.ExtractError
		credentials *ErrInvalidCredentials
		notFound    *ErrCandidateNotFound
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &pdf):
		return http.StatusBadRequest
	case errors.As(err, &credentials):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &parse), errors.As(err, &shape),
		errors.As(err, &extraction), errors.As(err, &scoring),
		errors.As(err, &provider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
