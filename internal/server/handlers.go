package server

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/types"
)

var validate = validator.New()

// LoginRequest represents the request body for /api/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AnalyzeResponse represents the response for /api/analyze
type AnalyzeResponse struct {
	*types.ScreeningResult
	CandidateID int64 `json:"candidate_id"`
}

// DeleteResponse represents the response for DELETE /api/candidates/{id}
type DeleteResponse struct {
	Message string              `json:"message"`
	Deleted *db.DeletionSummary `json:"deleted"`
}

// handleRoot returns basic service information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.errorResponse(w, http.StatusNotFound, "Not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"service": "resume-screener",
		"status":  "running",
	})
}

// handleHealth returns service health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleLogin validates admin credentials and issues a session cookie
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.adminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		err := &ErrInvalidCredentials{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.sessions.IssueToken(req.Username)
	if err != nil {
		log.Printf("Failed to issue session token: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	s.sessions.SetCookie(w, token)

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message":  "Login successful",
		"username": req.Username,
	})
}

// handleLogout clears the session cookie
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookie(w)
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// handleAuthCheck reports whether the request carries a valid session
func (s *Server) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	claims := s.sessions.SessionFromRequest(r)
	if claims == nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"username":      claims.Username,
	})
}

// handleAnalyze screens an uploaded resume against a job description
// and persists the outcome.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large or malformed: "+err.Error())
		return
	}

	jobDescription := r.FormValue("job_description")

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	resumeText, err := s.textExtractor.ExtractText(data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Could not extract text from PDF: "+err.Error())
		return
	}
	if strings.TrimSpace(resumeText) == "" {
		s.errorResponse(w, http.StatusBadRequest, "No text could be extracted from the PDF")
		return
	}

	result, err := s.screener.Screen(r.Context(), resumeText, jobDescription, header.Filename)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidateID, err := s.store.SaveScreeningResult(r.Context(), result, resumeText)
	if err != nil {
		log.Printf("Failed to save screening result: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save screening result")
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		ScreeningResult: result,
		CandidateID:     candidateID,
	})
}

// handleListCandidates returns a page of candidates
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	candidates, err := s.store.GetAllCandidates(r.Context(), skip, limit)
	if err != nil {
		log.Printf("Failed to list candidates: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list candidates")
		return
	}
	if candidates == nil {
		candidates = []db.Candidate{}
	}
	s.jsonResponse(w, http.StatusOK, candidates)
}

// handleGetCandidate returns one candidate with experiences and education
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	candidate, err := s.store.GetCandidateByID(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get candidate %d: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get candidate")
		return
	}
	if candidate == nil {
		notFound := &ErrCandidateNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleSearchCandidates finds candidates by skill substring
func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	skill := r.URL.Query().Get("skill")
	if skill == "" {
		s.errorResponse(w, http.StatusBadRequest, "skill query parameter is required")
		return
	}

	candidates, err := s.store.SearchCandidatesBySkill(r.Context(), skill)
	if err != nil {
		log.Printf("Failed to search candidates: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to search candidates")
		return
	}
	if candidates == nil {
		candidates = []db.Candidate{}
	}
	s.jsonResponse(w, http.StatusOK, candidates)
}

// handleCandidateScreenings returns one candidate's screening history
func (s *Server) handleCandidateScreenings(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	candidate, err := s.store.GetCandidateByID(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get candidate %d: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get candidate")
		return
	}
	if candidate == nil {
		notFound := &ErrCandidateNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	records, err := s.store.GetCandidateScreeningHistory(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get screening history for %d: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get screening history")
		return
	}
	if records == nil {
		records = []db.ScreeningRecord{}
	}
	s.jsonResponse(w, http.StatusOK, records)
}

// handleListScreenings returns screening records, filtered and paged
func (s *Server) handleListScreenings(w http.ResponseWriter, r *http.Request) {
	filters := db.ScreeningFilters{
		Skip:              queryInt(r, "skip", 0),
		Limit:             queryInt(r, "limit", 100),
		RecommendedAction: r.URL.Query().Get("recommended_action"),
	}
	if raw := r.URL.Query().Get("min_score"); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "min_score must be a number")
			return
		}
		filters.MinScore = &minScore
	}

	records, err := s.store.GetScreeningRecords(r.Context(), filters)
	if err != nil {
		log.Printf("Failed to list screenings: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list screenings")
		return
	}
	if records == nil {
		records = []db.ScreeningRecord{}
	}
	s.jsonResponse(w, http.StatusOK, records)
}

// handleShortlisted returns shortlisted candidates, best score first
func (s *Server) handleShortlisted(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	shortlisted, err := s.store.GetShortlistedCandidates(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to list shortlisted candidates: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list shortlisted candidates")
		return
	}
	if shortlisted == nil {
		shortlisted = []db.ShortlistedCandidate{}
	}
	s.jsonResponse(w, http.StatusOK, shortlisted)
}

// handleStats returns dataset counts
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetDatabaseStats(r.Context())
	if err != nil {
		log.Printf("Failed to read stats: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read stats")
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleDeleteCandidate removes a candidate and their history
func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	summary, err := s.store.DeleteCandidate(r.Context(), id)
	if err != nil {
		log.Printf("Failed to delete candidate %d: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}
	if summary == nil {
		notFound := &ErrCandidateNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, DeleteResponse{
		Message: "Candidate deleted",
		Deleted: summary,
	})
}

// pathID parses the {id} path segment, writing a 400 on failure.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := r.PathValue("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
