package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/types"
)

// Store is the persistence surface the handlers depend on.
type Store interface {
	SaveScreeningResult(ctx context.Context, result *types.ScreeningResult, resumeText string) (int64, error)
	GetAllCandidates(ctx context.Context, skip, limit int) ([]db.Candidate, error)
	GetCandidateByID(ctx context.Context, id int64) (*db.Candidate, error)
	SearchCandidatesBySkill(ctx context.Context, skill string) ([]db.Candidate, error)
	GetScreeningRecords(ctx context.Context, filters db.ScreeningFilters) ([]db.ScreeningRecord, error)
	GetCandidateScreeningHistory(ctx context.Context, candidateID int64) ([]db.ScreeningRecord, error)
	GetShortlistedCandidates(ctx context.Context, limit int) ([]db.ShortlistedCandidate, error)
	GetDatabaseStats(ctx context.Context) (*db.Stats, error)
	DeleteCandidate(ctx context.Context, id int64) (*db.DeletionSummary, error)
}

// Screener runs the full extract-and-score pipeline on one resume.
type Screener interface {
	Screen(ctx context.Context, resumeText, jobDescription, filename string) (*types.ScreeningResult, error)
}

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	store         Store
	screener      Screener
	textExtractor TextExtractor
	sessions      *SessionService

	adminUsername     string
	adminPasswordHash []byte
	maxUploadBytes    int64
	corsOrigins       []string
}

// Config holds server configuration
type Config struct {
	Port           int
	Store          Store
	Screener       Screener
	TextExtractor  TextExtractor
	Sessions       *SessionService
	AdminUsername  string
	AdminPassword  string
	MaxUploadBytes int64
	CORSOrigins    []string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Screener == nil {
		return nil, fmt.Errorf("screener is required")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session service is required")
	}
	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin password is required")
	}

	// Hash at startup so login compares against a hash, never plaintext.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}

	s := &Server{
		store:             cfg.Store,
		screener:          cfg.Screener,
		textExtractor:     cfg.TextExtractor,
		sessions:          cfg.Sessions,
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: passwordHash,
		maxUploadBytes:    cfg.MaxUploadBytes,
		corsOrigins:       cfg.CORSOrigins,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication endpoints
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/check", s.handleAuthCheck)

	// Screening endpoint
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)

	// Candidate endpoints
	mux.HandleFunc("GET /api/candidates", s.requireAuth(s.handleListCandidates))
	mux.HandleFunc("GET /api/candidates/search", s.handleSearchCandidates)
	mux.HandleFunc("GET /api/candidates/{id}", s.handleGetCandidate)
	mux.HandleFunc("GET /api/candidates/{id}/screenings", s.handleCandidateScreenings)
	mux.HandleFunc("DELETE /api/candidates/{id}", s.requireAuth(s.handleDeleteCandidate))

	// Screening record endpoints
	mux.HandleFunc("GET /api/screenings", s.requireAuth(s.handleListScreenings))
	mux.HandleFunc("GET /api/shortlisted", s.handleShortlisted)
	mux.HandleFunc("GET /api/stats", s.requireAuth(s.handleStats))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withRequestID(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for LLM-backed analyze calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers for the configured origins
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// withRequestID tags every request with an ID for log correlation
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// requireAuth rejects requests without a valid session cookie
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.sessions.SessionFromRequest(r) == nil {
			s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
