// Package config provides configuration loading and validation for the
// resume screener. All settings come from environment variables; main
// loads a .env file first when one exists.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings holds the full application configuration.
type Settings struct {
	Port        int
	DatabaseURL string

	// LLM
	GeminiAPIKey          string
	LLMModel              string
	ExtractionTemperature float32
	ScoringTemperature    float32
	ExtractionMaxTokens   int32
	ScoringMaxTokens      int32
	LLMCallTimeout        time.Duration

	// Uploads
	MaxUploadMB int64

	// Auth
	AdminUsername string
	AdminPassword string
	SessionSecret string
	SessionTTL    time.Duration

	CORSOrigins []string
}

// Load reads settings from the environment and validates them.
func Load() (*Settings, error) {
	s := &Settings{
		Port:                  envInt("PORT", 8000),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		LLMModel:              envString("LLM_MODEL", "gemini-2.0-flash"),
		ExtractionTemperature: float32(envFloat("LLM_EXTRACTION_TEMPERATURE", 0.3)),
		ScoringTemperature:    float32(envFloat("LLM_SCORING_TEMPERATURE", 0.5)),
		ExtractionMaxTokens:   int32(envInt("LLM_MAX_TOKENS_EXTRACTION", 1500)),
		ScoringMaxTokens:      int32(envInt("LLM_MAX_TOKENS_SCORING", 1000)),
		LLMCallTimeout:        time.Duration(envInt("LLM_CALL_TIMEOUT_SECONDS", 60)) * time.Second,
		MaxUploadMB:           int64(envInt("MAX_FILE_SIZE_MB", 10)),
		AdminUsername:         envString("ADMIN_USERNAME", "admin"),
		AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:         os.Getenv("SESSION_SECRET_KEY"),
		SessionTTL:            time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		CORSOrigins:           splitOrigins(envString("CORS_ORIGINS", "*")),
	}

	if err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// normalize validates the value ranges. Required credentials are checked
// separately by the Require methods, so commands only demand the settings
// they actually consume.
func (s *Settings) normalize() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", s.Port)
	}
	if s.ExtractionTemperature < 0 || s.ExtractionTemperature > 2 {
		return fmt.Errorf("LLM_EXTRACTION_TEMPERATURE out of range: %g", s.ExtractionTemperature)
	}
	if s.ScoringTemperature < 0 || s.ScoringTemperature > 2 {
		return fmt.Errorf("LLM_SCORING_TEMPERATURE out of range: %g", s.ScoringTemperature)
	}
	if s.ExtractionMaxTokens < 1 || s.ScoringMaxTokens < 1 {
		return fmt.Errorf("LLM max token limits must be positive")
	}
	if s.MaxUploadMB < 1 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be at least 1, got: %d", s.MaxUploadMB)
	}
	if s.SessionTTL < time.Hour {
		return fmt.Errorf("SESSION_TTL_HOURS must be at least 1 hour")
	}
	return nil
}

// RequireLLM reports an error when the LLM credentials are missing.
func (s *Settings) RequireLLM() error {
	if s.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	return nil
}

// RequirePersistence reports an error when the database settings are missing.
func (s *Settings) RequirePersistence() error {
	if s.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	return nil
}

// RequireServer reports an error when the HTTP auth settings are missing.
func (s *Settings) RequireServer() error {
	if s.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required but not set")
	}
	if s.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET_KEY is required but not set")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
