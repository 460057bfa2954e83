package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/screener_test")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("SESSION_SECRET_KEY", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, s.Port)
	assert.Equal(t, "gemini-2.0-flash", s.LLMModel)
	assert.InDelta(t, 0.3, float64(s.ExtractionTemperature), 1e-6)
	assert.InDelta(t, 0.5, float64(s.ScoringTemperature), 1e-6)
	assert.Equal(t, int32(1500), s.ExtractionMaxTokens)
	assert.Equal(t, int32(1000), s.ScoringMaxTokens)
	assert.Equal(t, 60*time.Second, s.LLMCallTimeout)
	assert.Equal(t, int64(10), s.MaxUploadMB)
	assert.Equal(t, "admin", s.AdminUsername)
	assert.Equal(t, 24*time.Hour, s.SessionTTL)
	assert.Equal(t, []string{"*"}, s.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9001")
	t.Setenv("LLM_MODEL", "gemini-2.5-pro")
	t.Setenv("LLM_EXTRACTION_TEMPERATURE", "0.1")
	t.Setenv("LLM_CALL_TIMEOUT_SECONDS", "120")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://app.example.com")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, s.Port)
	assert.Equal(t, "gemini-2.5-pro", s.LLMModel)
	assert.InDelta(t, 0.1, float64(s.ExtractionTemperature), 1e-6)
	assert.Equal(t, 120*time.Second, s.LLMCallTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, s.CORSOrigins)
}

func TestLoad_SucceedsWithoutCredentials(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("SESSION_SECRET_KEY", "")

	_, err := Load()
	require.NoError(t, err)
}

func TestRequire_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		require func(*Settings) error
	}{
		{"Missing database URL", "DATABASE_URL", (*Settings).RequirePersistence},
		{"Missing API key", "GEMINI_API_KEY", (*Settings).RequireLLM},
		{"Missing admin password", "ADMIN_PASSWORD", (*Settings).RequireServer},
		{"Missing session secret", "SESSION_SECRET_KEY", (*Settings).RequireServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			s, err := Load()
			require.NoError(t, err)
			err = tt.require(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.unset)
		})
	}
}

func TestRequire_AllSet(t *testing.T) {
	setRequiredEnv(t)

	s, err := Load()
	require.NoError(t, err)
	assert.NoError(t, s.RequirePersistence())
	assert.NoError(t, s.RequireLLM())
	assert.NoError(t, s.RequireServer())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Port out of range", "PORT", "70000"},
		{"Temperature out of range", "LLM_SCORING_TEMPERATURE", "3.5"},
		{"Zero upload limit", "MAX_FILE_SIZE_MB", "0"},
		{"Zero session TTL", "SESSION_TTL_HOURS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedNumberFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, s.Port)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t, []string{"a", "b"}, splitOrigins("a, b,"))
	assert.Nil(t, splitOrigins(""))
}
