package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:9000/api/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.FillDescr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("AUDIT_DB_PATH", "")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "", cfg.AuditDBPath)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing base url", map[string]string{"API_BASE_URL": ""}},
		{"bad timeout", map[string]string{"API_BASE_URL": "http://api", "API_TIMEOUT": "soon"}},
		{"bad upload size", map[string]string{"API_BASE_URL": "http://api", "MAX_UPLOAD_BYTES": "-1"}},
		{"bad log level", map[string]string{"API_BASE_URL": "http://api", "LOG_LEVEL": "loud"}},
		{"descriptions without key", map[string]string{"API_BASE_URL": "http://api", "IMPORT_FILL_DESCRIPTIONS": "true", "GEMINI_API_KEY": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
