package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config application configuration
type Config struct {
	APIBaseURL     string
	APITimeout     time.Duration
	HTTPAddr       string
	TelegramToken  string
	AuditDBPath    string
	GeminiAPIKey   string
	FillDescr      bool
	MaxUploadBytes int64
	SessionTTL     time.Duration
	LogLevel       string
}

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := &Config{
		APIBaseURL:     strings.TrimSuffix(os.Getenv("API_BASE_URL"), "/"),
		APITimeout:     15 * time.Second,
		HTTPAddr:       ":8080",
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		AuditDBPath:    "data/audit.db",
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		MaxUploadBytes: 5 * 1024 * 1024,
		SessionTTL:     24 * time.Hour,
		LogLevel:       strings.ToLower(os.Getenv("LOG_LEVEL")),
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		config.HTTPAddr = addr
	}

	// An explicitly empty AUDIT_DB_PATH selects the in-memory audit store
	if dbPath, ok := os.LookupEnv("AUDIT_DB_PATH"); ok {
		config.AuditDBPath = dbPath
	}

	if raw := os.Getenv("API_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("API_TIMEOUT is not a valid duration: %v", err)
		}
		config.APITimeout = parsed
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL is not a valid duration: %v", err)
		}
		config.SessionTTL = parsed
	}

	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer, got %q", raw)
		}
		config.MaxUploadBytes = parsed
	}

	if raw := os.Getenv("IMPORT_FILL_DESCRIPTIONS"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("IMPORT_FILL_DESCRIPTIONS is not a boolean: %v", err)
		}
		config.FillDescr = parsed
	}

	switch config.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", config.LogLevel)
	}

	// Validation
	if config.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is empty")
	}
	if config.FillDescr && config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("IMPORT_FILL_DESCRIPTIONS requires GEMINI_API_KEY")
	}

	return config, nil
}
