package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultAPIBaseURL = "http://localhost:8000"
	defaultDBPath     = "agentchat.db"
	defaultTimeout    = 30 * time.Second
)

// Config carries the process-wide settings, read from the environment after
// godotenv has loaded .env.
type Config struct {
	APIBaseURL     string
	UploadBaseURL  string
	DBPath         string
	RequestTimeout time.Duration
	ChatLogging    bool
}

// Load builds a Config from environment variables, falling back to defaults.
func Load() *Config {
	cfg := &Config{
		APIBaseURL:     getenv("AGENTCHAT_API_URL", defaultAPIBaseURL),
		DBPath:         getenv("AGENTCHAT_DB_PATH", defaultDBPath),
		RequestTimeout: defaultTimeout,
		ChatLogging:    true,
	}
	cfg.UploadBaseURL = getenv("AGENTCHAT_UPLOAD_URL", cfg.APIBaseURL)

	if raw := os.Getenv("AGENTCHAT_TIMEOUT"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if raw := os.Getenv("AGENTCHAT_CHAT_LOGGING"); raw != "" {
		if enabled, err := strconv.ParseBool(raw); err == nil {
			cfg.ChatLogging = enabled
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
