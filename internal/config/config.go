package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
// Note: This is a single-tenant deployment - sessions are opaque caller
// tokens, not authenticated users, so no auth secrets are needed.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Conversation state
	ChatLogPath   string        // Durable session chatlog (whole-file JSON)
	HistoryDBPath string        // Optional sqlite transcript archive ("" disables)
	SessionTTL    time.Duration // Max age before a stored context is evicted

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	CloudWatchMetrics bool   // Feature flag for CloudWatch metrics export
}

const defaultSessionTTLSeconds = 3600

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		ChatLogPath:       getEnv("CHATLOG_PATH", "persistent_chatlog.json"),
		HistoryDBPath:     getEnv("HISTORY_DB_PATH", ""),
		SessionTTL:        time.Duration(getEnvInt("SESSION_TTL_SECONDS", defaultSessionTTLSeconds)) * time.Second,
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		CloudWatchMetrics: getEnv("CLOUDWATCH_METRICS", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
