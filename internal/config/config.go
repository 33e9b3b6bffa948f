// Package config provides environment-driven configuration for the kinship server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all application configuration values.
type Config struct {
	Port        string
	ListenHost  string
	MetricsPort string
	CORSOrigins []string

	LogLevel  string
	LogFormat string

	StorageBackend string
	SQLitePath     string
	DatabaseURL    Secret

	// EncryptionKey is an optional 64-char hex AES-256 key. When set, slot
	// contents are sealed at rest.
	EncryptionKey Secret

	// APIKey is the bearer token required on /api/v1. Empty disables auth,
	// which is only allowed on a loopback listener.
	APIKey Secret

	RateLimitRPS   int
	RateLimitBurst int
	MaxBodyBytes   int64
	EventQueueSize int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           envOrDefault("PORT", "3040"),
		ListenHost:     envOrDefault("LISTEN_HOST", "127.0.0.1"),
		MetricsPort:    envOrDefault("METRICS_PORT", "9092"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		StorageBackend: envOrDefault("STORAGE_BACKEND", BackendSQLite),
		SQLitePath:     envOrDefault("SQLITE_PATH", "kinship.db"),
		DatabaseURL:    Secret(envOrDefault("DATABASE_URL", "")),
		EncryptionKey:  Secret(envOrDefault("ENCRYPTION_KEY", "")),
		APIKey:         Secret(envOrDefault("API_KEY", "")),
	}

	var err error

	if cfg.RateLimitRPS, err = envInt("RATE_LIMIT_RPS", 20, 1, 10000); err != nil {
		return nil, err
	}

	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", 40, 1, 10000); err != nil {
		return nil, err
	}

	if cfg.EventQueueSize, err = envInt("EVENT_QUEUE_SIZE", 1000, 1, 100000); err != nil {
		return nil, err
	}

	maxBodyMB, err := envInt("MAX_BODY_MB", 10, 1, 512)
	if err != nil {
		return nil, err
	}
	cfg.MaxBodyBytes = int64(maxBodyMB) << 20

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the API listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the metrics listen address in host:port format.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback, lo, hi int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", key, lo, hi)
	}

	return v, nil
}
