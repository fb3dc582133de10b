package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultEnvFile is read by Load when present
const DefaultEnvFile = ".env"

// ErrInvalidConfig is returned when a setting is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds process level settings
type Config struct {
	// Logging
	LogLevel logrus.Level

	// Loader
	Workers      int
	CacheEnabled bool
	CacheSize    int
	CacheTTL     time.Duration

	// Metrics textfile; empty disables writing
	MetricsFile string
}

// Load reads configuration from the environment. Values in envFile are
// applied first without overriding variables that are already set; a
// missing envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		LogLevel:     parseLogLevel(getEnv("I18NLINT_LOG_LEVEL", "warn")),
		Workers:      getEnvInt("I18NLINT_WORKERS", 8),
		CacheEnabled: getEnvBool("I18NLINT_CACHE_ENABLED", true),
		CacheSize:    getEnvInt("I18NLINT_CACHE_SIZE", 512),
		CacheTTL:     getEnvDuration("I18NLINT_CACHE_TTL", 10*time.Minute),
		MetricsFile:  getEnv("I18NLINT_METRICS_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("%w: cache size must be at least 1, got %d", ErrInvalidConfig, c.CacheSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache ttl must not be negative", ErrInvalidConfig)
	}
	return nil
}

// NewLogger returns a logger writing to stderr at the configured level
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(c.LogLevel)
	return log
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
