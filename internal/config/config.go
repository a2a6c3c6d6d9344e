// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is loaded once at startup
// and treated as immutable afterwards.
type Config struct {
	// BaseURL is the Plausible instance to query, without a trailing slash.
	BaseURL string
	// APIKey is sent as a bearer credential on every request.
	APIKey string
	// OutputDir is where --save writes report files.
	OutputDir string
	// RequestTimeout applies to each HTTP call individually.
	RequestTimeout time.Duration
	// RefreshInterval is the dashboard auto-refresh period.
	RefreshInterval time.Duration
	// MetricPrecision is the number of decimal places kept for ratio and
	// percentage metrics in formatted summaries.
	MetricPrecision int

	// EnvFile is the .env file Load picked up, empty if none was found.
	// The dashboard watches it for changes.
	EnvFile string
}

// Default values
const (
	defaultOutputDir       = "./output"
	defaultRequestTimeout  = 30 * time.Second
	defaultRefreshInterval = 60 * time.Second
	defaultPrecision       = 2
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	envFile := ""
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			envFile = path
			break
		}
	}

	cfg := &Config{
		BaseURL:         strings.TrimRight(os.Getenv("PLAUSIBLE_BASE_URL"), "/"),
		APIKey:          os.Getenv("PLAUSIBLE_API_KEY"),
		OutputDir:       getEnvString("OUTPUT_DIR", defaultOutputDir),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		RefreshInterval: getEnvDuration("DASHBOARD_REFRESH_INTERVAL", defaultRefreshInterval),
		MetricPrecision: getEnvInt("METRIC_PRECISION", defaultPrecision),
		EnvFile:         envFile,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields. It runs before any network call so that
// configuration mistakes never show up as API errors.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("PLAUSIBLE_BASE_URL is required (e.g. https://plausible.io)")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("PLAUSIBLE_BASE_URL must start with http:// or https://, got %q", c.BaseURL)
	}
	if c.APIKey == "" {
		return fmt.Errorf("PLAUSIBLE_API_KEY is required")
	}
	if c.MetricPrecision < 0 || c.MetricPrecision > 6 {
		return fmt.Errorf("METRIC_PRECISION must be between 0 and 6, got %d", c.MetricPrecision)
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "pstats", ".env"),
			filepath.Join(home, ".pstats", ".env"),
		)
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
