package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	os.Setenv(key, val)
	defer os.Unsetenv(key)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_ENV_INT"

	tests := []struct {
		name   string
		envVal string
		want   int
	}{
		{"Valid", "3", 3},
		{"Invalid", "three", 7},
		{"Empty", "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvInt(key, 7); got != tt.want {
				t.Errorf("getEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := EnsureDir(""); err != nil {
		t.Error("EnsureDir(\"\") should not error")
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PLAUSIBLE_BASE_URL", "https://plausible.example.com")
	t.Setenv("PLAUSIBLE_API_KEY", "test-key")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.BaseURL != "https://plausible.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.OutputDir != defaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, defaultOutputDir)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	if cfg.MetricPrecision != defaultPrecision {
		t.Errorf("MetricPrecision = %d, want %d", cfg.MetricPrecision, defaultPrecision)
	}
}

func TestLoad_TrailingSlash(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PLAUSIBLE_BASE_URL", "https://plausible.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if strings.HasSuffix(cfg.BaseURL, "/") {
		t.Errorf("BaseURL should have trailing slash stripped, got %q", cfg.BaseURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// Run from an empty temp dir so no local .env interferes, and point HOME
	// at it too.
	tmpDir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(tmpDir)
	t.Setenv("HOME", tmpDir)

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"NoBaseURL", map[string]string{"PLAUSIBLE_BASE_URL": "", "PLAUSIBLE_API_KEY": "k"}},
		{"NoAPIKey", map[string]string{"PLAUSIBLE_BASE_URL": "https://p.io", "PLAUSIBLE_API_KEY": ""}},
		{"BadScheme", map[string]string{"PLAUSIBLE_BASE_URL": "plausible.io", "PLAUSIBLE_API_KEY": "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")
	content := "PLAUSIBLE_BASE_URL=https://env.example.com\nPLAUSIBLE_API_KEY=env-key"
	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Change working directory to tmpDir so Load finds .env
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(tmpDir)

	os.Unsetenv("PLAUSIBLE_BASE_URL")
	os.Unsetenv("PLAUSIBLE_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q, want env value", cfg.BaseURL)
	}
	if cfg.EnvFile == "" {
		t.Error("EnvFile should record the loaded .env path")
	}
}

func TestValidate_Precision(t *testing.T) {
	cfg := &Config{
		BaseURL:         "https://p.io",
		APIKey:          "k",
		MetricPrecision: 9,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject out-of-range precision")
	}
}
