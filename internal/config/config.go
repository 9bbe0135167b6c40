// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or environment
// variables.
type Config struct {
	Port         int    `json:"port,omitempty"`          // HTTP listen port
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL connection URL
	APIKey       string `json:"api_key,omitempty"`       // Gemini API key for the analyzer
	UploadDir    string `json:"upload_dir,omitempty"`    // Root directory for uploaded files
	TranslateURL string `json:"translate_url,omitempty"` // Base URL of the translation service
	Verbose      bool   `json:"verbose,omitempty"`       // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		UploadDir:    os.Getenv("UPLOAD_DIR"),
		TranslateURL: os.Getenv("TRANSLATE_URL"),
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Port = port
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.UploadDir != "" {
		if info, err := os.Stat(c.UploadDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: 'upload_dir' is not a directory: %s", c.UploadDir)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags and environment variables.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}
	if result.TranslateURL == "" {
		result.TranslateURL = defaults.TranslateURL
	}

	// Final fallbacks.
	if result.Port == 0 {
		result.Port = 8080
	}
	if result.UploadDir == "" {
		result.UploadDir = "uploads"
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
