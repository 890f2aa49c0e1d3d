package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"benchgate/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Validation ValidationConfig
	Reports    ReportConfig
	Server     ServerConfig
	Database   DatabaseConfig
}

// ValidationConfig holds the default thresholds applied to numeric columns
type ValidationConfig struct {
	MinValueThreshold float64
	MaxValueThreshold float64
}

// ReportConfig holds report persistence settings
type ReportConfig struct {
	OutputDir string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional run-ledger database settings.
// An empty URL means the in-memory ledger is used.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from the environment, honoring a local .env
// file when present, and validates it.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	config := &Config{
		Validation: ValidationConfig{
			MinValueThreshold: getEnvFloatOrDefault("MIN_VALUE_THRESHOLD", 0.0),
			MaxValueThreshold: getEnvFloatOrDefault("MAX_VALUE_THRESHOLD", 1e9),
		},
		Reports: ReportConfig{
			OutputDir: getEnvOrDefault("REPORT_DIR", "."),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Validation.MinValueThreshold > config.Validation.MaxValueThreshold {
		return errors.ConfigInvalid("MIN_VALUE_THRESHOLD exceeds MAX_VALUE_THRESHOLD")
	}
	if config.Reports.OutputDir == "" {
		return errors.ConfigInvalid("REPORT_DIR cannot be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
