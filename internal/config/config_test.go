package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"MIN_VALUE_THRESHOLD", "MAX_VALUE_THRESHOLD", "REPORT_DIR", "PORT", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Validation.MinValueThreshold != 0.0 {
		t.Errorf("Expected default min threshold 0.0, got %v", cfg.Validation.MinValueThreshold)
	}
	if cfg.Validation.MaxValueThreshold != 1e9 {
		t.Errorf("Expected default max threshold 1e9, got %v", cfg.Validation.MaxValueThreshold)
	}
	if cfg.Reports.OutputDir != "." {
		t.Errorf("Expected default report dir '.', got %s", cfg.Reports.OutputDir)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.URL != "" {
		t.Errorf("Expected empty database URL by default, got %s", cfg.Database.URL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MIN_VALUE_THRESHOLD", "10.5")
	t.Setenv("MAX_VALUE_THRESHOLD", "50000")
	t.Setenv("REPORT_DIR", "/var/reports")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/benchgate")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Validation.MinValueThreshold != 10.5 {
		t.Errorf("Expected min threshold 10.5, got %v", cfg.Validation.MinValueThreshold)
	}
	if cfg.Validation.MaxValueThreshold != 50000 {
		t.Errorf("Expected max threshold 50000, got %v", cfg.Validation.MaxValueThreshold)
	}
	if cfg.Reports.OutputDir != "/var/reports" {
		t.Errorf("Expected report dir /var/reports, got %s", cfg.Reports.OutputDir)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://localhost/benchgate" {
		t.Errorf("Unexpected database URL %s", cfg.Database.URL)
	}
}

func TestLoad_RejectsInvertedThresholds(t *testing.T) {
	t.Setenv("MIN_VALUE_THRESHOLD", "1000")
	t.Setenv("MAX_VALUE_THRESHOLD", "10")

	if _, err := Load(); err == nil {
		t.Error("Expected error when min threshold exceeds max threshold")
	}
}

func TestLoad_IgnoresUnparseableNumbers(t *testing.T) {
	t.Setenv("MIN_VALUE_THRESHOLD", "not-a-number")
	t.Setenv("MAX_VALUE_THRESHOLD", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Validation.MinValueThreshold != 0.0 {
		t.Errorf("Unparseable values must fall back to the default, got %v",
			cfg.Validation.MinValueThreshold)
	}
}
