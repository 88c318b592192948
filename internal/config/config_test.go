package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ── Load / Defaults ──

func clearEnv() {
	envVars := []string{
		"RETURNSIGHT_DATASET_RECORDS", "RETURNSIGHT_DATASET_SEED", "RETURNSIGHT_DATASET_START",
		"RETURNSIGHT_REPORT_OUTPUT", "RETURNSIGHT_REPORT_TITLE", "RETURNSIGHT_REPORT_CSV",
	}
	for _, e := range envVars {
		os.Unsetenv(e)
	}
}

func TestLoadReturnsDefaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Dataset defaults
	if cfg.Dataset.Records != 1500 {
		t.Errorf("Dataset.Records: got %d, want 1500", cfg.Dataset.Records)
	}
	if cfg.Dataset.Seed != 42 {
		t.Errorf("Dataset.Seed: got %d, want 42", cfg.Dataset.Seed)
	}
	if cfg.Dataset.Start != "2023-01-01" {
		t.Errorf("Dataset.Start: got %q, want %q", cfg.Dataset.Start, "2023-01-01")
	}

	// Report defaults
	if cfg.Report.Output != "returns_report.html" {
		t.Errorf("Report.Output: got %q, want %q", cfg.Report.Output, "returns_report.html")
	}
	if cfg.Report.Title != "E-Commerce Returns Analysis" {
		t.Errorf("Report.Title: got %q", cfg.Report.Title)
	}
	if cfg.Report.CSV != "" {
		t.Errorf("Report.CSV: got %q, want empty", cfg.Report.CSV)
	}
}

func TestDefaultsPassValidation(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
dataset:
  records: 200
  seed: 7
  start: "2024-06-15"
report:
  output: "out/custom_report.html"
  title: "Q2 Returns Review"
  csv: "out/returns.csv"
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	clearEnv()

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Dataset.Records != 200 {
		t.Errorf("Dataset.Records: got %d, want 200", cfg.Dataset.Records)
	}
	if cfg.Dataset.Seed != 7 {
		t.Errorf("Dataset.Seed: got %d, want 7", cfg.Dataset.Seed)
	}
	if cfg.Dataset.Start != "2024-06-15" {
		t.Errorf("Dataset.Start: got %q, want %q", cfg.Dataset.Start, "2024-06-15")
	}
	if cfg.Report.Output != "out/custom_report.html" {
		t.Errorf("Report.Output: got %q", cfg.Report.Output)
	}
	if cfg.Report.Title != "Q2 Returns Review" {
		t.Errorf("Report.Title: got %q", cfg.Report.Title)
	}
	if cfg.Report.CSV != "out/returns.csv" {
		t.Errorf("Report.CSV: got %q", cfg.Report.CSV)
	}
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "partial.yaml")
	content := []byte("dataset:\n  seed: 99\n")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	clearEnv()

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Dataset.Seed != 99 {
		t.Errorf("Dataset.Seed: got %d, want 99", cfg.Dataset.Seed)
	}
	if cfg.Dataset.Records != 1500 {
		t.Errorf("Dataset.Records should keep default 1500, got %d", cfg.Dataset.Records)
	}
	if cfg.Report.Output != "returns_report.html" {
		t.Errorf("Report.Output should keep default, got %q", cfg.Report.Output)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

// ── Environment overrides ──

func TestEnvOverridesDefaults(t *testing.T) {
	clearEnv()
	os.Setenv("RETURNSIGHT_DATASET_SEED", "1234")
	os.Setenv("RETURNSIGHT_REPORT_OUTPUT", "env_report.html")
	defer func() {
		os.Unsetenv("RETURNSIGHT_DATASET_SEED")
		os.Unsetenv("RETURNSIGHT_REPORT_OUTPUT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Dataset.Seed != 1234 {
		t.Errorf("Dataset.Seed: got %d, want 1234", cfg.Dataset.Seed)
	}
	if cfg.Report.Output != "env_report.html" {
		t.Errorf("Report.Output: got %q, want %q", cfg.Report.Output, "env_report.html")
	}
}

// ── Validate ──

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero records", func(c *Config) { c.Dataset.Records = 0 }},
		{"negative records", func(c *Config) { c.Dataset.Records = -5 }},
		{"zero seed", func(c *Config) { c.Dataset.Seed = 0 }},
		{"bad start date", func(c *Config) { c.Dataset.Start = "January 1st" }},
		{"empty output", func(c *Config) { c.Report.Output = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Dataset: DatasetConfig{Records: 1500, Seed: 42, Start: "2023-01-01"},
				Report:  ReportConfig{Output: "returns_report.html"},
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should reject this config")
			}
		})
	}
}

func TestValidateAcceptsNegativeSeed(t *testing.T) {
	cfg := &Config{
		Dataset: DatasetConfig{Records: 1500, Seed: -1, Start: "2023-01-01"},
		Report:  ReportConfig{Output: "returns_report.html"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("negative seeds are valid, got: %v", err)
	}
}

// ── StartDate ──

func TestStartDate(t *testing.T) {
	d := DatasetConfig{Start: "2023-01-01"}
	ts, err := d.StartDate()
	if err != nil {
		t.Fatalf("StartDate() error: %v", err)
	}
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("StartDate: got %v, want %v", ts, want)
	}
}

func TestStartDateInvalid(t *testing.T) {
	d := DatasetConfig{Start: "01/02/2023"}
	if _, err := d.StartDate(); err == nil {
		t.Error("StartDate() should reject non-ISO dates")
	}
}

// ── homeDir ──

func TestHomeDirReturnsNonEmpty(t *testing.T) {
	h := homeDir()
	if h == "" {
		t.Error("homeDir() should not return empty string")
	}
}
