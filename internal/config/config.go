// Package config handles configuration loading for ReturnSight.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset" yaml:"dataset"`
	Report  ReportConfig  `mapstructure:"report"  yaml:"report"`
}

// DatasetConfig holds the synthetic dataset parameters. The defaults are
// the canonical pipeline constants: a bare run reproduces the reference
// artifact byte for byte.
type DatasetConfig struct {
	Records int    `mapstructure:"records" yaml:"records"` // number of return records
	Seed    int64  `mapstructure:"seed"    yaml:"seed"`    // RNG seed
	Start   string `mapstructure:"start"   yaml:"start"`   // first return date, "YYYY-MM-DD"
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	Output string `mapstructure:"output" yaml:"output"` // HTML report path
	Title  string `mapstructure:"title"  yaml:"title"`  // report page title
	CSV    string `mapstructure:"csv"    yaml:"csv"`    // optional CSV export path, "" disables
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.returnsight/config.yaml (home directory)
//  3. /etc/returnsight/config.yaml (system)
//
// Environment variables override config file values.
// Format: RETURNSIGHT_<SECTION>_<KEY>, e.g., RETURNSIGHT_DATASET_SEED
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".returnsight"))
	v.AddConfigPath("/etc/returnsight")

	// Environment variable settings
	v.SetEnvPrefix("RETURNSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("RETURNSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks values that flags or config files can set to something
// unusable. The defaults always pass.
func (c *Config) Validate() error {
	if c.Dataset.Records <= 0 {
		return fmt.Errorf("dataset.records must be positive, got %d", c.Dataset.Records)
	}
	if c.Dataset.Seed == 0 {
		return fmt.Errorf("dataset.seed must be non-zero (0 is reserved for the generator default)")
	}
	if _, err := c.Dataset.StartDate(); err != nil {
		return err
	}
	if c.Report.Output == "" {
		return fmt.Errorf("report.output must not be empty")
	}
	return nil
}

// StartDate parses the configured start date as UTC midnight.
func (d DatasetConfig) StartDate() (time.Time, error) {
	ts, err := time.Parse("2006-01-02", d.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid dataset.start %q: %w", d.Start, err)
	}
	return ts, nil
}

// setDefaults sets the canonical pipeline constants.
func setDefaults(v *viper.Viper) {
	// Dataset defaults
	v.SetDefault("dataset.records", 1500)
	v.SetDefault("dataset.seed", 42)
	v.SetDefault("dataset.start", "2023-01-01")

	// Report defaults
	v.SetDefault("report.output", "returns_report.html")
	v.SetDefault("report.title", "E-Commerce Returns Analysis")
	v.SetDefault("report.csv", "")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
