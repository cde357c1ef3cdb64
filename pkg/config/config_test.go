package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Solver.URL != "http://localhost:8191/v1" {
		t.Errorf("unexpected solver URL: %s", cfg.Solver.URL)
	}
	if cfg.Harvest.Budget != 295*time.Minute {
		t.Errorf("unexpected budget: %v", cfg.Harvest.Budget)
	}
	if cfg.Harvest.PageStride != 100 {
		t.Errorf("unexpected page stride: %d", cfg.Harvest.PageStride)
	}
	if cfg.Harvest.MaxOffset != 100 {
		t.Errorf("unexpected max offset: %d", cfg.Harvest.MaxOffset)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("unexpected retry attempts: %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Output.StateFile != "scrape_state.json" {
		t.Errorf("unexpected state file: %s", cfg.Output.StateFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestOutputPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.DataDir = "/var/lib/hltv"

	if got := cfg.Output.StatePath(); got != filepath.Join("/var/lib/hltv", "scrape_state.json") {
		t.Errorf("unexpected state path: %s", got)
	}
	if got := cfg.Output.ResultsPath(); got != filepath.Join("/var/lib/hltv", "results.json") {
		t.Errorf("unexpected results path: %s", got)
	}
	if got := cfg.Output.FailedURLsPath(); got != filepath.Join("/var/lib/hltv", "failed_urls.txt") {
		t.Errorf("unexpected failed urls path: %s", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HLTV_SOLVER_URL", "http://solver:8191/v1")
	t.Setenv("HLTV_BUDGET", "30m")
	t.Setenv("HLTV_MAX_OFFSET", "400")
	t.Setenv("HLTV_DATA_DIR", "/tmp/hltv")
	t.Setenv("HLTV_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.Solver.URL != "http://solver:8191/v1" {
		t.Errorf("solver URL not applied: %s", cfg.Solver.URL)
	}
	if cfg.Harvest.Budget != 30*time.Minute {
		t.Errorf("budget not applied: %v", cfg.Harvest.Budget)
	}
	if cfg.Harvest.MaxOffset != 400 {
		t.Errorf("max offset not applied: %d", cfg.Harvest.MaxOffset)
	}
	if cfg.Output.DataDir != "/tmp/hltv" {
		t.Errorf("data dir not applied: %s", cfg.Output.DataDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level not applied: %s", cfg.Logging.Level)
	}
}

func TestLoadFromEnvInvalidBudget(t *testing.T) {
	t.Setenv("HLTV_BUDGET", "not-a-duration")

	cfg := DefaultConfig()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for invalid HLTV_BUDGET")
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
solver:
  url: http://flaresolverr:8191/v1
harvest:
  budget: 1h
  max_offset: 300
  timezone: Europe/Copenhagen
output:
  data_dir: /data
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Solver.URL != "http://flaresolverr:8191/v1" {
		t.Errorf("solver URL not applied: %s", cfg.Solver.URL)
	}
	if cfg.Harvest.Budget != time.Hour {
		t.Errorf("budget not applied: %v", cfg.Harvest.Budget)
	}
	if cfg.Harvest.MaxOffset != 300 {
		t.Errorf("max offset not applied: %d", cfg.Harvest.MaxOffset)
	}
	if cfg.Output.DataDir != "/data" {
		t.Errorf("data dir not applied: %s", cfg.Output.DataDir)
	}

	// Untouched sections keep their defaults.
	if cfg.Harvest.PageStride != 100 {
		t.Errorf("page stride should keep default: %d", cfg.Harvest.PageStride)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyFlags(map[string]interface{}{
		"solver-url": "http://other:8191/v1",
		"budget":     15 * time.Minute,
		"max-offset": 0,
		"data-dir":   "/srv/harvest",
		"log-level":  "warn",
	})

	if cfg.Solver.URL != "http://other:8191/v1" {
		t.Errorf("solver URL not applied: %s", cfg.Solver.URL)
	}
	if cfg.Harvest.Budget != 15*time.Minute {
		t.Errorf("budget not applied: %v", cfg.Harvest.Budget)
	}
	if cfg.Harvest.MaxOffset != 0 {
		t.Errorf("max offset not applied: %d", cfg.Harvest.MaxOffset)
	}
	if cfg.Output.DataDir != "/srv/harvest" {
		t.Errorf("data dir not applied: %s", cfg.Output.DataDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level not applied: %s", cfg.Logging.Level)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty solver url", func(c *Config) { c.Solver.URL = "" }},
		{"zero solve timeout", func(c *Config) { c.Solver.SolveTimeout = 0 }},
		{"empty base url", func(c *Config) { c.Harvest.BaseURL = "" }},
		{"negative budget", func(c *Config) { c.Harvest.Budget = -time.Minute }},
		{"zero page stride", func(c *Config) { c.Harvest.PageStride = 0 }},
		{"negative max offset", func(c *Config) { c.Harvest.MaxOffset = -1 }},
		{"zero flush threshold", func(c *Config) { c.Harvest.FlushThreshold = 0 }},
		{"zero flush cadence", func(c *Config) { c.Enrich.FlushEvery = 0 }},
		{"zero retry attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }},
		{"empty data dir", func(c *Config) { c.Output.DataDir = "" }},
		{"empty state file", func(c *Config) { c.Output.StateFile = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateZeroBudgetAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Harvest.Budget = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero budget should validate: %v", err)
	}
}
