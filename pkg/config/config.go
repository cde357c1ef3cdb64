package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the harvester
type Config struct {
	// Solver proxy settings
	Solver SolverConfig `yaml:"solver" json:"solver"`

	// Collection phase settings
	Harvest HarvestConfig `yaml:"harvest" json:"harvest"`

	// Enrichment phase settings
	Enrich EnrichConfig `yaml:"enrich" json:"enrich"`

	// Fetch retry settings
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Persisted file locations
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SolverConfig holds FlareSolverr proxy configuration
type SolverConfig struct {
	URL            string        `yaml:"url" json:"url"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
	SolveTimeout   time.Duration `yaml:"solve_timeout" json:"solve_timeout"`
}

// HarvestConfig holds collection phase configuration
type HarvestConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`
	Budget         time.Duration `yaml:"budget" json:"budget"`
	PageStride     int           `yaml:"page_stride" json:"page_stride"`
	MaxOffset      int           `yaml:"max_offset" json:"max_offset"`
	PageDelay      time.Duration `yaml:"page_delay" json:"page_delay"`
	FlushThreshold int           `yaml:"flush_threshold" json:"flush_threshold"`
	Timezone       string        `yaml:"timezone" json:"timezone"`
}

// EnrichConfig holds enrichment phase configuration
type EnrichConfig struct {
	Delay      time.Duration `yaml:"delay" json:"delay"`
	FlushEvery int           `yaml:"flush_every" json:"flush_every"`
}

// RetryConfig holds fetch retry configuration
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	Delay       time.Duration `yaml:"delay" json:"delay"`
}

// OutputConfig holds persisted file locations
type OutputConfig struct {
	DataDir        string `yaml:"data_dir" json:"data_dir"`
	StateFile      string `yaml:"state_file" json:"state_file"`
	ResultsFile    string `yaml:"results_file" json:"results_file"`
	FailedURLsFile string `yaml:"failed_urls_file" json:"failed_urls_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSize    int    `yaml:"max_size" json:"max_size"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// StatePath returns the full path of the checkpoint file
func (o *OutputConfig) StatePath() string {
	return filepath.Join(o.DataDir, o.StateFile)
}

// ResultsPath returns the full path of the results file
func (o *OutputConfig) ResultsPath() string {
	return filepath.Join(o.DataDir, o.ResultsFile)
}

// FailedURLsPath returns the full path of the failure log
func (o *OutputConfig) FailedURLsPath() string {
	return filepath.Join(o.DataDir, o.FailedURLsFile)
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			URL:            "http://localhost:8191/v1",
			RequestTimeout: 70 * time.Second,
			SolveTimeout:   60 * time.Second,
		},
		Harvest: HarvestConfig{
			BaseURL:        "https://www.hltv.org",
			Budget:         295 * time.Minute,
			PageStride:     100,
			MaxOffset:      100,
			PageDelay:      time.Second,
			FlushThreshold: 50,
			Timezone:       "Europe/Copenhagen",
		},
		Enrich: EnrichConfig{
			Delay:      100 * time.Millisecond,
			FlushEvery: 10,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			Delay:       2 * time.Second,
		},
		Output: OutputConfig{
			DataDir:        ".",
			StateFile:      "scrape_state.json",
			ResultsFile:    "results.json",
			FailedURLsFile: "failed_urls.txt",
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   false,
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if solverURL := os.Getenv("HLTV_SOLVER_URL"); solverURL != "" {
		c.Solver.URL = solverURL
	}
	if baseURL := os.Getenv("HLTV_BASE_URL"); baseURL != "" {
		c.Harvest.BaseURL = baseURL
	}

	if budget := os.Getenv("HLTV_BUDGET"); budget != "" {
		d, err := time.ParseDuration(budget)
		if err != nil {
			return fmt.Errorf("invalid HLTV_BUDGET: %w", err)
		}
		c.Harvest.Budget = d
	}

	if maxOffset := os.Getenv("HLTV_MAX_OFFSET"); maxOffset != "" {
		var val int
		fmt.Sscanf(maxOffset, "%d", &val)
		if val >= 0 {
			c.Harvest.MaxOffset = val
		}
	}

	if dataDir := os.Getenv("HLTV_DATA_DIR"); dataDir != "" {
		c.Output.DataDir = dataDir
	}

	if logLevel := os.Getenv("HLTV_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".hltvharvest.yaml",
		".hltvharvest.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "hltvharvest", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "hltvharvest", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".hltvharvest.yaml"),
		filepath.Join(os.Getenv("HOME"), ".hltvharvest.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// ApplyFlags applies command line flag overrides
func (c *Config) ApplyFlags(flags map[string]interface{}) {
	for key, value := range flags {
		switch key {
		case "solver-url":
			if v, ok := value.(string); ok {
				c.Solver.URL = v
			}
		case "budget":
			if v, ok := value.(time.Duration); ok {
				c.Harvest.Budget = v
			}
		case "max-offset":
			if v, ok := value.(int); ok {
				c.Harvest.MaxOffset = v
			}
		case "data-dir":
			if v, ok := value.(string); ok {
				c.Output.DataDir = v
			}
		case "state-file":
			if v, ok := value.(string); ok {
				c.Output.StateFile = v
			}
		case "results-file":
			if v, ok := value.(string); ok {
				c.Output.ResultsFile = v
			}
		case "log-level":
			if v, ok := value.(string); ok {
				c.Logging.Level = v
			}
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Solver.URL == "" {
		errs = append(errs, errors.New("solver URL is required"))
	}
	if c.Solver.RequestTimeout <= 0 {
		errs = append(errs, errors.New("solver request timeout must be positive"))
	}
	if c.Solver.SolveTimeout <= 0 {
		errs = append(errs, errors.New("solver solve timeout must be positive"))
	}

	if c.Harvest.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required"))
	}
	if c.Harvest.Budget < 0 {
		errs = append(errs, errors.New("budget cannot be negative"))
	}
	if c.Harvest.PageStride <= 0 {
		errs = append(errs, errors.New("page stride must be positive"))
	}
	if c.Harvest.MaxOffset < 0 {
		errs = append(errs, errors.New("max offset cannot be negative"))
	}
	if c.Harvest.FlushThreshold <= 0 {
		errs = append(errs, errors.New("flush threshold must be positive"))
	}

	if c.Enrich.FlushEvery <= 0 {
		errs = append(errs, errors.New("enrich flush cadence must be positive"))
	}

	if c.Retry.MaxAttempts <= 0 {
		errs = append(errs, errors.New("retry max attempts must be positive"))
	}
	if c.Retry.Delay < 0 {
		errs = append(errs, errors.New("retry delay cannot be negative"))
	}

	if c.Output.DataDir == "" {
		errs = append(errs, errors.New("data directory is required"))
	}
	if c.Output.StateFile == "" || c.Output.ResultsFile == "" || c.Output.FailedURLsFile == "" {
		errs = append(errs, errors.New("state, results and failed-urls file names are required"))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		errs = append(errs, fmt.Errorf("unknown log level: %s", c.Logging.Level))
	}

	if len(errs) > 0 {
		var msgs []string
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}

	return nil
}

// Load loads configuration from all sources in order of precedence:
// defaults, config file, environment variables, command line flags.
func Load(configFile string, flags map[string]interface{}) (*Config, error) {
	// Load .env file if present (ignore errors, it's optional)
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(configFile); err != nil {
		return nil, err
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	cfg.ApplyFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
