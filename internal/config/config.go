package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"source-composer/internal/compose"
)

// Environment variables overriding file settings.
const (
	EnvPrefix           = "COMPOSER_PREFIX"
	EnvJobs             = "COMPOSER_JOBS"
	EnvCacheDir         = "COMPOSER_CACHE_DIR"
	EnvReportUnresolved = "COMPOSER_REPORT_UNRESOLVED"
)

// ErrInvalid is returned for settings that fail validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the on-disk composer configuration.
type Config struct {
	Prefix           string   `yaml:"prefix"`
	Jobs             int      `yaml:"jobs"`
	RawTypes         []string `yaml:"raw_types,omitempty"`
	ReportUnresolved bool     `yaml:"report_unresolved"`
	MaxSuggestions   int      `yaml:"max_suggestions"`
	// CacheDir enables the parsed-file cache when set.
	CacheDir string `yaml:"cache_dir,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	d := compose.DefaultConfig()

	return &Config{
		Prefix:         d.Prefix,
		Jobs:           d.Jobs,
		RawTypes:       d.RawRepresentableTypes,
		MaxSuggestions: d.MaxSuggestions,
	}
}

// Load builds the configuration. An empty path skips the YAML file;
// a .env file in the working directory is loaded if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPrefix); v != "" {
		c.Prefix = v
	}

	if v := os.Getenv(EnvCacheDir); v != "" {
		c.CacheDir = v
	}

	if v := os.Getenv(EnvJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvJobs, v)
		}

		c.Jobs = n
	}

	if v := os.Getenv(EnvReportUnresolved); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvReportUnresolved, v)
		}

		c.ReportUnresolved = b
	}

	return nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return fmt.Errorf("%w: empty annotation prefix", ErrInvalid)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("%w: negative jobs %d", ErrInvalid, c.Jobs)
	}

	if c.MaxSuggestions < 0 {
		return fmt.Errorf("%w: negative max_suggestions %d", ErrInvalid, c.MaxSuggestions)
	}

	return nil
}

// Compose returns the composer configuration.
func (c *Config) Compose() compose.Config {
	cfg := compose.DefaultConfig()
	cfg.Prefix = c.Prefix
	cfg.Jobs = c.Jobs
	cfg.ReportUnresolved = c.ReportUnresolved
	cfg.MaxSuggestions = c.MaxSuggestions

	if len(c.RawTypes) > 0 {
		cfg.RawRepresentableTypes = c.RawTypes
	}

	return cfg
}
