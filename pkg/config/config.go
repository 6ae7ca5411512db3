package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
)

type Config struct {
	// Storage
	DataRoot  string `yaml:"data_root"`
	IndexFile string `yaml:"index_file"`

	// Archive access
	UserAgent          string `yaml:"user_agent"`
	ListTimeoutSec     int    `yaml:"list_timeout_sec"`
	DownloadTimeoutSec int    `yaml:"download_timeout_sec"`
	MaxRetries         int    `yaml:"max_retries"`

	// Dashboard
	ServeAddr string `yaml:"serve_addr"`

	// Watch mode
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// Index freshness warning threshold
	IndexMaxAgeHours int `yaml:"index_max_age_hours"`

	// ExtraRegions are appended to the builtin region presets.
	ExtraRegions []domain.Region `yaml:"extra_regions"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		DataRoot:           "",
		IndexFile:          "",
		UserAgent:          "gammaspec-fetcher/0.1",
		ListTimeoutSec:     30,
		DownloadTimeoutSec: 60,
		MaxRetries:         3,
		ServeAddr:          ":8080",
		WatchDebounceMS:    500,
		IndexMaxAgeHours:   24,
	}
}

// Load reads configuration from the specified file path. A missing file is
// not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.UserAgent == "" {
		cfg.UserAgent = "gammaspec-fetcher/0.1"
	}
	if cfg.ListTimeoutSec <= 0 {
		cfg.ListTimeoutSec = 30
	}
	if cfg.DownloadTimeoutSec <= 0 {
		cfg.DownloadTimeoutSec = 60
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = ":8080"
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.IndexMaxAgeHours <= 0 {
		cfg.IndexMaxAgeHours = 24
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Regions merges the builtin presets with any regions from the config file.
func (c *Config) Regions() []domain.Region {
	return append(domain.BuiltinRegions(), c.ExtraRegions...)
}
