// Package config provides Viper-based configuration management for starsearch
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Source kinds
const (
	SourceMock  = "mock"
	SourceSWAPI = "swapi"
)

// Config represents the complete starsearch configuration
type Config struct {
	Search  SearchConfig  `mapstructure:"search"`
	Source  SourceConfig  `mapstructure:"source"`
	SWAPI   SWAPIConfig   `mapstructure:"swapi"`
	Mock    MockConfig    `mapstructure:"mock"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// SearchConfig tunes the keystroke pipeline
type SearchConfig struct {
	Debounce      time.Duration `mapstructure:"debounce"`
	MinTermLength int           `mapstructure:"min_term_length"`
}

// SourceConfig selects the data collaborator
type SourceConfig struct {
	Kind string `mapstructure:"kind"`
}

// SWAPIConfig contains settings for the swapi.dev client
type SWAPIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	Burst     int           `mapstructure:"burst"`
}

// MockConfig contains simulated latencies for the in-memory source
type MockConfig struct {
	SearchLatency     time.Duration `mapstructure:"search_latency"`
	CharactersLatency time.Duration `mapstructure:"characters_latency"`
	PlanetsLatency    time.Duration `mapstructure:"planets_latency"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives the log while the interactive screen owns the terminal.
	// Empty discards it.
	File string `mapstructure:"file"`
}

// MetricsConfig contains the Prometheus endpoint settings
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// Load reads configuration from file and environment variables
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".starsearch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/starsearch")
	}

	// STARSEARCH_SEARCH_DEBOUNCE -> search.debounce
	v.SetEnvPrefix("STARSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("search.debounce", 500*time.Millisecond)
	v.SetDefault("search.min_term_length", 4)

	v.SetDefault("source.kind", SourceMock)

	v.SetDefault("swapi.base_url", "https://swapi.dev/api")
	v.SetDefault("swapi.timeout", 10*time.Second)
	v.SetDefault("swapi.rate_limit", 5.0)
	v.SetDefault("swapi.burst", 2)

	v.SetDefault("mock.search_latency", 300*time.Millisecond)
	v.SetDefault("mock.characters_latency", 1500*time.Millisecond)
	v.SetDefault("mock.planets_latency", 1000*time.Millisecond)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")

	v.SetDefault("metrics.listen", "")
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	if cfg.Search.Debounce < 0 {
		return fmt.Errorf("invalid search debounce: %s (must not be negative)", cfg.Search.Debounce)
	}
	if cfg.Search.MinTermLength < 0 {
		return fmt.Errorf("invalid min term length: %d (must not be negative)", cfg.Search.MinTermLength)
	}

	switch cfg.Source.Kind {
	case SourceMock:
	case SourceSWAPI:
		if cfg.SWAPI.BaseURL == "" {
			return fmt.Errorf("swapi base_url is required when source.kind is %q", SourceSWAPI)
		}
		if cfg.SWAPI.RateLimit <= 0 || cfg.SWAPI.Burst < 1 {
			return fmt.Errorf("invalid swapi rate limit: %v/s burst %d", cfg.SWAPI.RateLimit, cfg.SWAPI.Burst)
		}
	default:
		return fmt.Errorf("invalid source kind: %s (must be mock or swapi)", cfg.Source.Kind)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.Logging.Format)
	}

	return nil
}
