package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/varoOP/animetop/internal/domain"
	"github.com/varoOP/animetop/internal/jikan"
)

// Defaults mirror the fetcher's own defaults so a bare invocation fetches
// the top 250 titles into ./data.
var Defaults = map[string]any{
	"root_path":     ".",
	"base_url":      jikan.DefaultBaseURL,
	"user_agent":    jikan.DefaultUserAgent,
	"limit":         250,
	"per_page":      domain.MaxPerPage,
	"delay":         jikan.DefaultDelay,
	"timeout":       jikan.DefaultTimeout,
	"fetch_all":     false,
	"output_format": string(domain.OutputFormatCSV),
}

// Load loads configuration from multiple sources:
// 1. Config file (config.yaml or $HOME/.animetop.yaml, optional)
// 2. Environment variables (ANIMETOP_*)
// 3. Command line flags bound in cmd/animetop
func Load() (*domain.Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom decodes and validates the configuration held by v
func LoadFrom(v *viper.Viper) (*domain.Config, error) {
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	cfg := &domain.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the ranges the fetcher and sinks rely on
func Validate(cfg *domain.Config) error {
	if cfg.PerPage < 1 || cfg.PerPage > domain.MaxPerPage {
		return fmt.Errorf("invalid per_page: %d (must be between 1 and %d)", cfg.PerPage, domain.MaxPerPage)
	}
	if cfg.Limit < 0 {
		return fmt.Errorf("invalid limit: %d (must not be negative)", cfg.Limit)
	}
	if cfg.Delay < 0 {
		return fmt.Errorf("invalid delay: %s (must not be negative)", cfg.Delay)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s (must be positive)", cfg.Timeout)
	}

	switch cfg.OutputFormat {
	case domain.OutputFormatCSV, domain.OutputFormatSQLite, domain.OutputFormatBoth:
	default:
		return fmt.Errorf("invalid output_format: %q (must be 'csv', 'sqlite', or 'both')", cfg.OutputFormat)
	}

	return nil
}
