// Package config loads optimizer run settings from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/rwcarlsen/pso"
	"gopkg.in/yaml.v3"
)

// Config describes a batch of independent optimizer trials.
type Config struct {
	Lower     float64 `yaml:"lower"`
	Upper     float64 `yaml:"upper"`
	Dim       int     `yaml:"dim"`
	Size      int     `yaml:"size"`
	Inertia   float64 `yaml:"inertia"`
	Cognition float64 `yaml:"cognition"`
	Social    float64 `yaml:"social"`

	// Seed is the seed of the first trial; trial k uses Seed+k.  Zero
	// picks a time-based seed.  Negative seeds are rejected so no trial
	// seed can wrap to zero.
	Seed   int64 `yaml:"seed"`
	Ticks  int   `yaml:"ticks"`
	Trials int   `yaml:"trials"`
	// Tolerance stops a trial early once the best value is below it.
	Tolerance float64 `yaml:"tolerance"`
	Workers   int     `yaml:"workers"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	// DB is an optional sqlite file the first trial's history is written to.
	DB string `yaml:"db"`
}

// Default returns the settings of the classic 2D Rastrigin demo.
func Default() *Config {
	return &Config{
		Lower:     -5.12,
		Upper:     5.12,
		Dim:       2,
		Size:      50,
		Inertia:   pso.DefaultInertia,
		Cognition: pso.DefaultCognition,
		Social:    pso.DefaultSocial,
		Ticks:     1000,
		Trials:    1,
		Tolerance: 1e-6,
		Workers:   1,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings.  Errors wrap pso.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats := map[string]bool{"text": true, "json": true}

	switch {
	case !(c.Lower < c.Upper):
		return fmt.Errorf("lower (%v) must be below upper (%v): %w", c.Lower, c.Upper, pso.ErrInvalidConfiguration)
	case c.Dim <= 0:
		return fmt.Errorf("dim must be positive, got %v: %w", c.Dim, pso.ErrInvalidConfiguration)
	case c.Size <= 0:
		return fmt.Errorf("size must be positive, got %v: %w", c.Size, pso.ErrInvalidConfiguration)
	case c.Seed < 0:
		return fmt.Errorf("seed cannot be negative, got %v: %w", c.Seed, pso.ErrInvalidConfiguration)
	case c.Ticks < 0:
		return fmt.Errorf("ticks cannot be negative, got %v: %w", c.Ticks, pso.ErrInvalidConfiguration)
	case c.Trials <= 0:
		return fmt.Errorf("trials must be positive, got %v: %w", c.Trials, pso.ErrInvalidConfiguration)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %v: %w", c.Workers, pso.ErrInvalidConfiguration)
	case c.Tolerance < 0:
		return fmt.Errorf("tolerance cannot be negative, got %v: %w", c.Tolerance, pso.ErrInvalidConfiguration)
	case !validLogLevels[c.LogLevel]:
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error): %w", c.LogLevel, pso.ErrInvalidConfiguration)
	case !validFormats[c.LogFormat]:
		return fmt.Errorf("invalid log_format: %s (must be text or json): %w", c.LogFormat, pso.ErrInvalidConfiguration)
	}
	return nil
}
