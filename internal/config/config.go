// Package config loads CLI defaults from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI defaults; flags override every field.
type Config struct {
	Input    string        `env:"FORMTOGGLE_INPUT"`
	Output   string        `env:"FORMTOGGLE_OUTPUT"`
	Verbose  bool          `env:"FORMTOGGLE_VERBOSE"`
	Headless bool          `env:"FORMTOGGLE_HEADLESS" envDefault:"true"`
	Timeout  time.Duration `env:"FORMTOGGLE_TIMEOUT"  envDefault:"30s"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
