// Package config loads server configuration: compiled-in defaults, an
// optional YAML file on top, and FINSIM_* environment variables last.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Addr string `yaml:"addr" env:"FINSIM_ADDR"`

	// CatalogDir holds scenario YAML files; empty means the built-in
	// catalog only.
	CatalogDir    string        `yaml:"catalog_dir" env:"FINSIM_CATALOG_DIR"`
	WatchInterval time.Duration `yaml:"watch_interval" env:"FINSIM_WATCH_INTERVAL"`

	// SQLitePath enables the event recorder; empty disables it.
	SQLitePath string `yaml:"sqlite_path" env:"FINSIM_SQLITE_PATH"`

	// SeedSessions derives each session's random source from its id,
	// making runs reproducible. Off by default.
	SeedSessions bool `yaml:"seed_sessions" env:"FINSIM_SEED_SESSIONS"`

	LogLevel string `yaml:"log_level" env:"FINSIM_LOG_LEVEL"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Addr:          ":4000",
		WatchInterval: 5 * time.Second,
		LogLevel:      "info",
	}
}

// Load builds the effective configuration. path may be empty; a missing
// file at a non-empty path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("addr must not be empty")
	}
	if cfg.WatchInterval <= 0 {
		cfg.WatchInterval = Default().WatchInterval
	}
	return cfg, nil
}
