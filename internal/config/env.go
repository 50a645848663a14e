// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/aretw0/statesync/internal/logging"
)

// Config holds the settings shared by every command. Flags override them.
type Config struct {
	LogLevel string `env:"STATESYNC_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"STATESYNC_LOG_JSON"`

	HTTPAddr string `env:"STATESYNC_HTTP_ADDR" envDefault:":8080"`

	// RedisAddr enables the Redis overlay store when set.
	RedisAddr   string `env:"STATESYNC_REDIS_ADDR"`
	RedisPrefix string `env:"STATESYNC_REDIS_PREFIX" envDefault:"statesync:overlay:"`

	// FPS is the tick rate of the serve loop.
	FPS int `env:"STATESYNC_FPS" envDefault:"60"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FPS <= 0 {
		return Config{}, fmt.Errorf("STATESYNC_FPS must be positive, got %d", cfg.FPS)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("STATESYNC_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Level returns the parsed log level. Load has already validated it.
func (c Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
