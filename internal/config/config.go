// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

// Package config loads and validates the Meshboard configuration.
//
// Configuration is layered, later sources overriding earlier ones:
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables (EERO_API_URL, VICTORIA_URL, HTTP_PORT, ...)
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Eero     EeroConfig     `koanf:"eero"`
	Victoria VictoriaConfig `koanf:"victoria"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds the HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST, HTTP_PORT: bind address (default 0.0.0.0:5010)
//   - HTTP_TIMEOUT: per-request timeout
//   - CORS_ORIGINS: comma-separated allowed origins
//   - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW / DISABLE_RATE_LIMIT
//   - STATIC_DIR: directory holding the built frontend, empty disables it
type ServerConfig struct {
	Host              string        `koanf:"host" validate:"required"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout           time.Duration `koanf:"timeout" validate:"min=1s"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	StaticDir         string        `koanf:"static_dir"`
}

// EeroConfig holds the vendor cloud API settings.
//
// Environment Variables:
//   - EERO_API_URL: API base (default https://api-user.e2ro.com)
//   - EERO_SESSION_FILE: path persisting the session token across restarts
//   - EERO_NETWORK_ID: pin a network instead of using the account's first
//   - EERO_TIMEOUT, EERO_RATE_LIMIT_RPS, EERO_RATE_LIMIT_BURST
type EeroConfig struct {
	APIURL         string        `koanf:"api_url" validate:"required,url"`
	SessionFile    string        `koanf:"session_file" validate:"required"`
	NetworkID      string        `koanf:"network_id"`
	Timeout        time.Duration `koanf:"timeout" validate:"min=1s"`
	RateLimitRPS   float64       `koanf:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst int           `koanf:"rate_limit_burst" validate:"min=1"`
	UserAgent      string        `koanf:"user_agent"`
}

// VictoriaConfig holds the time-series store settings. The metrics endpoints
// are optional; with Enabled false they answer 503.
//
// Environment Variables:
//   - VICTORIA_ENABLED, VICTORIA_URL, VICTORIA_TIMEOUT
//   - VICTORIA_BREAKER_THRESHOLD: consecutive failures before the circuit opens
//   - VICTORIA_BREAKER_COOLDOWN: how long the circuit stays open
type VictoriaConfig struct {
	Enabled          bool          `koanf:"enabled"`
	URL              string        `koanf:"url" validate:"omitempty,url"`
	Timeout          time.Duration `koanf:"timeout" validate:"min=1s"`
	BreakerThreshold uint32        `koanf:"breaker_threshold" validate:"min=1"`
	BreakerCooldown  time.Duration `koanf:"breaker_cooldown" validate:"min=1s"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables: LOG_LEVEL, LOG_FORMAT, LOG_CALLER.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration via struct tags plus the cross-field
// rules the tags cannot express.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Victoria.Enabled && c.Victoria.URL == "" {
		return fmt.Errorf("victoria.url is required when victoria.enabled is set")
	}
	return nil
}

// Addr returns the host:port bind address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
