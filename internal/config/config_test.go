// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 5010 {
		t.Errorf("Server.Port = %d, want 5010", cfg.Server.Port)
	}
	if cfg.Eero.APIURL != "https://api-user.e2ro.com" {
		t.Errorf("Eero.APIURL = %s", cfg.Eero.APIURL)
	}
	if cfg.Victoria.Enabled {
		t.Error("Victoria should be disabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}
	if cfg.Eero.RateLimitRPS != 2 {
		t.Errorf("Eero.RateLimitRPS = %v, want 2", cfg.Eero.RateLimitRPS)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("EERO_NETWORK_ID", "123456")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Eero.NetworkID != "123456" {
		t.Errorf("Eero.NetworkID = %s, want 123456", cfg.Eero.NetworkID)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != "https://a.example" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoad_UnknownEnvIgnored(t *testing.T) {
	t.Setenv("RANDOM_UNRELATED_VAR", "boom")

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error with unrelated env var: %v", err)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("server:\n  port: 6001\neero:\n  network_id: \"777\"\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 6001 {
		t.Errorf("Server.Port = %d, want 6001", cfg.Server.Port)
	}
	if cfg.Eero.NetworkID != "777" {
		t.Errorf("Eero.NetworkID = %s, want 777", cfg.Eero.NetworkID)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 6001\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want env to win over file", cfg.Server.Port)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad_port", func(c *Config) { c.Server.Port = 0 }},
		{"bad_eero_url", func(c *Config) { c.Eero.APIURL = "not a url" }},
		{"missing_session_file", func(c *Config) { c.Eero.SessionFile = "" }},
		{"bad_log_level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad_log_format", func(c *Config) { c.Logging.Format = "xml" }},
		{"victoria_enabled_without_url", func(c *Config) {
			c.Victoria.Enabled = true
			c.Victoria.URL = ""
		}},
		{"zero_rate_limit_rps", func(c *Config) { c.Eero.RateLimitRPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted invalid config")
			}
		})
	}
}

func TestValidate_VictoriaEnabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.Victoria.Enabled = true
	cfg.Victoria.URL = "http://victoria:8428"

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	sc := ServerConfig{Host: "127.0.0.1", Port: 5010}
	if got := sc.Addr(); got != "127.0.0.1:5010" {
		t.Errorf("Addr() = %s", got)
	}
}

func TestLoad_DurationParsing(t *testing.T) {
	t.Setenv("EERO_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Eero.Timeout != 45*time.Second {
		t.Errorf("Eero.Timeout = %v, want 45s", cfg.Eero.Timeout)
	}
}
