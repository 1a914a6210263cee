// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

// Package main is the entry point for the Meshboard server.
//
// Meshboard is a self-hosted dashboard backend for eero home mesh networks.
// It authenticates against the eero cloud API, reshapes the vendor's payloads
// into a stable schema for the frontend, and proxies bandwidth and signal
// history from a Prometheus-compatible time-series store (VictoriaMetrics).
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables and optional YAML file (Koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Eero client: rate-limited vendor API client with a persisted session
//  4. Victoria client (optional): time-series queries behind a circuit breaker
//  5. HTTP server: chi router with the /api endpoints, Prometheus scrape
//     endpoint, and the static frontend
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file, built-in defaults.
// The essentials:
//
//	export EERO_SESSION_FILE=/data/eero-session.json
//	export EERO_NETWORK_ID=123456        # optional, default: first network
//	export VICTORIA_ENABLED=true
//	export VICTORIA_URL=http://victoria:8428
//	export STATIC_DIR=/app/frontend/dist
//	./meshboard
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops accepting
// new connections and waits up to 10 seconds for in-flight requests.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/meshboard/meshboard/internal/api"
	"github.com/meshboard/meshboard/internal/config"
	"github.com/meshboard/meshboard/internal/eero"
	"github.com/meshboard/meshboard/internal/logging"
	"github.com/meshboard/meshboard/internal/victoria"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("eero_api", cfg.Eero.APIURL).
		Str("session_file", cfg.Eero.SessionFile).
		Bool("victoria_enabled", cfg.Victoria.Enabled).
		Msg("Configuration loaded")

	eeroClient, err := eero.NewHTTPClient(&cfg.Eero)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize eero client")
	}
	if eeroClient.Authenticated() {
		logging.Info().Msg("Restored eero session from disk")
	} else {
		logging.Info().Msg("No eero session yet - authenticate via /api/auth/login")
	}

	var victoriaClient victoria.Client
	if cfg.Victoria.Enabled {
		vc := victoria.NewHTTPClient(&cfg.Victoria)
		victoriaClient = vc

		probeCtx, probeCancel := context.WithTimeout(context.Background(), cfg.Victoria.Timeout)
		if err := vc.Health(probeCtx); err != nil {
			logging.Warn().Err(err).Msg("Time-series store not reachable (will retry on demand)")
		} else {
			logging.Info().Str("url", cfg.Victoria.URL).Msg("Connected to time-series store")
		}
		probeCancel()
	} else {
		logging.Info().Msg("Time-series store disabled - metrics endpoints answer 503")
	}

	handler := api.NewHandler(eeroClient, victoriaClient, cfg.Eero.NetworkID)
	router := api.NewRouter(cfg, handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
		return
	}
	logging.Info().Msg("Server stopped")
}
