// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meshboard/meshboard/internal/config"
	"github.com/meshboard/meshboard/internal/middleware"
)

// NewRouter assembles the full HTTP surface: the /api endpoints, the
// Prometheus scrape endpoint, and the static frontend when configured.
func NewRouter(cfg *config.Config, h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.Timeout))
	r.Use(middleware.PrometheusMetrics)

	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if !cfg.Server.RateLimitDisabled && cfg.Server.RateLimitRequests > 0 {
		r.Use(httprate.LimitByIP(cfg.Server.RateLimitRequests, cfg.Server.RateLimitWindow))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/verify", h.VerifyLogin)
			r.Post("/logout", h.Logout)
			r.Get("/status", h.AuthStatus)
		})

		r.Route("/networks", func(r chi.Router) {
			r.Get("/", h.ListNetworks)
			r.Route("/{networkID}", func(r chi.Router) {
				r.Get("/", h.GetNetwork)
				r.Get("/dhcp", h.GetDHCP)
				r.Put("/guest", h.SetGuestNetwork)
				r.Post("/speedtest", h.RunSpeedTest)
				r.Post("/set-preferred", h.SetPreferredNetwork)
			})
		})

		r.Route("/devices", func(r chi.Router) {
			r.Get("/", h.ListDevices)
			r.Route("/{deviceID}", func(r chi.Router) {
				r.Get("/", h.GetDevice)
				r.Put("/block", h.BlockDevice)
				r.Put("/nickname", h.SetDeviceNickname)
				r.Post("/prioritize", h.PrioritizeDevice)
				r.Post("/deprioritize", h.DeprioritizeDevice)
			})
		})

		r.Route("/eeros", func(r chi.Router) {
			r.Get("/", h.ListEeros)
			r.Route("/{eeroID}", func(r chi.Router) {
				r.Get("/", h.GetEero)
				r.Post("/reboot", h.RebootEero)
				r.Put("/led", h.SetLED)
				r.Put("/led/brightness", h.SetLEDBrightness)
			})
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", h.ListProfiles)
			r.Route("/{profileID}", func(r chi.Router) {
				r.Get("/", h.GetProfile)
				r.Put("/pause", h.PauseProfile)
			})
		})

		r.Route("/metrics", func(r chi.Router) {
			r.Get("/query", h.QueryTSDB)
			r.Get("/query_range", h.QueryRangeTSDB)
			r.Get("/labels/{label}/values", h.LabelValuesTSDB)
			r.Get("/health", h.HealthTSDB)
			r.Get("/speedtest/history", h.SpeedTestHistory)
			r.Get("/devices/{deviceID}/signal", h.DeviceSignalHistory)
			r.Get("/devices/{deviceID}/bandwidth", h.DeviceBandwidthHistory)
			r.Get("/eeros/{serial}/quality", h.EeroMeshQuality)
			r.Get("/network/client_count", h.NetworkClientCount)
		})
	})

	// Own instrumentation, scraped by the same store the dashboard reads.
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(notFoundHandler(cfg.Server.StaticDir))

	return r
}

// notFoundHandler answers unknown /api routes with a JSON 404 and serves
// the single-page frontend for everything else when a static directory is
// configured.
func notFoundHandler(staticDir string) http.HandlerFunc {
	var spa http.HandlerFunc
	if staticDir != "" {
		spa = spaHandler(staticDir)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if spa != nil && !strings.HasPrefix(r.URL.Path, "/api/") {
			spa(w, r)
			return
		}
		respondError(w, http.StatusNotFound, codeNotFound, "route not found")
	}
}
