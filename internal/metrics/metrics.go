// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

// Package metrics holds the Prometheus instrumentation for Meshboard:
// API endpoint latency and throughput, upstream call health for the vendor
// API and the time-series store, and normalization batch quality.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream Call Metrics (eero cloud API, time-series store)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream calls",
		},
		[]string{"upstream", "result"}, // result: "success", "failure"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Normalization Batch Metrics
	NormalizedEntities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "normalized_entities_total",
			Help: "Total number of vendor entities normalized",
		},
		[]string{"entity"}, // "network", "device", "eero", "profile"
	)

	NormalizationDrops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "normalization_drops_total",
			Help: "Total number of list elements dropped during normalization",
		},
		[]string{"entity"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active-request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamCall records one call to an upstream dependency.
func RecordUpstreamCall(upstream string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	UpstreamRequestsTotal.WithLabelValues(upstream, result).Inc()
	UpstreamRequestDuration.WithLabelValues(upstream).Observe(duration.Seconds())
}

// RecordNormalizedBatch records the outcome of normalizing one list payload:
// received is the raw element count, returned how many survived.
func RecordNormalizedBatch(entity string, received, returned int) {
	NormalizedEntities.WithLabelValues(entity).Add(float64(returned))
	if dropped := received - returned; dropped > 0 {
		NormalizationDrops.WithLabelValues(entity).Add(float64(dropped))
	}
}
