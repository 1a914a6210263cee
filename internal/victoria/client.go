// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

// Package victoria queries the Prometheus-compatible time-series store that
// holds the network's bandwidth and signal history.
//
// Results pass through as raw JSON: the dashboard charts consume the
// Prometheus response format directly, so re-decoding it server-side would
// only add a failure mode. A circuit breaker keeps a dead store from tying
// up dashboard requests.
package victoria

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/meshboard/meshboard/internal/config"
	"github.com/meshboard/meshboard/internal/logging"
	"github.com/meshboard/meshboard/internal/metrics"
)

// maxResponseSize caps a single query response. Range queries over long
// windows can get big; 16MB is far beyond anything the dashboard draws.
const maxResponseSize = 16 << 20

// Client defines the time-series store operations the dashboard uses.
type Client interface {
	Query(ctx context.Context, query string, ts time.Time) (json.RawMessage, error)
	QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration) (json.RawMessage, error)
	LabelValues(ctx context.Context, label string) (json.RawMessage, error)
	Health(ctx context.Context) error
}

// HTTPClient implements Client against a VictoriaMetrics or Prometheus
// query endpoint, with circuit breaker protection.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[json.RawMessage]
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a time-series client from configuration.
//
// The breaker opens after the configured number of consecutive failures and
// stays open for the cooldown period; while open, queries fail fast with
// gobreaker.ErrOpenState instead of waiting out HTTP timeouts.
func NewHTTPClient(cfg *config.VictoriaConfig) *HTTPClient {
	cb := gobreaker.NewCircuitBreaker[json.RawMessage](gobreaker.Settings{
		Name:        "victoria",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		cb:      cb,
	}
}

// Query runs an instant query at ts (zero means "now").
func (c *HTTPClient) Query(ctx context.Context, query string, ts time.Time) (json.RawMessage, error) {
	params := url.Values{"query": {query}}
	if !ts.IsZero() {
		params.Set("time", formatTime(ts))
	}
	return c.get(ctx, "/api/v1/query", params)
}

// QueryRange runs a range query over [start, end] at the given step.
func (c *HTTPClient) QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration) (json.RawMessage, error) {
	params := url.Values{
		"query": {query},
		"start": {formatTime(start)},
		"end":   {formatTime(end)},
		"step":  {fmt.Sprintf("%gs", step.Seconds())},
	}
	return c.get(ctx, "/api/v1/query_range", params)
}

// LabelValues lists the known values of a label, used by the dashboard to
// populate metric pickers.
func (c *HTTPClient) LabelValues(ctx context.Context, label string) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/label/"+url.PathEscape(label)+"/values", nil)
}

// Health probes the store's health endpoint. Bypasses the breaker so a
// health check can observe recovery while the circuit is open.
func (c *HTTPClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("victoria: failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("victoria: health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("victoria: health check returned %d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.cb.Execute(func() (json.RawMessage, error) {
		reqURL := c.baseURL + path
		if len(params) > 0 {
			reqURL += "?" + params.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("victoria: failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("victoria: request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return nil, fmt.Errorf("victoria: failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("victoria: query returned %d: %s", resp.StatusCode, truncate(body, 256))
		}
		return json.RawMessage(body), nil
	})
	metrics.RecordUpstreamCall("victoria", time.Since(start), err)
	return raw, err
}

// formatTime renders a Unix timestamp with fractional seconds, the form both
// Prometheus and VictoriaMetrics accept.
func formatTime(t time.Time) string {
	return fmt.Sprintf("%.3f", float64(t.UnixMilli())/1000)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
