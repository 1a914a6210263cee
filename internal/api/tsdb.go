// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meshboard/meshboard/internal/models"
)

// defaultQueryStep is the range-query resolution when the client sends none.
const defaultQueryStep = 60 * time.Second

// requireVictoria rejects the request when no time-series store is
// configured. A false return means the response has been written.
func (h *Handler) requireVictoria(w http.ResponseWriter) bool {
	if h.victoria == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "time-series store is not configured")
		return false
	}
	return true
}

// QueryTSDB proxies an instant query. Query parameters: query (required),
// time (RFC 3339 or Unix seconds, default now).
func (h *Handler) QueryTSDB(w http.ResponseWriter, r *http.Request) {
	if !h.requireVictoria(w) {
		return
	}
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, codeValidation, "query parameter is required")
		return
	}
	ts, err := parseTimeParam(r.URL.Query().Get("time"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "time must be RFC 3339 or Unix seconds")
		return
	}

	raw, err := h.victoria.Query(r.Context(), query, ts)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(raw))
}

// QueryRangeTSDB proxies a range query. Query parameters: query and start
// (required), end (default now), step (duration or seconds, default 60s).
func (h *Handler) QueryRangeTSDB(w http.ResponseWriter, r *http.Request) {
	if !h.requireVictoria(w) {
		return
	}
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, codeValidation, "query parameter is required")
		return
	}
	win, msg := parseRangeWindow(r, defaultQueryStep)
	if msg != "" {
		respondError(w, http.StatusBadRequest, codeValidation, msg)
		return
	}

	raw, err := h.victoria.QueryRange(r.Context(), query, win.start, win.end, win.step)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(raw))
}

// LabelValuesTSDB proxies a label-values lookup, used by the dashboard to
// populate metric pickers.
func (h *Handler) LabelValuesTSDB(w http.ResponseWriter, r *http.Request) {
	if !h.requireVictoria(w) {
		return
	}
	raw, err := h.victoria.LabelValues(r.Context(), chi.URLParam(r, "label"))
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(raw))
}

// HealthTSDB probes the time-series store directly, bypassing the breaker.
func (h *Handler) HealthTSDB(w http.ResponseWriter, r *http.Request) {
	if !h.requireVictoria(w) {
		return
	}
	if err := h.victoria.Health(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, codeUpstream, "time-series store is unhealthy")
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]any{"status": "ok"}))
}

// rangeWindow is a validated query_range window.
type rangeWindow struct {
	start, end time.Time
	step       time.Duration
}

// parseRangeWindow pulls start/end/step from the query string. start is
// required; end defaults to now. An empty message means the window is valid.
func parseRangeWindow(r *http.Request, defaultStep time.Duration) (rangeWindow, string) {
	params := r.URL.Query()

	start, err := parseTimeParam(params.Get("start"))
	if err != nil || start.IsZero() {
		return rangeWindow{}, "start must be RFC 3339 or Unix seconds"
	}
	end, err := parseTimeParam(params.Get("end"))
	if err != nil {
		return rangeWindow{}, "end must be RFC 3339 or Unix seconds"
	}
	if end.IsZero() {
		end = time.Now()
	}
	if end.Before(start) {
		return rangeWindow{}, "end must not precede start"
	}

	step := defaultStep
	if s := params.Get("step"); s != "" {
		step, err = parseStepParam(s)
		if err != nil {
			return rangeWindow{}, "step must be a duration or seconds"
		}
	}
	return rangeWindow{start: start, end: end, step: step}, ""
}

// rangeSet runs one query_range per named series and bundles the raw
// results under their names.
func (h *Handler) rangeSet(w http.ResponseWriter, r *http.Request, win rangeWindow, series map[string]string) (map[string]any, bool) {
	out := make(map[string]any, len(series))
	for name, query := range series {
		raw, err := h.victoria.QueryRange(r.Context(), query, win.start, win.end, win.step)
		if err != nil {
			respondUpstreamError(w, r, err)
			return nil, false
		}
		out[name] = raw
	}
	return out, true
}

// SpeedTestHistory returns download and upload speed series for charts.
func (h *Handler) SpeedTestHistory(w http.ResponseWriter, r *http.Request) {
	if !h.requireVictoria(w) {
		return
	}
	win, msg := parseRangeWindow(r, 5*time.Minute)
	if msg != "" {
		respondError(w, http.StatusBadRequest, codeValidation, msg)
		return
	}
	out, ok := h.rangeSet(w, r, win, map[string]string{
		"download": "eero_speed_download_mbps",
		"upload":   "eero_speed_upload_mbps",
	})
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(out))
}

// DeviceSignalHistory returns signal strength and connection score series
// for one device. The exporter labels devices by MAC without colons.
func (h *Handler) DeviceSignalHistory(w http.ResponseWriter, r *http.Request) {
	if !h.requireVictoria(w) {
		return
	}
	win, msg := parseRangeWindow(r, time.Minute)
	if msg != "" {
		respondError(w, http.StatusBadRequest, codeValidation, msg)
		return
	}
	deviceID := promLabelValue(chi.URLParam(r, "deviceID"))
	out, ok := h.rangeSet(w, r, win, map[string]string{
		"signal_strength":  `eero_device_signal_strength_dbm{device_id="` + deviceID + `"}`,
		"connection_score": `eero_device_connection_score_bars{device_id="` + deviceID + `"}`,
	})
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(out))
}

// DeviceBandwidthHistory is the legacy alias of DeviceSignalHistory. The
// exporter has no per-device bandwidth series, so the signal series is
// returned under the rx/tx keys older dashboards chart.
func (h *Handler) DeviceBandwidthHistory(w http.ResponseWriter, r *http.Request) {
	if !h.requireVictoria(w) {
		return
	}
	win, msg := parseRangeWindow(r, time.Minute)
	if msg != "" {
		respondError(w, http.StatusBadRequest, codeValidation, msg)
		return
	}
	deviceID := promLabelValue(chi.URLParam(r, "deviceID"))
	raw, err := h.victoria.QueryRange(r.Context(),
		`eero_device_signal_strength_dbm{device_id="`+deviceID+`"}`,
		win.start, win.end, win.step)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]any{
		"rx": raw,
		"tx": raw,
	}))
}

// EeroMeshQuality returns the mesh quality bar series for one mesh unit,
// labeled by serial number.
func (h *Handler) EeroMeshQuality(w http.ResponseWriter, r *http.Request) {
	if !h.requireVictoria(w) {
		return
	}
	win, msg := parseRangeWindow(r, 5*time.Minute)
	if msg != "" {
		respondError(w, http.StatusBadRequest, codeValidation, msg)
		return
	}
	serial := promLabelValue(chi.URLParam(r, "serial"))
	out, ok := h.rangeSet(w, r, win, map[string]string{
		"mesh_quality": `eero_eero_mesh_quality_bars{eero_id="` + serial + `"}`,
	})
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(out))
}

// NetworkClientCount returns connected client counts over time: total,
// wireless, and wired, plus the legacy client_count alias for total.
func (h *Handler) NetworkClientCount(w http.ResponseWriter, r *http.Request) {
	if !h.requireVictoria(w) {
		return
	}
	win, msg := parseRangeWindow(r, 5*time.Minute)
	if msg != "" {
		respondError(w, http.StatusBadRequest, codeValidation, msg)
		return
	}
	out, ok := h.rangeSet(w, r, win, map[string]string{
		"total":    "eero_network_clients_count",
		"wireless": `count(eero_device_connected{connection_type="wireless"} == 1)`,
		"wired":    `count(eero_device_connected{connection_type="wired"} == 1)`,
	})
	if !ok {
		return
	}
	out["client_count"] = out["total"]
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(out))
}

// promLabelValue escapes a string for use inside a PromQL label matcher.
func promLabelValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// parseTimeParam accepts RFC 3339 or Unix seconds (fractional allowed).
// Empty input yields the zero time.
func parseTimeParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(sec * 1000)).UTC(), nil
}

// parseStepParam accepts a Go duration ("30s", "5m") or bare seconds.
func parseStepParam(s string) (time.Duration, error) {
	if s == "" {
		return defaultQueryStep, nil
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d, nil
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if sec <= 0 {
		return 0, fmt.Errorf("step must be positive")
	}
	return time.Duration(sec * float64(time.Second)), nil
}
