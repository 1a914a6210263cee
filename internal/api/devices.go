// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/meshboard/meshboard/internal/models"
	"github.com/meshboard/meshboard/internal/normalize"
)

// deviceFilters are the optional query-string filters of the device list.
type deviceFilters struct {
	connectedOnly bool
	profileID     string
	ids           map[string]bool // matches the device ID or its bare MAC
}

func parseDeviceFilters(r *http.Request) deviceFilters {
	params := r.URL.Query()
	f := deviceFilters{
		connectedOnly: params.Get("connected_only") == "true" || params.Get("connected_only") == "1",
		profileID:     params.Get("profile_id"),
	}
	if csv := params.Get("device_ids"); csv != "" {
		f.ids = make(map[string]bool)
		for _, id := range strings.Split(csv, ",") {
			if id = strings.TrimSpace(id); id != "" {
				f.ids[id] = true
			}
		}
	}
	return f
}

func (f deviceFilters) active() bool {
	return f.connectedOnly || f.profileID != "" || f.ids != nil
}

// match decides on the normalized device shape.
func (f deviceFilters) match(device map[string]any) bool {
	if f.connectedOnly {
		if connected, _ := device["connected"].(bool); !connected {
			return false
		}
	}
	if f.profileID != "" && device["profile_id"] != f.profileID {
		return false
	}
	if f.ids != nil {
		id, _ := device["id"].(string)
		mac, _ := device["mac"].(string)
		bareMAC := strings.ToLower(strings.ReplaceAll(mac, ":", ""))
		if !f.ids[id] && (bareMAC == "" || !f.ids[bareMAC]) {
			return false
		}
	}
	return true
}

// ListDevices returns the client devices of the default network. Optional
// filters: connected_only, profile_id, and device_ids (comma-separated,
// matched against the device ID or its MAC without colons).
func (h *Handler) ListDevices(w http.ResponseWriter, r *http.Request) {
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.Devices(r.Context(), networkID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	items, received := normalize.ExtractListCounted(payload, "devices")
	normalized := make([]map[string]any, 0, len(items))
	for _, item := range items {
		normalized = append(normalized, normalize.Device(item))
	}
	recordBatch(r.Context(), "device", received, len(normalized))

	filters := parseDeviceFilters(r)
	out := normalized
	if filters.active() {
		out = make([]map[string]any, 0, len(normalized))
		for _, device := range normalized {
			if filters.match(device) {
				out = append(out, device)
			}
		}
	}

	respondJSON(w, http.StatusOK, models.NewListResponse(out, received, len(out)))
}

// GetDevice returns one client device.
func (h *Handler) GetDevice(w http.ResponseWriter, r *http.Request) {
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.Device(r.Context(), networkID, chi.URLParam(r, "deviceID"))
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	device := normalize.Device(normalize.ExtractData(payload))
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(device))
}

// BlockDevice blocks or unblocks a client device.
func (h *Handler) BlockDevice(w http.ResponseWriter, r *http.Request) {
	var req models.BlockDeviceRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.BlockDevice(r.Context(), networkID, chi.URLParam(r, "deviceID"), req.Blocked)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{
		Success: normalize.CheckSuccess(payload),
	}))
}

// PrioritizeDevice grants a client device bandwidth priority. The optional
// duration_minutes query parameter bounds the priority window; zero or
// absent keeps it until removed.
func (h *Handler) PrioritizeDevice(w http.ResponseWriter, r *http.Request) {
	duration := 0
	if s := r.URL.Query().Get("duration_minutes"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, codeValidation, "duration_minutes must be a non-negative integer")
			return
		}
		duration = n
	}
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.PrioritizeDevice(r.Context(), networkID, chi.URLParam(r, "deviceID"), duration)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{
		Success: normalize.CheckSuccess(payload),
	}))
}

// DeprioritizeDevice removes a client device's bandwidth priority.
func (h *Handler) DeprioritizeDevice(w http.ResponseWriter, r *http.Request) {
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.DeprioritizeDevice(r.Context(), networkID, chi.URLParam(r, "deviceID"))
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{
		Success: normalize.CheckSuccess(payload),
	}))
}

// SetDeviceNickname renames a client device.
func (h *Handler) SetDeviceNickname(w http.ResponseWriter, r *http.Request) {
	var req models.NicknameRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.SetDeviceNickname(r.Context(), networkID, chi.URLParam(r, "deviceID"), req.Nickname)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{
		Success: normalize.CheckSuccess(payload),
	}))
}
