// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meshboard/meshboard/internal/models"
	"github.com/meshboard/meshboard/internal/normalize"
)

// networkParam returns the network targeted by the request: the path
// parameter, or the default network when the parameter is absent or
// "current".
func (h *Handler) networkParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "networkID")
	if id == "" || id == "current" {
		return h.resolveNetworkID(r.Context())
	}
	return id, nil
}

// ListNetworks returns the account's networks, normalized. The vendor
// embeds the network list in the account record.
func (h *Handler) ListNetworks(w http.ResponseWriter, r *http.Request) {
	payload, err := h.eero.Networks(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	account := normalize.ExtractData(payload)
	items, received := normalize.ExtractListCounted(account["networks"], "data")
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalize.Network(item))
	}

	recordBatch(r.Context(), "network", received, len(out))
	respondJSON(w, http.StatusOK, models.NewListResponse(out, received, len(out)))
}

// GetNetwork returns one network, normalized, with device and mesh-unit
// counts derived from the actual lists rather than the vendor's counters.
func (h *Handler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	networkID, err := h.networkParam(r)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.Network(r.Context(), networkID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	network := normalize.Network(normalize.ExtractData(payload))

	devicesRaw, err := h.eero.Devices(r.Context(), networkID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	eerosRaw, err := h.eero.Eeros(r.Context(), networkID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	network["device_count"] = len(normalize.ExtractList(devicesRaw, "devices"))
	network["eero_count"] = len(normalize.ExtractList(eerosRaw, "eeros"))

	respondJSON(w, http.StatusOK, models.NewSuccessResponse(network))
}

// SetPreferredNetwork pins the network that the single-network endpoints
// operate on, overriding the configured default for the life of the process.
func (h *Handler) SetPreferredNetwork(w http.ResponseWriter, r *http.Request) {
	networkID := chi.URLParam(r, "networkID")

	h.mu.Lock()
	h.pinnedID = networkID
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]any{
		"success":              true,
		"preferred_network_id": networkID,
	}))
}

// GetDHCP returns the network's DHCP addressing, reshaped into flat fields.
func (h *Handler) GetDHCP(w http.ResponseWriter, r *http.Request) {
	networkID, err := h.networkParam(r)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.Network(r.Context(), networkID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	dhcp := normalize.DHCP(normalize.ExtractData(payload)["dhcp"])
	if dhcp == nil {
		respondError(w, http.StatusNotFound, codeNotFound, "network carries no resolvable DHCP configuration")
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(dhcp))
}

// SetGuestNetwork enables or disables the guest SSID.
func (h *Handler) SetGuestNetwork(w http.ResponseWriter, r *http.Request) {
	var req models.GuestNetworkRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	networkID, err := h.networkParam(r)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.SetGuestNetwork(r.Context(), networkID, req.Enabled, req.Name)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{
		Success: normalize.CheckSuccess(payload),
	}))
}

// RunSpeedTest asks the gateway to start a speed test. The result lands on
// the network record once the test completes.
func (h *Handler) RunSpeedTest(w http.ResponseWriter, r *http.Request) {
	networkID, err := h.networkParam(r)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.RunSpeedTest(r.Context(), networkID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(normalize.ExtractData(payload)))
}
