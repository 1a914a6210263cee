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

// ListEeros returns the mesh units of the default network.
func (h *Handler) ListEeros(w http.ResponseWriter, r *http.Request) {
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.Eeros(r.Context(), networkID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	items, received := normalize.ExtractListCounted(payload, "eeros")
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalize.Eero(item))
	}

	recordBatch(r.Context(), "eero", received, len(out))
	respondJSON(w, http.StatusOK, models.NewListResponse(out, received, len(out)))
}

// GetEero returns one mesh unit.
func (h *Handler) GetEero(w http.ResponseWriter, r *http.Request) {
	payload, err := h.eero.EeroNode(r.Context(), chi.URLParam(r, "eeroID"))
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	unit := normalize.Eero(normalize.ExtractData(payload))
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(unit))
}

// RebootEero reboots one mesh unit.
func (h *Handler) RebootEero(w http.ResponseWriter, r *http.Request) {
	payload, err := h.eero.RebootEero(r.Context(), chi.URLParam(r, "eeroID"))
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{
		Success: normalize.CheckSuccess(payload),
	}))
}

// SetLED switches a unit's status LED.
func (h *Handler) SetLED(w http.ResponseWriter, r *http.Request) {
	var req models.LEDRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	payload, err := h.eero.SetLED(r.Context(), chi.URLParam(r, "eeroID"), req.On)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{
		Success: normalize.CheckSuccess(payload),
	}))
}

// SetLEDBrightness sets a unit's status LED brightness, 0-100.
func (h *Handler) SetLEDBrightness(w http.ResponseWriter, r *http.Request) {
	var req models.LEDBrightnessRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	payload, err := h.eero.SetLEDBrightness(r.Context(), chi.URLParam(r, "eeroID"), req.Brightness)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{
		Success: normalize.CheckSuccess(payload),
	}))
}
