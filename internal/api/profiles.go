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

// ListProfiles returns the parental-control profiles of the default network.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.Profiles(r.Context(), networkID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	items, received := normalize.ExtractListCounted(payload, "profiles")
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalize.Profile(item))
	}

	recordBatch(r.Context(), "profile", received, len(out))
	respondJSON(w, http.StatusOK, models.NewListResponse(out, received, len(out)))
}

// GetProfile returns one profile with its member devices resolved.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.Profile(r.Context(), networkID, chi.URLParam(r, "profileID"))
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	profile := normalize.Profile(normalize.ExtractData(payload))
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

// PauseProfile pauses or resumes internet access for a profile.
func (h *Handler) PauseProfile(w http.ResponseWriter, r *http.Request) {
	var req models.PauseProfileRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	networkID, err := h.resolveNetworkID(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	payload, err := h.eero.PauseProfile(r.Context(), networkID, chi.URLParam(r, "profileID"), req.Paused)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{
		Success: normalize.CheckSuccess(payload),
	}))
}
