// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"net/http"

	"github.com/meshboard/meshboard/internal/models"
	"github.com/meshboard/meshboard/internal/normalize"
)

// Login starts the two-step vendor login. The vendor sends a verification
// code to the given email address or phone number.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	if err := h.eero.Login(r.Context(), req.Login); err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{Success: true}))
}

// VerifyLogin completes the login with the emailed code and returns the
// account record the vendor answers with.
func (h *Handler) VerifyLogin(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	payload, err := h.eero.VerifyLogin(r.Context(), req.Code)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(normalize.ExtractData(payload)))
}

// Logout drops the vendor session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.eero.Logout(r.Context()); err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.ActionResult{Success: true}))
}

// AuthStatus reports whether a vendor session token is present.
func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]any{
		"authenticated": h.eero.Authenticated(),
	}))
}
