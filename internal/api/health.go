// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"net/http"

	"github.com/meshboard/meshboard/internal/models"
)

// Health reports service liveness plus the state of both upstreams. The
// vendor session is checked locally; the time-series store is probed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	victoriaState := "disabled"
	if h.victoria != nil {
		victoriaState = "ok"
		if err := h.victoria.Health(r.Context()); err != nil {
			victoriaState = "down"
		}
	}

	respondJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]any{
		"status":        "ok",
		"authenticated": h.eero.Authenticated(),
		"victoria":      victoriaState,
	}))
}
