// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

// Package api implements the Meshboard HTTP API: the dashboard-facing
// endpoints that authenticate against the eero cloud, reshape vendor
// payloads through internal/normalize, and proxy time-series queries.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/meshboard/meshboard/internal/eero"
	"github.com/meshboard/meshboard/internal/logging"
	"github.com/meshboard/meshboard/internal/metrics"
	"github.com/meshboard/meshboard/internal/models"
	"github.com/meshboard/meshboard/internal/normalize"
	"github.com/meshboard/meshboard/internal/victoria"
)

// Handler carries the upstream clients shared by all endpoints.
//
// Thread Safety: safe for concurrent use. The resolved network ID is the
// only mutable state and sits behind a mutex.
type Handler struct {
	eero     eero.Client
	victoria victoria.Client // nil when the time-series store is disabled
	validate *validator.Validate

	mu         sync.Mutex
	pinnedID   string // network pinned by configuration, may be empty
	resolvedID string // first account network, cached after lookup
}

// NewHandler creates the endpoint handler set. victoriaClient may be nil;
// the metrics endpoints then answer 503. networkID pins the served network;
// empty means "the account's first network".
func NewHandler(eeroClient eero.Client, victoriaClient victoria.Client, networkID string) *Handler {
	return &Handler{
		eero:     eeroClient,
		victoria: victoriaClient,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		pinnedID: networkID,
	}
}

// resolveNetworkID returns the network all single-network endpoints operate
// on: the configured one, or the account's first network, resolved once and
// cached for the life of the process.
func (h *Handler) resolveNetworkID(ctx context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pinnedID != "" {
		return h.pinnedID, nil
	}
	if h.resolvedID != "" {
		return h.resolvedID, nil
	}

	payload, err := h.eero.AccountInfo(ctx)
	if err != nil {
		return "", err
	}
	account := normalize.ExtractData(payload)
	networks := normalize.ExtractList(account["networks"], "data")
	if len(networks) == 0 {
		return "", fmt.Errorf("eero: account has no networks")
	}
	url, _ := networks[0]["url"].(string)
	id := normalize.IDFromURL(url)
	if id == "" {
		return "", fmt.Errorf("eero: first account network carries no id")
	}

	h.resolvedID = id
	logging.Ctx(ctx).Info().Str("network_id", id).Msg("resolved default network")
	return id, nil
}

// respondJSON writes v as the response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, models.NewErrorResponse(code, message))
}

// decodeRequest decodes and validates a JSON request body into dst.
// A false return means the error response has already been written.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "invalid JSON request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, validationMessage(err))
		return false
	}
	return true
}

// recordBatch updates batch metrics and flags silently dropped elements.
func recordBatch(ctx context.Context, entity string, received, returned int) {
	metrics.RecordNormalizedBatch(entity, received, returned)
	if received != returned {
		logging.Ctx(ctx).Warn().
			Str("entity", entity).
			Int("received", received).
			Int("returned", returned).
			Msg("vendor list carried elements that could not be normalized")
	}
}
