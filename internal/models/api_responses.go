// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

// Package models holds the wire types of the Meshboard HTTP API: the
// response envelope and the request bodies of the mutating endpoints.
//
// Entity payloads (networks, devices, eeros, profiles) are generic mappings
// produced by internal/normalize, not structs; the vendor's schema drifts
// too often to pin it down field by field.
package models

import "time"

// APIResponse is the envelope every endpoint answers with.
//
// Status is "success" or "error". Data carries the payload on success;
// Error is populated on failure.
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata carries per-response observability fields. For list endpoints,
// Received/Returned expose how many raw elements the vendor sent versus how
// many survived normalization, so silent data loss is visible to clients.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Received  *int      `json:"received,omitempty"`
	Returned  *int      `json:"returned,omitempty"`
}

// APIError is a structured error payload.
//
// Codes used by the API:
//   - VALIDATION_ERROR: bad request input
//   - AUTHENTICATION_ERROR: no vendor session, or the vendor rejected it
//   - UPSTREAM_ERROR: the vendor API or time-series store failed
//   - UNAVAILABLE: the feature is disabled by configuration
//   - NOT_FOUND: unknown route or resource
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewSuccessResponse builds a success envelope around data.
func NewSuccessResponse(data any) APIResponse {
	return APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	}
}

// NewListResponse builds a success envelope with batch counts.
func NewListResponse(data any, received, returned int) APIResponse {
	return APIResponse{
		Status: "success",
		Data:   data,
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
			Received:  &received,
			Returned:  &returned,
		},
	}
}

// NewErrorResponse builds an error envelope.
func NewErrorResponse(code, message string) APIResponse {
	return APIResponse{
		Status:   "error",
		Metadata: Metadata{Timestamp: time.Now().UTC()},
		Error:    &APIError{Code: code, Message: message},
	}
}
