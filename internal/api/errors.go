// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/meshboard/meshboard/internal/eero"
	"github.com/meshboard/meshboard/internal/logging"
)

// Error codes carried in the response envelope.
const (
	codeValidation     = "VALIDATION_ERROR"
	codeAuthentication = "AUTHENTICATION_ERROR"
	codeUpstream       = "UPSTREAM_ERROR"
	codeUnavailable    = "UNAVAILABLE"
	codeNotFound       = "NOT_FOUND"
	codeInternal       = "INTERNAL_ERROR"
)

// respondUpstreamError maps an error from an upstream client onto the API's
// status codes and error envelope.
func respondUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := mapUpstreamError(err)

	evt := logging.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		evt = logging.Ctx(r.Context()).Error()
	}
	evt.Err(err).Int("status", status).Msg("request failed")

	respondError(w, status, code, message)
}

// mapUpstreamError classifies an upstream failure.
//
//   - missing or rejected vendor session: 401
//   - verification attempted before login: 400
//   - circuit breaker open or store disabled: 503
//   - upstream timeout: 504
//   - any other vendor or store failure: 502
func mapUpstreamError(err error) (int, string, string) {
	switch {
	case eero.IsAuthError(err):
		return http.StatusUnauthorized, codeAuthentication, "not authenticated with the eero API"
	case errors.Is(err, eero.ErrVerificationRequired):
		return http.StatusBadRequest, codeValidation, "login must be started before verification"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable, codeUpstream, "time-series store temporarily unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeUpstream, "upstream request timed out"
	}

	var apiErr *eero.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "eero API request failed"
		}
		return http.StatusBadGateway, codeUpstream, msg
	}
	return http.StatusBadGateway, codeUpstream, "upstream request failed"
}

// validationMessage renders a validator error as a short field-level hint.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "max":
			return fe.Field() + " exceeds the maximum length"
		case "min":
			return fe.Field() + " is below the minimum value"
		default:
			return fe.Field() + " is invalid"
		}
	}
	return "invalid request"
}
