// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package eero

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when a call requires a session and none is
// present, or the vendor rejected the stored session token.
var ErrNotAuthenticated = errors.New("eero: not authenticated")

// ErrVerificationRequired is returned by VerifyLogin when no login is in
// flight to verify.
var ErrVerificationRequired = errors.New("eero: no pending login to verify")

// APIError describes a non-2xx response from the vendor API.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("eero: API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("eero: API error %d", e.StatusCode)
}

// IsAuthError reports whether err means the session is invalid or missing.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}
