// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

// Package eero talks to the eero cloud API.
//
// The vendor exposes no official API; this client speaks the same endpoints
// the mobile app uses. Authentication is a two-step login: Login sends a
// verification code to the account's email or phone, VerifyLogin exchanges
// that code for a long-lived session token. The token is persisted to disk
// so sessions survive restarts.
//
// All payload-returning methods hand back the decoded JSON tree untouched;
// reshaping happens in internal/normalize. Every request passes through an
// outbound rate limiter so a misbehaving dashboard cannot hammer the vendor.
package eero
