// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

// Package normalize converts raw eero cloud API responses into a stable,
// flat representation consumed by the HTTP handlers.
//
// The vendor API wraps every response in a {"meta": ..., "data": ...}
// envelope and has renamed, re-nested, and duplicated fields across API
// revisions (a firmware version may arrive under three different keys, a
// gateway flag under two). This package owns all of that reconciliation:
//
//   - ExtractData / ExtractList unwrap the response envelope.
//   - Network, Device, Eero, and Profile map one raw entity each onto a
//     fixed set of output keys, resolving aliases in a documented priority
//     order and deriving computed fields (frequency band, bitrates, IDs
//     embedded in resource URLs).
//   - Status maps the vendor's color/verb status vocabulary onto
//     online/offline/warning/unknown.
//   - CheckSuccess interprets envelope metadata for mutating calls.
//
// Every function is pure and total: malformed or missing input degrades the
// affected field to nil and never panics, so a single broken entity cannot
// take down a list endpoint. Outputs are freshly allocated on every call and
// safe for concurrent use.
package normalize
