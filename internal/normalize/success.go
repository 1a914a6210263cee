// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

// CheckSuccess interprets the outcome of a mutating vendor call. Newer API
// revisions return a full envelope whose meta.code carries the HTTP-style
// status; older ones returned a bare boolean. A mapping without an explicit
// failure code counts as success.
func CheckSuccess(raw any) bool {
	if raw == nil {
		return false
	}
	if b, ok := raw.(bool); ok {
		return b
	}
	if m := asMap(raw); m != nil {
		if meta := asMap(m["meta"]); meta != nil {
			if v, ok := meta["code"]; ok && v != nil {
				code, numeric := asFloat(v)
				return numeric && code == 200
			}
		}
		return true
	}
	return truthy(raw)
}
