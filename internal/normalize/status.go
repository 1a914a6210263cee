// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

import "strings"

// statusTable maps the vendor's status vocabulary (LED colors and connection
// verbs) onto the values the dashboard understands.
var statusTable = map[string]string{
	"green":        "online",
	"connected":    "online",
	"red":          "offline",
	"disconnected": "offline",
	"yellow":       "warning",
}

// Status normalizes a status value that may arrive as a bare string, a
// {"status": ...} sub-mapping, or be absent. Unrecognized values pass
// through lower-cased so a previously normalized value stays stable.
func Status(v any) string {
	if v == nil {
		return "unknown"
	}
	if m := asMap(v); m != nil {
		if s, ok := asString(m["status"]); ok {
			v = s
		} else {
			v = "unknown"
		}
	}
	s := strings.ToLower(stringify(v))
	if mapped, ok := statusTable[s]; ok {
		return mapped
	}
	return s
}
