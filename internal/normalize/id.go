// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

import (
	"regexp"
	"strings"
)

// The vendor never exposes bare IDs; they are the trailing segment of
// resource URLs like /2.2/networks/123456 or /2.2/eeros/eero123/.

// IDFromURL returns the final non-empty path segment of a resource URL, or
// "" when none can be found.
func IDFromURL(url string) string {
	if url == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

var (
	eeroURLPattern   = regexp.MustCompile(`/eeros/([^/]+)`)
	deviceURLPattern = regexp.MustCompile(`/devices/([^/]+)`)
)

// eeroIDFromURL extracts the eero node ID embedded anywhere in a URL, used
// for a device's source link which carries extra path segments.
func eeroIDFromURL(url string) string {
	if m := eeroURLPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// deviceIDFromURL extracts the device ID embedded anywhere in a URL.
func deviceIDFromURL(url string) string {
	if m := deviceURLPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// idOrNil converts an extracted ID to the nullable form stored in
// normalized mappings.
func idOrNil(id string) any {
	if id == "" {
		return nil
	}
	return id
}
