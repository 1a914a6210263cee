// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

// Profile normalizes one raw parental-control profile together with its
// embedded member devices. Members are reduced to the handful of fields the
// dashboard shows in profile views; the full device record lives on the
// devices endpoint.
//
// device_count is always the length of the resolved member list. The vendor
// ships its own count field but it has been observed to disagree with the
// embedded list, so it is not trusted.
func Profile(raw map[string]any) map[string]any {
	if raw == nil {
		raw = map[string]any{}
	}

	url, _ := asString(raw["url"])

	devicesRaw := asSlice(raw["devices"])
	if devicesRaw == nil {
		// Legacy shape: {"devices": {"data": [...]}}.
		if m := asMap(raw["devices"]); m != nil {
			devicesRaw = asSlice(m["data"])
		}
	}

	devices := make([]any, 0, len(devicesRaw))
	deviceIDs := make([]any, 0, len(devicesRaw))
	for _, v := range devicesRaw {
		dev := asMap(v)
		if dev == nil {
			continue
		}
		devURL, _ := asString(dev["url"])
		devID := firstString(dev, "id")
		if devID == "" {
			devID = deviceIDFromURL(devURL)
		}
		if devID != "" {
			deviceIDs = append(deviceIDs, devID)
		}
		devices = append(devices, map[string]any{
			"id":           idOrNil(devID),
			"url":          devURL,
			"mac":          dev["mac"],
			"nickname":     dev["nickname"],
			"hostname":     dev["hostname"],
			"display_name": nilIfEmpty(firstString(dev, "display_name", "nickname", "hostname")),
			"manufacturer": dev["manufacturer"],
			"connected":    asBool(dev["connected"]),
			"wireless":     asBool(dev["wireless"]),
			"paused":       asBool(dev["paused"]),
		})
	}

	return map[string]any{
		"id":           idOrNil(IDFromURL(url)),
		"url":          raw["url"],
		"name":         raw["name"],
		"paused":       asBool(raw["paused"]),
		"device_count": len(devices),
		"device_ids":   deviceIDs,
		"devices":      devices,
		"_raw":         raw,
	}
}
