// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

// Network normalizes one raw network entity. Beyond the identity and status
// fields the network carries a long tail of settings sub-mappings that the
// dashboard renders verbatim; those pass through untouched.
//
// Alias resolution:
//   - isp_name: isp_name, then geo_ip.isp, then isp.name, then a bare isp
//     scalar stringified
//   - public_ip: public_ip, then wan_ip
//   - speed_test: speed_test, then speed
func Network(raw map[string]any) map[string]any {
	if raw == nil {
		raw = map[string]any{}
	}

	url, _ := asString(raw["url"])

	ispName := firstString(raw, "isp_name")
	if ispName == "" {
		if s, ok := asString(nested(raw, "geo_ip", "isp")); ok {
			ispName = s
		}
	}
	if ispName == "" {
		if isp := asMap(raw["isp"]); isp != nil {
			ispName, _ = asString(isp["name"])
		} else if raw["isp"] != nil {
			ispName = stringify(raw["isp"])
		}
	}

	out := map[string]any{
		"id":     idOrNil(IDFromURL(url)),
		"url":    raw["url"],
		"name":   raw["name"],
		"status": Status(raw["status"]),

		"isp_name":  nilIfEmpty(ispName),
		"public_ip": nilIfEmpty(firstString(raw, "public_ip", "wan_ip")),

		"guest_network_enabled": asBool(raw["guest_network_enabled"]),
		"guest_network_name":    raw["guest_network_name"],

		"speed_test": first(raw, "speed_test", "speed"),
		"health":     raw["health"],
		"settings":   raw["settings"],
		"dhcp":       raw["dhcp"],

		"backup_internet_enabled": asBool(raw["backup_internet_enabled"]),
		"power_saving":            asBool(raw["power_saving"]),
		"sqm":                     asBool(raw["sqm"]),
		"upnp":                    asBool(raw["upnp"]),
		"thread":                  asBool(raw["thread"]),
		"band_steering":           asBool(raw["band_steering"]),
		"wpa3":                    asBool(raw["wpa3"]),
		"ipv6_upstream":           asBool(raw["ipv6_upstream"]),

		"owner":           raw["owner"],
		"display_name":    raw["display_name"],
		"wan_type":        raw["wan_type"],
		"gateway_ip":      raw["gateway_ip"],
		"connection_mode": raw["connection_mode"],
		"created_at":      raw["created_at"],
		"geo_ip":          raw["geo_ip"],
		"dns":             raw["dns"],
		"premium_dns":     raw["premium_dns"],
		"updates":         raw["updates"],
		"ddns":            raw["ddns"],
		"homekit":         raw["homekit"],
		"ip_settings":     raw["ip_settings"],
		"premium_details": raw["premium_details"],

		"amazon_account_linked": asBool(raw["amazon_account_linked"]),
		"alexa_skill":           asBool(raw["alexa_skill"]),
		"last_reboot":           raw["last_reboot"],

		"_raw": raw,
	}
	return out
}

// DHCP reshapes the vendor's {"mode": ..., "custom": {...}} DHCP payload
// into the flat addressing fields the dashboard expects. Returns nil when
// nothing resolvable is present.
func DHCP(raw any) map[string]any {
	dhcp := asMap(raw)
	if dhcp == nil {
		return nil
	}

	custom := asMap(first(dhcp, "custom", "custom_v2"))
	if custom == nil {
		custom = map[string]any{}
	}

	// Empty strings fall through to the flat key, same as a missing one.
	pick := func(customKey, flatKey string) any {
		if v := custom[customKey]; v != nil && v != "" {
			return v
		}
		return dhcp[flatKey]
	}

	lease := dhcp["lease_time_seconds"]
	if !leaseSet(lease) {
		lease = custom["lease_time_seconds"]
	}
	if !leaseSet(lease) {
		lease = 86400 // vendor default: 24h leases
	}

	out := map[string]any{
		"mode":               dhcp["mode"],
		"starting_address":   pick("start_ip", "starting_address"),
		"ending_address":     pick("end_ip", "ending_address"),
		"subnet_mask":        pick("subnet_mask", "subnet_mask"),
		"subnet_ip":          pick("subnet_ip", "subnet_ip"),
		"lease_time_seconds": lease,
	}

	if !addrSet(out["starting_address"]) && !addrSet(out["ending_address"]) && !addrSet(out["subnet_mask"]) {
		return nil
	}
	return out
}

func addrSet(v any) bool {
	return v != nil && v != ""
}

// leaseSet treats zero and empty values as unset so they fall through to
// the 24h default.
func leaseSet(v any) bool {
	switch n := v.(type) {
	case nil:
		return false
	case float64:
		return n != 0
	case int:
		return n != 0
	case string:
		return n != ""
	case bool:
		return n
	}
	return true
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
