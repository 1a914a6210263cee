// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

// Eero normalizes one raw mesh access-point unit.
//
// Alias resolution:
//   - is_gateway: gateway OR is_gateway
//   - is_primary: is_primary OR is_primary_node
//   - firmware_version: firmware_version, then os_version, then os
//   - location: bare string, or {"address": ...} / {"name": ...}
func Eero(raw map[string]any) map[string]any {
	if raw == nil {
		raw = map[string]any{}
	}

	url, _ := asString(raw["url"])

	location := raw["location"]
	if m := asMap(location); m != nil {
		location = first(m, "address", "name")
	}

	return map[string]any{
		"id":  idOrNil(IDFromURL(url)),
		"url": raw["url"],

		"serial":       raw["serial"],
		"mac_address":  raw["mac_address"],
		"model":        raw["model"],
		"model_number": raw["model_number"],
		"status":       raw["status"],
		"state":        raw["state"],
		"location":     location,

		"is_gateway": firstBool(raw, "is_gateway", "gateway"),
		"is_primary": firstBool(raw, "is_primary", "is_primary_node"),

		"wired":             asBool(raw["wired"]),
		"connection_type":   raw["connection_type"],
		"mesh_quality_bars": raw["mesh_quality_bars"],
		"ip_address":        raw["ip_address"],
		"using_wan":         raw["using_wan"],

		"connected_clients_count":          clientCount(raw["connected_clients_count"]),
		"connected_wired_clients_count":    raw["connected_wired_clients_count"],
		"connected_wireless_clients_count": raw["connected_wireless_clients_count"],

		"firmware_version": first(raw, "firmware_version", "os_version", "os"),
		"os_version":       first(raw, "os_version", "os"),

		"led_on":         raw["led_on"],
		"led_brightness": raw["led_brightness"],

		"uptime":       raw["uptime"],
		"cpu_usage":    raw["cpu_usage"],
		"memory_usage": raw["memory_usage"],
		"temperature":  raw["temperature"],

		"heartbeat_ok":       raw["heartbeat_ok"],
		"update_available":   raw["update_available"],
		"provides_wifi":      raw["provides_wifi"],
		"auto_provisioned":   raw["auto_provisioned"],
		"retrograde_capable": raw["retrograde_capable"],

		"last_heartbeat": raw["last_heartbeat"],
		"last_reboot":    raw["last_reboot"],
		"joined":         raw["joined"],

		"bands":              raw["bands"],
		"wifi_bssids":        raw["wifi_bssids"],
		"bssids_with_bands":  raw["bssids_with_bands"],
		"ethernet_addresses": raw["ethernet_addresses"],
		"ethernet_ports":     ethernetPorts(raw),
		"ipv6_addresses":     raw["ipv6_addresses"],

		"organization": raw["organization"],
		"power_info":   raw["power_info"],
		"power_saving": raw["power_saving"],
		"network":      raw["network"],

		"_raw": raw,
	}
}

// ethernetPorts flattens the ethernet_status.statuses list into per-port
// mappings, including neighbor identification when the vendor reports the
// far end of the cable. An already flattened ethernet_ports list passes
// through as-is.
func ethernetPorts(raw map[string]any) any {
	if s := asSlice(raw["ethernet_ports"]); s != nil {
		return s
	}

	ethStatus := asMap(raw["ethernet_status"])
	if ethStatus == nil {
		return nil
	}
	statuses := asSlice(ethStatus["statuses"])
	if len(statuses) == 0 {
		return nil
	}

	ports := make([]any, 0, len(statuses))
	for _, v := range statuses {
		port := asMap(v)
		if port == nil {
			continue
		}
		info := map[string]any{
			"port_name":        port["port_name"],
			"interface_number": port["interfaceNumber"],
			"has_carrier":      port["hasCarrier"],
			"speed":            port["speed"],
			"is_wan_port":      port["isWanPort"],
			"is_lte":           port["isLte"],
		}
		if meta := asMap(nested(port, "neighbor", "metadata")); meta != nil {
			info["neighbor_location"] = meta["location"]
			info["neighbor_port"] = meta["port_name"]
		}
		ports = append(ports, info)
	}
	return ports
}

// clientCount defaults the connected-clients counter to zero so the
// dashboard can always render a number.
func clientCount(v any) any {
	if n, ok := asInt(v); ok {
		return n
	}
	return 0
}
