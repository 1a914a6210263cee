// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Device normalizes one raw client-device entity.
//
// The connectivity sub-record is the messiest part of the vendor payload:
// signal strength arrives as a '"-45 dBm"' string, the frequency as a raw
// MHz number, and bitrates either as preformatted strings or as a nested
// rate-info object carrying bits per second. All of those degrade to nil
// individually when absent or malformed.
func Device(raw map[string]any) map[string]any {
	if raw == nil {
		raw = map[string]any{}
	}

	url, _ := asString(raw["url"])
	conn := asMap(raw["connectivity"])

	var signal, signalBars, frequencyMHz any
	var rxBitrate, txBitrate any

	// Canonical keys win so an already normalized device round-trips
	// unchanged.
	signal = first(raw, "signal_strength")
	signalBars = first(raw, "signal_bars")
	frequencyMHz = first(raw, "frequency_mhz")
	rxBitrate = first(raw, "rx_bitrate")
	txBitrate = first(raw, "tx_bitrate")

	if conn != nil {
		if signal == nil {
			signal = parseSignalDBM(conn["signal"])
		}
		if signalBars == nil {
			signalBars = conn["score_bars"]
		}
		if frequencyMHz == nil {
			frequencyMHz = conn["frequency"]
		}
		if rxBitrate == nil {
			rxBitrate = first(conn, "rx_bitrate")
		}
		if txBitrate == nil {
			txBitrate = first(conn, "tx_bitrate")
		}
		if txBitrate == nil {
			txBitrate = bitrateFromRateInfo(conn["tx_rate_info"])
		}
		if rxBitrate == nil {
			rxBitrate = bitrateFromRateInfo(conn["rx_rate_info"])
		}
	}

	frequency := first(raw, "frequency")
	if frequency == nil {
		frequency = frequencyBand(frequencyMHz)
	}

	// Source eero: which mesh node the device is associated with.
	source := asMap(raw["source"])
	connectedTo := first(raw, "connected_to_eero")
	connectedToID := first(raw, "connected_to_eero_id")
	connectedToModel := first(raw, "connected_to_eero_model")
	if source != nil {
		if connectedTo == nil {
			connectedTo = nilIfEmpty(firstString(source, "location", "display_name"))
		}
		if connectedToModel == nil {
			connectedToModel = source["model"]
		}
		if connectedToID == nil {
			if srcURL, ok := asString(source["url"]); ok {
				connectedToID = idOrNil(eeroIDFromURL(srcURL))
			}
		}
	}

	profile := asMap(raw["profile"])
	profileID := first(raw, "profile_id")
	profileName := first(raw, "profile_name")
	if profile != nil {
		if profileName == nil {
			profileName = profile["name"]
		}
		if profileID == nil {
			if pURL, ok := asString(profile["url"]); ok {
				profileID = idOrNil(IDFromURL(pURL))
			}
		}
	}

	wireless := asBool(raw["wireless"])
	connectionType := "wired"
	if wireless {
		connectionType = "wireless"
	}

	return map[string]any{
		"id":   idOrNil(IDFromURL(url)),
		"url":  raw["url"],
		"mac":  raw["mac"],
		"ip":   raw["ip"],
		"ips":  ipsOrEmpty(raw, "ips"),
		"ipv4": raw["ipv4"],

		"nickname":     raw["nickname"],
		"hostname":     raw["hostname"],
		"display_name": nilIfEmpty(firstString(raw, "display_name", "nickname", "hostname")),
		"manufacturer": raw["manufacturer"],
		"model_name":   raw["model_name"],
		"device_type":  raw["device_type"],

		"connected":  asBool(raw["connected"]),
		"wireless":   wireless,
		"blocked":    firstBool(raw, "blocked", "blacklisted"),
		"paused":     asBool(raw["paused"]),
		"is_guest":   asBool(raw["is_guest"]),
		"is_private": asBool(raw["is_private"]),

		// Mechanically derived from the wireless flag, never supplied.
		"connection_type": connectionType,

		"signal_strength": signal,
		"signal_bars":     signalBars,
		"frequency":       frequency,
		"frequency_mhz":   frequencyMHz,
		"channel":         raw["channel"],
		"ssid":            raw["ssid"],
		"rx_bitrate":      rxBitrate,
		"tx_bitrate":      txBitrate,

		"connected_to_eero":       connectedTo,
		"connected_to_eero_id":    connectedToID,
		"connected_to_eero_model": connectedToModel,

		"profile_id":   profileID,
		"profile_name": profileName,

		"last_active":  raw["last_active"],
		"first_active": raw["first_active"],
		"network_id":   raw["network_id"],
		"subnet_kind":  raw["subnet_kind"],
		"auth":         raw["auth"],

		"_raw": raw,
	}
}

// parseSignalDBM parses a '"-45 dBm"' signal string into its integer dBm
// value. Anything that is not a string of that shape yields nil.
func parseSignalDBM(v any) any {
	s, ok := asString(v)
	if !ok || s == "" {
		return nil
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, " dBm"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return n
}

// frequencyBand classifies a raw MHz value into the band label shown in the
// UI. The vendor only operates 2.4GHz and 5GHz radios; 4000 MHz splits them.
func frequencyBand(mhz any) any {
	f, ok := asFloat(mhz)
	if !ok || f == 0 {
		return nil
	}
	if f > 4000 {
		return "5GHz"
	}
	return "2.4GHz"
}

// bitrateFromRateInfo derives a display bitrate from a nested rate-info
// sub-object carrying bits per second.
func bitrateFromRateInfo(v any) any {
	info := asMap(v)
	if info == nil {
		return nil
	}
	bps, ok := asFloat(info["rate_bps"])
	if !ok || bps <= 0 {
		return nil
	}
	return fmt.Sprintf("%.1f MBit/s", bps/1_000_000)
}

// ipsOrEmpty keeps the IP list a list when the vendor omits the key; an
// explicit null stays null.
func ipsOrEmpty(raw map[string]any, key string) any {
	v, ok := raw[key]
	if !ok {
		return []any{}
	}
	if s := asSlice(v); s != nil {
		return s
	}
	if v == nil {
		return nil
	}
	return []any{}
}
