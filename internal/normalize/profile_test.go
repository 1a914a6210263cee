// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

import (
	"reflect"
	"testing"
)

func sampleProfile() map[string]any {
	return map[string]any{
		"url":    "/2.2/networks/123456/profiles/p9",
		"name":   "Kids",
		"paused": false,
		// Vendor-reported count deliberately wrong; the resolved list wins.
		"device_count": float64(7),
		"devices": []any{
			map[string]any{
				"url":      "/2.2/networks/123456/devices/dev1",
				"nickname": "Tablet",
				"connected": true,
			},
			map[string]any{
				"url":      "/2.2/networks/123456/devices/dev2",
				"hostname": "kids-laptop",
			},
		},
	}
}

func TestProfile_Aggregation(t *testing.T) {
	got := Profile(sampleProfile())

	if got["id"] != "p9" {
		t.Errorf("id = %v, want p9", got["id"])
	}
	if got["name"] != "Kids" {
		t.Errorf("name = %v, want Kids", got["name"])
	}
	if got["device_count"] != 2 {
		t.Errorf("device_count = %v, want 2 (vendor count is not trusted)", got["device_count"])
	}
	if !reflect.DeepEqual(got["device_ids"], []any{"dev1", "dev2"}) {
		t.Errorf("device_ids = %v, want [dev1 dev2]", got["device_ids"])
	}

	devices := asSlice(got["devices"])
	if len(devices) != 2 {
		t.Fatalf("devices len = %d, want 2", len(devices))
	}
	first := asMap(devices[0])
	if first["display_name"] != "Tablet" {
		t.Errorf("member display_name = %v, want Tablet", first["display_name"])
	}
	second := asMap(devices[1])
	if second["display_name"] != "kids-laptop" {
		t.Errorf("member display_name = %v, want kids-laptop", second["display_name"])
	}
}

func TestProfile_LegacyDevicesWrapper(t *testing.T) {
	raw := map[string]any{
		"url":  "/2.2/networks/1/profiles/p1",
		"name": "Adults",
		"devices": map[string]any{
			"data": []any{
				map[string]any{"url": "/2.2/networks/1/devices/d1"},
			},
		},
	}

	got := Profile(raw)

	if got["device_count"] != 1 {
		t.Errorf("device_count = %v, want 1", got["device_count"])
	}
	if !reflect.DeepEqual(got["device_ids"], []any{"d1"}) {
		t.Errorf("device_ids = %v, want [d1]", got["device_ids"])
	}
}

func TestProfile_MembersWithoutResolvableID(t *testing.T) {
	raw := map[string]any{
		"url": "/2.2/networks/1/profiles/p1",
		"devices": []any{
			map[string]any{"url": "/2.2/networks/1/devices/d1"},
			map[string]any{"nickname": "no-url"},
			"garbage",
		},
	}

	got := Profile(raw)

	// Non-map members drop; members without a resolvable ID stay in the list
	// but contribute nothing to device_ids.
	if got["device_count"] != 2 {
		t.Errorf("device_count = %v, want 2", got["device_count"])
	}
	if !reflect.DeepEqual(got["device_ids"], []any{"d1"}) {
		t.Errorf("device_ids = %v, want [d1]", got["device_ids"])
	}
}

func TestProfile_EmptyAndNil(t *testing.T) {
	for _, raw := range []map[string]any{nil, {}} {
		got := Profile(raw)
		if got["device_count"] != 0 {
			t.Errorf("device_count = %v, want 0", got["device_count"])
		}
		if got["paused"] != false {
			t.Errorf("paused = %v, want false", got["paused"])
		}
		if s := asSlice(got["devices"]); s == nil || len(s) != 0 {
			t.Errorf("devices = %v, want empty list", got["devices"])
		}
	}
}

func TestProfile_Idempotent(t *testing.T) {
	once := Profile(sampleProfile())
	twice := Profile(once)

	for _, key := range []string{"id", "name", "paused", "device_count", "device_ids"} {
		if !reflect.DeepEqual(once[key], twice[key]) {
			t.Errorf("field %s changed on re-normalization: %v then %v", key, once[key], twice[key])
		}
	}

	onceDevs := asSlice(once["devices"])
	twiceDevs := asSlice(twice["devices"])
	if len(onceDevs) != len(twiceDevs) {
		t.Fatalf("devices len changed: %d then %d", len(onceDevs), len(twiceDevs))
	}
	for i := range onceDevs {
		a, b := asMap(onceDevs[i]), asMap(twiceDevs[i])
		for _, key := range []string{"id", "display_name", "connected"} {
			if !reflect.DeepEqual(a[key], b[key]) {
				t.Errorf("member %d field %s changed: %v then %v", i, key, a[key], b[key])
			}
		}
	}
}
