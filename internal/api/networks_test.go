// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"net/http"
	"testing"
)

func TestListNetworks(t *testing.T) {
	fe := &fakeEero{payloads: map[string]any{"Networks": accountPayload()}}
	router := testRouter(fe, nil, "")

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/networks", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	networks := dataList(t, envelope)
	if len(networks) != 1 {
		t.Fatalf("len = %d, want 1", len(networks))
	}
	network := networks[0].(map[string]any)
	if network["id"] != "net1" {
		t.Errorf("id = %v, want net1", network["id"])
	}
	if network["name"] != "Home" {
		t.Errorf("name = %v, want Home", network["name"])
	}
	if network["status"] != "online" {
		t.Errorf("status = %v, want online", network["status"])
	}

	meta := envelope["metadata"].(map[string]any)
	if meta["received"] != float64(1) || meta["returned"] != float64(1) {
		t.Errorf("counts = %v/%v, want 1/1", meta["received"], meta["returned"])
	}
}

func TestGetNetwork_ExplicitID(t *testing.T) {
	fe := &fakeEero{payloads: map[string]any{
		"Network": map[string]any{
			"meta": map[string]any{"code": float64(200)},
			"data": map[string]any{"url": "/2.2/networks/abc", "name": "Office"},
		},
	}}
	router := testRouter(fe, nil, "")

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/networks/abc", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if fe.countCalls("Network(abc)") != 1 {
		t.Errorf("calls = %v, want Network(abc)", fe.calls)
	}
	if fe.countCalls("AccountInfo") != 0 {
		t.Error("explicit network ID should not trigger account resolution")
	}
	if id := dataMap(t, envelope)["id"]; id != "abc" {
		t.Errorf("id = %v, want abc", id)
	}
}

func TestGetNetwork_CountsFromLists(t *testing.T) {
	fe := &fakeEero{payloads: map[string]any{
		"Network": map[string]any{
			"meta": map[string]any{"code": float64(200)},
			"data": map[string]any{"url": "/2.2/networks/abc", "name": "Office"},
		},
		"Devices": devicesPayload(),
		"Eeros": map[string]any{
			"meta": map[string]any{"code": float64(200)},
			"data": []any{map[string]any{"url": "/2.2/eeros/e1"}},
		},
	}}
	router := testRouter(fe, nil, "")

	_, envelope := doJSON(t, router, http.MethodGet, "/api/networks/abc", "")

	network := dataMap(t, envelope)
	// Two of the three raw device elements survive normalization.
	if network["device_count"] != float64(2) {
		t.Errorf("device_count = %v, want 2", network["device_count"])
	}
	if network["eero_count"] != float64(1) {
		t.Errorf("eero_count = %v, want 1", network["eero_count"])
	}
}

func TestSetPreferredNetwork(t *testing.T) {
	fe := &fakeEero{payloads: map[string]any{"Devices": devicesPayload()}}
	router := testRouter(fe, nil, "")

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/networks/net9/set-preferred", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if id := dataMap(t, envelope)["preferred_network_id"]; id != "net9" {
		t.Errorf("preferred_network_id = %v, want net9", id)
	}

	// Subsequent single-network calls use the preferred ID without
	// touching the account.
	doJSON(t, router, http.MethodGet, "/api/devices", "")
	if fe.countCalls("Devices(net9)") != 1 {
		t.Errorf("calls = %v, want Devices(net9)", fe.calls)
	}
	if fe.countCalls("AccountInfo") != 0 {
		t.Error("preferred network should bypass account resolution")
	}
}

func TestGetNetwork_CurrentResolvesDefault(t *testing.T) {
	fe := &fakeEero{payloads: map[string]any{
		"AccountInfo": accountPayload(),
		"Network": map[string]any{
			"meta": map[string]any{"code": float64(200)},
			"data": map[string]any{"url": "/2.2/networks/net1", "name": "Home"},
		},
	}}
	router := testRouter(fe, nil, "")

	rec, _ := doJSON(t, router, http.MethodGet, "/api/networks/current", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if fe.countCalls("Network(net1)") != 1 {
		t.Errorf("calls = %v, want Network(net1)", fe.calls)
	}
}

func TestGetDHCP(t *testing.T) {
	fe := &fakeEero{payloads: map[string]any{
		"Network": map[string]any{
			"meta": map[string]any{"code": float64(200)},
			"data": map[string]any{
				"url": "/2.2/networks/net1",
				"dhcp": map[string]any{
					"mode": "custom",
					"custom": map[string]any{
						"start_ip":    "192.168.4.2",
						"end_ip":      "192.168.4.254",
						"subnet_mask": "255.255.255.0",
					},
				},
			},
		},
	}}
	router := testRouter(fe, nil, "")

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/networks/net1/dhcp", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	dhcp := dataMap(t, envelope)
	if dhcp["starting_address"] != "192.168.4.2" {
		t.Errorf("starting_address = %v", dhcp["starting_address"])
	}
	if dhcp["lease_time_seconds"] != float64(86400) {
		t.Errorf("lease_time_seconds = %v, want 86400", dhcp["lease_time_seconds"])
	}
}

func TestGetDHCP_NothingResolvable(t *testing.T) {
	fe := &fakeEero{payloads: map[string]any{
		"Network": map[string]any{
			"meta": map[string]any{"code": float64(200)},
			"data": map[string]any{"url": "/2.2/networks/net1"},
		},
	}}
	router := testRouter(fe, nil, "")

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/networks/net1/dhcp", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errCode(t, envelope); code != "NOT_FOUND" {
		t.Errorf("code = %q", code)
	}
}

func TestSetGuestNetwork(t *testing.T) {
	fe := &fakeEero{payloads: map[string]any{"SetGuestNetwork": okPayload()}}
	router := testRouter(fe, nil, "")

	rec, envelope := doJSON(t, router, http.MethodPut, "/api/networks/net1/guest", `{"enabled":true,"name":"Guests"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := fe.lastCall(); got != "SetGuestNetwork(net1,true,Guests)" {
		t.Errorf("call = %q", got)
	}
	if success, _ := dataMap(t, envelope)["success"].(bool); !success {
		t.Error("success = false, want true")
	}
}

func TestRunSpeedTest(t *testing.T) {
	fe := &fakeEero{payloads: map[string]any{"RunSpeedTest": okPayload()}}
	router := testRouter(fe, nil, "")

	rec, _ := doJSON(t, router, http.MethodPost, "/api/networks/net1/speedtest", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := fe.lastCall(); got != "RunSpeedTest(net1)" {
		t.Errorf("call = %q", got)
	}
}
