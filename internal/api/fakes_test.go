// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/meshboard/meshboard/internal/config"
	"github.com/meshboard/meshboard/internal/eero"
	"github.com/meshboard/meshboard/internal/victoria"
)

// fakeEero is a scriptable eero.Client. Payloads are keyed by method name;
// err, when set, fails every call.
type fakeEero struct {
	mu            sync.Mutex
	calls         []string
	payloads      map[string]any
	err           error
	authenticated bool
}

var _ eero.Client = (*fakeEero)(nil)

func (f *fakeEero) call(sig string) (any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, sig)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	name, _, _ := strings.Cut(sig, "(")
	return f.payloads[name], nil
}

// countCalls returns how many recorded calls start with prefix.
func (f *fakeEero) countCalls(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeEero) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeEero) Login(ctx context.Context, identifier string) error {
	_, err := f.call(fmt.Sprintf("Login(%s)", identifier))
	return err
}

func (f *fakeEero) VerifyLogin(ctx context.Context, code string) (any, error) {
	return f.call(fmt.Sprintf("VerifyLogin(%s)", code))
}

func (f *fakeEero) Logout(ctx context.Context) error {
	_, err := f.call("Logout()")
	return err
}

func (f *fakeEero) Authenticated() bool { return f.authenticated }

func (f *fakeEero) AccountInfo(ctx context.Context) (any, error) {
	return f.call("AccountInfo()")
}

func (f *fakeEero) Networks(ctx context.Context) (any, error) {
	return f.call("Networks()")
}

func (f *fakeEero) Network(ctx context.Context, networkID string) (any, error) {
	return f.call(fmt.Sprintf("Network(%s)", networkID))
}

func (f *fakeEero) Devices(ctx context.Context, networkID string) (any, error) {
	return f.call(fmt.Sprintf("Devices(%s)", networkID))
}

func (f *fakeEero) Device(ctx context.Context, networkID, deviceID string) (any, error) {
	return f.call(fmt.Sprintf("Device(%s,%s)", networkID, deviceID))
}

func (f *fakeEero) Eeros(ctx context.Context, networkID string) (any, error) {
	return f.call(fmt.Sprintf("Eeros(%s)", networkID))
}

func (f *fakeEero) EeroNode(ctx context.Context, eeroID string) (any, error) {
	return f.call(fmt.Sprintf("EeroNode(%s)", eeroID))
}

func (f *fakeEero) Profiles(ctx context.Context, networkID string) (any, error) {
	return f.call(fmt.Sprintf("Profiles(%s)", networkID))
}

func (f *fakeEero) Profile(ctx context.Context, networkID, profileID string) (any, error) {
	return f.call(fmt.Sprintf("Profile(%s,%s)", networkID, profileID))
}

func (f *fakeEero) SetGuestNetwork(ctx context.Context, networkID string, enabled bool, name string) (any, error) {
	return f.call(fmt.Sprintf("SetGuestNetwork(%s,%t,%s)", networkID, enabled, name))
}

func (f *fakeEero) BlockDevice(ctx context.Context, networkID, deviceID string, blocked bool) (any, error) {
	return f.call(fmt.Sprintf("BlockDevice(%s,%s,%t)", networkID, deviceID, blocked))
}

func (f *fakeEero) SetDeviceNickname(ctx context.Context, networkID, deviceID, nickname string) (any, error) {
	return f.call(fmt.Sprintf("SetDeviceNickname(%s,%s,%s)", networkID, deviceID, nickname))
}

func (f *fakeEero) PrioritizeDevice(ctx context.Context, networkID, deviceID string, durationMinutes int) (any, error) {
	return f.call(fmt.Sprintf("PrioritizeDevice(%s,%s,%d)", networkID, deviceID, durationMinutes))
}

func (f *fakeEero) DeprioritizeDevice(ctx context.Context, networkID, deviceID string) (any, error) {
	return f.call(fmt.Sprintf("DeprioritizeDevice(%s,%s)", networkID, deviceID))
}

func (f *fakeEero) PauseProfile(ctx context.Context, networkID, profileID string, paused bool) (any, error) {
	return f.call(fmt.Sprintf("PauseProfile(%s,%s,%t)", networkID, profileID, paused))
}

func (f *fakeEero) RebootEero(ctx context.Context, eeroID string) (any, error) {
	return f.call(fmt.Sprintf("RebootEero(%s)", eeroID))
}

func (f *fakeEero) SetLED(ctx context.Context, eeroID string, on bool) (any, error) {
	return f.call(fmt.Sprintf("SetLED(%s,%t)", eeroID, on))
}

func (f *fakeEero) SetLEDBrightness(ctx context.Context, eeroID string, brightness int) (any, error) {
	return f.call(fmt.Sprintf("SetLEDBrightness(%s,%d)", eeroID, brightness))
}

func (f *fakeEero) RunSpeedTest(ctx context.Context, networkID string) (any, error) {
	return f.call(fmt.Sprintf("RunSpeedTest(%s)", networkID))
}

// fakeVictoria is a scriptable victoria.Client.
type fakeVictoria struct {
	raw       json.RawMessage
	err       error
	healthErr error

	mu      sync.Mutex
	queries []string
	ranges  []rangeCall
	labels  []string
}

type rangeCall struct {
	query      string
	start, end time.Time
	step       time.Duration
}

var _ victoria.Client = (*fakeVictoria)(nil)

func (f *fakeVictoria) Query(ctx context.Context, query string, ts time.Time) (json.RawMessage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	return f.raw, f.err
}

func (f *fakeVictoria) QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration) (json.RawMessage, error) {
	f.mu.Lock()
	f.ranges = append(f.ranges, rangeCall{query: query, start: start, end: end, step: step})
	f.mu.Unlock()
	return f.raw, f.err
}

func (f *fakeVictoria) LabelValues(ctx context.Context, label string) (json.RawMessage, error) {
	f.mu.Lock()
	f.labels = append(f.labels, label)
	f.mu.Unlock()
	return f.raw, f.err
}

func (f *fakeVictoria) Health(ctx context.Context) error { return f.healthErr }

// accountPayload is a vendor account record with one network.
func accountPayload() map[string]any {
	return map[string]any{
		"meta": map[string]any{"code": float64(200)},
		"data": map[string]any{
			"name": "owner",
			"networks": map[string]any{
				"count": float64(1),
				"data": []any{
					map[string]any{"url": "/2.2/networks/net1", "name": "Home", "status": "connected"},
				},
			},
		},
	}
}

func okPayload() map[string]any {
	return map[string]any{"meta": map[string]any{"code": float64(200)}, "data": map[string]any{}}
}

// testRouter builds the full router around the fakes, with rate limiting
// off so tests never trip it.
func testRouter(fe *fakeEero, fv victoria.Client, staticDir string) http.Handler {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:              "127.0.0.1",
			Port:              5010,
			Timeout:           5 * time.Second,
			RateLimitDisabled: true,
			StaticDir:         staticDir,
		},
	}
	return NewRouter(cfg, NewHandler(fe, fv, ""))
}

// doJSON performs a request and decodes the response envelope.
func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec, envelope
}

func dataMap(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	m, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("data is %T, want map", envelope["data"])
	}
	return m
}

func dataList(t *testing.T, envelope map[string]any) []any {
	t.Helper()
	s, ok := envelope["data"].([]any)
	if !ok {
		t.Fatalf("data is %T, want list", envelope["data"])
	}
	return s
}

func errCode(t *testing.T, envelope map[string]any) string {
	t.Helper()
	e, ok := envelope["error"].(map[string]any)
	if !ok {
		t.Fatalf("error is %T, want map", envelope["error"])
	}
	code, _ := e["code"].(string)
	return code
}
