// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestUnknownAPIRoute(t *testing.T) {
	router := testRouter(&fakeEero{}, nil, "")

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/nope", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errCode(t, envelope); code != "NOT_FOUND" {
		t.Errorf("code = %q", code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(&fakeEero{authenticated: true}, nil, "")

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := dataMap(t, envelope)
	if data["status"] != "ok" {
		t.Errorf("status = %v", data["status"])
	}
	if auth, _ := data["authenticated"].(bool); !auth {
		t.Error("authenticated = false, want true")
	}
	if data["victoria"] != "disabled" {
		t.Errorf("victoria = %v, want disabled", data["victoria"])
	}
}

func TestHealthEndpoint_VictoriaStates(t *testing.T) {
	fv := &fakeVictoria{}
	router := testRouter(&fakeEero{}, fv, "")

	_, envelope := doJSON(t, router, http.MethodGet, "/api/health", "")
	if got := dataMap(t, envelope)["victoria"]; got != "ok" {
		t.Errorf("victoria = %v, want ok", got)
	}

	fv.healthErr = os.ErrDeadlineExceeded
	_, envelope = doJSON(t, router, http.MethodGet, "/api/health", "")
	if got := dataMap(t, envelope)["victoria"]; got != "down" {
		t.Errorf("victoria = %v, want down", got)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := testRouter(&fakeEero{}, nil, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestScrapeEndpoint(t *testing.T) {
	router := testRouter(&fakeEero{}, nil, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSPAFallback(t *testing.T) {
	staticDir := t.TempDir()
	writeFile(t, filepath.Join(staticDir, "index.html"), "<html>meshboard</html>")
	writeFile(t, filepath.Join(staticDir, "app.js"), "console.log(1)")

	router := testRouter(&fakeEero{}, nil, staticDir)

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{"real_file", "/app.js", "console.log(1)"},
		{"root", "/", "<html>meshboard</html>"},
		{"client_route", "/dashboard/devices", "<html>meshboard</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSPAFallback_APIStillJSON404(t *testing.T) {
	staticDir := t.TempDir()
	writeFile(t, filepath.Join(staticDir, "index.html"), "<html>meshboard</html>")

	router := testRouter(&fakeEero{}, nil, staticDir)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/nope", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errCode(t, envelope); code != "NOT_FOUND" {
		t.Errorf("code = %q", code)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
