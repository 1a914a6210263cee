// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package eero

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/meshboard/meshboard/internal/config"
	"github.com/meshboard/meshboard/internal/logging"
	"github.com/meshboard/meshboard/internal/metrics"
)

// maxErrorBodySize caps how much of an error response body is read back for
// diagnostics.
const maxErrorBodySize = 64 * 1024

// Client defines all vendor API operations the dashboard uses.
//
// Implemented by HTTPClient for production and by test fakes. All methods
// accept a context and are safe for concurrent use. Payload-returning
// methods hand back the decoded JSON tree; callers reshape it with
// internal/normalize.
type Client interface {
	// Authentication.
	Login(ctx context.Context, identifier string) error
	VerifyLogin(ctx context.Context, code string) (any, error)
	Logout(ctx context.Context) error
	Authenticated() bool

	// Account and network topology.
	AccountInfo(ctx context.Context) (any, error)
	Networks(ctx context.Context) (any, error)
	Network(ctx context.Context, networkID string) (any, error)
	Devices(ctx context.Context, networkID string) (any, error)
	Device(ctx context.Context, networkID, deviceID string) (any, error)
	Eeros(ctx context.Context, networkID string) (any, error)
	EeroNode(ctx context.Context, eeroID string) (any, error)
	Profiles(ctx context.Context, networkID string) (any, error)
	Profile(ctx context.Context, networkID, profileID string) (any, error)

	// Mutations.
	SetGuestNetwork(ctx context.Context, networkID string, enabled bool, name string) (any, error)
	BlockDevice(ctx context.Context, networkID, deviceID string, blocked bool) (any, error)
	SetDeviceNickname(ctx context.Context, networkID, deviceID, nickname string) (any, error)
	PrioritizeDevice(ctx context.Context, networkID, deviceID string, durationMinutes int) (any, error)
	DeprioritizeDevice(ctx context.Context, networkID, deviceID string) (any, error)
	PauseProfile(ctx context.Context, networkID, profileID string, paused bool) (any, error)
	RebootEero(ctx context.Context, eeroID string) (any, error)
	SetLED(ctx context.Context, eeroID string, on bool) (any, error)
	SetLEDBrightness(ctx context.Context, eeroID string, brightness int) (any, error)
	RunSpeedTest(ctx context.Context, networkID string) (any, error)
}

// HTTPClient implements Client against the eero cloud API.
//
// Thread Safety: safe for concurrent use. The session token lives in the
// SessionStore; requests never mutate shared client state.
type HTTPClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	session   *SessionStore
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a vendor API client from configuration. The session
// file is loaded immediately so a prior login survives restarts.
func NewHTTPClient(cfg *config.EeroConfig) (*HTTPClient, error) {
	session, err := NewSessionStore(cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(cfg.APIURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		session:   session,
	}, nil
}

// Authenticated reports whether a session token is present. The token may
// still be rejected by the vendor; callers see that as ErrNotAuthenticated
// on the next request.
func (c *HTTPClient) Authenticated() bool {
	return c.session.Token() != ""
}

// Login starts the two-step login. The vendor sends a verification code to
// the identifier (email address or phone number) and returns an interim
// token that VerifyLogin exchanges for a full session.
func (c *HTTPClient) Login(ctx context.Context, identifier string) error {
	payload, err := c.do(ctx, http.MethodPost, "/2.2/login", map[string]any{"login": identifier}, false)
	if err != nil {
		return err
	}

	token := extractToken(payload)
	if token == "" {
		return fmt.Errorf("eero: login response carried no user token")
	}
	if err := c.session.Set(token); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Msg("login started, verification code sent")
	return nil
}

// VerifyLogin completes the login with the code the user received. On
// success the interim token becomes a full session.
func (c *HTTPClient) VerifyLogin(ctx context.Context, code string) (any, error) {
	if c.session.Token() == "" {
		return nil, ErrVerificationRequired
	}
	payload, err := c.do(ctx, http.MethodPost, "/2.2/login/verify", map[string]any{"code": code}, true)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Msg("login verified")
	return payload, nil
}

// Logout invalidates the session with the vendor and drops the stored token.
// The local token is cleared even when the vendor call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/2.2/logout", nil, true)
	if clearErr := c.session.Clear(); clearErr != nil {
		return clearErr
	}
	if err != nil && !IsAuthError(err) {
		return err
	}
	return nil
}

// AccountInfo fetches the account record, which embeds the network list.
func (c *HTTPClient) AccountInfo(ctx context.Context) (any, error) {
	return c.do(ctx, http.MethodGet, "/2.2/account", nil, true)
}

// Networks returns the account payload; the network list lives under
// data.networks.
func (c *HTTPClient) Networks(ctx context.Context) (any, error) {
	return c.do(ctx, http.MethodGet, "/2.2/account", nil, true)
}

// Network fetches one network record.
func (c *HTTPClient) Network(ctx context.Context, networkID string) (any, error) {
	return c.do(ctx, http.MethodGet, "/2.2/networks/"+networkID, nil, true)
}

// Devices lists the client devices of a network.
func (c *HTTPClient) Devices(ctx context.Context, networkID string) (any, error) {
	return c.do(ctx, http.MethodGet, "/2.2/networks/"+networkID+"/devices", nil, true)
}

// Device fetches one client device.
func (c *HTTPClient) Device(ctx context.Context, networkID, deviceID string) (any, error) {
	return c.do(ctx, http.MethodGet, "/2.2/networks/"+networkID+"/devices/"+deviceID, nil, true)
}

// Eeros lists the mesh units of a network.
func (c *HTTPClient) Eeros(ctx context.Context, networkID string) (any, error) {
	return c.do(ctx, http.MethodGet, "/2.2/networks/"+networkID+"/eeros", nil, true)
}

// EeroNode fetches one mesh unit.
func (c *HTTPClient) EeroNode(ctx context.Context, eeroID string) (any, error) {
	return c.do(ctx, http.MethodGet, "/2.2/eeros/"+eeroID, nil, true)
}

// Profiles lists the parental-control profiles of a network.
func (c *HTTPClient) Profiles(ctx context.Context, networkID string) (any, error) {
	return c.do(ctx, http.MethodGet, "/2.2/networks/"+networkID+"/profiles", nil, true)
}

// Profile fetches one profile with its member devices.
func (c *HTTPClient) Profile(ctx context.Context, networkID, profileID string) (any, error) {
	return c.do(ctx, http.MethodGet, "/2.2/networks/"+networkID+"/profiles/"+profileID, nil, true)
}

// SetGuestNetwork enables or disables the guest SSID. An empty name keeps
// the current one.
func (c *HTTPClient) SetGuestNetwork(ctx context.Context, networkID string, enabled bool, name string) (any, error) {
	body := map[string]any{"enabled": enabled}
	if name != "" {
		body["name"] = name
	}
	return c.do(ctx, http.MethodPut, "/2.2/networks/"+networkID+"/guestnetwork", body, true)
}

// BlockDevice blocks or unblocks a device. The vendor spells the flag
// "blacklisted" on the wire.
func (c *HTTPClient) BlockDevice(ctx context.Context, networkID, deviceID string, blocked bool) (any, error) {
	body := map[string]any{"blacklisted": blocked}
	return c.do(ctx, http.MethodPut, "/2.2/networks/"+networkID+"/devices/"+deviceID, body, true)
}

// SetDeviceNickname renames a device.
func (c *HTTPClient) SetDeviceNickname(ctx context.Context, networkID, deviceID, nickname string) (any, error) {
	body := map[string]any{"nickname": nickname}
	return c.do(ctx, http.MethodPut, "/2.2/networks/"+networkID+"/devices/"+deviceID, body, true)
}

// PrioritizeDevice grants a device bandwidth priority for durationMinutes;
// zero keeps the priority until it is removed.
func (c *HTTPClient) PrioritizeDevice(ctx context.Context, networkID, deviceID string, durationMinutes int) (any, error) {
	body := map[string]any{"duration_minutes": durationMinutes}
	return c.do(ctx, http.MethodPost, "/2.2/networks/"+networkID+"/devices/"+deviceID+"/priority", body, true)
}

// DeprioritizeDevice removes a device's bandwidth priority.
func (c *HTTPClient) DeprioritizeDevice(ctx context.Context, networkID, deviceID string) (any, error) {
	return c.do(ctx, http.MethodDelete, "/2.2/networks/"+networkID+"/devices/"+deviceID+"/priority", nil, true)
}

// PauseProfile pauses or resumes internet access for a profile.
func (c *HTTPClient) PauseProfile(ctx context.Context, networkID, profileID string, paused bool) (any, error) {
	body := map[string]any{"paused": paused}
	return c.do(ctx, http.MethodPut, "/2.2/networks/"+networkID+"/profiles/"+profileID, body, true)
}

// RebootEero reboots one mesh unit.
func (c *HTTPClient) RebootEero(ctx context.Context, eeroID string) (any, error) {
	return c.do(ctx, http.MethodPost, "/2.2/eeros/"+eeroID+"/reboot", nil, true)
}

// SetLED switches the unit's status LED.
func (c *HTTPClient) SetLED(ctx context.Context, eeroID string, on bool) (any, error) {
	body := map[string]any{"led_on": on}
	return c.do(ctx, http.MethodPut, "/2.2/eeros/"+eeroID, body, true)
}

// SetLEDBrightness sets the status LED brightness, 0-100.
func (c *HTTPClient) SetLEDBrightness(ctx context.Context, eeroID string, brightness int) (any, error) {
	body := map[string]any{"led_brightness": brightness}
	return c.do(ctx, http.MethodPut, "/2.2/eeros/"+eeroID, body, true)
}

// RunSpeedTest asks the gateway to run a speed test. The result lands on the
// network record once the test completes.
func (c *HTTPClient) RunSpeedTest(ctx context.Context, networkID string) (any, error) {
	return c.do(ctx, http.MethodPost, "/2.2/networks/"+networkID+"/speedtest", nil, true)
}

// do performs one rate-limited request and decodes the JSON response.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, authed bool) (any, error) {
	if authed && c.session.Token() == "" {
		return nil, ErrNotAuthenticated
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("eero: rate limiter: %w", err)
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("eero: failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("eero: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.session.Token(); token != "" {
		req.AddCookie(&http.Cookie{Name: "s", Value: token})
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordUpstreamCall("eero", time.Since(start), err)
		return nil, fmt.Errorf("eero: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.apiError(resp)
		metrics.RecordUpstreamCall("eero", time.Since(start), apiErr)
		return nil, apiErr
	}
	metrics.RecordUpstreamCall("eero", time.Since(start), nil)

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("eero: failed to decode response: %w", err)
	}
	return payload, nil
}

// apiError builds an APIError from an error response, pulling the vendor's
// meta.code and meta.error when present.
func (c *HTTPClient) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err == nil && len(data) > 0 {
		var envelope struct {
			Meta struct {
				Code  int    `json:"code"`
				Error string `json:"error"`
			} `json:"meta"`
		}
		if json.Unmarshal(data, &envelope) == nil {
			apiErr.Code = envelope.Meta.Code
			apiErr.Message = envelope.Meta.Error
		}
	}

	logging.Warn().
		Int("status", resp.StatusCode).
		Str("error", apiErr.Message).
		Msg("vendor API error")
	return apiErr
}

// extractToken digs the user token out of a login response.
func extractToken(payload any) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	data, ok := m["data"].(map[string]any)
	if !ok {
		return ""
	}
	token, _ := data["user_token"].(string)
	return token
}
