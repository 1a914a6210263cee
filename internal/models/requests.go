// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package models

// LoginRequest starts the two-step vendor login. Login is the account's
// email address or phone number.
type LoginRequest struct {
	Login string `json:"login" validate:"required"`
}

// VerifyRequest completes the login with the code the vendor sent.
type VerifyRequest struct {
	Code string `json:"code" validate:"required"`
}

// GuestNetworkRequest toggles the guest SSID. Name is optional; empty keeps
// the current one.
type GuestNetworkRequest struct {
	Enabled bool   `json:"enabled"`
	Name    string `json:"name"`
}

// BlockDeviceRequest blocks or unblocks a client device.
type BlockDeviceRequest struct {
	Blocked bool `json:"blocked"`
}

// NicknameRequest renames a client device.
type NicknameRequest struct {
	Nickname string `json:"nickname" validate:"required,max=64"`
}

// PauseProfileRequest pauses or resumes a profile's internet access.
type PauseProfileRequest struct {
	Paused bool `json:"paused"`
}

// LEDRequest switches a unit's status LED.
type LEDRequest struct {
	On bool `json:"on"`
}

// LEDBrightnessRequest sets a unit's status LED brightness.
type LEDBrightnessRequest struct {
	Brightness int `json:"brightness" validate:"min=0,max=100"`
}

// ActionResult reports the outcome of a mutating vendor call.
type ActionResult struct {
	Success bool `json:"success"`
}
