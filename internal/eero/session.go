// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package eero

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// sessionState is what gets persisted to the session file.
type sessionState struct {
	UserToken string `json:"user_token"`
}

// SessionStore persists the vendor session token across restarts.
// Safe for concurrent use.
type SessionStore struct {
	path string

	mu    sync.RWMutex
	token string
}

// NewSessionStore opens the store at path, loading any existing token. A
// missing file is not an error; it means no session yet.
func NewSessionStore(path string) (*SessionStore, error) {
	s := &SessionStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt session file is recoverable: the user logs in again.
		return s, nil
	}
	s.token = state.UserToken
	return s, nil
}

// Token returns the current session token, or "" when logged out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set stores and persists a new session token.
func (s *SessionStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return s.persist(token)
}

// Clear drops the session token and removes the file.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *SessionStore) persist(token string) error {
	data, err := json.Marshal(sessionState{UserToken: token})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}
	// The token grants full account access; keep the file owner-only.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
