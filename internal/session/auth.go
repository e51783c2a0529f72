// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/marquee/internal/kvstore"
	"github.com/tomtom215/marquee/internal/models"
)

// ErrNotAuthenticated is returned when an operation needs a signed-in user.
var ErrNotAuthenticated = errors.New("not logged in")

// Auth holds the signed-in user. The cached session never contains a
// password; it is the profile and, on servers that issue one, a token.
type Auth struct {
	store kvstore.Store
	now   func() time.Time

	mu      sync.RWMutex
	current *models.Session
}

// NewAuth creates a signed-out Auth backed by store.
func NewAuth(store kvstore.Store) *Auth {
	return &Auth{store: store, now: time.Now}
}

// Load restores the cached session. An expired session is discarded.
func (a *Auth) Load() error {
	var s models.Session
	found, err := a.store.Get(kvstore.KeyUser, &s)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = nil
	if !found || s.User.Username == "" {
		return nil
	}
	if s.Expired(a.now()) {
		if err := a.store.Clear(kvstore.KeyUser); err != nil {
			return fmt.Errorf("failed to drop expired session: %w", err)
		}
		return nil
	}
	a.current = &s
	return nil
}

// Login stores s as the current session.
func (a *Auth) Login(s models.Session) error {
	if s.User.Username == "" {
		return errors.New("session has no user")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.Set(kvstore.KeyUser, s); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	a.current = &s
	return nil
}

// Logout forgets the current session.
func (a *Auth) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = nil
	if err := a.store.Clear(kvstore.KeyUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the signed-in session, or ErrNotAuthenticated.
func (a *Auth) Current() (models.Session, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil || a.current.Expired(a.now()) {
		return models.Session{}, ErrNotAuthenticated
	}
	return *a.current, nil
}

// IsAuthenticated reports whether a user is signed in.
func (a *Auth) IsAuthenticated() bool {
	_, err := a.Current()
	return err == nil
}

// Token returns the bearer token of the current session, or "".
func (a *Auth) Token() string {
	s, err := a.Current()
	if err != nil {
		return ""
	}
	return s.Token
}

// Flush writes the current session to the cache, or clears it when signed out.
func (a *Auth) Flush() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return a.store.Clear(kvstore.KeyUser)
	}
	return a.store.Set(kvstore.KeyUser, *a.current)
}
