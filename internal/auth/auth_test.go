// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

func newTestManager(t *testing.T, timeout time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: timeout})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
	}{
		{name: "valid secret", cfg: &config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: time.Hour}},
		{name: "empty secret", cfg: &config.SecurityConfig{SessionTimeout: time.Hour}, wantErr: true},
		{name: "zero timeout uses default", cfg: &config.SecurityConfig{JWTSecret: testSecret}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			manager, err := NewJWTManager(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewJWTManager() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && manager.timeout <= 0 {
				t.Errorf("timeout = %v, want positive", manager.timeout)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)
	user := &models.User{ID: 7, Username: "alice", Role: models.RoleAdmin}

	token, expiresAt, err := m.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if time.Until(expiresAt) <= 0 || time.Until(expiresAt) > time.Hour {
		t.Errorf("expiresAt = %v, want within the next hour", expiresAt)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != models.RoleAdmin || claims.Subject != "7" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)
	good, _, err := m.GenerateToken(&models.User{ID: 1, Username: "bob", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	other, err := NewJWTManager(&config.SecurityConfig{JWTSecret: strings.Repeat("x", 40), SessionTimeout: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	foreign, _, _ := other.GenerateToken(&models.User{ID: 1, Username: "bob"})

	expired := newTestManager(t, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, _ := expired.GenerateToken(&models.User{ID: 1, Username: "bob"})

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "mallory", Role: models.RoleAdmin})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", good[:len(good)-2] + "xx"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"alg none", unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := m.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() expected error")
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("user123", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "user123" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash = %q, want a bcrypt hash", hash)
	}
	if !CheckPassword(hash, "user123") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "user124") {
		t.Error("CheckPassword() accepted the wrong password")
	}
	if CheckPassword("plaintext", "plaintext") {
		t.Error("CheckPassword() accepted a non-hash")
	}

	h, err := Hasher(4)("demo123")
	if err != nil || !CheckPassword(h, "demo123") {
		t.Errorf("Hasher() = %q, %v", h, err)
	}
}

func TestMiddlewareAuthenticate(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)
	token, _, _ := m.GenerateToken(&models.User{ID: 3, Username: "carol", Role: models.RoleUser})

	tests := []struct {
		name       string
		mode       string
		header     string
		wantStatus int
		wantRole   string
	}{
		{name: "none mode ignores header", mode: "none", header: "Bearer junk", wantStatus: http.StatusOK, wantRole: RoleAnonymous},
		{name: "jwt anonymous", mode: "jwt", wantStatus: http.StatusOK, wantRole: RoleAnonymous},
		{name: "jwt valid", mode: "jwt", header: "Bearer " + token, wantStatus: http.StatusOK, wantRole: models.RoleUser},
		{name: "jwt lowercase scheme", mode: "jwt", header: "bearer " + token, wantStatus: http.StatusOK, wantRole: models.RoleUser},
		{name: "jwt invalid", mode: "jwt", header: "Bearer junk", wantStatus: http.StatusUnauthorized},
		{name: "jwt wrong scheme", mode: "jwt", header: "Basic abc", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotRole string
			var gotErr error
			mw := NewMiddleware(m, tt.mode, func(w http.ResponseWriter, _ *http.Request, err error) {
				gotErr = err
				w.WriteHeader(http.StatusUnauthorized)
			})
			h := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRole = RoleFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotRole != tt.wantRole {
				t.Errorf("role = %q, want %q", gotRole, tt.wantRole)
			}
			if tt.wantStatus == http.StatusUnauthorized && !errors.Is(gotErr, ErrInvalidToken) && !errors.Is(gotErr, ErrMissingToken) {
				t.Errorf("reject error = %v", gotErr)
			}
		})
	}
}
