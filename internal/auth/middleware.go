// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the authenticated *Claims on a request context.
const ClaimsContextKey contextKey = "claims"

// RoleAnonymous is the role of a request without a token.
const RoleAnonymous = "anonymous"

// ErrMissingToken and ErrInvalidToken are passed to the reject callback.
var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// RejectFunc writes the response for a request whose token failed
// validation.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware attaches token claims to requests.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
	reject     RejectFunc
}

// NewMiddleware creates the authentication middleware. In "none" mode it
// passes every request through untouched.
func NewMiddleware(jwtManager *JWTManager, authMode string, reject RejectFunc) *Middleware {
	if reject == nil {
		reject = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
	}
	return &Middleware{jwtManager: jwtManager, authMode: authMode, reject: reject}
}

// Enabled reports whether tokens are checked.
func (m *Middleware) Enabled() bool {
	return m.authMode == "jwt" && m.jwtManager != nil
}

// Authenticate validates a bearer token when one is present. Requests
// without an Authorization header continue as anonymous; authorization
// decides whether that is enough. A present but bad token is rejected.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			m.reject(w, r, ErrMissingToken)
			return
		}
		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Rejected bearer token")
			m.reject(w, r, ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// ContextWithClaims returns a copy of ctx carrying claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext returns the claims attached by Authenticate, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// RoleFromContext returns the caller's role or RoleAnonymous.
func RoleFromContext(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok && claims.Role != "" {
		return claims.Role
	}
	return RoleAnonymous
}
