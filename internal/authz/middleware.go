// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package authz

import (
	"errors"
	"net/http"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Errors passed to the deny callback.
var (
	ErrLoginRequired = errors.New("login required")
	ErrForbidden     = errors.New("insufficient permissions")
)

// DenyFunc writes the response for a request that was not authorized.
// status is 401 for anonymous callers, 403 for authenticated ones and 500
// when enforcement itself failed.
type DenyFunc func(w http.ResponseWriter, r *http.Request, status int, err error)

// Middleware provides authorization middleware using Casbin.
type Middleware struct {
	enforcer *Enforcer
	deny     DenyFunc
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(enforcer *Enforcer, deny DenyFunc) *Middleware {
	if deny == nil {
		deny = func(w http.ResponseWriter, _ *http.Request, status int, err error) {
			http.Error(w, err.Error(), status)
		}
	}
	return &Middleware{enforcer: enforcer, deny: deny}
}

// AuthorizeRequest determines the action from the HTTP method and checks
// it against the request path for the caller's role.
func (m *Middleware) AuthorizeRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := auth.RoleFromContext(r.Context())
		allowed, err := m.enforcer.Enforce(role, r.URL.Path, methodToAction(r.Method))
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			m.deny(w, r, http.StatusInternalServerError, err)
			return
		}
		metrics.RecordAuthzDecision(role, allowed)

		if !allowed {
			if role == auth.RoleAnonymous {
				m.deny(w, r, http.StatusUnauthorized, ErrLoginRequired)
				return
			}
			m.deny(w, r, http.StatusForbidden, ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return ActionWrite
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionRead
	}
}
