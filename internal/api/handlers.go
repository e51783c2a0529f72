// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"time"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_movies.go: movie CRUD
//   - handlers_watchlist.go: watchlist list/add/remove
//   - handlers_users.go: user lookup and signup
//   - handlers_auth.go: login
//   - handlers_health.go: health check
type Handler struct {
	db         *database.DB
	config     *config.Config
	jwtManager *auth.JWTManager
	version    string
	startTime  time.Time
}

// NewHandler creates the API handler. jwtManager may be nil when the
// server runs with AUTH_MODE=none; logins then return no token.
func NewHandler(db *database.DB, cfg *config.Config, jwtManager *auth.JWTManager, version string) *Handler {
	if version == "" {
		version = "dev"
	}
	return &Handler{
		db:         db,
		config:     cfg,
		jwtManager: jwtManager,
		version:    version,
		startTime:  time.Now(),
	}
}
