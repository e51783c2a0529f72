// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"errors"
	"strings"
)

// Catalog store errors.
var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrWatchlistNotFound = errors.New("watchlist entry not found")
	ErrWatchlistConflict = errors.New("movie already in watchlist")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserConflict      = errors.New("username or email already registered")
)

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// DuckDB reports "Duplicate key ... violates unique constraint"
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "unique constraint") || strings.Contains(errMsg, "duplicate key")
}
