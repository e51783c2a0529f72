// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"strings"

	"github.com/tomtom215/marquee/internal/models"
)

// NormalizeMovie trims user-entered text fields and cast names in place.
func NormalizeMovie(m *models.Movie) {
	m.Title = strings.TrimSpace(m.Title)
	m.Genre = strings.TrimSpace(m.Genre)
	m.Director = strings.TrimSpace(m.Director)
	m.Synopsis = strings.TrimSpace(m.Synopsis)
	m.Poster = strings.TrimSpace(m.Poster)
	m.Trailer = strings.TrimSpace(m.Trailer)
	cast := m.Cast[:0]
	for _, name := range m.Cast {
		if name = strings.TrimSpace(name); name != "" {
			cast = append(cast, name)
		}
	}
	m.Cast = cast
}

// ValidateMovie normalizes and validates a movie create or update payload.
// Title, genre and director are required.
func ValidateMovie(m *models.Movie) *RequestValidationError {
	NormalizeMovie(m)
	return ValidateStruct(m)
}

// ValidateSignup normalizes and validates a registration payload. A
// confirmation, when supplied, must match the password.
func ValidateSignup(req *models.SignupRequest) *RequestValidationError {
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return ValidateStruct(req)
}

// ValidateWatchlistEntry validates an add-to-watchlist payload.
func ValidateWatchlistEntry(e *models.WatchlistEntry) *RequestValidationError {
	e.MovieID = models.MovieRef(strings.TrimSpace(string(e.MovieID)))
	e.Title = strings.TrimSpace(e.Title)
	return ValidateStruct(e)
}
