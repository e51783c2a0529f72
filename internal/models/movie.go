// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"strconv"
	"strings"
)

// Movie is a catalog entry. Year and Rating are optional; nil means
// unknown, which is different from zero for filtering and ranking.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title" validate:"required,notblank,max=200"`
	Genre       string   `json:"genre" validate:"required,notblank,max=50"`
	Year        *int     `json:"year,omitempty" validate:"omitempty,min=1870,max=2100"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	Duration    string   `json:"duration,omitempty" validate:"max=50"`
	Synopsis    string   `json:"synopsis,omitempty" validate:"max=5000"`
	Director    string   `json:"director" validate:"required,notblank,max=200"`
	Cast        []string `json:"cast,omitempty" validate:"max=100,dive,max=200"`
	Poster      string   `json:"poster,omitempty" validate:"omitempty,url"`
	Trailer     string   `json:"trailer,omitempty" validate:"omitempty,url"`
	ReleaseDate string   `json:"releaseDate,omitempty" validate:"max=50"`
	Language    string   `json:"language,omitempty" validate:"max=50"`
}

// YearValue returns the release year or 0 when unknown.
func (m *Movie) YearValue() int {
	if m.Year == nil {
		return 0
	}
	return *m.Year
}

// RatingValue returns the rating or 0 when absent.
func (m *Movie) RatingValue() float64 {
	if m.Rating == nil {
		return 0
	}
	return *m.Rating
}

// IDString returns the catalog ID in the form used by watchlist references.
func (m *Movie) IDString() string {
	return strconv.FormatInt(m.ID, 10)
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

// SplitCast turns a comma-separated cast list into trimmed, non-empty names.
func SplitCast(s string) []string {
	parts := strings.Split(s, ",")
	cast := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cast = append(cast, p)
		}
	}
	return cast
}
