// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Watchlist entry sources.
const (
	SourceLocal    = "local"
	SourceExternal = "external"
)

// MovieRef identifies a watched movie: a local catalog ID in decimal form
// or an external identifier such as "tt0111161". It accepts both JSON
// numbers and strings.
type MovieRef string

// UnmarshalJSON implements json.Unmarshaler.
func (r *MovieRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = MovieRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("movieId must be a string or number: %w", err)
	}
	*r = MovieRef(n.String())
	return nil
}

// IsLocal reports whether the reference points at a catalog movie.
func (r MovieRef) IsLocal() bool {
	_, err := strconv.ParseInt(string(r), 10, 64)
	return err == nil
}

// WatchlistEntry is a movie saved to the watchlist. Display fields are
// copied from the movie when it is added so the watchlist renders without
// further lookups. MovieID is unique across the whole watchlist.
type WatchlistEntry struct {
	ID       string    `json:"id"`
	MovieID  MovieRef  `json:"movieId" validate:"required,max=64"`
	UserID   int64     `json:"userId,omitempty"`
	Source   string    `json:"source" validate:"omitempty,oneof=local external"`
	AddedAt  time.Time `json:"addedAt"`
	Title    string    `json:"title" validate:"required,max=200"`
	Year     string    `json:"year,omitempty" validate:"max=16"`
	Genre    string    `json:"genre,omitempty" validate:"max=50"`
	Rating   *float64  `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	Poster   string    `json:"poster,omitempty" validate:"max=2048"`
	Synopsis string    `json:"synopsis,omitempty" validate:"max=5000"`
}

// EntryFromMovie builds a watchlist entry for a catalog movie.
func EntryFromMovie(m *Movie) WatchlistEntry {
	e := WatchlistEntry{
		MovieID:  MovieRef(m.IDString()),
		Source:   SourceLocal,
		Title:    m.Title,
		Genre:    m.Genre,
		Rating:   m.Rating,
		Poster:   m.Poster,
		Synopsis: m.Synopsis,
	}
	if m.Year != nil {
		e.Year = strconv.Itoa(*m.Year)
	}
	return e
}

// EntryFromExternal builds a watchlist entry for an external title.
func EntryFromExternal(t *ExternalTitle) WatchlistEntry {
	return WatchlistEntry{
		MovieID:  MovieRef(t.ID),
		Source:   SourceExternal,
		Title:    t.Title,
		Year:     t.Year,
		Genre:    t.Genre,
		Rating:   t.Rating,
		Poster:   t.Poster,
		Synopsis: t.Plot,
	}
}
