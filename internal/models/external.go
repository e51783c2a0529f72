// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// External title types kept by search. Other kinds (videos, games,
// podcasts) are dropped.
const (
	TitleTypeMovie    = "movie"
	TitleTypeTVSeries = "tvSeries"
	TitleTypeTVMovie  = "tvMovie"
)

// NotAvailable is the display value for a field the provider did not supply.
const NotAvailable = "N/A"

// ExternalTitle is a normalized result from the external metadata provider.
// It is never stored in the catalog; it can only be added to the watchlist.
type ExternalTitle struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Year       string   `json:"year"`
	Poster     string   `json:"poster,omitempty"`
	TitleType  string   `json:"titleType,omitempty"`
	Plot       string   `json:"plot,omitempty"`
	Genre      string   `json:"genre,omitempty"`
	Cast       []string `json:"cast,omitempty"`
	RatingText string   `json:"ratingText"`
	Rating     *float64 `json:"rating,omitempty"`
	Rank       int      `json:"rank,omitempty"`
}

// IsSearchable reports whether t is a movie, series or TV movie.
func (t *ExternalTitle) IsSearchable() bool {
	switch t.TitleType {
	case TitleTypeMovie, TitleTypeTVSeries, TitleTypeTVMovie:
		return true
	default:
		return false
	}
}
