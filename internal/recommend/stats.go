// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"math"

	"github.com/tomtom215/marquee/internal/models"
)

// MinutesPerTitle is the watch time assumed for each watchlist entry.
const MinutesPerTitle = 120

// Stats summarizes a watchlist for the profile screen.
type Stats struct {
	Total         int     `json:"total"`
	FavoriteGenre string  `json:"favoriteGenre"`
	AverageRating float64 `json:"averageRating"`
	RatedCount    int     `json:"ratedCount"`
	WatchMinutes  int     `json:"watchMinutes"`
}

// WatchHours returns the estimated watch time in whole hours.
func (s Stats) WatchHours() int {
	return s.WatchMinutes / 60
}

// ProfileStats computes watchlist statistics. The favorite genre is
// models.NotAvailable when no entry has a genre, and the average covers
// only rated entries, rounded to one decimal.
func ProfileStats(entries []models.WatchlistEntry) Stats {
	s := Stats{
		Total:         len(entries),
		FavoriteGenre: models.NotAvailable,
		WatchMinutes:  len(entries) * MinutesPerTitle,
	}

	genres := make([]string, len(entries))
	var sum float64
	for i, e := range entries {
		genres[i] = e.Genre
		if e.Rating != nil {
			sum += *e.Rating
			s.RatedCount++
		}
	}
	if g, ok := mostFrequent(genres); ok {
		s.FavoriteGenre = g
	}
	if s.RatedCount > 0 {
		s.AverageRating = math.Round(sum/float64(s.RatedCount)*10) / 10
	}
	return s
}
