// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"sort"

	"github.com/tomtom215/marquee/internal/models"
)

// DefaultLimit is the number of movies in each home screen row.
const DefaultLimit = 10

// Trending returns up to limit movies ordered by rating descending, ties
// broken by year descending. Missing ratings and years count as zero.
func Trending(catalog []models.Movie, limit int) []models.Movie {
	out := append([]models.Movie(nil), catalog...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].RatingValue(), out[j].RatingValue()
		if ri != rj {
			return ri > rj
		}
		return out[i].YearValue() > out[j].YearValue()
	})
	return capped(out, limit)
}

// FavoriteGenre returns the most frequent non-empty genre in movies.
// On a tie the genre seen first wins. ok is false when no movie has a genre.
func FavoriteGenre(movies []models.Movie) (genre string, ok bool) {
	genres := make([]string, len(movies))
	for i := range movies {
		genres[i] = movies[i].Genre
	}
	return mostFrequent(genres)
}

// Recommended returns up to limit catalog movies in the favorite genre of
// recent that are not themselves in recent, highest rated first. It is
// empty when recent is empty or has no genres.
func Recommended(catalog, recent []models.Movie, limit int) []models.Movie {
	genre, ok := FavoriteGenre(recent)
	if !ok {
		return []models.Movie{}
	}

	viewed := make(map[int64]struct{}, len(recent))
	for _, m := range recent {
		viewed[m.ID] = struct{}{}
	}

	out := make([]models.Movie, 0, limit)
	for _, m := range catalog {
		if m.Genre != genre {
			continue
		}
		if _, seen := viewed[m.ID]; seen {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RatingValue() > out[j].RatingValue()
	})
	return capped(out, limit)
}

// Featured returns the highest rated movie, the first one on a tie.
func Featured(catalog []models.Movie) (models.Movie, bool) {
	if len(catalog) == 0 {
		return models.Movie{}, false
	}
	best := 0
	for i := 1; i < len(catalog); i++ {
		if catalog[i].RatingValue() > catalog[best].RatingValue() {
			best = i
		}
	}
	return catalog[best], true
}

func capped(movies []models.Movie, limit int) []models.Movie {
	if limit < 1 {
		limit = DefaultLimit
	}
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}

// mostFrequent returns the most common non-empty string, first seen on a tie.
func mostFrequent(values []string) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, true
}
