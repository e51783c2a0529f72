// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"sort"
	"strings"

	"github.com/tomtom215/marquee/internal/models"
)

// AllGenres is the facet value that disables the genre filter.
const AllGenres = "All"

// Filters are the catalog facets. Zero values are inactive.
type Filters struct {
	Genre     string  // "" or AllGenres for any
	Year      int     // 0 for any
	MinRating float64 // 0 for any
}

// Active reports whether any facet is set.
func (f Filters) Active() bool {
	return f.genreActive() || f.Year != 0 || f.MinRating > 0
}

func (f Filters) genreActive() bool {
	return f.Genre != "" && f.Genre != AllGenres
}

// Match reports whether m passes every active facet. The rating facet
// rejects movies without a rating and the year facet rejects movies
// without a year.
func (f Filters) Match(m *models.Movie) bool {
	if f.genreActive() && m.Genre != f.Genre {
		return false
	}
	if f.Year != 0 && (m.Year == nil || *m.Year != f.Year) {
		return false
	}
	if f.MinRating > 0 && (m.Rating == nil || *m.Rating < f.MinRating) {
		return false
	}
	return true
}

// FilterLocal returns the movies passing f, in catalog order.
func FilterLocal(movies []models.Movie, f Filters) []models.Movie {
	out := make([]models.Movie, 0, len(movies))
	for i := range movies {
		if f.Match(&movies[i]) {
			out = append(out, movies[i])
		}
	}
	return out
}

// MatchLocal returns the movies whose title, director or synopsis contains
// query, ignoring case. A blank query matches everything.
func MatchLocal(movies []models.Movie, query string) []models.Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]models.Movie(nil), movies...)
	}
	out := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(strings.ToLower(m.Director), q) ||
			strings.Contains(strings.ToLower(m.Synopsis), q) {
			out = append(out, m)
		}
	}
	return out
}

// Genres returns the distinct non-empty genres in first-seen order.
func Genres(movies []models.Movie) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range movies {
		if m.Genre == "" {
			continue
		}
		if _, ok := seen[m.Genre]; ok {
			continue
		}
		seen[m.Genre] = struct{}{}
		out = append(out, m.Genre)
	}
	return out
}

// Years returns the distinct known years, newest first.
func Years(movies []models.Movie) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, m := range movies {
		if m.Year == nil {
			continue
		}
		if _, ok := seen[*m.Year]; ok {
			continue
		}
		seen[*m.Year] = struct{}{}
		out = append(out, *m.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// GenreGroup is one row of the browse listing.
type GenreGroup struct {
	Genre  string
	Movies []models.Movie
}

// GroupByGenre groups movies by genre, genres in first-seen order.
// Movies without a genre are left out.
func GroupByGenre(movies []models.Movie) []GenreGroup {
	index := make(map[string]int)
	var groups []GenreGroup
	for _, m := range movies {
		if m.Genre == "" {
			continue
		}
		i, ok := index[m.Genre]
		if !ok {
			i = len(groups)
			index[m.Genre] = i
			groups = append(groups, GenreGroup{Genre: m.Genre})
		}
		groups[i].Movies = append(groups[i].Movies, m)
	}
	return groups
}
