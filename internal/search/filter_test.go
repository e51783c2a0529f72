// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"reflect"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func testCatalog() []models.Movie {
	return []models.Movie{
		{ID: 1, Title: "Inception", Genre: "Sci-Fi", Director: "Christopher Nolan", Year: models.IntPtr(2010), Rating: models.FloatPtr(8.8), Synopsis: "A thief who steals corporate secrets through dreams."},
		{ID: 2, Title: "Heat", Genre: "Crime", Director: "Michael Mann", Year: models.IntPtr(1995), Rating: models.FloatPtr(8.3), Synopsis: "A group of professional bank robbers."},
		{ID: 3, Title: "Interstellar", Genre: "Sci-Fi", Director: "Christopher Nolan", Year: models.IntPtr(2014), Synopsis: "Explorers travel through a wormhole."},
		{ID: 4, Title: "Arrival", Genre: "Sci-Fi", Director: "Denis Villeneuve", Rating: models.FloatPtr(7.9), Synopsis: "A linguist works with the military."},
		{ID: 5, Title: "Collateral", Genre: "Crime", Director: "Michael Mann", Year: models.IntPtr(2004), Rating: models.FloatPtr(7.5)},
	}
}

func ids(movies []models.Movie) []int64 {
	out := make([]int64, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func TestFilterLocal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		filters Filters
		want    []int64
	}{
		{name: "no filters", filters: Filters{}, want: []int64{1, 2, 3, 4, 5}},
		{name: "all genres", filters: Filters{Genre: AllGenres}, want: []int64{1, 2, 3, 4, 5}},
		{name: "genre", filters: Filters{Genre: "Crime"}, want: []int64{2, 5}},
		{name: "year excludes unknown", filters: Filters{Year: 2010}, want: []int64{1}},
		{name: "min rating excludes unrated", filters: Filters{MinRating: 7}, want: []int64{1, 2, 4, 5}},
		{name: "min rating threshold", filters: Filters{MinRating: 8}, want: []int64{1, 2}},
		{name: "intersection", filters: Filters{Genre: "Sci-Fi", MinRating: 8}, want: []int64{1}},
		{name: "nothing", filters: Filters{Genre: "Western"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ids(FilterLocal(testCatalog(), tt.filters))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterLocal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchLocal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  []int64
	}{
		{query: "INCEP", want: []int64{1}},
		{query: "nolan", want: []int64{1, 3}},
		{query: "wormhole", want: []int64{3}},
		{query: "  mann ", want: []int64{2, 5}},
		{query: "zzz", want: []int64{}},
		{query: "", want: []int64{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			got := ids(MatchLocal(testCatalog(), tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchLocal(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFiltersActive(t *testing.T) {
	t.Parallel()

	if (Filters{Genre: AllGenres}).Active() {
		t.Error("All genres should be inactive")
	}
	if !(Filters{MinRating: 5}).Active() {
		t.Error("min rating should be active")
	}
}

func TestGenresAndYears(t *testing.T) {
	t.Parallel()

	if got := Genres(testCatalog()); !reflect.DeepEqual(got, []string{"Sci-Fi", "Crime"}) {
		t.Errorf("Genres() = %v", got)
	}
	if got := Years(testCatalog()); !reflect.DeepEqual(got, []int{2014, 2010, 2004, 1995}) {
		t.Errorf("Years() = %v", got)
	}
}

func TestGroupByGenre(t *testing.T) {
	t.Parallel()

	groups := GroupByGenre(testCatalog())
	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	if groups[0].Genre != "Sci-Fi" || !reflect.DeepEqual(ids(groups[0].Movies), []int64{1, 3, 4}) {
		t.Errorf("groups[0] = %s %v", groups[0].Genre, ids(groups[0].Movies))
	}
	if groups[1].Genre != "Crime" || !reflect.DeepEqual(ids(groups[1].Movies), []int64{2, 5}) {
		t.Errorf("groups[1] = %s %v", groups[1].Genre, ids(groups[1].Movies))
	}
}
