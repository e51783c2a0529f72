// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package session

import (
	"fmt"
	"sync"

	"github.com/tomtom215/marquee/internal/kvstore"
	"github.com/tomtom215/marquee/internal/models"
)

// RecentlyViewed is the ordered list of movies whose details were opened,
// most recent first, without duplicate IDs.
type RecentlyViewed struct {
	store kvstore.Store
	limit int

	mu     sync.Mutex
	movies []models.Movie
}

// NewRecentlyViewed creates an empty list backed by store.
func NewRecentlyViewed(store kvstore.Store, limit int) *RecentlyViewed {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &RecentlyViewed{store: store, limit: limit}
}

func movieKey(m models.Movie) string { return m.IDString() }

// Load replaces the in-memory list with the cached one.
func (r *RecentlyViewed) Load() error {
	var movies []models.Movie
	if _, err := r.store.Get(kvstore.KeyRecentlyViewed, &movies); err != nil {
		return fmt.Errorf("failed to load recently viewed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies = nil
	seen := make(map[int64]struct{}, len(movies))
	for _, m := range movies {
		if len(r.movies) == r.limit {
			break
		}
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		r.movies = append(r.movies, m)
	}
	return nil
}

// Add records m as the most recently viewed movie. Viewing a movie already
// in the list moves it to the front.
func (r *RecentlyViewed) Add(m models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies = kvstore.PushFront(r.movies, m, movieKey, r.limit)
	return r.flushLocked()
}

// Clear empties the list and removes it from the cache.
func (r *RecentlyViewed) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies = nil
	if err := r.store.Clear(kvstore.KeyRecentlyViewed); err != nil {
		return fmt.Errorf("failed to clear recently viewed: %w", err)
	}
	return nil
}

// Movies returns a copy of the list, most recent first.
func (r *RecentlyViewed) Movies() []models.Movie {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Movie(nil), r.movies...)
}

// Flush writes the list to the cache.
func (r *RecentlyViewed) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked()
}

func (r *RecentlyViewed) flushLocked() error {
	movies := r.movies
	if movies == nil {
		movies = []models.Movie{}
	}
	if err := r.store.Set(kvstore.KeyRecentlyViewed, movies); err != nil {
		return fmt.Errorf("failed to save recently viewed: %w", err)
	}
	return nil
}
