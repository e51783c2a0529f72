// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/marquee/internal/kvstore"
)

// DefaultLimit caps the history and recently viewed lists.
const DefaultLimit = 10

// SearchHistory is the ordered list of committed search terms, most
// recent first, without duplicates.
type SearchHistory struct {
	store kvstore.Store
	limit int

	mu    sync.Mutex
	terms []string
}

// NewSearchHistory creates an empty history backed by store. A limit below
// 1 selects DefaultLimit.
func NewSearchHistory(store kvstore.Store, limit int) *SearchHistory {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &SearchHistory{store: store, limit: limit}
}

func identity(s string) string { return s }

// Load replaces the in-memory list with the cached one. A missing or
// corrupt entry leaves the history empty.
func (h *SearchHistory) Load() error {
	var terms []string
	if _, err := h.store.Get(kvstore.KeySearchHistory, &terms); err != nil {
		return fmt.Errorf("failed to load search history: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		if term = strings.TrimSpace(term); term != "" {
			cleaned = append(cleaned, term)
		}
	}
	h.terms = dedupe(cleaned, h.limit)
	return nil
}

// Add records term as the most recent search. Blank terms are ignored.
func (h *SearchHistory) Add(term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.terms = kvstore.PushFront(h.terms, term, identity, h.limit)
	return h.flushLocked()
}

// Remove deletes term from the history.
func (h *SearchHistory) Remove(term string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.terms = kvstore.Remove(h.terms, strings.TrimSpace(term), identity)
	return h.flushLocked()
}

// Clear empties the history and removes it from the cache.
func (h *SearchHistory) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.terms = nil
	if err := h.store.Clear(kvstore.KeySearchHistory); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}

// Terms returns a copy of the history, most recent first.
func (h *SearchHistory) Terms() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.terms...)
}

// Flush writes the history to the cache.
func (h *SearchHistory) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flushLocked()
}

func (h *SearchHistory) flushLocked() error {
	terms := h.terms
	if terms == nil {
		terms = []string{}
	}
	if err := h.store.Set(kvstore.KeySearchHistory, terms); err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}
	return nil
}

// dedupe keeps the first occurrence of each term, up to limit.
func dedupe(terms []string, limit int) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, min(len(terms), limit))
	for _, t := range terms {
		if len(out) == limit {
			break
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
