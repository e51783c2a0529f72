// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package session

import (
	"errors"

	"github.com/tomtom215/marquee/internal/kvstore"
)

// State groups the client's context objects over one store.
type State struct {
	History *SearchHistory
	Recent  *RecentlyViewed
	Auth    *Auth
}

// Limits sets the list caps.
type Limits struct {
	History int
	Recent  int
}

// Load creates every context object and fills it from store.
func Load(store kvstore.Store, limits Limits) (*State, error) {
	s := &State{
		History: NewSearchHistory(store, limits.History),
		Recent:  NewRecentlyViewed(store, limits.Recent),
		Auth:    NewAuth(store),
	}
	if err := errors.Join(s.History.Load(), s.Recent.Load(), s.Auth.Load()); err != nil {
		return nil, err
	}
	return s, nil
}

// Flush writes every context object back to the store.
func (s *State) Flush() error {
	return errors.Join(s.History.Flush(), s.Recent.Flush(), s.Auth.Flush())
}
