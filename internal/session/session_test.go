// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/marquee/internal/kvstore"
	"github.com/tomtom215/marquee/internal/models"
)

// newTestStore opens an in-memory store and returns the raw database for
// tests that plant bytes directly.
func newTestStore(t *testing.T) (*kvstore.BadgerStore, *badger.DB) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("badger.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return kvstore.New(db), db
}

func plant(t *testing.T, db *badger.DB, key, raw string) {
	t.Helper()
	if err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(raw))
	}); err != nil {
		t.Fatalf("plant %s: %v", key, err)
	}
}

func TestSearchHistory_AddMovesToFrontAndCaps(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	h := NewSearchHistory(store, 10)

	for i := 0; i < 12; i++ {
		if err := h.Add(fmt.Sprintf("term%d", i)); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	terms := h.Terms()
	if len(terms) != 10 {
		t.Fatalf("len = %d, want 10", len(terms))
	}
	if terms[0] != "term11" || terms[9] != "term2" {
		t.Errorf("terms = %v", terms)
	}

	if err := h.Add("term5"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	terms = h.Terms()
	if len(terms) != 10 || terms[0] != "term5" {
		t.Errorf("after re-add: %v", terms)
	}
	count := 0
	for _, term := range terms {
		if term == "term5" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("term5 appears %d times, want 1", count)
	}
}

func TestSearchHistory_IgnoresBlankAndTrims(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	h := NewSearchHistory(store, 10)

	_ = h.Add("   ")
	_ = h.Add("  matrix ")
	_ = h.Add("matrix")

	terms := h.Terms()
	if len(terms) != 1 || terms[0] != "matrix" {
		t.Errorf("terms = %q, want [matrix]", terms)
	}
}

func TestSearchHistory_PersistsAcrossLoad(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	h := NewSearchHistory(store, 10)
	_ = h.Add("heat")
	_ = h.Add("alien")

	reloaded := NewSearchHistory(store, 10)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	terms := reloaded.Terms()
	if len(terms) != 2 || terms[0] != "alien" || terms[1] != "heat" {
		t.Errorf("reloaded = %v", terms)
	}
}

func TestSearchHistory_RemoveAndClear(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	h := NewSearchHistory(store, 10)
	_ = h.Add("a")
	_ = h.Add("b")
	_ = h.Add("c")

	if err := h.Remove("b"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if terms := h.Terms(); len(terms) != 2 || terms[0] != "c" || terms[1] != "a" {
		t.Errorf("after remove: %v", terms)
	}

	if err := h.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	var cached []string
	found, err := store.Get(kvstore.KeySearchHistory, &cached)
	if err != nil || found {
		t.Errorf("cache after Clear: found=%v err=%v", found, err)
	}
}

func TestSearchHistory_LoadCorruptEntry(t *testing.T) {
	t.Parallel()

	store, db := newTestStore(t)
	plant(t, db, kvstore.KeySearchHistory, "{not json")

	h := NewSearchHistory(store, 10)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(h.Terms()) != 0 {
		t.Errorf("terms = %v, want empty", h.Terms())
	}
}

func TestSearchHistory_LoadDedupesAndCaps(t *testing.T) {
	t.Parallel()

	store, db := newTestStore(t)
	plant(t, db, kvstore.KeySearchHistory, `["a","b","a","","c","d"]`)

	h := NewSearchHistory(store, 3)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	terms := h.Terms()
	if len(terms) != 3 || terms[0] != "a" || terms[1] != "b" || terms[2] != "c" {
		t.Errorf("terms = %v, want [a b c]", terms)
	}
}

func TestRecentlyViewed_AddDedupesByID(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	r := NewRecentlyViewed(store, 10)

	for id := int64(1); id <= 11; id++ {
		if err := r.Add(models.Movie{ID: id, Title: fmt.Sprintf("Movie %d", id)}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	movies := r.Movies()
	if len(movies) != 10 || movies[0].ID != 11 || movies[9].ID != 2 {
		t.Fatalf("movies = %d items, first %d", len(movies), movies[0].ID)
	}

	// A renamed copy of an existing movie still replaces it.
	_ = r.Add(models.Movie{ID: 5, Title: "Renamed"})
	movies = r.Movies()
	if len(movies) != 10 || movies[0].ID != 5 || movies[0].Title != "Renamed" {
		t.Errorf("after re-view: first = %+v, len = %d", movies[0], len(movies))
	}
}

func TestRecentlyViewed_PersistsAndClears(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	r := NewRecentlyViewed(store, 10)
	_ = r.Add(models.Movie{ID: 1, Title: "Heat", Genre: "Crime"})

	reloaded := NewRecentlyViewed(store, 10)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := reloaded.Movies(); len(got) != 1 || got[0].Genre != "Crime" {
		t.Errorf("reloaded = %+v", got)
	}

	if err := reloaded.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if len(reloaded.Movies()) != 0 {
		t.Error("Movies() not empty after Clear")
	}
}

func TestAuth_LoginLogout(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	a := NewAuth(store)

	if a.IsAuthenticated() {
		t.Fatal("new Auth should be signed out")
	}

	s := models.Session{User: models.Profile{ID: 2, Username: "user1", Role: models.RoleUser}, Token: "tok"}
	if err := a.Login(s); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if a.Token() != "tok" {
		t.Errorf("Token() = %q", a.Token())
	}

	reloaded := NewAuth(store)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cur, err := reloaded.Current()
	if err != nil || cur.User.Username != "user1" {
		t.Errorf("Current() = %+v, %v", cur, err)
	}

	if err := reloaded.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := reloaded.Current(); err != ErrNotAuthenticated {
		t.Errorf("Current() after logout error = %v", err)
	}
}

func TestAuth_LoadDropsExpiredSession(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	expired := models.Session{
		User:      models.Profile{Username: "demo"},
		Token:     "old",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := store.Set(kvstore.KeyUser, expired); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	a := NewAuth(store)
	if err := a.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if a.IsAuthenticated() {
		t.Error("expired session should not authenticate")
	}
	var s models.Session
	if found, _ := store.Get(kvstore.KeyUser, &s); found {
		t.Error("expired session should be removed from the cache")
	}
}

func TestAuth_LoginRequiresUser(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	if err := NewAuth(store).Login(models.Session{}); err == nil {
		t.Error("Login() with empty user should fail")
	}
}

func TestState_LoadAndFlush(t *testing.T) {
	t.Parallel()

	store, db := newTestStore(t)
	plant(t, db, kvstore.KeyRecentlyViewed, "garbage")

	st, err := Load(store, Limits{History: 5, Recent: 5})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	_ = st.History.Add("dune")
	if err := st.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	again, err := Load(store, Limits{})
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if terms := again.History.Terms(); len(terms) != 1 || terms[0] != "dune" {
		t.Errorf("history = %v", terms)
	}
	if len(again.Recent.Movies()) != 0 {
		t.Error("recently viewed should be empty")
	}
}
