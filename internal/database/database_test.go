// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
)

// testDBSemaphore serializes DuckDB tests. Concurrent CGO connections can
// hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates an in-memory database held for the whole test.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func plainHash(p string) (string, error) { return "hash:" + p, nil }

func TestMovieCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	m := models.Movie{
		Title: "Heat", Genre: "Crime", Director: "Michael Mann",
		Year: models.IntPtr(1995), Rating: models.FloatPtr(8.3),
		Cast: []string{"Al Pacino", "Robert De Niro"},
	}
	if err := db.CreateMovie(ctx, &m); err != nil {
		t.Fatalf("CreateMovie() error = %v", err)
	}
	if m.ID == 0 {
		t.Fatal("CreateMovie() did not assign an ID")
	}

	got, err := db.GetMovie(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}
	if got.Title != "Heat" || got.YearValue() != 1995 || got.RatingValue() != 8.3 || len(got.Cast) != 2 {
		t.Errorf("GetMovie() = %+v", got)
	}

	got.Rating = nil
	got.Synopsis = "Updated"
	if err := db.UpdateMovie(ctx, got); err != nil {
		t.Fatalf("UpdateMovie() error = %v", err)
	}
	updated, _ := db.GetMovie(ctx, m.ID)
	if updated.Rating != nil || updated.Synopsis != "Updated" {
		t.Errorf("after update: %+v", updated)
	}

	if err := db.DeleteMovie(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMovie() error = %v", err)
	}
	if _, err := db.GetMovie(ctx, m.ID); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("GetMovie() after delete error = %v, want ErrMovieNotFound", err)
	}
	if err := db.DeleteMovie(ctx, m.ID); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("second DeleteMovie() error = %v, want ErrMovieNotFound", err)
	}
	missing := models.Movie{ID: 999, Title: "x", Genre: "x", Director: "x"}
	if err := db.UpdateMovie(ctx, &missing); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("UpdateMovie(missing) error = %v, want ErrMovieNotFound", err)
	}
}

func TestListMoviesByGenre(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, m := range []models.Movie{
		{Title: "Heat", Genre: "Crime", Director: "Michael Mann"},
		{Title: "Arrival", Genre: "Sci-Fi", Director: "Denis Villeneuve"},
		{Title: "Collateral", Genre: "Crime", Director: "Michael Mann"},
	} {
		m := m
		if err := db.CreateMovie(ctx, &m); err != nil {
			t.Fatalf("CreateMovie() error = %v", err)
		}
	}

	all, err := db.ListMovies(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("ListMovies() = %d, %v", len(all), err)
	}
	crime, err := db.ListMovies(ctx, "Crime")
	if err != nil || len(crime) != 2 || crime[0].Title != "Heat" {
		t.Errorf("ListMovies(Crime) = %+v, %v", crime, err)
	}
	none, err := db.ListMovies(ctx, "Western")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("ListMovies(Western) = %v, %v, want empty non-nil", none, err)
	}
}

func TestWatchlistUniqueByMovie(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := models.WatchlistEntry{MovieID: "1", Title: "Heat", UserID: 2}
	if err := db.AddToWatchlist(ctx, &first); err != nil {
		t.Fatalf("AddToWatchlist() error = %v", err)
	}
	if first.ID == "" || first.Source != models.SourceLocal || first.AddedAt.IsZero() {
		t.Errorf("defaults not applied: %+v", first)
	}

	dup := models.WatchlistEntry{MovieID: "1", Title: "Heat", UserID: 3}
	if err := db.AddToWatchlist(ctx, &dup); !errors.Is(err, ErrWatchlistConflict) {
		t.Fatalf("duplicate AddToWatchlist() error = %v, want ErrWatchlistConflict", err)
	}

	entries, err := db.ListWatchlist(ctx, "1")
	if err != nil {
		t.Fatalf("ListWatchlist() error = %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != 2 {
		t.Errorf("entries = %+v, want the original entry only", entries)
	}
}

func TestWatchlistListAndRemove(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	older := models.WatchlistEntry{MovieID: "1", Title: "Heat", AddedAt: time.Now().Add(-time.Hour).UTC()}
	newer := models.WatchlistEntry{MovieID: "tt0111161", Title: "The Shawshank Redemption", Rating: models.FloatPtr(9.3)}
	for _, e := range []*models.WatchlistEntry{&older, &newer} {
		if err := db.AddToWatchlist(ctx, e); err != nil {
			t.Fatalf("AddToWatchlist() error = %v", err)
		}
	}
	if newer.Source != models.SourceExternal {
		t.Errorf("Source = %q, want external", newer.Source)
	}

	entries, err := db.ListWatchlist(ctx, "")
	if err != nil || len(entries) != 2 {
		t.Fatalf("ListWatchlist() = %d, %v", len(entries), err)
	}
	if entries[0].MovieID != "tt0111161" || entries[0].Rating == nil || *entries[0].Rating != 9.3 {
		t.Errorf("first entry = %+v, want newest", entries[0])
	}

	if err := db.RemoveFromWatchlist(ctx, older.ID); err != nil {
		t.Fatalf("RemoveFromWatchlist() error = %v", err)
	}
	if err := db.RemoveFromWatchlist(ctx, older.ID); !errors.Is(err, ErrWatchlistNotFound) {
		t.Errorf("second remove error = %v, want ErrWatchlistNotFound", err)
	}

	// Removing frees the movie for a new add.
	again := models.WatchlistEntry{MovieID: "1", Title: "Heat"}
	if err := db.AddToWatchlist(ctx, &again); err != nil {
		t.Errorf("re-add after remove error = %v", err)
	}
}

func TestUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := models.User{Username: "alice", Email: "Alice@Example.com", Name: "Alice", PasswordHash: "h"}
	if err := db.CreateUser(ctx, &u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if u.ID == 0 || u.Role != models.RoleUser || u.Email != "alice@example.com" {
		t.Errorf("CreateUser() = %+v", u)
	}

	tests := []struct {
		name string
		user models.User
	}{
		{name: "same username", user: models.User{Username: "alice", Email: "other@example.com", Name: "A", PasswordHash: "h"}},
		{name: "same email", user: models.User{Username: "alice2", Email: "ALICE@example.com", Name: "A", PasswordHash: "h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			if err := db.CreateUser(ctx, &u); !errors.Is(err, ErrUserConflict) {
				t.Errorf("CreateUser() error = %v, want ErrUserConflict", err)
			}
		})
	}

	byName, err := db.ListUsers(ctx, UserFilter{Username: "alice"})
	if err != nil || len(byName) != 1 {
		t.Errorf("ListUsers(username) = %v, %v", byName, err)
	}
	byEmail, err := db.ListUsers(ctx, UserFilter{Email: "ALICE@EXAMPLE.COM"})
	if err != nil || len(byEmail) != 1 {
		t.Errorf("ListUsers(email) = %v, %v", byEmail, err)
	}

	for _, ident := range []string{"alice", "alice@example.com"} {
		found, err := db.FindUserByLogin(ctx, ident)
		if err != nil || found.ID != u.ID || found.PasswordHash != "h" {
			t.Errorf("FindUserByLogin(%q) = %+v, %v", ident, found, err)
		}
	}
	if _, err := db.FindUserByLogin(ctx, "bob"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("FindUserByLogin(bob) error = %v, want ErrUserNotFound", err)
	}
	if _, err := db.GetUser(ctx, 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser(999) error = %v, want ErrUserNotFound", err)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SeedIfEmpty(ctx, plainHash); err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	// A second run must not duplicate rows.
	if err := db.SeedIfEmpty(ctx, plainHash); err != nil {
		t.Fatalf("second SeedIfEmpty() error = %v", err)
	}

	users, _ := db.ListUsers(ctx, UserFilter{})
	if len(users) != len(seedUsers) {
		t.Errorf("users = %d, want %d", len(users), len(seedUsers))
	}
	admin, err := db.FindUserByLogin(ctx, "admin")
	if err != nil || admin.Role != models.RoleAdmin || admin.PasswordHash != "hash:admin123" {
		t.Errorf("admin = %+v, %v", admin, err)
	}
	n, _ := db.CountMovies(ctx)
	if n != int64(len(seedMovies)) {
		t.Errorf("movies = %d, want %d", n, len(seedMovies))
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New(`Constraint Error: Duplicate key "movie_id: 1" violates unique constraint.`), true},
		{errors.New("some other failure"), false},
	}
	for _, tt := range tests {
		if got := isUniqueConstraintError(tt.err); got != tt.want {
			t.Errorf("isUniqueConstraintError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
