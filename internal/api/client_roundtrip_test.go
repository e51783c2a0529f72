// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/client"
	"github.com/tomtom215/marquee/internal/models"
)

// TestCatalogClientRoundTrip drives the server through the real client so
// the wire format stays compatible in both directions.
func TestCatalogClientRoundTrip(t *testing.T) {
	s := setupTestServer(t, "jwt")
	server := httptest.NewServer(s.handler)
	t.Cleanup(server.Close)

	ctx := context.Background()
	c := client.NewCatalogClient(server.URL, 5*time.Second)

	health, err := c.Health(ctx)
	if err != nil || health.Status != "ok" {
		t.Fatalf("Health() = %+v, %v", health, err)
	}

	profile, err := c.Register(ctx, &models.SignupRequest{Name: "Dana", Username: "dana", Email: "dana@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := c.FindUserByUsername(ctx, "dana"); err != nil {
		t.Errorf("FindUserByUsername() error = %v", err)
	}

	// Writes need a token.
	entry := models.WatchlistEntry{MovieID: "tt0816692", Title: "Interstellar"}
	if _, err := c.AddToWatchlist(ctx, &entry); client.KindOf(err) != client.KindAuth {
		t.Fatalf("anonymous AddToWatchlist() error = %v, want auth failure", err)
	}

	login, err := c.Login(ctx, &models.LoginRequest{Identifier: "dana@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.User.ID != profile.ID || login.Token == "" {
		t.Fatalf("Login() = %+v", login)
	}
	c.SetToken(login.Token)

	if _, err := c.AddToWatchlist(ctx, &entry); err != nil {
		t.Fatalf("AddToWatchlist() error = %v", err)
	}
	_, err = c.AddToWatchlist(ctx, &entry)
	if !errors.Is(err, client.ErrConflict) {
		t.Fatalf("duplicate AddToWatchlist() error = %v, want ErrConflict", err)
	}
	if got := client.UserMessage(err); got != "Movie already in watchlist." {
		t.Errorf("UserMessage() = %q", got)
	}

	found, err := c.FindWatchlistEntry(ctx, "tt0816692")
	if err != nil || found == nil || found.Source != models.SourceExternal {
		t.Fatalf("FindWatchlistEntry() = %+v, %v", found, err)
	}
	if err := c.RemoveMovieFromWatchlist(ctx, "tt0816692"); err != nil {
		t.Fatalf("RemoveMovieFromWatchlist() error = %v", err)
	}
	if err := c.RemoveMovieFromWatchlist(ctx, "tt0816692"); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("second remove error = %v, want ErrNotFound", err)
	}

	// A regular user cannot add movies.
	_, err = c.CreateMovie(ctx, &models.Movie{Title: "Heat", Genre: "Crime", Director: "Michael Mann"})
	if client.KindOf(err) != client.KindAuth {
		t.Errorf("CreateMovie() as user error = %v, want auth failure", err)
	}
	if _, err := c.GetMovie(ctx, 99); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("GetMovie(99) error = %v, want ErrNotFound", err)
	}
}
