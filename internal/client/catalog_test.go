// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *CatalogClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCatalogClient(server.URL, time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCatalogClient_ListMovies(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/movies" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, []models.Movie{
			{ID: 1, Title: "Inception", Genre: "Sci-Fi", Director: "Christopher Nolan"},
			{ID: 2, Title: "Heat", Genre: "Crime", Director: "Michael Mann"},
		})
	})

	movies, err := c.ListMovies(context.Background())
	if err != nil {
		t.Fatalf("ListMovies() error = %v", err)
	}
	if len(movies) != 2 || movies[0].Title != "Inception" {
		t.Errorf("ListMovies() = %+v", movies)
	}
}

func TestCatalogClient_ListMoviesByGenre(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("genre"); got != "Sci-Fi" {
			t.Errorf("genre query = %q, want Sci-Fi", got)
		}
		writeJSON(w, http.StatusOK, []models.Movie{{ID: 1, Title: "Inception", Genre: "Sci-Fi"}})
	})

	movies, err := c.ListMoviesByGenre(context.Background(), "Sci-Fi")
	if err != nil {
		t.Fatalf("ListMoviesByGenre() error = %v", err)
	}
	if len(movies) != 1 {
		t.Errorf("len = %d, want 1", len(movies))
	}
}

func TestCatalogClient_SendsBearerToken(t *testing.T) {
	t.Parallel()

	var got string
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteMovie(context.Background(), 3); err != nil {
		t.Fatalf("DeleteMovie() without token error = %v", err)
	}
	if got != "" {
		t.Errorf("Authorization = %q, want empty", got)
	}

	c.SetToken("abc")
	if err := c.DeleteMovie(context.Background(), 3); err != nil {
		t.Fatalf("DeleteMovie() error = %v", err)
	}
	if got != "Bearer abc" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer abc")
	}
}

func TestCatalogClient_AddToWatchlist(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "created", status: http.StatusCreated},
		{name: "duplicate", status: http.StatusConflict, wantErr: ErrConflict},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrAuthFailed},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
				var in models.WatchlistEntry
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					t.Errorf("decode body: %v", err)
				}
				if tt.status >= 400 {
					writeJSON(w, tt.status, models.ErrorResponse{Error: models.APIError{Code: "X", Message: "movie already in watchlist"}})
					return
				}
				in.ID = "w1"
				writeJSON(w, tt.status, in)
			})

			entry := models.WatchlistEntry{MovieID: "1", Title: "Inception", Source: models.SourceLocal}
			got, err := c.AddToWatchlist(context.Background(), &entry)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AddToWatchlist() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddToWatchlist() error = %v", err)
			}
			if got.ID != "w1" || got.MovieID != "1" {
				t.Errorf("AddToWatchlist() = %+v", got)
			}
		})
	}
}

func TestCatalogClient_RemoveMovieFromWatchlist(t *testing.T) {
	t.Parallel()

	var deleted string
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if r.URL.Query().Get("movieId") == "tt0111161" {
				writeJSON(w, http.StatusOK, []models.WatchlistEntry{{ID: "w9", MovieID: "tt0111161"}})
				return
			}
			writeJSON(w, http.StatusOK, []models.WatchlistEntry{})
		case http.MethodDelete:
			deleted = strings.TrimPrefix(r.URL.Path, "/watchlist/")
			w.WriteHeader(http.StatusNoContent)
		}
	})

	if err := c.RemoveMovieFromWatchlist(context.Background(), "tt0111161"); err != nil {
		t.Fatalf("RemoveMovieFromWatchlist() error = %v", err)
	}
	if deleted != "w9" {
		t.Errorf("deleted entry = %q, want w9", deleted)
	}

	err := c.RemoveMovieFromWatchlist(context.Background(), "42")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveMovieFromWatchlist(missing) error = %v, want ErrNotFound", err)
	}
}

func TestCatalogClient_FindUser(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") == "demo" {
			writeJSON(w, http.StatusOK, []models.Profile{{ID: 3, Username: "demo"}})
			return
		}
		writeJSON(w, http.StatusOK, []models.Profile{})
	})

	u, err := c.FindUserByUsername(context.Background(), "demo")
	if err != nil || u == nil || u.ID != 3 {
		t.Fatalf("FindUserByUsername(demo) = %+v, %v", u, err)
	}
	u, err = c.FindUserByUsername(context.Background(), "nobody")
	if err != nil || u != nil {
		t.Fatalf("FindUserByUsername(nobody) = %+v, %v, want nil, nil", u, err)
	}
}

func TestCatalogClient_Unreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c := NewCatalogClient(addr, time.Second)
	_, err := c.ListMovies(context.Background())
	if !errors.Is(err, ErrServerUnreachable) {
		t.Fatalf("error = %v, want ErrServerUnreachable", err)
	}
	if KindOf(err) != KindUnreachable {
		t.Errorf("KindOf() = %q", KindOf(err))
	}
}

func TestCatalogClient_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c := NewCatalogClient(server.URL, 50*time.Millisecond)
	_, err := c.ListMovies(context.Background())
	if !errors.Is(err, ErrServerUnreachable) {
		t.Fatalf("error = %v, want ErrServerUnreachable", err)
	}
}

func TestCatalogClient_CallerCancel(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListMovies(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrServerUnreachable) {
		t.Error("caller cancellation must not be reported as unreachable")
	}
}

func TestNewCatalogClient_DefaultTimeout(t *testing.T) {
	t.Parallel()

	c := NewCatalogClient("http://localhost:3001/", 0)
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.httpClient.Timeout, DefaultTimeout)
	}
	if c.baseURL != "http://localhost:3001" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}
