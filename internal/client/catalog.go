// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// DefaultTimeout bounds every catalog request.
const DefaultTimeout = 5 * time.Second

// CatalogClientInterface is the catalog service surface used by the CLI,
// the search pipeline and the recommendation views.
type CatalogClientInterface interface {
	SetToken(token string)
	Health(ctx context.Context) (*models.HealthResponse, error)

	ListMovies(ctx context.Context) ([]models.Movie, error)
	ListMoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error)
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	CreateMovie(ctx context.Context, m *models.Movie) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id int64, m *models.Movie) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error

	ListWatchlist(ctx context.Context) ([]models.WatchlistEntry, error)
	FindWatchlistEntry(ctx context.Context, movieID models.MovieRef) (*models.WatchlistEntry, error)
	AddToWatchlist(ctx context.Context, e *models.WatchlistEntry) (*models.WatchlistEntry, error)
	RemoveFromWatchlist(ctx context.Context, id string) error
	RemoveMovieFromWatchlist(ctx context.Context, movieID models.MovieRef) error

	ListUsers(ctx context.Context) ([]models.Profile, error)
	GetUser(ctx context.Context, id int64) (*models.Profile, error)
	FindUserByUsername(ctx context.Context, username string) (*models.Profile, error)
	FindUserByEmail(ctx context.Context, email string) (*models.Profile, error)
	Register(ctx context.Context, req *models.SignupRequest) (*models.Profile, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

var _ CatalogClientInterface = (*CatalogClient)(nil)

// CatalogClient talks to the catalog REST service.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewCatalogClient creates a client for the service at baseURL. A zero
// timeout selects DefaultTimeout.
func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CatalogClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent with every request. An empty token
// sends none.
func (c *CatalogClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *CatalogClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// doRequest sends one request and decodes a 2xx body into out when out is
// non-nil.
func (c *CatalogClient) doRequest(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := Do(ctx, c.httpClient, req, "catalog")
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("method", method).Str("path", path).Msg("Catalog request failed")
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	logging.Ctx(ctx).Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Catalog request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewStatusError(method+" "+path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %v", ErrRequestFailed, path, err)
	}
	return nil
}

// Health calls GET /health.
func (c *CatalogClient) Health(ctx context.Context) (*models.HealthResponse, error) {
	var out models.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMovies returns the whole catalog.
func (c *CatalogClient) ListMovies(ctx context.Context) ([]models.Movie, error) {
	var out []models.Movie
	if err := c.doRequest(ctx, http.MethodGet, "/movies", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMoviesByGenre returns the movies whose genre equals genre.
func (c *CatalogClient) ListMoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	var out []models.Movie
	if err := c.doRequest(ctx, http.MethodGet, "/movies", url.Values{"genre": {genre}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMovie returns one movie.
func (c *CatalogClient) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	var out models.Movie
	if err := c.doRequest(ctx, http.MethodGet, moviePath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMovie adds m and returns the stored movie with its assigned ID.
func (c *CatalogClient) CreateMovie(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	var out models.Movie
	if err := c.doRequest(ctx, http.MethodPost, "/movies", nil, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMovie replaces movie id with m.
func (c *CatalogClient) UpdateMovie(ctx context.Context, id int64, m *models.Movie) (*models.Movie, error) {
	var out models.Movie
	if err := c.doRequest(ctx, http.MethodPut, moviePath(id), nil, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMovie removes movie id.
func (c *CatalogClient) DeleteMovie(ctx context.Context, id int64) error {
	return c.doRequest(ctx, http.MethodDelete, moviePath(id), nil, nil, nil)
}

func moviePath(id int64) string {
	return "/movies/" + strconv.FormatInt(id, 10)
}

// ListWatchlist returns every watchlist entry, newest first.
func (c *CatalogClient) ListWatchlist(ctx context.Context) ([]models.WatchlistEntry, error) {
	var out []models.WatchlistEntry
	if err := c.doRequest(ctx, http.MethodGet, "/watchlist", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindWatchlistEntry returns the entry for movieID, or nil when the movie
// is not in the watchlist.
func (c *CatalogClient) FindWatchlistEntry(ctx context.Context, movieID models.MovieRef) (*models.WatchlistEntry, error) {
	var out []models.WatchlistEntry
	q := url.Values{"movieId": {string(movieID)}}
	if err := c.doRequest(ctx, http.MethodGet, "/watchlist", q, nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// AddToWatchlist adds e. A movie already present yields ErrConflict.
func (c *CatalogClient) AddToWatchlist(ctx context.Context, e *models.WatchlistEntry) (*models.WatchlistEntry, error) {
	var out models.WatchlistEntry
	if err := c.doRequest(ctx, http.MethodPost, "/watchlist", nil, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFromWatchlist deletes the entry with the given entry ID.
func (c *CatalogClient) RemoveFromWatchlist(ctx context.Context, id string) error {
	return c.doRequest(ctx, http.MethodDelete, "/watchlist/"+url.PathEscape(id), nil, nil, nil)
}

// RemoveMovieFromWatchlist looks up the entry for movieID and deletes it.
// A movie that is not in the watchlist yields ErrNotFound.
func (c *CatalogClient) RemoveMovieFromWatchlist(ctx context.Context, movieID models.MovieRef) error {
	entry, err := c.FindWatchlistEntry(ctx, movieID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("movie %s is not in the watchlist: %w", movieID, ErrNotFound)
	}
	return c.RemoveFromWatchlist(ctx, entry.ID)
}

// ListUsers returns every user profile.
func (c *CatalogClient) ListUsers(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	if err := c.doRequest(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser returns one user profile.
func (c *CatalogClient) GetUser(ctx context.Context, id int64) (*models.Profile, error) {
	var out models.Profile
	if err := c.doRequest(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindUserByUsername returns the user with that username, or nil.
func (c *CatalogClient) FindUserByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return c.findUser(ctx, url.Values{"username": {username}})
}

// FindUserByEmail returns the user with that email, or nil.
func (c *CatalogClient) FindUserByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return c.findUser(ctx, url.Values{"email": {email}})
}

func (c *CatalogClient) findUser(ctx context.Context, q url.Values) (*models.Profile, error) {
	var out []models.Profile
	if err := c.doRequest(ctx, http.MethodGet, "/users", q, nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// Register creates an account. A taken username or email yields ErrConflict.
func (c *CatalogClient) Register(ctx context.Context, req *models.SignupRequest) (*models.Profile, error) {
	var out models.Profile
	if err := c.doRequest(ctx, http.MethodPost, "/users", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login verifies credentials. Wrong credentials yield ErrAuthFailed.
func (c *CatalogClient) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
