// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/authz"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/models"
)

const testJWTSecret = "test_secret_with_at_least_32_characters_for_testing"

// testDBSemaphore serializes DuckDB-backed tests.
var testDBSemaphore = make(chan struct{}, 1)

type testServer struct {
	db      *database.DB
	handler http.Handler
	jwt     *auth.JWTManager
}

func testConfig(authMode string) *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			AuthMode:          authMode,
			JWTSecret:         testJWTSecret,
			SessionTimeout:    time.Hour,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
			BcryptCost:        4,
		},
	}
}

// setupTestServer builds the full router over an in-memory database.
func setupTestServer(t *testing.T, authMode string) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig(authMode)
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatal(err)
	}
	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatal(err)
	}

	handler := NewHandler(db, cfg, jwtManager, "test")
	router := NewRouter(handler,
		NewChiMiddlewareFromSecurity(&cfg.Security),
		auth.NewMiddleware(jwtManager, authMode, RejectToken),
		authz.NewMiddleware(enforcer, DenyRequest),
	)
	return &testServer{db: db, handler: router.SetupChi(), jwt: jwtManager}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) tokenFor(t *testing.T, username, role string) string {
	t.Helper()
	u := models.User{Username: username, Email: username + "@example.com", Name: username, Role: role, PasswordHash: "x"}
	if err := s.db.CreateUser(context.Background(), &u); err != nil {
		t.Fatal(err)
	}
	token, _, err := s.jwt.GenerateToken(&u)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env models.ErrorResponse
	decode(t, rec, &env)
	return env.Error.Code
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t, "none")

	rec := s.do(t, http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var health models.HealthResponse
	decode(t, rec, &health)
	if health.Status != "ok" || health.Database != "connected" || health.Version != "test" {
		t.Errorf("health = %+v", health)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestMovieEndpoints(t *testing.T) {
	s := setupTestServer(t, "none")

	rec := s.do(t, http.MethodPost, "/movies", models.Movie{
		Title: "  Heat ", Genre: "Crime", Director: "Michael Mann", Year: models.IntPtr(1995),
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", rec.Code, rec.Body)
	}
	var created models.Movie
	decode(t, rec, &created)
	if created.ID == 0 || created.Title != "Heat" {
		t.Errorf("created = %+v", created)
	}
	s.do(t, http.MethodPost, "/movies", models.Movie{Title: "Arrival", Genre: "Sci-Fi", Director: "Denis Villeneuve"}, "")

	var crime []models.Movie
	rec = s.do(t, http.MethodGet, "/movies?genre=Crime", nil, "")
	decode(t, rec, &crime)
	if len(crime) != 1 || crime[0].Title != "Heat" {
		t.Errorf("genre filter = %+v", crime)
	}

	path := "/movies/" + created.IDString()
	created.Rating = models.FloatPtr(8.3)
	if rec = s.do(t, http.MethodPut, path, created, ""); rec.Code != http.StatusOK {
		t.Fatalf("update status = %d body = %s", rec.Code, rec.Body)
	}
	var got models.Movie
	decode(t, s.do(t, http.MethodGet, path, nil, ""), &got)
	if got.RatingValue() != 8.3 {
		t.Errorf("rating after update = %v", got.Rating)
	}

	if rec = s.do(t, http.MethodDelete, path, nil, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = s.do(t, http.MethodGet, path, nil, "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != ErrCodeNotFound {
		t.Errorf("get after delete = %d %s", rec.Code, rec.Body)
	}
}

func TestMovieEndpoints_BadInput(t *testing.T) {
	s := setupTestServer(t, "none")

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{"missing title", http.MethodPost, "/movies", models.Movie{Genre: "Crime", Director: "x"}, http.StatusBadRequest, ErrCodeValidation},
		{"rating out of range", http.MethodPost, "/movies", models.Movie{Title: "x", Genre: "x", Director: "x", Rating: models.FloatPtr(11)}, http.StatusBadRequest, ErrCodeValidation},
		{"bad id", http.MethodGet, "/movies/abc", nil, http.StatusBadRequest, ErrCodeBadRequest},
		{"missing movie", http.MethodDelete, "/movies/42", nil, http.StatusNotFound, ErrCodeNotFound},
		{"unknown route", http.MethodGet, "/nope", nil, http.StatusNotFound, ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if code := errorCode(t, rec); code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestWatchlistEndpoints(t *testing.T) {
	s := setupTestServer(t, "none")

	entry := map[string]interface{}{"movieId": 1, "title": "Inception", "genre": "Sci-Fi"}
	rec := s.do(t, http.MethodPost, "/watchlist", entry, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d body = %s", rec.Code, rec.Body)
	}
	var added models.WatchlistEntry
	decode(t, rec, &added)
	if added.ID == "" || added.MovieID != "1" || added.Source != models.SourceLocal {
		t.Errorf("added = %+v", added)
	}

	rec = s.do(t, http.MethodPost, "/watchlist", entry, "")
	if rec.Code != http.StatusConflict || errorCode(t, rec) != ErrCodeConflict {
		t.Fatalf("duplicate add = %d %s", rec.Code, rec.Body)
	}

	var entries []models.WatchlistEntry
	decode(t, s.do(t, http.MethodGet, "/watchlist?movieId=1", nil, ""), &entries)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	if rec = s.do(t, http.MethodDelete, "/watchlist/"+added.ID, nil, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("remove status = %d", rec.Code)
	}
	decode(t, s.do(t, http.MethodGet, "/watchlist", nil, ""), &entries)
	if len(entries) != 0 {
		t.Errorf("entries after remove = %d", len(entries))
	}
}

func TestSignupAndLogin(t *testing.T) {
	s := setupTestServer(t, "jwt")

	signup := models.SignupRequest{Name: "Alice", Username: "alice", Email: "Alice@Example.com", Password: "secret1"}
	rec := s.do(t, http.MethodPost, "/users", signup, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d body = %s", rec.Code, rec.Body)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("secret1")) || bytes.Contains(rec.Body.Bytes(), []byte("$2")) {
		t.Error("signup response leaked password material")
	}

	rec = s.do(t, http.MethodPost, "/users", signup, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate signup status = %d", rec.Code)
	}

	var found []models.Profile
	decode(t, s.do(t, http.MethodGet, "/users?email=alice@example.com", nil, ""), &found)
	if len(found) != 1 || found[0].Username != "alice" || found[0].Role != models.RoleUser {
		t.Errorf("lookup by email = %+v", found)
	}

	tests := []struct {
		name       string
		req        models.LoginRequest
		wantStatus int
	}{
		{"username", models.LoginRequest{Identifier: "alice", Password: "secret1"}, http.StatusOK},
		{"email", models.LoginRequest{Identifier: "alice@example.com", Password: "secret1"}, http.StatusOK},
		{"wrong password", models.LoginRequest{Identifier: "alice", Password: "nope"}, http.StatusUnauthorized},
		{"unknown user", models.LoginRequest{Identifier: "bob", Password: "secret1"}, http.StatusUnauthorized},
		{"missing password", models.LoginRequest{Identifier: "alice"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/auth/login", tt.req, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp models.LoginResponse
			decode(t, rec, &resp)
			if resp.User.Username != "alice" || resp.Token == "" {
				t.Errorf("login response = %+v", resp)
			}
			claims, err := s.jwt.ValidateToken(resp.Token)
			if err != nil || claims.UserID != resp.User.ID {
				t.Errorf("token claims = %+v, %v", claims, err)
			}
		})
	}
}

func TestLoginWithoutJWTReturnsNoToken(t *testing.T) {
	s := setupTestServer(t, "none")
	s.handler = NewRouter(NewHandler(s.db, testConfig("none"), nil, ""), nil, nil, nil).SetupChi()

	hash, err := auth.HashPassword("demo123", 4)
	if err != nil {
		t.Fatal(err)
	}
	u := models.User{Username: "demo", Email: "demo@example.com", Name: "Demo", PasswordHash: hash}
	if err := s.db.CreateUser(context.Background(), &u); err != nil {
		t.Fatal(err)
	}

	rec := s.do(t, http.MethodPost, "/auth/login", models.LoginRequest{Identifier: "demo", Password: "demo123"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	var resp models.LoginResponse
	decode(t, rec, &resp)
	if resp.Token != "" || resp.User.Username != "demo" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestWriteAuthorization(t *testing.T) {
	s := setupTestServer(t, "jwt")
	userToken := s.tokenFor(t, "carol", models.RoleUser)
	adminToken := s.tokenFor(t, "root", models.RoleAdmin)

	movie := models.Movie{Title: "Heat", Genre: "Crime", Director: "Michael Mann"}
	entry := models.WatchlistEntry{MovieID: "tt0113277", Title: "Heat"}

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		token      string
		wantStatus int
	}{
		{"anonymous read", http.MethodGet, "/movies", nil, "", http.StatusOK},
		{"anonymous watchlist write", http.MethodPost, "/watchlist", entry, "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/movies", nil, "garbage", http.StatusUnauthorized},
		{"user movie write", http.MethodPost, "/movies", movie, userToken, http.StatusForbidden},
		{"user watchlist write", http.MethodPost, "/watchlist", entry, userToken, http.StatusCreated},
		{"admin movie write", http.MethodPost, "/movies", movie, adminToken, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body, tt.token)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
		})
	}
}
