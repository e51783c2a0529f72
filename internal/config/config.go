// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds the configuration shared by the catalog server and the CLI.
// Each binary reads the sections it needs; unused sections keep their defaults.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	External ExternalConfig `koanf:"external"`
	Search   SearchConfig   `koanf:"search"`
	Storage  StorageConfig  `koanf:"storage"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings for the catalog service.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// DatabaseConfig holds DuckDB settings for the catalog service.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`   // 0 = DuckDB default
	SeedData  bool   `koanf:"seed_data"` // load demo users and movies into an empty database
}

// SecurityConfig holds authentication, authorization and rate limit settings.
type SecurityConfig struct {
	// AuthMode is "none" (open local development server) or "jwt"
	// (writes require a bearer token and pass the RBAC policy).
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	LoginRateLimit    int           `koanf:"login_rate_limit"` // attempts per minute per IP
	CORSOrigins       []string      `koanf:"cors_origins"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
}

// CatalogConfig points the client at the catalog service.
type CatalogConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// ExternalConfig configures the external movie metadata provider.
//
// Environment Variables:
//   - RAPIDAPI_KEY: provider API key (required for remote search)
//   - RAPIDAPI_HOST: value of the x-rapidapi-host header
//   - EXTERNAL_API_URL: provider base URL
type ExternalConfig struct {
	URL               string        `koanf:"url"`
	APIKey            string        `koanf:"api_key"`
	APIHost           string        `koanf:"api_host"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	BreakerEnabled    bool          `koanf:"breaker_enabled"`
}

// SearchConfig tunes the search pipeline and the cached lists.
type SearchConfig struct {
	Debounce       time.Duration `koanf:"debounce"`
	MinQueryLength int           `koanf:"min_query_length"`
	HistoryLimit   int           `koanf:"history_limit"`
	RecentLimit    int           `koanf:"recent_limit"`
	ResultLimit    int           `koanf:"result_limit"` // trending and recommended list size
}

// StorageConfig locates the client's persistent key-value cache.
type StorageConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address of the catalog server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs with production checks.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
