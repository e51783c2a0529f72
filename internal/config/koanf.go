// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. They are loaded first and
// then overridden by the config file and the environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3001,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:      "./data/marquee.duckdb",
			MaxMemory: "512MB",
			Threads:   0,
			SeedData:  true,
		},
		Security: SecurityConfig{
			AuthMode:        "none",
			JWTSecret:       "",
			SessionTimeout:  24 * time.Hour,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			LoginRateLimit:  10,
			CORSOrigins:     []string{"*"},
			BcryptCost:      12,
		},
		Catalog: CatalogConfig{
			URL:     "http://localhost:3001",
			Timeout: 5 * time.Second,
		},
		External: ExternalConfig{
			URL:               "https://imdb8.p.rapidapi.com",
			APIHost:           "imdb8.p.rapidapi.com",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
			BreakerEnabled:    true,
		},
		Search: SearchConfig{
			Debounce:       500 * time.Millisecond,
			MinQueryLength: 2,
			HistoryLimit:   10,
			RecentLimit:    10,
			ResultLimit:    10,
		},
		Storage: StorageConfig{
			Path: DefaultStoragePath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultStoragePath returns the per-user directory for the client cache,
// falling back to a directory under the working directory.
func DefaultStoragePath() string {
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "marquee")
	}
	return filepath.Join(".marquee", "cache")
}

// LoadWithKoanf loads configuration in three layers:
//  1. Defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated environment values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_data":         "database.seed_data",

	// Security
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"login_rate_limit":    "security.login_rate_limit",
	"cors_origins":        "security.cors_origins",
	"bcrypt_cost":         "security.bcrypt_cost",

	// Catalog client
	"api_url":     "catalog.url",
	"api_timeout": "catalog.timeout",

	// External metadata provider
	"external_api_url":       "external.url",
	"rapidapi_key":           "external.api_key",
	"rapidapi_host":          "external.api_host",
	"external_api_timeout":   "external.timeout",
	"external_api_rps":       "external.requests_per_second",
	"external_api_burst":     "external.burst",
	"external_api_breaker":   "external.breaker_enabled",
	"search_debounce":        "search.debounce",
	"search_min_length":      "search.min_query_length",
	"search_history_limit":   "search.history_limit",
	"recently_viewed_limit":  "search.recent_limit",
	"recommendation_limit":   "search.result_limit",
	"marquee_storage_path":   "storage.path",
	"marquee_storage_memory": "storage.in_memory",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - API_URL -> catalog.url
//   - RAPIDAPI_KEY -> external.api_key
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
