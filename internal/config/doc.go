// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee configuration with koanf.
//
// Sources are layered, later sources winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/marquee/config.yaml
//  3. Environment variables
//
// Both binaries share one Config. The catalog server reads the server,
// database and security sections; the CLI reads catalog, external, search
// and storage. Logging applies to both.
//
// # Example config.yaml
//
//	server:
//	  port: 3001
//	security:
//	  auth_mode: jwt
//	  jwt_secret: "change-me-to-a-32-character-secret"
//	external:
//	  api_key: "..."
//	search:
//	  debounce: 500ms
//
// # Environment Variables
//
//	HTTP_PORT, DUCKDB_PATH, AUTH_MODE, JWT_SECRET, CORS_ORIGINS
//	API_URL, API_TIMEOUT
//	RAPIDAPI_KEY, RAPIDAPI_HOST, EXTERNAL_API_URL, EXTERNAL_API_TIMEOUT
//	SEARCH_DEBOUNCE, SEARCH_MIN_LENGTH, MARQUEE_STORAGE_PATH
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
package config
