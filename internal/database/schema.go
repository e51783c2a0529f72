// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the sequences, tables and indexes.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS movies_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,

		`CREATE TABLE IF NOT EXISTS movies (
			id BIGINT PRIMARY KEY DEFAULT nextval('movies_id_seq'),
			title TEXT NOT NULL,
			genre TEXT NOT NULL,
			year INTEGER,
			rating DOUBLE,
			duration TEXT NOT NULL DEFAULT '',
			synopsis TEXT NOT NULL DEFAULT '',
			director TEXT NOT NULL,
			cast_json TEXT NOT NULL DEFAULT '[]',
			poster TEXT NOT NULL DEFAULT '',
			trailer TEXT NOT NULL DEFAULT '',
			release_date TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// movie_id is unique across all users: a movie is either in the
		// watchlist or not.
		`CREATE TABLE IF NOT EXISTS watchlist (
			id TEXT PRIMARY KEY,
			movie_id TEXT NOT NULL UNIQUE,
			user_id BIGINT NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT 'local',
			added_at TIMESTAMP NOT NULL,
			title TEXT NOT NULL,
			year TEXT NOT NULL DEFAULT '',
			genre TEXT NOT NULL DEFAULT '',
			rating DOUBLE,
			poster TEXT NOT NULL DEFAULT '',
			synopsis TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_movies_genre ON movies(genre)`,
	}
}
