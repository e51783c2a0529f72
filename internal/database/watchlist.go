// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/marquee/internal/models"
)

const watchlistColumns = `id, movie_id, user_id, source, added_at, title, year, genre, rating, poster, synopsis`

func scanWatchlistEntry(row rowScanner) (*models.WatchlistEntry, error) {
	var (
		e       models.WatchlistEntry
		movieID string
		rating  sql.NullFloat64
	)
	if err := row.Scan(&e.ID, &movieID, &e.UserID, &e.Source, &e.AddedAt, &e.Title, &e.Year,
		&e.Genre, &rating, &e.Poster, &e.Synopsis); err != nil {
		return nil, err
	}
	e.MovieID = models.MovieRef(movieID)
	if rating.Valid {
		r := rating.Float64
		e.Rating = &r
	}
	return &e, nil
}

// ListWatchlist returns entries newest first. A non-empty movieID returns
// at most the one entry for that movie.
func (db *DB) ListWatchlist(ctx context.Context, movieID string) (entries []models.WatchlistEntry, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("list", "watchlist", start, err) }()

	query := `SELECT ` + watchlistColumns + ` FROM watchlist`
	var args []any
	if movieID != "" {
		query += ` WHERE movie_id = ?`
		args = append(args, movieID)
	}
	query += ` ORDER BY added_at DESC, id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries = []models.WatchlistEntry{}
	for rows.Next() {
		e, err := scanWatchlistEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watchlist: %w", err)
	}
	return entries, nil
}

// AddToWatchlist inserts e, assigning its ID and AddedAt when unset. A
// movie already in the watchlist yields ErrWatchlistConflict and leaves
// the existing entry untouched.
func (db *DB) AddToWatchlist(ctx context.Context, e *models.WatchlistEntry) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("insert", "watchlist", start, err) }()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.AddedAt.IsZero() {
		e.AddedAt = time.Now().UTC()
	}
	if e.Source == "" {
		e.Source = models.SourceLocal
		if !e.MovieID.IsLocal() {
			e.Source = models.SourceExternal
		}
	}

	_, err = db.conn.ExecContext(ctx, `INSERT INTO watchlist (`+watchlistColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.MovieID), e.UserID, e.Source, e.AddedAt, e.Title, e.Year,
		e.Genre, nullFloat(e.Rating), e.Poster, e.Synopsis,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrWatchlistConflict
		}
		return fmt.Errorf("failed to add to watchlist: %w", err)
	}
	return nil
}

// RemoveFromWatchlist deletes entry id or returns ErrWatchlistNotFound.
func (db *DB) RemoveFromWatchlist(ctx context.Context, id string) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("delete", "watchlist", start, err) }()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM watchlist WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove watchlist entry %s: %w", id, err)
	}
	return requireAffected(res, ErrWatchlistNotFound)
}
