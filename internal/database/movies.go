// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

const movieColumns = `id, title, genre, year, rating, duration, synopsis, director,
	cast_json, poster, trailer, release_date, language`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var (
		m        models.Movie
		year     sql.NullInt64
		rating   sql.NullFloat64
		castJSON string
	)
	if err := row.Scan(&m.ID, &m.Title, &m.Genre, &year, &rating, &m.Duration, &m.Synopsis, &m.Director,
		&castJSON, &m.Poster, &m.Trailer, &m.ReleaseDate, &m.Language); err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		m.Year = &y
	}
	if rating.Valid {
		r := rating.Float64
		m.Rating = &r
	}
	if castJSON != "" && castJSON != "[]" {
		if err := json.Unmarshal([]byte(castJSON), &m.Cast); err != nil {
			return nil, fmt.Errorf("failed to decode cast for movie %d: %w", m.ID, err)
		}
	}
	return &m, nil
}

func encodeCast(cast []string) (string, error) {
	if len(cast) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(cast)
	if err != nil {
		return "", fmt.Errorf("failed to encode cast: %w", err)
	}
	return string(b), nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

// ListMovies returns the catalog in ID order. A non-empty genre restricts
// the result to that genre.
func (db *DB) ListMovies(ctx context.Context, genre string) (movies []models.Movie, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("list", "movies", start, err) }()

	query := `SELECT ` + movieColumns + ` FROM movies`
	var args []any
	if genre != "" {
		query += ` WHERE genre = ?`
		args = append(args, genre)
	}
	query += ` ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	movies = []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}
	return movies, nil
}

// GetMovie returns one movie or ErrMovieNotFound.
func (db *DB) GetMovie(ctx context.Context, id int64) (m *models.Movie, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("get", "movies", start, err) }()

	row := db.conn.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err = scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return m, nil
}

// CreateMovie inserts m and sets m.ID.
func (db *DB) CreateMovie(ctx context.Context, m *models.Movie) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("insert", "movies", start, err) }()

	castJSON, err := encodeCast(m.Cast)
	if err != nil {
		return err
	}
	row := db.conn.QueryRowContext(ctx, `INSERT INTO movies (
		title, genre, year, rating, duration, synopsis, director,
		cast_json, poster, trailer, release_date, language
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		m.Title, m.Genre, nullInt(m.Year), nullFloat(m.Rating), m.Duration, m.Synopsis, m.Director,
		castJSON, m.Poster, m.Trailer, m.ReleaseDate, m.Language,
	)
	if err := row.Scan(&m.ID); err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

// UpdateMovie replaces every field of movie m.ID. It returns
// ErrMovieNotFound when no such movie exists.
func (db *DB) UpdateMovie(ctx context.Context, m *models.Movie) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("update", "movies", start, err) }()

	castJSON, err := encodeCast(m.Cast)
	if err != nil {
		return err
	}
	res, err := db.conn.ExecContext(ctx, `UPDATE movies SET
		title = ?, genre = ?, year = ?, rating = ?, duration = ?, synopsis = ?, director = ?,
		cast_json = ?, poster = ?, trailer = ?, release_date = ?, language = ?
	WHERE id = ?`,
		m.Title, m.Genre, nullInt(m.Year), nullFloat(m.Rating), m.Duration, m.Synopsis, m.Director,
		castJSON, m.Poster, m.Trailer, m.ReleaseDate, m.Language, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update movie %d: %w", m.ID, err)
	}
	return requireAffected(res, ErrMovieNotFound)
}

// DeleteMovie removes movie id. It returns ErrMovieNotFound when no such
// movie exists. Watchlist entries keep their copied display fields.
func (db *DB) DeleteMovie(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("delete", "movies", start, err) }()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}
	return requireAffected(res, ErrMovieNotFound)
}

// CountMovies returns the number of catalog movies.
func (db *DB) CountMovies(ctx context.Context) (n int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("count", "movies", start, err) }()

	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return n, nil
}

// requireAffected returns notFound when res touched no rows.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
