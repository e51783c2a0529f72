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
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

const userColumns = `id, username, email, name, role, password_hash, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserFilter narrows ListUsers. Empty fields are ignored.
type UserFilter struct {
	Username string
	Email    string
}

// ListUsers returns users in ID order.
func (db *DB) ListUsers(ctx context.Context, filter UserFilter) (users []models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("list", "users", start, err) }()

	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	var args []any
	if filter.Username != "" {
		query += ` AND username = ?`
		args = append(args, filter.Username)
	}
	if filter.Email != "" {
		query += ` AND email = ?`
		args = append(args, strings.ToLower(filter.Email))
	}
	query += ` ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users = []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// GetUser returns one user or ErrUserNotFound.
func (db *DB) GetUser(ctx context.Context, id int64) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("get", "users", start, err) }()

	u, err = scanUser(db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

// FindUserByLogin returns the user whose username or email equals
// identifier, or ErrUserNotFound.
func (db *DB) FindUserByLogin(ctx context.Context, identifier string) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("find", "users", start, err) }()

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ? ORDER BY id LIMIT 1`,
		identifier, strings.ToLower(identifier))
	u, err = scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

// CreateUser inserts u and sets its ID and CreatedAt. PasswordHash must
// already be a bcrypt hash. A taken username or email yields ErrUserConflict.
func (db *DB) CreateUser(ctx context.Context, u *models.User) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("insert", "users", start, err) }()

	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = strings.ToLower(u.Email)

	row := db.conn.QueryRowContext(ctx, `INSERT INTO users (username, email, name, role, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		u.Username, u.Email, u.Name, u.Role, u.PasswordHash, u.CreatedAt)
	if err := row.Scan(&u.ID); err != nil {
		if isUniqueConstraintError(err) {
			return ErrUserConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
