// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a catalog service account. PasswordHash is a bcrypt hash and is
// never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile returns the client-visible projection of u.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Profile is the part of a user that clients may see and cache.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Username        string `json:"username" validate:"required,min=3,max=32,alphanumunicode"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword,omitempty" validate:"omitempty,eqfield=Password"`
}

// LoginRequest is the login payload. Identifier is a username or an email.
type LoginRequest struct {
	Identifier string `json:"username" validate:"required,max=254"`
	Password   string `json:"password" validate:"required,max=72"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User      Profile   `json:"user"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Session is the client's persisted authentication state. Its absence
// means the client is not authenticated. It never carries a password.
type Session struct {
	User      Profile   `json:"user"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the session token has passed its expiry.
// Sessions without a token (open servers) never expire.
func (s *Session) Expired(now time.Time) bool {
	return s.Token != "" && !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
