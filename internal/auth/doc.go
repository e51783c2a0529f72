// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package auth verifies catalog credentials and issues login tokens.

Passwords are stored as bcrypt hashes and checked on the server; the client
session never holds a secret. A successful login yields an HS256 JWT carrying
the user ID, username and role, which Middleware validates on later requests
when the server runs with AUTH_MODE=jwt.

Usage:

	hash, err := auth.HashPassword("secret", cfg.Security.BcryptCost)
	ok := auth.CheckPassword(hash, "secret")

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	token, expiresAt, err := jwtManager.GenerateToken(user)
*/
package auth
