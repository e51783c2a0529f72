// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves the catalog REST interface over a chi router.

Routes:

	GET    /health
	GET    /metrics
	GET    /movies[?genre=]        POST /movies
	GET    /movies/{id}            PUT  /movies/{id}      DELETE /movies/{id}
	GET    /watchlist[?movieId=]   POST /watchlist        DELETE /watchlist/{id}
	GET    /users[?username=|?email=]                      POST /users
	GET    /users/{id}
	POST   /auth/login

Successful responses are bare JSON arrays or objects so that existing
catalog fixtures keep working. Failures use a single envelope:

	{"error": {"code": "CONFLICT", "message": "movie already in watchlist"}}

Password hashes never leave the server. With AUTH_MODE=jwt, writes pass
through the authz RBAC policy; reads, signup and login stay public.
*/
package api
