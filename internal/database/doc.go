// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package database is the catalog service's DuckDB store.

Three tables back the REST API:

  - movies: the catalog, with integer IDs from a sequence
  - watchlist: saved movies, unique by movie_id across all users
  - users: accounts with unique username and email and a bcrypt hash

Constraint violations are reported as package sentinel errors
(ErrWatchlistConflict, ErrUserConflict) and missing rows as ErrMovieNotFound,
ErrWatchlistNotFound and ErrUserNotFound, so handlers can map them to HTTP
status codes with errors.Is.

Every query is timed into the db_query_* Prometheus metrics.
*/
package database
