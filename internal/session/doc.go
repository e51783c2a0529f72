// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package session holds the client's persisted state: search history,
// recently viewed movies and the signed-in user.
//
// Each context object is created empty, filled from the key-value cache by
// Load and written back by Flush. Every mutation flushes, so the cache
// always holds the latest state. Methods are safe for concurrent use.
package session
