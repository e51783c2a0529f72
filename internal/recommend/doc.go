// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend ranks catalog movies for the home and profile screens:
// trending, recommended by recent viewing, the featured movie and the
// watchlist statistics.
//
// All functions are pure and deterministic. Sorting is stable, so movies
// that compare equal keep their catalog order.
package recommend
