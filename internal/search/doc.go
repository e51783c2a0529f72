// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package search implements catalog filtering and the dual-source search
pipeline.

Local matching is synchronous: facet filters narrow the catalog, then a
case-insensitive substring match on title, director and synopsis applies.
Remote lookups go to the external metadata provider after a trailing-edge
debounce. Each query change bumps a generation counter and cancels the
previous lookup, and a response is applied only if its generation is still
current, so a slow answer to an old query never overwrites a newer one.
*/
package search
