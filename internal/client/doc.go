// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package client is the catalog REST client and the failure taxonomy it
// shares with the external metadata client.
//
// Failures are classified once, at the transport boundary, into the
// sentinels in errors.go. Callers test them with errors.Is and turn them
// into notices with UserMessage. Nothing is retried.
package client
