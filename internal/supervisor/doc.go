// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package supervisor runs the catalog server's long-lived services under a
// suture supervisor tree.
//
// The tree has two layers so that a crashing background task never takes
// the HTTP listener down with it:
//   - background: database monitor
//   - api: HTTP server
//
// Supervisor events are logged through sutureslog into the zerolog-backed
// slog handler from the logging package.
package supervisor
