// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides zerolog-based structured logging for Marquee.
//
// A single global logger is configured once at startup from the logging
// section of the configuration and is then used everywhere through the
// package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("Catalog server listening")
//	logging.Ctx(ctx).Warn().Err(err).Msg("External lookup failed")
//
// Ctx attaches the request ID set by the HTTP middleware and the
// correlation ID set by the CLI for each invocation.
//
// # Configuration
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  include caller file:line (default: false)
//
// The CLI defaults to console output at warn level so command output is
// not interleaved with log lines.
//
// # slog
//
// NewSlogLogger returns an *slog.Logger backed by zerolog for libraries
// that only accept slog, such as sutureslog in the supervisor tree.
package logging
