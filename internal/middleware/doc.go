// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP instrumentation for the catalog server.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight gauge per route
  - AccessLog: one structured zerolog line per request

Both are chi-compatible (func(http.Handler) http.Handler) and label
requests by their chi route pattern, so /movies/{id} is one series no
matter how many IDs are requested.

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)
*/
package middleware
