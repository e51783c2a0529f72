// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the data structures shared by the Marquee catalog
server, its client toolkit and the command-line front end.

Key Components:

  - Movie: a catalog entry served by the catalog service
  - WatchlistEntry: a movie saved to the watchlist, local or external
  - User, Profile: server-side account and its client-visible projection
  - Session: the client's persisted authentication state
  - ExternalTitle: a normalized result from the external metadata provider
  - ErrorResponse, APIError: the catalog service error envelope

JSON field names use camelCase so that payloads stay compatible with
existing catalog fixtures.
*/
package models
