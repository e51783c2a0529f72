// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package external is the client for the third-party title metadata provider
(the imdb8 API on RapidAPI) and the normalization of its responses.

The provider returns loosely shaped records: a field may be a plain value,
a nested object or missing. Value reduces any of those to a display string,
and NormalizeAutoComplete and MergeOverview build models.ExternalTitle values
from raw records. Nothing from the provider is written to the catalog.

Client adds the credential headers, a client-side token bucket and a 10
second timeout. CircuitBreakerClient wraps any ClientInterface with
sony/gobreaker. Failures are classified with the client package taxonomy
and are never retried.
*/
package external
