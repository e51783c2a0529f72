// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package cli implements the marquee command-line client.

The CLI is the presentational layer over the client toolkit: it talks to
the catalog service through client.CatalogClient, to the external metadata
provider through external.Service, and keeps search history, recently
viewed movies and the signed-in session in the persistent key-value cache.

Command tree:

	marquee movies list|show|add|edit|delete
	marquee search <query> [--genre --year --min-rating]
	marquee trending | recommended
	marquee watchlist list|add|remove|check
	marquee history list|clear|remove
	marquee recent list|clear
	marquee signup | login | logout | whoami | profile
	marquee external show <id>

Configuration comes from internal/config (koanf), overridable with the
persistent --catalog-url, --storage and --log-level flags. Logs go to
stderr at warn level by default so command output stays clean.
*/
package cli
