// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package authz gates catalog writes with a Casbin RBAC policy.
//
// Requests are mapped to (role, path, action) where action is derived from
// the HTTP method. The embedded policy lets anyone read and sign up, lets
// "user" and "admin" change the watchlist and reserves movie writes for
// "admin". Roles inherit upward, so admin can do everything user can.
package authz
