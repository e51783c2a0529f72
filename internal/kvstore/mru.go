// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package kvstore

// PushFront returns a new list with item first, any earlier element with the
// same key removed, and the result truncated to limit. The input is not
// modified. A limit below 1 keeps only item.
func PushFront[T any](list []T, item T, key func(T) string, limit int) []T {
	if limit < 1 {
		limit = 1
	}
	k := key(item)
	out := make([]T, 0, min(len(list)+1, limit))
	out = append(out, item)
	for _, existing := range list {
		if len(out) == limit {
			break
		}
		if key(existing) == k {
			continue
		}
		out = append(out, existing)
	}
	return out
}

// Remove returns a new list without the elements whose key equals k.
func Remove[T any](list []T, k string, key func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, existing := range list {
		if key(existing) != k {
			out = append(out, existing)
		}
	}
	return out
}
