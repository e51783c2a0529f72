// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"regexp"
)

const youTubeEmbedBase = "https://www.youtube.com/embed/"

var (
	youTubeIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([^&\n?#]+)`),
		regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
	}
	youTubeHostPattern = regexp.MustCompile(`youtube\.com|youtu\.be`)
)

// ExtractYouTubeID returns the video ID of a YouTube watch, share, embed
// or /v/ URL, or "" if url is not a recognized YouTube link.
func ExtractYouTubeID(url string) string {
	if url == "" {
		return ""
	}
	for _, p := range youTubeIDPatterns {
		if m := p.FindStringSubmatch(url); len(m) > 1 && m[1] != "" {
			return m[1]
		}
	}
	return ""
}

// YouTubeEmbedURL returns an autoplaying embed URL for a YouTube link, or
// "" when no video ID can be extracted.
func YouTubeEmbedURL(url string) string {
	id := ExtractYouTubeID(url)
	if id == "" {
		return ""
	}
	return youTubeEmbedBase + id + "?autoplay=1&rel=0"
}

// IsYouTubeURL reports whether url points at YouTube.
func IsYouTubeURL(url string) bool {
	return url != "" && youTubeHostPattern.MatchString(url)
}

// TrailerURL returns the playable trailer link for m: the embed URL for
// YouTube trailers, the raw link otherwise.
func (m *Movie) TrailerURL() string {
	if embed := YouTubeEmbedURL(m.Trailer); embed != "" {
		return embed
	}
	return m.Trailer
}
