// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package external

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// Display fallbacks.
const (
	UnknownTitle = "Unknown Title"
	NoSynopsis   = "No synopsis available"
)

// probeKeys are tried in order when a field arrives as an object.
// plotText covers plot.plotText.plainText.
var probeKeys = []string{"text", "year", "plainText", "plotText", "url", "imageUrl", "aggregateRating", "rating"}

// maxDepth bounds recursion into nested objects.
const maxDepth = 4

// rule is one normalization step: when match accepts the value, extract
// produces the result. ok=false means the rule gave up and the fallback is
// used.
type rule struct {
	match   func(v interface{}) bool
	extract func(v interface{}, depth int) (string, bool)
}

var rules []rule

func init() {
	rules = []rule{
		{match: func(v interface{}) bool { return v == nil }, extract: func(interface{}, int) (string, bool) { return "", false }},
		{match: isScalar, extract: func(v interface{}, _ int) (string, bool) { return scalarString(v), true }},
		{match: isObject, extract: probeObject},
	}
}

// Value reduces a provider field to a display string. Scalars are returned
// as they are, objects are probed for a known key, and anything else
// (missing, null, arrays, objects with no known key) yields fallback.
func Value(v interface{}, fallback string) string {
	if s, ok := value(v, 0); ok {
		return s
	}
	return fallback
}

func value(v interface{}, depth int) (string, bool) {
	for _, r := range rules {
		if r.match(v) {
			return r.extract(v, depth)
		}
	}
	return "", false
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case string, json.Number, float64, float32, int, int64, int32, bool:
		return true
	}
	return false
}

func isObject(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, Record:
		return true
	}
	return false
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

// probeObject returns the first probe key holding a non-empty value.
// Nested objects are probed with the same rules.
func probeObject(v interface{}, depth int) (string, bool) {
	if depth >= maxDepth {
		return "", false
	}
	obj := asMap(v)
	for _, key := range probeKeys {
		inner, ok := obj[key]
		if !ok || isEmpty(inner) {
			continue
		}
		if s, ok := value(inner, depth+1); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func asMap(v interface{}) map[string]interface{} {
	switch t := v.(type) {
	case Record:
		return t
	case map[string]interface{}:
		return t
	}
	return nil
}

// isEmpty reports provider "falsy" values: empty strings, zero and false.
func isEmpty(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	}
	return false
}

// firstValue returns the first of vs that normalizes to a non-empty string.
func firstValue(fallback string, vs ...interface{}) string {
	for _, v := range vs {
		if isEmpty(v) {
			continue
		}
		if s, ok := value(v, 0); ok && s != "" {
			return s
		}
	}
	return fallback
}

// NormalizeAutoComplete builds a title from one auto-complete record.
// index is the record's position and names records without an ID.
//
// Auto-complete uses short keys: l (label), y (year), i (image), s (cast
// summary), q/qid (title type) and rank.
func NormalizeAutoComplete(rec Record, index int) models.ExternalTitle {
	t := models.ExternalTitle{
		ID:         firstValue(fmt.Sprintf("api-%d", index), rec["id"]),
		Title:      firstValue(UnknownTitle, rec["l"], rec["titleText"]),
		Year:       firstValue(models.NotAvailable, rec["y"], rec["releaseYear"]),
		Poster:     firstValue("", rec["i"], rec["primaryImage"]),
		TitleType:  firstValue(models.TitleTypeMovie, rec["qid"]),
		RatingText: models.NotAvailable,
	}
	if s := firstValue("", rec["s"]); s != "" {
		t.Cast = models.SplitCast(s)
	}
	t.Plot = firstValue("", rec["plot"], rec["s"])
	if rank := firstValue("", rec["rank"]); rank != "" {
		if n, err := strconv.Atoi(rank); err == nil {
			t.Rank = n
		}
	}
	applyRating(&t, rec["ratingsSummary"], rec["ratings"])
	return t
}

// NormalizeResults normalizes auto-complete records and keeps only
// movies, series and TV movies.
func NormalizeResults(recs []Record) []models.ExternalTitle {
	out := make([]models.ExternalTitle, 0, len(recs))
	for i, rec := range recs {
		if !isEmpty(rec["qid"]) {
			t := NormalizeAutoComplete(rec, i)
			if t.IsSearchable() {
				out = append(out, t)
			}
		}
	}
	return out
}

// MergeOverview overlays an overview-details response onto base. Fields the
// overview lacks keep the base value, then fall back to display defaults.
func MergeOverview(base models.ExternalTitle, overview Record) models.ExternalTitle {
	title := asMap(overview["title"])
	out := base

	out.Title = firstValue(orDefault(base.Title, UnknownTitle), title["title"], scalarOnly(overview["title"]))
	out.Year = firstValue(orDefault(base.Year, models.NotAvailable), title["year"], overview["year"])
	out.Poster = firstValue(base.Poster, title["image"], overview["primaryImage"])
	if tt := firstValue("", title["titleType"]); tt != "" {
		out.TitleType = tt
	}
	out.Plot = firstValue(orDefault(base.Plot, NoSynopsis), overview["plotSummary"], overview["plotOutline"], overview["plot"])
	if genres := stringList(overview["genres"]); len(genres) > 0 {
		out.Genre = genres[0]
	}
	if out.RatingText == "" {
		out.RatingText = models.NotAvailable
	}
	applyRating(&out, overview["ratings"], overview["ratingsSummary"])
	return out
}

// ratingKeys are probed for rating objects, which also carry unrelated
// keys such as year.
var ratingKeys = []string{"aggregateRating", "rating"}

// applyRating sets RatingText and Rating from the first rating-shaped value.
func applyRating(t *models.ExternalTitle, vs ...interface{}) {
	var text string
	for _, v := range vs {
		if obj := asMap(v); obj != nil {
			for _, key := range ratingKeys {
				if !isEmpty(obj[key]) && isScalar(obj[key]) {
					text = scalarString(obj[key])
					break
				}
			}
		} else if !isEmpty(v) && isScalar(v) {
			text = scalarString(v)
		}
		if text != "" {
			break
		}
	}
	if text == "" {
		return
	}
	t.RatingText = text
	if f, err := strconv.ParseFloat(text, 64); err == nil && f >= 0 && f <= 10 {
		t.Rating = &f
	}
}

// scalarOnly drops objects so a nested record is not probed for the wrong key.
func scalarOnly(v interface{}) interface{} {
	if isScalar(v) {
		return v
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" || s == models.NotAvailable {
		return def
	}
	return s
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
