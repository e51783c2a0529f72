// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tomtom215/marquee/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func ratingText(r *float64) string {
	if r == nil {
		return models.NotAvailable
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func yearText(y *int) string {
	if y == nil {
		return models.NotAvailable
	}
	return strconv.Itoa(*y)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.NotAvailable
	}
	return s
}

func printMovies(w io.Writer, movies []models.Movie) error {
	if len(movies) == 0 {
		_, err := fmt.Fprintln(w, "No movies found.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tGENRE\tRATING")
	for i := range movies {
		m := &movies[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Title, yearText(m.Year), orNA(m.Genre), ratingText(m.Rating))
	}
	return tw.Flush()
}

func printMovie(w io.Writer, m *models.Movie, inWatchlist bool) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Title:\t%s\n", m.Title)
	fmt.Fprintf(tw, "Year:\t%s\n", yearText(m.Year))
	fmt.Fprintf(tw, "Genre:\t%s\n", orNA(m.Genre))
	fmt.Fprintf(tw, "Rating:\t%s\n", ratingText(m.Rating))
	fmt.Fprintf(tw, "Director:\t%s\n", orNA(m.Director))
	fmt.Fprintf(tw, "Duration:\t%s\n", orNA(m.Duration))
	fmt.Fprintf(tw, "Released:\t%s\n", orNA(m.ReleaseDate))
	fmt.Fprintf(tw, "Language:\t%s\n", orNA(m.Language))
	fmt.Fprintf(tw, "Cast:\t%s\n", orNA(strings.Join(m.Cast, ", ")))
	if trailer := m.TrailerURL(); trailer != "" {
		fmt.Fprintf(tw, "Trailer:\t%s\n", trailer)
	}
	fmt.Fprintf(tw, "Watchlist:\t%s\n", yesNo(inWatchlist))
	if err := tw.Flush(); err != nil {
		return err
	}
	if m.Synopsis != "" {
		_, err := fmt.Fprintf(w, "\n%s\n", m.Synopsis)
		return err
	}
	return nil
}

func printExternalTitles(w io.Writer, titles []models.ExternalTitle) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tTYPE\tRATING")
	for i := range titles {
		t := &titles[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, orNA(t.Year), orNA(t.TitleType), orNA(t.RatingText))
	}
	return tw.Flush()
}

func printExternalTitle(w io.Writer, t *models.ExternalTitle) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	fmt.Fprintf(tw, "Year:\t%s\n", orNA(t.Year))
	fmt.Fprintf(tw, "Type:\t%s\n", orNA(t.TitleType))
	fmt.Fprintf(tw, "Genre:\t%s\n", orNA(t.Genre))
	fmt.Fprintf(tw, "Rating:\t%s\n", orNA(t.RatingText))
	fmt.Fprintf(tw, "Cast:\t%s\n", orNA(strings.Join(t.Cast, ", ")))
	if err := tw.Flush(); err != nil {
		return err
	}
	if t.Plot != "" {
		_, err := fmt.Fprintf(w, "\n%s\n", t.Plot)
		return err
	}
	return nil
}

func printWatchlist(w io.Writer, entries []models.WatchlistEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Your watchlist is empty.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "MOVIE\tTITLE\tYEAR\tGENRE\tRATING\tSOURCE")
	for i := range entries {
		e := &entries[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.MovieID, e.Title, orNA(e.Year), orNA(e.Genre), ratingText(e.Rating), e.Source)
	}
	return tw.Flush()
}

func printTerms(w io.Writer, terms []string, empty string) error {
	if len(terms) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	for _, t := range terms {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
