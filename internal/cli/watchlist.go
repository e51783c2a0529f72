// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/client"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

func newWatchlistCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage your watchlist",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List watchlist entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a := app()
				entries, err := a.catalog.ListWatchlist(cmd.Context())
				if err != nil {
					return err
				}
				return printWatchlist(a.out, entries)
			},
		},
		&cobra.Command{
			Use:   "add <movie-id>",
			Short: "Add a catalog movie or an external title (tt...) to the watchlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return addToWatchlist(cmd.Context(), app(), models.MovieRef(args[0]))
			},
		},
		&cobra.Command{
			Use:   "remove <movie-id>",
			Short: "Remove a movie from the watchlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := app()
				ref := models.MovieRef(args[0])
				if err := a.catalog.RemoveMovieFromWatchlist(cmd.Context(), ref); err != nil {
					return err
				}
				_, err := fmt.Fprintf(a.out, "Removed %s from your watchlist.\n", ref)
				return err
			},
		},
		&cobra.Command{
			Use:   "check <movie-id>",
			Short: "Report whether a movie is in the watchlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := app()
				entry, err := a.catalog.FindWatchlistEntry(cmd.Context(), models.MovieRef(args[0]))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, yesNo(entry != nil))
				return err
			},
		},
	)
	return cmd
}

// addToWatchlist resolves ref against the catalog or the external
// provider and stores the entry. A movie that is already present is
// reported as a notice, not a failure.
func addToWatchlist(ctx context.Context, a *App, ref models.MovieRef) error {
	entry, err := resolveEntry(ctx, a, ref)
	if err != nil {
		return err
	}
	if verr := validation.ValidateWatchlistEntry(&entry); verr != nil {
		return verr
	}

	added, err := a.catalog.AddToWatchlist(ctx, &entry)
	if err != nil {
		if client.IsInformational(err) {
			_, werr := fmt.Fprintln(a.out, client.UserMessage(err))
			return werr
		}
		return err
	}
	_, err = fmt.Fprintf(a.out, "Added %q to your watchlist.\n", added.Title)
	return err
}

func resolveEntry(ctx context.Context, a *App, ref models.MovieRef) (models.WatchlistEntry, error) {
	if ref.IsLocal() {
		id, err := parseMovieID(string(ref))
		if err != nil {
			return models.WatchlistEntry{}, err
		}
		m, err := a.catalog.GetMovie(ctx, id)
		if err != nil {
			return models.WatchlistEntry{}, err
		}
		return models.EntryFromMovie(m), nil
	}

	if err := a.requireExternal(); err != nil {
		return models.WatchlistEntry{}, err
	}
	t, err := a.external.Title(ctx, string(ref), models.ExternalTitle{})
	if err != nil {
		return models.WatchlistEntry{}, err
	}
	return models.EntryFromExternal(&t), nil
}
