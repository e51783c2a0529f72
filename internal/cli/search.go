// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/client"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/search"
)

func newSearchCommand(app func() *App) *cobra.Command {
	var f search.Filters
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog and the external movie database",
		Long: `Search matches the query against catalog titles, directors and
synopses, and looks it up in the external movie database. Queries shorter
than the configured minimum only list the filtered catalog.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			ctx := cmd.Context()

			catalog, err := a.catalog.ListMovies(ctx)
			if err != nil {
				// The remote lookup can still succeed without the catalog.
				fmt.Fprintln(a.errOut, "Warning:", describe(err))
				catalog = nil
			}

			p := search.NewPipeline(a.searcher(), a.state.History, search.Options{
				Debounce:       a.cfg.Search.Debounce,
				MinQueryLength: a.cfg.Search.MinQueryLength,
			})
			defer p.Close()

			p.SetCatalog(catalog)
			p.SetFilters(f)
			p.SetQuery(strings.Join(args, " "))
			if err := p.SearchNow(ctx); err != nil {
				if !isClientError(err) {
					return err
				}
				fmt.Fprintln(a.errOut, "Warning:", client.UserMessage(err))
			}
			return printSearch(a, p.Display())
		},
	}
	cmd.Flags().StringVar(&f.Genre, "genre", "", "only catalog movies of this genre")
	cmd.Flags().IntVar(&f.Year, "year", 0, "only catalog movies from this year")
	cmd.Flags().Float64Var(&f.MinRating, "min-rating", 0, "only catalog movies rated at least this")
	return cmd
}

func printSearch(a *App, d search.Display) error {
	if d.NoResults {
		_, err := fmt.Fprintf(a.out, "No results for %q.\n", d.Query)
		return err
	}
	fmt.Fprintf(a.out, "Catalog (%d)\n", d.LocalCount)
	if err := printMovies(a.out, d.Local); err != nil {
		return err
	}
	if d.RemoteCount == 0 {
		return nil
	}
	fmt.Fprintf(a.out, "\nExternal (%d)\n", d.RemoteCount)
	return printExternalTitles(a.out, d.Remote)
}

func newTrendingCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "List the top rated catalog movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			catalog, err := a.catalog.ListMovies(cmd.Context())
			if err != nil {
				return err
			}
			if featured, ok := recommend.Featured(catalog); ok {
				fmt.Fprintf(a.out, "Featured: %s (%s)\n\n", featured.Title, ratingText(featured.Rating))
			}
			return printMovies(a.out, recommend.Trending(catalog, a.resultLimit()))
		},
	}
}

func newRecommendedCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recommended",
		Short: "List movies in the genre you view most",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			catalog, err := a.catalog.ListMovies(cmd.Context())
			if err != nil {
				return err
			}
			recent := a.state.Recent.Movies()
			picks := recommend.Recommended(catalog, recent, a.resultLimit())
			genre, ok := recommend.FavoriteGenre(recent)
			if !ok {
				logging.Debug().Int("recent", len(recent)).Msg("No viewing history for recommendations")
				_, err := fmt.Fprintln(a.out, "View a few movies to get recommendations.")
				return err
			}
			fmt.Fprintf(a.out, "Because you watch %s:\n", genre)
			return printMovies(a.out, picks)
		},
	}
}

func (a *App) resultLimit() int {
	if a.cfg.Search.ResultLimit > 0 {
		return a.cfg.Search.ResultLimit
	}
	return recommend.DefaultLimit
}
