// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/search"
	"github.com/tomtom215/marquee/internal/validation"
)

func newMoviesCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Browse and edit the movie catalog",
	}
	cmd.AddCommand(
		newMoviesListCommand(app),
		newMoviesShowCommand(app),
		newMoviesAddCommand(app),
		newMoviesEditCommand(app),
		newMoviesDeleteCommand(app),
		newMoviesFacetsCommand(app),
	)
	return cmd
}

func newMoviesListCommand(app func() *App) *cobra.Command {
	var (
		f       search.Filters
		grouped bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			var (
				movies []models.Movie
				err    error
			)
			if f.Genre != "" && f.Genre != search.AllGenres {
				movies, err = a.catalog.ListMoviesByGenre(cmd.Context(), f.Genre)
			} else {
				movies, err = a.catalog.ListMovies(cmd.Context())
			}
			if err != nil {
				return err
			}
			movies = search.FilterLocal(movies, f)

			if !grouped {
				return printMovies(a.out, movies)
			}
			for i, g := range search.GroupByGenre(movies) {
				if i > 0 {
					fmt.Fprintln(a.out)
				}
				fmt.Fprintf(a.out, "%s (%d)\n", g.Genre, len(g.Movies))
				if err := printMovies(a.out, g.Movies); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Genre, "genre", "", "only movies of this genre")
	cmd.Flags().IntVar(&f.Year, "year", 0, "only movies from this year")
	cmd.Flags().Float64Var(&f.MinRating, "min-rating", 0, "only movies rated at least this")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "group the listing by genre")
	return cmd
}

func newMoviesFacetsCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "List the genres and years available for filtering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			movies, err := a.catalog.ListMovies(cmd.Context())
			if err != nil {
				return err
			}
			years := search.Years(movies)
			labels := make([]string, len(years))
			for i, y := range years {
				labels[i] = strconv.Itoa(y)
			}
			fmt.Fprintf(a.out, "Genres: %s\n", orNA(strings.Join(search.Genres(movies), ", ")))
			_, err = fmt.Fprintf(a.out, "Years:  %s\n", orNA(strings.Join(labels, ", ")))
			return err
		},
	}
}

func newMoviesShowCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a movie and remember it as recently viewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			m, err := a.catalog.GetMovie(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := a.state.Recent.Add(*m); err != nil {
				logging.Warn().Err(err).Int64("movie_id", m.ID).Msg("Failed to record recently viewed movie")
			}

			entry, err := a.catalog.FindWatchlistEntry(cmd.Context(), models.MovieRef(m.IDString()))
			if err != nil {
				logging.Warn().Err(err).Int64("movie_id", m.ID).Msg("Failed to check watchlist status")
			}
			return printMovie(a.out, m, entry != nil)
		},
	}
}

// movieFlags holds the editable movie fields.
type movieFlags struct {
	title, genre, director, duration string
	synopsis, cast, poster, trailer  string
	releaseDate, language            string
	year                             int
	rating                           float64
}

func (f *movieFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "movie title")
	fs.StringVar(&f.genre, "genre", "", "genre")
	fs.StringVar(&f.director, "director", "", "director")
	fs.StringVar(&f.duration, "duration", "", "running time, e.g. 2h 28m")
	fs.StringVar(&f.synopsis, "synopsis", "", "plot summary")
	fs.StringVar(&f.cast, "cast", "", "comma-separated cast list")
	fs.StringVar(&f.poster, "poster", "", "poster image URL")
	fs.StringVar(&f.trailer, "trailer", "", "trailer URL")
	fs.StringVar(&f.releaseDate, "release-date", "", "release date")
	fs.StringVar(&f.language, "language", "", "original language")
	fs.IntVar(&f.year, "year", 0, "release year")
	fs.Float64Var(&f.rating, "rating", 0, "rating from 0 to 10")
}

// apply copies every flag the user set onto m. Unset flags leave m alone,
// so the same code serves create and partial update.
func (f *movieFlags) apply(fs *pflag.FlagSet, m *models.Movie) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("title", &m.Title, f.title)
	set("genre", &m.Genre, f.genre)
	set("director", &m.Director, f.director)
	set("duration", &m.Duration, f.duration)
	set("synopsis", &m.Synopsis, f.synopsis)
	set("poster", &m.Poster, f.poster)
	set("trailer", &m.Trailer, f.trailer)
	set("release-date", &m.ReleaseDate, f.releaseDate)
	set("language", &m.Language, f.language)
	if fs.Changed("cast") {
		m.Cast = models.SplitCast(f.cast)
	}
	if fs.Changed("year") {
		m.Year = models.IntPtr(f.year)
	}
	if fs.Changed("rating") {
		m.Rating = models.FloatPtr(f.rating)
	}
}

func newMoviesAddCommand(app func() *App) *cobra.Command {
	var f movieFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a movie to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			m := &models.Movie{}
			f.apply(cmd.Flags(), m)
			if verr := validation.ValidateMovie(m); verr != nil {
				return verr
			}
			created, err := a.catalog.CreateMovie(cmd.Context(), m)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "Added %q with ID %d.\n", created.Title, created.ID)
			return err
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newMoviesEditCommand(app func() *App) *cobra.Command {
	var f movieFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a catalog movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			m, err := a.catalog.GetMovie(cmd.Context(), id)
			if err != nil {
				return err
			}
			f.apply(cmd.Flags(), m)
			if verr := validation.ValidateMovie(m); verr != nil {
				return verr
			}
			updated, err := a.catalog.UpdateMovie(cmd.Context(), id, m)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "Updated %q.\n", updated.Title)
			return err
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newMoviesDeleteCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a catalog movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			if err := a.catalog.DeleteMovie(cmd.Context(), id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "Deleted movie %d.\n", id)
			return err
		},
	}
}

func parseMovieID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", s)
	}
	return id, nil
}
