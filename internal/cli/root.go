// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/client"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

// DefaultLogLevel keeps diagnostics out of command output.
const DefaultLogLevel = "warn"

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	root := NewRootCommand(opts)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", describe(err))
		return 1
	}
	return 0
}

// NewRootCommand builds the marquee command tree. The App is created in
// the persistent pre-run hook so --help works without a config or cache.
func NewRootCommand(opts Options) *cobra.Command {
	var (
		app        *App
		catalogURL string
		storage    string
		logLevel   string
	)

	root := &cobra.Command{
		Use:           "marquee",
		Short:         "Browse the movie catalog and manage your watchlist",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Init(logging.Config{
				Level:         logLevel,
				Format:        "console",
				OmitTimestamp: true,
				Output:        cmd.ErrOrStderr(),
			})

			cfg := opts.Config
			if cfg == nil {
				loaded, err := config.LoadWithKoanf()
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				cfg = loaded
			}
			if catalogURL != "" {
				cfg.Catalog.URL = catalogURL
			}
			if storage != "" {
				cfg.Storage.Path = storage
			}

			a, err := NewApp(cfg, opts.Store, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if app == nil {
				return nil
			}
			err := app.Close()
			app = nil
			return err
		},
	}
	if opts.In != nil {
		root.SetIn(opts.In)
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}
	if opts.Err != nil {
		root.SetErr(opts.Err)
	}

	flags := root.PersistentFlags()
	flags.StringVar(&catalogURL, "catalog-url", "", "catalog service base URL")
	flags.StringVar(&storage, "storage", "", "directory of the local cache")
	flags.StringVar(&logLevel, "log-level", DefaultLogLevel, "log level: debug, info, warn, error")

	// Subcommands resolve the App lazily; it exists only after pre-run.
	get := func() *App { return app }

	root.AddCommand(
		newMoviesCommand(get),
		newSearchCommand(get),
		newTrendingCommand(get),
		newRecommendedCommand(get),
		newWatchlistCommand(get),
		newHistoryCommand(get),
		newRecentCommand(get),
		newSignupCommand(get),
		newLoginCommand(get),
		newLogoutCommand(get),
		newWhoamiCommand(get),
		newProfileCommand(get),
		newExternalCommand(get),
	)
	return root
}

// describe renders err for the terminal. Client failures get their user
// notice; anything else is printed as is.
func describe(err error) string {
	if isClientError(err) {
		return client.UserMessage(err)
	}
	return err.Error()
}

func isClientError(err error) bool {
	return client.KindOf(err) != client.KindGeneric || errors.Is(err, client.ErrRequestFailed)
}
