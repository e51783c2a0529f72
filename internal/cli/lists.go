// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newHistoryCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage recent searches",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent searches, newest first",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				a := app()
				return printTerms(a.out, a.state.History.Terms(), "No recent searches.")
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget all recent searches",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				a := app()
				if err := a.state.History.Clear(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(a.out, "Search history cleared.")
				return err
			},
		},
		&cobra.Command{
			Use:   "remove <term>",
			Short: "Forget one search",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				a := app()
				return a.state.History.Remove(strings.Join(args, " "))
			},
		},
	)
	return cmd
}

func newRecentCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage recently viewed movies",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recently viewed movies, newest first",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				a := app()
				return printMovies(a.out, a.state.Recent.Movies())
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget recently viewed movies",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				a := app()
				if err := a.state.Recent.Clear(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(a.out, "Recently viewed cleared.")
				return err
			},
		},
	)
	return cmd
}
