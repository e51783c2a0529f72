// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/models"
)

func newExternalCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "external",
		Short: "Look up titles in the external movie database",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show an external title, e.g. tt0111161",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.requireExternal(); err != nil {
				return err
			}
			t, err := a.external.Title(cmd.Context(), args[0], models.ExternalTitle{})
			if err != nil {
				return err
			}
			return printExternalTitle(a.out, &t)
		},
	})
	return cmd
}
