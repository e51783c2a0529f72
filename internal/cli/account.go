// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/session"
	"github.com/tomtom215/marquee/internal/validation"
)

// Signup notices.
var (
	ErrUsernameTaken = errors.New("username already exists, please choose a different one")
	ErrEmailTaken    = errors.New("email already exists, please use a different email")
)

func newSignupCommand(app func() *App) *cobra.Command {
	var req models.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			ctx := cmd.Context()
			if req.Password == "" {
				pw, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				req.Password = pw
			}
			if verr := validation.ValidateSignup(&req); verr != nil {
				return verr
			}

			if u, err := a.catalog.FindUserByUsername(ctx, req.Username); err != nil {
				return err
			} else if u != nil {
				return ErrUsernameTaken
			}
			if u, err := a.catalog.FindUserByEmail(ctx, req.Email); err != nil {
				return err
			} else if u != nil {
				return ErrEmailTaken
			}

			if _, err := a.catalog.Register(ctx, &req); err != nil {
				return err
			}
			_, err := fmt.Fprintln(a.out, "Account created. Sign in with: marquee login --username", req.Username)
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "display name")
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Password, "password", "", "password (read from stdin when omitted)")
	fs.StringVar(&req.ConfirmPassword, "confirm-password", "", "repeat the password")
	return cmd
}

func newLoginCommand(app func() *App) *cobra.Command {
	var req models.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a username or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if req.Password == "" {
				pw, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				req.Password = pw
			}
			if verr := validation.ValidateStruct(&req); verr != nil {
				return verr
			}

			resp, err := a.catalog.Login(cmd.Context(), &req)
			if err != nil {
				return err
			}
			sess := models.Session{User: resp.User, Token: resp.Token, ExpiresAt: resp.ExpiresAt}
			if err := a.state.Auth.Login(sess); err != nil {
				return err
			}
			a.catalog.SetToken(resp.Token)
			_, err = fmt.Fprintf(a.out, "Welcome back, %s!\n", displayName(resp.User))
			return err
		},
	}
	cmd.Flags().StringVar(&req.Identifier, "username", "", "username or email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (read from stdin when omitted)")
	return cmd
}

func newLogoutCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a := app()
			if err := a.state.Auth.Logout(); err != nil {
				return err
			}
			a.catalog.SetToken("")
			_, err := fmt.Fprintln(a.out, "Logged out.")
			return err
		},
	}
}

func newWhoamiCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a := app()
			sess, err := a.state.Auth.Current()
			if errors.Is(err, session.ErrNotAuthenticated) {
				_, err = fmt.Fprintln(a.out, "Not logged in.")
				return err
			}
			_, err = fmt.Fprintf(a.out, "%s (%s) <%s> role=%s\n", sess.User.Username, displayName(sess.User), sess.User.Email, sess.User.Role)
			return err
		},
	}
}

func newProfileCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile and watchlist statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			sess, err := a.state.Auth.Current()
			if err != nil {
				return err
			}
			entries, err := a.catalog.ListWatchlist(cmd.Context())
			if err != nil {
				return err
			}
			stats := recommend.ProfileStats(entries)

			tw := newTable(a.out)
			fmt.Fprintf(tw, "Name:\t%s\n", displayName(sess.User))
			fmt.Fprintf(tw, "Username:\t%s\n", sess.User.Username)
			fmt.Fprintf(tw, "Email:\t%s\n", orNA(sess.User.Email))
			fmt.Fprintf(tw, "Watchlist:\t%d\n", stats.Total)
			fmt.Fprintf(tw, "Favorite genre:\t%s\n", stats.FavoriteGenre)
			if stats.RatedCount > 0 {
				fmt.Fprintf(tw, "Average rating:\t%.1f\n", stats.AverageRating)
			} else {
				fmt.Fprintf(tw, "Average rating:\t%s\n", models.NotAvailable)
			}
			fmt.Fprintf(tw, "Watch time:\t%dh\n", stats.WatchHours())
			fmt.Fprintf(tw, "Recently viewed:\t%d\n", len(a.state.Recent.Movies()))
			return tw.Flush()
		},
	}
}

func displayName(p models.Profile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// readSecret reads one line from r.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
