// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tomtom215/marquee/internal/client"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/external"
	"github.com/tomtom215/marquee/internal/kvstore"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/search"
	"github.com/tomtom215/marquee/internal/session"
)

// Options configures a command tree. Zero values are filled from the
// loaded configuration.
type Options struct {
	// Config skips LoadWithKoanf when set.
	Config *config.Config
	// Store replaces the on-disk cache. The caller keeps ownership.
	Store kvstore.Store
	In    io.Reader
	Out   io.Writer
	Err   io.Writer
}

// App holds the clients and context objects shared by every command.
type App struct {
	cfg      *config.Config
	out      io.Writer
	errOut   io.Writer
	catalog  client.CatalogClientInterface
	external *external.Service
	state    *session.State
	closer   io.Closer
}

// NewApp wires the clients and loads the cached session state.
func NewApp(cfg *config.Config, store kvstore.Store, out, errOut io.Writer) (*App, error) {
	if cfg == nil {
		return nil, errors.New("cli: config is required")
	}
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	var closer io.Closer
	if store == nil {
		path := cfg.Storage.Path
		if path == "" {
			path = config.DefaultStoragePath()
		}
		bs, err := kvstore.Open(kvstore.Options{Path: path, InMemory: cfg.Storage.InMemory})
		if err != nil {
			return nil, err
		}
		store, closer = bs, bs
	}

	state, err := session.Load(store, session.Limits{
		History: cfg.Search.HistoryLimit,
		Recent:  cfg.Search.RecentLimit,
	})
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("failed to load cached state: %w", err)
	}

	catalog := client.NewCatalogClient(cfg.Catalog.URL, cfg.Catalog.Timeout)
	catalog.SetToken(state.Auth.Token())

	app := &App{
		cfg:     cfg,
		out:     out,
		errOut:  errOut,
		catalog: catalog,
		state:   state,
		closer:  closer,
	}
	if cfg.External.APIKey != "" {
		app.external = external.NewService(newExternalClient(&cfg.External))
	} else {
		logging.Debug().Msg("No external API key configured, remote search disabled")
	}
	return app, nil
}

func newExternalClient(cfg *config.ExternalConfig) external.ClientInterface {
	c := external.NewClient(external.Config{
		BaseURL:           cfg.URL,
		APIKey:            cfg.APIKey,
		APIHost:           cfg.APIHost,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})
	if !cfg.BreakerEnabled {
		return c
	}
	return external.NewCircuitBreakerClient(c)
}

// searcher returns the remote searcher, or nil when none is configured.
// A nil *external.Service must not be stored in the interface.
func (a *App) searcher() search.Searcher {
	if a.external == nil {
		return nil
	}
	return a.external
}

// Close flushes the cached state and releases the store.
func (a *App) Close() error {
	err := a.state.Flush()
	if a.closer != nil {
		err = errors.Join(err, a.closer.Close())
	}
	return err
}

func (a *App) requireExternal() error {
	if a.external == nil {
		return errors.New("external search is not configured; set RAPIDAPI_KEY")
	}
	return nil
}
