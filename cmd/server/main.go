// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the entry point for the Marquee catalog server.
//
// The server stores movies, the watchlist and user accounts in DuckDB and
// serves them over a JSON REST interface compatible with the catalog
// fixtures the CLI was first developed against.
//
// # Startup
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog from the logging section
//  3. Database: DuckDB, seeded with demo data when empty and SEED_DATA=true
//  4. Authentication: JWT manager and Casbin policy when AUTH_MODE=jwt
//  5. Supervisor: HTTP server and database monitor under suture
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
// in-flight requests for up to SHUTDOWN_TIMEOUT before the database closes.
//
// # Example Usage
//
// Local development (open writes, demo data):
//
//	./marquee-server
//
// With authentication:
//
//	export AUTH_MODE=jwt
//	export JWT_SECRET=$(openssl rand -base64 32)
//	./marquee-server
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/authz"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Starting Marquee catalog server")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Shutdown complete")
}

func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.SeedData {
		if err := db.SeedIfEmpty(context.Background(), auth.Hasher(cfg.Security.BcryptCost)); err != nil {
			return err
		}
	}

	router, err := buildRouter(cfg, db)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddBackgroundService(services.NewDatabaseMonitor(db, 0))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tree.Serve(ctx)
	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func buildRouter(cfg *config.Config, db *database.DB) (*api.Router, error) {
	var jwtManager *auth.JWTManager
	var authzMiddleware *authz.Middleware

	if cfg.Security.AuthMode == "jwt" {
		var err error
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return nil, err
		}
		enforcer, err := authz.NewEnforcer(nil)
		if err != nil {
			return nil, err
		}
		authzMiddleware = authz.NewMiddleware(enforcer, api.DenyRequest)
		logging.Info().Msg("JWT authentication enabled")
	} else {
		logging.Warn().Msg("Authentication is disabled (AUTH_MODE=none); every client may write")
	}

	handler := api.NewHandler(db, cfg, jwtManager, version)
	return api.NewRouter(
		handler,
		api.NewChiMiddlewareFromSecurity(&cfg.Security),
		auth.NewMiddleware(jwtManager, cfg.Security.AuthMode, api.RejectToken),
		authzMiddleware,
	), nil
}
