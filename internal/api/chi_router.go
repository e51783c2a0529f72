// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/authz"
	"github.com/tomtom215/marquee/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authn         *auth.Middleware
	authz         *authz.Middleware
}

// NewRouter creates a router. authzMiddleware may be nil, in which case
// writes are not gated; it is only consulted when authn is enabled.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, authn *auth.Middleware, authzMiddleware *authz.Middleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	if authn == nil {
		authn = auth.NewMiddleware(nil, "none", RejectToken)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		authn:         authn,
		authz:         authzMiddleware,
	}
}

// authorize returns the write-gating middleware for the current auth mode.
func (router *Router) authorize() func(http.Handler) http.Handler {
	if router.authz == nil || !router.authn.Enabled() {
		return passthrough
	}
	return router.authz.AuthorizeRequest
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", nil)
	})

	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(router.authn.Authenticate)
		r.Use(router.authorize())

		r.With(router.chiMiddleware.RateLimitLogin()).Post("/auth/login", router.handler.Login)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", router.handler.ListMovies)
			r.Post("/", router.handler.CreateMovie)
			r.Get("/{id}", router.handler.GetMovie)
			r.Put("/{id}", router.handler.UpdateMovie)
			r.Delete("/{id}", router.handler.DeleteMovie)
		})

		r.Route("/watchlist", func(r chi.Router) {
			r.Get("/", router.handler.ListWatchlist)
			r.Post("/", router.handler.AddToWatchlist)
			r.Delete("/{id}", router.handler.RemoveFromWatchlist)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", router.handler.ListUsers)
			r.Post("/", router.handler.Signup)
			r.Get("/{id}", router.handler.GetUser)
		})
	})

	return r
}
