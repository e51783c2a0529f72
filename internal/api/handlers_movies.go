// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// ListMovies handles GET /movies and GET /movies?genre=.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.db.ListMovies(r.Context(), strings.TrimSpace(r.URL.Query().Get("genre")))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// GetMovie handles GET /movies/{id}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	movie, err := h.db.GetMovie(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

// CreateMovie handles POST /movies.
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if !decodeBody(w, r, &movie) {
		return
	}
	movie.ID = 0
	if verr := validation.ValidateMovie(&movie); verr != nil {
		respondValidationError(w, verr)
		return
	}
	if err := h.db.CreateMovie(r.Context(), &movie); err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("movie_id", movie.ID).Str("title", sanitizeLogValue(movie.Title)).Msg("Movie created")
	respondJSON(w, http.StatusCreated, movie)
}

// UpdateMovie handles PUT /movies/{id}. The body replaces the stored movie.
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var movie models.Movie
	if !decodeBody(w, r, &movie) {
		return
	}
	movie.ID = id
	if verr := validation.ValidateMovie(&movie); verr != nil {
		respondValidationError(w, verr)
		return
	}
	if err := h.db.UpdateMovie(r.Context(), &movie); err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

// DeleteMovie handles DELETE /movies/{id}.
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.db.DeleteMovie(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("movie_id", id).Msg("Movie deleted")
	w.WriteHeader(http.StatusNoContent)
}
