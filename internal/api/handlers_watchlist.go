// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// ListWatchlist handles GET /watchlist and GET /watchlist?movieId=, newest first.
func (h *Handler) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.ListWatchlist(r.Context(), strings.TrimSpace(r.URL.Query().Get("movieId")))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// AddToWatchlist handles POST /watchlist. A movie already on the
// watchlist yields 409 and leaves the existing entry untouched.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var entry models.WatchlistEntry
	if !decodeBody(w, r, &entry) {
		return
	}
	if verr := validation.ValidateWatchlistEntry(&entry); verr != nil {
		respondValidationError(w, verr)
		return
	}

	entry.ID = ""
	entry.AddedAt = entry.AddedAt.UTC()
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		entry.UserID = claims.UserID
	}

	if err := h.db.AddToWatchlist(r.Context(), &entry); err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// RemoveFromWatchlist handles DELETE /watchlist/{id}.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "id is required", nil)
		return
	}
	if err := h.db.RemoveFromWatchlist(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
