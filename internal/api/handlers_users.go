// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

func profiles(users []models.User) []models.Profile {
	out := make([]models.Profile, len(users))
	for i := range users {
		out[i] = users[i].Profile()
	}
	return out
}

// ListUsers handles GET /users, GET /users?username= and GET /users?email=.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.db.ListUsers(r.Context(), database.UserFilter{
		Username: strings.TrimSpace(q.Get("username")),
		Email:    strings.TrimSpace(q.Get("email")),
	})
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profiles(users))
}

// GetUser handles GET /users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := h.db.GetUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user.Profile())
}

// Signup handles POST /users. New accounts always get the user role.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if verr := validation.ValidateSignup(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.config.Security.BcryptCost)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Password hashing failed")
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "could not create account", nil)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		Role:         models.RoleUser,
		PasswordHash: hash,
	}
	if err := h.db.CreateUser(r.Context(), &user); err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Str("username", sanitizeLogValue(user.Username)).Msg("User registered")
	respondJSON(w, http.StatusCreated, user.Profile())
}
