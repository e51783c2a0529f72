// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// Login handles POST /auth/login. The identifier may be a username or an
// email. Both an unknown user and a wrong password produce the same 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Identifier = strings.TrimSpace(req.Identifier)
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	logger := logging.Ctx(r.Context())
	user, err := h.db.FindUserByLogin(r.Context(), req.Identifier)
	switch {
	case errors.Is(err, database.ErrUserNotFound):
		// Compare against a throwaway hash so unknown users cost the same.
		auth.CheckPassword(dummyHash, req.Password)
		h.loginFailed(w, req.Identifier)
		return
	case err != nil:
		respondStoreError(w, r, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		h.loginFailed(w, req.Identifier)
		return
	}

	resp := models.LoginResponse{User: user.Profile()}
	if h.jwtManager != nil {
		token, expiresAt, err := h.jwtManager.GenerateToken(user)
		if err != nil {
			logger.Error().Err(err).Msg("Token generation failed")
			respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "could not sign in", nil)
			return
		}
		resp.Token = token
		resp.ExpiresAt = expiresAt
	}

	metrics.RecordLoginAttempt("success")
	logger.Info().Str("username", sanitizeLogValue(user.Username)).Msg("User logged in")
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) loginFailed(w http.ResponseWriter, identifier string) {
	metrics.RecordLoginAttempt("failure")
	logging.Warn().Str("identifier", sanitizeLogValue(identifier)).Msg("Failed login attempt")
	respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, auth.ErrInvalidCredentials.Error(), nil)
}

// dummyHash is a bcrypt hash of a random string.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOa0nFf5JgY9Xz4Qx8x9u0Ij3oN8HdKJe"
