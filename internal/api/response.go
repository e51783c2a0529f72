// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends v as a bare JSON document.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends the error envelope.
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, &models.ErrorResponse{Error: models.APIError{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}

// respondStoreError maps database sentinels to status codes. Anything
// unrecognized is logged and reported as a database error.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, database.ErrMovieNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "movie not found", nil)
	case errors.Is(err, database.ErrWatchlistNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "watchlist entry not found", nil)
	case errors.Is(err, database.ErrUserNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "user not found", nil)
	case errors.Is(err, database.ErrWatchlistConflict):
		respondError(w, http.StatusConflict, ErrCodeConflict, "movie already in watchlist", nil)
	case errors.Is(err, database.ErrUserConflict):
		respondError(w, http.StatusConflict, ErrCodeConflict, "username or email already registered", nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("Database operation failed")
		respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, "database operation failed", nil)
	}
}

// decodeBody reads a bounded JSON body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", nil)
		return false
	}
	return true
}

// RejectToken writes the 401 envelope for a bad bearer token. It is an auth.RejectFunc.
func RejectToken(w http.ResponseWriter, _ *http.Request, err error) {
	respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error(), nil)
}

// DenyRequest writes the envelope for a request the policy refused. It is an authz.DenyFunc.
func DenyRequest(w http.ResponseWriter, _ *http.Request, status int, err error) {
	switch status {
	case http.StatusUnauthorized:
		respondError(w, status, ErrCodeUnauthorized, err.Error(), nil)
	case http.StatusForbidden:
		respondError(w, status, ErrCodeForbidden, err.Error(), nil)
	default:
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "authorization failed", nil)
	}
}

// tooManyRequests is the httprate limit handler.
func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	limiter := "api"
	if strings.HasPrefix(r.URL.Path, "/auth/login") {
		limiter = "login"
	}
	metrics.RecordRateLimitHit(limiter)
	respondError(w, http.StatusTooManyRequests, ErrCodeTooManyRequests, "too many requests", nil)
}
