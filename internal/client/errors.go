// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// Failure taxonomy shared by the catalog and external metadata clients.
// Every error returned by either client matches exactly one of these with
// errors.Is. Nothing is retried.
var (
	// ErrServerUnreachable means no response arrived: connection refused,
	// DNS failure or timeout.
	ErrServerUnreachable = errors.New("server unreachable")
	// ErrConflict is HTTP 409, e.g. a movie already in the watchlist.
	ErrConflict = errors.New("conflict")
	// ErrRateLimited is HTTP 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrAuthFailed is HTTP 401 or 403.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrNotFound is HTTP 404.
	ErrNotFound = errors.New("not found")
	// ErrServiceUnavailable means the circuit breaker rejected the call.
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	// ErrRequestFailed covers every other failure.
	ErrRequestFailed = errors.New("request failed")
)

// Kind names a failure class.
type Kind string

// Failure kinds, one per sentinel.
const (
	KindNone        Kind = ""
	KindUnreachable Kind = "unreachable"
	KindConflict    Kind = "conflict"
	KindRateLimited Kind = "rate_limited"
	KindAuth        Kind = "auth"
	KindNotFound    Kind = "not_found"
	KindUnavailable Kind = "unavailable"
	KindGeneric     Kind = "generic"
)

// KindOf classifies err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrServerUnreachable):
		return KindUnreachable
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrAuthFailed):
		return KindAuth
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrServiceUnavailable):
		return KindUnavailable
	default:
		return KindGeneric
	}
}

// TransportError is returned when a request got no HTTP response.
type TransportError struct {
	Service string // "catalog" or "external"
	URL     string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: cannot reach %s: %v", e.Service, e.URL, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrServerUnreachable, e.Err}
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Code       string // machine code from the error envelope, if any
	Message    string // human message from the error envelope, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// Unwrap maps the status code to its sentinel.
func (e *StatusError) Unwrap() error {
	return sentinelForStatus(e.StatusCode)
}

func sentinelForStatus(code int) error {
	switch code {
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthFailed
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrRequestFailed
	}
}

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// NewStatusError builds a StatusError from resp, reading the catalog error
// envelope when present. The caller still owns resp.Body.
func NewStatusError(op string, resp *http.Response) *StatusError {
	se := &StatusError{Op: op, StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return se
	}
	var envelope models.ErrorResponse
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		se.Code = envelope.Error.Code
		se.Message = envelope.Error.Message
		return se
	}
	var provider struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &provider) == nil && provider.Message != "" {
		se.Message = provider.Message
	}
	return se
}

// Do sends req with hc and converts transport failures to *TransportError.
// Cancellation by the caller is returned as the context error so that a
// superseded search is not reported as an outage.
func Do(ctx context.Context, hc *http.Client, req *http.Request, service string) (*http.Response, error) {
	resp, err := hc.Do(req)
	if err == nil {
		return resp, nil
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, ctx.Err()
	}
	return nil, &TransportError{Service: service, URL: redactURL(req), Err: err}
}

// redactURL drops the query string, which may carry search terms.
func redactURL(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}

// UserMessage maps err to the notice shown to the user.
func UserMessage(err error) string {
	var se *StatusError
	hasStatus := errors.As(err, &se)

	switch KindOf(err) {
	case KindNone:
		return ""
	case KindUnreachable:
		var te *TransportError
		if errors.As(err, &te) && te.Service == "external" {
			return "Cannot reach the movie database. Check your internet connection."
		}
		return "Cannot connect to server. Please make sure the catalog server is running."
	case KindConflict:
		if hasStatus && se.Message != "" {
			return capitalize(se.Message) + "."
		}
		return "Already exists."
	case KindRateLimited:
		return "API rate limit reached. Please try again later."
	case KindAuth:
		if hasStatus && strings.HasPrefix(se.Op, "external") {
			return "API authentication failed. Please check your API key."
		}
		return "Not authorized. Please log in and try again."
	case KindNotFound:
		return "Not found."
	case KindUnavailable:
		return "The movie database is temporarily unavailable. Please try again shortly."
	default:
		if hasStatus && se.Message != "" {
			return capitalize(se.Message) + "."
		}
		return "Request failed. Please try again."
	}
}

// IsInformational reports whether err should be shown as a notice rather
// than an error: a conflict on add means the item is already there.
func IsInformational(err error) bool {
	return KindOf(err) == KindConflict
}

func capitalize(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
