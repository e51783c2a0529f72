// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package external

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/client"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

var _ ClientInterface = (*CircuitBreakerClient)(nil)

// breakerName labels the provider breaker in logs and metrics.
const breakerName = "external-api"

// CircuitBreakerClient wraps a ClientInterface with a circuit breaker so a
// failing provider is not called on every keystroke.
//
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
type CircuitBreakerClient struct {
	client ClientInterface
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps inner.
func NewCircuitBreakerClient(inner ClientInterface) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening external API circuit")
			}
			return shouldTrip
		},

		// Only outages count against the provider. Client mistakes such as
		// a bad key or an unknown title, and searches the caller abandoned,
		// do not.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			switch client.KindOf(err) {
			case client.KindAuth, client.KindNotFound, client.KindRateLimited:
				return true
			case client.KindUnreachable:
				return false
			}
			var se *client.StatusError
			if errors.As(err, &se) {
				return se.StatusCode < 500
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] External API state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{client: inner, cb: cb, name: breakerName}
}

// execute runs fn through the breaker. Rejections are reported as
// client.ErrServiceUnavailable.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] External API request rejected")
			return nil, fmt.Errorf("%w: %v", client.ErrServiceUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		counts := cbc.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// AutoComplete calls the wrapped client with circuit breaker protection.
func (cbc *CircuitBreakerClient) AutoComplete(ctx context.Context, query string) ([]Record, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.AutoComplete(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	records, ok := result.([]Record)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for AutoComplete")
	}
	return records, nil
}

// Find calls the wrapped client with circuit breaker protection.
func (cbc *CircuitBreakerClient) Find(ctx context.Context, query string) (Record, error) {
	return cbc.record(func() (Record, error) { return cbc.client.Find(ctx, query) }, "Find")
}

// Details calls the wrapped client with circuit breaker protection.
func (cbc *CircuitBreakerClient) Details(ctx context.Context, id string) (Record, error) {
	return cbc.record(func() (Record, error) { return cbc.client.Details(ctx, id) }, "Details")
}

// Overview calls the wrapped client with circuit breaker protection.
func (cbc *CircuitBreakerClient) Overview(ctx context.Context, id string) (Record, error) {
	return cbc.record(func() (Record, error) { return cbc.client.Overview(ctx, id) }, "Overview")
}

func (cbc *CircuitBreakerClient) record(fn func() (Record, error), op string) (Record, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	rec, ok := result.(Record)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type for %s", op)
	}
	return rec, nil
}

// State returns the current circuit breaker state.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

// Counts returns the current circuit breaker counts.
func (cbc *CircuitBreakerClient) Counts() gobreaker.Counts {
	return cbc.cb.Counts()
}

// Name returns the circuit breaker name.
func (cbc *CircuitBreakerClient) Name() string {
	return cbc.name
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
