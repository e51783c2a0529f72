// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics defines the Prometheus instruments used across Marquee.
//
// All collectors are registered on the default registry through promauto
// and exposed by the catalog server on /metrics. Client-side instruments
// (cache, circuit breaker, search) are recorded in the CLI process as well;
// they are visible there when a caller exposes the default gatherer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marquee"

// Catalog store.
var (
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "db",
		Name: "query_duration_seconds",
		Help: "DuckDB query latency by operation and table.",
	}, []string{"operation", "table"})

	DBQueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "db",
		Name: "query_errors_total",
		Help: "DuckDB queries that returned an error, including not-found lookups.",
	}, []string{"operation", "table"})
)

// Catalog HTTP API.
var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "api",
		Name: "requests_total",
		Help: "Catalog API requests by method, route pattern and status.",
	}, []string{"method", "endpoint", "status_code"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "api",
		Name:    "request_duration_seconds",
		Help:    "Catalog API latency by method and route pattern.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"method", "endpoint"})

	APIActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "api",
		Name: "active_requests",
		Help: "Catalog API requests in flight.",
	})

	APIRateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "api",
		Name: "rate_limited_total",
		Help: "Requests rejected by the per-IP limiters.",
	}, []string{"limiter"})

	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "auth",
		Name: "login_attempts_total",
		Help: "Logins by result: success, invalid_credentials, error.",
	}, []string{"result"})

	AuthzDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "auth",
		Name: "authz_decisions_total",
		Help: "Casbin decisions by role and outcome.",
	}, []string{"role", "decision"})
)

// External metadata provider. The breaker gauges use 0 closed, 1 half-open, 2 open.
var (
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "breaker",
		Name: "state",
		Help: "Circuit breaker state.",
	}, []string{"name"})

	CircuitBreakerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "breaker",
		Name: "requests_total",
		Help: "Calls through the breaker by result: success, failure, rejected.",
	}, []string{"name", "result"})

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "breaker",
		Name: "consecutive_failures",
		Help: "Failures since the last success.",
	}, []string{"name"})

	CircuitBreakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "breaker",
		Name: "transitions_total",
		Help: "Breaker state changes.",
	}, []string{"name", "from_state", "to_state"})

	ExternalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "external",
		Name: "requests_total",
		Help: "Provider requests by endpoint and outcome: ok, rate_limited, auth_failed, unreachable, error.",
	}, []string{"endpoint", "outcome"})

	ExternalThrottleWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "external",
		Name:    "throttle_wait_seconds",
		Help:    "Time spent waiting on the client-side limiter.",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5},
	})
)

// Client toolkit.
var (
	KVStoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "kvstore",
		Name: "operations_total",
		Help: "Cache operations by result. get: hit, miss, corrupt, error. set and clear: ok, error.",
	}, []string{"operation", "result"})

	SearchLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "search",
		Name: "remote_lookups_total",
		Help: "Remote search responses by handling: applied, stale, failed.",
	}, []string{"outcome"})
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the named limiter.
func RecordRateLimitHit(limiter string) {
	APIRateLimitHits.WithLabelValues(limiter).Inc()
}

// RecordLoginAttempt records the outcome of a login.
func RecordLoginAttempt(result string) {
	AuthAttempts.WithLabelValues(result).Inc()
}

// RecordAuthzDecision records an RBAC decision.
func RecordAuthzDecision(role string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	AuthzDecisions.WithLabelValues(role, decision).Inc()
}

// RecordExternalRequest records one external metadata request.
func RecordExternalRequest(endpoint, outcome string) {
	ExternalRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordKVOperation records one client cache operation.
func RecordKVOperation(operation, result string) {
	KVStoreOperations.WithLabelValues(operation, result).Inc()
}

// RecordSearchLookup records how a remote search response was handled.
func RecordSearchLookup(outcome string) {
	SearchLookups.WithLabelValues(outcome).Inc()
}
