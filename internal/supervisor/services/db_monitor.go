// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DatabaseMonitor pings the database on an interval and logs when it
// becomes unreachable and when it recovers.
type DatabaseMonitor struct {
	db       Pinger
	interval time.Duration
	healthy  atomic.Bool
}

// NewDatabaseMonitor creates a monitor. A non-positive interval becomes 30s.
func NewDatabaseMonitor(db Pinger, interval time.Duration) *DatabaseMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	m := &DatabaseMonitor{db: db, interval: interval}
	m.healthy.Store(true)
	return m
}

// Serve implements suture.Service.
func (m *DatabaseMonitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *DatabaseMonitor) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, m.interval/2)
	defer cancel()

	err := m.db.Ping(pingCtx)
	wasHealthy := m.healthy.Swap(err == nil)
	switch {
	case err != nil && wasHealthy:
		logging.Error().Err(err).Msg("Database became unreachable")
	case err == nil && !wasHealthy:
		logging.Info().Msg("Database reachable again")
	}
}

// Healthy reports the result of the last check.
func (m *DatabaseMonitor) Healthy() bool {
	return m.healthy.Load()
}

// String implements fmt.Stringer for suture's logs.
func (m *DatabaseMonitor) String() string {
	return "database-monitor"
}
