// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package external

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/models"
)

// Service turns raw provider calls into normalized titles.
type Service struct {
	client ClientInterface
}

// NewService creates a Service over c, usually a CircuitBreakerClient.
func NewService(c ClientInterface) *Service {
	return &Service{client: c}
}

// Search runs an auto-complete lookup and returns the movies, series and
// TV movies it found.
func (s *Service) Search(ctx context.Context, query string) ([]models.ExternalTitle, error) {
	recs, err := s.client.AutoComplete(ctx, query)
	if err != nil {
		return nil, err
	}
	return NormalizeResults(recs), nil
}

// Title loads the overview for id and merges it onto base. When the
// overview call fails the error is returned together with base so the
// caller can still show what it has.
func (s *Service) Title(ctx context.Context, id string, base models.ExternalTitle) (models.ExternalTitle, error) {
	if base.ID == "" {
		base.ID = id
	}
	overview, err := s.client.Overview(ctx, id)
	if err != nil {
		return base, fmt.Errorf("failed to load overview for %s: %w", id, err)
	}
	return MergeOverview(base, overview), nil
}
