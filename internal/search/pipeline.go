// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// Pipeline defaults.
const (
	DefaultDebounce       = 500 * time.Millisecond
	DefaultMinQueryLength = 2
)

// Searcher performs a remote lookup. external.Service implements it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.ExternalTitle, error)
}

// HistoryRecorder records committed searches. session.SearchHistory
// implements it.
type HistoryRecorder interface {
	Add(term string) error
}

// Options configures a Pipeline.
type Options struct {
	Debounce       time.Duration
	MinQueryLength int
	// OnUpdate is called after remote results change. It runs on the
	// lookup goroutine without the pipeline lock held.
	OnUpdate func(Display)
	// OnError is called when a remote lookup fails.
	OnError func(error)
}

// Display is a snapshot of what the search screen shows.
type Display struct {
	Query       string
	Local       []models.Movie
	Remote      []models.ExternalTitle
	LocalCount  int
	RemoteCount int
	Total       int
	// NoResults is true only for a searchable query with nothing found
	// and no lookup outstanding.
	NoResults bool
	// Searching is true while a lookup is scheduled or in flight.
	Searching bool
}

// Pipeline combines synchronous local matching with a debounced remote
// lookup. All methods are safe for concurrent use.
type Pipeline struct {
	searcher Searcher
	history  HistoryRecorder
	opts     Options

	mu         sync.Mutex
	catalog    []models.Movie
	filters    Filters
	query      string
	local      []models.Movie
	remote     []models.ExternalTitle
	timer      *time.Timer
	cancel     context.CancelFunc
	generation uint64
	pending    bool
	closed     bool
}

// NewPipeline creates a pipeline. searcher and history may be nil, which
// disables remote lookups and history recording.
func NewPipeline(searcher Searcher, history HistoryRecorder, opts Options) *Pipeline {
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.MinQueryLength < 1 {
		opts.MinQueryLength = DefaultMinQueryLength
	}
	return &Pipeline{searcher: searcher, history: history, opts: opts}
}

// SetCatalog replaces the local movie list and recomputes local results.
func (p *Pipeline) SetCatalog(movies []models.Movie) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.catalog = append([]models.Movie(nil), movies...)
	p.recomputeLocked()
}

// SetFilters replaces the facets and recomputes local results. Remote
// results are not refiltered; facets apply to the catalog only.
func (p *Pipeline) SetFilters(f Filters) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters = f
	p.recomputeLocked()
}

// SetQuery updates the query. Local results change immediately. A
// searchable query (re)starts the debounce timer; a shorter one clears
// remote results and cancels any pending lookup.
func (p *Pipeline) SetQuery(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.query = query
	p.recomputeLocked()
	p.supersedeLocked()

	if !p.searchableLocked() {
		p.remote = nil
		return
	}
	if p.searcher == nil && p.history == nil {
		return
	}

	gen := p.generation
	p.pending = true
	p.timer = time.AfterFunc(p.opts.Debounce, func() { p.fire(gen) })
}

// SearchNow skips the debounce and runs the lookup for the current query,
// blocking until it has been applied or dropped. It returns the lookup
// error, if any.
func (p *Pipeline) SearchNow(ctx context.Context) error {
	p.mu.Lock()
	if p.closed || !p.searchableLocked() {
		p.mu.Unlock()
		return nil
	}
	p.supersedeLocked()
	gen := p.generation
	p.pending = true
	p.mu.Unlock()

	return p.run(ctx, gen)
}

// Display returns the current results.
func (p *Pipeline) Display() Display {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displayLocked()
}

// Close stops the timer and cancels any lookup in flight.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.supersedeLocked()
}

// supersedeLocked invalidates every scheduled or running lookup.
func (p *Pipeline) supersedeLocked() {
	p.generation++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.pending = false
}

func (p *Pipeline) trimmedQuery() string {
	return strings.TrimSpace(p.query)
}

func (p *Pipeline) searchableLocked() bool {
	return utf8.RuneCountInString(p.trimmedQuery()) >= p.opts.MinQueryLength
}

func (p *Pipeline) recomputeLocked() {
	filtered := FilterLocal(p.catalog, p.filters)
	if p.searchableLocked() {
		p.local = MatchLocal(filtered, p.trimmedQuery())
		return
	}
	p.local = filtered
}

func (p *Pipeline) displayLocked() Display {
	d := Display{
		Query:       p.query,
		Local:       append([]models.Movie(nil), p.local...),
		Remote:      append([]models.ExternalTitle(nil), p.remote...),
		LocalCount:  len(p.local),
		RemoteCount: len(p.remote),
		Searching:   p.pending,
	}
	d.Total = d.LocalCount + d.RemoteCount
	d.NoResults = p.searchableLocked() && d.Total == 0 && !p.pending
	return d
}

// fire runs when the debounce timer expires.
func (p *Pipeline) fire(gen uint64) {
	_ = p.run(context.Background(), gen)
}

// run commits the query to history and performs the lookup for gen.
func (p *Pipeline) run(parent context.Context, gen uint64) error {
	p.mu.Lock()
	if gen != p.generation || p.closed {
		p.mu.Unlock()
		return nil
	}
	query := p.trimmedQuery()
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	p.timer = nil
	p.mu.Unlock()
	defer cancel()

	if p.history != nil {
		if err := p.history.Add(query); err != nil {
			logging.Warn().Err(err).Msg("Failed to record search history")
		}
	}

	if p.searcher == nil {
		p.finish(gen, nil, nil)
		return nil
	}

	results, err := p.searcher.Search(ctx, query)
	return p.finish(gen, results, err)
}

// finish applies a lookup result if gen is still current.
func (p *Pipeline) finish(gen uint64, results []models.ExternalTitle, err error) error {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		metrics.RecordSearchLookup("stale")
		logging.Debug().Uint64("generation", gen).Msg("Dropped stale search response")
		return nil
	}
	p.pending = false
	p.cancel = nil
	if err != nil {
		p.remote = nil
	} else {
		p.remote = keepSearchable(results)
	}
	display := p.displayLocked()
	p.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		metrics.RecordSearchLookup("failed")
		if p.opts.OnError != nil {
			p.opts.OnError(err)
		}
	} else {
		metrics.RecordSearchLookup("applied")
	}
	if p.opts.OnUpdate != nil {
		p.opts.OnUpdate(display)
	}
	return err
}

func keepSearchable(titles []models.ExternalTitle) []models.ExternalTitle {
	out := make([]models.ExternalTitle, 0, len(titles))
	for i := range titles {
		if titles[i].IsSearchable() {
			out = append(out, titles[i])
		}
	}
	return out
}
