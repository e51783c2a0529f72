// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package external

import (
	"context"
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/client"
	"github.com/tomtom215/marquee/internal/models"
)

// stubClient returns fixed results and counts calls.
type stubClient struct {
	calls   int
	err     error
	records []Record
	record  Record
}

func (s *stubClient) AutoComplete(context.Context, string) ([]Record, error) {
	s.calls++
	return s.records, s.err
}

func (s *stubClient) Find(context.Context, string) (Record, error) {
	s.calls++
	return s.record, s.err
}

func (s *stubClient) Details(context.Context, string) (Record, error) {
	s.calls++
	return s.record, s.err
}

func (s *stubClient) Overview(context.Context, string) (Record, error) {
	s.calls++
	return s.record, s.err
}

func TestCircuitBreakerClient_OpensOnOutage(t *testing.T) {
	t.Parallel()

	stub := &stubClient{err: &client.TransportError{Service: "external", URL: "https://x", Err: errors.New("refused")}}
	cbc := NewCircuitBreakerClient(stub)

	for i := 0; i < 10; i++ {
		if _, err := cbc.AutoComplete(context.Background(), "x"); !errors.Is(err, client.ErrServerUnreachable) {
			t.Fatalf("call %d error = %v, want ErrServerUnreachable", i, err)
		}
	}
	if cbc.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", cbc.State())
	}

	_, err := cbc.AutoComplete(context.Background(), "x")
	if !errors.Is(err, client.ErrServiceUnavailable) {
		t.Errorf("error = %v, want ErrServiceUnavailable", err)
	}
	if stub.calls != 10 {
		t.Errorf("inner calls = %d, want 10", stub.calls)
	}
}

func TestCircuitBreakerClient_ClientErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "auth", err: &client.StatusError{Op: "external auto-complete", StatusCode: 403}},
		{name: "rate limited", err: &client.StatusError{Op: "external auto-complete", StatusCode: 429}},
		{name: "not found", err: &client.StatusError{Op: "external overview", StatusCode: 404}},
		{name: "canceled", err: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cbc := NewCircuitBreakerClient(&stubClient{err: tt.err})
			for i := 0; i < 15; i++ {
				_, _ = cbc.Overview(context.Background(), "tt1")
			}
			if cbc.State() != gobreaker.StateClosed {
				t.Errorf("State() = %v, want closed", cbc.State())
			}
		})
	}
}

func TestCircuitBreakerClient_PassesResults(t *testing.T) {
	t.Parallel()

	stub := &stubClient{
		records: []Record{{"id": "tt1", "l": "One", "qid": "movie"}},
		record:  Record{"title": map[string]interface{}{"title": "One"}},
	}
	cbc := NewCircuitBreakerClient(stub)

	recs, err := cbc.AutoComplete(context.Background(), "one")
	if err != nil || len(recs) != 1 {
		t.Fatalf("AutoComplete() = %v, %v", recs, err)
	}
	rec, err := cbc.Details(context.Background(), "tt1")
	if err != nil || rec == nil {
		t.Fatalf("Details() = %v, %v", rec, err)
	}
	if cbc.Name() != "external-api" {
		t.Errorf("Name() = %q", cbc.Name())
	}
}

func TestService_Search(t *testing.T) {
	t.Parallel()

	stub := &stubClient{records: []Record{
		{"id": "tt1", "l": "One", "qid": "movie"},
		{"id": "nm1", "l": "A Person"},
	}}
	got, err := NewService(stub).Search(context.Background(), "one")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "tt1" {
		t.Errorf("Search() = %+v", got)
	}
}

func TestService_TitleKeepsBaseOnError(t *testing.T) {
	t.Parallel()

	stub := &stubClient{err: &client.StatusError{Op: "external overview", StatusCode: 429}}
	base := models.ExternalTitle{ID: "tt1", Title: "One", Year: "2001"}

	got, err := NewService(stub).Title(context.Background(), "tt1", base)
	if !errors.Is(err, client.ErrRateLimited) {
		t.Fatalf("Title() error = %v, want ErrRateLimited", err)
	}
	if got.Title != "One" || got.Year != "2001" {
		t.Errorf("Title() = %+v, want base", got)
	}
}

func TestStateHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		str   string
		val   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.str)
		}
		if got := stateToFloat(tt.state); got != tt.val {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.val)
		}
	}
}
