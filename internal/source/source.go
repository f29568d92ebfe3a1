// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

// Package source fetches raw events from an upstream search API or a JSON
// fixture file.
package source

import (
	"context"
	"errors"

	"github.com/tomtom215/partymap/internal/models"
)

// ErrCircuitOpen is returned while the upstream circuit breaker rejects calls.
var ErrCircuitOpen = errors.New("source: circuit breaker open")

// Query describes one upstream search.
type Query struct {
	// Text is the free-text search term, e.g. "party".
	Text string

	// Location is a free-form place name passed through to the upstream.
	Location string

	// Limit caps the number of returned events; zero means no cap.
	Limit int
}

// Searcher returns raw events for a query.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]models.RawEvent, error)
	Name() string
}

// Dedupe removes events with a duplicate or empty ID, keeping the first
// occurrence and preserving order.
func Dedupe(events []models.RawEvent) []models.RawEvent {
	seen := make(map[string]struct{}, len(events))
	out := make([]models.RawEvent, 0, len(events))
	for i := range events {
		id := events[i].ID
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, events[i])
	}
	return out
}

// None is a Searcher that never returns events. It backs deployments where
// events only arrive through the enrich endpoint.
type None struct{}

// Search returns an empty result.
func (None) Search(ctx context.Context, _ Query) ([]models.RawEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []models.RawEvent{}, nil
}

// Name identifies the searcher in logs and metrics.
func (None) Name() string { return "none" }

// truncate applies a query limit.
func truncate(events []models.RawEvent, limit int) []models.RawEvent {
	if limit > 0 && len(events) > limit {
		return events[:limit]
	}
	return events
}
