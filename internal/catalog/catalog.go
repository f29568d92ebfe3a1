// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

// Package catalog holds the current snapshot of discoverable events.
//
// A snapshot is the deduplicated search result, its enrichment and a
// spatial index. Refresh builds a new snapshot off to the side and swaps it
// in under a write lock, so readers always see a complete snapshot and a
// failed refresh leaves the previous one in place.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/partymap/internal/cache"
	"github.com/tomtom215/partymap/internal/enrich"
	"github.com/tomtom215/partymap/internal/logging"
	"github.com/tomtom215/partymap/internal/metrics"
	"github.com/tomtom215/partymap/internal/models"
	"github.com/tomtom215/partymap/internal/source"
)

// Config configures a Catalog.
type Config struct {
	// Query is sent to the searcher on every refresh.
	Query source.Query

	// CellSizeMiles is the spatial grid cell edge.
	CellSizeMiles float64
}

type snapshot struct {
	raw       []models.RawEvent
	enriched  []models.EnrichedEvent
	byID      map[string]int
	grid      *cache.SpatialHashGrid
	refreshed time.Time
}

// Catalog is safe for concurrent use.
type Catalog struct {
	searcher source.Searcher
	enricher enrich.Enricher
	cfg      Config
	now      func() time.Time

	refreshMu sync.Mutex // serializes refreshes

	mu   sync.RWMutex
	snap *snapshot
}

// New creates an empty catalog.
func New(searcher source.Searcher, enricher enrich.Enricher, cfg Config) *Catalog {
	c := &Catalog{
		searcher: searcher,
		enricher: enricher,
		cfg:      cfg,
		now:      time.Now,
	}
	c.snap = c.build(nil, time.Time{})
	return c
}

// Refresh searches the upstream and replaces the snapshot. It returns the
// number of events in the new snapshot. On error the previous snapshot is kept.
func (c *Catalog) Refresh(ctx context.Context) (n int, err error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	start := time.Now()
	defer func() { metrics.RecordCatalogRefresh(time.Since(start), n, err) }()

	events, err := c.searcher.Search(ctx, c.cfg.Query)
	if err != nil {
		return 0, fmt.Errorf("refresh catalog from %s: %w", c.searcher.Name(), err)
	}

	n = c.Replace(events)
	logging.Ctx(ctx).Info().
		Str("source", c.searcher.Name()).
		Int("fetched", len(events)).
		Int("events", n).
		Dur("duration", time.Since(start)).
		Msg("Catalog refreshed")
	return n, nil
}

// Replace installs events as the new snapshot without calling the searcher.
// Duplicates are dropped. It returns the resulting event count.
func (c *Catalog) Replace(events []models.RawEvent) int {
	snap := c.build(source.Dedupe(events), c.now())

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	return len(snap.raw)
}

func (c *Catalog) build(raw []models.RawEvent, refreshed time.Time) *snapshot {
	if raw == nil {
		raw = []models.RawEvent{}
	}
	snap := &snapshot{
		raw:       raw,
		enriched:  c.enricher.EnrichAll(raw),
		byID:      make(map[string]int, len(raw)),
		grid:      cache.NewSpatialHashGrid(c.cfg.CellSizeMiles),
		refreshed: refreshed,
	}
	for i := range raw {
		snap.byID[raw[i].ID] = i
		if lat, lng, ok := raw[i].LatLng(); ok {
			snap.grid.Insert(raw[i].ID, lat, lng, i)
		}
	}
	return snap
}

func (c *Catalog) current() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Events returns the raw events of the current snapshot. The slice is
// shared and must not be modified.
func (c *Catalog) Events() []models.RawEvent {
	return c.current().raw
}

// Enriched returns the enriched events of the current snapshot, in the same
// order as Events. The slice is shared and must not be modified.
func (c *Catalog) Enriched() []models.EnrichedEvent {
	return c.current().enriched
}

// Get returns the enriched event with the given ID.
func (c *Catalog) Get(id string) (models.EnrichedEvent, bool) {
	snap := c.current()
	i, ok := snap.byID[id]
	if !ok {
		return models.EnrichedEvent{}, false
	}
	return snap.enriched[i], true
}

// Within returns raw events within miles of (lat, lng), nearest first.
// Events without coordinates are never returned.
func (c *Catalog) Within(lat, lng, miles float64) []models.RawEvent {
	snap := c.current()
	neighbors := snap.grid.QueryNearby(lat, lng, miles)
	out := make([]models.RawEvent, 0, len(neighbors))
	for _, n := range neighbors {
		out = append(out, snap.raw[n.Data.(int)])
	}
	return out
}

// Len returns the number of events in the current snapshot.
func (c *Catalog) Len() int {
	return len(c.current().raw)
}

// LastRefresh returns when the current snapshot was installed; zero before
// the first refresh.
func (c *Catalog) LastRefresh() time.Time {
	return c.current().refreshed
}
