// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package enrich

import (
	"time"

	"github.com/tomtom215/partymap/internal/cache"
	"github.com/tomtom215/partymap/internal/metrics"
	"github.com/tomtom215/partymap/internal/models"
)

// Enricher is implemented by Classifier and Memoizer.
type Enricher interface {
	Enrich(ev models.RawEvent) models.EnrichedEvent
	EnrichAll(events []models.RawEvent) []models.EnrichedEvent
}

var (
	_ Enricher = (*Classifier)(nil)
	_ Enricher = (*Memoizer)(nil)
)

// Memoizer caches classifier output keyed on (event ID, input hash), so a
// changed event is re-enriched even when its ID is stable. Entries expire
// after the configured TTL.
//
// Returned events share storage with the cache and must be treated as
// read-only.
type Memoizer struct {
	classifier *Classifier
	cache      *cache.TTL[models.EnrichedEvent]
}

// NewMemoizer wraps c. maxEntries <= 0 leaves the cache unbounded.
func NewMemoizer(c *Classifier, ttl time.Duration, maxEntries int) *Memoizer {
	return &Memoizer{
		classifier: c,
		cache:      cache.NewTTL[models.EnrichedEvent](ttl, cache.WithMaxKeys(maxEntries)),
	}
}

// Key returns the memoization key for ev.
func Key(ev *models.RawEvent) string {
	return cache.GenerateKey("enrich:"+Version+":"+ev.ID, ev)
}

// Enrich returns the cached enrichment of ev or computes and stores it.
func (m *Memoizer) Enrich(ev models.RawEvent) models.EnrichedEvent {
	key := Key(&ev)
	if cached, ok := m.cache.Get(key); ok {
		metrics.EnrichCacheHits.Inc()
		return cached
	}
	metrics.EnrichCacheMisses.Inc()

	out := m.classifier.Enrich(ev)
	if out.Enrichment != nil {
		metrics.EventsEnriched.WithLabelValues("enriched").Inc()
	} else {
		metrics.EventsEnriched.WithLabelValues("passthrough").Inc()
	}
	m.cache.Set(key, out)
	return out
}

// EnrichAll enriches events element-wise through the cache.
func (m *Memoizer) EnrichAll(events []models.RawEvent) []models.EnrichedEvent {
	out := make([]models.EnrichedEvent, len(events))
	for i := range events {
		out[i] = m.Enrich(events[i])
	}
	return out
}

// Sweep drops expired entries and returns how many were removed.
func (m *Memoizer) Sweep() int {
	removed := m.cache.Cleanup()
	metrics.EnrichCacheSize.Set(float64(m.cache.Len()))
	return removed
}

// Invalidate drops every cached enrichment.
func (m *Memoizer) Invalidate() {
	m.cache.Clear()
	metrics.EnrichCacheSize.Set(0)
}

// Stats returns cache statistics.
func (m *Memoizer) Stats() cache.Stats {
	return m.cache.GetStats()
}
