// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package recommend

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/partymap/internal/enrich"
	"github.com/tomtom215/partymap/internal/models"
)

// Recommender ranks events for a user. Every entry point enriches its input
// first, scores each event, and returns freshly allocated results; arguments
// are never modified. It is safe for concurrent use.
type Recommender struct {
	config   *Config
	enricher enrich.Enricher
	now      func() time.Time
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithClock sets the reference time used for recency and weekday matching.
func WithClock(now func() time.Time) Option {
	return func(r *Recommender) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecommender creates a Recommender. A nil cfg uses DefaultConfig and a
// nil enricher uses a plain Classifier.
func NewRecommender(cfg *Config, enricher enrich.Enricher, opts ...Option) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if enricher == nil {
		enricher = enrich.NewClassifier()
	}

	r := &Recommender{
		config:   cfg,
		enricher: enricher,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Config returns the scorer configuration.
func (r *Recommender) Config() *Config {
	return r.config
}

// Personalized ranks events by a blend of quality, preference match,
// proximity, recency and the user's interaction history. Results are sorted
// by score, highest first; equal scores keep input order.
func (r *Recommender) Personalized(events []models.RawEvent, prefs *models.UserPreferences, loc *models.UserLocation, interactions []models.EventInteraction) []models.RecommendationResult {
	enriched := r.enricher.EnrichAll(events)
	now := r.now()
	w := r.config.Personalized

	maxMiles := r.config.DefaultMaxDistanceMiles
	if prefs != nil && prefs.MaxDistance > 0 {
		maxMiles = prefs.MaxDistance
	}

	byID := make(map[string]*models.EnrichedEvent, len(enriched))
	for i := range enriched {
		if _, dup := byID[enriched[i].ID]; !dup {
			byID[enriched[i].ID] = &enriched[i]
		}
	}

	results := make([]models.RecommendationResult, 0, len(enriched))
	for i := range enriched {
		ev := &enriched[i]
		var reasons []string

		base := baseScore(ev, r.config.DefaultPopularity)

		pref, prefReasons := preferenceScore(ev, prefs, now)
		reasons = append(reasons, prefReasons...)

		var location float64
		distance, hasDistance := distanceTo(ev, loc)
		if hasDistance {
			var reason string
			location, reason = locationScore(distance, maxMiles)
			reasons = appendReason(reasons, reason)
		}

		recency, recencyReason := recencyScore(ev, now)
		reasons = appendReason(reasons, recencyReason)

		personal, personalReasons := personalizationScore(ev, interactions, byID)
		reasons = append(reasons, personalReasons...)

		score := base*w.Base + pref*w.Preference + location*w.Location +
			recency*w.Recency + personal*w.Personalization

		results = append(results, newResult(ev, score, reasons, distance, hasDistance))
	}

	sortByScore(results)
	return results
}

// Trending ranks events by quality and recency alone. When loc is given,
// proximity contributes a small share of the score.
func (r *Recommender) Trending(events []models.RawEvent, loc *models.UserLocation) []models.RecommendationResult {
	enriched := r.enricher.EnrichAll(events)
	now := r.now()
	w := r.config.Trending

	results := make([]models.RecommendationResult, 0, len(enriched))
	for i := range enriched {
		ev := &enriched[i]
		var reasons []string

		base := baseScore(ev, r.config.DefaultPopularity)
		distance, hasDistance := distanceTo(ev, loc)
		var location float64
		if hasDistance {
			var reason string
			location, reason = locationScore(distance, r.config.DefaultMaxDistanceMiles)
			reasons = appendReason(reasons, reason)
		}

		recency, recencyReason := recencyScore(ev, now)
		reasons = appendReason(reasons, recencyReason)

		score := base*w.Base + recency*w.Recency
		if loc != nil {
			score = score*(1-w.LocationBlend) + location*w.LocationBlend
		}

		results = append(results, newResult(ev, score, reasons, distance, hasDistance))
	}

	sortByScore(results)
	return results
}

// Nearby returns the events within maxMiles of loc, closest first. Events
// without coordinates are dropped. The score only orders events at equal
// distance. maxMiles <= 0 uses the configured default.
func (r *Recommender) Nearby(events []models.RawEvent, loc models.UserLocation, maxMiles float64) []models.RecommendationResult {
	if maxMiles <= 0 {
		maxMiles = r.config.DefaultMaxDistanceMiles
	}
	enriched := r.enricher.EnrichAll(events)
	now := r.now()
	w := r.config.Nearby

	results := make([]models.RecommendationResult, 0, len(enriched))
	for i := range enriched {
		ev := &enriched[i]
		distance, ok := distanceTo(ev, &loc)
		if !ok || distance > maxMiles {
			continue
		}

		var reasons []string
		base := baseScore(ev, r.config.DefaultPopularity)
		proximity, reason := locationScore(distance, maxMiles)
		reasons = appendReason(reasons, reason)
		recency, recencyReason := recencyScore(ev, now)
		reasons = appendReason(reasons, recencyReason)

		score := base*w.Base + proximity*w.Distance + recency*w.Recency
		results = append(results, newResult(ev, score, reasons, distance, true))
	}

	slices.SortStableFunc(results, func(a, b models.RecommendationResult) int {
		if c := cmp.Compare(*a.Distance, *b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(b.Score, a.Score)
	})
	return results
}

func newResult(ev *models.EnrichedEvent, score float64, reasons []string, distance float64, hasDistance bool) models.RecommendationResult {
	if reasons == nil {
		reasons = []string{}
	}
	res := models.RecommendationResult{
		Event:        *ev,
		Score:        clampScore(score),
		MatchReasons: reasons,
	}
	if hasDistance {
		d := distance
		res.Distance = &d
	}
	return res
}

func appendReason(reasons []string, reason string) []string {
	if reason == "" {
		return reasons
	}
	return append(reasons, reason)
}

func sortByScore(results []models.RecommendationResult) {
	slices.SortStableFunc(results, func(a, b models.RecommendationResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
}
