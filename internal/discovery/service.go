// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

// Package discovery is the application layer behind the HTTP API. It reads
// the catalog snapshot and the user's stored state, runs the recommender and
// applies result limits.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/partymap/internal/enrich"
	"github.com/tomtom215/partymap/internal/logging"
	"github.com/tomtom215/partymap/internal/metrics"
	"github.com/tomtom215/partymap/internal/models"
	"github.com/tomtom215/partymap/internal/recommend"
	"github.com/tomtom215/partymap/internal/store"
)

var (
	// ErrNotFound is returned for unknown users, interactions or events.
	ErrNotFound = store.ErrNotFound

	// ErrEmptyInteraction is returned for an interaction with no flag set.
	ErrEmptyInteraction = errors.New("interaction sets no flags")
)

// Catalog is the read side of catalog.Catalog plus a forced refresh.
type Catalog interface {
	Events() []models.RawEvent
	Enriched() []models.EnrichedEvent
	Get(id string) (models.EnrichedEvent, bool)
	Within(lat, lng, miles float64) []models.RawEvent
	Len() int
	LastRefresh() time.Time
	Refresh(ctx context.Context) (int, error)
}

// PreferenceStore is implemented by store.PreferenceStore.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (*models.UserPreferences, error)
	Put(ctx context.Context, userID string, prefs *models.UserPreferences) (*models.UserPreferences, error)
	Delete(ctx context.Context, userID string) error
}

// InteractionStore is the read side of store.InteractionStore. Writes go
// through the Publisher.
type InteractionStore interface {
	List(ctx context.Context, userID string) ([]models.EventInteraction, error)
	Delete(ctx context.Context, userID, eventID string) error
}

// Publisher is implemented by eventbus.Bus.
type Publisher interface {
	PublishInteraction(ctx context.Context, ix *models.EventInteraction) error
}

// Deps are the collaborators of a Service. All are required.
type Deps struct {
	Catalog      Catalog
	Recommender  *recommend.Recommender
	Enricher     enrich.Enricher
	Preferences  PreferenceStore
	Interactions InteractionStore
	Publisher    Publisher
}

// Service is safe for concurrent use.
type Service struct {
	catalog      Catalog
	recommender  *recommend.Recommender
	enricher     enrich.Enricher
	preferences  PreferenceStore
	interactions InteractionStore
	publisher    Publisher
	now          func() time.Time
}

// New creates a Service.
func New(deps Deps) (*Service, error) {
	switch {
	case deps.Catalog == nil:
		return nil, fmt.Errorf("discovery: catalog is required")
	case deps.Recommender == nil:
		return nil, fmt.Errorf("discovery: recommender is required")
	case deps.Enricher == nil:
		return nil, fmt.Errorf("discovery: enricher is required")
	case deps.Preferences == nil:
		return nil, fmt.Errorf("discovery: preference store is required")
	case deps.Interactions == nil:
		return nil, fmt.Errorf("discovery: interaction store is required")
	case deps.Publisher == nil:
		return nil, fmt.Errorf("discovery: publisher is required")
	}
	return &Service{
		catalog:      deps.Catalog,
		recommender:  deps.Recommender,
		enricher:     deps.Enricher,
		preferences:  deps.Preferences,
		interactions: deps.Interactions,
		publisher:    deps.Publisher,
		now:          time.Now,
	}, nil
}

// CatalogStatus reports the snapshot size and when it was installed.
func (s *Service) CatalogStatus() (events int, lastRefresh time.Time) {
	return s.catalog.Len(), s.catalog.LastRefresh()
}

// RefreshCatalog forces a catalog refresh.
func (s *Service) RefreshCatalog(ctx context.Context) (int, error) {
	return s.catalog.Refresh(ctx)
}

// Events lists the enriched catalog in snapshot order. category filters
// case-insensitively; "party" matches every party-type event. limit <= 0
// returns everything.
func (s *Service) Events(category string, limit int) []models.EnrichedEvent {
	all := s.catalog.Enriched()
	category = strings.TrimSpace(category)

	out := make([]models.EnrichedEvent, 0, len(all))
	for i := range all {
		if category != "" && !matchesCategory(&all[i], category) {
			continue
		}
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func matchesCategory(ev *models.EnrichedEvent, category string) bool {
	if strings.EqualFold(category, models.CategoryParty) {
		return ev.IsParty()
	}
	return strings.EqualFold(strings.TrimSpace(ev.Category), category)
}

// Event returns one enriched catalog event.
func (s *Service) Event(id string) (models.EnrichedEvent, error) {
	ev, ok := s.catalog.Get(id)
	if !ok {
		return models.EnrichedEvent{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	return ev, nil
}

// Enrich classifies posted events through the shared enricher.
func (s *Service) Enrich(events []models.RawEvent) []models.EnrichedEvent {
	return s.enricher.EnrichAll(events)
}

// Personalized ranks the catalog for a stored user. A user without saved
// preferences is scored with no preference filters.
func (s *Service) Personalized(ctx context.Context, userID string, loc *models.UserLocation, limit int) (*models.RecommendationResponse, error) {
	start := time.Now()

	prefs, err := s.preferences.Get(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	history, err := s.interactions.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	results := s.recommender.Personalized(s.catalog.Events(), prefs, loc, history)
	return s.respond(ctx, models.ModePersonalized, results, limit, start), nil
}

// Score ranks an ad hoc scoring context without touching stored state.
func (s *Service) Score(ctx context.Context, sc *models.ScoringContext) *models.RecommendationResponse {
	start := time.Now()
	results := s.recommender.Personalized(sc.Events, &sc.Preferences, sc.Location, sc.Interactions)
	return s.respond(ctx, models.ModePersonalized, results, sc.Limit, start)
}

// Trending ranks the catalog by quality and recency.
func (s *Service) Trending(ctx context.Context, loc *models.UserLocation, limit int) *models.RecommendationResponse {
	start := time.Now()
	results := s.recommender.Trending(s.catalog.Events(), loc)
	return s.respond(ctx, models.ModeTrending, results, limit, start)
}

// Nearby ranks catalog events within maxMiles of loc, closest first.
// maxMiles <= 0 uses the configured default radius.
func (s *Service) Nearby(ctx context.Context, loc models.UserLocation, maxMiles float64, limit int) *models.RecommendationResponse {
	start := time.Now()
	if maxMiles <= 0 {
		maxMiles = s.recommender.Config().DefaultMaxDistanceMiles
	}
	candidates := s.catalog.Within(loc.Latitude, loc.Longitude, maxMiles)
	results := s.recommender.Nearby(candidates, loc, maxMiles)
	return s.respond(ctx, models.ModeNearby, results, limit, start)
}

func (s *Service) respond(ctx context.Context, mode models.RecommendationMode, results []models.RecommendationResult, limit int, start time.Time) *models.RecommendationResponse {
	total := len(results)
	if k := s.recommender.Config().ClampLimit(limit); len(results) > k {
		results = results[:k]
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation(string(mode), len(results), elapsed)
	logging.Ctx(ctx).Debug().
		Str("mode", string(mode)).
		Int("candidates", total).
		Int("results", len(results)).
		Dur("duration", elapsed).
		Msg("Recommendations computed")

	return &models.RecommendationResponse{
		Mode:    mode,
		Total:   total,
		Results: results,
	}
}

// Preferences returns the stored preferences of userID.
func (s *Service) Preferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	return s.preferences.Get(ctx, userID)
}

// SetPreferences replaces the stored preferences of userID.
func (s *Service) SetPreferences(ctx context.Context, userID string, prefs *models.UserPreferences) (*models.UserPreferences, error) {
	stored, err := s.preferences.Put(ctx, userID, prefs)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Str("user_id", userID).Msg("Preferences updated")
	return stored, nil
}

// DeletePreferences removes the stored preferences of userID.
func (s *Service) DeletePreferences(ctx context.Context, userID string) error {
	return s.preferences.Delete(ctx, userID)
}

// Interactions lists the stored interactions of userID, most recent first.
func (s *Service) Interactions(ctx context.Context, userID string) ([]models.EventInteraction, error) {
	return s.interactions.List(ctx, userID)
}

// RecordInteraction publishes an interaction of userID. A zero timestamp is
// set to the current time.
func (s *Service) RecordInteraction(ctx context.Context, userID string, ix *models.EventInteraction) (*models.EventInteraction, error) {
	if !ix.HasAny() {
		return nil, fmt.Errorf("event %q: %w", ix.EventID, ErrEmptyInteraction)
	}

	out := *ix
	out.UserID = userID
	if out.Timestamp.IsZero() {
		out.Timestamp = s.now().UTC()
	}

	if err := s.publisher.PublishInteraction(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInteraction removes the stored interaction of userID with eventID.
func (s *Service) DeleteInteraction(ctx context.Context, userID, eventID string) error {
	return s.interactions.Delete(ctx, userID, eventID)
}
