// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/partymap/internal/catalog"
	"github.com/tomtom215/partymap/internal/enrich"
	"github.com/tomtom215/partymap/internal/models"
	"github.com/tomtom215/partymap/internal/recommend"
	"github.com/tomtom215/partymap/internal/source"
	"github.com/tomtom215/partymap/internal/store"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// directPublisher records straight into the interaction store.
type directPublisher struct {
	store     *store.InteractionStore
	published []models.EventInteraction
	err       error
}

func (p *directPublisher) PublishInteraction(ctx context.Context, ix *models.EventInteraction) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, *ix)
	_, err := p.store.Record(ctx, ix)
	return err
}

type failingInteractions struct{}

func (failingInteractions) List(context.Context, string) ([]models.EventInteraction, error) {
	return nil, errors.New("badger closed")
}

func (failingInteractions) Delete(context.Context, string, string) error {
	return errors.New("badger closed")
}

func event(id, title, category string, lat, lng float64) models.RawEvent {
	return models.RawEvent{
		ID:          id,
		Title:       title,
		Description: title,
		Category:    category,
		Coordinates: []float64{lng, lat},
	}
}

type fixture struct {
	svc       *Service
	catalog   *catalog.Catalog
	db        *store.DB
	publisher *directPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := store.Open(store.Options{InMemory: true})
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	enricher := enrich.NewMemoizer(enrich.NewClassifier(enrich.WithClock(clock)), time.Hour, 100)
	rec, err := recommend.NewRecommender(recommend.DefaultConfig(), enricher, recommend.WithClock(clock))
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}

	cat := catalog.New(source.None{}, enricher, catalog.Config{CellSizeMiles: 5})
	cat.Replace([]models.RawEvent{
		event("techno", "Techno night", "party", 40.7128, -74.0060),
		event("reggae", "Reggae night", "party", 40.7178, -74.0431),
		event("philly", "Philly warehouse rave", "party", 39.9526, -75.1652),
		event("lecture", "History lecture", "education", 40.7130, -74.0062),
	})

	pub := &directPublisher{store: db.Interactions()}
	svc, err := New(Deps{
		Catalog:      cat,
		Recommender:  rec,
		Enricher:     enricher,
		Preferences:  db.Preferences(),
		Interactions: db.Interactions(),
		Publisher:    pub,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	svc.now = clock

	return &fixture{svc: svc, catalog: cat, db: db, publisher: pub}
}

func ids(results []models.RecommendationResult) []string {
	out := make([]string, len(results))
	for i := range results {
		out[i] = results[i].Event.ID
	}
	return out
}

func TestNew_RequiresDeps(t *testing.T) {
	t.Parallel()

	if _, err := New(Deps{}); err == nil {
		t.Error("New(Deps{}) error = nil, want error")
	}
}

func TestService_Events(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	tests := []struct {
		name     string
		category string
		limit    int
		want     int
	}{
		{"all", "", 0, 4},
		{"party", "party", 0, 3},
		{"party case insensitive", "PARTY", 0, 3},
		{"education", "education", 0, 1},
		{"limited", "", 2, 2},
		{"unknown", "sports", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := f.svc.Events(tt.category, tt.limit)
			if len(got) != tt.want {
				t.Errorf("Events(%q, %d) returned %d events, want %d", tt.category, tt.limit, len(got), tt.want)
			}
		})
	}
}

func TestService_Event(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	ev, err := f.svc.Event("techno")
	if err != nil {
		t.Fatalf("Event(techno) error = %v", err)
	}
	if ev.Enrichment == nil || !ev.Enrichment.HasGenre(models.GenreTechno) {
		t.Errorf("Event(techno) enrichment = %+v, want techno genre", ev.Enrichment)
	}
	if _, err := f.svc.Event("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Event(missing) error = %v, want ErrNotFound", err)
	}
}

func TestService_PersonalizedUsesStoredPreferences(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	// No preferences stored yet is not an error.
	resp, err := f.svc.Personalized(ctx, "u1", nil, 0)
	if err != nil {
		t.Fatalf("Personalized() without preferences error = %v", err)
	}
	if resp.Total != 4 || resp.Mode != models.ModePersonalized {
		t.Errorf("Personalized() = mode %s total %d, want personalized 4", resp.Mode, resp.Total)
	}

	if _, err := f.svc.SetPreferences(ctx, "u1", &models.UserPreferences{MusicGenres: []string{"reggae"}}); err != nil {
		t.Fatalf("SetPreferences() error = %v", err)
	}
	resp, err = f.svc.Personalized(ctx, "u1", nil, 2)
	if err != nil {
		t.Fatalf("Personalized() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("Personalized() returned %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Event.ID != "reggae" {
		t.Errorf("Personalized() top result = %s, want reggae (order %v)", resp.Results[0].Event.ID, ids(resp.Results))
	}
}

func TestService_PersonalizedStoreError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.svc.interactions = failingInteractions{}

	if _, err := f.svc.Personalized(context.Background(), "u1", nil, 0); err == nil {
		t.Error("Personalized() error = nil, want error from interaction store")
	}
}

func TestService_Score(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	sc := &models.ScoringContext{
		Events: []models.RawEvent{
			event("a", "Techno night", "party", 40.7128, -74.0060),
			event("b", "Reggae night", "party", 40.7128, -74.0060),
		},
		Preferences: models.UserPreferences{MusicGenres: []string{"techno"}},
		Limit:       1,
	}
	resp := f.svc.Score(context.Background(), sc)
	if resp.Total != 2 || len(resp.Results) != 1 {
		t.Fatalf("Score() total %d results %d, want 2 and 1", resp.Total, len(resp.Results))
	}
	if resp.Results[0].Event.ID != "a" {
		t.Errorf("Score() top result = %s, want a", resp.Results[0].Event.ID)
	}
}

func TestService_TrendingClampsLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	tests := []struct {
		limit int
		want  int
	}{
		{0, 4},
		{1, 1},
		{1000, 4},
	}
	for _, tt := range tests {
		resp := f.svc.Trending(context.Background(), nil, tt.limit)
		if len(resp.Results) != tt.want {
			t.Errorf("Trending(limit=%d) returned %d results, want %d", tt.limit, len(resp.Results), tt.want)
		}
		if resp.Total != 4 {
			t.Errorf("Trending(limit=%d) total = %d, want 4", tt.limit, resp.Total)
		}
	}
}

func TestService_Nearby(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	nyc := models.UserLocation{Latitude: 40.7128, Longitude: -74.0060}

	resp := f.svc.Nearby(context.Background(), nyc, 5, 0)
	got := ids(resp.Results)
	want := []string{"techno", "lecture", "reggae"}
	if len(got) != len(want) {
		t.Fatalf("Nearby() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Nearby()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// The default radius (30 miles) still excludes Philadelphia.
	resp = f.svc.Nearby(context.Background(), nyc, 0, 0)
	for _, id := range ids(resp.Results) {
		if id == "philly" {
			t.Error("Nearby() with default radius included philly")
		}
	}

	resp = f.svc.Nearby(context.Background(), nyc, 200, 0)
	if resp.Total != 4 {
		t.Errorf("Nearby(200mi) total = %d, want 4", resp.Total)
	}
}

func TestService_Interactions(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.RecordInteraction(ctx, "u1", &models.EventInteraction{EventID: "techno"}); !errors.Is(err, ErrEmptyInteraction) {
		t.Errorf("RecordInteraction(no flags) error = %v, want ErrEmptyInteraction", err)
	}

	got, err := f.svc.RecordInteraction(ctx, "u1", &models.EventInteraction{UserID: "spoofed", EventID: "techno", Saved: true})
	if err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}
	if got.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", got.UserID)
	}
	if !got.Timestamp.Equal(fixedNow) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, fixedNow)
	}

	list, err := f.svc.Interactions(ctx, "u1")
	if err != nil {
		t.Fatalf("Interactions() error = %v", err)
	}
	if len(list) != 1 || list[0].EventID != "techno" || !list[0].Saved {
		t.Errorf("Interactions() = %+v", list)
	}

	if err := f.svc.DeleteInteraction(ctx, "u1", "techno"); err != nil {
		t.Fatalf("DeleteInteraction() error = %v", err)
	}
	if err := f.svc.DeleteInteraction(ctx, "u1", "techno"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteInteraction() error = %v, want ErrNotFound", err)
	}

	f.publisher.err = errors.New("bus down")
	if _, err := f.svc.RecordInteraction(ctx, "u1", &models.EventInteraction{EventID: "reggae", Viewed: true}); err == nil {
		t.Error("RecordInteraction() with failing publisher error = nil, want error")
	}
}

func TestService_Preferences(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Preferences(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Preferences(nobody) error = %v, want ErrNotFound", err)
	}

	stored, err := f.svc.SetPreferences(ctx, "u2", &models.UserPreferences{WantsDJ: true})
	if err != nil {
		t.Fatalf("SetPreferences() error = %v", err)
	}
	if stored.UserID != "u2" || !stored.WantsDJ {
		t.Errorf("SetPreferences() = %+v", stored)
	}

	if err := f.svc.DeletePreferences(ctx, "u2"); err != nil {
		t.Fatalf("DeletePreferences() error = %v", err)
	}
	if _, err := f.svc.Preferences(ctx, "u2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Preferences after delete error = %v, want ErrNotFound", err)
	}
}

func TestService_CatalogStatus(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	n, last := f.svc.CatalogStatus()
	if n != 4 {
		t.Errorf("CatalogStatus() events = %d, want 4", n)
	}
	if last.IsZero() {
		t.Error("CatalogStatus() last refresh is zero after Replace")
	}

	// source.None returns nothing, so a forced refresh empties the catalog.
	got, err := f.svc.RefreshCatalog(context.Background())
	if err != nil {
		t.Fatalf("RefreshCatalog() error = %v", err)
	}
	if got != 0 {
		t.Errorf("RefreshCatalog() = %d, want 0", got)
	}
}
