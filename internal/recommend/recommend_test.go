// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package recommend

import (
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/partymap/internal/enrich"
	"github.com/tomtom215/partymap/internal/models"
)

// 2026-10-14 is a Wednesday.
var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestRecommender(t *testing.T) *Recommender {
	t.Helper()
	r, err := NewRecommender(nil, enrich.NewClassifier(enrich.WithClock(clock)), WithClock(clock))
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}
	return r
}

func ptr[T any](v T) *T { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

var newYork = models.UserLocation{Latitude: 40.7128, Longitude: -74.0060}

func at(id string, lat, lng float64) models.RawEvent {
	return models.RawEvent{ID: id, Title: "Party " + id, Category: "party", Coordinates: []float64{lng, lat}}
}

func TestNewRecommender_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Personalized.Preference = -1
	if _, err := NewRecommender(cfg, nil); err == nil {
		t.Error("NewRecommender() error = nil, want invalid config error")
	}
}

func TestRecencyForDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		days int
		want float64
	}{
		{0, 100}, {1, 90}, {3, 90}, {4, 80}, {7, 80}, {8, 70}, {10, 70}, {14, 70},
		{15, 60}, {30, 60}, {31, 50}, {60, 50}, {61, 40}, {90, 40}, {91, 30}, {210, 0}, {400, 0},
	}
	for _, tt := range tests {
		if got := recencyForDays(tt.days); got != tt.want {
			t.Errorf("recencyForDays(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestRecencyScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rawDate    string
		date       string
		want       float64
		wantReason bool
	}{
		{"today", "2026-10-14T23:00:00Z", "", 100, true},
		{"ten days out", "2026-10-24T23:00:00Z", "", 70, true},
		{"display date only", "", "Sat, Oct 17", 90, true},
		{"past", "2026-10-01T20:00:00Z", "", 0, true},
		{"no date", "", "", 0, false},
		{"garbage", "soon", "whenever", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev := &models.EnrichedEvent{RawEvent: models.RawEvent{RawDate: tt.rawDate, Date: tt.date}}
			got, reason := recencyScore(ev, fixedNow)
			if got != tt.want {
				t.Errorf("recencyScore = %v, want %v", got, tt.want)
			}
			if (reason != "") != tt.wantReason {
				t.Errorf("reason = %q, want present=%v", reason, tt.wantReason)
			}
		})
	}
}

func TestLocationScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		distance, max float64
		want          float64
		reason        string
	}{
		{0, 30, 100, "Less than a mile away"},
		{3, 30, 90, "Close by (3.0 miles)"},
		{10, 30, 100 * (1 - 10.0/30), "10.0 miles away"},
		{15, 30, 50, "Within 30 miles"},
		{30, 30, 0, "Within 30 miles"},
		{31, 30, 0, ""},
	}
	for _, tt := range tests {
		got, reason := locationScore(tt.distance, tt.max)
		if !approx(got, tt.want) {
			t.Errorf("locationScore(%v, %v) = %v, want %v", tt.distance, tt.max, got, tt.want)
		}
		if reason != tt.reason {
			t.Errorf("locationScore(%v, %v) reason = %q, want %q", tt.distance, tt.max, reason, tt.reason)
		}
	}
}

func TestBaseScore(t *testing.T) {
	t.Parallel()

	bare := &models.EnrichedEvent{RawEvent: models.RawEvent{ID: "bare"}}
	if got := baseScore(bare, 50); got != 50 {
		t.Errorf("baseScore(bare) = %v, want 50", got)
	}

	complete := &models.EnrichedEvent{RawEvent: models.RawEvent{
		ID:          "complete",
		Description: strings.Repeat("x", 301),
		Image:       "https://img.example.com/1.jpg",
		Coordinates: []float64{-74, 40.7},
		URL:         "https://example.com/e/1",
	}}
	if got := baseScore(complete, 50); got != 70 {
		t.Errorf("baseScore(complete) = %v, want 70", got)
	}

	featured := &models.EnrichedEvent{
		RawEvent: models.RawEvent{ID: "featured"},
		Enrichment: &models.Enrichment{
			Popularity: 40, HasVIP: true, HasDrinkSpecials: true, HasFoodOptions: true, HasLiveMusic: true, HasDJ: true,
		},
	}
	if got := baseScore(featured, 50); got != 51 {
		t.Errorf("baseScore(featured) = %v, want 51", got)
	}

	featured.Enrichment.Popularity = 100
	if got := baseScore(featured, 50); got != 100 {
		t.Errorf("baseScore(clamped) = %v, want 100", got)
	}
}

func clubNight() *models.EnrichedEvent {
	ev := enrich.NewClassifier(enrich.WithClock(clock)).Enrich(models.RawEvent{
		ID:               "club",
		Title:            "Club Night",
		Description:      "techno night with vip tables",
		Category:         "party",
		PartySubcategory: models.SubcategoryNightclub,
		Price:            "$15",
		Time:             "11pm",
	})
	return &ev
}

func TestPreferenceScore(t *testing.T) {
	t.Parallel()

	prefs := &models.UserPreferences{
		MusicGenres:    []string{"techno", "jazz"},
		PartyTypes:     []models.PartySubcategory{models.SubcategoryNightclub},
		PriceRanges:    []models.PriceRange{models.PriceLow},
		CrowdTypes:     []models.CrowdType{models.CrowdYoung},
		PreferredTimes: []string{models.TimePreferenceNight},
		WantsVIP:       true,
		WantsDJ:        true,
		MinimumAge:     ptr(25),
	}

	got, reasons := preferenceScore(clubNight(), prefs, fixedNow)
	// 10 genre + 20 type + 15 price + 10 time + 5 vip, 5 of 7 dimensions matched.
	want := 60 * (0.5 + 0.5*5.0/7.0)
	if !approx(got, want) {
		t.Errorf("preferenceScore = %v, want %v", got, want)
	}

	wantReasons := []string{
		"Matches your music taste: techno",
		"One of your favorite party types (nightclub)",
		"In your price range (low)",
		"At your preferred time of day (night)",
		"Has VIP options",
		"Meets the 21+ age requirement",
	}
	if !reflect.DeepEqual(reasons, wantReasons) {
		t.Errorf("reasons = %q, want %q", reasons, wantReasons)
	}
}

func TestPreferenceScore_AgePenalty(t *testing.T) {
	t.Parallel()

	prefs := &models.UserPreferences{
		PartyTypes: []models.PartySubcategory{models.SubcategoryNightclub},
		MinimumAge: ptr(18),
	}
	got, reasons := preferenceScore(clubNight(), prefs, fixedNow)
	if got != 0 {
		t.Errorf("preferenceScore = %v, want 0 (20 - 50 clamped)", got)
	}
	if len(reasons) != 2 || reasons[1] != "Warning: requires age 21+" {
		t.Errorf("reasons = %q, want age warning last", reasons)
	}

	prefs.MusicGenres = []string{"techno"}
	prefs.WantsVIP = true
	prefs.PriceRanges = []models.PriceRange{models.PriceLow}
	prefs.PreferredTimes = []string{models.TimePreferenceNight}
	got, _ = preferenceScore(clubNight(), prefs, fixedNow)
	// 20 + 20 + 15 + 10 + 5 - 50, every dimension matched.
	if got != 20 {
		t.Errorf("preferenceScore with penalty = %v, want 20", got)
	}
}

func TestPreferenceScore_Bounds(t *testing.T) {
	t.Parallel()

	prefs := &models.UserPreferences{
		MusicGenres:    []string{"techno", "electronic"},
		PartyTypes:     []models.PartySubcategory{models.SubcategoryNightclub},
		PriceRanges:    []models.PriceRange{models.PriceLow},
		CrowdTypes:     []models.CrowdType{models.CrowdMixed},
		PreferredTimes: []string{models.TimePreferenceNight},
		WantsVIP:       true,
	}
	if got, _ := preferenceScore(clubNight(), prefs, fixedNow); got != 85 {
		t.Errorf("preferenceScore = %v, want 85", got)
	}

	prefs.PreferredDays = []string{models.DayWeekday}
	if got, _ := preferenceScore(clubNight(), prefs, fixedNow); got != 85 {
		t.Errorf("undated event counted the day dimension: got %v, want 85", got)
	}

	if got, reasons := preferenceScore(clubNight(), nil, fixedNow); got != 0 || reasons != nil {
		t.Errorf("nil preferences = %v %q, want 0 and no reasons", got, reasons)
	}
	if got, _ := preferenceScore(clubNight(), &models.UserPreferences{}, fixedNow); got != 0 {
		t.Errorf("empty preferences = %v, want 0", got)
	}
}

func TestTimeMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pref []string
		tod  models.TimeOfDay
		want bool
	}{
		{[]string{"day"}, models.TimeMorning, true},
		{[]string{"day"}, models.TimeAfternoon, true},
		{[]string{"day"}, models.TimeEvening, false},
		{[]string{"night"}, models.TimeEvening, true},
		{[]string{"night"}, models.TimeNight, true},
		{[]string{"night"}, models.TimeMorning, false},
		{[]string{"afternoon"}, models.TimeAfternoon, true},
	}
	for _, tt := range tests {
		if got := timeMatches(tt.pref, tt.tod); got != tt.want {
			t.Errorf("timeMatches(%v, %s) = %v, want %v", tt.pref, tt.tod, got, tt.want)
		}
	}
}

func TestPersonalizationScore(t *testing.T) {
	t.Parallel()

	mk := func(id string, sub models.PartySubcategory, genres ...string) *models.EnrichedEvent {
		return &models.EnrichedEvent{
			RawEvent:   models.RawEvent{ID: id, PartySubcategory: sub},
			Enrichment: &models.Enrichment{MusicGenres: genres},
		}
	}
	a := mk("a", models.SubcategoryNightclub, models.GenreTechno)
	b := mk("b", models.SubcategoryNightclub, models.GenreHipHop)
	c := mk("c", models.SubcategoryFestival, models.GenreJazz)
	d := mk("d", models.SubcategoryRooftop, models.GenreTechno)
	byID := map[string]*models.EnrichedEvent{"a": a, "b": b, "c": c, "d": d}

	history := []models.EventInteraction{
		{EventID: "a", Attended: true},              // same event, ignored
		{EventID: "b", Attended: true, Saved: true}, // same subcategory
		{EventID: "c", Viewed: true},                // not similar
		{EventID: "d", Viewed: true, Clicked: true}, // shared genre
		{EventID: "zzz", Attended: true},            // unknown event
	}

	got, reasons := personalizationScore(a, history, byID)
	if got != 37 {
		t.Errorf("personalizationScore = %v, want 37", got)
	}
	want := []string{"Similar to 1 event you attended", "Similar to 1 event you saved"}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("reasons = %q, want %q", reasons, want)
	}

	var heavy []models.EventInteraction
	for i := 0; i < 10; i++ {
		heavy = append(heavy, models.EventInteraction{EventID: "b", Attended: true, Shared: true})
	}
	got, reasons = personalizationScore(a, heavy, byID)
	if got != 100 {
		t.Errorf("capped personalizationScore = %v, want 100", got)
	}
	if len(reasons) != 2 || reasons[1] != "Similar to 10 events you shared" {
		t.Errorf("reasons = %q", reasons)
	}
}

func TestTrending_RecencyScenario(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t)
	// Both dates fall on weekdays so popularity is equal.
	far := models.RawEvent{ID: "far", Title: "Party", Category: "party", RawDate: "2026-10-22T22:00:00Z"}
	near := far
	near.ID = "near"
	near.RawDate = "2026-10-14T22:00:00Z"

	nearScore, _ := recencyScore(&models.EnrichedEvent{RawEvent: near}, fixedNow)
	farScore, _ := recencyScore(&models.EnrichedEvent{RawEvent: far}, fixedNow)
	if nearScore != 100 || farScore != 70 {
		t.Fatalf("recency near=%v far=%v, want 100 and 70", nearScore, farScore)
	}

	results := r.Trending([]models.RawEvent{far, near}, nil)
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}
	if results[0].Event.ID != "near" {
		t.Errorf("first = %s, want near", results[0].Event.ID)
	}
	if diff := results[0].Score - results[1].Score; !approx(diff, 0.4*30) {
		t.Errorf("score difference = %v, want %v", diff, 0.4*30)
	}
}

func TestTrending_LocationBlend(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t)
	events := []models.RawEvent{at("far", 40.9312, -73.8988), at("close", 40.7178, -74.0431)}

	results := r.Trending(events, &newYork)
	if results[0].Event.ID != "close" {
		t.Errorf("first = %s, want close", results[0].Event.ID)
	}
	for _, res := range results {
		if res.Distance == nil {
			t.Errorf("%s: Distance = nil with a user location", res.Event.ID)
		}
	}

	noLoc := r.Trending(events, nil)
	if noLoc[0].Score != noLoc[1].Score {
		t.Errorf("scores without location differ: %v vs %v", noLoc[0].Score, noLoc[1].Score)
	}
	if noLoc[0].Distance != nil {
		t.Error("Distance set without a user location")
	}
}

func TestNearby_DistanceFiltering(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t)
	events := []models.RawEvent{
		at("philadelphia", 39.9526, -75.1652), // ~80.5 mi
		at("newark", 40.7357, -74.1724),       // ~8.9 mi
		{ID: "nowhere", Category: "party"},
		at("brooklyn", 40.6782, -73.9442),    // ~4.0 mi
		at("yonkers", 40.9312, -73.8988),     // ~16.1 mi
		at("jersey-city", 40.7178, -74.0431), // ~2.0 mi
	}

	results := r.Nearby(events, newYork, 10)
	var ids []string
	for _, res := range results {
		ids = append(ids, res.Event.ID)
		if res.Distance == nil || *res.Distance > 10 {
			t.Errorf("%s: distance %v exceeds limit", res.Event.ID, res.Distance)
		}
	}
	want := []string{"jersey-city", "brooklyn", "newark"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Nearby ids = %v, want %v", ids, want)
	}
	if d := *results[1].Distance; math.Abs(d-4.0245) > 0.01 {
		t.Errorf("brooklyn distance = %v, want ~4.02", d)
	}

	if got := r.Nearby(events, newYork, 0); len(got) != 4 {
		t.Errorf("default 30 mile radius returned %d events, want 4", len(got))
	}
}

func TestNearby_TiesBrokenByScore(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t)
	plain := at("plain", 40.7306, -73.9352)
	rich := plain
	rich.ID = "rich"
	rich.Image = "https://img.example.com/rich.jpg"
	rich.URL = "https://example.com/rich"

	results := r.Nearby([]models.RawEvent{plain, rich}, newYork, 10)
	if len(results) != 2 || results[0].Event.ID != "rich" {
		t.Errorf("tie order = %v, want rich first", results)
	}
}

func TestPersonalized_SortAndReasons(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t)
	events := []models.RawEvent{
		{ID: "jazz", Title: "Jazz brunch", Category: "party", RawDate: "2026-11-30T11:00:00Z"},
		{
			ID: "techno", Title: "Techno rave", Category: "party", PartySubcategory: models.SubcategoryNightclub,
			RawDate: "2026-10-15T23:00:00Z", Time: "11pm", Coordinates: []float64{-74.0431, 40.7178},
		},
		{ID: "techno-past", Title: "Techno classics", Category: "party", PartySubcategory: models.SubcategoryNightclub},
		{ID: "concert", Title: "Symphony", Category: "concert"},
	}
	prefs := &models.UserPreferences{MusicGenres: []string{"techno"}, MinimumAge: ptr(30)}
	history := []models.EventInteraction{{EventID: "techno-past", Attended: true}}

	results := r.Personalized(events, prefs, &newYork, history)
	if len(results) != len(events) {
		t.Fatalf("len = %d, want %d", len(results), len(events))
	}
	if results[0].Event.ID != "techno" {
		t.Errorf("first = %s, want techno", results[0].Event.ID)
	}
	if !slices.IsSortedFunc(results, func(a, b models.RecommendationResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	}) {
		t.Error("results are not sorted by descending score")
	}

	want := []string{
		"Matches your music taste: techno",
		"Meets the 21+ age requirement",
		"Close by (2.0 miles)",
		"Happening tomorrow",
		"Similar to 1 event you attended",
	}
	if got := results[0].MatchReasons; !reflect.DeepEqual(got, want) {
		t.Errorf("MatchReasons = %q, want %q", got, want)
	}

	for _, res := range results {
		if res.Score < 0 || res.Score > 100 {
			t.Errorf("%s: score %v out of range", res.Event.ID, res.Score)
		}
		if res.MatchReasons == nil {
			t.Errorf("%s: MatchReasons is nil, want empty slice", res.Event.ID)
		}
	}
}

func TestPersonalized_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t)
	events := []models.RawEvent{
		at("a", 40.72, -74.0),
		{ID: "b", Category: "party", Latitude: ptr(40.7), Longitude: ptr(-74.01)},
	}
	snapshot := make([]models.RawEvent, len(events))
	for i, ev := range events {
		snapshot[i] = ev
		snapshot[i].Coordinates = slices.Clone(ev.Coordinates)
	}
	history := []models.EventInteraction{{EventID: "a", Saved: true}}
	historyCopy := slices.Clone(history)

	results := r.Personalized(events, &models.UserPreferences{}, &newYork, history)
	results[0].Event.Coordinates = nil

	for i := range events {
		if !reflect.DeepEqual(events[i].Coordinates, snapshot[i].Coordinates) || events[i].ID != snapshot[i].ID {
			t.Errorf("event %d modified", i)
		}
	}
	if !reflect.DeepEqual(history, historyCopy) {
		t.Error("interactions modified")
	}
}

func TestRecommender_Deterministic(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t)
	events := []models.RawEvent{
		at("a", 40.72, -74.0),
		at("b", 40.75, -73.98),
		{ID: "c", Category: "party", Title: "House party", RawDate: "2026-10-17"},
	}
	first := r.Personalized(events, &models.UserPreferences{MusicGenres: []string{"house"}}, &newYork, nil)
	second := r.Personalized(events, &models.UserPreferences{MusicGenres: []string{"house"}}, &newYork, nil)
	if !reflect.DeepEqual(first, second) {
		t.Error("Personalized is not deterministic")
	}
}

func TestRecommender_EmptyInput(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t)
	if got := r.Personalized(nil, nil, nil, nil); len(got) != 0 {
		t.Errorf("Personalized(nil) = %v", got)
	}
	if got := r.Trending(nil, nil); len(got) != 0 {
		t.Errorf("Trending(nil) = %v", got)
	}
	if got := r.Nearby(nil, newYork, 5); len(got) != 0 {
		t.Errorf("Nearby(nil) = %v", got)
	}
}
