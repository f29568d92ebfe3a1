// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package recommend

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/partymap/internal/eventdate"
	"github.com/tomtom215/partymap/internal/models"
)

// Preference points per matched dimension.
const (
	prefGenrePoints     = 20
	prefPartyTypePoints = 20
	prefPricePoints     = 15
	prefCrowdPoints     = 15
	prefDayPoints       = 10
	prefTimePoints      = 10
	prefFeaturePoints   = 5
	prefAgePenalty      = 50

	breadthFloor = 0.5
)

// preferenceTally accumulates points over the dimensions that could be
// evaluated for an event.
type preferenceTally struct {
	points   float64
	possible int
	matched  int
	reasons  []string
}

func (t *preferenceTally) consider(ok bool, points float64, reason string) {
	t.possible++
	if !ok {
		return
	}
	t.matched++
	t.points += points
	t.reasons = append(t.reasons, reason)
}

// preferenceScore matches an event against stated preferences. A dimension
// counts only when both the preference and the event carry it. The summed
// points are scaled by 0.5 + 0.5*matched/possible.
func preferenceScore(ev *models.EnrichedEvent, prefs *models.UserPreferences, now time.Time) (float64, []string) {
	if prefs == nil {
		return 0, nil
	}

	var t preferenceTally
	en := ev.Enrichment

	if len(prefs.MusicGenres) > 0 && en != nil && len(en.MusicGenres) > 0 {
		var hits []string
		for _, g := range prefs.MusicGenres {
			if en.HasGenre(strings.ToLower(g)) {
				hits = append(hits, strings.ToLower(g))
			}
		}
		fraction := float64(len(hits)) / float64(len(prefs.MusicGenres))
		t.consider(len(hits) > 0, prefGenrePoints*fraction, "Matches your music taste: "+strings.Join(hits, ", "))
	}

	if len(prefs.PartyTypes) > 0 && ev.PartySubcategory != "" {
		t.consider(slices.Contains(prefs.PartyTypes, ev.PartySubcategory), prefPartyTypePoints,
			fmt.Sprintf("One of your favorite party types (%s)", ev.PartySubcategory))
	}

	if en != nil {
		if len(prefs.PriceRanges) > 0 && en.PriceRange != "" && en.PriceRange != models.PriceUnknown {
			t.consider(slices.Contains(prefs.PriceRanges, en.PriceRange), prefPricePoints,
				fmt.Sprintf("In your price range (%s)", en.PriceRange))
		}
		if len(prefs.CrowdTypes) > 0 && en.CrowdType != "" {
			t.consider(slices.Contains(prefs.CrowdTypes, en.CrowdType), prefCrowdPoints,
				fmt.Sprintf("The kind of crowd you like (%s)", en.CrowdType))
		}
	}

	if len(prefs.PreferredDays) > 0 {
		if when, ok := eventdate.Parse(ev.RawDate, ev.Date, now); ok {
			weekend := eventdate.IsWeekend(ev.RawDate, ev.Date, now)
			day := models.DayWeekday
			if weekend {
				day = models.DayWeekend
			}
			t.consider(slices.Contains(prefs.PreferredDays, day), prefDayPoints,
				fmt.Sprintf("Falls on a %s (%s)", day, when.Weekday()))
		}
	}

	if len(prefs.PreferredTimes) > 0 && en != nil && en.TimeOfDay != "" {
		t.consider(timeMatches(prefs.PreferredTimes, en.TimeOfDay), prefTimePoints,
			fmt.Sprintf("At your preferred time of day (%s)", en.TimeOfDay))
	}

	if en != nil {
		features := []struct {
			wanted, has bool
			reason      string
		}{
			{prefs.WantsVIP, en.HasVIP, "Has VIP options"},
			{prefs.WantsDrinkSpecials, en.HasDrinkSpecials, "Has drink specials"},
			{prefs.WantsFoodOptions, en.HasFoodOptions, "Serves food"},
			{prefs.WantsLiveMusic, en.HasLiveMusic, "Has live music"},
			{prefs.WantsDJ, en.HasDJ, "Has a DJ"},
		}
		for _, f := range features {
			if f.wanted {
				t.consider(f.has, prefFeaturePoints, f.reason)
			}
		}
	}

	if prefs.MinimumAge != nil && en != nil && en.MinimumAge != nil {
		required, age := *en.MinimumAge, *prefs.MinimumAge
		if required > age {
			t.points -= prefAgePenalty
			t.reasons = append(t.reasons, fmt.Sprintf("Warning: requires age %d+", required))
		} else if required > 0 {
			t.reasons = append(t.reasons, fmt.Sprintf("Meets the %d+ age requirement", required))
		}
	}

	if t.possible == 0 {
		return clampScore(t.points), t.reasons
	}
	scale := breadthFloor + (1-breadthFloor)*float64(t.matched)/float64(t.possible)
	return clampScore(t.points * scale), t.reasons
}

// timeMatches maps the coarse day/night preference onto time-of-day buckets.
// Exact bucket names are accepted too.
func timeMatches(preferred []string, tod models.TimeOfDay) bool {
	for _, p := range preferred {
		switch strings.ToLower(p) {
		case models.TimePreferenceDay:
			if tod == models.TimeMorning || tod == models.TimeAfternoon {
				return true
			}
		case models.TimePreferenceNight:
			if tod == models.TimeEvening || tod == models.TimeNight {
				return true
			}
		case string(tod):
			return true
		}
	}
	return false
}
