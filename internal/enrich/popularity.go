// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package enrich

import (
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/partymap/internal/models"
)

// Popularity heuristic weights.
const (
	popularityBase = 50
	popularityMin  = 1
	popularityMax  = 100

	bonusLargeVenue      = 20
	bonusLongDescription = 10
	penaltyShortDesc     = 10
	penaltyNoImage       = 15

	bonusVIP       = 10
	bonusDrinks    = 5
	bonusFood      = 5
	bonusLiveMusic = 10
	bonusDJ        = 5

	bonusFestival  = 15
	bonusNightclub = 10
	bonusNight     = 5
	bonusWeekend   = 10

	longDescriptionChars  = 500
	shortDescriptionChars = 100
)

// popularity scores general appeal from the event and its derived features.
func popularity(ev *models.RawEvent, en *models.Enrichment) int {
	score := popularityBase

	venue := ev.Venue
	if venue == "" {
		venue = ev.Location
	}
	if largeVenueMatcher.Contains(venue) {
		score += bonusLargeVenue
	}

	switch n := utf8.RuneCountInString(ev.Description); {
	case n > longDescriptionChars:
		score += bonusLongDescription
	case n < shortDescriptionChars:
		score -= penaltyShortDesc
	}

	if IsPlaceholderImage(ev.Image) {
		score -= penaltyNoImage
	}

	if en.HasVIP {
		score += bonusVIP
	}
	if en.HasDrinkSpecials {
		score += bonusDrinks
	}
	if en.HasFoodOptions {
		score += bonusFood
	}
	if en.HasLiveMusic {
		score += bonusLiveMusic
	}
	if en.HasDJ {
		score += bonusDJ
	}

	switch ev.PartySubcategory {
	case models.SubcategoryFestival:
		score += bonusFestival
	case models.SubcategoryNightclub:
		score += bonusNightclub
	}

	if en.TimeOfDay == models.TimeNight {
		score += bonusNight
	}
	if en.IsWeekend {
		score += bonusWeekend
	}

	return clamp(score, popularityMin, popularityMax)
}

// IsPlaceholderImage reports whether image is empty or a stock placeholder.
func IsPlaceholderImage(image string) bool {
	image = strings.ToLower(strings.TrimSpace(image))
	if image == "" {
		return true
	}
	for _, marker := range placeholderImageMarkers {
		if strings.Contains(image, marker) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
