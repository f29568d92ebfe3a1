// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package recommend

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/partymap/internal/enrich"
	"github.com/tomtom215/partymap/internal/models"
)

// Base score bonuses.
const (
	baseDetailedDescription = 5
	baseHasImage            = 5
	baseHasCoordinates      = 5
	baseHasURL              = 5

	baseVIP       = 2
	baseDrinks    = 2
	baseFood      = 2
	baseLiveMusic = 3
	baseDJ        = 2

	detailedDescriptionChars = 300
)

// baseScore rates intrinsic listing quality, starting from popularity.
func baseScore(ev *models.EnrichedEvent, defaultPopularity int) float64 {
	score := float64(ev.Popularity(defaultPopularity))

	if utf8.RuneCountInString(ev.Description) > detailedDescriptionChars {
		score += baseDetailedDescription
	}
	if !enrich.IsPlaceholderImage(ev.Image) {
		score += baseHasImage
	}
	if ev.HasCoordinates() {
		score += baseHasCoordinates
	}
	if strings.TrimSpace(ev.URL) != "" {
		score += baseHasURL
	}

	if en := ev.Enrichment; en != nil {
		if en.HasVIP {
			score += baseVIP
		}
		if en.HasDrinkSpecials {
			score += baseDrinks
		}
		if en.HasFoodOptions {
			score += baseFood
		}
		if en.HasLiveMusic {
			score += baseLiveMusic
		}
		if en.HasDJ {
			score += baseDJ
		}
	}

	return clampScore(score)
}

// clampScore bounds a sub-score to [0, 100].
func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
