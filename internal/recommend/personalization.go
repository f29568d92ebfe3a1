// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package recommend

import (
	"fmt"

	"github.com/tomtom215/partymap/internal/models"
)

// Interaction weights for the personalization score.
const (
	weightViewed   = 2
	weightClicked  = 5
	weightSaved    = 10
	weightShared   = 15
	weightAttended = 20
)

// similar reports whether two events share a subcategory or a genre.
func similar(a, b *models.EnrichedEvent) bool {
	if a.PartySubcategory != "" && a.PartySubcategory == b.PartySubcategory {
		return true
	}
	if a.Enrichment == nil || b.Enrichment == nil {
		return false
	}
	for _, g := range a.Enrichment.MusicGenres {
		if b.Enrichment.HasGenre(g) {
			return true
		}
	}
	return false
}

// personalizationScore sums interaction weights over the user's history with
// other events similar to ev. byID resolves interaction event IDs; history on
// events outside it is ignored.
func personalizationScore(ev *models.EnrichedEvent, interactions []models.EventInteraction, byID map[string]*models.EnrichedEvent) (float64, []string) {
	var (
		score                   float64
		attended, saved, shared int
	)

	for i := range interactions {
		in := &interactions[i]
		if in.EventID == ev.ID {
			continue
		}
		other, ok := byID[in.EventID]
		if !ok || !similar(ev, other) {
			continue
		}

		if in.Viewed {
			score += weightViewed
		}
		if in.Clicked {
			score += weightClicked
		}
		if in.Saved {
			score += weightSaved
			saved++
		}
		if in.Shared {
			score += weightShared
			shared++
		}
		if in.Attended {
			score += weightAttended
			attended++
		}
	}

	var reasons []string
	if attended > 0 {
		reasons = append(reasons, fmt.Sprintf("Similar to %d %s you attended", attended, plural(attended)))
	}
	if saved > 0 {
		reasons = append(reasons, fmt.Sprintf("Similar to %d %s you saved", saved, plural(saved)))
	}
	if shared > 0 {
		reasons = append(reasons, fmt.Sprintf("Similar to %d %s you shared", shared, plural(shared)))
	}
	return clampScore(score), reasons
}

func plural(n int) string {
	if n == 1 {
		return "event"
	}
	return "events"
}
