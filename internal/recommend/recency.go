// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/partymap/internal/eventdate"
	"github.com/tomtom215/partymap/internal/models"
)

// recencySteps is the step table for upcoming events: events at most
// maxDays away score score.
var recencySteps = []struct {
	maxDays int
	score   float64
}{
	{0, 100},
	{3, 90},
	{7, 80},
	{14, 70},
	{30, 60},
}

const (
	recencyBlockDays  = 30
	recencyBlockDecay = 10
)

// recencyScore rewards events happening soon. Events without a usable date
// score 0 with no reason; past events score 0.
func recencyScore(ev *models.EnrichedEvent, now time.Time) (float64, string) {
	when, ok := eventdate.Parse(ev.RawDate, ev.Date, now)
	if !ok {
		return 0, ""
	}

	days := eventdate.DaysUntil(when, now)
	if days < 0 {
		return 0, "This event has already happened"
	}
	return recencyForDays(days), recencyReason(days)
}

func recencyForDays(days int) float64 {
	for _, step := range recencySteps {
		if days <= step.maxDays {
			return step.score
		}
	}
	// Any part of a started 30-day block costs the full decay: day 31 is one block.
	last := recencySteps[len(recencySteps)-1]
	blocks := (days - last.maxDays + recencyBlockDays - 1) / recencyBlockDays
	return clampScore(last.score - float64(blocks*recencyBlockDecay))
}

func recencyReason(days int) string {
	switch {
	case days == 0:
		return "Happening today"
	case days == 1:
		return "Happening tomorrow"
	case days <= 7:
		return fmt.Sprintf("Happening in %d days", days)
	case days <= 30:
		return fmt.Sprintf("Coming up in %d days", days)
	default:
		return fmt.Sprintf("More than %d weeks away", days/7)
	}
}
