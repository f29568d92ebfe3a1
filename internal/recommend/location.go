// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package recommend

import (
	"fmt"

	"github.com/tomtom215/partymap/internal/geo"
	"github.com/tomtom215/partymap/internal/models"
)

// Distance bands for location reasons, in miles.
const (
	walkingDistanceMiles = 1
	closeByMiles         = 5
	shortDriveMiles      = 15
)

// distanceTo returns the haversine distance from loc to the event, or false
// when either side has no position.
func distanceTo(ev *models.EnrichedEvent, loc *models.UserLocation) (float64, bool) {
	if loc == nil {
		return 0, false
	}
	lat, lng, ok := ev.LatLng()
	if !ok {
		return 0, false
	}
	return geo.HaversineMiles(loc.Latitude, loc.Longitude, lat, lng), true
}

// locationScore decays linearly from 100 at the user's position to 0 at
// maxMiles. Events beyond maxMiles score 0 with no reason.
func locationScore(distance, maxMiles float64) (float64, string) {
	if maxMiles <= 0 || distance > maxMiles {
		return 0, ""
	}
	score := clampScore(100 * (1 - distance/maxMiles))

	switch {
	case distance < walkingDistanceMiles:
		return score, "Less than a mile away"
	case distance < closeByMiles:
		return score, fmt.Sprintf("Close by (%.1f miles)", distance)
	case distance < shortDriveMiles:
		return score, fmt.Sprintf("%.1f miles away", distance)
	default:
		return score, fmt.Sprintf("Within %.0f miles", maxMiles)
	}
}
