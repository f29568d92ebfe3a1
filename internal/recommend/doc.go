// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

// Package recommend scores and ranks party events for a user.
//
// # Sub-scores
//
// Each event receives up to five independent sub-scores in [0, 100]:
//
//   - Base: popularity plus small bonuses for a complete listing
//   - Preference: matches against the user's stated preferences, scaled by
//     how many preference dimensions could be evaluated
//   - Location: linear decay with haversine distance up to a maximum
//   - Recency: a step table on calendar days until the event
//   - Personalization: weighted interaction history on similar events
//
// # Entry Points
//
// Personalized blends all five. Trending blends base and recency, with an
// optional location nudge. Nearby drops events without coordinates or beyond
// the distance limit and sorts by distance. The blend weights are named
// values in Config.
//
// # Usage
//
//	r, err := recommend.NewRecommender(recommend.DefaultConfig(), enrich.NewClassifier())
//	if err != nil {
//	    return err
//	}
//	results := r.Personalized(events, &prefs, &loc, history)
//
// # Thread Safety
//
// A Recommender holds no mutable state beyond its enricher; it is safe for
// concurrent use whenever the enricher is. Scoring performs no I/O and does
// not log.
package recommend
