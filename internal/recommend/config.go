// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package recommend

import (
	"fmt"
	"math"
)

// Config contains all configuration for the recommendation scorer.
type Config struct {
	// Personalized holds the blend used by Personalized.
	Personalized PersonalizedWeights `json:"personalized" koanf:"personalized"`

	// Trending holds the blend used by Trending.
	Trending TrendingWeights `json:"trending" koanf:"trending"`

	// Nearby holds the blend used by Nearby.
	Nearby NearbyWeights `json:"nearby" koanf:"nearby"`

	// DefaultMaxDistanceMiles bounds the location score when the caller
	// supplies no distance.
	// Default: 30.
	DefaultMaxDistanceMiles float64 `json:"default_max_distance_miles" koanf:"default_max_distance_miles"`

	// DefaultPopularity is the base score of events without a popularity.
	// Default: 50.
	DefaultPopularity int `json:"default_popularity" koanf:"default_popularity"`

	// Limits contains result size limits applied by callers.
	Limits LimitsConfig `json:"limits" koanf:"limits"`
}

// PersonalizedWeights blends all five sub-scores.
type PersonalizedWeights struct {
	// Base is the weight of the event's intrinsic quality score.
	// Default: 0.1.
	Base float64 `json:"base" koanf:"base"`

	// Preference is the weight of the preference match score.
	// Default: 0.4.
	Preference float64 `json:"preference" koanf:"preference"`

	// Location is the weight of the distance decay score.
	// Default: 0.2.
	Location float64 `json:"location" koanf:"location"`

	// Recency is the weight of the time-until-event score.
	// Default: 0.2.
	Recency float64 `json:"recency" koanf:"recency"`

	// Personalization is the weight of the interaction history score.
	// Default: 0.1.
	Personalization float64 `json:"personalization" koanf:"personalization"`
}

// TrendingWeights blends base and recency, with an optional location nudge.
type TrendingWeights struct {
	// Base is the weight of the base score.
	// Default: 0.6.
	Base float64 `json:"base" koanf:"base"`

	// Recency is the weight of the recency score.
	// Default: 0.4.
	Recency float64 `json:"recency" koanf:"recency"`

	// LocationBlend is the share of the final score taken by the location
	// score when a user location is known: score*(1-b) + location*b.
	// Default: 0.1.
	LocationBlend float64 `json:"location_blend" koanf:"location_blend"`
}

// NearbyWeights blends base, distance and recency.
type NearbyWeights struct {
	// Base is the weight of the base score.
	// Default: 0.3.
	Base float64 `json:"base" koanf:"base"`

	// Distance is the weight of the distance decay score.
	// Default: 0.5.
	Distance float64 `json:"distance" koanf:"distance"`

	// Recency is the weight of the recency score.
	// Default: 0.2.
	Recency float64 `json:"recency" koanf:"recency"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the number of results returned when none is requested.
	// Default: 20.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK is the largest number of results a caller may request.
	// Default: 100.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Personalized: PersonalizedWeights{
			Base:            0.1,
			Preference:      0.4,
			Location:        0.2,
			Recency:         0.2,
			Personalization: 0.1,
		},
		Trending: TrendingWeights{
			Base:          0.6,
			Recency:       0.4,
			LocationBlend: 0.1,
		},
		Nearby: NearbyWeights{
			Base:     0.3,
			Distance: 0.5,
			Recency:  0.2,
		},
		DefaultMaxDistanceMiles: 30,
		DefaultPopularity:       50,
		Limits: LimitsConfig{
			DefaultK: 20,
			MaxK:     100,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"personalized.base", c.Personalized.Base},
		{"personalized.preference", c.Personalized.Preference},
		{"personalized.location", c.Personalized.Location},
		{"personalized.recency", c.Personalized.Recency},
		{"personalized.personalization", c.Personalized.Personalization},
		{"trending.base", c.Trending.Base},
		{"trending.recency", c.Trending.Recency},
		{"nearby.base", c.Nearby.Base},
		{"nearby.distance", c.Nearby.Distance},
		{"nearby.recency", c.Nearby.Recency},
	}
	for _, w := range weights {
		if w.value < 0 || math.IsNaN(w.value) || math.IsInf(w.value, 0) {
			return fmt.Errorf("%s must be a non-negative number, got %f", w.name, w.value)
		}
	}

	if c.Trending.LocationBlend < 0 || c.Trending.LocationBlend > 1 {
		return fmt.Errorf("trending.location_blend must be in [0, 1], got %f", c.Trending.LocationBlend)
	}
	if c.DefaultMaxDistanceMiles <= 0 {
		return fmt.Errorf("default_max_distance_miles must be positive, got %f", c.DefaultMaxDistanceMiles)
	}
	if c.DefaultPopularity < 0 || c.DefaultPopularity > 100 {
		return fmt.Errorf("default_popularity must be in [0, 100], got %d", c.DefaultPopularity)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	return nil
}

// ClampLimit returns k bounded to [1, MaxK], or DefaultK when k <= 0.
func (c *Config) ClampLimit(k int) int {
	if k <= 0 {
		return c.Limits.DefaultK
	}
	if k > c.Limits.MaxK {
		return c.Limits.MaxK
	}
	return k
}
