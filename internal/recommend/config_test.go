// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package recommend

import (
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	t.Run("personalized weights sum to 1", func(t *testing.T) {
		w := cfg.Personalized
		sum := w.Base + w.Preference + w.Location + w.Recency + w.Personalization
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("sum = %f, want 1", sum)
		}
	})

	t.Run("trending weights sum to 1", func(t *testing.T) {
		if sum := cfg.Trending.Base + cfg.Trending.Recency; math.Abs(sum-1) > 1e-9 {
			t.Errorf("sum = %f, want 1", sum)
		}
	})

	t.Run("nearby weights sum to 1", func(t *testing.T) {
		w := cfg.Nearby
		if sum := w.Base + w.Distance + w.Recency; math.Abs(sum-1) > 1e-9 {
			t.Errorf("sum = %f, want 1", sum)
		}
	})

	if cfg.DefaultMaxDistanceMiles != 30 {
		t.Errorf("DefaultMaxDistanceMiles = %v, want 30", cfg.DefaultMaxDistanceMiles)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"negative weight", func(c *Config) { c.Nearby.Distance = -0.1 }, true},
		{"NaN weight", func(c *Config) { c.Trending.Base = math.NaN() }, true},
		{"blend above one", func(c *Config) { c.Trending.LocationBlend = 1.5 }, true},
		{"zero distance", func(c *Config) { c.DefaultMaxDistanceMiles = 0 }, true},
		{"popularity out of range", func(c *Config) { c.DefaultPopularity = 101 }, true},
		{"zero default k", func(c *Config) { c.Limits.DefaultK = 0 }, true},
		{"max below default", func(c *Config) { c.Limits.MaxK = 5; c.Limits.DefaultK = 10 }, true},
		{"zero weights allowed", func(c *Config) { c.Personalized.Personalization = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ClampLimit(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		in, want int
	}{
		{0, 20}, {-3, 20}, {1, 1}, {50, 50}, {100, 100}, {1000, 100},
	}
	for _, tt := range tests {
		if got := cfg.ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
