// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package eventdate

import (
	"testing"
	"time"
)

// 2026-10-14 is a Wednesday.
var now = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

func TestParseRaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   time.Time
		wantOK bool
	}{
		{"2026-10-17T22:00:00Z", time.Date(2026, 10, 17, 22, 0, 0, 0, time.UTC), true},
		{"2026-10-17T22:00:00.000Z", time.Date(2026, 10, 17, 22, 0, 0, 0, time.UTC), true},
		{"2026-10-17T22:00:00", time.Date(2026, 10, 17, 22, 0, 0, 0, time.UTC), true},
		{"2026-10-17 22:00", time.Date(2026, 10, 17, 22, 0, 0, 0, time.UTC), true},
		{"2026-10-17", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), true},
		{"  ", time.Time{}, false},
		{"next saturday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseRaw(tt.raw, now)
			if ok != tt.wantOK || !got.Equal(tt.want) {
				t.Errorf("ParseRaw(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		display string
		want    time.Time
		wantOK  bool
	}{
		{"Saturday, October 17, 2026", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), true},
		{"Sat, Oct 17", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), true},
		{"Tue, Oct 20th", time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), true},
		{"Oct 20, 2027", time.Date(2027, 10, 20, 0, 0, 0, 0, time.UTC), true},
		{"12/31/2026", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"Sat, Oct 18, 2026 9:00 PM", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), true},
		{"October 18, 2026, 9 PM", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), true},
		{"Fri, Oct 16 10pm", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"Sometime soon", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseDisplay(tt.display, now)
			if ok != tt.wantOK || !got.Equal(tt.want) {
				t.Errorf("ParseDisplay(%q) = (%v, %v), want (%v, %v)", tt.display, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		display string
		want    bool
	}{
		{"raw saturday", "2026-10-17T22:00:00Z", "", true},
		{"raw sunday", "2026-10-18", "", true},
		{"raw tuesday", "2026-10-20T22:00:00Z", "", false},
		{"raw wins over display", "2026-10-20", "Saturday, Oct 17", false},
		{"display literal saturday", "", "This Saturday night", true},
		{"display literal sunday mixed case", "", "SUNDAY funday", true},
		{"display parsed after comma", "", "Sat, Oct 17", true},
		{"display parsed weekday", "", "Thu, Oct 15", false},
		{"display with clock time", "", "Sat, Oct 18, 2026 9:00 PM", true},
		{"display with trailing comma time", "", "October 18, 2026, 9 PM", true},
		{"display weekday with clock time", "", "Thu, Oct 15, 2026 9:00 PM", false},
		{"unparseable", "garbage", "whenever", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsWeekend(tt.raw, tt.display, now); got != tt.want {
				t.Errorf("IsWeekend(%q, %q) = %v, want %v", tt.raw, tt.display, got, tt.want)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"earlier today", now.Add(-10 * time.Hour), 0},
		{"later today", now.Add(8 * time.Hour), 0},
		{"tomorrow morning", time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC), 1},
		{"ten days", now.AddDate(0, 0, 10), 10},
		{"yesterday", now.AddDate(0, 0, -1), -1},
		{"across year", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 79},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DaysUntil(tt.t, now); got != tt.want {
				t.Errorf("DaysUntil(%v) = %d, want %d", tt.t, got, tt.want)
			}
		})
	}
}
