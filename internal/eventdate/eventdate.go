// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

// Package eventdate interprets the loosely formatted date fields of event
// records. The classifier (weekend detection) and the scorer (recency) both
// resolve dates through this package so they always agree.
//
// All functions take an explicit reference time; nothing reads the wall clock.
package eventdate

import (
	"strings"
	"time"
)

// rawLayouts are tried, in order, against the rawDate field.
var rawLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// displayLayouts are tried against the display date, or the part of it that
// follows the first comma ("Sat, Oct 18" -> "Oct 18").
var displayLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
	"1/2",
}

// ParseRaw parses an ISO-ish timestamp. Values without a zone are read in
// the location of now.
func ParseRaw(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range rawLayouts {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDisplay makes a best-effort parse of a human display date such as
// "Saturday, October 18, 2026" or "Sat, Oct 18". A missing year is taken
// from now.
func ParseDisplay(display string, now time.Time) (time.Time, bool) {
	display = strings.TrimSpace(display)
	if display == "" {
		return time.Time{}, false
	}

	candidates := []string{display}
	if i := strings.Index(display, ","); i >= 0 {
		candidates = append([]string{strings.TrimSpace(display[i+1:])}, candidates...)
	}

	for _, c := range candidates {
		for _, p := range leadingPrefixes(trimOrdinal(c)) {
			if t, ok := parseDisplayLayouts(p, now); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func parseDisplayLayouts(s string, now time.Time) (time.Time, bool) {
	for _, layout := range displayLayouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		}
		return t, true
	}
	return time.Time{}, false
}

// leadingPrefixes returns s and its shorter word prefixes, longest first, so
// a trailing clock time ("Oct 18, 2026 9:00 PM") does not defeat the layouts.
func leadingPrefixes(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for n := len(fields); n > 0; n-- {
		out = append(out, strings.TrimRight(strings.Join(fields[:n], " "), ","))
	}
	return out
}

// Parse resolves an event date, preferring rawDate over the display date.
func Parse(raw, display string, now time.Time) (time.Time, bool) {
	if t, ok := ParseRaw(raw, now); ok {
		return t, true
	}
	return ParseDisplay(display, now)
}

// IsWeekend reports whether the event falls on a Saturday or Sunday.
//
// rawDate wins when it parses. Otherwise a display date naming "saturday" or
// "sunday" counts as a weekend without further parsing; failing that the date
// portion after the first comma is parsed. Any failure yields false.
func IsWeekend(raw, display string, now time.Time) bool {
	if t, ok := ParseRaw(raw, now); ok {
		return weekend(t.Weekday())
	}

	lower := strings.ToLower(display)
	if strings.Contains(lower, "saturday") || strings.Contains(lower, "sunday") {
		return true
	}

	if t, ok := ParseDisplay(display, now); ok {
		return weekend(t.Weekday())
	}
	return false
}

func weekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// DaysUntil returns the number of calendar days from now to t, evaluated in
// the location of now. Negative values are in the past; 0 is today.
func DaysUntil(t, now time.Time) int {
	loc := now.Location()
	ty, tm, td := t.In(loc).Date()
	ny, nm, nd := now.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}

// trimOrdinal drops English ordinal suffixes from a day number
// ("Oct 18th" -> "Oct 18") so the layouts above can match.
func trimOrdinal(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		trail := ""
		if strings.HasSuffix(f, ",") {
			f, trail = strings.TrimSuffix(f, ","), ","
		}
		for _, suf := range []string{"st", "nd", "rd", "th"} {
			if len(f) > len(suf) && strings.HasSuffix(f, suf) && isDigits(f[:len(f)-len(suf)]) {
				f = f[:len(f)-len(suf)]
				break
			}
		}
		fields[i] = f + trail
	}
	return strings.Join(fields, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
