// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package enrich

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/partymap/internal/eventdate"
	"github.com/tomtom215/partymap/internal/models"
)

var clockTime = regexp.MustCompile(`(?i)(\d+)(:(\d+))?\s*(am|pm)?`)

// detectTimeOfDay buckets the first clock time in the time field.
// Hours 5-11 are morning, 12-16 afternoon, 17-20 evening, anything else
// night. Missing or impossible times yield evening.
func detectTimeOfDay(timeField string) models.TimeOfDay {
	hour, ok := parseHour(timeField)
	if !ok {
		return models.TimeEvening
	}
	switch {
	case hour >= 5 && hour <= 11:
		return models.TimeMorning
	case hour >= 12 && hour <= 16:
		return models.TimeAfternoon
	case hour >= 17 && hour <= 20:
		return models.TimeEvening
	default:
		return models.TimeNight
	}
}

// parseHour converts the first clock time in s to a 24h hour.
func parseHour(s string) (int, bool) {
	m := clockTime.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	switch strings.ToLower(m[4]) {
	case "pm":
		if hour > 12 {
			return 0, false
		}
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 {
		return 0, false
	}
	return hour, true
}

func detectWeekend(rawDate, displayDate string, now time.Time) bool {
	return eventdate.IsWeekend(rawDate, displayDate, now)
}
