// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package enrich

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/partymap/internal/models"
)

// dollarAmount reads "," as a thousands separator and "." as the decimal point.
var dollarAmount = regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)`)

// Price tier upper bounds (exclusive), in dollars.
const (
	lowPriceLimit    = 20
	mediumPriceLimit = 50
	highPriceLimit   = 100
)

// detectPriceRange classifies the price field first and only falls back to
// the (lowercase) description when the field carries no usable signal.
func detectPriceRange(price, description string) models.PriceRange {
	if m := dollarAmount.FindStringSubmatch(price); m != nil {
		if amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			return tierFor(amount)
		}
	}

	if freePriceMatcher.Contains(price) {
		return models.PriceFree
	}

	switch {
	case freePriceMatcher.Contains(description):
		return models.PriceFree
	case vipPriceMatcher.Contains(description):
		return models.PriceVIP
	}
	return models.PriceUnknown
}

func tierFor(amount float64) models.PriceRange {
	switch {
	case amount <= 0:
		return models.PriceFree
	case amount < lowPriceLimit:
		return models.PriceLow
	case amount < mediumPriceLimit:
		return models.PriceMedium
	case amount < highPriceLimit:
		return models.PriceHigh
	default:
		return models.PriceVIP
	}
}
