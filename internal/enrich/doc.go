// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

/*
Package enrich infers semantic attributes of party events from their free text
and structured fields.

# Overview

A Classifier turns a models.RawEvent into a models.EnrichedEvent. Only
party-type events (category "party" or the isPartyEvent flag) are enriched;
every other event passes through with a nil Enrichment block.

Each attribute is derived by an independent sub-classifier over the lowercase
"title description" text:

  - music genres: keyword table per genre, multiple genres allowed, "other" when none match
  - crowd type: ordered rules young, upscale, casual, lgbtq; default mixed
  - dress code: ordered rules formal, dressy, smart-casual, costume; default casual
  - price range: "$N" in the price field, then free/no cover text, then description keywords
  - time of day: first clock time in the time field, default evening
  - weekend: rawDate, then the display date
  - features: VIP, drink specials, food, live music, DJ
  - minimum age: explicit 21+/18+/all ages, then age patterns, nightclub default 21
  - popularity: additive heuristic clamped to [1,100]
  - social links: instagram, facebook, twitter/x and a generic website URL

Keyword tables match whole words (a trailing plural "s" is tolerated) using the
Aho-Corasick matcher from the cache package, so "house" does not fire inside
"warehouse".

# Determinism

Enrich is a pure function of the event and the classifier clock. The clock is
only consulted to infer the year of display dates that omit it, so tests pin
it with WithClock.

# Memoization

Memoizer wraps a Classifier with a TTL cache keyed on the event ID and a hash
of the full event, so edited events are never served stale.
*/
package enrich
