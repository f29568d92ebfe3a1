// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

/*
Package cache provides the in-memory data structures used around the
enrichment and recommendation pipeline.

  - AhoCorasick / PatternMatcher: multi-keyword matching in a single pass over
    the text, with an optional whole-word mode. Backs the classifier's
    keyword tables.
  - TTL[V]: a typed, mutex-guarded cache with per-entry expiration and an
    injectable clock. Backs the enrichment memoizer.
  - LRUCache: a bounded recently-seen key set with TTL. Backs message
    deduplication on the interaction event bus.
  - SpatialHashGrid: a lat/lon bucket index for radius prefiltering of the
    event catalog.

All types are safe for concurrent use. GenerateKey builds compact hashed keys
from arbitrary JSON-serializable values.
*/
package cache
