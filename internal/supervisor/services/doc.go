// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

// Package services adapts components without a native Serve(ctx) method to
// suture.Service. The catalog refresher, event bus and store implement
// suture.Service themselves; only the HTTP server needs a wrapper.
package services
