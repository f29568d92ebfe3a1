// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

/*
Package eventbus carries user interactions from the HTTP layer to the
interaction store through Watermill.

Publishing returns as soon as the transport accepts the message; a router
handler persists it. Until the in-process router is running, interactions
are recorded synchronously because gochannel drops messages that have no
subscriber. Two transports are supported:

  - gochannel: in-process, used by default and in tests
  - nats: NATS JetStream, for sharing one interaction stream across instances

# Message Identity

Message UUIDs are derived from the payload (UUID v5), so republishing the
same interaction yields the same UUID. The router's deduplicator and
JetStream's Nats-Msg-Id tracking both drop such replays; the store merge is
idempotent for anything that slips through.

# Router Middleware

Outer to inner: Deduplicator and PoisonQueue (each when enabled), Retry,
Recoverer. A message that still fails after the last retry is published to
the poison topic and acknowledged.

Bus implements suture.Service: Serve builds a fresh router on every start
so the supervisor can restart it after a failure.
*/
package eventbus
