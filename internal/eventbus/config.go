// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package eventbus

import "time"

// Transports
const (
	TransportGoChannel = "gochannel"
	TransportNATS      = "nats"
)

// Config holds transport and router settings.
type Config struct {
	Transport string
	NATSURL   string
	Topic     string

	// DurableName and QueueGroup configure the JetStream consumer.
	DurableName string
	QueueGroup  string

	RetryCount           int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration

	PoisonQueueEnabled bool
	PoisonQueueTopic   string

	DeduplicationEnabled bool
	DeduplicationTTL     time.Duration
	DeduplicationSize    int

	CloseTimeout time.Duration
}

// DefaultConfig returns an in-process configuration.
func DefaultConfig() Config {
	return Config{
		Transport:            TransportGoChannel,
		Topic:                "partymap.interactions",
		DurableName:          "partymap-interactions",
		QueueGroup:           "partymap",
		RetryCount:           3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
		PoisonQueueEnabled:   true,
		PoisonQueueTopic:     "partymap.interactions.poison",
		DeduplicationEnabled: true,
		DeduplicationTTL:     5 * time.Minute,
		DeduplicationSize:    10000,
		CloseTimeout:         10 * time.Second,
	}
}
