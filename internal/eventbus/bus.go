// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/partymap/internal/cache"
	"github.com/tomtom215/partymap/internal/logging"
	"github.com/tomtom215/partymap/internal/metrics"
	"github.com/tomtom215/partymap/internal/models"
)

// ErrClosed is returned when publishing on a closed bus.
var ErrClosed = errors.New("eventbus: closed")

// handlerName names the persisting router handler.
const handlerName = "persist-interactions"

// Recorder persists an interaction. store.InteractionStore implements it.
type Recorder interface {
	Record(ctx context.Context, ix *models.EventInteraction) (*models.EventInteraction, error)
}

// Bus publishes interactions and runs the router that persists them.
type Bus struct {
	cfg       Config
	logger    watermill.LoggerAdapter
	transport *transport
	recorder  Recorder
	dedup     *Deduplicator

	running atomic.Bool
	closed  atomic.Bool

	mu     sync.Mutex
	router *message.Router
}

// New creates a bus for cfg that persists consumed interactions with recorder.
func New(cfg Config, recorder Recorder) (*Bus, error) {
	if recorder == nil {
		return nil, fmt.Errorf("eventbus: recorder is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("eventbus: topic is required")
	}

	logger := watermill.NewSlogLogger(logging.NewSlogLogger().With("component", "eventbus"))

	t, err := newTransport(&cfg, logger)
	if err != nil {
		return nil, err
	}

	b := &Bus{
		cfg:       cfg,
		logger:    logger,
		transport: t,
		recorder:  recorder,
	}
	if cfg.DeduplicationEnabled {
		b.dedup = NewDeduplicator(cfg.DeduplicationSize, cfg.DeduplicationTTL)
	}
	return b, nil
}

// PublishInteraction publishes ix to the interaction topic.
//
// With the in-process transport and no running router, gochannel would
// drop the message, so the interaction is recorded synchronously instead.
func (b *Bus) PublishInteraction(ctx context.Context, ix *models.EventInteraction) error {
	if b.closed.Load() {
		return ErrClosed
	}

	if b.inProcess() && !b.running.Load() {
		if _, err := b.recorder.Record(ctx, ix); err != nil {
			return fmt.Errorf("record interaction: %w", err)
		}
		return nil
	}

	msg, err := NewInteractionMessage(ix)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	if err := b.transport.publisher.Publish(b.cfg.Topic, msg); err != nil {
		return fmt.Errorf("publish interaction: %w", err)
	}
	metrics.RecordEventPublish(b.cfg.Topic)
	return nil
}

func (b *Bus) inProcess() bool {
	return b.cfg.Transport == "" || b.cfg.Transport == TransportGoChannel
}

// newRouter builds a router with the persisting handler and middleware.
func (b *Bus) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: b.cfg.CloseTimeout}, b.logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Deduplication sits outside Retry so retries of one delivery are not
	// mistaken for replays.
	if b.dedup != nil {
		dedup := middleware.Deduplicator{
			KeyFactory: func(msg *message.Message) (string, error) {
				return msg.UUID, nil
			},
			Repository: b.dedup,
		}
		router.AddMiddleware(dedup.Middleware)
	}

	if b.cfg.PoisonQueueEnabled && b.cfg.PoisonQueueTopic != "" {
		poison, err := middleware.PoisonQueue(b.transport.publisher, b.cfg.PoisonQueueTopic)
		if err != nil {
			return nil, fmt.Errorf("create poison queue middleware: %w", err)
		}
		router.AddMiddleware(poison)
	}

	if b.cfg.RetryCount > 0 {
		retry := middleware.Retry{
			MaxRetries:      b.cfg.RetryCount,
			InitialInterval: b.cfg.RetryInitialInterval,
			MaxInterval:     b.cfg.RetryMaxInterval,
			Multiplier:      2.0,
			Logger:          b.logger,
		}
		router.AddMiddleware(retry.Middleware)
	}

	router.AddMiddleware(middleware.Recoverer)

	router.AddConsumerHandler(handlerName, b.cfg.Topic, b.transport.subscriber, b.handle)
	return router, nil
}

// handle persists one interaction message.
func (b *Bus) handle(msg *message.Message) (err error) {
	defer func() { metrics.RecordEventConsume(b.cfg.Topic, err) }()

	ix, err := DecodeInteraction(msg)
	if err != nil {
		return err
	}
	if _, err := b.recorder.Record(msg.Context(), ix); err != nil {
		return fmt.Errorf("persist interaction %s: %w", msg.UUID, err)
	}
	return nil
}

// Serve runs the router until ctx is cancelled. It implements suture.Service.
func (b *Bus) Serve(ctx context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}

	router, err := b.newRouter()
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.router = router
	b.mu.Unlock()

	go func() {
		select {
		case <-router.Running():
			b.running.Store(true)
			logging.Info().Str("topic", b.cfg.Topic).Str("transport", b.cfg.Transport).Msg("Event bus router running")
		case <-ctx.Done():
		}
	}()

	err = router.Run(ctx)
	b.running.Store(false)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event bus router: %w", err)
	}
	return fmt.Errorf("event bus router stopped unexpectedly")
}

// String identifies the service in supervisor logs.
func (b *Bus) String() string {
	return "eventbus-router"
}

// Running reports whether the router is consuming messages.
func (b *Bus) Running() bool {
	return b.running.Load()
}

// Close stops the router and closes the transport.
func (b *Bus) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	router := b.router
	b.mu.Unlock()

	var errs []error
	if router != nil {
		if err := router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close router: %w", err))
		}
	}
	if err := b.transport.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Deduplicator implements middleware.ExpiringKeyRepository on a bounded LRU.
type Deduplicator struct {
	cache *cache.LRUCache
}

// NewDeduplicator creates a repository remembering up to size keys for ttl.
func NewDeduplicator(size int, ttl time.Duration) *Deduplicator {
	return &Deduplicator{cache: cache.NewLRUCache(size, ttl)}
}

// IsDuplicate records key and reports whether it was already present.
func (d *Deduplicator) IsDuplicate(_ context.Context, key string) (bool, error) {
	dup := d.cache.IsDuplicate(key)
	if dup {
		metrics.RecordEventDeduplicated()
	}
	return dup, nil
}
