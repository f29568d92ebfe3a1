// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

// Package store persists user preferences and event interactions in BadgerDB.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/partymap/internal/logging"
	"github.com/tomtom215/partymap/internal/metrics"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("store: not found")

// Options configures the BadgerDB instance.
type Options struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory; used by tests and ephemeral deployments.
	InMemory bool

	// GCInterval is how often value log garbage collection runs.
	GCInterval time.Duration
}

// DB owns the BadgerDB handle shared by the preference and interaction stores.
type DB struct {
	db         *badger.DB
	inMemory   bool
	gcInterval time.Duration
}

// Open opens (or creates) the database described by opts.
func Open(opts Options) (*DB, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts = badger.DefaultOptions(opts.Path)
	}
	bopts = bopts.WithLogger(newBadgerLogger())

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	gc := opts.GCInterval
	if gc <= 0 {
		gc = 10 * time.Minute
	}
	return &DB{db: db, inMemory: opts.InMemory, gcInterval: gc}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Preferences returns a PreferenceStore backed by this database.
func (d *DB) Preferences() *PreferenceStore {
	return &PreferenceStore{db: d.db, now: time.Now}
}

// Interactions returns an InteractionStore backed by this database.
func (d *DB) Interactions() *InteractionStore {
	return &InteractionStore{db: d.db}
}

// Serve runs value log garbage collection until ctx is cancelled.
// It implements suture.Service.
func (d *DB) Serve(ctx context.Context) error {
	if d.inMemory {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(d.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.runGC()
		}
	}
}

// String identifies the service in supervisor logs.
func (d *DB) String() string {
	return "badger-gc"
}

// runGC rewrites value log files until there is nothing left to reclaim.
func (d *DB) runGC() {
	for {
		err := d.db.RunValueLogGC(0.5)
		if err == nil {
			continue
		}
		if !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrRejected) {
			logging.Warn().Err(err).Msg("Badger value log GC failed")
		}
		return
	}
}

// record reports an operation outcome to metrics.
func record(storeName, operation string, err error) {
	switch {
	case err == nil:
		metrics.RecordStoreOperation(storeName, operation, metrics.ResultSuccess)
	case errors.Is(err, ErrNotFound):
		metrics.RecordStoreOperation(storeName, operation, metrics.ResultNotFound)
	default:
		metrics.RecordStoreOperation(storeName, operation, metrics.ResultError)
	}
}

// badgerLogger routes badger's internal logging to zerolog.
type badgerLogger struct {
	logger zerolog.Logger
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{logger: logging.WithComponent("badger")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

// Infof is demoted to debug; badger is chatty at info.
func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}
