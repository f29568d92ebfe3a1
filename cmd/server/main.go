// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

// Package main is the entry point for the PartyMap server.
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional YAML file, environment (Koanf v2)
//  2. Store: BadgerDB for user preferences and interactions
//  3. Catalog: upstream searcher, memoized classifier, spatial index
//  4. Event bus (optional): Watermill over gochannel or NATS JetStream
//  5. HTTP server: chi router with the /api/v1 surface
//
// Everything long-running is placed in a suture supervisor tree and stops
// gracefully on SIGINT or SIGTERM.
//
// # Example Usage
//
//	export SOURCE_TYPE=file
//	export SOURCE_FILE=./testdata/events.json
//	export BADGER_IN_MEMORY=true
//	./partymap
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/partymap/internal/api"
	"github.com/tomtom215/partymap/internal/catalog"
	"github.com/tomtom215/partymap/internal/config"
	"github.com/tomtom215/partymap/internal/discovery"
	"github.com/tomtom215/partymap/internal/enrich"
	"github.com/tomtom215/partymap/internal/eventbus"
	"github.com/tomtom215/partymap/internal/logging"
	"github.com/tomtom215/partymap/internal/metrics"
	"github.com/tomtom215/partymap/internal/recommend"
	"github.com/tomtom215/partymap/internal/source"
	"github.com/tomtom215/partymap/internal/store"
	"github.com/tomtom215/partymap/internal/supervisor"
	"github.com/tomtom215/partymap/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("source", cfg.Source.Type).
		Bool("eventbus", cfg.EventBus.Enabled).
		Msg("Starting PartyMap")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}
	watchConfig()

	db, err := store.Open(store.Options{
		Path:       cfg.Store.Path,
		InMemory:   cfg.Store.InMemory,
		GCInterval: cfg.Store.GCInterval,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	searcher, err := newSearcher(&cfg.Source)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure event source")
	}

	memo := enrich.NewMemoizer(enrich.NewClassifier(), cfg.Enrich.MemoTTL, cfg.Enrich.MemoMaxEntries)
	recommender, err := recommend.NewRecommender(&cfg.Recommend, memo)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommender")
	}

	cat := catalog.New(searcher, memo, catalog.Config{
		Query: source.Query{
			Text:     cfg.Source.Query,
			Location: cfg.Source.Location,
			Limit:    cfg.Source.MaxResults,
		},
		CellSizeMiles: cfg.Catalog.CellSizeMiles,
	})

	var (
		publisher discovery.Publisher = directPublisher{db.Interactions()}
		bus       *eventbus.Bus
	)
	if cfg.EventBus.Enabled {
		bus, err = eventbus.New(eventBusConfig(&cfg.EventBus), db.Interactions())
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create event bus")
		}
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		publisher = bus
	}

	svc, err := discovery.New(discovery.Deps{
		Catalog:      cat,
		Recommender:  recommender,
		Enricher:     memo,
		Preferences:  db.Preferences(),
		Interactions: db.Interactions(),
		Publisher:    publisher,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create discovery service")
	}

	mwCfg := api.DefaultChiMiddlewareConfig()
	if len(cfg.Security.CORSOrigins) > 0 {
		mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	}
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled

	handler := api.NewHandler(svc, api.HandlerConfig{
		Version:      version,
		MaxBodyBytes: cfg.Security.MaxBodyBytes,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(mwCfg))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(db)
	tree.AddDataService(catalog.NewRefreshService(cat, catalog.ServiceConfig{
		Interval:  cfg.Catalog.RefreshInterval,
		Timeout:   cfg.Catalog.RefreshTimeout,
		OnStartup: cfg.Catalog.RefreshOnStartup,
	}, memo))
	if bus != nil {
		tree.AddMessagingService(bus)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	for err := range tree.ServeBackground(ctx) {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("PartyMap stopped")
}

// newSearcher builds the upstream event source named by cfg.Type.
func newSearcher(cfg *config.SourceConfig) (source.Searcher, error) {
	switch cfg.Type {
	case config.SourceHTTP:
		return source.NewHTTPSearcher(source.HTTPConfig{
			BaseURL:            cfg.URL,
			APIKey:             cfg.APIKey,
			Timeout:            cfg.Timeout,
			RequestsPerSecond:  cfg.RequestsPerSecond,
			Burst:              cfg.Burst,
			BreakerMaxFailures: cfg.BreakerMaxFailures,
			BreakerTimeout:     cfg.BreakerTimeout,
		}), nil
	case config.SourceFile:
		return source.NewFileSearcher(cfg.FilePath), nil
	case config.SourceNone:
		return source.None{}, nil
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}

func eventBusConfig(c *config.EventBusConfig) eventbus.Config {
	return eventbus.Config{
		Transport:            c.Transport,
		NATSURL:              c.NATSURL,
		Topic:                c.Topic,
		DurableName:          c.DurableName,
		QueueGroup:           c.QueueGroup,
		RetryCount:           c.RetryCount,
		RetryInitialInterval: c.RetryInitialInterval,
		RetryMaxInterval:     c.RetryMaxInterval,
		PoisonQueueEnabled:   c.PoisonQueueEnabled,
		PoisonQueueTopic:     c.PoisonQueueTopic,
		DeduplicationEnabled: c.DeduplicationEnabled,
		DeduplicationTTL:     c.DeduplicationTTL,
		DeduplicationSize:    c.DeduplicationSize,
		CloseTimeout:         c.CloseTimeout,
	}
}

// watchConfig logs edits to the file named by CONFIG_PATH. Changes apply
// on the next restart.
func watchConfig() {
	path := os.Getenv(config.ConfigPathEnvVar)
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		logging.Warn().Str("path", path).Msg("Configuration file changed; restart to apply")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Cannot watch configuration file")
	}
}
