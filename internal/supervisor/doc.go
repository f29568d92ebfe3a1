// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

/*
Package supervisor runs the long-lived parts of PartyMap under suture v4.

	partymap
	├── data-layer
	│   ├── badger-gc         (store.DB)
	│   └── catalog-refresh   (catalog.RefreshService)
	├── messaging-layer
	│   └── eventbus-router   (eventbus.Bus)
	└── api-layer
	    └── http-server       (services.HTTPServerService)

Each layer counts failures separately. A service that keeps failing puts
only its own layer into backoff.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    FailureThreshold: cfg.Supervisor.FailureThreshold,
	    FailureDecay:     cfg.Supervisor.FailureDecay,
	    FailureBackoff:   cfg.Supervisor.FailureBackoff,
	    ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	tree.AddDataService(db)
	tree.AddMessagingService(bus)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Supervisor events (start, failure, backoff, restart) are logged through
sutureslog into the zerolog bridge.
*/
package supervisor
