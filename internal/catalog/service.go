// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package catalog

import (
	"context"
	"time"

	"github.com/tomtom215/partymap/internal/logging"
)

// Sweeper drops expired memo entries. enrich.Memoizer implements it.
type Sweeper interface {
	Sweep() int
}

// RefreshService periodically refreshes a Catalog. It implements
// suture.Service. Refresh failures are logged and retried on the next tick
// rather than returned, so a flaky upstream does not count against the
// supervisor's restart budget.
type RefreshService struct {
	catalog   *Catalog
	interval  time.Duration
	timeout   time.Duration
	onStartup bool
	sweeper   Sweeper
}

// ServiceConfig configures a RefreshService.
type ServiceConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewRefreshService creates a refresher for c. sweeper may be nil.
func NewRefreshService(c *Catalog, cfg ServiceConfig, sweeper Sweeper) *RefreshService {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &RefreshService{
		catalog:   c,
		interval:  interval,
		timeout:   timeout,
		onStartup: cfg.OnStartup,
		sweeper:   sweeper,
	}
}

// Serve runs until ctx is cancelled.
func (s *RefreshService) Serve(ctx context.Context) error {
	if s.onStartup {
		s.refresh(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// String identifies the service in supervisor logs.
func (s *RefreshService) String() string {
	return "catalog-refresh"
}

func (s *RefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.catalog.Refresh(refreshCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Warn().Err(err).Int("events", s.catalog.Len()).Msg("Catalog refresh failed, keeping previous snapshot")
	}

	if s.sweeper != nil {
		if n := s.sweeper.Sweep(); n > 0 {
			logging.Debug().Int("expired", n).Msg("Swept enrichment memo")
		}
	}
}
