// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateSecurity,
		c.validateSource,
		c.validateCatalog,
		c.validateStore,
		c.validateEventBus,
		c.validateRecommend,
		c.validateEnrich,
		c.validateSupervisor,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validEnvironments defines the allowed deployment environments
var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// validateSecurity validates inbound request protections
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	if c.Security.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return c.validateRateLimits()
}

// validateCORS rejects an empty origin list. Wildcard origins are allowed
// because the API carries no credentials; ShouldWarnAboutCORS flags them in
// production.
func (c *Config) validateCORS() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if err := validateHTTPURL(origin, "CORS_ORIGINS"); err != nil {
			return fmt.Errorf("CORS_ORIGINS is invalid: %w", err)
		}
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if a production deployment allows every origin
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateSource validates the upstream event search configuration
func (c *Config) validateSource() error {
	switch c.Source.Type {
	case SourceNone:
		return nil
	case SourceFile:
		if strings.TrimSpace(c.Source.FilePath) == "" {
			return fmt.Errorf("SOURCE_FILE is required when SOURCE_TYPE=file")
		}
	case SourceHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("SOURCE_URL is required when SOURCE_TYPE=http")
		}
		if err := validateHTTPURL(c.Source.URL, "SOURCE_URL"); err != nil {
			return fmt.Errorf("SOURCE_URL is invalid: %w", err)
		}
		if err := c.validateSourceLimits(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("SOURCE_TYPE must be one of: http, file, none")
	}

	if c.Source.MaxResults < 1 {
		return fmt.Errorf("SOURCE_MAX_RESULTS must be at least 1")
	}
	return nil
}

// validateSourceLimits validates HTTP client resilience settings
func (c *Config) validateSourceLimits() error {
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("SOURCE_TIMEOUT must be positive")
	}
	if c.Source.RequestsPerSecond <= 0 {
		return fmt.Errorf("SOURCE_REQUESTS_PER_SECOND must be positive")
	}
	if c.Source.Burst < 1 {
		return fmt.Errorf("SOURCE_BURST must be at least 1")
	}
	if c.Source.BreakerMaxFailures < 1 {
		return fmt.Errorf("SOURCE_BREAKER_MAX_FAILURES must be at least 1")
	}
	if c.Source.BreakerTimeout <= 0 {
		return fmt.Errorf("SOURCE_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateCatalog validates catalog refresh settings
func (c *Config) validateCatalog() error {
	if c.Catalog.RefreshInterval < time.Minute {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must be at least 1m")
	}
	if c.Catalog.RefreshTimeout <= 0 {
		return fmt.Errorf("CATALOG_REFRESH_TIMEOUT must be positive")
	}
	if c.Catalog.CellSizeMiles <= 0 {
		return fmt.Errorf("CATALOG_CELL_SIZE_MILES must be positive")
	}
	return nil
}

// validateStore validates BadgerDB settings
func (c *Config) validateStore() error {
	if !c.Store.InMemory && strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
	}
	if c.Store.GCInterval <= 0 {
		return fmt.Errorf("BADGER_GC_INTERVAL must be positive")
	}
	return nil
}

// validTransports defines the allowed event bus transports
var validTransports = map[string]bool{
	TransportGoChannel: true,
	TransportNATS:      true,
}

// validateEventBus validates interaction event bus settings (only if enabled)
func (c *Config) validateEventBus() error {
	if !c.EventBus.Enabled {
		return nil
	}
	if !validTransports[c.EventBus.Transport] {
		return fmt.Errorf("EVENTBUS_TRANSPORT must be one of: gochannel, nats")
	}
	if c.EventBus.Transport == TransportNATS {
		if err := validateNATSURL(c.EventBus.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
	}
	if strings.TrimSpace(c.EventBus.Topic) == "" {
		return fmt.Errorf("EVENTBUS_TOPIC is required")
	}
	if c.EventBus.RetryCount < 0 {
		return fmt.Errorf("EVENTBUS_RETRY_COUNT must be non-negative")
	}
	if c.EventBus.PoisonQueueEnabled && c.EventBus.PoisonQueueTopic == c.EventBus.Topic {
		return fmt.Errorf("EVENTBUS_POISON_TOPIC must differ from EVENTBUS_TOPIC")
	}
	if c.EventBus.DeduplicationEnabled && c.EventBus.DeduplicationSize < 1 {
		return fmt.Errorf("deduplication size must be at least 1")
	}
	return nil
}

// validateRecommend validates scoring weights and limits
func (c *Config) validateRecommend() error {
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// validateEnrich validates classifier memoization settings
func (c *Config) validateEnrich() error {
	if c.Enrich.MemoTTL <= 0 {
		return fmt.Errorf("ENRICH_MEMO_TTL must be positive")
	}
	if c.Enrich.MemoMaxEntries < 1 {
		return fmt.Errorf("ENRICH_MEMO_MAX_ENTRIES must be at least 1")
	}
	return nil
}

// validateSupervisor validates suture failure handling
func (c *Config) validateSupervisor() error {
	if c.Supervisor.FailureThreshold <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_THRESHOLD must be positive")
	}
	if c.Supervisor.FailureDecay <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_DECAY must be positive")
	}
	if c.Supervisor.FailureBackoff < 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_BACKOFF must be non-negative")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
