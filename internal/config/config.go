// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package config

import (
	"time"

	"github.com/tomtom215/partymap/internal/recommend"
)

// Config holds all application configuration.
//
// Configuration is loaded in layers by LoadWithKoanf: built-in defaults,
// then an optional YAML file, then environment variables.
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Security   SecurityConfig   `koanf:"security"`
	Source     SourceConfig     `koanf:"source"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Store      StoreConfig      `koanf:"store"`
	EventBus   EventBusConfig   `koanf:"eventbus"`
	Recommend  recommend.Config `koanf:"recommend"`
	Enrich     EnrichConfig     `koanf:"enrich"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// SecurityConfig holds inbound request protections
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// SourceConfig selects and tunes the upstream event search.
//
// Environment Variables:
//   - SOURCE_TYPE: http, file or none (default: file)
//   - SOURCE_URL: base URL of the event search API (required for http)
//   - SOURCE_API_KEY: API key sent as X-API-Key
//   - SOURCE_FILE: JSON fixture path (required for file)
//   - SOURCE_QUERY / SOURCE_LOCATION: default search terms
type SourceConfig struct {
	Type     string `koanf:"type"`
	URL      string `koanf:"url"`
	APIKey   string `koanf:"api_key"`
	FilePath string `koanf:"file_path"`

	// Query and Location are sent on every catalog refresh.
	Query      string `koanf:"query"`
	Location   string `koanf:"location"`
	MaxResults int    `koanf:"max_results"`

	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`

	// BreakerMaxFailures consecutive failures open the circuit for
	// BreakerTimeout.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// CatalogConfig controls the in-memory event catalog
type CatalogConfig struct {
	RefreshInterval  time.Duration `koanf:"refresh_interval"`
	RefreshOnStartup bool          `koanf:"refresh_on_startup"`
	RefreshTimeout   time.Duration `koanf:"refresh_timeout"`

	// CellSizeMiles is the spatial grid cell edge used for nearby lookups.
	CellSizeMiles float64 `koanf:"cell_size_miles"`
}

// StoreConfig holds BadgerDB settings for preferences and interactions
type StoreConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`

	// GCInterval is how often the value log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// EventBusConfig holds Watermill settings for interaction events.
//
// Transport "gochannel" keeps messages in process; "nats" publishes to a
// JetStream server at NATSURL.
type EventBusConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Transport string `koanf:"transport"`
	NATSURL   string `koanf:"nats_url"`
	Topic     string `koanf:"topic"`

	DurableName string `koanf:"durable_name"`
	QueueGroup  string `koanf:"queue_group"`

	// Router configuration
	RetryCount           int           `koanf:"retry_count"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `koanf:"retry_max_interval"`
	PoisonQueueEnabled   bool          `koanf:"poison_queue_enabled"`
	PoisonQueueTopic     string        `koanf:"poison_queue_topic"`
	DeduplicationEnabled bool          `koanf:"deduplication_enabled"`
	DeduplicationTTL     time.Duration `koanf:"deduplication_ttl"`
	DeduplicationSize    int           `koanf:"deduplication_size"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`
}

// EnrichConfig controls classifier memoization
type EnrichConfig struct {
	MemoTTL        time.Duration `koanf:"memo_ttl"`
	MemoMaxEntries int           `koanf:"memo_max_entries"`
}

// SupervisorConfig holds suture failure handling settings
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// Source types
const (
	SourceHTTP = "http"
	SourceFile = "file"
	SourceNone = "none"
)

// Event bus transports
const (
	TransportGoChannel = "gochannel"
	TransportNATS      = "nats"
)

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration using the layered Koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
