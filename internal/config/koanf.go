// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/partymap/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/partymap/config.yaml",
	"/etc/partymap/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			MaxBodyBytes:      4 << 20,
		},
		Source: SourceConfig{
			Type:               SourceFile,
			FilePath:           "/data/events.json",
			Query:              "party",
			MaxResults:         200,
			Timeout:            10 * time.Second,
			RequestsPerSecond:  2,
			Burst:              4,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Catalog: CatalogConfig{
			RefreshInterval:  15 * time.Minute,
			RefreshOnStartup: true,
			RefreshTimeout:   time.Minute,
			CellSizeMiles:    5,
		},
		Store: StoreConfig{
			Path:       "/data/partymap",
			InMemory:   false,
			GCInterval: 10 * time.Minute,
		},
		EventBus: EventBusConfig{
			Enabled:              true,
			Transport:            TransportGoChannel,
			NATSURL:              "nats://127.0.0.1:4222",
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
		},
		Recommend: *recommend.DefaultConfig(),
		Enrich: EnrichConfig{
			MemoTTL:        time.Hour,
			MemoMaxEntries: 50000,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources:
//
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"max_body_bytes":      "security.max_body_bytes",

	// Source mappings
	"source_type":                 "source.type",
	"source_url":                  "source.url",
	"source_api_key":              "source.api_key",
	"source_file":                 "source.file_path",
	"source_query":                "source.query",
	"source_location":             "source.location",
	"source_max_results":          "source.max_results",
	"source_timeout":              "source.timeout",
	"source_requests_per_second":  "source.requests_per_second",
	"source_burst":                "source.burst",
	"source_breaker_max_failures": "source.breaker_max_failures",
	"source_breaker_timeout":      "source.breaker_timeout",

	// Catalog mappings
	"catalog_refresh_interval":   "catalog.refresh_interval",
	"catalog_refresh_on_startup": "catalog.refresh_on_startup",
	"catalog_refresh_timeout":    "catalog.refresh_timeout",
	"catalog_cell_size_miles":    "catalog.cell_size_miles",

	// Store mappings
	"badger_path":        "store.path",
	"badger_in_memory":   "store.in_memory",
	"badger_gc_interval": "store.gc_interval",

	// Event bus mappings
	"eventbus_enabled":        "eventbus.enabled",
	"eventbus_transport":      "eventbus.transport",
	"nats_url":                "eventbus.nats_url",
	"eventbus_topic":          "eventbus.topic",
	"nats_durable_name":       "eventbus.durable_name",
	"nats_queue_group":        "eventbus.queue_group",
	"eventbus_retry_count":    "eventbus.retry_count",
	"eventbus_retry_interval": "eventbus.retry_initial_interval",
	"eventbus_poison_enabled": "eventbus.poison_queue_enabled",
	"eventbus_poison_topic":   "eventbus.poison_queue_topic",
	"eventbus_dedup_enabled":  "eventbus.deduplication_enabled",
	"eventbus_dedup_ttl":      "eventbus.deduplication_ttl",
	"eventbus_close_timeout":  "eventbus.close_timeout",

	// Recommendation mappings
	"recommend_max_distance":       "recommend.default_max_distance_miles",
	"recommend_default_popularity": "recommend.default_popularity",
	"recommend_default_limit":      "recommend.limits.default_k",
	"recommend_max_limit":          "recommend.limits.max_k",

	// Enrichment mappings
	"enrich_memo_ttl":         "enrich.memo_ttl",
	"enrich_memo_max_entries": "enrich.memo_max_entries",

	// Supervisor mappings
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - SOURCE_URL -> source.url
//   - NATS_URL -> eventbus.nats_url
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// The caller is responsible for mutex protection when accessing
// configuration during reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
