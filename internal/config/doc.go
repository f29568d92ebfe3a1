// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

/*
Package config provides centralized configuration management for PartyMap.

Configuration is loaded with Koanf in three layers, each overriding the last:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, then config.yaml in the working
    directory, then /etc/partymap/config.yaml
 3. Environment variables from an explicit mapping table

Unmapped environment variables are ignored so unrelated process state
never leaks into configuration.

# Configuration Structure

  - ServerConfig: HTTP listener (HTTP_PORT, HTTP_HOST, ENVIRONMENT)
  - LoggingConfig: zerolog level and format (LOG_LEVEL, LOG_FORMAT, LOG_CALLER)
  - SecurityConfig: CORS origins and per-IP rate limiting
  - SourceConfig: upstream event search (SOURCE_TYPE http, file or none)
  - CatalogConfig: refresh interval and spatial grid cell size
  - StoreConfig: BadgerDB path for preferences and interactions
  - EventBusConfig: Watermill transport (gochannel or NATS JetStream)
  - recommend.Config: scoring weights and result limits
  - EnrichConfig: classifier memoization
  - SupervisorConfig: suture restart policy

# Example YAML

	server:
	  port: 8080
	source:
	  type: http
	  url: https://events.example.com
	  api_key: secret
	recommend:
	  personalized:
	    preference: 0.5
	  limits:
	    default_k: 10

# Validation

Validate runs after unmarshalling and reports the first invalid setting by
its environment variable name.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
