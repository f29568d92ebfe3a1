// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolateEnv clears the process environment for the duration of a test and
// restores it afterwards.
func isolateEnv(t *testing.T) {
	t.Helper()
	saved := os.Environ()
	os.Clearenv()
	t.Cleanup(func() {
		os.Clearenv()
		for _, kv := range saved {
			if k, v, ok := strings.Cut(kv, "="); ok {
				os.Setenv(k, v)
			}
		}
	})
}

// writeConfigFile writes a YAML file into a temp dir and points CONFIG_PATH at it
func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	os.Setenv(ConfigPathEnvVar, path)
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Source.Type != SourceFile {
		t.Errorf("Source.Type = %q, want %q", cfg.Source.Type, SourceFile)
	}
	if cfg.Catalog.RefreshInterval != 15*time.Minute {
		t.Errorf("Catalog.RefreshInterval = %v, want 15m", cfg.Catalog.RefreshInterval)
	}
	if cfg.EventBus.Transport != TransportGoChannel {
		t.Errorf("EventBus.Transport = %q, want %q", cfg.EventBus.Transport, TransportGoChannel)
	}
	if cfg.Recommend.DefaultMaxDistanceMiles != 30 {
		t.Errorf("Recommend.DefaultMaxDistanceMiles = %v, want 30", cfg.Recommend.DefaultMaxDistanceMiles)
	}
	if cfg.Supervisor.FailureThreshold != 5 {
		t.Errorf("Supervisor.FailureThreshold = %v, want 5", cfg.Supervisor.FailureThreshold)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolateEnv(t)
	os.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Recommend.Limits.MaxK != 100 {
		t.Errorf("Recommend.Limits.MaxK = %d, want 100", cfg.Recommend.Limits.MaxK)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	isolateEnv(t)
	writeConfigFile(t, `
server:
  port: 9090
logging:
  level: debug
source:
  type: http
  url: https://events.example.com
  api_key: secret
  timeout: 3s
catalog:
  refresh_interval: 5m
recommend:
  personalized:
    preference: 0.5
  limits:
    default_k: 10
`)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Source.Type != SourceHTTP || cfg.Source.URL != "https://events.example.com" {
		t.Errorf("Source = %s %s, want http https://events.example.com", cfg.Source.Type, cfg.Source.URL)
	}
	if cfg.Source.Timeout != 3*time.Second {
		t.Errorf("Source.Timeout = %v, want 3s", cfg.Source.Timeout)
	}
	if cfg.Catalog.RefreshInterval != 5*time.Minute {
		t.Errorf("Catalog.RefreshInterval = %v, want 5m", cfg.Catalog.RefreshInterval)
	}
	if cfg.Recommend.Personalized.Preference != 0.5 {
		t.Errorf("Recommend.Personalized.Preference = %v, want 0.5", cfg.Recommend.Personalized.Preference)
	}
	// Untouched siblings keep their defaults
	if cfg.Recommend.Personalized.Location != 0.2 {
		t.Errorf("Recommend.Personalized.Location = %v, want 0.2", cfg.Recommend.Personalized.Location)
	}
	if cfg.Recommend.Limits.DefaultK != 10 {
		t.Errorf("Recommend.Limits.DefaultK = %d, want 10", cfg.Recommend.Limits.DefaultK)
	}
}

func TestLoadWithKoanf_EnvOverridesFile(t *testing.T) {
	isolateEnv(t)
	writeConfigFile(t, `
server:
  port: 9090
`)
	os.Setenv("HTTP_PORT", "7070")
	os.Setenv("LOG_LEVEL", "warn")
	os.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	os.Setenv("EVENTBUS_TRANSPORT", "nats")
	os.Setenv("NATS_URL", "nats://nats.internal:4222")
	os.Setenv("RECOMMEND_MAX_DISTANCE", "12.5")
	os.Setenv("SUPERVISOR_FAILURE_BACKOFF", "2s")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("Security.CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}
	if cfg.EventBus.Transport != TransportNATS || cfg.EventBus.NATSURL != "nats://nats.internal:4222" {
		t.Errorf("EventBus = %s %s, want nats nats://nats.internal:4222", cfg.EventBus.Transport, cfg.EventBus.NATSURL)
	}
	if cfg.Recommend.DefaultMaxDistanceMiles != 12.5 {
		t.Errorf("Recommend.DefaultMaxDistanceMiles = %v, want 12.5", cfg.Recommend.DefaultMaxDistanceMiles)
	}
	if cfg.Supervisor.FailureBackoff != 2*time.Second {
		t.Errorf("Supervisor.FailureBackoff = %v, want 2s", cfg.Supervisor.FailureBackoff)
	}
}

func TestLoadWithKoanf_IgnoresUnmappedEnv(t *testing.T) {
	isolateEnv(t)
	os.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	os.Setenv("PORT", "1")
	os.Setenv("SERVER_PORT", "2")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoadWithKoanf_ValidationError(t *testing.T) {
	isolateEnv(t)
	os.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	os.Setenv("SOURCE_TYPE", "http")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("LoadWithKoanf() error = nil, want SOURCE_URL validation error")
	}
	if !strings.Contains(err.Error(), "SOURCE_URL") {
		t.Errorf("error = %v, want mention of SOURCE_URL", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"http_port", "server.port"},
		{"SOURCE_URL", "source.url"},
		{"NATS_URL", "eventbus.nats_url"},
		{"BADGER_PATH", "store.path"},
		{"RECOMMEND_DEFAULT_LIMIT", "recommend.limits.default_k"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
