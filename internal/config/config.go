// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package config handles application configuration loaded from defaults,
// an optional YAML file, and environment variables, in that order of
// precedence (env highest).
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/almanarr/internal/models"
)

// Config holds the complete application configuration.
type Config struct {
	Instances []InstanceConfig `koanf:"instances"`
	Server    ServerConfig     `koanf:"server"`
	Refresh   RefreshConfig    `koanf:"refresh"`
	Cache     CacheConfig      `koanf:"cache"`
	API       APIConfig        `koanf:"api"`
	Logging   LoggingConfig    `koanf:"logging"`
}

// InstanceConfig describes one configured media service instance. The
// order of instances in the config file is the aggregation order.
type InstanceConfig struct {
	ID      string `koanf:"id"`
	Name    string `koanf:"name"`
	Service string `koanf:"service"`
	URL     string `koanf:"url"`
	APIKey  string `koanf:"api_key"`
	Enabled bool   `koanf:"enabled"`

	// RateLimit caps requests per second to this instance. Zero uses
	// the default of 5 req/s.
	RateLimit float64 `koanf:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// RefreshConfig controls the background calendar refresh loop.
type RefreshConfig struct {
	Interval           time.Duration `koanf:"interval"`
	IncludeUnmonitored bool          `koanf:"include_unmonitored"`
	FetchTimeout       time.Duration `koanf:"fetch_timeout"`
}

// CacheConfig controls the calendar snapshot cache.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_requests"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for consistency. It is called by Load
// after all layers are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Refresh.Interval < time.Minute {
		return fmt.Errorf("refresh interval %s too short, minimum 1m", c.Refresh.Interval)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}

	seen := make(map[string]bool, len(c.Instances))
	for i := range c.Instances {
		inst := &c.Instances[i]
		if inst.ID == "" {
			return fmt.Errorf("instance %d: id is required", i)
		}
		if seen[inst.ID] {
			return fmt.Errorf("duplicate instance id %q", inst.ID)
		}
		seen[inst.ID] = true

		if !models.ServiceType(inst.Service).Valid() {
			return fmt.Errorf("instance %q: unknown service %q", inst.ID, inst.Service)
		}
		if !inst.Enabled {
			continue
		}
		if inst.URL == "" {
			return fmt.Errorf("instance %q: url is required", inst.ID)
		}
		u, err := url.Parse(inst.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("instance %q: invalid url %q", inst.ID, inst.URL)
		}
		if inst.APIKey == "" {
			return fmt.Errorf("instance %q: api_key is required", inst.ID)
		}
		if inst.RateLimit < 0 {
			return fmt.Errorf("instance %q: rate_limit must not be negative", inst.ID)
		}
	}
	return nil
}

// EnabledInstances returns the enabled instances in configuration order.
func (c *Config) EnabledInstances() []InstanceConfig {
	out := make([]InstanceConfig, 0, len(c.Instances))
	for _, inst := range c.Instances {
		if inst.Enabled {
			out = append(out, inst)
		}
	}
	return out
}

// Instance looks up an instance by ID.
func (c *Config) Instance(id string) (InstanceConfig, bool) {
	for _, inst := range c.Instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return InstanceConfig{}, false
}

// Label returns the display name for an instance, falling back to the ID.
func (i InstanceConfig) Label() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return i.ID
}
