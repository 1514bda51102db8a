// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package main is the entry point for the Almanarr server.
//
// Almanarr aggregates upcoming-release calendars from any number of Sonarr,
// Radarr, Lidarr, and Readarr instances into one deduplicated calendar with
// a REST API and real-time WebSocket updates.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: load settings from config file and environment (Koanf v2)
//  2. Cache: TTL cache for fetched calendar windows
//  3. WebSocket Hub: real-time refresh broadcasts to connected clients
//  4. Manager: per-instance API clients with rate limiting and circuit breakers
//  5. HTTP Server: REST API behind the Chi router
//  6. Supervisor Tree: suture-managed lifecycle for hub, refresh worker, and server
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority
// wins): environment variables, config file (config.yaml), built-in defaults.
// Instances can only be configured through the config file; server, refresh,
// and logging settings also accept environment overrides such as HTTP_PORT,
// REFRESH_INTERVAL, and LOG_LEVEL.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops accepting
// connections, drains in-flight requests (10s timeout), closes WebSocket
// clients, and stops the refresh worker.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/almanarr/internal/api"
	"github.com/tomtom215/almanarr/internal/arr"
	"github.com/tomtom215/almanarr/internal/cache"
	"github.com/tomtom215/almanarr/internal/config"
	"github.com/tomtom215/almanarr/internal/logging"
	"github.com/tomtom215/almanarr/internal/supervisor"
	"github.com/tomtom215/almanarr/internal/supervisor/services"
	ws "github.com/tomtom215/almanarr/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Almanarr")

	enabled := cfg.EnabledInstances()
	logging.Info().
		Int("instances_total", len(cfg.Instances)).
		Int("instances_enabled", len(enabled)).
		Dur("refresh_interval", cfg.Refresh.Interval).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("Configuration loaded")
	for _, inst := range enabled {
		logging.Info().
			Str("instance", inst.ID).
			Str("service", inst.Service).
			Str("url", inst.URL).
			Msg("Instance enabled")
	}

	fetchCache := cache.New(cfg.Cache.TTL)
	defer fetchCache.Stop()

	// The hub must exist before the manager so refresh cycles can broadcast.
	wsHub := ws.NewHub()

	manager, err := arr.NewManager(cfg, fetchCache, wsHub)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build instance clients")
	}

	handler := api.NewHandler(manager, cfg, wsHub, version)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(
		cfg.API.CORSOrigins,
		cfg.API.RateLimitReqs,
		cfg.API.RateLimitWindow,
	))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddMessagingService(services.NewRefreshService(manager))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
