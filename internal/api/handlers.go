// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/almanarr/internal/arr"
	"github.com/tomtom215/almanarr/internal/config"
	"github.com/tomtom215/almanarr/internal/logging"
	ws "github.com/tomtom215/almanarr/internal/websocket"
)

// Handler contains dependencies for API handlers.
type Handler struct {
	manager   *arr.Manager
	config    *config.Config
	wsHub     *ws.Hub
	version   string
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// Dependencies:
//   - manager: upstream fetch manager serving calendar windows
//   - cfg: application configuration
//   - wsHub: WebSocket hub for real-time refresh broadcasts
//   - version: build version reported by the health endpoint
func NewHandler(manager *arr.Manager, cfg *config.Config, wsHub *ws.Hub, version string) *Handler {
	return &Handler{
		manager:   manager,
		config:    cfg,
		wsHub:     wsHub,
		version:   version,
		startTime: time.Now(),
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// configured CORS origins. Browser WebSockets always send Origin; requests
// without one are non-browser clients and are allowed through.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.API.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection and registers the client with the hub.
// Connected clients receive a calendar_refreshed message after every
// background refresh cycle.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, CodeServiceUnavailable, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
