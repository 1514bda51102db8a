// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/almanarr/internal/models"
)

// Health handles GET /api/v1/health with a full health report: version,
// uptime, instance counts, connected WebSocket clients, and the last
// successful refresh time.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	instances := h.manager.Instances()
	enabled := 0
	for _, inst := range instances {
		if inst.Enabled {
			enabled++
		}
	}

	status := "ok"
	if enabled == 0 {
		status = "degraded"
	}

	refresh := h.manager.Status()
	var lastRefresh *time.Time
	if !refresh.LastRefreshAt.IsZero() {
		t := refresh.LastRefreshAt
		lastRefresh = &t
	}

	clients := 0
	if h.wsHub != nil {
		clients = h.wsHub.ClientCount()
	}

	respondSuccess(w, http.StatusOK, models.HealthStatus{
		Status:           status,
		Version:          h.version,
		InstancesTotal:   len(instances),
		InstancesEnabled: enabled,
		LastRefreshTime:  lastRefresh,
		UptimeSeconds:    time.Since(h.startTime).Seconds(),
		WebSocketClients: clients,
	}, time.Since(started), false)
}

// HealthLive handles GET /api/v1/health/live. Liveness only proves the
// process serves requests; it never inspects upstream state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Since(started), false)
}

// HealthReady handles GET /api/v1/health/ready. The service is ready once
// the refresh worker is running or has completed at least one cycle.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	refresh := h.manager.Status()
	if !refresh.Running && refresh.LastRefreshAt.IsZero() {
		respondError(w, http.StatusServiceUnavailable, CodeServiceUnavailable, "refresh worker has not started", nil)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"}, time.Since(started), false)
}
