// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"totalItems": 42, "eventsByDate": {...}},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 45}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS covers the full fetch+derive pipeline for the request; cached
// responses report 0 with Cached set.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - UPSTREAM_ERROR: All upstream instances failed
//   - NOT_FOUND: Resource doesn't exist
//   - METHOD_NOT_ALLOWED: Wrong HTTP method
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus reports service health for the health endpoint.
type HealthStatus struct {
	Status           string     `json:"status"`
	Version          string     `json:"version"`
	InstancesTotal   int        `json:"instancesTotal"`
	InstancesEnabled int        `json:"instancesEnabled"`
	LastRefreshTime  *time.Time `json:"lastRefreshTime,omitempty"`
	UptimeSeconds    float64    `json:"uptime"`
	WebSocketClients int        `json:"websocketClients"`
}

// RefreshStatus reports the state of the background refresh worker.
type RefreshStatus struct {
	Running       bool      `json:"running"`
	State         string    `json:"state"` // "idle", "refreshing", "stopped"
	LastRefreshAt time.Time `json:"lastRefreshAt"`
	LastRefreshMs int64     `json:"lastRefreshMs"`
	NextRefreshAt time.Time `json:"nextRefreshAt"`
	TotalItems    int       `json:"totalItems"`
	LastError     string    `json:"lastError,omitempty"`
}
