// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package api provides the HTTP surface of Almanarr: the Chi router, the
// calendar/instance/health handlers, and the WebSocket upgrade endpoint.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade
//   - handlers_calendar.go: calendar query, month view, refresh control
//   - handlers_instances.go: instance directory
//   - handlers_health.go: health and readiness probes
//   - handlers_helpers.go: response writing and query parsing helpers
//
// All endpoints respond with the models.APIResponse envelope. Cross-cutting
// concerns (request IDs, Prometheus instrumentation, gzip) live in
// internal/middleware; CORS and rate limiting use the go-chi/cors and
// go-chi/httprate middleware configured in chi_middleware.go.
package api
