// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/almanarr/internal/middleware"
)

// Router wires handlers and middleware into the Chi mux.
type Router struct {
	handler    *Handler
	middleware *ChiMiddleware
}

// NewRouter creates a router. A nil ChiMiddleware gets the secure defaults.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:    handler,
		middleware: mw,
	}
}

// SetupChi builds the HTTP handler tree.
//
// Global middleware order matters: request IDs first so every downstream log
// line carries one, then proxy-aware client IPs for the rate limiters, panic
// recovery, and CORS.
//
// Route groups carry their own rate limits: health endpoints stay permissive
// for monitoring probes, refresh triggers stay strict, and the rest of the
// API uses the configured default.
func (rt *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.middleware.CORS())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Group(func(r chi.Router) {
			r.Use(rt.middleware.RateLimit())
			r.Get("/calendar", rt.handler.Calendar)
			r.Get("/calendar/month", rt.handler.CalendarMonth)
			r.Get("/calendar/status", rt.handler.RefreshStatus)
			r.Get("/instances", rt.handler.Instances)
		})

		r.Group(func(r chi.Router) {
			r.Use(rt.middleware.RateLimitCustom(RateLimitRefresh))
			r.Post("/calendar/refresh", rt.handler.TriggerRefresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(rt.middleware.RateLimitCustom(RateLimitHealth))
			r.Get("/health", rt.handler.Health)
			r.Get("/health/live", rt.handler.HealthLive)
			r.Get("/health/ready", rt.handler.HealthReady)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(rt.middleware.RateLimitCustom(RateLimitWebSocket))
		r.Get("/ws", rt.handler.WebSocket)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, CodeNotFound, "endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed", nil)
	})

	return r
}
