// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package metrics provides Prometheus metrics for monitoring Almanarr.
// All metrics are registered on the default registry via promauto and
// exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestDuration tracks HTTP request latency by endpoint and method.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "almanarr_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// APIRequestsTotal counts HTTP requests by endpoint, method, and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanarr_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	// APIActiveRequests gauges the number of in-flight HTTP requests.
	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "almanarr_api_active_requests",
			Help: "Number of currently active API requests",
		},
	)

	// InstanceFetchDuration tracks upstream calendar fetch latency per
	// instance and service.
	InstanceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "almanarr_instance_fetch_duration_seconds",
			Help:    "Upstream calendar fetch duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"instance", "service"},
	)

	// InstanceFetchErrors counts failed upstream calendar fetches.
	InstanceFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanarr_instance_fetch_errors_total",
			Help: "Total number of failed upstream calendar fetches",
		},
		[]string{"instance", "service"},
	)

	// InstanceItemsFetched counts raw calendar items returned per instance.
	InstanceItemsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanarr_instance_items_fetched_total",
			Help: "Total number of raw calendar items fetched",
		},
		[]string{"instance", "service"},
	)

	// CircuitBreakerState reports the breaker state per instance
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "almanarr_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"instance"},
	)

	// CacheHits counts calendar snapshot cache hits.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "almanarr_cache_hits_total",
			Help: "Total number of calendar cache hits",
		},
	)

	// CacheMisses counts calendar snapshot cache misses.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "almanarr_cache_misses_total",
			Help: "Total number of calendar cache misses",
		},
	)

	// RefreshDuration tracks full aggregation refresh latency.
	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "almanarr_refresh_duration_seconds",
			Help:    "Full calendar refresh duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// DeduplicatedItems gauges the item count after the last deduplication.
	DeduplicatedItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "almanarr_deduplicated_items",
			Help: "Number of calendar items after deduplication",
		},
	)

	// WebSocketClients gauges currently connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "almanarr_websocket_clients",
			Help: "Number of currently connected WebSocket clients",
		},
	)
)

// RecordAPIRequest records latency and count for a completed HTTP request.
func RecordAPIRequest(endpoint, method, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(endpoint, method, status).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RecordInstanceFetch records the outcome of one upstream calendar fetch.
func RecordInstanceFetch(instance, service string, items int, duration time.Duration, err error) {
	InstanceFetchDuration.WithLabelValues(instance, service).Observe(duration.Seconds())
	if err != nil {
		InstanceFetchErrors.WithLabelValues(instance, service).Inc()
		return
	}
	InstanceItemsFetched.WithLabelValues(instance, service).Add(float64(items))
}

// TrackActiveRequest increments the active request gauge and returns a
// function that decrements it.
func TrackActiveRequest() func() {
	APIActiveRequests.Inc()
	return APIActiveRequests.Dec
}
