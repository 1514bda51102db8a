// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package arr

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/almanarr/internal/logging"
	"github.com/tomtom215/almanarr/internal/metrics"
	"github.com/tomtom215/almanarr/internal/models"
)

// breakerClient wraps a Client with a circuit breaker so a persistently
// failing instance is skipped instead of slowing every refresh down.
//
// The breaker uses real time for its interval and timeout calculations.
// The timing determines when to recover from failures, not data integrity;
// unit tests should exercise the wrapped client directly.
type breakerClient struct {
	inner Client
	cb    *gobreaker.CircuitBreaker[[]models.RawCalendarItem]
	name  string
}

// newBreakerClient creates a circuit breaker around a service client.
// Configuration:
//   - Max 1 request in half-open state
//   - 5 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 3 requests
func newBreakerClient(instanceID string, inner Client) *breakerClient {
	metrics.CircuitBreakerState.WithLabelValues(instanceID).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.RawCalendarItem](gobreaker.Settings{
		Name:        instanceID,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 3 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("instance", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &breakerClient{inner: inner, cb: cb, name: instanceID}
}

func (b *breakerClient) FetchCalendar(ctx context.Context, start, end time.Time, includeUnmonitored bool) ([]models.RawCalendarItem, error) {
	return b.cb.Execute(func() ([]models.RawCalendarItem, error) {
		return b.inner.FetchCalendar(ctx, start, end, includeUnmonitored)
	})
}

func (b *breakerClient) Ping(ctx context.Context) error {
	_, err := b.cb.Execute(func() ([]models.RawCalendarItem, error) {
		return nil, b.inner.Ping(ctx)
	})
	return err
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
