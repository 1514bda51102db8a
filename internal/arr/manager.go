// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package arr

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/almanarr/internal/cache"
	"github.com/tomtom215/almanarr/internal/calendar"
	"github.com/tomtom215/almanarr/internal/config"
	"github.com/tomtom215/almanarr/internal/logging"
	"github.com/tomtom215/almanarr/internal/metrics"
	"github.com/tomtom215/almanarr/internal/models"
)

// Notifier receives a callback when a background refresh completes. The
// WebSocket hub implements this to push refresh events to clients.
type Notifier interface {
	NotifyCalendarRefreshed(status models.RefreshStatus)
}

// instanceClient pairs an instance's configuration with its API client.
type instanceClient struct {
	cfg    config.InstanceConfig
	client Client
}

// Manager aggregates calendar feeds from all enabled instances. It owns
// the snapshot cache and the background refresh loop.
//
// Fetches run concurrently but results are assembled in instance
// configuration order, so aggregation output is deterministic regardless
// of which instance responds first.
type Manager struct {
	cfg      *config.Config
	clients  []instanceClient
	cache    *cache.Cache
	notifier Notifier

	mu     sync.RWMutex
	status models.RefreshStatus

	refreshNow chan struct{}
}

// NewManager builds clients for every enabled instance in configuration
// order.
func NewManager(cfg *config.Config, c *cache.Cache, notifier Notifier) (*Manager, error) {
	enabled := cfg.EnabledInstances()
	clients := make([]instanceClient, 0, len(enabled))
	for _, inst := range enabled {
		client, err := New(inst, cfg.Refresh.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", inst.ID, err)
		}
		clients = append(clients, instanceClient{cfg: inst, client: client})
	}

	return &Manager{
		cfg:      cfg,
		clients:  clients,
		cache:    c,
		notifier: notifier,
		status: models.RefreshStatus{
			State: "idle",
		},
		refreshNow: make(chan struct{}, 1),
	}, nil
}

// fetchParams is the cache key input for one query window.
type fetchParams struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Unmonitored bool   `json:"unmonitored"`
}

// FetchWindow returns every enabled instance's calendar items for
// [start, end], aggregated in configuration order. Instance failures are
// recorded per instance and never fail the window as a whole. The second
// return value reports whether the result came from the cache.
func (m *Manager) FetchWindow(ctx context.Context, start, end time.Time, includeUnmonitored bool) (*models.FetchResult, bool) {
	key := cache.GenerateKey("calendar", fetchParams{
		Start:       start.UTC().Format("2006-01-02"),
		End:         end.UTC().Format("2006-01-02"),
		Unmonitored: includeUnmonitored,
	})

	if cached, ok := m.cache.Get(key); ok {
		if result, ok := cached.(*models.FetchResult); ok {
			return result, true
		}
	}

	result := m.fetchAll(ctx, start, end, includeUnmonitored)
	m.cache.Set(key, result)
	return result, false
}

// fetchAll queries every instance concurrently and assembles results in
// configuration order.
func (m *Manager) fetchAll(ctx context.Context, start, end time.Time, includeUnmonitored bool) *models.FetchResult {
	results := make([]models.InstanceResult, len(m.clients))

	var wg sync.WaitGroup
	for i := range m.clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ic := m.clients[i]

			fetchStart := time.Now()
			items, err := ic.client.FetchCalendar(ctx, start, end, includeUnmonitored)
			metrics.RecordInstanceFetch(ic.cfg.ID, ic.cfg.Service, len(items), time.Since(fetchStart), err)

			res := models.InstanceResult{
				InstanceID:   ic.cfg.ID,
				InstanceName: ic.cfg.Label(),
				Service:      models.ServiceType(ic.cfg.Service),
				Data:         items,
			}
			if err != nil {
				res.Err = err.Error()
				logging.Warn().
					Err(err).
					Str("instance", ic.cfg.ID).
					Str("service", ic.cfg.Service).
					Msg("instance calendar fetch failed")
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	var total int
	for i := range results {
		total += len(results[i].Data)
	}
	aggregated := make([]models.RawCalendarItem, 0, total)
	for i := range results {
		aggregated = append(aggregated, results[i].Data...)
	}

	return &models.FetchResult{
		Aggregated: aggregated,
		Instances:  results,
	}
}

// Instances returns the full instance directory in configuration order,
// including disabled instances.
func (m *Manager) Instances() []models.Instance {
	out := make([]models.Instance, 0, len(m.cfg.Instances))
	for _, inst := range m.cfg.Instances {
		out = append(out, models.Instance{
			ID:      inst.ID,
			Label:   inst.Label(),
			Service: models.ServiceType(inst.Service),
			Enabled: inst.Enabled,
		})
	}
	return out
}

// Status returns a snapshot of the refresh worker state.
func (m *Manager) Status() models.RefreshStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// TriggerRefresh requests an immediate refresh. Returns false when a
// refresh request is already pending.
func (m *Manager) TriggerRefresh() bool {
	select {
	case m.refreshNow <- struct{}{}:
		return true
	default:
		return false
	}
}

// Serve runs the background refresh loop until the context is canceled.
// It satisfies the suture service contract.
func (m *Manager) Serve(ctx context.Context) error {
	interval := m.cfg.Refresh.Interval

	m.mu.Lock()
	m.status.Running = true
	m.status.State = "idle"
	m.status.NextRefreshAt = time.Now().Add(interval)
	m.mu.Unlock()

	logging.Info().
		Dur("interval", interval).
		Int("instances", len(m.clients)).
		Msg("calendar refresh loop started")

	// Warm the cache so the first request after startup is fast.
	m.refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			m.status.Running = false
			m.status.State = "stopped"
			m.mu.Unlock()
			logging.Info().Msg("calendar refresh loop stopped")
			return ctx.Err()
		case <-ticker.C:
			m.refresh(ctx)
		case <-m.refreshNow:
			m.refresh(ctx)
			ticker.Reset(interval)
		}
	}
}

// refresh drops the snapshot cache, refetches the current month window,
// and notifies WebSocket clients.
func (m *Manager) refresh(ctx context.Context) {
	m.mu.Lock()
	m.status.State = "refreshing"
	m.mu.Unlock()

	started := time.Now()
	window := calendar.MonthWindow(started.UTC())

	fetchCtx, cancel := context.WithTimeout(ctx, m.cfg.Refresh.FetchTimeout)
	defer cancel()

	m.cache.Clear()
	result, _ := m.FetchWindow(fetchCtx, window.CalendarStart, window.CalendarEnd, m.cfg.Refresh.IncludeUnmonitored)

	deduped := calendar.Deduplicate(result.Aggregated)
	elapsed := time.Since(started)

	metrics.RefreshDuration.Observe(elapsed.Seconds())
	metrics.DeduplicatedItems.Set(float64(len(deduped)))

	m.mu.Lock()
	m.status.State = "idle"
	m.status.LastRefreshAt = started
	m.status.LastRefreshMs = elapsed.Milliseconds()
	m.status.NextRefreshAt = time.Now().Add(m.cfg.Refresh.Interval)
	m.status.TotalItems = len(deduped)
	m.status.LastError = allFailedError(result)
	status := m.status
	m.mu.Unlock()

	logging.Info().
		Int("raw_items", len(result.Aggregated)).
		Int("deduplicated_items", len(deduped)).
		Int64("elapsed_ms", elapsed.Milliseconds()).
		Msg("calendar refresh complete")

	if m.notifier != nil {
		m.notifier.NotifyCalendarRefreshed(status)
	}
}

// allFailedError returns a summary error string when every instance in the
// fetch failed, empty otherwise. Partial failures are visible per instance
// in the fetch result and do not flag the refresh as failed.
func allFailedError(result *models.FetchResult) string {
	if len(result.Instances) == 0 {
		return ""
	}
	for i := range result.Instances {
		if result.Instances[i].Err == "" {
			return ""
		}
	}
	return fmt.Sprintf("all %d instances failed, last error: %s",
		len(result.Instances), result.Instances[len(result.Instances)-1].Err)
}
