// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package arr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/almanarr/internal/config"
	"github.com/tomtom215/almanarr/internal/models"
)

// defaultRateLimit caps requests per second to one instance when no
// per-instance limit is configured.
const defaultRateLimit = 5

// Client fetches calendar items from one media service instance.
type Client interface {
	// FetchCalendar retrieves calendar items in [start, end]. Items are
	// already mapped to the unified model with instance provenance set.
	// includeUnmonitored is passed upstream as the unmonitored query
	// parameter; filtering monitored state never happens client-side.
	FetchCalendar(ctx context.Context, start, end time.Time, includeUnmonitored bool) ([]models.RawCalendarItem, error)

	// Ping verifies connectivity to the instance.
	Ping(ctx context.Context) error
}

// New constructs a Client for the given instance configuration, wrapped in
// a circuit breaker.
func New(cfg config.InstanceConfig, timeout time.Duration) (Client, error) {
	base := newBaseClient(cfg, timeout)
	var inner Client
	switch models.ServiceType(cfg.Service) {
	case models.ServiceSonarr:
		inner = &sonarrClient{base: base}
	case models.ServiceRadarr:
		inner = &radarrClient{base: base}
	case models.ServiceLidarr:
		inner = &lidarrClient{base: base}
	case models.ServiceReadarr:
		inner = &readarrClient{base: base}
	default:
		return nil, fmt.Errorf("unknown service %q for instance %q", cfg.Service, cfg.ID)
	}
	return newBreakerClient(cfg.ID, inner), nil
}

// baseClient holds the HTTP plumbing shared by all service clients.
type baseClient struct {
	instanceID   string
	instanceName string
	service      models.ServiceType
	baseURL      string
	apiKey       string
	apiVersion   string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

func newBaseClient(cfg config.InstanceConfig, timeout time.Duration) *baseClient {
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = defaultRateLimit
	}
	version := "v3"
	switch models.ServiceType(cfg.Service) {
	case models.ServiceLidarr, models.ServiceReadarr:
		version = "v1"
	}
	return &baseClient{
		instanceID:   cfg.ID,
		instanceName: cfg.Label(),
		service:      models.ServiceType(cfg.Service),
		baseURL:      strings.TrimSuffix(cfg.URL, "/"),
		apiKey:       cfg.APIKey,
		apiVersion:   version,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
	}
}

// get performs a rate-limited GET against the instance API and decodes the
// JSON response into out.
func (c *baseClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limiter: %w", c.service, err)
	}

	u := c.baseURL + "/api/" + c.apiVersion + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%s request build failed: %w", c.service, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", c.service, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if readErr != nil {
			return fmt.Errorf("%s returned status %d (failed to read body)", c.service, resp.StatusCode)
		}
		return fmt.Errorf("%s returned status %d: %s", c.service, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", c.service, err)
	}
	return nil
}

// calendarQuery builds the common calendar query parameters. The *arr
// services accept date-only start/end and expand to the full day.
func calendarQuery(start, end time.Time, includeUnmonitored bool) url.Values {
	q := url.Values{}
	q.Set("start", start.UTC().Format("2006-01-02"))
	q.Set("end", end.UTC().Format("2006-01-02"))
	q.Set("unmonitored", strconv.FormatBool(includeUnmonitored))
	return q
}

// ping checks the system status endpoint shared by all *arr services.
func (c *baseClient) ping(ctx context.Context) error {
	var status struct {
		Version string `json:"version"`
	}
	return c.get(ctx, "/system/status", nil, &status)
}

// stamp fills the instance provenance fields on a mapped item.
func (c *baseClient) stamp(item *models.RawCalendarItem) {
	item.InstanceID = c.instanceID
	item.InstanceName = c.instanceName
	item.Service = c.service
}
