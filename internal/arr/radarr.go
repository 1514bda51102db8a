// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package arr

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/almanarr/internal/models"
)

// radarrClient fetches upcoming movie releases from a Radarr v3 instance.
//
// API reference: https://radarr.video/docs/api/
type radarrClient struct {
	base *baseClient
}

// radarrMovie is the wire shape of one Radarr calendar entry. Radarr
// reports up to three release dates; digital is preferred, then physical,
// then the cinema date.
type radarrMovie struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Overview        string   `json:"overview"`
	TMDBID          int64    `json:"tmdbId"`
	IMDBID          string   `json:"imdbId"`
	InCinemas       string   `json:"inCinemas"`
	PhysicalRelease string   `json:"physicalRelease"`
	DigitalRelease  string   `json:"digitalRelease"`
	Monitored       bool     `json:"monitored"`
	Runtime         int      `json:"runtime"`
	Genres          []string `json:"genres"`
	Status          string   `json:"status"`
}

func (c *radarrClient) FetchCalendar(ctx context.Context, start, end time.Time, includeUnmonitored bool) ([]models.RawCalendarItem, error) {
	q := calendarQuery(start, end, includeUnmonitored)

	var movies []radarrMovie
	if err := c.base.get(ctx, "/calendar", q, &movies); err != nil {
		return nil, fmt.Errorf("radarr calendar fetch: %w", err)
	}

	items := make([]models.RawCalendarItem, 0, len(movies))
	for i := range movies {
		items = append(items, c.mapMovie(&movies[i]))
	}
	return items, nil
}

func (c *radarrClient) mapMovie(m *radarrMovie) models.RawCalendarItem {
	release := m.DigitalRelease
	if release == "" {
		release = m.PhysicalRelease
	}
	if release == "" {
		release = m.InCinemas
	}
	item := models.RawCalendarItem{
		ID:          m.ID,
		Type:        models.MediaMovie,
		Title:       m.Title,
		MovieTitle:  m.Title,
		Overview:    m.Overview,
		TMDBID:      m.TMDBID,
		IMDBID:      m.IMDBID,
		ReleaseDate: release,
		Monitored:   m.Monitored,
		Runtime:     m.Runtime,
		Genres:      m.Genres,
		Status:      m.Status,
	}
	c.base.stamp(&item)
	return item
}

func (c *radarrClient) Ping(ctx context.Context) error {
	return c.base.ping(ctx)
}
