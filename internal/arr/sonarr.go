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

// sonarrClient fetches upcoming episodes from a Sonarr v3 instance.
//
// API reference: https://sonarr.tv/docs/api/
type sonarrClient struct {
	base *baseClient
}

// sonarrEpisode is the wire shape of one Sonarr calendar entry. The series
// resource is embedded because the calendar endpoint is called with
// includeSeries=true.
type sonarrEpisode struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	AirDate       string `json:"airDate"`
	AirDateUTC    string `json:"airDateUtc"`
	Overview      string `json:"overview"`
	Monitored     bool   `json:"monitored"`
	Runtime       int    `json:"runtime"`
	Series        struct {
		Title   string   `json:"title"`
		TMDBID  int64    `json:"tmdbId"`
		IMDBID  string   `json:"imdbId"`
		Genres  []string `json:"genres"`
		Status  string   `json:"status"`
		Runtime int      `json:"runtime"`
	} `json:"series"`
}

func (c *sonarrClient) FetchCalendar(ctx context.Context, start, end time.Time, includeUnmonitored bool) ([]models.RawCalendarItem, error) {
	q := calendarQuery(start, end, includeUnmonitored)
	q.Set("includeSeries", "true")

	var episodes []sonarrEpisode
	if err := c.base.get(ctx, "/calendar", q, &episodes); err != nil {
		return nil, fmt.Errorf("sonarr calendar fetch: %w", err)
	}

	items := make([]models.RawCalendarItem, 0, len(episodes))
	for i := range episodes {
		items = append(items, c.mapEpisode(&episodes[i]))
	}
	return items, nil
}

func (c *sonarrClient) mapEpisode(ep *sonarrEpisode) models.RawCalendarItem {
	runtime := ep.Runtime
	if runtime == 0 {
		runtime = ep.Series.Runtime
	}
	item := models.RawCalendarItem{
		ID:            ep.ID,
		Type:          models.MediaEpisode,
		Title:         ep.Series.Title,
		SeriesTitle:   ep.Series.Title,
		EpisodeTitle:  ep.Title,
		Overview:      ep.Overview,
		TMDBID:        ep.Series.TMDBID,
		IMDBID:        ep.Series.IMDBID,
		AirDate:       ep.AirDate,
		AirDateUTC:    ep.AirDateUTC,
		Monitored:     ep.Monitored,
		SeasonNumber:  ep.SeasonNumber,
		EpisodeNumber: ep.EpisodeNumber,
		Runtime:       runtime,
		Genres:        ep.Series.Genres,
		Status:        ep.Series.Status,
	}
	c.base.stamp(&item)
	return item
}

func (c *sonarrClient) Ping(ctx context.Context) error {
	return c.base.ping(ctx)
}
