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

// lidarrClient fetches upcoming album releases from a Lidarr v1 instance.
//
// API reference: https://lidarr.audio/docs/api/
type lidarrClient struct {
	base *baseClient
}

// lidarrAlbum is the wire shape of one Lidarr calendar entry.
// ForeignAlbumID carries the MusicBrainz release group ID.
type lidarrAlbum struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Overview       string   `json:"overview"`
	ReleaseDate    string   `json:"releaseDate"`
	Monitored      bool     `json:"monitored"`
	ForeignAlbumID string   `json:"foreignAlbumId"`
	Genres         []string `json:"genres"`
	Artist         struct {
		ArtistName string `json:"artistName"`
		Status     string `json:"status"`
	} `json:"artist"`
}

func (c *lidarrClient) FetchCalendar(ctx context.Context, start, end time.Time, includeUnmonitored bool) ([]models.RawCalendarItem, error) {
	q := calendarQuery(start, end, includeUnmonitored)
	q.Set("includeArtist", "true")

	var albums []lidarrAlbum
	if err := c.base.get(ctx, "/calendar", q, &albums); err != nil {
		return nil, fmt.Errorf("lidarr calendar fetch: %w", err)
	}

	items := make([]models.RawCalendarItem, 0, len(albums))
	for i := range albums {
		items = append(items, c.mapAlbum(&albums[i]))
	}
	return items, nil
}

func (c *lidarrClient) mapAlbum(a *lidarrAlbum) models.RawCalendarItem {
	item := models.RawCalendarItem{
		ID:            a.ID,
		Type:          models.MediaAlbum,
		Title:         a.Title,
		AlbumTitle:    a.Title,
		ArtistName:    a.Artist.ArtistName,
		Overview:      a.Overview,
		MusicBrainzID: a.ForeignAlbumID,
		ReleaseDate:   a.ReleaseDate,
		Monitored:     a.Monitored,
		Genres:        a.Genres,
		Status:        a.Artist.Status,
	}
	c.base.stamp(&item)
	return item
}

func (c *lidarrClient) Ping(ctx context.Context) error {
	return c.base.ping(ctx)
}
