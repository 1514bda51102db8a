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

// readarrClient fetches upcoming book releases from a Readarr v1 instance.
//
// API reference: https://readarr.com/docs/api/
type readarrClient struct {
	base *baseClient
}

// readarrBook is the wire shape of one Readarr calendar entry.
type readarrBook struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"releaseDate"`
	Monitored   bool     `json:"monitored"`
	GoodreadsID int64    `json:"goodreadsId"`
	Genres      []string `json:"genres"`
	Author      struct {
		AuthorName string `json:"authorName"`
		Status     string `json:"status"`
	} `json:"author"`
}

func (c *readarrClient) FetchCalendar(ctx context.Context, start, end time.Time, includeUnmonitored bool) ([]models.RawCalendarItem, error) {
	q := calendarQuery(start, end, includeUnmonitored)
	q.Set("includeAuthor", "true")

	var books []readarrBook
	if err := c.base.get(ctx, "/calendar", q, &books); err != nil {
		return nil, fmt.Errorf("readarr calendar fetch: %w", err)
	}

	items := make([]models.RawCalendarItem, 0, len(books))
	for i := range books {
		items = append(items, c.mapBook(&books[i]))
	}
	return items, nil
}

// mapBook maps the Readarr release date into AirDateUTC, matching how book
// dates flow through identity and bucketing.
func (c *readarrClient) mapBook(b *readarrBook) models.RawCalendarItem {
	item := models.RawCalendarItem{
		ID:          b.ID,
		Type:        models.MediaBook,
		Title:       b.Title,
		BookTitle:   b.Title,
		AuthorName:  b.Author.AuthorName,
		Overview:    b.Overview,
		GoodreadsID: b.GoodreadsID,
		AirDateUTC:  b.ReleaseDate,
		Monitored:   b.Monitored,
		Genres:      b.Genres,
		Status:      b.Author.Status,
	}
	c.base.stamp(&item)
	return item
}

func (c *readarrClient) Ping(ctx context.Context) error {
	return c.base.ping(ctx)
}
