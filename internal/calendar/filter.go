// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package calendar

import (
	"strings"

	"github.com/tomtom215/almanarr/internal/models"
)

// FilterAll selects all services or instances in a filter dimension.
const FilterAll = "all"

// Filters is the immutable filter state applied to a raw item set before
// deduplication. It is owned and mutated only by the ViewState coordinator;
// Apply and every other consumer treat it as a value.
//
// IncludeUnmonitored is deliberately absent from Apply: it is a fetch
// parameter consumed by the upstream data source, deciding which raw items
// exist at all rather than discarding data after the fact.
type Filters struct {
	SearchTerm         string `json:"searchTerm"`
	ServiceFilter      string `json:"serviceFilter"`
	InstanceFilter     string `json:"instanceFilter"`
	IncludeUnmonitored bool   `json:"includeUnmonitored"`
}

// DefaultFilters returns the reset state: everything visible, no search.
func DefaultFilters() Filters {
	return Filters{
		SearchTerm:         "",
		ServiceFilter:      FilterAll,
		InstanceFilter:     FilterAll,
		IncludeUnmonitored: true,
	}
}

// Apply narrows items to those passing every filter stage. The stages are a
// conjunction, so applying them in any order yields the same set; the fixed
// service -> instance -> search order here just keeps the cheap equality
// checks ahead of the substring scan. Filtering runs on raw items, before
// deduplication, so an instance filter excludes that instance's
// contributions entirely rather than hiding merged provenance.
func Apply(items []models.RawCalendarItem, f Filters) []models.RawCalendarItem {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	out := make([]models.RawCalendarItem, 0, len(items))
	for _, item := range items {
		if f.ServiceFilter != FilterAll && f.ServiceFilter != "" && string(item.Service) != f.ServiceFilter {
			continue
		}
		if f.InstanceFilter != FilterAll && f.InstanceFilter != "" && item.InstanceID != f.InstanceFilter {
			continue
		}
		if term != "" && !matchesSearch(item, term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// matchesSearch reports whether any populated text field contains term as a
// case-insensitive substring. Absent fields are skipped, never treated as
// matches.
func matchesSearch(item models.RawCalendarItem, term string) bool {
	for _, field := range []string{
		item.Title,
		item.SeriesTitle,
		item.EpisodeTitle,
		item.MovieTitle,
		item.ArtistName,
		item.AlbumTitle,
		item.AuthorName,
		item.BookTitle,
		item.Overview,
	} {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
