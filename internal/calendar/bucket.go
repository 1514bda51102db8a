// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package calendar

import (
	"sort"
	"time"

	"github.com/tomtom215/almanarr/internal/models"
)

// DateBucketMap groups canonical items by UTC date key (YYYY-MM-DD). It is
// built fresh on every derivation pass and never mutated incrementally.
type DateBucketMap map[string][]models.DeduplicatedCalendarItem

// eventDate resolves the date field used for bucketing and in-bucket
// ordering. Release dates take priority for release-dated types (albums,
// movies); air dates cover scheduled types (episodes, books). The order is
// fixed here so it can be tested in isolation.
func eventDate(item models.RawCalendarItem) string {
	return firstDate(item.ReleaseDate, item.AirDateUTC, item.AirDate)
}

// Bucket groups items by calendar date. Items carrying none of the temporal
// fields are silently dropped: they cannot be placed on a calendar, and that
// is intentional data loss rather than an error. Within each bucket items are
// sorted ascending by the full timestamp of the bucketing date field, ties
// broken by case-sensitive ascending title (empty title sorts first), making
// the output byte-reproducible for identical input.
func Bucket(items []models.DeduplicatedCalendarItem) DateBucketMap {
	buckets := make(DateBucketMap)
	for _, item := range items {
		date := eventDate(item.RawCalendarItem)
		if date == "" {
			continue
		}
		key := dateKeyOf(date)
		buckets[key] = append(buckets[key], item)
	}

	for key := range buckets {
		bucket := buckets[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			ti := eventTime(bucket[i].RawCalendarItem)
			tj := eventTime(bucket[j].RawCalendarItem)
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
			return bucket[i].Title < bucket[j].Title
		})
	}
	return buckets
}

// dateKeyOf converts a raw temporal field value into the bucket key. Full
// timestamps are normalized to their UTC date first, so an offset-carrying
// value ("2025-03-15T23:00:00-05:00") buckets under its UTC date, not its
// local one. Date-only and unparseable values truncate as-is.
func dateKeyOf(raw string) string {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	return datePart(raw)
}

// eventTime parses the bucketing date field's full timestamp for in-bucket
// ordering. Date-only values parse as midnight UTC; unparseable values sort
// first as the zero time.
func eventTime(item models.RawCalendarItem) time.Time {
	raw := eventDate(item)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02", datePart(raw)); err == nil {
		return t
	}
	return time.Time{}
}
