// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/almanarr/internal/models"
)

// ContentKey is the deduplication identity of a raw calendar item. Two items
// merge into one canonical item iff their keys are equal. Keys are opaque
// strings; only equality matters.
type ContentKey string

// ResolveKey derives the content identity of a raw item. It is total: it
// never fails and always returns a non-empty key, even for items missing
// every identifier.
//
// External identifiers are strongly preferred because title text varies by
// instance language and formatting. The normalized title+date fallback exists
// because self-hosted instances frequently lack populated external IDs; an
// imperfect key beats no key. Unrecognized media types get a key scoped to
// (id, instance) so they can never merge across items.
func ResolveKey(item models.RawCalendarItem) ContentKey {
	switch item.Type {
	case models.MediaEpisode:
		return episodeKey(item)
	case models.MediaMovie:
		return movieKey(item)
	case models.MediaAlbum:
		return albumKey(item)
	case models.MediaBook:
		return bookKey(item)
	default:
		return ContentKey("unknown:" + strconv.FormatInt(item.ID, 10) + ":" + item.InstanceID)
	}
}

func movieKey(item models.RawCalendarItem) ContentKey {
	if item.TMDBID > 0 {
		return ContentKey("movie:tmdb:" + strconv.FormatInt(item.TMDBID, 10))
	}
	if item.IMDBID != "" {
		return ContentKey("movie:imdb:" + item.IMDBID)
	}
	date := firstDate(item.AirDate, item.AirDateUTC)
	return ContentKey("movie:" + strings.ToLower(movieTitle(item)) + ":" + datePart(date))
}

func episodeKey(item models.RawCalendarItem) ContentKey {
	suffix := seasonEpisodeSuffix(item.SeasonNumber, item.EpisodeNumber)
	if item.TMDBID > 0 {
		return ContentKey("episode:tmdb:" + strconv.FormatInt(item.TMDBID, 10) + ":" + suffix)
	}
	if item.IMDBID != "" {
		return ContentKey("episode:imdb:" + item.IMDBID + ":" + suffix)
	}
	return ContentKey("episode:" + strings.ToLower(item.SeriesTitle) + ":" + suffix)
}

func albumKey(item models.RawCalendarItem) ContentKey {
	if item.MusicBrainzID != "" {
		return ContentKey("album:mbz:" + item.MusicBrainzID)
	}
	date := firstDate(item.ReleaseDate, item.AirDate, item.AirDateUTC)
	return ContentKey("album:" + strings.ToLower(item.ArtistName) + ":" +
		strings.ToLower(albumTitle(item)) + ":" + datePart(date))
}

func bookKey(item models.RawCalendarItem) ContentKey {
	if item.GoodreadsID > 0 {
		return ContentKey("book:goodreads:" + strconv.FormatInt(item.GoodreadsID, 10))
	}
	date := firstDate(item.AirDate, item.AirDateUTC)
	return ContentKey("book:" + strings.ToLower(item.AuthorName) + ":" +
		strings.ToLower(bookTitle(item)) + ":" + datePart(date))
}

// seasonEpisodeSuffix formats season/episode numbers as S01E03, defaulting
// missing numbers to zero so sparse records still key consistently.
func seasonEpisodeSuffix(season, episode int) string {
	if season < 0 {
		season = 0
	}
	if episode < 0 {
		episode = 0
	}
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

// firstDate returns the first non-empty candidate, making each media type's
// date resolution order explicit and testable in isolation.
func firstDate(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// datePart truncates an ISO timestamp to its date-only prefix, cutting at
// the first time separator ("T" or space).
func datePart(date string) string {
	if i := strings.IndexAny(date, "T "); i >= 0 {
		return date[:i]
	}
	return date
}

// movieTitle resolves the display title of a movie item: the generic title
// field first, the typed movie title as fallback.
func movieTitle(item models.RawCalendarItem) string {
	if item.Title != "" {
		return item.Title
	}
	return item.MovieTitle
}

func albumTitle(item models.RawCalendarItem) string {
	if item.AlbumTitle != "" {
		return item.AlbumTitle
	}
	return item.Title
}

func bookTitle(item models.RawCalendarItem) string {
	if item.BookTitle != "" {
		return item.BookTitle
	}
	return item.Title
}
