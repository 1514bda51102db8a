// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package calendar

import (
	"strings"
	"testing"

	"github.com/tomtom215/almanarr/internal/models"
)

func TestResolveKey_MoviePriorityChain(t *testing.T) {
	withTMDB := models.RawCalendarItem{Type: models.MediaMovie, TMDBID: 603, IMDBID: "tt0133093", Title: "The Matrix"}
	withIMDB := models.RawCalendarItem{Type: models.MediaMovie, IMDBID: "tt0133093", Title: "The Matrix"}
	fallback := models.RawCalendarItem{Type: models.MediaMovie, Title: "The Matrix", AirDate: "1999-03-31T00:00:00Z"}

	if key := ResolveKey(withTMDB); key != "movie:tmdb:603" {
		t.Errorf("Expected tmdb key, got %q", key)
	}
	if key := ResolveKey(withIMDB); key != "movie:imdb:tt0133093" {
		t.Errorf("Expected imdb key, got %q", key)
	}
	if key := ResolveKey(fallback); key != "movie:the matrix:1999-03-31" {
		t.Errorf("Expected title+date fallback key, got %q", key)
	}
}

func TestResolveKey_MovieTitleCaseInsensitive(t *testing.T) {
	a := models.RawCalendarItem{Type: models.MediaMovie, Title: "DUNE: Part Two", AirDate: "2024-03-01"}
	b := models.RawCalendarItem{Type: models.MediaMovie, Title: "Dune: Part two", AirDate: "2024-03-01"}

	if ResolveKey(a) != ResolveKey(b) {
		t.Errorf("Title case should not change the key: %q vs %q", ResolveKey(a), ResolveKey(b))
	}
}

func TestResolveKey_EpisodeSuffix(t *testing.T) {
	ep3 := models.RawCalendarItem{Type: models.MediaEpisode, TMDBID: 1, SeasonNumber: 1, EpisodeNumber: 3}
	ep4 := models.RawCalendarItem{Type: models.MediaEpisode, TMDBID: 1, SeasonNumber: 1, EpisodeNumber: 4}

	k3, k4 := ResolveKey(ep3), ResolveKey(ep4)
	if k3 == k4 {
		t.Fatalf("Different episodes must produce different keys, both %q", k3)
	}
	if !strings.HasSuffix(string(k3), "S01E03") {
		t.Errorf("Expected S01E03 suffix, got %q", k3)
	}
	if !strings.HasSuffix(string(k4), "S01E04") {
		t.Errorf("Expected S01E04 suffix, got %q", k4)
	}
}

func TestResolveKey_EpisodeMissingNumbersDefaultToZero(t *testing.T) {
	item := models.RawCalendarItem{Type: models.MediaEpisode, SeriesTitle: "Lost"}
	if key := ResolveKey(item); key != "episode:lost:S00E00" {
		t.Errorf("Expected zero-padded defaults, got %q", key)
	}
}

func TestResolveKey_EpisodeFallbackUsesSeriesTitle(t *testing.T) {
	item := models.RawCalendarItem{
		Type:          models.MediaEpisode,
		SeriesTitle:   "The Expanse",
		EpisodeTitle:  "Dulcinea",
		SeasonNumber:  1,
		EpisodeNumber: 1,
	}
	if key := ResolveKey(item); key != "episode:the expanse:S01E01" {
		t.Errorf("Expected series-title fallback, got %q", key)
	}
}

func TestResolveKey_AlbumPriorityChain(t *testing.T) {
	withMBID := models.RawCalendarItem{Type: models.MediaAlbum, MusicBrainzID: "abc-123", ArtistName: "Foo"}
	fallback := models.RawCalendarItem{
		Type:        models.MediaAlbum,
		ArtistName:  "Daft Punk",
		AlbumTitle:  "Discovery",
		ReleaseDate: "2001-03-12T00:00:00Z",
	}

	if key := ResolveKey(withMBID); key != "album:mbz:abc-123" {
		t.Errorf("Expected musicbrainz key, got %q", key)
	}
	if key := ResolveKey(fallback); key != "album:daft punk:discovery:2001-03-12" {
		t.Errorf("Expected artist+album+date fallback, got %q", key)
	}
}

func TestResolveKey_AlbumDatePriority(t *testing.T) {
	// releaseDate outranks airDate and airDateUtc for albums.
	item := models.RawCalendarItem{
		Type:        models.MediaAlbum,
		ArtistName:  "a",
		AlbumTitle:  "b",
		ReleaseDate: "2025-01-01",
		AirDate:     "2025-02-02",
		AirDateUTC:  "2025-03-03",
	}
	if key := ResolveKey(item); key != "album:a:b:2025-01-01" {
		t.Errorf("Expected releaseDate to win, got %q", key)
	}
}

func TestResolveKey_BookPriorityChain(t *testing.T) {
	withID := models.RawCalendarItem{Type: models.MediaBook, GoodreadsID: 777, AuthorName: "x"}
	fallback := models.RawCalendarItem{
		Type:       models.MediaBook,
		AuthorName: "Ann Leckie",
		BookTitle:  "Ancillary Justice",
		AirDateUTC: "2013-10-01T00:00:00Z",
	}

	if key := ResolveKey(withID); key != "book:goodreads:777" {
		t.Errorf("Expected goodreads key, got %q", key)
	}
	if key := ResolveKey(fallback); key != "book:ann leckie:ancillary justice:2013-10-01" {
		t.Errorf("Expected author+book+date fallback, got %q", key)
	}
}

func TestResolveKey_UnknownTypeNeverMerges(t *testing.T) {
	a := models.RawCalendarItem{Type: "mixtape", ID: 1, InstanceID: "inst-a", Title: "Same"}
	b := models.RawCalendarItem{Type: "mixtape", ID: 1, InstanceID: "inst-b", Title: "Same"}

	if ResolveKey(a) == ResolveKey(b) {
		t.Error("Unknown types must key per (id, instance) and never merge across instances")
	}
	if key := ResolveKey(a); key != "unknown:1:inst-a" {
		t.Errorf("Expected unknown key format, got %q", key)
	}
}

func TestResolveKey_TotalAndIdempotent(t *testing.T) {
	items := []models.RawCalendarItem{
		{},
		{Type: models.MediaMovie},
		{Type: models.MediaEpisode},
		{Type: models.MediaAlbum},
		{Type: models.MediaBook},
		{Type: "other", ID: 9, InstanceID: "i"},
	}
	for _, item := range items {
		first := ResolveKey(item)
		if first == "" {
			t.Errorf("ResolveKey must never return empty (item type %q)", item.Type)
		}
		if second := ResolveKey(item); second != first {
			t.Errorf("ResolveKey must be idempotent: %q then %q", first, second)
		}
	}
}

func TestDatePart(t *testing.T) {
	cases := map[string]string{
		"2025-03-15T09:00:00Z": "2025-03-15",
		"2025-03-15 09:00:00":  "2025-03-15",
		"2025-03-15":           "2025-03-15",
		"":                     "",
	}
	for in, want := range cases {
		if got := datePart(in); got != want {
			t.Errorf("datePart(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFirstDate(t *testing.T) {
	if got := firstDate("", "b", "c"); got != "b" {
		t.Errorf("Expected first non-empty candidate, got %q", got)
	}
	if got := firstDate("", "", ""); got != "" {
		t.Errorf("Expected empty for no candidates, got %q", got)
	}
}
