// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package arr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/almanarr/internal/config"
	"github.com/tomtom215/almanarr/internal/models"
)

func testInstance(service, url string) config.InstanceConfig {
	return config.InstanceConfig{
		ID:      service + "-test",
		Name:    service + " Test",
		Service: service,
		URL:     url,
		APIKey:  "test-key",
		Enabled: true,
	}
}

func fetchWindow() (time.Time, time.Time) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

func TestSonarrFetchCalendar(t *testing.T) {
	var gotPath, gotKey string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": 101,
			"title": "The One Where It Begins",
			"seasonNumber": 1,
			"episodeNumber": 3,
			"airDate": "2025-03-10",
			"airDateUtc": "2025-03-10T20:00:00Z",
			"overview": "An episode.",
			"monitored": true,
			"series": {
				"title": "Severance",
				"tmdbId": 95396,
				"imdbId": "tt11280740",
				"genres": ["Drama"],
				"status": "continuing",
				"runtime": 50
			}
		}]`))
	}))
	defer srv.Close()

	client, err := New(testInstance("sonarr", srv.URL), 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start, end := fetchWindow()
	items, err := client.FetchCalendar(context.Background(), start, end, true)
	if err != nil {
		t.Fatalf("FetchCalendar: %v", err)
	}

	if gotPath != "/api/v3/calendar" {
		t.Errorf("path = %s, want /api/v3/calendar", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("X-Api-Key = %q, want test-key", gotKey)
	}
	if got := gotQuery["start"]; len(got) != 1 || got[0] != "2025-03-01" {
		t.Errorf("start param = %v, want 2025-03-01", got)
	}
	if got := gotQuery["end"]; len(got) != 1 || got[0] != "2025-03-31" {
		t.Errorf("end param = %v, want 2025-03-31", got)
	}
	if got := gotQuery["unmonitored"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("unmonitored param = %v, want true", got)
	}
	if got := gotQuery["includeSeries"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("includeSeries param = %v, want true", got)
	}

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	item := items[0]
	if item.Type != models.MediaEpisode {
		t.Errorf("type = %q, want episode", item.Type)
	}
	if item.SeriesTitle != "Severance" || item.Title != "Severance" {
		t.Errorf("series title = %q / %q, want Severance", item.SeriesTitle, item.Title)
	}
	if item.EpisodeTitle != "The One Where It Begins" {
		t.Errorf("episode title = %q", item.EpisodeTitle)
	}
	if item.TMDBID != 95396 || item.IMDBID != "tt11280740" {
		t.Errorf("ids = %d / %q", item.TMDBID, item.IMDBID)
	}
	if item.SeasonNumber != 1 || item.EpisodeNumber != 3 {
		t.Errorf("season/episode = %d/%d, want 1/3", item.SeasonNumber, item.EpisodeNumber)
	}
	if item.AirDateUTC != "2025-03-10T20:00:00Z" {
		t.Errorf("airDateUtc = %q", item.AirDateUTC)
	}
	// Episode runtime falls back to the series runtime when unset.
	if item.Runtime != 50 {
		t.Errorf("runtime = %d, want 50", item.Runtime)
	}
	if item.InstanceID != "sonarr-test" || item.InstanceName != "sonarr Test" {
		t.Errorf("provenance = %q / %q", item.InstanceID, item.InstanceName)
	}
	if item.Service != models.ServiceSonarr {
		t.Errorf("service = %q, want sonarr", item.Service)
	}
}

func TestRadarrReleaseDatePriority(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/calendar" {
			t.Errorf("path = %s, want /api/v3/calendar", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Dune", "tmdbId": 603, "inCinemas": "2025-03-01T00:00:00Z",
			 "physicalRelease": "2025-03-15T00:00:00Z", "digitalRelease": "2025-03-10T00:00:00Z", "monitored": true},
			{"id": 2, "title": "Arrival", "inCinemas": "2025-03-05T00:00:00Z",
			 "physicalRelease": "2025-03-20T00:00:00Z", "monitored": false},
			{"id": 3, "title": "Sicario", "inCinemas": "2025-03-07T00:00:00Z", "monitored": true}
		]`))
	}))
	defer srv.Close()

	client, err := New(testInstance("radarr", srv.URL), 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start, end := fetchWindow()
	items, err := client.FetchCalendar(context.Background(), start, end, false)
	if err != nil {
		t.Fatalf("FetchCalendar: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].ReleaseDate != "2025-03-10T00:00:00Z" {
		t.Errorf("digital release should win: %q", items[0].ReleaseDate)
	}
	if items[1].ReleaseDate != "2025-03-20T00:00:00Z" {
		t.Errorf("physical release should beat cinema: %q", items[1].ReleaseDate)
	}
	if items[2].ReleaseDate != "2025-03-07T00:00:00Z" {
		t.Errorf("cinema date is the last fallback: %q", items[2].ReleaseDate)
	}
	if items[0].Type != models.MediaMovie || items[0].MovieTitle != "Dune" {
		t.Errorf("movie mapping: type=%q title=%q", items[0].Type, items[0].MovieTitle)
	}
}

func TestLidarrFetchCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/calendar" {
			t.Errorf("path = %s, want /api/v1/calendar", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": 7,
			"title": "Currents",
			"releaseDate": "2025-03-17T00:00:00Z",
			"monitored": true,
			"foreignAlbumId": "3e6573f2-0605-4e4e-9d06-7e7e3b21f9c1",
			"artist": {"artistName": "Tame Impala", "status": "continuing"}
		}]`))
	}))
	defer srv.Close()

	client, err := New(testInstance("lidarr", srv.URL), 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start, end := fetchWindow()
	items, err := client.FetchCalendar(context.Background(), start, end, true)
	if err != nil {
		t.Fatalf("FetchCalendar: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	item := items[0]
	if item.Type != models.MediaAlbum {
		t.Errorf("type = %q, want album", item.Type)
	}
	if item.AlbumTitle != "Currents" || item.ArtistName != "Tame Impala" {
		t.Errorf("album = %q by %q", item.AlbumTitle, item.ArtistName)
	}
	if item.MusicBrainzID != "3e6573f2-0605-4e4e-9d06-7e7e3b21f9c1" {
		t.Errorf("musicbrainz id = %q", item.MusicBrainzID)
	}
	if item.ReleaseDate != "2025-03-17T00:00:00Z" {
		t.Errorf("releaseDate = %q", item.ReleaseDate)
	}
}

func TestReadarrFetchCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/calendar" {
			t.Errorf("path = %s, want /api/v1/calendar", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": 9,
			"title": "The Way of Kings",
			"releaseDate": "2025-03-22T00:00:00Z",
			"monitored": true,
			"goodreadsId": 7235533,
			"author": {"authorName": "Brandon Sanderson", "status": "continuing"}
		}]`))
	}))
	defer srv.Close()

	client, err := New(testInstance("readarr", srv.URL), 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start, end := fetchWindow()
	items, err := client.FetchCalendar(context.Background(), start, end, true)
	if err != nil {
		t.Fatalf("FetchCalendar: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	item := items[0]
	if item.Type != models.MediaBook {
		t.Errorf("type = %q, want book", item.Type)
	}
	if item.BookTitle != "The Way of Kings" || item.AuthorName != "Brandon Sanderson" {
		t.Errorf("book = %q by %q", item.BookTitle, item.AuthorName)
	}
	if item.GoodreadsID != 7235533 {
		t.Errorf("goodreads id = %d", item.GoodreadsID)
	}
	// Book release dates flow through the airDateUtc field.
	if item.AirDateUTC != "2025-03-22T00:00:00Z" {
		t.Errorf("airDateUtc = %q", item.AirDateUTC)
	}
	if item.ReleaseDate != "" {
		t.Errorf("releaseDate should be empty for books, got %q", item.ReleaseDate)
	}
}

func TestFetchCalendarErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := New(testInstance("sonarr", srv.URL), 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start, end := fetchWindow()
	if _, err := client.FetchCalendar(context.Background(), start, end, true); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestNewUnknownService(t *testing.T) {
	if _, err := New(testInstance("plex", "http://localhost"), 5*time.Second); err == nil {
		t.Fatal("expected error for unknown service")
	}
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := New(testInstance("radarr", srv.URL), 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start, end := fetchWindow()
	for i := 0; i < 3; i++ {
		if _, err := client.FetchCalendar(context.Background(), start, end, true); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	tripped := hits.Load()

	// Breaker is now open; further calls are rejected without reaching
	// the server.
	if _, err := client.FetchCalendar(context.Background(), start, end, true); err == nil {
		t.Fatal("expected open-circuit error")
	}
	if hits.Load() != tripped {
		t.Errorf("server hit after breaker opened: %d hits, want %d", hits.Load(), tripped)
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/system/status" {
			t.Errorf("path = %s, want /api/v3/system/status", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version": "5.0.0"}`))
	}))
	defer srv.Close()

	client, err := New(testInstance("sonarr", srv.URL), 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
