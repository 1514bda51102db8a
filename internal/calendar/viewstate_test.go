// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package calendar

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/almanarr/internal/models"
)

func testViewState(anchor, today time.Time) *ViewState {
	v := NewViewState(anchor)
	v.now = func() time.Time { return today }
	v.resetSelection()
	return v
}

func TestViewState_DefaultSelectionIsTodayWhenVisible(t *testing.T) {
	today := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
	v := testViewState(today, today)

	selected, ok := v.SelectedDate()
	if !ok {
		t.Fatal("Expected a selection")
	}
	if DateKey(selected) != "2025-03-14" {
		t.Errorf("Expected today selected, got %s", DateKey(selected))
	}
}

func TestViewState_DefaultSelectionFallsBackToFirstDay(t *testing.T) {
	anchor := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	v := testViewState(anchor, today)

	selected, ok := v.SelectedDate()
	if !ok {
		t.Fatal("Expected a selection")
	}
	if !selected.Equal(v.Window().CalendarStart) {
		t.Errorf("Expected first day in view, got %s", DateKey(selected))
	}
}

func TestViewState_MonthNavigationRederivesSelection(t *testing.T) {
	today := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	v := testViewState(today, today)
	v.SelectDate(time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC))

	v.NextMonth()
	if got := DateKey(v.CurrentMonth()); got[:7] != "2025-04" {
		t.Errorf("Expected April anchor, got %s", got)
	}
	selected, _ := v.SelectedDate()
	// Today is not in April's window; selection falls back to the first day.
	if !selected.Equal(v.Window().CalendarStart) {
		t.Errorf("Navigation must clear and re-derive selection, got %s", DateKey(selected))
	}

	v.PreviousMonth()
	selected, _ = v.SelectedDate()
	if DateKey(selected) != "2025-03-14" {
		t.Errorf("Back in March, today should be selected again, got %s", DateKey(selected))
	}
}

// Anchors on day 29..31 must still step one month at a time: a raw Jan 31
// anchor stepped forward would otherwise normalize "Feb 31" to March 3 and
// skip February entirely.
func TestViewState_MonthNavigationFromLateMonthAnchor(t *testing.T) {
	today := time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC)

	v := testViewState(today, today)
	if got := DateKey(v.CurrentMonth()); got != "2025-01-01" {
		t.Fatalf("Anchor must normalize to first of month, got %s", got)
	}

	v.NextMonth()
	if got := DateKey(v.CurrentMonth()); got != "2025-02-01" {
		t.Errorf("NextMonth from Jan 31 must land in February, got %s", got)
	}

	v = testViewState(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), today)
	v.PreviousMonth()
	if got := DateKey(v.CurrentMonth()); got != "2025-02-01" {
		t.Errorf("PreviousMonth from Mar 31 must land in February, got %s", got)
	}

	// A full year of forward steps from a day-31 anchor hits every month once.
	v = testViewState(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), today)
	for month := time.January; month <= time.December; month++ {
		v.NextMonth()
		want := time.Date(2025, month, 1, 0, 0, 0, 0, time.UTC)
		if !v.CurrentMonth().Equal(want) {
			t.Fatalf("Step %d landed on %s, want %s", int(month), DateKey(v.CurrentMonth()), DateKey(want))
		}
	}
}

func TestViewState_GoToday(t *testing.T) {
	today := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	v := testViewState(time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), today)

	v.GoToday()
	if got := DateKey(v.CurrentMonth()); got != "2025-03-01" {
		t.Errorf("Expected anchor on today's month, got %s", got)
	}
	selected, _ := v.SelectedDate()
	if DateKey(selected) != "2025-03-14" {
		t.Errorf("Expected today selected, got %s", DateKey(selected))
	}
}

func TestViewState_FilterSettersAndReset(t *testing.T) {
	v := NewViewState(time.Now())

	v.SetSearchTerm("dune")
	v.SetServiceFilter("radarr")
	v.SetInstanceFilter("radarr-1")
	v.SetIncludeUnmonitored(false)

	f := v.Filters()
	if f.SearchTerm != "dune" || f.ServiceFilter != "radarr" ||
		f.InstanceFilter != "radarr-1" || f.IncludeUnmonitored {
		t.Errorf("Setters did not apply: %+v", f)
	}

	v.ResetFilters()
	if v.Filters() != DefaultFilters() {
		t.Errorf("ResetFilters must restore defaults in one action: %+v", v.Filters())
	}
}

func TestViewState_DeriveRunsFullPipeline(t *testing.T) {
	today := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	v := testViewState(today, today)
	v.SetServiceFilter("radarr")

	raw := []models.RawCalendarItem{
		{Service: models.ServiceRadarr, Type: models.MediaMovie, TMDBID: 603, Title: "The Matrix", InstanceID: "a", InstanceName: "A", ReleaseDate: "2025-03-15T09:00:00Z"},
		{Service: models.ServiceRadarr, Type: models.MediaMovie, TMDBID: 603, Title: "The Matrix", InstanceID: "b", InstanceName: "B", ReleaseDate: "2025-03-15T09:00:00Z"},
		{Service: models.ServiceSonarr, Type: models.MediaEpisode, SeriesTitle: "Foundation", InstanceID: "c", AirDateUTC: "2025-03-15T20:00:00Z"},
	}

	snap := v.Derive(raw)
	if snap.RawItems != 3 {
		t.Errorf("RawItems = %d", snap.RawItems)
	}
	if snap.TotalItems != 1 {
		t.Errorf("Expected 1 canonical item after filter+dedupe, got %d", snap.TotalItems)
	}
	day := snap.EventsByDate["2025-03-15"]
	if len(day) != 1 || len(day[0].AllInstances) != 2 {
		t.Fatalf("Expected one merged item with two instances, got %+v", day)
	}
	if len(snap.DaysInView)%7 != 0 {
		t.Errorf("DaysInView must span whole weeks, got %d days", len(snap.DaysInView))
	}
}

// Running the pipeline twice on identical input must produce byte-identical
// results.
func TestViewState_DeriveDeterministic(t *testing.T) {
	today := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	v := testViewState(today, today)

	raw := []models.RawCalendarItem{
		{Service: models.ServiceRadarr, Type: models.MediaMovie, TMDBID: 2, Title: "b", InstanceID: "a", ReleaseDate: "2025-03-15T12:00:00Z"},
		{Service: models.ServiceRadarr, Type: models.MediaMovie, TMDBID: 1, Title: "a", InstanceID: "a", ReleaseDate: "2025-03-15T12:00:00Z"},
		{Service: models.ServiceLidarr, Type: models.MediaAlbum, MusicBrainzID: "m", ArtistName: "x", InstanceID: "b", ReleaseDate: "2025-03-16"},
	}

	first := v.Derive(raw)
	second := v.Derive(raw)
	if !reflect.DeepEqual(first.EventsByDate, second.EventsByDate) {
		t.Error("Identical input must derive identical bucket maps")
	}
}
