// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package calendar

import (
	"testing"

	"github.com/tomtom215/almanarr/internal/models"
)

func filterFixture() []models.RawCalendarItem {
	return []models.RawCalendarItem{
		{ID: 1, Service: models.ServiceRadarr, InstanceID: "radarr-1", Type: models.MediaMovie, Title: "Dune: Part Two"},
		{ID: 2, Service: models.ServiceRadarr, InstanceID: "radarr-2", Type: models.MediaMovie, Title: "Oppenheimer", Overview: "In the desert of Dune..."},
		{ID: 3, Service: models.ServiceSonarr, InstanceID: "sonarr-1", Type: models.MediaEpisode, SeriesTitle: "Foundation"},
		{ID: 4, Service: models.ServiceLidarr, InstanceID: "lidarr-1", Type: models.MediaAlbum, ArtistName: "Hans Zimmer", AlbumTitle: "Dune Sketchbook"},
	}
}

func ids(items []models.RawCalendarItem) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestApply_DefaultFiltersPassEverything(t *testing.T) {
	items := filterFixture()
	out := Apply(items, DefaultFilters())
	if len(out) != len(items) {
		t.Errorf("Default filters must pass all items, got %d of %d", len(out), len(items))
	}
}

func TestApply_ServiceFilter(t *testing.T) {
	f := DefaultFilters()
	f.ServiceFilter = "radarr"

	out := Apply(filterFixture(), f)
	if len(out) != 2 {
		t.Fatalf("Expected 2 radarr items, got %d (%v)", len(out), ids(out))
	}
	for _, item := range out {
		if item.Service != models.ServiceRadarr {
			t.Errorf("Item %d leaked through service filter", item.ID)
		}
	}
}

func TestApply_InstanceFilter(t *testing.T) {
	f := DefaultFilters()
	f.InstanceFilter = "radarr-2"

	out := Apply(filterFixture(), f)
	if len(out) != 1 || out[0].ID != 2 {
		t.Errorf("Expected only item 2, got %v", ids(out))
	}
}

func TestApply_SearchMatchesAnyTextField(t *testing.T) {
	f := DefaultFilters()
	f.SearchTerm = "dune"

	out := Apply(filterFixture(), f)
	// Title match, overview match, and album title match; Foundation excluded.
	if len(out) != 3 {
		t.Fatalf("Expected 3 matches, got %d (%v)", len(out), ids(out))
	}
	for _, item := range out {
		if item.ID == 3 {
			t.Error("Item with no matching field must be excluded")
		}
	}
}

func TestApply_SearchTrimsAndLowercases(t *testing.T) {
	f := DefaultFilters()
	f.SearchTerm = "  DUNE  "

	out := Apply(filterFixture(), f)
	if len(out) != 3 {
		t.Errorf("Whitespace and case must not affect search, got %d matches", len(out))
	}
}

func TestApply_EmptyFieldsAreNotMatches(t *testing.T) {
	f := DefaultFilters()
	f.SearchTerm = "anything"

	out := Apply([]models.RawCalendarItem{{ID: 9}}, f)
	if len(out) != 0 {
		t.Error("An item with no populated text fields must never match a search")
	}
}

// The stages are a conjunction over independent predicates, so the result is
// invariant to application order.
func TestApply_StageOrderIrrelevant(t *testing.T) {
	items := filterFixture()
	f := DefaultFilters()
	f.ServiceFilter = "radarr"
	f.SearchTerm = "dune"

	combined := Apply(items, f)

	onlyService := DefaultFilters()
	onlyService.ServiceFilter = "radarr"
	onlySearch := DefaultFilters()
	onlySearch.SearchTerm = "dune"

	serviceFirst := Apply(Apply(items, onlyService), onlySearch)
	searchFirst := Apply(Apply(items, onlySearch), onlyService)

	if len(combined) != len(serviceFirst) || len(combined) != len(searchFirst) {
		t.Fatalf("Stage order changed the result: %d vs %d vs %d",
			len(combined), len(serviceFirst), len(searchFirst))
	}
	for i := range combined {
		if combined[i].ID != serviceFirst[i].ID || combined[i].ID != searchFirst[i].ID {
			t.Errorf("Position %d differs across orderings", i)
		}
	}
}

func TestApply_UnmonitoredFlagIsNotAClientStage(t *testing.T) {
	f := DefaultFilters()
	f.IncludeUnmonitored = false

	items := []models.RawCalendarItem{
		{ID: 1, Service: models.ServiceRadarr, Monitored: true},
		{ID: 2, Service: models.ServiceRadarr, Monitored: false},
	}
	out := Apply(items, f)
	if len(out) != 2 {
		t.Error("IncludeUnmonitored is a fetch parameter and must not drop delivered items")
	}
}
