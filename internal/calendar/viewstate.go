// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package calendar

import (
	"time"

	"github.com/tomtom215/almanarr/internal/models"
)

// ViewState owns the mutable calendar view inputs: the current month anchor,
// the selected date, and the filter state. It is a single-owner coordinator:
// all mutation goes through its setters, and everything downstream consumes
// the immutable values it hands out. It is not safe for concurrent use; each
// consumer builds its own ViewState.
type ViewState struct {
	currentMonth time.Time
	selectedDate time.Time
	hasSelection bool
	filters      Filters

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewViewState creates a coordinator anchored on the month containing
// anchor, with today selected if it is visible in the window, else the first
// day in view.
func NewViewState(anchor time.Time) *ViewState {
	v := &ViewState{
		currentMonth: monthStart(anchor),
		filters:      DefaultFilters(),
		now:          time.Now,
	}
	v.resetSelection()
	return v
}

// monthStart truncates t to the first day of its month, midnight UTC. The
// anchor is always held in this form so month stepping with AddDate never
// overflows into the wrong month (Jan 31 + 1 month would normalize to Mar 3).
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Window returns the query window derived from the current month.
func (v *ViewState) Window() Window {
	return MonthWindow(v.currentMonth)
}

// CurrentMonth returns the month anchor, the first day of the current month
// at midnight UTC.
func (v *ViewState) CurrentMonth() time.Time {
	return v.currentMonth
}

// SelectedDate returns the selected date and whether one is set.
func (v *ViewState) SelectedDate() (time.Time, bool) {
	return v.selectedDate, v.hasSelection
}

// SelectDate sets the selected date, truncated to its UTC day.
func (v *ViewState) SelectDate(day time.Time) {
	v.selectedDate = DateOnly(day)
	v.hasSelection = true
}

// Filters returns the current filter state as a value.
func (v *ViewState) Filters() Filters {
	return v.filters
}

// SetSearchTerm updates the free-text search term.
func (v *ViewState) SetSearchTerm(term string) {
	v.filters.SearchTerm = term
}

// SetServiceFilter updates the service filter ("all" or a specific service).
func (v *ViewState) SetServiceFilter(service string) {
	v.filters.ServiceFilter = service
}

// SetInstanceFilter updates the instance filter ("all" or an instance ID).
func (v *ViewState) SetInstanceFilter(instanceID string) {
	v.filters.InstanceFilter = instanceID
}

// SetIncludeUnmonitored updates the unmonitored-inclusion fetch flag.
func (v *ViewState) SetIncludeUnmonitored(include bool) {
	v.filters.IncludeUnmonitored = include
}

// ResetFilters restores every filter dimension to its default in one action.
func (v *ViewState) ResetFilters() {
	v.filters = DefaultFilters()
}

// PreviousMonth moves the anchor back one month and re-derives the selection.
func (v *ViewState) PreviousMonth() {
	v.currentMonth = v.currentMonth.AddDate(0, -1, 0)
	v.resetSelection()
}

// NextMonth moves the anchor forward one month and re-derives the selection.
func (v *ViewState) NextMonth() {
	v.currentMonth = v.currentMonth.AddDate(0, 1, 0)
	v.resetSelection()
}

// GoToday re-anchors on the month containing today and re-derives the
// selection.
func (v *ViewState) GoToday() {
	v.currentMonth = monthStart(v.now())
	v.resetSelection()
}

// resetSelection clears the selection and picks the default for the new
// window: today when visible, otherwise the first day in view.
func (v *ViewState) resetSelection() {
	v.hasSelection = false
	w := v.Window()
	today := DateOnly(v.now())
	if w.Contains(today) {
		v.selectedDate = today
	} else {
		v.selectedDate = w.CalendarStart
	}
	v.hasSelection = true
}

// Snapshot is one complete, freshly allocated derivation pass: the filtered,
// deduplicated, bucketed dataset plus the day list for grid layout.
type Snapshot struct {
	EventsByDate DateBucketMap
	DaysInView   []time.Time
	TotalItems   int
	RawItems     int
}

// Derive runs the full pipeline over a raw snapshot: filter (pre-dedup, so
// instance filtering excludes instances before merge), deduplicate, bucket.
// The pass is synchronous and atomic; it never partially updates a previous
// result.
func (v *ViewState) Derive(raw []models.RawCalendarItem) Snapshot {
	filtered := Apply(raw, v.filters)
	deduped := Deduplicate(filtered)
	return Snapshot{
		EventsByDate: Bucket(deduped),
		DaysInView:   v.Window().DaysInView(),
		TotalItems:   len(deduped),
		RawItems:     len(raw),
	}
}
