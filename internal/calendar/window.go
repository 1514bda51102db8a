// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package calendar

import (
	"time"
)

// Window is the query and render window for one month view: the month itself
// plus the surrounding days needed to fill whole Sunday-to-Saturday weeks.
type Window struct {
	MonthStart    time.Time
	MonthEnd      time.Time
	CalendarStart time.Time
	CalendarEnd   time.Time
}

// MonthWindow computes the window for the month containing anchor. All dates
// are midnight UTC. CalendarStart is MonthStart shifted back to the most
// recent Sunday; CalendarEnd is MonthEnd shifted forward to the next
// Saturday. The resulting span is always a whole number of 7-day weeks,
// between 28 and 42 days, and fully contains the month.
func MonthWindow(anchor time.Time) Window {
	anchor = anchor.UTC()
	monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	// time.Weekday numbers Sunday as 0, matching the grid's first column.
	calendarStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	calendarEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	return Window{
		MonthStart:    monthStart,
		MonthEnd:      monthEnd,
		CalendarStart: calendarStart,
		CalendarEnd:   calendarEnd,
	}
}

// DaysInView lists every date from CalendarStart to CalendarEnd inclusive,
// stepping one UTC day at a time.
func (w Window) DaysInView() []time.Time {
	days := make([]time.Time, 0, 42)
	for d := w.CalendarStart; !d.After(w.CalendarEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether day (truncated to its UTC date) falls inside the
// render window.
func (w Window) Contains(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(w.CalendarStart) && !d.After(w.CalendarEnd)
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats a date as the bucket map key (YYYY-MM-DD, UTC).
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
