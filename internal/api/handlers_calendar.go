// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/almanarr/internal/calendar"
	"github.com/tomtom215/almanarr/internal/models"
)

// Calendar handles GET /api/v1/calendar.
//
// Query parameters:
//   - start, end: window bounds (YYYY-MM-DD), defaulting to the current
//     month's Sunday-aligned render window
//   - service: service filter (sonarr/radarr/lidarr/readarr or "all")
//   - instance: instance ID filter (or "all")
//   - search: case-insensitive substring match across title fields
//   - unmonitored: include unmonitored items (defaults from config)
//
// Items are fetched per instance, filtered, deduplicated across instances,
// and bucketed by UTC date.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	win := calendar.MonthWindow(started.UTC())
	start, err := parseDateParam(r, "start", win.CalendarStart)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
		return
	}
	end, err := parseDateParam(r, "end", win.CalendarEnd)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, CodeValidationError,
			fmt.Sprintf("end %s precedes start %s", end.Format(dateLayout), start.Format(dateLayout)), nil)
		return
	}

	filters, ok := h.parseFilters(w, r)
	if !ok {
		return
	}

	result, cached := h.manager.FetchWindow(r.Context(), start, end, filters.IncludeUnmonitored)
	if msg := allInstancesFailed(result); msg != "" {
		respondError(w, http.StatusBadGateway, CodeUpstreamError, msg, nil)
		return
	}

	filtered := calendar.Apply(result.Aggregated, filters)
	deduped := calendar.Deduplicate(filtered)

	resp := models.CalendarResponse{
		EventsByDate: calendar.Bucket(deduped),
		TotalItems:   len(deduped),
		RawItems:     len(filtered),
		Start:        calendar.DateKey(start),
		End:          calendar.DateKey(end),
	}
	respondSuccess(w, http.StatusOK, resp, time.Since(started), cached)
}

// CalendarMonth handles GET /api/v1/calendar/month.
//
// Query parameters:
//   - month: target month (YYYY-MM), defaulting to the current month
//   - selected: optionally selected date (YYYY-MM-DD), must fall inside the
//     month's render window
//   - plus the same filter parameters as /calendar
//
// The response is the full month grid: the Sunday-aligned day list, bucketed
// events, and the selection. The view-state coordinator owns the derivation:
// without an explicit selected param it picks the default selection (today
// when visible in the window, else the first day in view).
func (h *Handler) CalendarMonth(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	anchor, err := parseMonthParam(r, "month", started.UTC())
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
		return
	}

	filters, ok := h.parseFilters(w, r)
	if !ok {
		return
	}

	view := calendar.NewViewState(anchor)
	view.SetSearchTerm(filters.SearchTerm)
	view.SetServiceFilter(filters.ServiceFilter)
	view.SetInstanceFilter(filters.InstanceFilter)
	view.SetIncludeUnmonitored(filters.IncludeUnmonitored)
	win := view.Window()

	if sel, err := parseDateParam(r, "selected", time.Time{}); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
		return
	} else if !sel.IsZero() {
		if !win.Contains(sel) {
			respondError(w, http.StatusBadRequest, CodeValidationError,
				fmt.Sprintf("selected date %s outside calendar window", sel.Format(dateLayout)), nil)
			return
		}
		view.SelectDate(sel)
	}

	result, cached := h.manager.FetchWindow(r.Context(), win.CalendarStart, win.CalendarEnd, filters.IncludeUnmonitored)
	if msg := allInstancesFailed(result); msg != "" {
		respondError(w, http.StatusBadGateway, CodeUpstreamError, msg, nil)
		return
	}

	snap := view.Derive(result.Aggregated)
	dayKeys := make([]string, 0, len(snap.DaysInView))
	for _, d := range snap.DaysInView {
		dayKeys = append(dayKeys, calendar.DateKey(d))
	}
	selected, _ := view.SelectedDate()

	resp := models.CalendarResponse{
		EventsByDate: snap.EventsByDate,
		Days:         dayKeys,
		SelectedDate: calendar.DateKey(selected),
		TotalItems:   snap.TotalItems,
		RawItems:     snap.RawItems,
		Start:        calendar.DateKey(win.CalendarStart),
		End:          calendar.DateKey(win.CalendarEnd),
	}
	respondSuccess(w, http.StatusOK, resp, time.Since(started), cached)
}

// RefreshStatus handles GET /api/v1/calendar/status, reporting the background
// refresh worker state.
func (h *Handler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	respondSuccess(w, http.StatusOK, h.manager.Status(), time.Since(started), false)
}

// TriggerRefresh handles POST /api/v1/calendar/refresh. The refresh runs
// asynchronously; a trigger is rejected when one is already queued.
func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	if !h.manager.TriggerRefresh() {
		respondError(w, http.StatusConflict, CodeRefreshPending, "a refresh is already pending", nil)
		return
	}
	respondSuccess(w, http.StatusAccepted, map[string]bool{"triggered": true}, time.Since(started), false)
}

// parseFilters extracts the shared filter parameters. On validation failure
// it writes the error response and returns ok=false.
func (h *Handler) parseFilters(w http.ResponseWriter, r *http.Request) (calendar.Filters, bool) {
	filters := calendar.DefaultFilters()
	filters.SearchTerm = r.URL.Query().Get("search")
	filters.IncludeUnmonitored = parseBoolParam(r, "unmonitored", h.config.Refresh.IncludeUnmonitored)

	if service := r.URL.Query().Get("service"); service != "" {
		if service != calendar.FilterAll && !models.ServiceType(service).Valid() {
			respondError(w, http.StatusBadRequest, CodeValidationError,
				fmt.Sprintf("unknown service %q", sanitizeLogValue(service)), nil)
			return calendar.Filters{}, false
		}
		filters.ServiceFilter = service
	}
	if instance := r.URL.Query().Get("instance"); instance != "" {
		filters.InstanceFilter = instance
	}
	return filters, true
}

// allInstancesFailed returns a describing message when every configured
// instance errored, meaning there is no data to serve at all. Partial
// failures return "" and are served from the instances that responded.
func allInstancesFailed(result *models.FetchResult) string {
	if len(result.Instances) == 0 {
		return ""
	}
	for _, inst := range result.Instances {
		if inst.Err == "" {
			return ""
		}
	}
	return fmt.Sprintf("all %d upstream instances failed", len(result.Instances))
}
