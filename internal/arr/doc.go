// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package arr implements REST API clients for Sonarr, Radarr, Lidarr, and
// Readarr calendar feeds, plus the Manager that aggregates them.
//
// Each client maps its service's wire format into the unified
// models.RawCalendarItem. Clients are rate limited per instance and wrapped
// in a circuit breaker so one failing instance cannot degrade the rest of
// the aggregation.
package arr
