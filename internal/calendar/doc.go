// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package calendar implements the multi-instance calendar aggregation engine:
// content identity resolution, cross-instance deduplication, the filter
// pipeline, date bucketing, calendar window calculation, and the view-state
// coordinator.
//
// Every function in this package is a pure, synchronous transform over
// in-memory slices. Nothing here fetches data, persists state, or holds
// locks; each derivation allocates fresh output structures. Missing fields
// degrade to fallback keys or dropped items rather than errors.
package calendar
