// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package models defines the shared data structures for Almanarr.
//
// The calendar model family:
//   - RawCalendarItem: one release record from one service instance
//   - DeduplicatedCalendarItem: one real-world content item across instances
//   - FetchResult / InstanceResult: what the upstream fetch layer delivers
//
// The API family:
//   - APIResponse: standard response wrapper
//   - APIError: error details
//   - HealthStatus / RefreshStatus: operational surfaces
//
// Instances:
//   - Instance: one configured service deployment
//   - InstanceOption: {value,label} pairs for filter controls
package models
