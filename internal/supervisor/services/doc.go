// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

/*
Package services provides suture.Service wrappers for Almanarr components.

Each wrapper adapts a component's lifecycle to suture's context-aware Serve
pattern:

  - HTTPServerService wraps *http.Server, translating the blocking
    ListenAndServe pattern into Serve with graceful Shutdown draining.
  - WebSocketHubService delegates to the hub's RunWithContext, which already
    follows the Serve pattern.
  - RefreshService delegates to the refresh manager's Serve method.

Return values determine supervisor behavior: nil stops the service for good,
an error requests a restart, and ctx.Err() marks a requested shutdown.
*/
package services
