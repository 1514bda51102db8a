// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

/*
Package supervisor provides process supervision for Almanarr using suture v4.

The tree organizes the long-running services into two layers for failure
isolation:

	RootSupervisor ("almanarr")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   └── RefreshService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crash in the refresh worker or the WebSocket hub restarts that layer
independently; the HTTP server keeps serving cached calendar data while the
messaging layer recovers.

Crashed services restart automatically with suture's failure counting and
exponential backoff. Context cancellation triggers an orderly shutdown, with
UnstoppedServiceReport available for debugging hangs. Supervision events are
logged through slog via the sutureslog adapter, which the logging package
bridges into zerolog.

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return nil for a clean stop (no restart), an error to request a restart, or
ctx.Err() after a requested shutdown.
*/
package supervisor
