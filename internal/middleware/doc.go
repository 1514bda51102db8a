// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package middleware provides HTTP middleware shared by all API routes:
// request ID propagation, Prometheus instrumentation, and gzip response
// compression. Middleware here uses the http.HandlerFunc form; chi router
// middleware (CORS, rate limiting) is configured in the api package.
package middleware
