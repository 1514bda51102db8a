// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package api provides HTTP handlers for the Almanarr application.
//
// errors.go - Common API error codes
package api

// Error codes carried in the APIError.Code field.
const (
	// CodeValidationError indicates invalid request parameters.
	CodeValidationError = "VALIDATION_ERROR"

	// CodeUpstreamError indicates every configured instance failed to respond.
	CodeUpstreamError = "UPSTREAM_ERROR"

	// CodeNotFound indicates the requested resource does not exist.
	CodeNotFound = "NOT_FOUND"

	// CodeMethodNotAllowed indicates the wrong HTTP method for the endpoint.
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	// CodeRefreshPending indicates a refresh was requested while one is
	// already queued or running.
	CodeRefreshPending = "REFRESH_PENDING"

	// CodeServiceUnavailable indicates a required subsystem is not ready.
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
