// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package services

import (
	"context"
)

// ContextServer matches *arr.Manager's Serve method without importing the
// arr package.
type ContextServer interface {
	Serve(ctx context.Context) error
}

// RefreshService wraps the periodic calendar refresh worker as a supervised
// service. The manager's Serve already follows the suture.Service pattern:
// it runs the refresh ticker loop and returns ctx.Err() on cancellation.
type RefreshService struct {
	manager ContextServer
	name    string
}

// NewRefreshService creates a refresh worker service wrapper.
func NewRefreshService(manager ContextServer) *RefreshService {
	return &RefreshService{
		manager: manager,
		name:    "calendar-refresh",
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	return s.manager.Serve(ctx)
}

// String implements fmt.Stringer for supervisor log messages.
func (s *RefreshService) String() string {
	return s.name
}
