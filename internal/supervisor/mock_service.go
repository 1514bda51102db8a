// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// MockService is a suture.Service test double. It fails its next N Serve
// calls when armed via SetFailCount, then settles into blocking until the
// context is canceled.
type MockService struct {
	name       string
	failsLeft  atomic.Int32
	startCount atomic.Int32
}

// NewMockService creates a mock service for supervisor tests.
func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// Serve implements suture.Service.
func (m *MockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)

	if m.failsLeft.Add(-1) >= 0 {
		return errors.New("simulated failure")
	}

	<-ctx.Done()
	return ctx.Err()
}

// SetFailCount arms the next n Serve calls to fail.
func (m *MockService) SetFailCount(n int) {
	m.failsLeft.Store(int32(n))
}

// StartCount returns how many times Serve was called.
func (m *MockService) StartCount() int32 {
	return m.startCount.Load()
}

// String implements fmt.Stringer for supervisor log messages.
func (m *MockService) String() string {
	return m.name
}
