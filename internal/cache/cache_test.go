// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.(string) != "v" {
		t.Errorf("got %v, want v", got)
	}
}

func TestGetMissing(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	if _, ok := c.Get("absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestExpiration(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.SetWithTTL("k", 42, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed on Get, len = %d", c.Len())
	}
}

func TestDelete(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("k", 1)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("deleted key should miss")
	}
	// Deleting again is a no-op.
	c.Delete("k")
}

func TestClear(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("len after Clear = %d, want 0", c.Len())
	}
}

func TestOverwrite(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("k", 1)
	c.Set("k", 2)
	got, ok := c.Get("k")
	if !ok || got.(int) != 2 {
		t.Errorf("got %v %v, want 2 true", got, ok)
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	type params struct {
		Start string
		End   string
	}
	a := GenerateKey("calendar", params{Start: "2025-03-01", End: "2025-03-31"})
	b := GenerateKey("calendar", params{Start: "2025-03-01", End: "2025-03-31"})
	if a != b {
		t.Errorf("same params produced different keys: %s vs %s", a, b)
	}
	diff := GenerateKey("calendar", params{Start: "2025-04-01", End: "2025-04-30"})
	if a == diff {
		t.Error("different params produced the same key")
	}
}

func TestStopIdempotent(t *testing.T) {
	c := New(time.Minute)
	c.Stop()
	c.Stop()
}
