// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("empty context correlation ID = %q, want empty", got)
	}

	ctx = ContextWithCorrelationID(ctx, "abc123")
	if got := CorrelationIDFromContext(ctx); got != "abc123" {
		t.Errorf("correlation ID = %q, want abc123", got)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("request ID = %q, want req-1", got)
	}
}

func TestGenerateCorrelationID(t *testing.T) {
	a := GenerateCorrelationID()
	b := GenerateCorrelationID()
	if a == b {
		t.Error("consecutive correlation IDs should differ")
	}
	if len(a) != 8 {
		t.Errorf("correlation ID length = %d, want 8", len(a))
	}
}

func TestContextWithNewCorrelationID(t *testing.T) {
	ctx := ContextWithNewCorrelationID(context.Background())
	if CorrelationIDFromContext(ctx) == "" {
		t.Error("expected a generated correlation ID")
	}
}

func TestCtxAnnotatesIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	defer SetLogger(prev)

	Init(Config{Level: "debug", Format: "json", Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-9")
	ctx = ContextWithCorrelationID(ctx, "corr-9")

	Ctx(ctx).Info().Msg("annotated")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v\noutput: %s", err, buf.String())
	}
	if entry["request_id"] != "req-9" {
		t.Errorf("request_id = %v, want req-9", entry["request_id"])
	}
	if entry["correlation_id"] != "corr-9" {
		t.Errorf("correlation_id = %v, want corr-9", entry["correlation_id"])
	}
}

func TestCtxWithoutIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	defer SetLogger(prev)

	Init(Config{Level: "debug", Format: "json", Output: &buf})

	Ctx(context.Background()).Info().Msg("plain")

	out := buf.String()
	if strings.Contains(out, "request_id") {
		t.Error("request_id should be absent without context value")
	}
	if strings.Contains(out, "correlation_id") {
		t.Error("correlation_id should be absent without context value")
	}
}
