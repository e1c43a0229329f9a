package common

import (
	"context"
	"testing"
)

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-1")
	if got := CorrelationIDFromContext(ctx); got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
}

func TestCorrelationID_Absent(t *testing.T) {
	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}

func TestLoggerFromContext(t *testing.T) {
	base := NewSilentLogger()
	if got := LoggerFromContext(context.Background(), base); got != base {
		t.Error("expected base logger without correlation id")
	}
	tagged := LoggerFromContext(WithCorrelationID(context.Background(), "req-2"), base)
	if tagged == base {
		t.Error("expected tagged logger with correlation id")
	}
}
