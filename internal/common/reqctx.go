package common

import "context"

type contextKey int

const correlationIDKey contextKey = iota

// WithCorrelationID stores a request correlation id in the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext retrieves the correlation id, or "" if absent.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// LoggerFromContext returns l tagged with the context's correlation id, if any.
func LoggerFromContext(ctx context.Context, l *Logger) *Logger {
	if id := CorrelationIDFromContext(ctx); id != "" {
		return l.WithCorrelationId(id)
	}
	return l
}
