package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	requestIDKey     contextKey = "request_id"
)

// GenerateCorrelationID returns the first 8 characters of a fresh UUID.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the global logger enriched with the ids carried by ctx.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger()
	if ctx == nil {
		return &l
	}
	c := l.With()
	if id := CorrelationIDFromContext(ctx); id != "" {
		c = c.Str("correlation_id", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		c = c.Str("request_id", id)
	}
	l = c.Logger()
	return &l
}
