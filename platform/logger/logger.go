// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return l.WithRequestID(requestID)
	}

	return l
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// HTTPError logs an HTTP error
func (l *Logger) HTTPError(method, path string, status int, err error, clientIP string) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("client_ip", clientIP),
	)
}

// CatalogMutation logs an accepted catalog mutation and its result.
func (l *Logger) CatalogMutation(op, name, result string, viewSize int) {
	l.Info("catalog_mutation",
		slog.String("op", op),
		slog.String("product", name),
		slog.String("result", result),
		slog.Int("valid_view_size", viewSize),
	)
}

// SubscriberEvent logs subscriber registry changes.
func (l *Logger) SubscriberEvent(event, subscriberID string, total int) {
	l.Info("subscriber_event",
		slog.String("event", event),
		slog.String("subscriber_id", subscriberID),
		slog.Int("subscribers", total),
	)
}

// BroadcastEvent logs a catalog broadcast fanout.
func (l *Logger) BroadcastEvent(items, delivered, dropped int) {
	l.Info("broadcast",
		slog.Int("items", items),
		slog.Int("delivered", delivered),
		slog.Int("dropped", dropped),
	)
}

// EmailEvent logs outbound email activity.
func (l *Logger) EmailEvent(kind, toEmail string, err error) {
	if err != nil {
		l.Error("email_event",
			slog.String("kind", kind),
			slog.String("to", toEmail),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Info("email_event",
		slog.String("kind", kind),
		slog.String("to", toEmail),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
