package logger

import (
	"context"
	"log/slog"
)

// contextKey is the private key type for logger context values.
type contextKey struct{}

// WithLogger returns a new context carrying the given logger.
// Pipeline stages use this so every log line for a task carries the
// task and round attributes without threading a logger argument around.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext retrieves the logger stored in the context, falling back to
// the process default logger when none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
