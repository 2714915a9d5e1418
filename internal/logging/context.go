package logging

import (
	"context"
	"log/slog"
)

type callLoggerContextKey struct{}

// FromContext returns the logger carried by ctx, or nil if none is present.
// The coalescer falls back to its own configured logger in that case.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(callLoggerContextKey{}).(*slog.Logger)
	if !ok {
		return nil
	}
	return logger
}

// AddToContext returns a child context carrying logger. Coalesced calls made
// with the returned context log through it instead of the instance logger.
func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, callLoggerContextKey{}, logger)
}

// AddMetaToContext attaches the given attributes to the logger carried by ctx
// and returns a child context carrying the enriched logger.
func AddMetaToContext(ctx context.Context, args ...slog.Attr) context.Context {
	logger := FromContext(ctx)
	if logger == nil {
		logger = slog.Default()
	}

	// Convert our []slog.Attr to []any
	anySlice := make([]any, len(args))
	for i, arg := range args {
		anySlice[i] = arg
	}

	return AddToContext(ctx, logger.With(anySlice...))
}
