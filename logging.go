package recoal

import (
	"context"
	"log/slog"

	"github.com/aldhosutra/recoal/internal/logging"
)

// ContextWithLogger returns a child context carrying logger. Coalesced calls
// made with the returned context log through it instead of the instance
// logger configured with WithLogger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.AddToContext(ctx, logger)
}

// ContextWithLogAttrs attaches the given attributes to the logger carried by
// ctx, or to slog.Default() if the context carries none, and returns a child
// context carrying the enriched logger.
func ContextWithLogAttrs(ctx context.Context, args ...slog.Attr) context.Context {
	return logging.AddMetaToContext(ctx, args...)
}
