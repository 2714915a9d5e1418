package recoal

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aldhosutra/recoal/internal/config"
)

var (
	defaultOnce      sync.Once
	defaultCoalescer *Coalescer
)

// Default returns the process-wide coalescer shared by the package-level
// functions. It is built once, on first use, from the RECOAL_* environment
// variables; unset variables fall back to the documented defaults, and an
// invalid environment is logged and ignored. The default instance is never
// stopped; create your own with New when you need deterministic teardown.
func Default() *Coalescer {
	defaultOnce.Do(func() {
		cfg, err := config.FromEnv()
		if err != nil {
			slog.Default().Warn("Invalid recoal environment config, using defaults", "error", err.Error())
			defaultCoalescer = New()
			return
		}

		defaultCoalescer = New(
			WithTTL(cfg.TTL),
			WithPruneInterval(cfg.PruneInterval),
			WithMaxConcurrent(cfg.MaxConcurrent),
		)
	})
	return defaultCoalescer
}

// Coalesce runs fn through the default coalescer. See Do.
func Coalesce[T any](ctx context.Context, name string, fn func(context.Context) (T, error), args ...any) (T, error) {
	return Do(ctx, Default(), name, fn, args...)
}

// IsCoalesced delegates to the default coalescer.
func IsCoalesced(name string, args ...any) bool {
	return Default().IsCoalesced(name, args...)
}

// Invalidate delegates to the default coalescer.
func Invalidate(name string, args ...any) {
	Default().Invalidate(name, args...)
}

// Clear delegates to the default coalescer.
func Clear() {
	Default().Clear()
}

// Prune delegates to the default coalescer.
func Prune() {
	Default().Prune()
}

// SetKeyGenerator delegates to the default coalescer.
func SetKeyGenerator(generator KeyGenerator) {
	Default().SetKeyGenerator(generator)
}
