package recoal

import (
	"log/slog"
	"time"
)

const (
	// DefaultTTL is how long a successful result stays valid unless
	// overridden with WithTTL.
	DefaultTTL = 1 * time.Second
	// DefaultPruneInterval is how often the background sweep reclaims
	// expired entries unless overridden with WithPruneInterval.
	DefaultPruneInterval = 60 * time.Second
)

// Option configures a Coalescer created by New.
type Option func(*Coalescer)

// WithTTL sets how long successful results stay cached. Non-positive values
// are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Coalescer) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPruneInterval sets how often the background sweep runs. Non-positive
// values are ignored.
func WithPruneInterval(interval time.Duration) Option {
	return func(c *Coalescer) {
		if interval > 0 {
			c.pruneInterval = interval
		}
	}
}

// WithMaxConcurrent bounds the number of keys with an active underlying
// execution at once. Calls that would exceed the bound fail immediately with
// ErrConcurrencyLimitExceeded. Non-positive values mean unbounded, which is
// the default.
func WithMaxConcurrent(limit int64) Option {
	return func(c *Coalescer) {
		c.maxConcurrent = limit
	}
}

// WithLogger sets the logging sink used when the context does not carry a
// logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coalescer) {
		c.logger = logger
	}
}

// WithKeyGenerator replaces the default key derivation. See SetKeyGenerator.
func WithKeyGenerator(generator KeyGenerator) Option {
	return func(c *Coalescer) {
		if generator != nil {
			c.keyGenerator = generator
		}
	}
}
