package recoal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aldhosutra/recoal/internal/logging"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/semaphore"
)

// call is an in-flight execution shared by every caller that requested the
// same key before it settled. val and err are written once before the
// WaitGroup is done and are only read after.
type call struct {
	wg  sync.WaitGroup
	val any
	err error
}

// Coalescer merges concurrent invocations of the same logical operation into
// one underlying execution and caches successful results for a short window.
// The zero value is not usable; create instances with New.
//
// All methods are safe for concurrent use.
type Coalescer struct {
	ttl           time.Duration
	pruneInterval time.Duration
	maxConcurrent int64
	logger        *slog.Logger

	mu           sync.Mutex
	keyGenerator KeyGenerator
	inflight     map[string]*call

	results *ttlcache.Cache[string, any]
	slots   *semaphore.Weighted

	pruneOnce    sync.Once
	pruneStarted atomic.Bool
	stopOnce     sync.Once
	stopped      chan struct{}
}

// New creates a Coalescer with the given options. Call Stop when the
// instance is no longer needed to release the background pruning goroutine.
func New(options ...Option) *Coalescer {
	coalescer := &Coalescer{
		ttl:           DefaultTTL,
		pruneInterval: DefaultPruneInterval,
		keyGenerator:  defaultKeyGenerator,
		inflight:      make(map[string]*call),
		stopped:       make(chan struct{}),
	}

	for _, option := range options {
		option(coalescer)
	}

	if coalescer.logger == nil {
		coalescer.logger = slog.Default()
	}
	coalescer.logger = coalescer.logger.With("coalescerID", uuid.New().String())

	coalescer.results = ttlcache.New[string, any](
		ttlcache.WithTTL[string, any](coalescer.ttl),
		ttlcache.WithDisableTouchOnHit[string, any](),
	)

	if coalescer.maxConcurrent > 0 {
		coalescer.slots = semaphore.NewWeighted(coalescer.maxConcurrent)
	}

	return coalescer
}

// Do returns the result of fn for the given operation name and arguments.
//
// If an execution for the derived key is already in flight, the caller joins
// it and observes the identical outcome, success or failure. If a cached
// result has not yet expired, it is returned without invoking fn.
// Otherwise fn is dispatched, unless doing so would exceed the configured
// concurrency limit, in which case Do fails with ErrConcurrencyLimitExceeded.
//
// ctx is passed to fn on dispatch. A dispatched execution is never cancelled
// by the coalescer; joined callers wait for settlement regardless of their
// own context.
//
// The same operation name must always be used with the same type T.
func Do[T any](ctx context.Context, c *Coalescer, name string, fn func(context.Context) (T, error), args ...any) (T, error) {
	value, err := c.do(ctx, name, func(ctx context.Context) (any, error) {
		return fn(ctx)
	}, args)
	if err != nil {
		var empty T
		return empty, err
	}
	return value.(T), nil
}

func (c *Coalescer) do(ctx context.Context, name string, fn func(context.Context) (any, error), args []any) (any, error) {
	key, err := c.keyFor(name, args)
	if err != nil {
		return nil, err
	}

	c.startPruning()

	logger := c.loggerFrom(ctx)

	c.mu.Lock()

	if existing, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		logger.DebugContext(ctx, "Joined in-flight call", "key", key)
		existing.wg.Wait()
		return existing.val, existing.err
	}

	if item := c.results.Get(key); item != nil {
		c.mu.Unlock()
		logger.DebugContext(ctx, "Cache hit", "key", key)
		return item.Value(), nil
	}

	if c.slots != nil && !c.slots.TryAcquire(1) {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: at most %d concurrent executions allowed", ErrConcurrencyLimitExceeded, c.maxConcurrent)
	}

	current := &call{}
	current.wg.Add(1)
	c.inflight[key] = current

	c.mu.Unlock()

	logger.DebugContext(ctx, "Cache miss", "key", key)

	defer func() {
		c.mu.Lock()
		// Invalidate or Clear may have detached this call, and a successor
		// may already occupy the key. Only remove our own entry.
		if c.inflight[key] == current {
			delete(c.inflight, key)
		}
		c.mu.Unlock()

		if c.slots != nil {
			c.slots.Release(1)
		}

		current.wg.Done()
	}()

	current.val, current.err = fn(ctx)
	if current.err != nil {
		logger.ErrorContext(ctx, "Coalesced operation failed", "key", key, "error", current.err.Error())
		return nil, current.err
	}

	c.results.Set(key, current.val, ttlcache.DefaultTTL)

	return current.val, nil
}

// IsCoalesced reports whether a call to Do for the given operation name and
// arguments would be served without a new dispatch: either an execution is in
// flight for the derived key, or a cached result has not yet expired.
// It never mutates the caches and never starts the pruning goroutine.
func (c *Coalescer) IsCoalesced(name string, args ...any) bool {
	key, err := c.keyFor(name, args)
	if err != nil {
		return false
	}

	c.mu.Lock()
	_, pending := c.inflight[key]
	c.mu.Unlock()

	if pending {
		return true
	}

	return c.results.Get(key) != nil
}

// Invalidate removes the cached result and the in-flight entry for the given
// operation name and arguments, if present. A detached in-flight execution is
// not cancelled; it runs to settlement, but future lookups no longer see it.
func (c *Coalescer) Invalidate(name string, args ...any) {
	key, err := c.keyFor(name, args)
	if err != nil {
		c.logger.Warn("Could not derive key to invalidate", "name", name, "error", err.Error())
		return
	}

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	c.results.Delete(key)
}

// Clear empties both the result cache and the in-flight table. In-flight
// executions are detached, not cancelled. The pruning goroutine keeps
// running; use Stop to halt it.
func (c *Coalescer) Clear() {
	c.mu.Lock()
	clear(c.inflight)
	c.mu.Unlock()

	c.results.DeleteAll()
}

// Prune sweeps the result cache once, removing every entry older than the
// TTL. In-flight entries are never touched here; they clean themselves up on
// settlement. The sweep only reclaims memory: expired entries are already
// invisible to reads.
func (c *Coalescer) Prune() {
	c.results.DeleteExpired()
}

// SetKeyGenerator replaces the key derivation for all subsequent calls. It
// takes effect immediately and does not re-key existing entries, so callers
// may see cache misses for results stored under the old derivation until
// those expire. A nil generator restores the default derivation.
func (c *Coalescer) SetKeyGenerator(generator KeyGenerator) {
	if generator == nil {
		generator = defaultKeyGenerator
	}

	c.mu.Lock()
	c.keyGenerator = generator
	c.mu.Unlock()
}

// Stop halts the background pruning goroutine. It is idempotent and safe to
// call before the first Do. The instance remains usable afterwards: expiry is
// still enforced on read, only the periodic memory reclamation stops.
func (c *Coalescer) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopped)
	})
}

func (c *Coalescer) keyFor(name string, args []any) (string, error) {
	c.mu.Lock()
	generator := c.keyGenerator
	c.mu.Unlock()

	key, err := generator(name, args)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrKeyDerivation, err.Error())
	}

	return key, nil
}

func (c *Coalescer) loggerFrom(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return c.logger
}

// startPruning lazily starts the periodic sweep, at most once per instance.
func (c *Coalescer) startPruning() {
	c.pruneOnce.Do(func() {
		c.pruneStarted.Store(true)
		go func() {
			ticker := time.NewTicker(c.pruneInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					c.results.DeleteExpired()
				case <-c.stopped:
					return
				}
			}
		}()
	})
}
