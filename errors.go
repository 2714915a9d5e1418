package recoal

import "errors"

var (
	// ErrConcurrencyLimitExceeded is returned by Do when dispatching a new
	// execution would exceed the configured maximum. The call is rejected
	// immediately; there is no queueing.
	ErrConcurrencyLimitExceeded = errors.New("concurrency limit exceeded")

	// ErrKeyDerivation is returned by Do when no cache key could be derived
	// from the operation name and arguments, e.g. because an argument is not
	// serializable. The operation is never dispatched in that case.
	ErrKeyDerivation = errors.New("failed to derive cache key")
)
