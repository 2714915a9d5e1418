// Package recoal deduplicates concurrent invocations of the same logical
// operation and caches the result for a short, configurable window.
//
// Near-simultaneous callers requesting the same operation with the same
// arguments share a single underlying execution: the first caller dispatches
// it, everyone else joins the in-flight call and observes the identical
// outcome. Successful results stay cached for the instance TTL, so callers
// arriving shortly after settlement are served without a new dispatch.
// Failures are never cached.
//
// Operations are identified by a name and an argument list. The default key
// derivation serializes the arguments canonically, so structurally equal
// arguments always map to the same key; SetKeyGenerator replaces the
// derivation entirely.
//
// Use an explicit instance when you need independent configuration:
//
//	c := recoal.New(recoal.WithTTL(500 * time.Millisecond))
//	defer c.Stop()
//
//	profile, err := recoal.Do(ctx, c, "fetchProfile", func(ctx context.Context) (*Profile, error) {
//		return client.FetchProfile(ctx, userID)
//	}, userID)
//
// or the shared default instance via the package-level functions:
//
//	profile, err := recoal.Coalesce(ctx, "fetchProfile", fetch, userID)
//
// The default instance is built once, on first use, from the RECOAL_*
// environment variables.
package recoal
