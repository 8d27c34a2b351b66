// Package cache implements the two-tier media cache serving cover art and
// other images.
//
// # Tiers
//
// The distributed tier (Redis) is shared by all server instances and holds
// entries for a fixed six hours. The process-local tier (LocalLRU) is
// private to one instance, bounded by a byte quota, and slides each
// entry's expiry on access. A distributed-tier hit is written through to
// the local tier, so repeated requests on one instance stop paying the
// Redis round trip.
//
// # Resolution order
//
//	key := cache.Key(sourceURL)       // sha256 of the source URL, namespaced
//	distributed -> local -> blob store origin
//
// After an origin fetch, both tiers are populated by a detached goroutine;
// the in-flight response never waits for population and population
// failures are logged and dropped. There is deliberately no request
// coalescing on concurrent misses: cache writes for a given URL are
// byte-identical, so redundant origin fetches are an accepted inefficiency
// rather than a correctness problem.
//
// # Failure policy
//
// An unreachable distributed tier degrades silently to a cache miss. Only
// origin (blob store) failures surface to the caller.
package cache
