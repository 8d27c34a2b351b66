package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// KeyNamespace prefixes every image cache key so the distributed tier can
// be inspected and cleared without touching unrelated keys.
const KeyNamespace = "soundstash:img:"

// ErrCacheMiss indicates the key is absent from a cache tier.
var ErrCacheMiss = errors.New("cache miss")

// Key derives the deterministic cache key for a media source URL.
func Key(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return KeyNamespace + hex.EncodeToString(sum[:])
}

// ETag derives a stable entity tag for a media source URL. The tag depends
// only on the URL, matching the cache key derivation: the same source URL
// always serves the same bytes.
func ETag(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

// Priority controls eviction order in the process-local tier. Normal
// entries are evicted before high-priority ones.
type Priority int

const (
	// PriorityNormal marks entries evicted first under memory pressure.
	PriorityNormal Priority = iota
	// PriorityHigh marks entries retained longest under memory pressure.
	PriorityHigh
)

// Local is the process-local cache capability: private to one server
// instance, sliding expiry per entry. Implementations must be safe for
// concurrent use.
type Local interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, slidingTTL time.Duration, priority Priority)
}

// Distributed is the shared cache capability reachable by all server
// instances. Implementations must be safe for concurrent use.
type Distributed interface {
	// Get returns the cached bytes or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key with a fixed TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key.
	Delete(ctx context.Context, key string) error
	// ScanKeys returns all keys matching a glob pattern.
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
}
