package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soundstash/internal/blob"
	"soundstash/internal/logging"
	"soundstash/internal/mediatypes"
	"soundstash/internal/metrics"
)

// Expiry policy per tier. The distributed tier holds entries for a fixed
// window; the local tier slides on every access. Promotions from the
// distributed tier get a shorter sliding window but survive eviction
// longer (high priority) since they are known-hot.
const (
	distributedTTL  = 6 * time.Hour
	localTTL        = time.Hour
	localPromoteTTL = 30 * time.Minute

	// populateTimeout bounds the background population of both tiers.
	populateTimeout = 30 * time.Second
)

// ImageResult is a resolved image ready to serve.
type ImageResult struct {
	Data        []byte
	ContentType string
	ETag        string
}

// Tiered resolves image bytes through two cache tiers before falling back
// to the blob store origin:
//
//	distributed (shared, fixed 6h TTL)
//	  -> process-local (private, sliding 1h TTL)
//	    -> origin fetch + asynchronous population of both tiers
//
// A distributed-tier hit is written through to the local tier so the next
// request on this instance is served without a network round trip.
// Distributed-tier failures are swallowed and treated as misses; the
// caller only ever sees origin errors.
type Tiered struct {
	local Local
	dist  Distributed
	blobs blob.Client
}

// NewTiered builds the two-tier media cache from its injected tiers.
func NewTiered(local Local, dist Distributed, blobs blob.Client) *Tiered {
	return &Tiered{local: local, dist: dist, blobs: blobs}
}

// GetImage resolves the image bytes for a media source URL.
//
// A malformed source URL (fewer than two path segments) fails with
// blob.ErrBadSourceURL before any cache or store call. Origin failures are
// returned as-is; the handler maps them to 404 without distinguishing
// "absent" from "store error".
func (t *Tiered) GetImage(ctx context.Context, sourceURL string) (*ImageResult, error) {
	container, objectKey, err := blob.ParseSourceURL(sourceURL)
	if err != nil {
		return nil, err
	}

	key := Key(sourceURL)
	contentType := mediatypes.ImageContentType(objectKey)
	etag := ETag(sourceURL)

	// Distributed tier first: a hit here also warms the local tier.
	data, err := t.dist.Get(ctx, key)
	switch {
	case err == nil:
		metrics.CacheLookups.WithLabelValues("distributed", "hit").Inc()
		t.local.Set(key, data, localPromoteTTL, PriorityHigh)
		return &ImageResult{Data: data, ContentType: contentType, ETag: etag}, nil
	case errors.Is(err, ErrCacheMiss):
		metrics.CacheLookups.WithLabelValues("distributed", "miss").Inc()
	default:
		// Unreachable distributed tier degrades to a miss, never an error.
		metrics.CacheLookups.WithLabelValues("distributed", "error").Inc()
		logging.Debug("distributed cache lookup failed for %s: %v", key, err)
	}

	if data, ok := t.local.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("local", "hit").Inc()
		return &ImageResult{Data: data, ContentType: contentType, ETag: etag}, nil
	}
	metrics.CacheLookups.WithLabelValues("local", "miss").Inc()

	data, err = t.blobs.DownloadAll(ctx, container, objectKey)
	if err != nil {
		metrics.CacheOriginFetches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("origin fetch failed for %s/%s: %w", container, objectKey, err)
	}
	metrics.CacheOriginFetches.WithLabelValues("ok").Inc()

	// Population is fire-and-forget: the response never waits on it and
	// its failures never surface. Concurrent misses may each populate;
	// writes are idempotent for a given URL so last-write-wins is safe.
	go t.populate(key, data)

	return &ImageResult{Data: data, ContentType: contentType, ETag: etag}, nil
}

// populate writes freshly fetched bytes into both tiers. Runs detached
// from any request, so it carries its own bounded context.
func (t *Tiered) populate(key string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), populateTimeout)
	defer cancel()

	if err := t.dist.Set(ctx, key, data, distributedTTL); err != nil {
		metrics.CachePopulations.WithLabelValues("distributed", "error").Inc()
		logging.Warn("background cache population failed for %s: %v", key, err)
	} else {
		metrics.CachePopulations.WithLabelValues("distributed", "ok").Inc()
	}

	t.local.Set(key, data, localTTL, PriorityNormal)
	metrics.CachePopulations.WithLabelValues("local", "ok").Inc()
}
