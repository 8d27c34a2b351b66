package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrBadSourceURL indicates a source URL that cannot be resolved to a
// container and object key. It is a client error, not a cache miss.
var ErrBadSourceURL = errors.New("source URL must contain a container and an object key")

// Client is the blob store capability consumed by the media paths.
// Implementations must be safe for concurrent use.
type Client interface {
	// DownloadAll fetches the entire object into memory.
	DownloadAll(ctx context.Context, container, key string) ([]byte, error)

	// DownloadRange fetches exactly the byte window [start, end] (inclusive).
	DownloadRange(ctx context.Context, container, key string, start, end int64) ([]byte, error)

	// Length returns the object's total size in bytes.
	Length(ctx context.Context, container, key string) (int64, error)

	// Upload stores data under container/key with the given content type.
	Upload(ctx context.Context, container, key string, data []byte, contentType string) error
}

// ParseSourceURL resolves a media source URL into a container and object
// key. The URL path's first segment names the container; the remainder is
// the object key. A path with fewer than two segments is rejected with
// ErrBadSourceURL.
func ParseSourceURL(sourceURL string) (container, key string, err error) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid source URL %q: %w", sourceURL, err)
	}

	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return "", "", ErrBadSourceURL
	}

	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrBadSourceURL
	}

	return parts[0], parts[1], nil
}
