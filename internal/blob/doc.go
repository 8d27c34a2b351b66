// Package blob provides access to the object store holding media binaries
// (audio tracks, cover art, snippets).
//
// Media records in the catalog reference their binaries by source URL. The
// URL path's first segment names the storage container and the remainder is
// the object key:
//
//	https://cdn.example.com/covers/artists/0f3e/portrait.jpg
//	                        ^^^^^^ ^^^^^^^^^^^^^^^^^^^^^^^^
//	                        container          object key
//
// ParseSourceURL performs that resolution; URLs with fewer than two path
// segments are a client error (ErrBadSourceURL), never a cache miss.
//
// The Client interface is the capability the media handlers consume. The
// production implementation (MinioClient) talks to any S3-compatible store
// and supports full downloads, exact byte-range reads for audio seeking,
// length queries, and uploads for the admin media path.
package blob
