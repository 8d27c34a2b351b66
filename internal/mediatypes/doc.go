// Package mediatypes maps media object keys to MIME types for HTTP responses.
//
// It is a dependency-free foundation importable from anywhere in the
// application without creating import cycles. Content types are derived
// from the object key's file extension, case-insensitively:
//
//	mediatypes.ImageContentType("covers/abbey-road.PNG") // "image/png"
//	mediatypes.AudioContentType("tracks/come-together.flac") // "audio/flac"
//
// Keys with unrecognized extensions fall back to application/octet-stream.
package mediatypes
