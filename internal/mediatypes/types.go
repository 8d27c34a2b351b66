package mediatypes

import (
	"path"
	"strings"
)

// OctetStream is the fallback content type for unrecognized extensions.
const OctetStream = "application/octet-stream"

// imageMimeTypes maps image file extensions to their MIME types.
var imageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// audioMimeTypes maps audio file extensions to their MIME types.
var audioMimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
}

// ImageContentType returns the MIME type for an image object key based on
// its file extension, matched case-insensitively. Unrecognized extensions
// return application/octet-stream.
func ImageContentType(key string) string {
	if mime, ok := imageMimeTypes[extOf(key)]; ok {
		return mime
	}
	return OctetStream
}

// AudioContentType returns the MIME type for an audio object key based on
// its file extension, matched case-insensitively. Unrecognized extensions
// return application/octet-stream.
func AudioContentType(key string) string {
	if mime, ok := audioMimeTypes[extOf(key)]; ok {
		return mime
	}
	return OctetStream
}

// IsImage reports whether the object key has a recognized image extension.
func IsImage(key string) bool {
	_, ok := imageMimeTypes[extOf(key)]
	return ok
}

// IsAudio reports whether the object key has a recognized audio extension.
func IsAudio(key string) bool {
	_, ok := audioMimeTypes[extOf(key)]
	return ok
}

func extOf(key string) string {
	return strings.ToLower(path.Ext(key))
}
