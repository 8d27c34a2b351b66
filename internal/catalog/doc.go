// Package catalog holds the music domain model (artists, albums, songs,
// playlists) and its document-store access layer.
//
// The Repository runs every query under the store package's retry
// executor, so transient connection failures against MongoDB are absorbed
// up to the configured attempt budget before surfacing. Absent documents
// are ErrNotFound; a store that was unreachable at startup yields
// ErrStoreUnavailable (handlers normally gate on the connection guard
// before getting here).
//
// Search is deliberately naive: a whitespace-tokenized, case-insensitive
// regex AND-match scanned per collection, capped at 25 results per entity
// type.
package catalog
