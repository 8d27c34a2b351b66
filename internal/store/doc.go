// Package store wraps the MongoDB client behind a connection guard and a
// bounded retry executor.
//
// # Connection guard
//
// New probes the server once with a 10-second connect-and-ping budget and
// records the outcome. Request handlers call IsConnected before touching
// any collection and fail fast with 503 when the probe failed — no work
// is wasted against a known-broken connection. TestConnection performs a
// fresh ping and feeds only the health and diagnostics endpoints, keeping
// exactly one source of truth per code path.
//
// # Retry executor
//
// ExecuteWithRetry wraps a document-store operation with bounded
// linear-backoff retries on transient failures (refused or reset
// connections, anything that looks like a timeout):
//
//	songs, err := store.ExecuteWithRetry(ctx, store.DefaultRetryConfig("songs.list"),
//	    func(ctx context.Context) ([]catalog.Song, error) {
//	        return repo.ListSongs(ctx, opts)
//	    })
//
// Exhaustion surfaces a *RetryExhaustedError wrapping the last underlying
// error; callers distinguish it with errors.As. A config permitting zero
// attempts returns ErrNoAttempts rather than a default T.
package store
