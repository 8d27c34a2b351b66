// Package handlers contains the HTTP handler set for the soundstash API.
//
// Handlers are methods on the Handlers struct, which carries the injected
// collaborators (catalog repository, store connection guard, tiered media
// cache, distributed-cache admin surface, and blob client) as small
// interfaces so tests can substitute fakes without network access.
//
// Every catalog handler gates on the store guard before touching the
// repository: when the database never came up at startup the handler
// answers 503 with a structured JSON error rather than attempting the
// operation. Media handlers resolve images through the cache tiers and
// stream audio with HTTP range support.
package handlers
