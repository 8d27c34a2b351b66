// Package metrics defines the Prometheus collectors exported by soundstash.
//
// All collectors are registered with the default registry via promauto and
// exposed on /metrics by the main HTTP server. Metric names share the
// soundstash_ prefix and are grouped by concern:
//
//   - soundstash_http_*   — request counts, durations, in-flight gauge
//   - soundstash_media_cache_* — per-tier lookups, origin fetches,
//     background populations, local-tier size and evictions
//   - soundstash_store_*  — document store operations and connectivity
//   - soundstash_retry_*  — retry executor attempts and outcomes
//   - soundstash_blob_*   — blob store downloads, uploads, bytes read
//
// Handlers and components update these vectors directly; the metrics
// middleware in internal/middleware records the HTTP series.
package metrics
