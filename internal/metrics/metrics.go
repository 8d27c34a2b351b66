package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soundstash_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "soundstash_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Media cache metrics
var (
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_media_cache_lookups_total",
			Help: "Media cache lookups by tier and result",
		},
		[]string{"tier", "result"}, // tier: "local"/"distributed", result: "hit"/"miss"/"error"
	)

	CacheOriginFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_media_cache_origin_fetches_total",
			Help: "Blob store origin fetches on cache miss",
		},
		[]string{"status"}, // "ok"/"error"
	)

	CachePopulations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_media_cache_populations_total",
			Help: "Background cache population attempts by tier and status",
		},
		[]string{"tier", "status"},
	)

	CacheLocalBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "soundstash_media_cache_local_bytes",
			Help: "Bytes currently held by the process-local media cache",
		},
	)

	CacheLocalEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "soundstash_media_cache_local_evictions_total",
			Help: "Entries evicted from the process-local media cache",
		},
	)
)

// Document store metrics
var (
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_store_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"operation", "status"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soundstash_store_operation_duration_seconds",
			Help:    "Document store operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	StoreConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "soundstash_store_connected",
			Help: "Whether the document store connection was healthy at startup (1 = connected)",
		},
	)
)

// Retry executor metrics
var (
	RetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_retry_attempts_total",
			Help: "Retry attempts scheduled after a retryable failure",
		},
		[]string{"operation"},
	)

	RetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_retry_success_total",
			Help: "Operations that succeeded after at least one retry",
		},
		[]string{"operation"},
	)

	RetryExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_retry_exhausted_total",
			Help: "Operations that failed after exhausting all retry attempts",
		},
		[]string{"operation"},
	)
)

// Blob store metrics
var (
	BlobDownloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_blob_downloads_total",
			Help: "Blob store downloads by kind and status",
		},
		[]string{"kind", "status"}, // kind: "full"/"range"/"length"
	)

	BlobBytesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "soundstash_blob_bytes_read_total",
			Help: "Total bytes read from the blob store",
		},
	)

	BlobUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundstash_blob_uploads_total",
			Help: "Blob store uploads by status",
		},
		[]string{"status"},
	)
)
