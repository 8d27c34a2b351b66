package middleware

import (
	"net/http"
	"strings"
	"time"

	"soundstash/internal/logging"
)

// loggingResponseWriter wraps http.ResponseWriter to capture the status
// code and bytes written.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int64
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *loggingResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *loggingResponseWriter) Write(p []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(p)
	rw.bytes += int64(n)
	return n, err
}

// Flush passes through so streaming handlers keep working behind the
// middleware chain.
func (rw *loggingResponseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// LoggingConfig holds configuration for the request logging middleware
type LoggingConfig struct {
	// LogHealthChecks controls whether probe endpoints are logged
	LogHealthChecks bool
	// SlowRequestThreshold marks requests worth a WARN line
	SlowRequestThreshold time.Duration
}

// DefaultLoggingConfig returns the default logging configuration
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		LogHealthChecks:      false,
		SlowRequestThreshold: 2 * time.Second,
	}
}

// probePaths are the endpoints hit constantly by orchestration probes.
var probePaths = []string{"/health", "/livez", "/readyz", "/metrics"}

func isProbePath(path string) bool {
	for _, probe := range probePaths {
		if path == probe || strings.HasPrefix(path, probe+"/") {
			return true
		}
	}
	return false
}

// Logger returns a middleware that logs each request's method, path,
// status, size and duration.
func Logger(config LoggingConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.LogHealthChecks && isProbePath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := newLoggingResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			if config.SlowRequestThreshold > 0 && duration > config.SlowRequestThreshold {
				logging.Warn("%s %s -> %d (%d bytes, %v) SLOW", r.Method, r.URL.Path, wrapped.statusCode, wrapped.bytes, duration)
				return
			}
			logging.Info("%s %s -> %d (%d bytes, %v)", r.Method, r.URL.Path, wrapped.statusCode, wrapped.bytes, duration)
		})
	}
}
