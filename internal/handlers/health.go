package handlers

import (
	"net/http"
	"runtime"
	"time"

	"soundstash/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the overall health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	MongoDB   bool   `json:"mongodb"`
	Redis     bool   `json:"redis"`
	GoVersion string `json:"goVersion"`
	NumCPU    int    `json:"numCpu"`
	Goroutine int    `json:"numGoroutine"`
}

// HealthCheck reports overall service health. The response is always 200
// with a status field; orchestration readiness uses ReadinessCheck.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	mongoUp := h.guard.IsConnected()
	redisUp := h.cacheAdmin.Ping(r.Context()) == nil

	response := HealthResponse{
		Status:    statusHealthy,
		Version:   startup.Version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		MongoDB:   mongoUp,
		Redis:     redisUp,
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
		Goroutine: runtime.NumGoroutine(),
	}
	if !mongoUp || !redisUp {
		response.Status = statusDegraded
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}

// MongoHealthCheck exposes both notions of document-store health: the
// flag captured at startup and a fresh probe. 503 when the live probe
// fails.
//
//	GET /health/mongodb
func (h *Handlers) MongoHealthCheck(w http.ResponseWriter, r *http.Request) {
	connectedAtStartup := h.guard.IsConnected()
	liveProbe := h.guard.TestConnection(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if !liveProbe {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	writeJSON(w, map[string]interface{}{
		"connectedAtStartup": connectedAtStartup,
		"liveProbe":          liveProbe,
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	})
}

// MongoDiagnostics reports per-collection document counts and ping RTT.
//
//	GET /diagnostics/mongodb
func (h *Handlers) MongoDiagnostics(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	rtt, err := h.guard.PingRTT(r.Context())
	if err != nil {
		writeServiceUnavailable(w, reasonConnectionFailed)
		return
	}

	counts, err := h.guard.CollectionCounts(r.Context())
	if err != nil {
		writeCatalogError(w, "diagnostics", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]interface{}{
		"pingRtt":     rtt.String(),
		"collections": counts,
	})
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{"status": "alive"})
	}
}

// ReadinessCheck returns 200 only when the document store was reachable
// at startup; traffic routed earlier would fail fast anyway.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.guard.IsConnected() {
		w.WriteHeader(http.StatusOK)
		writeJSON(w, map[string]string{"status": "ready"})
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	writeJSON(w, map[string]string{"status": "not_ready"})
}

// GetVersion returns build information.
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, startup.GetBuildInfo())
}
