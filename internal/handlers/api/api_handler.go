package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// NewMetrics creates serving counters anchored at the current time.
func NewMetrics() *Metrics {
	return &Metrics{startedAt: time.Now()}
}

// RecordRequest counts one completed request and the body bytes it sent.
func (m *Metrics) RecordRequest(bytes int64) {
	m.requests.Add(1)
	m.bytesSent.Add(bytes)
}

func NewAPIHandler(metrics *Metrics) *APIHandler {
	return &APIHandler{
		metrics: metrics,
	}
}

// HandleStatus reports server health and serving counters as JSON.
func (h *APIHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := StatusResponse{
		Status:    "ok",
		StartedAt: h.metrics.startedAt.Format(time.RFC3339),
		Uptime:    time.Since(h.metrics.startedAt).Round(time.Second).String(),
		Requests:  h.metrics.requests.Load(),
		BytesSent: h.metrics.bytesSent.Load(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
