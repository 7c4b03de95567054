package api

import (
	"sync/atomic"
	"time"
)

// APIHandler handles API requests and responses
type APIHandler struct {
	metrics *Metrics
}

// Metrics holds process-lifetime serving counters, updated by the
// access-log middleware and reported by the status endpoint.
type Metrics struct {
	startedAt time.Time
	requests  atomic.Int64
	bytesSent atomic.Int64
}

// StatusResponse is the JSON body of /api/status.
type StatusResponse struct {
	Status    string `json:"status"`
	StartedAt string `json:"startedAt"`
	Uptime    string `json:"uptime"`
	Requests  int64  `json:"requests"`
	BytesSent int64  `json:"bytesSent"`
}
