package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"microweb/server/config"
	"microweb/server/internal/filestore"
	"microweb/server/internal/handlers/api"
	"microweb/server/internal/staticfile"
	wslog "microweb/server/internal/websocket"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// statusWriter wraps a ResponseWriter to record the status code and the
// number of body bytes written. Flush is forwarded so the streaming
// handler keeps its per-chunk backpressure.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}

func (w *statusWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// withAccessLog tags each request with an ID, logs its outcome, and
// feeds the serving counters.
func withAccessLog(logger *log.Logger, metrics *api.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(sw, r)

		metrics.RecordRequest(sw.bytes)
		logger.WithFields(log.Fields{
			"id":       requestID,
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   sw.status,
			"bytes":    sw.bytes,
			"duration": time.Since(start).String(),
		}).Info("Request served")
	})
}

// withCORS applies the configured origin policy and answers preflights.
func withCORS(origins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	wildcard := false
	for _, origin := range origins {
		if origin == "*" {
			wildcard = true
		}
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case wildcard:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func setupLogger(cfg *config.Config, streamer *wslog.LogStreamer) (*log.Logger, func(), error) {
	logger := log.New()

	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	logger.SetLevel(level)
	logger.AddHook(streamer)

	cleanup := func() {}
	if cfg.Logging.File != "" {
		logFile, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(io.MultiWriter(os.Stderr, logFile))
		cleanup = func() { logFile.Close() }
	}

	return logger, cleanup, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command line flags
	configPath := flag.String("config", "config/settings.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	streamer := wslog.NewLogStreamer()
	logger, cleanup, err := setupLogger(cfg, streamer)
	if err != nil {
		return err
	}
	defer cleanup()

	store := filestore.New(cfg.Server.DocumentRoot, cfg.Server.IndexFile)
	metrics := api.NewMetrics()

	var files http.Handler = staticfile.NewHandler(store, cfg.Server.ChunkSize, logger)
	files = withAccessLog(logger, metrics, files)
	if cfg.Security.EnableCORS {
		files = withCORS(cfg.Security.CORSOrigins, files)
	}

	mux := http.NewServeMux()
	mux.Handle("/", files)
	mux.HandleFunc("/api/status", api.NewAPIHandler(metrics).HandleStatus)
	mux.HandleFunc("/logs", streamer.HandleConnection)

	addr := ":" + cfg.Server.Port
	logger.Infof("Starting file server on %s serving %s", addr, cfg.Server.DocumentRoot)
	return http.ListenAndServe(addr, mux)
}
