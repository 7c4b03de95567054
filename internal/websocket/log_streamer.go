package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// LogEntry represents a structured log message that will be sent to clients
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// LogStreamer streams server log entries to connected WebSocket
// clients. It plugs into logrus as a hook, keeps a circular buffer of
// recent entries for replay on connect, and fans each new entry out to
// every subscriber.
type LogStreamer struct {
	clients       map[*websocket.Conn]bool
	clientsMutex  sync.RWMutex
	upgrader      websocket.Upgrader
	logBuffer     []LogEntry // Circular buffer for recent log entries
	logBufferSize int
	bufferMutex   sync.RWMutex
	bufferIndex   int
}

// NewLogStreamer creates a new log streamer instance
func NewLogStreamer() *LogStreamer {
	return &LogStreamer{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow connections from any origin
			},
		},
		logBuffer:     make([]LogEntry, 100), // Retain last 100 log entries
		logBufferSize: 100,
	}
}

// Levels implements logrus.Hook.
func (ls *LogStreamer) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook: every log entry is buffered and
// broadcast to connected clients. Always returns nil so a slow or dead
// websocket client can never fail a log call.
func (ls *LogStreamer) Fire(entry *logrus.Entry) error {
	e := LogEntry{
		Timestamp: entry.Time.Format(time.RFC3339),
		Level:     entry.Level.String(),
		Message:   entry.Message,
	}

	// Add to circular buffer
	ls.bufferMutex.Lock()
	ls.logBuffer[ls.bufferIndex] = e
	ls.bufferIndex = (ls.bufferIndex + 1) % ls.logBufferSize
	ls.bufferMutex.Unlock()

	ls.broadcast(e)
	return nil
}

// HandleConnection handles new WebSocket connections for log streaming.
// Recent entries are replayed to the client, then the connection is
// subscribed until the client disconnects.
func (ls *LogStreamer) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := ls.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an error response
		return
	}

	// Add client to the clients map
	ls.clientsMutex.Lock()
	ls.clients[conn] = true
	ls.clientsMutex.Unlock()

	// Send recent log entries
	ls.sendRecentLogs(conn)

	// Handle ping-pong for connection keepalive
	conn.SetPingHandler(func(message string) error {
		err := conn.WriteMessage(websocket.PongMessage, []byte("pong"))
		if err != nil {
			ls.remove(conn)
		}
		return nil
	})

	// Listen for close message
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				ls.remove(conn)
				break
			}
		}
	}()
}

func (ls *LogStreamer) remove(conn *websocket.Conn) {
	ls.clientsMutex.Lock()
	delete(ls.clients, conn)
	ls.clientsMutex.Unlock()
	conn.Close()
}

// broadcast sends a log entry to all connected WebSocket clients,
// evicting any client whose write fails.
func (ls *LogStreamer) broadcast(entry LogEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	var clientsToRemove []*websocket.Conn

	ls.clientsMutex.RLock()
	for client := range ls.clients {
		// Set a write deadline to avoid blocking on unresponsive clients
		client.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			clientsToRemove = append(clientsToRemove, client)
		}
	}
	ls.clientsMutex.RUnlock()

	if len(clientsToRemove) > 0 {
		ls.clientsMutex.Lock()
		for _, client := range clientsToRemove {
			delete(ls.clients, client)
			client.Close()
		}
		ls.clientsMutex.Unlock()
	}
}

// sendRecentLogs sends buffered entries to a newly connected client in
// chronological order.
func (ls *LogStreamer) sendRecentLogs(conn *websocket.Conn) {
	ls.bufferMutex.RLock()
	defer ls.bufferMutex.RUnlock()

	for i := 0; i < ls.logBufferSize; i++ {
		index := (ls.bufferIndex + i) % ls.logBufferSize
		entry := ls.logBuffer[index]

		// Skip empty entries
		if entry.Timestamp == "" {
			continue
		}

		data, err := json.Marshal(entry)
		if err != nil {
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
