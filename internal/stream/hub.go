// Package stream pushes market snapshots to websocket clients.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ndewijer/Market-Data-Simulator/internal/metrics"
	"github.com/ndewijer/Market-Data-Simulator/internal/model"
)

// MessageTypeSnapshot tags a message carrying a MarketSnapshot.
const MessageTypeSnapshot = "snapshot"

// Message is the envelope written to stream clients.
type Message struct {
	Type string               `json:"type"`
	Data model.MarketSnapshot `json:"data"`
}

// SnapshotSource provides the snapshot sent to a client when it connects.
type SnapshotSource interface {
	Snapshot() model.MarketSnapshot
}

// Hub tracks connected clients and fans snapshots out to them.
type Hub struct {
	source   SnapshotSource
	logger   *zap.Logger
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]bool
	closed  bool
}

// NewHub creates a Hub. allowedOrigins restricts browser connections the same way the
// CORS middleware restricts API calls; an empty list accepts same-origin requests only.
func NewHub(source SnapshotSource, allowedOrigins []string, logger *zap.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Hub{
		source:  source,
		logger:  logger.Named("stream"),
		metrics: m,
		clients: make(map[*client]bool),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(conn, h, h.logger)

	payload, err := encode(h.source.Snapshot())
	if err != nil {
		h.logger.Error("failed to encode snapshot", zap.Error(err))
		conn.Close()
		return
	}
	c.send <- payload

	if !h.register(c) {
		conn.Close()
		return
	}
	c.start()
}

// Publish broadcasts snapshot to every connected client. Clients whose send buffer
// is full are disconnected.
func (h *Hub) Publish(snapshot model.MarketSnapshot) {
	payload, err := encode(snapshot)
	if err != nil {
		h.logger.Error("failed to encode snapshot", zap.Error(err))
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		if !c.trySend(payload) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow stream client", zap.String("remote", c.id()))
		h.unregister(c)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = true
	h.metrics.SetStreamClients(len(h.clients))
	h.logger.Debug("stream client connected", zap.String("remote", c.id()), zap.Int("clients", len(h.clients)))
	return true
}

// unregister removes c and closes its send channel exactly once.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.SetStreamClients(len(h.clients))
	h.logger.Debug("stream client disconnected", zap.String("remote", c.id()), zap.Int("clients", len(h.clients)))
}

func encode(snapshot model.MarketSnapshot) ([]byte, error) {
	return json.Marshal(Message{Type: MessageTypeSnapshot, Data: snapshot})
}

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16
)
