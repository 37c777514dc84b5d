package stream

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type client struct {
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	remote string
	logger *zap.Logger
}

func newClient(conn *websocket.Conn, h *Hub, logger *zap.Logger) *client {
	return &client{
		conn:   conn,
		hub:    h,
		send:   make(chan []byte, sendBuffer),
		remote: conn.RemoteAddr().String(),
		logger: logger,
	}
}

func (c *client) id() string { return c.remote }

func (c *client) start() {
	go c.writePump()
	go c.readPump()
}

// trySend queues payload without blocking. The caller holds the hub read lock, so
// send cannot be closed concurrently.
func (c *client) trySend(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// readPump discards client messages and detects disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("stream read failed", zap.String("remote", c.id()), zap.Error(err))
			}
			return
		}
	}
}

// writePump owns all writes to the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.hub.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.unregister(c)
				return
			}
		}
	}
}
