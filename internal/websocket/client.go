package websocket

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// SessionState tracks the connection lifecycle. Closed is terminal; a
// reconnect produces a brand-new client with fresh state.
type SessionState int32

const (
	StateConnecting SessionState = iota
	StateOpen
	StateClosed
)

// Client owns one chat connection. Inbound messages are processed strictly
// one at a time on the read loop, so replies leave in arrival order and
// pipeline stages never interleave within a session.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// SessionID identifies this connection in logs.
	SessionID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	// Closed by writePump once the Send queue has been drained.
	writerDone chan struct{}

	state atomic.Int32
}

func (c *Client) setState(s SessionState) {
	c.state.Store(int32(s))
}

// State reports the current session lifecycle phase.
func (c *Client) State() SessionState {
	return SessionState(c.state.Load())
}

// errorReplyPayload stands in when a reply cannot be serialized, so the
// one-reply-per-inbound-message contract holds even on that path.
const errorReplyPayload = `{"response":"Something went wrong while preparing the reply. Please try again.","success":false,"documents_found":0}`

// readPump receives inbound questions and drives the agent pipeline for each.
func (c *Client) readPump() {
	defer func() {
		c.setState(StateClosed)
		c.Hub.unregister <- c
		// Unregistering closed Send; wait for writePump to drain queued
		// replies before tearing the connection down.
		select {
		case <-c.writerDone:
		case <-time.After(writeWait):
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WebSocket", "Unexpected close", map[string]interface{}{
					"session_id": c.SessionID,
					"error":      err.Error(),
				})
			}
			break
		}

		// Pipeline pass runs here, on the read loop: a second message queued
		// on the connection is not read until this reply has been handed to
		// the write pump.
		reply := c.Hub.chatService.ProcessQuery(context.Background(), string(raw))
		data, err := json.Marshal(reply)
		if err != nil {
			c.Hub.logger.Error("WebSocket", "Failed to marshal reply", map[string]interface{}{
				"session_id": c.SessionID,
				"error":      err.Error(),
			})
			data = []byte(errorReplyPayload)
		}
		c.Send <- data

		// A pipeline pass can outlast the pong window, and pongs queued
		// behind it are only handled by the next ReadMessage. Push the
		// deadline out so a slow generation does not expire the session.
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// writePump pumps queued replies to the websocket connection and keeps the
// connection alive with pings. One frame per reply preserves message framing.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.writerDone)
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
