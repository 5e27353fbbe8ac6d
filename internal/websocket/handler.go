package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles one upgraded chat connection until it closes.
func ServeWs(hub *Hub, c *websocket.Conn) {
	client := &Client{
		Hub:        hub,
		Conn:       c,
		SessionID:  uuid.New(),
		Send:       make(chan []byte, 256),
		writerDone: make(chan struct{}),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
