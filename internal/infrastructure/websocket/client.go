package websocket

import (
	"github.com/gorilla/websocket"

	"skillswap/pkg/logger"
)

// ReadPump drains the connection until it closes. The event stream is
// one-way; inbound frames are ignored apart from keeping the connection
// alive.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error for %s: %v", c.UserID, err)
			}
			break
		}
	}
}

// WritePump sends queued event frames to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("websocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
