package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"skillswap/pkg/logger"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager manages all active WebSocket connections
type Manager struct {
	clients    map[string][]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string][]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = append(m.clients[client.UserID], client)
				m.mutex.Unlock()
				logger.Debug("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				conns := m.clients[client.UserID]
				for i, c := range conns {
					if c == client {
						m.clients[client.UserID] = append(conns[:i], conns[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(m.clients[client.UserID]) == 0 {
					delete(m.clients, client.UserID)
				}
				m.mutex.Unlock()
				logger.Debug("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser delivers a message to every live connection of a user. A slow
// connection is dropped rather than blocking the sender.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	conns := append([]*Client(nil), m.clients[userID]...)
	m.mutex.RUnlock()

	for _, client := range conns {
		select {
		case client.Send <- message:
		default:
			logger.Warn("Dropping slow websocket connection for user %s", userID)
		}
	}
}
