package socket

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// client pairs a connection with its write mutex. gorilla/websocket allows
// at most one concurrent writer per connection, and snapshots arrive from
// several watcher goroutines at once.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// Hub tracks every connected WebSocket client, keyed by client id.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

// Register adds a client connection to the hub, replacing any previous
// connection under the same id.
func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientID] = &client{conn: conn}
	logrus.WithField("client", clientID).Info("websocket client registered")
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		logrus.WithField("client", clientID).Info("websocket client unregistered")
	}
}

// Send writes a text message to a single client. A missing client is not
// an error; it just went offline.
func (h *Hub) Send(clientID string, message []byte) error {
	h.mu.RLock()
	cl, ok := h.clients[clientID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return cl.write(message)
}

// Broadcast writes a text message to every connected client, one writer
// per connection at a time. Write failures are logged and the connection
// is left for the reader loop to tear down.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	clients := make(map[string]*client, len(h.clients))
	for clientID, cl := range h.clients {
		clients[clientID] = cl
	}
	h.mu.RUnlock()

	for clientID, cl := range clients {
		if err := cl.write(message); err != nil {
			logrus.WithField("client", clientID).WithError(err).Warn("websocket broadcast failed")
		}
	}
}
