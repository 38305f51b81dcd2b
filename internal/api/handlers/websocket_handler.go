package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"fleet-agenda-api-server/internal/socket"
	"fleet-agenda-api-server/internal/store"
)

const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub     *socket.Hub
	Watcher *store.Watcher
}

// ServeWs upgrades the connection, pushes an initial snapshot of every
// collection, and keeps the client registered until it goes away. Clients
// may pass a stable clientId; anonymous connections get a random one.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	clientID := c.Query("clientId")
	if clientID == "" {
		clientID = uuid.New().String()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	h.Hub.Register(clientID, conn)
	defer func() {
		h.Hub.Unregister(clientID)
		conn.Close()
	}()

	h.Watcher.SendInitial(c.Request.Context(), clientID)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("client", clientID).WithError(err).Warn("websocket closed unexpectedly")
			}
			return
		}
	}
}
