package socket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestClient spins up a websocket endpoint that registers the server
// side of the connection on the hub, and returns the client side.
func dialTestClient(t *testing.T, hub *Hub, clientID string) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(clientID, conn)
		close(registered)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	<-registered
	return conn
}

// Several watcher goroutines broadcast at once; every message must arrive
// intact on one connection without tripping gorilla's single-writer check.
func TestBroadcastSerializesConcurrentWriters(t *testing.T) {
	hub := NewHub()
	conn := dialTestClient(t, hub, "grid-1")

	const writers, perWriter = 5, 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Broadcast([]byte("snapshot"))
			}
		}()
	}
	wg.Wait()

	for i := 0; i < writers*perWriter; i++ {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, "snapshot", string(msg))
	}
}

func TestSendAndBroadcastInterleave(t *testing.T) {
	hub := NewHub()
	conn := dialTestClient(t, hub, "grid-1")

	const rounds = 25
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			hub.Broadcast([]byte("broadcast"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			assert.NoError(t, hub.Send("grid-1", []byte("targeted")))
		}
	}()
	wg.Wait()

	for i := 0; i < 2*rounds; i++ {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, []string{"broadcast", "targeted"}, string(msg))
	}
}

func TestSendToMissingClientIsNoop(t *testing.T) {
	assert.NoError(t, NewHub().Send("ghost", []byte("snapshot")))
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	conn := dialTestClient(t, hub, "grid-1")

	hub.Unregister("grid-1")
	hub.Broadcast([]byte("after"))
	assert.NoError(t, hub.Send("grid-1", []byte("after")))

	// The connection is still open but out of the hub, so nothing arrives.
	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
