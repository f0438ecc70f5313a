package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dial opens a real websocket pair against an httptest server and hands
// the server side to the hub.
func dial(t *testing.T, hub *Hub, userID int64) *websocket.Conn {
	t.Helper()

	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(userID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestBroadcast_ReachesEveryClient(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	first := dial(t, hub, 1)
	second := dial(t, hub, 2)
	require.Equal(t, 2, hub.OnlineCount())

	hub.Broadcast(Message{Event: "reservation.updated", Data: map[string]interface{}{"id": 7}})

	for _, client := range []*websocket.Conn{first, second} {
		_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg Message
		require.NoError(t, client.ReadJSON(&msg))
		assert.Equal(t, "reservation.updated", msg.Event)
	}
}

func TestBroadcast_DropsDeadConnections(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dial(t, hub, 1)
	require.Equal(t, 1, hub.OnlineCount())

	_ = client.Close()

	// The write may need a moment to observe the closed peer.
	deadline := time.Now().Add(2 * time.Second)
	for hub.OnlineCount() > 0 && time.Now().Before(deadline) {
		hub.Broadcast(Message{Event: "listing.updated"})
		time.Sleep(20 * time.Millisecond)
	}

	assert.Equal(t, 0, hub.OnlineCount())
}

func TestUnregister_Idempotent(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dial(t, hub, 1)
	_ = client

	hub.mutex.RLock()
	var serverConn *websocket.Conn
	for conn := range hub.connections {
		serverConn = conn
	}
	hub.mutex.RUnlock()
	require.NotNil(t, serverConn)

	hub.Unregister(serverConn)
	hub.Unregister(serverConn)
	assert.Equal(t, 0, hub.OnlineCount())
}
