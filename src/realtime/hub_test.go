package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(func(token string) (string, bool) {
		if strings.HasPrefix(token, "valid-") {
			return strings.TrimPrefix(token, "valid-"), true
		}
		return "", false
	})
	server := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello envelope
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "connected", hello.Type)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event map[string]json.RawMessage
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestHubRejectsBadToken(t *testing.T) {
	_, url := newTestHub(t)

	_, resp, err := websocket.DefaultDialer.Dial(url+"?token=nope", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHubPushesToEverySocketOfUser(t *testing.T) {
	hub, url := newTestHub(t)

	first := dial(t, url+"?token=valid-alice")
	second := dial(t, url+"?token=valid-alice")
	other := dial(t, url+"?token=valid-bob")

	assert.True(t, hub.IsOnline("alice"))
	assert.False(t, hub.IsOnline("carol"))

	hub.Push("alice", "notification", map[string]string{"title": "Yeni mesaj"})

	for _, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn)
		assert.JSONEq(t, `"notification"`, string(event["type"]))
		assert.JSONEq(t, `{"title":"Yeni mesaj"}`, string(event["payload"]))
	}

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err)
}

func TestHubForgetsClosedSockets(t *testing.T) {
	hub, url := newTestHub(t)

	conn := dial(t, url+"?token=valid-alice")
	require.True(t, hub.IsOnline("alice"))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return !hub.IsOnline("alice") }, 2*time.Second, 10*time.Millisecond)

	hub.Push("alice", "message", nil)
}

func TestHubPushDoesNotWaitOnStalledSocket(t *testing.T) {
	hub, url := newTestHub(t)

	// connected but never reads again
	dial(t, url+"?token=valid-slow")
	require.True(t, hub.IsOnline("slow"))

	payload := strings.Repeat("x", 256<<10)
	start := time.Now()
	for i := 0; i < 200; i++ {
		hub.Push("slow", "message", payload)
	}
	assert.Less(t, time.Since(start), 2*time.Second)

	assert.Eventually(t, func() bool { return !hub.IsOnline("slow") }, 2*time.Second, 10*time.Millisecond)
}
