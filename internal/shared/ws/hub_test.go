package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rideescrow/internal/shared/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHub starts a hub behind an httptest server. Tokens of the form
// "valid:<id>" authenticate as participant <id>.
func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()
	log := logger.NewLoggerWithWriters("test", io.Discard, io.Discard)

	hub := NewHub(func(token string) (string, error) {
		if !strings.HasPrefix(token, "valid:") {
			return "", errors.New("invalid token")
		}
		return strings.TrimPrefix(token, "valid:"), nil
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestAuthenticatedClientReceivesNotifications(t *testing.T) {
	hub, url := newTestHub(t)

	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(map[string]string{"token": "valid:rider-1"}))

	var ackMsg map[string]string
	require.NoError(t, conn.ReadJSON(&ackMsg))
	assert.Equal(t, "authenticated", ackMsg["status"])
	assert.Equal(t, "rider-1", ackMsg["participant_id"])

	// Give the hub a moment to register the client.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, 2*time.Second, 10*time.Millisecond)

	payload := map[string]any{"type": "ride_booked", "ride_id": 0}
	require.NoError(t, hub.SendToParticipantJSON("rider-1", payload))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var received map[string]any
	require.NoError(t, json.Unmarshal(raw, &received))
	assert.Equal(t, "ride_booked", received["type"])
}

func TestInvalidTokenIsRejected(t *testing.T) {
	_, url := newTestHub(t)

	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(map[string]string{"token": "bogus"}))

	var errMsg map[string]string
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, "invalid token", errMsg["error"])

	// The server closes the connection; the next read fails.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestNotificationsAreScopedToParticipant(t *testing.T) {
	hub, url := newTestHub(t)

	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(map[string]string{"token": "valid:rider-1"}))

	var ackMsg map[string]string
	require.NoError(t, conn.ReadJSON(&ackMsg))

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// A message for a different participant never reaches this client.
	require.NoError(t, hub.SendToParticipantJSON("driver-1", map[string]string{"type": "other"}))

	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
