package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimz/taskboard-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// dialSession connects a websocket client to the hub through a throwaway
// test server and returns the client side plus its session id.
func dialSession(t *testing.T, hub *Hub) (*websocket.Conn, string, func()) {
	t.Helper()

	up := websocket.Upgrader{}
	idCh := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		idCh <- hub.Register(conn)
	}))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	var id string
	select {
	case id = <-idCh:
	case <-time.After(2 * time.Second):
		t.Fatal("session was not registered")
	}

	cleanup := func() {
		hub.Unregister(id)
		client.Close()
		srv.Close()
	}
	return client, id, cleanup
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt Event
	require.NoError(t, json.Unmarshal(data, &evt))
	return evt
}

func TestPublishReachesAllSessions(t *testing.T) {
	hub := NewHub()

	clientA, _, cleanupA := dialSession(t, hub)
	defer cleanupA()
	clientB, _, cleanupB := dialSession(t, hub)
	defer cleanupB()

	assert.Equal(t, 2, hub.SessionCount())

	hub.Publish(Event{Type: EventTaskCreated, Data: map[string]interface{}{"id": 7}})

	for _, client := range []*websocket.Conn{clientA, clientB} {
		evt := readEvent(t, client)
		assert.Equal(t, EventTaskCreated, evt.Type)

		data, ok := evt.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(7), data["id"])
	}
}

func TestUnregisteredSessionReceivesNothing(t *testing.T) {
	hub := NewHub()

	client, id, cleanup := dialSession(t, hub)
	defer cleanup()

	hub.Unregister(id)
	assert.Equal(t, 0, hub.SessionCount())

	hub.Publish(Event{Type: EventProjectDeleted, Data: map[string]interface{}{"id": 1}})

	client.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := client.ReadMessage()
	assert.Error(t, err, "closed session must not receive events")
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()

	_, id, cleanup := dialSession(t, hub)
	defer cleanup()

	hub.Unregister(id)
	hub.Unregister(id)
	assert.Equal(t, 0, hub.SessionCount())
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub()

	// One session that never reads, plus no sessions at all: both must leave
	// the publisher untouched.
	_, _, cleanup := dialSession(t, hub)
	defer cleanup()

	done := make(chan struct{})
	go func() {
		for i := 0; i < sessionBuffer*10; i++ {
			hub.Publish(Event{Type: EventTaskUpdated, Data: map[string]interface{}{"seq": i}})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher stalled on a slow subscriber")
	}
}
