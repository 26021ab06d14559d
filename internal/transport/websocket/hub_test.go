package websocket

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(quietLogger())
	c1 := &Client{hub: hub, sessionID: "s", send: make(chan []byte, 4)}
	c2 := &Client{hub: hub, sessionID: "s", send: make(chan []byte, 4)}

	hub.registerClient(c1)
	hub.registerClient(c2)
	assert.Len(t, hub.sessions["s"], 2)

	hub.unregisterClient(c1)
	assert.Len(t, hub.sessions["s"], 1)
	_, open := <-c1.send
	assert.False(t, open, "send channel of an unregistered client stays open")

	hub.unregisterClient(c2)
	_, exists := hub.sessions["s"]
	assert.False(t, exists, "empty session was not cleaned up")

	// Unregistering twice is a no-op
	hub.unregisterClient(c2)
}

func TestHubDeliver(t *testing.T) {
	hub := NewHub(quietLogger())
	c1 := &Client{hub: hub, sessionID: "a", send: make(chan []byte, 4)}
	c2 := &Client{hub: hub, sessionID: "a", send: make(chan []byte, 4)}
	other := &Client{hub: hub, sessionID: "b", send: make(chan []byte, 4)}
	for _, c := range []*Client{c1, c2, other} {
		hub.registerClient(c)
	}

	hub.deliver(outbound{sessionID: "a", data: []byte("all")})
	assert.Equal(t, "all", string(<-c1.send))
	assert.Equal(t, "all", string(<-c2.send))
	assert.Empty(t, other.send)

	hub.deliver(outbound{sessionID: "a", client: c2, data: []byte("one")})
	assert.Empty(t, c1.send)
	assert.Equal(t, "one", string(<-c2.send))
}

func TestHubHelloIsFirst(t *testing.T) {
	hub := NewHub(quietLogger())
	c := &Client{hub: hub, sessionID: "s", send: make(chan []byte, 4), hello: []byte("hi")}

	hub.registerClient(c)
	assert.Equal(t, "hi", string(<-c.send))
	assert.Nil(t, c.hello)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(quietLogger())
	slow := &Client{hub: hub, sessionID: "s", send: make(chan []byte, 1)}
	hub.registerClient(slow)

	hub.deliver(outbound{sessionID: "s", data: []byte("1")})
	hub.deliver(outbound{sessionID: "s", data: []byte("2")})

	_, exists := hub.sessions["s"]
	assert.False(t, exists, "slow client was kept")
}

func TestParseIntents(t *testing.T) {
	got, err := parseIntents(ClientMessage{Intent: "left", Intents: []string{"rotate_cw", "hard_drop"}})
	require.NoError(t, err)
	assert.Equal(t, []engine.Intent{engine.IntentMoveLeft, engine.IntentRotateCW, engine.IntentHardDrop}, got)

	_, err = parseIntents(ClientMessage{})
	assert.ErrorIs(t, err, errNoIntent)

	_, err = parseIntents(ClientMessage{Intent: "tick"})
	assert.ErrorIs(t, err, errTickIntent)

	_, err = parseIntents(ClientMessage{Intents: []string{"warp"}})
	assert.Error(t, err)
}

func TestSessionStep(t *testing.T) {
	sess := newSession("s", engine.DefaultConfig(), 9)

	require.True(t, sess.Enqueue(engine.IntentHardDrop))
	msg, changed := sess.step()
	require.True(t, changed)
	assert.Equal(t, TypeState, msg.Type)
	assert.True(t, hasEvent(msg.Events, engine.EventLock), "hard drop produced no lock event: %+v", msg.Events)

	sess.TogglePause()
	_, changed = sess.step()
	assert.False(t, changed, "paused session advanced")

	full := make([]engine.Intent, maxPendingIntents+1)
	for i := range full {
		full[i] = engine.IntentMoveLeft
	}
	assert.False(t, sess.Enqueue(full...))
}

func hasEvent(events []engine.Event, typ engine.EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

// startServer runs a Server behind httptest and returns its ws:// URL.
func startServer(t *testing.T) (*Server, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(ctx, Options{
		FPS:    60,
		Config: engine.DefaultConfig(),
		Seed:   func() int64 { return 42 },
		Logger: quietLogger(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until one satisfies match or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(ServerMessage) bool) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg ServerMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		if match(msg) {
			return msg
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func TestServerWelcomeAndHardDrop(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var welcome ServerMessage
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, TypeWelcome, welcome.Type)
	assert.NotEmpty(t, welcome.SessionID)
	require.NotNil(t, welcome.Snapshot)
	assert.NotNil(t, welcome.Snapshot.Piece)

	send(t, conn, ClientMessage{Type: TypeIntent, Intent: "hard_drop"})
	msg := readUntil(t, conn, func(m ServerMessage) bool { return hasEvent(m.Events, engine.EventLock) })
	assert.Greater(t, msg.Snapshot.Score, 0)
}

func TestServerErrors(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)

	send(t, conn, ClientMessage{Type: TypeIntent, Intent: "teleport"})
	msg := readUntil(t, conn, func(m ServerMessage) bool { return m.Type == TypeError })
	assert.Contains(t, msg.Error, "teleport")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg = readUntil(t, conn, func(m ServerMessage) bool { return m.Type == TypeError })
	assert.Contains(t, msg.Error, "invalid message")

	send(t, conn, ClientMessage{Type: "dance"})
	msg = readUntil(t, conn, func(m ServerMessage) bool { return m.Type == TypeError })
	assert.Contains(t, msg.Error, "dance")
}

func TestServerSharedSessionAndReset(t *testing.T) {
	srv, url := startServer(t)
	first := dial(t, url)

	welcome := readUntil(t, first, func(m ServerMessage) bool { return m.Type == TypeWelcome })
	second := dial(t, url+"?session="+welcome.SessionID)
	joined := readUntil(t, second, func(m ServerMessage) bool { return m.Type == TypeWelcome })
	assert.Equal(t, welcome.SessionID, joined.SessionID)
	assert.Len(t, srv.Sessions(), 1)

	send(t, first, ClientMessage{Type: TypePause})
	paused := readUntil(t, second, func(m ServerMessage) bool { return m.Paused })
	assert.Equal(t, welcome.SessionID, paused.SessionID)

	seed := int64(7)
	send(t, second, ClientMessage{Type: TypeReset, Seed: &seed})
	reset := readUntil(t, first, func(m ServerMessage) bool { return !m.Paused && m.Snapshot != nil && m.Snapshot.Tick == 0 })
	assert.Equal(t, 0, reset.Snapshot.Score)
}
