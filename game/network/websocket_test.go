package network

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Draughts/game/core"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	return dialQuery(t, srv, "")
}

func dialQuery(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) inbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg inbound
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) GameState {
	t.Helper()
	msg := read(t, conn)
	require.Equal(t, "state", msg.Type, string(msg.Content))
	var st GameState
	require.NoError(t, json.Unmarshal(msg.Content, &st))
	return st
}

func readError(t *testing.T, conn *websocket.Conn) ErrorContent {
	t.Helper()
	msg := read(t, conn)
	require.Equal(t, "error", msg.Type, string(msg.Content))
	var ec ErrorContent
	require.NoError(t, json.Unmarshal(msg.Content, &ec))
	return ec
}

func moveMsg(from, to core.Position) Message {
	return Message{Type: "move", Content: MoveRequest{From: &from, To: &to}}
}

func TestWebSocketSeatsAndMoves(t *testing.T) {
	s, r := newTestSession(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	black := dial(t, srv)
	assert.Equal(t, "Black", readState(t, black).YourColor)
	white := dial(t, srv)
	st := readState(t, white)
	assert.Equal(t, "White", st.YourColor)
	assert.Equal(t, "ada", st.CurrentPlayer)
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.Clients))

	third := dial(t, srv)
	assert.Equal(t, "Game is full", readError(t, third).Message)

	// white tries to open
	require.NoError(t, white.WriteJSON(moveMsg(core.Position{Row: 2, Col: 1}, core.Position{Row: 3, Col: 0})))
	assert.Equal(t, core.KindOutOfTurn, readError(t, white).Kind)

	require.NoError(t, black.WriteJSON(moveMsg(core.Position{Row: 5, Col: 0}, core.Position{Row: 4, Col: 1})))
	for _, conn := range []*websocket.Conn{black, white} {
		st := readState(t, conn)
		assert.Equal(t, "ben", st.CurrentPlayer)
		assert.Equal(t, "Black", st.Board[4][1])
	}

	// moves made over HTTP reach websocket clients too
	_, err := s.PlayMove("ben", core.Position{Row: 2, Col: 1}, core.Position{Row: 3, Col: 2})
	require.NoError(t, err)
	for _, conn := range []*websocket.Conn{black, white} {
		assert.Equal(t, "White", readState(t, conn).Board[3][2])
	}
}

func TestWebSocketBadMessages(t *testing.T) {
	_, r := newTestSession(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv)
	readState(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "dance"}))
	assert.Contains(t, readError(t, conn).Message, "unknown message type")

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "move", "content": map[string]any{"from": map[string]int{"row": 5, "col": 0}}}))
	assert.Equal(t, "malformed move", readError(t, conn).Message)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "state"}))
	assert.Equal(t, "Black", readState(t, conn).YourColor)
}

func TestWebSocketSeatFreedOnLeave(t *testing.T) {
	s, r := newTestSession(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	first := dial(t, srv)
	readState(t, first)
	require.NoError(t, first.Close())

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.Clients) == 0
	}, 2*time.Second, 10*time.Millisecond)

	again := dial(t, srv)
	assert.Equal(t, "Black", readState(t, again).YourColor)
}

func TestWebSocketRequestedColor(t *testing.T) {
	_, r := newTestSession(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	white := dialQuery(t, srv, "?color=white")
	assert.Equal(t, "White", readState(t, white).YourColor)

	taken := dialQuery(t, srv, "?color=W")
	assert.Equal(t, "White is taken", readError(t, taken).Message)

	bogus := dialQuery(t, srv, "?color=red")
	assert.Contains(t, readError(t, bogus).Message, "unknown color")

	// no preference takes what is left
	black := dial(t, srv)
	assert.Equal(t, "Black", readState(t, black).YourColor)
}
