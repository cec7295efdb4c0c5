package ws

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-splendor/engine"
	"go-splendor/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type received struct {
	Type string          `json:"type"`
	Data session.Message `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newServerWithAuth(t, nil)
}

func newServerWithAuth(t *testing.T, auth Authenticator) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	lobby := session.NewLobby(func(names []string) (*engine.Game, error) {
		return engine.NewStandardGame(names, engine.WithSeed(1))
	}, session.WithLogger(zap.NewNop()))
	h := NewHandler(lobby, auth, zap.NewNop())

	r := gin.New()
	r.GET("/ws", h.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil 读取消息直到出现指定类型
func readUntil(t *testing.T, conn *websocket.Conn, msgType session.MessageType) session.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg received
		require.NoError(t, json.Unmarshal(raw, &msg))
		require.Equal(t, msg.Type, string(msg.Data.Type))
		if msg.Data.Type == msgType {
			return msg.Data
		}
	}
}

func TestWebSocketGame(t *testing.T) {
	srv := newTestServer(t)

	alice := dial(t, srv, "roomID=r1&userID=alice")
	welcome := readUntil(t, alice, session.MsgWelcome)
	require.Equal(t, 0, welcome.Seat)
	require.Equal(t, "r1", welcome.RoomID)

	bob := dial(t, srv, "roomID=r1&userID=bob")
	require.Equal(t, 1, readUntil(t, bob, session.MsgWelcome).Seat)

	state := readUntil(t, alice, session.MsgState)
	require.NotNil(t, state.State)
	require.Len(t, state.State.Players, 2)
	readUntil(t, alice, session.MsgYourTurn)

	require.NoError(t, bob.WriteJSON(map[string]interface{}{
		"type": "take", "payload": map[string]interface{}{"gems": map[string]int{"white": 1, "blue": 1, "red": 1}},
	}))
	res := readUntil(t, bob, session.MsgResult)
	require.False(t, res.OK)
	require.Equal(t, "Not your turn.", res.Error)

	require.NoError(t, alice.WriteJSON(map[string]interface{}{
		"type": "take", "payload": map[string]interface{}{"gems": map[string]int{"white": 1, "blue": 1, "red": 1}},
	}))
	res = readUntil(t, alice, session.MsgResult)
	require.True(t, res.OK)
	readUntil(t, bob, session.MsgYourTurn)

	require.NoError(t, bob.WriteMessage(websocket.TextMessage, []byte("not json")))
	res = readUntil(t, bob, session.MsgResult)
	require.Equal(t, "Malformed message.", res.Error)
}

func TestWebSocketRequiresIdentity(t *testing.T) {
	srv := newTestServer(t)
	conn := dial(t, srv, "roomID=r1")
	res := readUntil(t, conn, session.MsgResult)
	require.Equal(t, "Missing or invalid identity.", res.Error)
}

func TestWebSocketTokenIdentity(t *testing.T) {
	keys := map[string][2]string{
		"t-alice":   {"alice", "k-alice"},
		"t-mallory": {"alice", "k-mallory"},
		"t-bob":     {"bob", "k-bob"},
	}
	srv := newServerWithAuth(t, func(token string) (string, string, error) {
		id, ok := keys[token]
		if !ok {
			return "", "", errors.New("bad token")
		}
		return id[0], id[1], nil
	})

	t.Run("userID alone is refused", func(t *testing.T) {
		conn := dial(t, srv, "roomID=r1&userID=alice")
		res := readUntil(t, conn, session.MsgResult)
		require.Equal(t, "Missing or invalid identity.", res.Error)
	})

	t.Run("bad token", func(t *testing.T) {
		conn := dial(t, srv, "roomID=r1&token=forged")
		res := readUntil(t, conn, session.MsgResult)
		require.Equal(t, "Missing or invalid identity.", res.Error)
	})

	t.Run("same name with another identity cannot take the seat", func(t *testing.T) {
		alice := dial(t, srv, "roomID=r2&token=t-alice")
		require.Equal(t, 0, readUntil(t, alice, session.MsgWelcome).Seat)
		bob := dial(t, srv, "roomID=r2&token=t-bob")
		require.Equal(t, 1, readUntil(t, bob, session.MsgWelcome).Seat)
		readUntil(t, alice, session.MsgYourTurn)

		mallory := dial(t, srv, "roomID=r2&token=t-mallory")
		res := readUntil(t, mallory, session.MsgResult)
		require.Equal(t, "Seat alice belongs to another player.", res.Error)
	})
}
