package ws

import (
	"encoding/json"
	"sync"

	"go-splendor/dto"
	"go-splendor/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Authenticator 校验 token，返回玩家名和身份 key
type Authenticator func(token string) (userID, key string, err error)

// Handler WebSocket 入口
type Handler struct {
	lobby *session.Lobby
	auth  Authenticator
	log   *zap.Logger
}

func NewHandler(lobby *session.Lobby, auth Authenticator, log *zap.Logger) *Handler {
	return &Handler{lobby: lobby, auth: auth, log: log}
}

// connSender 同一连接的写操作串行化
type connSender struct {
	mu   sync.Mutex
	conn dto.ConnInterface
}

func (s *connSender) Send(msg session.Message) error {
	data, err := json.Marshal(dto.OutboundMessage{Type: string(msg.Type), Data: msg})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *connSender) sendError(reason string) {
	_ = s.Send(session.Message{Type: session.MsgResult, Error: reason})
}

// identify 配置了鉴权时必须带 token；否则直接使用 userID，身份 key 为空
func (h *Handler) identify(c *gin.Context) (string, string, bool) {
	if h.auth == nil {
		userID := c.Query("userID")
		return userID, "", userID != ""
	}
	token := c.Query("token")
	if token == "" {
		return "", "", false
	}
	userID, key, err := h.auth(token)
	if err != nil {
		h.log.Warn("⚠️ token 校验失败", zap.Error(err))
		return "", "", false
	}
	return userID, key, true
}

// HandleWebSocket 主入口（处理每个连接）
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("❌ WebSocket 升级失败", zap.Error(err))
		return
	}
	defer conn.Close()

	sender := &connSender{conn: &dto.RealConn{Conn: conn}}
	playerID, key, ok := h.identify(c)
	if !ok {
		sender.sendError("Missing or invalid identity.")
		return
	}

	sess := session.NewSession(uuid.NewString(), h.lobby, sender)
	sess.SetIdentity(key)
	defer sess.Close()
	log := h.log.With(zap.String("playerID", playerID), zap.String("session", sess.ID()))
	log.Info("🔌 WebSocket 已连接")

	if roomID := c.Query("roomID"); roomID != "" {
		sess.Handle(session.Command{Type: session.CmdJoin, RoomID: roomID, Name: playerID})
	}
	h.listen(conn, sender, sess, playerID, log)
	log.Info("📴 WebSocket 已断开")
}

// listen 持续读取客户端消息直到断开或会话结束
func (h *Handler) listen(conn dto.ReadWriteConn, sender *connSender, sess *session.Session, playerID string, log *zap.Logger) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("⚠️ 读取消息失败", zap.Error(err))
			}
			return
		}
		var msg dto.InboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sender.sendError("Malformed message.")
			continue
		}
		cmd, err := buildCommand(msg)
		if err != nil {
			sender.sendError(session.UserMessage(err))
			continue
		}
		// 身份以连接为准
		if cmd.Type == session.CmdJoin {
			cmd.Name = playerID
		}
		sess.Handle(cmd)
		if cmd.Type == session.CmdQuit {
			return
		}
	}
}
