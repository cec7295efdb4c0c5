package dto

import "github.com/gorilla/websocket"

type ConnInterface interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// ReadWriteConn 真实客户端连接，支持读取
type ReadWriteConn interface {
	ConnInterface
	ReadMessage() (messageType int, p []byte, err error)
}

type RealConn struct {
	*websocket.Conn
}

func (r *RealConn) WriteMessage(messageType int, data []byte) error {
	return r.Conn.WriteMessage(messageType, data)
}

func (r *RealConn) Close() error {
	return r.Conn.Close()
}

// InboundMessage 客户端消息 {"type": "...", "payload": {...}}
type InboundMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

// OutboundMessage 服务端消息 {"type": "...", "data": ...}
type OutboundMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type JoinPayload struct {
	RoomID string `mapstructure:"roomID"`
	Name   string `mapstructure:"name"`
}

// GemsPayload 拿/弃宝石，如 {"gems": {"White": 1, "Blue": 1, "Red": 1}}
type GemsPayload struct {
	Gems map[string]int `mapstructure:"gems"`
}

// CardPayload 购买/预留，source 为 market / reserved / top
type CardPayload struct {
	Source string `mapstructure:"source"`
	Tier   int    `mapstructure:"tier"`
	Index  int    `mapstructure:"index"`
}

type NoblePayload struct {
	Index int `mapstructure:"index"`
}
