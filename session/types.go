package session

import (
	"fmt"
	"time"

	"go-splendor/engine"
	"go-splendor/entities"
)

// Phase 单个连接的状态机
type Phase int

const (
	AwaitingJoin Phase = iota
	AwaitingAction
	AwaitingDiscard
	AwaitingNobleChoice
	Done
)

func (p Phase) String() string {
	switch p {
	case AwaitingJoin:
		return "awaiting_join"
	case AwaitingAction:
		return "awaiting_action"
	case AwaitingDiscard:
		return "awaiting_discard"
	case AwaitingNobleChoice:
		return "awaiting_noble_choice"
	case Done:
		return "done"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// CommandType 客户端指令类型
type CommandType string

const (
	CmdJoin    CommandType = "join"
	CmdAction  CommandType = "action"
	CmdDiscard CommandType = "discard"
	CmdNoble   CommandType = "noble"
	CmdState   CommandType = "state"
	CmdQuit    CommandType = "quit"
)

// DeclineNoble NOBLE -1 表示放弃
const DeclineNoble = -1

// Command 传输层解析后的指令
type Command struct {
	Type       CommandType
	RoomID     string
	Name       string
	Action     engine.Action        // CmdAction
	Discard    engine.DiscardTokens // CmdDiscard
	NobleIndex int                  // CmdNoble
}

// MessageType 服务端下发的消息类型
type MessageType string

const (
	MsgResult        MessageType = "result"
	MsgWelcome       MessageType = "welcome"
	MsgWaiting       MessageType = "waiting"
	MsgYourTurn      MessageType = "your_turn"
	MsgDiscardNeeded MessageType = "discard_needed"
	MsgNobleChoice   MessageType = "noble_choice"
	MsgState         MessageType = "state"
	MsgGameOver      MessageType = "game_over"
)

// Message 下发给单个连接的消息，按 Type 使用对应字段
type Message struct {
	Type       MessageType      `json:"type"`
	OK         bool             `json:"ok,omitempty"`
	Error      string           `json:"error,omitempty"`
	RoomID     string           `json:"roomID,omitempty"`
	Seat       int              `json:"seat"`
	Joined     int              `json:"joined,omitempty"`
	MaxPlayers int              `json:"maxPlayers,omitempty"`
	Count      int              `json:"count,omitempty"`
	Nobles     []entities.Noble `json:"nobles,omitempty"`
	State      *engine.Snapshot `json:"state,omitempty"`
	Winner     string           `json:"winner,omitempty"`
	Prestige   int              `json:"prestige,omitempty"`
}

func okResult() Message {
	return Message{Type: MsgResult, OK: true}
}

func errorResult(reason string) Message {
	return Message{Type: MsgResult, Error: reason}
}

// Sender 连接的写端，由 ws / lineserver 实现
type Sender interface {
	Send(msg Message) error
}

// SenderFunc 适配函数为 Sender
type SenderFunc func(msg Message) error

func (f SenderFunc) Send(msg Message) error {
	return f(msg)
}

// PlayerResult 终局时每个玩家的结果
type PlayerResult struct {
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	Prestige  int    `json:"prestige"`
	Purchased int    `json:"purchased"`
	Nobles    int    `json:"nobles"`
}

// GameResult 一局结束后的结果
type GameResult struct {
	RoomID     string         `json:"roomID"`
	Winner     string         `json:"winner"`
	WinnerSeat int            `json:"winnerSeat"`
	Players    []PlayerResult `json:"players"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
}

// Observer 牌桌事件回调（持久化、统计），在牌桌锁内同步调用
type Observer interface {
	StatusChanged(roomID string, status entities.RoomStatus)
	ActionApplied(roomID string, seat int, player string, action engine.Action)
	GameFinished(result GameResult)
}

// NopObserver 什么都不做
type NopObserver struct{}

func (NopObserver) StatusChanged(string, entities.RoomStatus)        {}
func (NopObserver) ActionApplied(string, int, string, engine.Action) {}
func (NopObserver) GameFinished(GameResult)                          {}

// GameFactory 人满后创建对局
type GameFactory func(names []string) (*engine.Game, error)
