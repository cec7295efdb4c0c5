package ws

import (
	"errors"
	"fmt"
	"strings"

	"go-splendor/dto"
	"go-splendor/engine"
	"go-splendor/session"
)

var (
	errUnknownMessage = errors.New("unknown message type")
	errBadSource      = errors.New("unsupported card source")
	errMissingNoble   = errors.New("missing noble index")
)

// 消息处理函数类型：payload -> 指令
type messageHandler func(payload map[string]interface{}) (session.Command, error)

// 消息处理函数映射
var messageHandlers = map[string]messageHandler{
	"join":    handleJoinMessage,
	"take":    handleTakeMessage,
	"buy":     handleBuyMessage,
	"reserve": handleReserveMessage,
	"discard": handleDiscardMessage,
	"noble":   handleNobleMessage,
	"state":   handleStateMessage,
	"quit":    handleQuitMessage,
}

// buildCommand 根据消息类型找到处理函数
func buildCommand(msg dto.InboundMessage) (session.Command, error) {
	handler, ok := messageHandlers[msg.Type]
	if !ok {
		return session.Command{}, session.Reject(fmt.Errorf("%w %q", errUnknownMessage, msg.Type), "Unknown message type %q.", msg.Type)
	}
	return handler(msg.Payload)
}

func handleJoinMessage(payload map[string]interface{}) (session.Command, error) {
	var p dto.JoinPayload
	if err := decodePayload(payload, &p); err != nil {
		return session.Command{}, err
	}
	return session.Command{Type: session.CmdJoin, RoomID: p.RoomID, Name: p.Name}, nil
}

func handleTakeMessage(payload map[string]interface{}) (session.Command, error) {
	var p dto.GemsPayload
	if err := decodePayload(payload, &p); err != nil {
		return session.Command{}, err
	}
	gems, err := parseGems(p.Gems)
	if err != nil {
		return session.Command{}, err
	}
	return session.Command{Type: session.CmdAction, Action: engine.Take(gems)}, nil
}

func handleDiscardMessage(payload map[string]interface{}) (session.Command, error) {
	var p dto.GemsPayload
	if err := decodePayload(payload, &p); err != nil {
		return session.Command{}, err
	}
	gems, err := parseGems(p.Gems)
	if err != nil {
		return session.Command{}, err
	}
	return session.Command{Type: session.CmdDiscard, Discard: engine.Discard(gems)}, nil
}

func handleBuyMessage(payload map[string]interface{}) (session.Command, error) {
	var p dto.CardPayload
	if err := decodePayload(payload, &p); err != nil {
		return session.Command{}, err
	}
	switch strings.ToLower(p.Source) {
	case "", "market":
		return session.Command{Type: session.CmdAction, Action: engine.BuyFromMarket(p.Tier, p.Index)}, nil
	case "reserved":
		return session.Command{Type: session.CmdAction, Action: engine.BuyFromReserved(p.Index)}, nil
	}
	return session.Command{}, session.Reject(fmt.Errorf("buy from %q: %w", p.Source, errBadSource), "Cannot buy from %q.", p.Source)
}

func handleReserveMessage(payload map[string]interface{}) (session.Command, error) {
	var p dto.CardPayload
	if err := decodePayload(payload, &p); err != nil {
		return session.Command{}, err
	}
	switch strings.ToLower(p.Source) {
	case "", "market":
		return session.Command{Type: session.CmdAction, Action: engine.ReserveFromMarket(p.Tier, p.Index)}, nil
	case "top":
		return session.Command{Type: session.CmdAction, Action: engine.ReserveFromTop(p.Tier)}, nil
	}
	return session.Command{}, session.Reject(fmt.Errorf("reserve from %q: %w", p.Source, errBadSource), "Cannot reserve from %q.", p.Source)
}

func handleNobleMessage(payload map[string]interface{}) (session.Command, error) {
	if _, ok := payload["index"]; !ok {
		return session.Command{}, session.Reject(errMissingNoble, "Missing noble index.")
	}
	var p dto.NoblePayload
	if err := decodePayload(payload, &p); err != nil {
		return session.Command{}, err
	}
	return session.Command{Type: session.CmdNoble, NobleIndex: p.Index}, nil
}

func handleStateMessage(map[string]interface{}) (session.Command, error) {
	return session.Command{Type: session.CmdState}, nil
}

func handleQuitMessage(map[string]interface{}) (session.Command, error) {
	return session.Command{Type: session.CmdQuit}, nil
}
