package engine

import (
	"fmt"

	"go-splendor/entities"
)

// GameState 棋盘 + 固定顺序的玩家列表。开局后顺序不再改变
type GameState struct {
	Board   *entities.Board
	Players []*entities.Player
}

func NewGameState(board *entities.Board, players []*entities.Player) (*GameState, error) {
	if board == nil {
		return nil, fmt.Errorf("new game state: nil board: %w", ErrInvariant)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("new game state: no players: %w", ErrInvariant)
	}
	ps := make([]*entities.Player, len(players))
	copy(ps, players)
	return &GameState{Board: board, Players: ps}, nil
}

// Player 按座位号取玩家
func (s *GameState) Player(seat int) (*entities.Player, error) {
	if seat < 0 || seat >= len(s.Players) {
		return nil, fmt.Errorf("seat %d out of range [0,%d): %w", seat, len(s.Players), ErrInvariant)
	}
	return s.Players[seat], nil
}

// TokenTotals 供应区 + 所有玩家手里每种 token 的总数
func (s *GameState) TokenTotals() map[entities.GemType]int {
	totals := s.Board.Supply().Counts()
	for _, p := range s.Players {
		for g, n := range p.Tokens().Counts() {
			totals[g] += n
		}
	}
	return totals
}

// LocateCard 找出卡牌当前位置；在玩家手里时 owner 为座位号，否则为 -1
func (s *GameState) LocateCard(id int) (loc entities.CardLocation, owner int, found bool) {
	if loc, ok := s.Board.Locate(id); ok {
		return loc, -1, true
	}
	for seat, p := range s.Players {
		if loc, ok := p.Locate(id); ok {
			return loc, seat, true
		}
	}
	return 0, -1, false
}
