package engine

import "fmt"

// TurnManager 记录当前轮到谁。Advance 是唯一修改顺序的地方
type TurnManager struct {
	playerCount int
	first       int
	current     int
}

func NewTurnManager(playerCount, first int) (*TurnManager, error) {
	if playerCount <= 0 {
		return nil, fmt.Errorf("turn manager: player count %d: %w", playerCount, ErrInvariant)
	}
	if first < 0 || first >= playerCount {
		return nil, fmt.Errorf("turn manager: first player %d out of range: %w", first, ErrInvariant)
	}
	return &TurnManager{playerCount: playerCount, first: first, current: first}, nil
}

func (t *TurnManager) Current() int     { return t.current }
func (t *TurnManager) First() int       { return t.first }
func (t *TurnManager) PlayerCount() int { return t.playerCount }

// Advance 切换到下一个玩家（循环）并返回新的座位号
func (t *TurnManager) Advance() int {
	t.current = (t.current + 1) % t.playerCount
	return t.current
}
