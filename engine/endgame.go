package engine

import (
	"fmt"

	"go-splendor/entities"
)

// WinningPrestige 达到该分数后进入最后一轮
const WinningPrestige = 15

// EndGameManager 最后一轮判定：有人到 15 分后，轮回到首位玩家时结束，保证每人回合数相同
type EndGameManager struct {
	first      int
	finalRound bool
	over       bool
}

func NewEndGameManager(first int) *EndGameManager {
	return &EndGameManager{first: first}
}

func (e *EndGameManager) FinalRoundTriggered() bool { return e.finalRound }
func (e *EndGameManager) GameOver() bool            { return e.over }

// CheckEndTriggered 在主动作、弃宝石、贵族结算之后，切换回合之前调用
func (e *EndGameManager) CheckEndTriggered(players []*entities.Player, acting int) error {
	if acting < 0 || acting >= len(players) {
		return fmt.Errorf("check end: seat %d of %d: %w", acting, len(players), ErrInvariant)
	}
	if e.finalRound || e.over {
		return nil
	}
	if players[acting].Prestige() >= WinningPrestige {
		e.finalRound = true
	}
	return nil
}

// OnTurnAdvanced 最后一轮中轮回到首位玩家即结束
func (e *EndGameManager) OnTurnAdvanced(next int) {
	if e.finalRound && next == e.first {
		e.over = true
	}
}

// DetermineWinner 分数最高者胜；同分时购买卡牌少者胜；再相同取座位号小的
func DetermineWinner(players []*entities.Player) (int, error) {
	if len(players) == 0 {
		return -1, fmt.Errorf("determine winner: no players: %w", ErrInvariant)
	}
	best := 0
	for i := 1; i < len(players); i++ {
		p, w := players[i], players[best]
		if p.Prestige() > w.Prestige() ||
			(p.Prestige() == w.Prestige() && p.PurchasedCount() < w.PurchasedCount()) {
			best = i
		}
	}
	return best, nil
}

func (e *EndGameManager) DetermineWinner(players []*entities.Player) (int, error) {
	return DetermineWinner(players)
}
