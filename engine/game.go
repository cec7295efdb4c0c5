package engine

import (
	"fmt"

	"go-splendor/entities"
)

// Phase 回合内阶段：主动作 -> 弃宝石（超过 10 个时必须） -> 贵族 -> 结束回合
type Phase int

const (
	PhaseAction Phase = iota
	PhaseDiscard
	PhaseNoble
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAction:
		return "action"
	case PhaseDiscard:
		return "discard"
	case PhaseNoble:
		return "noble"
	case PhaseOver:
		return "over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Game 把校验、执行、回合、终局组合成一个同步的回合协议。
// 非并发安全，由上层（session.Table）保证同一时间只有一个调用
type Game struct {
	state        *GameState
	turns        *TurnManager
	end          *EndGameManager
	phase        Phase
	nobleClaimed bool
}

// NewGame 用已经准备好的 state 开局，first 为首位玩家座位号
func NewGame(state *GameState, first int) (*Game, error) {
	if state == nil {
		return nil, fmt.Errorf("new game: nil state: %w", ErrInvariant)
	}
	turns, err := NewTurnManager(len(state.Players), first)
	if err != nil {
		return nil, err
	}
	return &Game{
		state: state,
		turns: turns,
		end:   NewEndGameManager(first),
		phase: PhaseAction,
	}, nil
}

func (g *Game) CurrentPlayer() int        { return g.turns.Current() }
func (g *Game) FirstPlayer() int          { return g.turns.First() }
func (g *Game) PlayerCount() int          { return g.turns.PlayerCount() }
func (g *Game) Phase() Phase              { return g.phase }
func (g *Game) IsGameOver() bool          { return g.end.GameOver() }
func (g *Game) FinalRoundTriggered() bool { return g.end.FinalRoundTriggered() }

// PlayerName 座位号对应的名字
func (g *Game) PlayerName(seat int) (string, error) {
	p, err := g.state.Player(seat)
	if err != nil {
		return "", err
	}
	return p.Name(), nil
}

func (g *Game) current() *entities.Player {
	return g.state.Players[g.turns.Current()]
}

func (g *Game) expect(phase Phase) error {
	if g.end.GameOver() {
		return ErrGameOver
	}
	if g.phase != phase {
		return fmt.Errorf("expected %s phase, in %s: %w", phase, g.phase, ErrPhase)
	}
	return nil
}

// ValidateAction 校验当前玩家的动作，不修改状态
func (g *Game) ValidateAction(a Action) error {
	return Validate(g.state, g.turns.Current(), a)
}

// ApplyAction 执行当前玩家的主动作。会重新校验，非法动作不修改任何状态
func (g *Game) ApplyAction(a Action) error {
	if err := g.expect(PhaseAction); err != nil {
		return err
	}
	if _, ok := a.(DiscardTokens); ok {
		return fmt.Errorf("discard is not a main action: %w", ErrPhase)
	}
	if err := g.ValidateAction(a); err != nil {
		return err
	}
	if err := Execute(g.state, g.turns.Current(), a); err != nil {
		return err
	}
	if g.current().OverTokenLimit() {
		g.phase = PhaseDiscard
	} else {
		g.phase = PhaseNoble
	}
	return nil
}

// HasLegalAction 当前玩家是否还有合法的主动作
func (g *Game) HasLegalAction() bool {
	return HasLegalAction(g.state, g.turns.Current())
}

// TokenLimitExceeded 当前玩家是否超过 10 个 token
func (g *Game) TokenLimitExceeded() bool {
	return g.current().OverTokenLimit()
}

// TokensOverLimit 当前玩家至少需要弃掉的数量
func (g *Game) TokensOverLimit() int {
	if over := g.current().TotalTokens() - entities.MaxTokens; over > 0 {
		return over
	}
	return 0
}

// ApplyDiscard 弃宝石，弃完必须不超过 10 个
func (g *Game) ApplyDiscard(d DiscardTokens) error {
	if err := g.expect(PhaseDiscard); err != nil {
		return err
	}
	if err := g.ValidateAction(d); err != nil {
		return err
	}
	if err := Execute(g.state, g.turns.Current(), d); err != nil {
		return err
	}
	g.phase = PhaseNoble
	return nil
}

// ClaimableNobles 当前玩家本回合可获得的贵族；已拿过一位则为空
func (g *Game) ClaimableNobles() []entities.Noble {
	if g.phase != PhaseNoble || g.nobleClaimed {
		return nil
	}
	return FindClaimableNobles(g.state.Board, g.current())
}

// ClaimNoble 当前玩家获得指定贵族，每回合最多一位
func (g *Game) ClaimNoble(nobleID string) error {
	if err := g.expect(PhaseNoble); err != nil {
		return err
	}
	if g.nobleClaimed {
		return invalid("You have already received a noble this turn.")
	}
	for _, n := range g.ClaimableNobles() {
		if n.ID == nobleID {
			if err := ClaimNoble(g.state.Board, g.current(), n); err != nil {
				return err
			}
			g.nobleClaimed = true
			return nil
		}
	}
	return invalid("You do not qualify for that noble.")
}

// EndTurn 终局判定 -> 切换玩家 -> 回到首位时结束。返回下一位座位号
func (g *Game) EndTurn() (int, error) {
	if err := g.expect(PhaseNoble); err != nil {
		return g.turns.Current(), err
	}
	if err := g.end.CheckEndTriggered(g.state.Players, g.turns.Current()); err != nil {
		return g.turns.Current(), err
	}
	next := g.turns.Advance()
	g.end.OnTurnAdvanced(next)
	g.nobleClaimed = false
	if g.end.GameOver() {
		g.phase = PhaseOver
	} else {
		g.phase = PhaseAction
	}
	return next, nil
}

// DetermineWinner 返回胜者座位号
func (g *Game) DetermineWinner() (int, error) {
	return g.end.DetermineWinner(g.state.Players)
}

// LocateCard 查卡牌位置，owner 为持有者座位号（不在玩家手里时为 -1）
func (g *Game) LocateCard(id int) (entities.CardLocation, int, bool) {
	return g.state.LocateCard(id)
}

// Snapshot 深拷贝，供传输层展示，修改它不会影响游戏
func (g *Game) Snapshot() Snapshot {
	return newSnapshot(g)
}
