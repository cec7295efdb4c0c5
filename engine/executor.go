package engine

import (
	"fmt"

	"go-splendor/entities"
)

// Execute 执行已校验的动作，原地修改 state。
// 对未校验的非法动作返回包装了 ErrInvariant 的错误
func Execute(state *GameState, seat int, action Action) error {
	p, err := state.Player(seat)
	if err != nil {
		return err
	}
	switch a := action.(type) {
	case TakeTokens:
		return executeTake(state.Board, p, a)
	case BuyCard:
		return executeBuy(state.Board, p, a)
	case ReserveCard:
		return executeReserve(state.Board, p, a)
	case DiscardTokens:
		return executeDiscard(state.Board, p, a)
	}
	return fmt.Errorf("execute %T: %w", action, ErrInvariant)
}

// checkTransfer 整体检查后再逐色转移，失败时不修改任何一方
func checkTransfer(src *entities.TokenPool, amounts map[entities.GemType]int, gems []entities.GemType) error {
	for _, g := range gems {
		n := amounts[g]
		if n < 0 {
			return fmt.Errorf("negative amount %d %s", n, g)
		}
		if have := src.Get(g); have < n {
			return fmt.Errorf("need %d %s, have %d: %w", n, g, have, entities.ErrInsufficientTokens)
		}
	}
	return nil
}

func executeTake(b *entities.Board, p *entities.Player, a TakeTokens) error {
	if err := checkTransfer(b.Supply(), a.Amounts, entities.StandardGems); err != nil {
		return fmt.Errorf("take: %v: %w", err, ErrInvariant)
	}
	for _, g := range entities.StandardGems {
		n := a.Amounts[g]
		if n == 0 {
			continue
		}
		if err := b.Supply().Transfer(p.Tokens(), g, n); err != nil {
			return fmt.Errorf("take %d %s: %v: %w", n, g, err, ErrInvariant)
		}
	}
	return nil
}

// ComputePayment 最少黄金的支付方案：先扣折扣，再用同色 token，缺口用黄金补。
// 只包含正数项
func ComputePayment(p *entities.Player, c entities.Card) map[entities.GemType]int {
	payment := make(map[entities.GemType]int)
	short := 0
	for _, g := range entities.StandardGems {
		need := c.CostOf(g) - p.Bonus(g)
		if need <= 0 {
			continue
		}
		pay := min(need, p.Tokens().Get(g))
		if pay > 0 {
			payment[g] = pay
		}
		short += need - pay
	}
	if short > 0 {
		payment[entities.Gold] = short
	}
	return payment
}

func executeBuy(b *entities.Board, p *entities.Player, a BuyCard) error {
	var (
		c   entities.Card
		err error
	)
	switch a.Source {
	case FromReserved:
		c, err = p.ReservedCard(a.Index)
	case FromMarket:
		c, err = b.FaceUpCard(a.Tier, a.Index)
	default:
		err = fmt.Errorf("buy from %s", a.Source)
	}
	if err != nil {
		return fmt.Errorf("buy card: %v: %w", err, ErrInvariant)
	}

	payment := ComputePayment(p, c)
	if payment[entities.Gold] > p.Tokens().Get(entities.Gold) {
		return fmt.Errorf("buy card %d: cannot afford: %w", c.ID, ErrInvariant)
	}

	if a.Source == FromReserved {
		_, err = p.TakeReserved(a.Index)
	} else {
		_, err = b.TakeFaceUp(a.Tier, a.Index)
	}
	if err != nil {
		return fmt.Errorf("buy card %d: %v: %w", c.ID, err, ErrInvariant)
	}

	for _, g := range entities.AllGems {
		n := payment[g]
		if n == 0 {
			continue
		}
		if err := p.Tokens().Transfer(b.Supply(), g, n); err != nil {
			return fmt.Errorf("pay %d %s for card %d: %v: %w", n, g, c.ID, err, ErrInvariant)
		}
	}
	p.Purchase(c)
	return nil
}

func executeReserve(b *entities.Board, p *entities.Player, a ReserveCard) error {
	if !p.CanReserve() {
		return fmt.Errorf("reserve: %v: %w", entities.ErrReserveFull, ErrInvariant)
	}
	var (
		c   entities.Card
		got bool
		err error
	)
	switch a.Source {
	case FromMarket:
		c, err = b.TakeFaceUp(a.Tier, a.Index)
		got = err == nil
	case FromDeckTop:
		c, got, err = b.DrawFromDeck(a.Tier)
	default:
		err = fmt.Errorf("reserve from %s", a.Source)
	}
	if err != nil {
		return fmt.Errorf("reserve card: %v: %w", err, ErrInvariant)
	}
	if got {
		if err := p.Reserve(c); err != nil {
			return fmt.Errorf("reserve card %d: %v: %w", c.ID, err, ErrInvariant)
		}
	}
	// 无论是否拿到卡，只要还有黄金就给 1 个
	if b.Supply().Get(entities.Gold) > 0 {
		if err := b.Supply().Transfer(p.Tokens(), entities.Gold, 1); err != nil {
			return fmt.Errorf("reserve gold: %v: %w", err, ErrInvariant)
		}
	}
	return nil
}

func executeDiscard(b *entities.Board, p *entities.Player, a DiscardTokens) error {
	if err := checkTransfer(p.Tokens(), a.Amounts, entities.AllGems); err != nil {
		return fmt.Errorf("discard: %v: %w", err, ErrInvariant)
	}
	for _, g := range entities.AllGems {
		n := a.Amounts[g]
		if n == 0 {
			continue
		}
		if err := p.Tokens().Transfer(b.Supply(), g, n); err != nil {
			return fmt.Errorf("discard %d %s: %v: %w", n, g, err, ErrInvariant)
		}
	}
	return nil
}

// FindClaimableNobles 按桌面顺序返回玩家满足条件的所有贵族
func FindClaimableNobles(b *entities.Board, p *entities.Player) []entities.Noble {
	bonuses := p.Bonuses()
	var out []entities.Noble
	for _, n := range b.Nobles() {
		if n.SatisfiedBy(bonuses) {
			out = append(out, n)
		}
	}
	return out
}

// ClaimNoble 玩家获得贵族并永久从桌面移除
func ClaimNoble(b *entities.Board, p *entities.Player, n entities.Noble) error {
	if !b.RemoveNoble(n.ID) {
		return fmt.Errorf("claim noble %s: not on the board: %w", n.ID, ErrInvariant)
	}
	p.ClaimNoble(n)
	return nil
}
