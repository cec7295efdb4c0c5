package engine

import (
	"fmt"

	"go-splendor/entities"
)

// Validate 纯校验，不修改任何状态。
// 返回 *ValidationError 表示玩家可修正的非法动作，其余错误表示调用方用错
func Validate(state *GameState, seat int, action Action) error {
	if action == nil {
		return invalid("No action selected.")
	}
	p, err := state.Player(seat)
	if err != nil {
		return err
	}
	switch a := action.(type) {
	case TakeTokens:
		return validateTake(state.Board, a)
	case BuyCard:
		return validateBuy(state.Board, p, a)
	case ReserveCard:
		return validateReserve(state.Board, p, a)
	case DiscardTokens:
		return validateDiscard(p, a)
	}
	return invalid(fmt.Sprintf("Unsupported action %T.", action))
}

func checkKnownGems(amounts map[entities.GemType]int) error {
	for g := range amounts {
		if !g.Valid() {
			return invalid(fmt.Sprintf("Unknown token color %q.", string(g)))
		}
	}
	return nil
}

func validateTake(b *entities.Board, a TakeTokens) error {
	if err := checkKnownGems(a.Amounts); err != nil {
		return err
	}
	if a.Amounts[entities.Gold] != 0 {
		return invalid("You may not take gold tokens.")
	}

	var colors []entities.GemType
	for _, g := range entities.StandardGems {
		n := a.Amounts[g]
		if n < 0 {
			return invalid("Token amounts must not be negative.")
		}
		if n > 0 {
			colors = append(colors, g)
		}
	}

	supply := b.Supply()
	switch {
	case len(colors) == 3:
		for _, g := range colors {
			if a.Amounts[g] != 1 {
				return invalid("To take three colors, you must take 1 of each.")
			}
		}
		for _, g := range colors {
			if supply.Get(g) < 1 {
				return invalid(fmt.Sprintf("There are no %s tokens left in the supply.", g.Upper()))
			}
		}
		return nil
	case len(colors) == 1 && a.Amounts[colors[0]] == 2:
		if supply.Get(colors[0]) < 4 {
			return invalid("You may take two of a color only if at least 4 are in the supply.")
		}
		return nil
	}
	return invalid("You must either take 3 different colors or 2 of one color.")
}

// resolveMarketCard 解析桌面上的卡，非法位置返回 ValidationError
func resolveMarketCard(b *entities.Board, tier, index int) (entities.Card, error) {
	if !entities.ValidTier(tier) {
		return entities.Card{}, invalid("Invalid card tier.")
	}
	c, err := b.FaceUpCard(tier, index)
	if err != nil {
		return entities.Card{}, invalid("No card at that position.")
	}
	return c, nil
}

func resolveBuyTarget(b *entities.Board, p *entities.Player, a BuyCard) (entities.Card, error) {
	switch a.Source {
	case FromReserved:
		c, err := p.ReservedCard(a.Index)
		if err != nil {
			return entities.Card{}, invalid("Reserved card index is out of range.")
		}
		return c, nil
	case FromMarket:
		return resolveMarketCard(b, a.Tier, a.Index)
	}
	return entities.Card{}, invalid("You can only buy from the market or your reserved cards.")
}

func validateBuy(b *entities.Board, p *entities.Player, a BuyCard) error {
	c, err := resolveBuyTarget(b, p, a)
	if err != nil {
		return err
	}
	if !CanAfford(p, c) {
		return invalid("You cannot afford that card.")
	}
	return nil
}

func validateReserve(b *entities.Board, p *entities.Player, a ReserveCard) error {
	if !p.CanReserve() {
		return invalid(fmt.Sprintf("You already have the maximum of %d reserved cards.", entities.MaxReservedCards))
	}
	switch a.Source {
	case FromDeckTop:
		if !entities.ValidTier(a.Tier) {
			return invalid("Invalid card tier.")
		}
		if !b.HasCardsInDeck(a.Tier) {
			return invalid("That deck is empty; you cannot reserve from it.")
		}
		return nil
	case FromMarket:
		_, err := resolveMarketCard(b, a.Tier, a.Index)
		return err
	}
	return invalid("You can only reserve from the market or the top of a deck.")
}

func validateDiscard(p *entities.Player, a DiscardTokens) error {
	if len(a.Amounts) == 0 {
		return invalid("You must discard at least one token.")
	}
	if err := checkKnownGems(a.Amounts); err != nil {
		return err
	}
	total := 0
	for _, g := range entities.AllGems {
		n, ok := a.Amounts[g]
		if !ok {
			continue
		}
		if n <= 0 {
			return invalid("Discard amounts must be positive.")
		}
		if n > p.Tokens().Get(g) {
			return invalid(fmt.Sprintf("You do not have %d %s tokens to discard.", n, g.Upper()))
		}
		total += n
	}
	if p.TotalTokens()-total > entities.MaxTokens {
		return invalid(fmt.Sprintf("You must discard enough tokens to reach %d or fewer.", entities.MaxTokens))
	}
	return nil
}

// Shortfall 扣除折扣和同色 token 后还差多少，需要用黄金补
func Shortfall(p *entities.Player, c entities.Card) int {
	short := 0
	for _, g := range entities.StandardGems {
		need := c.CostOf(g) - p.Bonus(g)
		if need <= 0 {
			continue
		}
		if have := p.Tokens().Get(g); need > have {
			short += need - have
		}
	}
	return short
}

// CanAfford 缺口不超过玩家的黄金数
func CanAfford(p *entities.Player, c entities.Card) bool {
	return Shortfall(p, c) <= p.Tokens().Get(entities.Gold)
}
