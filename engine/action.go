package engine

import (
	"fmt"
	"strings"

	"go-splendor/entities"
)

// ActionKind 动作类型，也用作消息/日志里的 type 字段
type ActionKind string

const (
	KindTakeTokens    ActionKind = "take_tokens"
	KindBuyCard       ActionKind = "buy_card"
	KindReserveCard   ActionKind = "reserve_card"
	KindDiscardTokens ActionKind = "discard_tokens"
)

// Action 玩家的一次意图。只有本包内的四种类型实现它
type Action interface {
	Kind() ActionKind
	String() string
	isAction()
}

// CardSource 卡牌来源
type CardSource int

const (
	FromMarket   CardSource = iota // 桌面翻开的卡（tier + index）
	FromReserved                   // 自己的预留区（index）
	FromDeckTop                    // 牌堆顶盲抽（tier），只用于预留
)

func (s CardSource) String() string {
	switch s {
	case FromMarket:
		return "MARKET"
	case FromReserved:
		return "RESERVED"
	case FromDeckTop:
		return "TOP"
	}
	return fmt.Sprintf("CardSource(%d)", int(s))
}

// TakeTokens 拿宝石：三种不同颜色各 1 个，或同色 2 个
type TakeTokens struct {
	Amounts map[entities.GemType]int
}

// BuyCard 购买桌面或预留区的卡
type BuyCard struct {
	Source CardSource
	Tier   int
	Index  int
}

// ReserveCard 预留桌面的卡或牌堆顶的卡
type ReserveCard struct {
	Source CardSource
	Tier   int
	Index  int
}

// DiscardTokens 超过 10 个 token 时弃回
type DiscardTokens struct {
	Amounts map[entities.GemType]int
}

func (TakeTokens) Kind() ActionKind    { return KindTakeTokens }
func (BuyCard) Kind() ActionKind       { return KindBuyCard }
func (ReserveCard) Kind() ActionKind   { return KindReserveCard }
func (DiscardTokens) Kind() ActionKind { return KindDiscardTokens }

func (TakeTokens) isAction()    {}
func (BuyCard) isAction()       {}
func (ReserveCard) isAction()   {}
func (DiscardTokens) isAction() {}

func (a TakeTokens) String() string {
	return "TAKE " + formatAmounts(a.Amounts)
}

func (a BuyCard) String() string {
	if a.Source == FromReserved {
		return fmt.Sprintf("BUY RESERVED %d", a.Index)
	}
	return fmt.Sprintf("BUY %s %d %d", a.Source, a.Tier, a.Index)
}

func (a ReserveCard) String() string {
	if a.Source == FromDeckTop {
		return fmt.Sprintf("RESERVE TOP %d", a.Tier)
	}
	return fmt.Sprintf("RESERVE %s %d %d", a.Source, a.Tier, a.Index)
}

func (a DiscardTokens) String() string {
	return "DISCARD " + formatAmounts(a.Amounts)
}

// Take 构造拿宝石动作，map 会被复制
func Take(amounts map[entities.GemType]int) TakeTokens {
	return TakeTokens{Amounts: copyAmounts(amounts)}
}

func BuyFromMarket(tier, index int) BuyCard {
	return BuyCard{Source: FromMarket, Tier: tier, Index: index}
}

func BuyFromReserved(index int) BuyCard {
	return BuyCard{Source: FromReserved, Index: index}
}

func ReserveFromMarket(tier, index int) ReserveCard {
	return ReserveCard{Source: FromMarket, Tier: tier, Index: index}
}

func ReserveFromTop(tier int) ReserveCard {
	return ReserveCard{Source: FromDeckTop, Tier: tier}
}

// Discard 构造弃宝石动作，map 会被复制
func Discard(amounts map[entities.GemType]int) DiscardTokens {
	return DiscardTokens{Amounts: copyAmounts(amounts)}
}

func copyAmounts(in map[entities.GemType]int) map[entities.GemType]int {
	out := make(map[entities.GemType]int, len(in))
	for g, n := range in {
		out[g] = n
	}
	return out
}

// formatAmounts 按固定颜色顺序输出 "WHITE:1,BLUE:1"，跳过 0
func formatAmounts(amounts map[entities.GemType]int) string {
	parts := make([]string, 0, len(amounts))
	for _, g := range entities.AllGems {
		if n := amounts[g]; n != 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", g.Upper(), n))
		}
	}
	return strings.Join(parts, ",")
}
