package entities

import (
	"errors"
	"fmt"
)

const (
	MinTier = 1
	MaxTier = 3

	// NoblePrestige 所有贵族固定 3 分
	NoblePrestige = 3
)

// ErrInvalidTier 等级不在 1..3
var ErrInvalidTier = errors.New("invalid tier")

// CardLocation 卡牌当前所在位置，任何时刻只会在其中一个
type CardLocation int

const (
	CardInDeck    CardLocation = iota // 未被翻开，牌堆中
	CardFaceUp                        // 翻开在桌面，可被购买
	CardReserved                      // 被某玩家预留
	CardPurchased                     // 已被某玩家购买
)

func (l CardLocation) String() string {
	switch l {
	case CardInDeck:
		return "deck"
	case CardFaceUp:
		return "face_up"
	case CardReserved:
		return "reserved"
	case CardPurchased:
		return "purchased"
	}
	return fmt.Sprintf("CardLocation(%d)", int(l))
}

func ValidTier(tier int) bool {
	return tier >= MinTier && tier <= MaxTier
}

// Card 发展卡，创建后不再修改
type Card struct {
	ID       int             `json:"id"`       // 卡牌ID，开局时分配
	Tier     int             `json:"tier"`     // 1/2/3
	Prestige int             `json:"prestige"` // 荣誉分
	Bonus    GemType         `json:"bonus"`    // 折扣颜色
	Cost     map[GemType]int `json:"cost"`     // 五色费用，只包含正数
}

// NewCard 校验并复制 cost
func NewCard(id, tier, prestige int, bonus GemType, cost map[GemType]int) (Card, error) {
	if !ValidTier(tier) {
		return Card{}, fmt.Errorf("card %d tier %d: %w", id, tier, ErrInvalidTier)
	}
	if prestige < 0 {
		return Card{}, fmt.Errorf("card %d: prestige must not be negative", id)
	}
	if !bonus.IsStandard() {
		return Card{}, fmt.Errorf("card %d: bonus %q is not a standard color", id, bonus)
	}
	c := Card{ID: id, Tier: tier, Prestige: prestige, Bonus: bonus, Cost: make(map[GemType]int, len(cost))}
	for g, n := range cost {
		if !g.IsStandard() {
			return Card{}, fmt.Errorf("card %d: cost color %q is not a standard color", id, g)
		}
		if n < 0 {
			return Card{}, fmt.Errorf("card %d: cost for %s must not be negative", id, g)
		}
		if n > 0 {
			c.Cost[g] = n
		}
	}
	return c, nil
}

func (c Card) CostOf(g GemType) int {
	return c.Cost[g]
}

// Clone 深拷贝（cost map 不共享）
func (c Card) Clone() Card {
	out := c
	out.Cost = make(map[GemType]int, len(c.Cost))
	for g, n := range c.Cost {
		out.Cost[g] = n
	}
	return out
}

// Noble 贵族：达到折扣要求即可获得，固定 3 分
type Noble struct {
	ID           string          `json:"id"`           // e.g., "N1"
	Name         string          `json:"name"`         // 显示名
	Prestige     int             `json:"prestige"`     // 固定 3 分
	Requirements map[GemType]int `json:"requirements"` // 奖励条件，如{"Green":4,"Blue":4}
}

func NewNoble(id, name string, req map[GemType]int) (Noble, error) {
	n := Noble{ID: id, Name: name, Prestige: NoblePrestige, Requirements: make(map[GemType]int, len(req))}
	for g, v := range req {
		if !g.IsStandard() {
			return Noble{}, fmt.Errorf("noble %s: requirement color %q is not a standard color", id, g)
		}
		if v < 0 {
			return Noble{}, fmt.Errorf("noble %s: requirement for %s must not be negative", id, g)
		}
		if v > 0 {
			n.Requirements[g] = v
		}
	}
	return n, nil
}

// SatisfiedBy 每个要求颜色的折扣都达到门槛
func (n Noble) SatisfiedBy(bonuses map[GemType]int) bool {
	for g, need := range n.Requirements {
		if bonuses[g] < need {
			return false
		}
	}
	return true
}

func (n Noble) Clone() Noble {
	out := n
	out.Requirements = make(map[GemType]int, len(n.Requirements))
	for g, v := range n.Requirements {
		out.Requirements[g] = v
	}
	return out
}
