package entities

import (
	"fmt"
)

// FaceUpPerTier 每个等级桌面最多翻开 4 张
const FaceUpPerTier = 4

// Board 公共区域：宝石池、三个牌堆、三排翻开的卡牌、剩余贵族
type Board struct {
	supply *TokenPool
	decks  [MaxTier]*Deck
	faceUp [MaxTier][]Card
	nobles []Noble
}

// NewBoard decks 按等级 1..3 顺序传入
func NewBoard(decks [MaxTier]*Deck, nobles []Noble) (*Board, error) {
	b := &Board{supply: NewTokenPool()}
	for i, d := range decks {
		if d == nil {
			d = NewDeck(i+1, nil)
		}
		if d.Tier() != i+1 {
			return nil, fmt.Errorf("deck at position %d has tier %d: %w", i+1, d.Tier(), ErrInvalidTier)
		}
		b.decks[i] = d
		b.faceUp[i] = make([]Card, 0, FaceUpPerTier)
	}
	b.nobles = make([]Noble, len(nobles))
	copy(b.nobles, nobles)
	return b, nil
}

func (b *Board) Supply() *TokenPool {
	return b.supply
}

// InitialDeal 开局每个等级翻开 4 张（牌不够时尽量翻）
func (b *Board) InitialDeal() {
	for i := range b.decks {
		b.refill(i)
	}
}

// Refill 补满某等级的桌面，牌堆空了就停止
func (b *Board) Refill(tier int) error {
	if !ValidTier(tier) {
		return fmt.Errorf("refill tier %d: %w", tier, ErrInvalidTier)
	}
	b.refill(tier - 1)
	return nil
}

func (b *Board) refill(i int) {
	for len(b.faceUp[i]) < FaceUpPerTier {
		c, ok := b.decks[i].Draw()
		if !ok {
			return
		}
		b.faceUp[i] = append(b.faceUp[i], c)
	}
}

// FaceUp 返回某等级翻开卡牌的副本
func (b *Board) FaceUp(tier int) ([]Card, error) {
	if !ValidTier(tier) {
		return nil, fmt.Errorf("face-up tier %d: %w", tier, ErrInvalidTier)
	}
	out := make([]Card, len(b.faceUp[tier-1]))
	copy(out, b.faceUp[tier-1])
	return out, nil
}

// FaceUpCard 按位置取卡，不移除
func (b *Board) FaceUpCard(tier, index int) (Card, error) {
	if !ValidTier(tier) {
		return Card{}, fmt.Errorf("face-up tier %d: %w", tier, ErrInvalidTier)
	}
	row := b.faceUp[tier-1]
	if index < 0 || index >= len(row) {
		return Card{}, fmt.Errorf("no card at tier %d index %d", tier, index)
	}
	return row[index], nil
}

// TakeFaceUp 移除桌面上的卡并立即从牌堆补充
func (b *Board) TakeFaceUp(tier, index int) (Card, error) {
	c, err := b.FaceUpCard(tier, index)
	if err != nil {
		return Card{}, err
	}
	row := b.faceUp[tier-1]
	b.faceUp[tier-1] = append(row[:index:index], row[index+1:]...)
	b.refill(tier - 1)
	return c, nil
}

// DrawFromDeck 盲抽牌堆顶，空牌堆返回 ok=false
func (b *Board) DrawFromDeck(tier int) (Card, bool, error) {
	if !ValidTier(tier) {
		return Card{}, false, fmt.Errorf("draw tier %d: %w", tier, ErrInvalidTier)
	}
	c, ok := b.decks[tier-1].Draw()
	return c, ok, nil
}

func (b *Board) DeckSize(tier int) (int, error) {
	if !ValidTier(tier) {
		return 0, fmt.Errorf("deck tier %d: %w", tier, ErrInvalidTier)
	}
	return b.decks[tier-1].Len(), nil
}

func (b *Board) HasCardsInDeck(tier int) bool {
	if !ValidTier(tier) {
		return false
	}
	return !b.decks[tier-1].Empty()
}

// Nobles 剩余贵族（按开局顺序）
func (b *Board) Nobles() []Noble {
	out := make([]Noble, len(b.nobles))
	copy(out, b.nobles)
	return out
}

// RemoveNoble 永久移除，返回是否找到
func (b *Board) RemoveNoble(id string) bool {
	for i, n := range b.nobles {
		if n.ID == id {
			b.nobles = append(b.nobles[:i:i], b.nobles[i+1:]...)
			return true
		}
	}
	return false
}

// Locate 查找卡牌是否在牌堆或桌面上
func (b *Board) Locate(id int) (CardLocation, bool) {
	for i := range b.decks {
		if b.decks[i].contains(id) {
			return CardInDeck, true
		}
		for _, c := range b.faceUp[i] {
			if c.ID == id {
				return CardFaceUp, true
			}
		}
	}
	return 0, false
}
