package entities

import (
	"errors"
	"fmt"
)

const (
	MaxTokens        = 10
	MaxReservedCards = 3
)

// ErrReserveFull 预留已满
var ErrReserveFull = errors.New("reserved cards full")

// Player 玩家数据：手上的宝石、折扣、已购买/预留的卡、荣誉分
type Player struct {
	name      string
	tokens    *TokenPool
	bonuses   map[GemType]int
	purchased []Card
	reserved  []Card
	nobles    []Noble
	prestige  int
}

func NewPlayer(name string) *Player {
	p := &Player{
		name:    name,
		tokens:  NewTokenPool(),
		bonuses: make(map[GemType]int, len(StandardGems)),
	}
	for _, g := range StandardGems {
		p.bonuses[g] = 0
	}
	return p
}

func (p *Player) Name() string         { return p.name }
func (p *Player) Tokens() *TokenPool   { return p.tokens }
func (p *Player) TotalTokens() int     { return p.tokens.Total() }
func (p *Player) Prestige() int        { return p.prestige }
func (p *Player) Bonus(g GemType) int  { return p.bonuses[g] }
func (p *Player) ReservedCount() int   { return len(p.reserved) }
func (p *Player) PurchasedCount() int  { return len(p.purchased) }
func (p *Player) CanReserve() bool     { return len(p.reserved) < MaxReservedCards }
func (p *Player) OverTokenLimit() bool { return p.tokens.Total() > MaxTokens }

func (p *Player) Bonuses() map[GemType]int {
	out := make(map[GemType]int, len(p.bonuses))
	for g, n := range p.bonuses {
		out[g] = n
	}
	return out
}

func (p *Player) Purchased() []Card {
	out := make([]Card, len(p.purchased))
	copy(out, p.purchased)
	return out
}

func (p *Player) Reserved() []Card {
	out := make([]Card, len(p.reserved))
	copy(out, p.reserved)
	return out
}

func (p *Player) Nobles() []Noble {
	out := make([]Noble, len(p.nobles))
	copy(out, p.nobles)
	return out
}

func (p *Player) ReservedCard(index int) (Card, error) {
	if index < 0 || index >= len(p.reserved) {
		return Card{}, fmt.Errorf("no reserved card at index %d", index)
	}
	return p.reserved[index], nil
}

// Reserve 加入预留区
func (p *Player) Reserve(c Card) error {
	if !p.CanReserve() {
		return fmt.Errorf("reserve card %d: %w", c.ID, ErrReserveFull)
	}
	p.reserved = append(p.reserved, c)
	return nil
}

// TakeReserved 从预留区移除并返回
func (p *Player) TakeReserved(index int) (Card, error) {
	c, err := p.ReservedCard(index)
	if err != nil {
		return Card{}, err
	}
	p.reserved = append(p.reserved[:index:index], p.reserved[index+1:]...)
	return c, nil
}

// Purchase 购买：加入已购列表、加分、对应颜色折扣 +1
func (p *Player) Purchase(c Card) {
	p.purchased = append(p.purchased, c)
	p.prestige += c.Prestige
	p.bonuses[c.Bonus]++
}

// ClaimNoble 记录获得的贵族并加分
func (p *Player) ClaimNoble(n Noble) {
	p.nobles = append(p.nobles, n)
	p.prestige += n.Prestige
}

// Locate 卡牌是否在该玩家的预留区或已购区
func (p *Player) Locate(id int) (CardLocation, bool) {
	for _, c := range p.reserved {
		if c.ID == id {
			return CardReserved, true
		}
	}
	for _, c := range p.purchased {
		if c.ID == id {
			return CardPurchased, true
		}
	}
	return 0, false
}
