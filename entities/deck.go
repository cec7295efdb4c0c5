package entities

// Shuffler 洗牌用的随机源（golang.org/x/exp/rand.Rand 满足此接口）
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck 某一等级的牌堆，顶部为切片末尾
type Deck struct {
	tier  int
	cards []Card
}

func NewDeck(tier int, cards []Card) *Deck {
	d := &Deck{tier: tier, cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

func (d *Deck) Tier() int { return d.tier }
func (d *Deck) Len() int  { return len(d.cards) }

func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}

func (d *Deck) Shuffle(r Shuffler) {
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw 抽取顶部一张；空牌堆返回 false
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	last := len(d.cards) - 1
	c := d.cards[last]
	d.cards = d.cards[:last]
	return c, true
}

func (d *Deck) contains(id int) bool {
	for _, c := range d.cards {
		if c.ID == id {
			return true
		}
	}
	return false
}
