package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-splendor/entities"

	"golang.org/x/exp/rand"
)

const (
	MinPlayers = 2
	MaxPlayers = 4

	// GoldSupply 黄金数量与人数无关
	GoldSupply = 5
)

// SupplyPerColor 每种普通颜色的初始数量：2 人 4 个，3 人 5 个，4 人 7 个
func SupplyPerColor(players int) (int, error) {
	switch players {
	case 2:
		return 4, nil
	case 3:
		return 5, nil
	case 4:
		return 7, nil
	}
	return 0, fmt.Errorf("unsupported player count %d", players)
}

// IDSequence 卡牌 ID 生成器，由开局流程持有
type IDSequence struct {
	next int
}

func NewIDSequence(start int) *IDSequence {
	return &IDSequence{next: start}
}

func (s *IDSequence) Next() int {
	id := s.next
	s.next++
	return id
}

type setupConfig struct {
	rng    *rand.Rand
	ids    *IDSequence
	first  int
	cards  []CardTemplate
	nobles []NobleTemplate
}

// SetupOption 开局参数
type SetupOption func(*setupConfig)

// WithSeed 固定随机种子，洗牌和贵族抽取可复现
func WithSeed(seed uint64) SetupOption {
	return func(c *setupConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithIDSequence 指定卡牌 ID 生成器
func WithIDSequence(ids *IDSequence) SetupOption {
	return func(c *setupConfig) {
		c.ids = ids
	}
}

// WithFirstPlayer 指定首位玩家，默认 0
func WithFirstPlayer(seat int) SetupOption {
	return func(c *setupConfig) {
		c.first = seat
	}
}

// WithCatalogue 替换卡牌和贵族目录，测试用
func WithCatalogue(cards []CardTemplate, nobles []NobleTemplate) SetupOption {
	return func(c *setupConfig) {
		c.cards = cards
		c.nobles = nobles
	}
}

// ValidatePlayerNames 2~4 个非空且不重复的名字
func ValidatePlayerNames(names []string) error {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return fmt.Errorf("need %d to %d players, got %d", MinPlayers, MaxPlayers, len(names))
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return errors.New("player name must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate player name %q", name)
		}
		seen[name] = true
	}
	return nil
}

// NewStandardGame 标准开局：洗牌、每级翻 4 张、抽 人数+1 位贵族、按人数放宝石
func NewStandardGame(names []string, opts ...SetupOption) (*Game, error) {
	if err := ValidatePlayerNames(names); err != nil {
		return nil, err
	}
	cfg := &setupConfig{cards: StandardCards, nobles: StandardNobles}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if cfg.ids == nil {
		cfg.ids = NewIDSequence(1)
	}

	decks, err := buildDecks(cfg.cards, cfg.ids, cfg.rng)
	if err != nil {
		return nil, err
	}
	nobles, err := pickNobles(cfg.nobles, len(names)+1, cfg.rng)
	if err != nil {
		return nil, err
	}
	board, err := entities.NewBoard(decks, nobles)
	if err != nil {
		return nil, err
	}
	board.InitialDeal()

	perColor, err := SupplyPerColor(len(names))
	if err != nil {
		return nil, err
	}
	for _, g := range entities.StandardGems {
		if err := board.Supply().Set(g, perColor); err != nil {
			return nil, err
		}
	}
	if err := board.Supply().Set(entities.Gold, GoldSupply); err != nil {
		return nil, err
	}

	players := make([]*entities.Player, len(names))
	for i, name := range names {
		players[i] = entities.NewPlayer(name)
	}
	state, err := NewGameState(board, players)
	if err != nil {
		return nil, err
	}
	return NewGame(state, cfg.first)
}

func buildDecks(templates []CardTemplate, ids *IDSequence, rng *rand.Rand) ([entities.MaxTier]*entities.Deck, error) {
	var decks [entities.MaxTier]*entities.Deck
	byTier := make([][]entities.Card, entities.MaxTier)
	for _, t := range templates {
		c, err := entities.NewCard(ids.Next(), t.Tier, t.Prestige, t.Bonus, t.Cost)
		if err != nil {
			return decks, fmt.Errorf("build card catalogue: %w", err)
		}
		byTier[t.Tier-1] = append(byTier[t.Tier-1], c)
	}
	for i := range decks {
		decks[i] = entities.NewDeck(i+1, byTier[i])
		decks[i].Shuffle(rng)
	}
	return decks, nil
}

func pickNobles(templates []NobleTemplate, count int, rng *rand.Rand) ([]entities.Noble, error) {
	if count > len(templates) {
		return nil, fmt.Errorf("need %d nobles, catalogue has %d: %w", count, len(templates), ErrInvariant)
	}
	all := make([]entities.Noble, 0, len(templates))
	for _, t := range templates {
		n, err := entities.NewNoble(t.ID, t.Name, t.Requirements)
		if err != nil {
			return nil, fmt.Errorf("build noble catalogue: %w", err)
		}
		all = append(all, n)
	}
	rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return all[:count], nil
}
