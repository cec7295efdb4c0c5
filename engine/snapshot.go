package engine

import "go-splendor/entities"

// MarketView 某等级的桌面
type MarketView struct {
	Tier     int             `json:"tier"`
	Cards    []entities.Card `json:"cards"`
	DeckSize int             `json:"deckSize"`
}

// BoardView 桌面快照
type BoardView struct {
	Supply  map[entities.GemType]int `json:"supply"`
	Markets []MarketView             `json:"markets"`
	Nobles  []entities.Noble         `json:"nobles"`
}

// PlayerView 玩家快照
type PlayerView struct {
	Seat        int                      `json:"seat"`
	Name        string                   `json:"name"`
	Tokens      map[entities.GemType]int `json:"tokens"`
	TotalTokens int                      `json:"totalTokens"`
	Bonuses     map[entities.GemType]int `json:"bonuses"`
	Prestige    int                      `json:"prestige"`
	Purchased   []entities.Card          `json:"purchased"`
	Reserved    []entities.Card          `json:"reserved"`
	Nobles      []entities.Noble         `json:"nobles"`
}

// Snapshot 整局快照
type Snapshot struct {
	Board         BoardView    `json:"board"`
	Players       []PlayerView `json:"players"`
	CurrentPlayer int          `json:"currentPlayer"`
	FirstPlayer   int          `json:"firstPlayer"`
	Phase         string       `json:"phase"`
	FinalRound    bool         `json:"finalRound"`
	GameOver      bool         `json:"gameOver"`
	Winner        int          `json:"winner"` // 未结束时为 -1
}

func cloneCards(cs []entities.Card) []entities.Card {
	out := make([]entities.Card, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}

func cloneNobles(ns []entities.Noble) []entities.Noble {
	out := make([]entities.Noble, len(ns))
	for i, n := range ns {
		out[i] = n.Clone()
	}
	return out
}

func newSnapshot(g *Game) Snapshot {
	b := g.state.Board
	s := Snapshot{
		Board: BoardView{
			Supply: b.Supply().Counts(),
			Nobles: cloneNobles(b.Nobles()),
		},
		CurrentPlayer: g.CurrentPlayer(),
		FirstPlayer:   g.FirstPlayer(),
		Phase:         g.phase.String(),
		FinalRound:    g.FinalRoundTriggered(),
		GameOver:      g.IsGameOver(),
		Winner:        -1,
	}
	for tier := entities.MinTier; tier <= entities.MaxTier; tier++ {
		// tier 在范围内，不会出错
		cards, _ := b.FaceUp(tier)
		size, _ := b.DeckSize(tier)
		s.Board.Markets = append(s.Board.Markets, MarketView{Tier: tier, Cards: cloneCards(cards), DeckSize: size})
	}
	for seat, p := range g.state.Players {
		s.Players = append(s.Players, PlayerView{
			Seat:        seat,
			Name:        p.Name(),
			Tokens:      p.Tokens().Counts(),
			TotalTokens: p.TotalTokens(),
			Bonuses:     p.Bonuses(),
			Prestige:    p.Prestige(),
			Purchased:   cloneCards(p.Purchased()),
			Reserved:    cloneCards(p.Reserved()),
			Nobles:      cloneNobles(p.Nobles()),
		})
	}
	if s.GameOver {
		if w, err := g.DetermineWinner(); err == nil {
			s.Winner = w
		}
	}
	return s
}
