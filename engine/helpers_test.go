package engine

import (
	"testing"

	"go-splendor/entities"

	"github.com/stretchr/testify/require"
)

// testBoard 每级 6 张卡，费用都是 WHITE:3，分数等于等级。
// 一级卡 ID 1..6，发牌后桌面为 [6 5 4 3]，牌堆剩 [1 2]（2 在顶）
func testBoard(t *testing.T, nobles ...entities.Noble) *entities.Board {
	t.Helper()
	var decks [entities.MaxTier]*entities.Deck
	id := 1
	for tier := entities.MinTier; tier <= entities.MaxTier; tier++ {
		var cards []entities.Card
		for i := 0; i < 6; i++ {
			c, err := entities.NewCard(id, tier, tier, entities.StandardGems[i%5], map[entities.GemType]int{entities.White: 3})
			require.NoError(t, err)
			cards = append(cards, c)
			id++
		}
		decks[tier-1] = entities.NewDeck(tier, cards)
	}
	b, err := entities.NewBoard(decks, nobles)
	require.NoError(t, err)
	b.InitialDeal()
	for _, g := range entities.StandardGems {
		require.NoError(t, b.Supply().Set(g, 4))
	}
	require.NoError(t, b.Supply().Set(entities.Gold, 5))
	return b
}

func testState(t *testing.T, players int, nobles ...entities.Noble) *GameState {
	t.Helper()
	names := []string{"alice", "bob", "carol", "dave"}
	ps := make([]*entities.Player, players)
	for i := range ps {
		ps[i] = entities.NewPlayer(names[i])
	}
	s, err := NewGameState(testBoard(t, nobles...), ps)
	require.NoError(t, err)
	return s
}

func testGame(t *testing.T, players int, nobles ...entities.Noble) (*Game, *GameState) {
	t.Helper()
	s := testState(t, players, nobles...)
	g, err := NewGame(s, 0)
	require.NoError(t, err)
	return g, s
}

func setTokens(t *testing.T, p *entities.Player, counts map[entities.GemType]int) {
	t.Helper()
	for g, n := range counts {
		require.NoError(t, p.Tokens().Set(g, n))
	}
}

func mustNoble(t *testing.T, id string, req map[entities.GemType]int) entities.Noble {
	t.Helper()
	n, err := entities.NewNoble(id, id, req)
	require.NoError(t, err)
	return n
}

func requireReason(t *testing.T, err error, reason string) {
	t.Helper()
	require.Error(t, err)
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	require.Equal(t, reason, v.Reason)
}

type gems = map[entities.GemType]int
