package engine

import (
	"testing"

	"go-splendor/entities"

	"github.com/stretchr/testify/require"
)

func TestTurnManager(t *testing.T) {
	tm, err := NewTurnManager(3, 1)
	require.NoError(t, err)
	require.Equal(t, 1, tm.Current())
	require.Equal(t, 2, tm.Advance())
	require.Equal(t, 0, tm.Advance())
	require.Equal(t, 1, tm.Advance())
	require.Equal(t, 1, tm.First())

	_, err = NewTurnManager(0, 0)
	require.ErrorIs(t, err, ErrInvariant)
	_, err = NewTurnManager(2, 2)
	require.ErrorIs(t, err, ErrInvariant)
}

func giveCards(p *entities.Player, startID int, prestige ...int) {
	for i, pts := range prestige {
		p.Purchase(entities.Card{ID: startID + i, Tier: 1, Prestige: pts, Bonus: entities.Black})
	}
}

func TestEndGameManager(t *testing.T) {
	t.Run("trigger then return to first player", func(t *testing.T) {
		players := []*entities.Player{entities.NewPlayer("a"), entities.NewPlayer("b"), entities.NewPlayer("c")}
		e := NewEndGameManager(0)

		e.CheckEndTriggered(players, 0)
		require.False(t, e.FinalRoundTriggered())

		giveCards(players[1], 1, 15)
		e.CheckEndTriggered(players, 1)
		require.True(t, e.FinalRoundTriggered())
		e.OnTurnAdvanced(2)
		require.False(t, e.GameOver())
		e.OnTurnAdvanced(0)
		require.True(t, e.GameOver())
	})

	t.Run("only the acting player triggers", func(t *testing.T) {
		players := []*entities.Player{entities.NewPlayer("a"), entities.NewPlayer("b")}
		giveCards(players[1], 1, 15)
		e := NewEndGameManager(0)
		e.CheckEndTriggered(players, 0)
		require.False(t, e.FinalRoundTriggered())
	})

	t.Run("acting seat out of range", func(t *testing.T) {
		players := []*entities.Player{entities.NewPlayer("a"), entities.NewPlayer("b")}
		e := NewEndGameManager(0)
		require.ErrorIs(t, e.CheckEndTriggered(players, 2), ErrInvariant)
		require.ErrorIs(t, e.CheckEndTriggered(players, -1), ErrInvariant)
		require.NoError(t, e.CheckEndTriggered(players, 1))
	})

	t.Run("no advance before trigger ends the game", func(t *testing.T) {
		e := NewEndGameManager(0)
		e.OnTurnAdvanced(0)
		require.False(t, e.GameOver())
	})
}

func TestDetermineWinner(t *testing.T) {
	t.Run("highest prestige", func(t *testing.T) {
		a, b := entities.NewPlayer("a"), entities.NewPlayer("b")
		giveCards(a, 1, 5, 5, 5)
		giveCards(b, 10, 5, 5, 5, 1)
		w, err := DetermineWinner([]*entities.Player{a, b})
		require.NoError(t, err)
		require.Equal(t, 1, w)
	})

	t.Run("tie goes to fewer purchased cards", func(t *testing.T) {
		a, b := entities.NewPlayer("a"), entities.NewPlayer("b")
		giveCards(a, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 6)
		giveCards(b, 20, 1, 1, 1, 1, 1, 1, 1, 8)
		require.Equal(t, 15, a.Prestige())
		require.Equal(t, 15, b.Prestige())
		require.Equal(t, 10, a.PurchasedCount())
		require.Equal(t, 8, b.PurchasedCount())

		w, err := DetermineWinner([]*entities.Player{a, b})
		require.NoError(t, err)
		require.Equal(t, 1, w)
	})

	t.Run("full tie goes to the lowest seat", func(t *testing.T) {
		a, b, c := entities.NewPlayer("a"), entities.NewPlayer("b"), entities.NewPlayer("c")
		giveCards(b, 1, 3)
		giveCards(c, 2, 3)
		w, err := DetermineWinner([]*entities.Player{a, b, c})
		require.NoError(t, err)
		require.Equal(t, 1, w)
	})

	t.Run("no players", func(t *testing.T) {
		_, err := DetermineWinner(nil)
		require.ErrorIs(t, err, ErrInvariant)
	})
}
