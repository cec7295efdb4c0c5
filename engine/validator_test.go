package engine

import (
	"testing"

	"go-splendor/entities"

	"github.com/stretchr/testify/require"
)

func TestValidateTakeTokens(t *testing.T) {
	s := testState(t, 2)

	t.Run("three different colors", func(t *testing.T) {
		require.NoError(t, Validate(s, 0, Take(gems{entities.White: 1, entities.Blue: 1, entities.Red: 1})))
	})

	t.Run("two of a color with four in supply", func(t *testing.T) {
		require.NoError(t, Validate(s, 0, Take(gems{entities.Green: 2})))
	})

	t.Run("zero entries are ignored", func(t *testing.T) {
		require.NoError(t, Validate(s, 0, Take(gems{entities.Green: 2, entities.Red: 0})))
	})

	t.Run("two of a color needs four in supply", func(t *testing.T) {
		require.NoError(t, s.Board.Supply().Set(entities.Black, 3))
		defer func() { require.NoError(t, s.Board.Supply().Set(entities.Black, 4)) }()

		requireReason(t, Validate(s, 0, Take(gems{entities.Black: 2})),
			"You may take two of a color only if at least 4 are in the supply.")
	})

	t.Run("gold cannot be taken", func(t *testing.T) {
		requireReason(t, Validate(s, 0, Take(gems{entities.Gold: 1, entities.White: 1, entities.Blue: 1})),
			"You may not take gold tokens.")
	})

	t.Run("three colors must be one each", func(t *testing.T) {
		requireReason(t, Validate(s, 0, Take(gems{entities.White: 2, entities.Blue: 1, entities.Red: 1})),
			"To take three colors, you must take 1 of each.")
	})

	t.Run("wrong shapes", func(t *testing.T) {
		shapes := []map[entities.GemType]int{
			{},
			{entities.White: 1},
			{entities.White: 1, entities.Blue: 1},
			{entities.White: 3},
			{entities.White: 1, entities.Blue: 1, entities.Red: 1, entities.Green: 1},
		}
		for _, shape := range shapes {
			requireReason(t, Validate(s, 0, Take(shape)),
				"You must either take 3 different colors or 2 of one color.")
		}
	})

	t.Run("empty color in supply", func(t *testing.T) {
		require.NoError(t, s.Board.Supply().Set(entities.Red, 0))
		defer func() { require.NoError(t, s.Board.Supply().Set(entities.Red, 4)) }()

		requireReason(t, Validate(s, 0, Take(gems{entities.White: 1, entities.Blue: 1, entities.Red: 1})),
			"There are no RED tokens left in the supply.")
	})

	t.Run("negative and unknown amounts", func(t *testing.T) {
		requireReason(t, Validate(s, 0, Take(gems{entities.White: -1, entities.Blue: 2})),
			"Token amounts must not be negative.")
		require.True(t, IsValidationError(Validate(s, 0, Take(gems{"Purple": 1}))))
	})
}

func TestValidateBuyCard(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]

	t.Run("cannot afford", func(t *testing.T) {
		requireReason(t, Validate(s, 0, BuyFromMarket(1, 0)), "You cannot afford that card.")
	})

	t.Run("gold covers the shortfall", func(t *testing.T) {
		setTokens(t, p, gems{entities.White: 1, entities.Gold: 2})
		require.NoError(t, Validate(s, 0, BuyFromMarket(1, 0)))
		setTokens(t, p, gems{entities.White: 0, entities.Gold: 0})
	})

	t.Run("bonus discounts the cost", func(t *testing.T) {
		other := entities.NewPlayer("x")
		for i := 0; i < 3; i++ {
			other.Purchase(entities.Card{ID: 100 + i, Tier: 1, Bonus: entities.White})
		}
		c, err := s.Board.FaceUpCard(1, 0)
		require.NoError(t, err)
		require.True(t, CanAfford(other, c))
		require.Equal(t, 0, Shortfall(other, c))
	})

	t.Run("bad positions", func(t *testing.T) {
		requireReason(t, Validate(s, 0, BuyFromMarket(0, 0)), "Invalid card tier.")
		requireReason(t, Validate(s, 0, BuyFromMarket(4, 0)), "Invalid card tier.")
		requireReason(t, Validate(s, 0, BuyFromMarket(1, 4)), "No card at that position.")
		requireReason(t, Validate(s, 0, BuyFromMarket(1, -1)), "No card at that position.")
		requireReason(t, Validate(s, 0, BuyFromReserved(0)), "Reserved card index is out of range.")
	})
}

func TestValidateReserveCard(t *testing.T) {
	t.Run("market and top are legal", func(t *testing.T) {
		s := testState(t, 2)
		require.NoError(t, Validate(s, 0, ReserveFromMarket(2, 3)))
		require.NoError(t, Validate(s, 0, ReserveFromTop(3)))
	})

	t.Run("at most three reserved", func(t *testing.T) {
		s := testState(t, 2)
		for i := 0; i < entities.MaxReservedCards; i++ {
			require.NoError(t, s.Players[0].Reserve(entities.Card{ID: 200 + i}))
		}
		requireReason(t, Validate(s, 0, ReserveFromMarket(1, 0)),
			"You already have the maximum of 3 reserved cards.")
	})

	t.Run("empty deck", func(t *testing.T) {
		s := testState(t, 2)
		for s.Board.HasCardsInDeck(1) {
			_, _, err := s.Board.DrawFromDeck(1)
			require.NoError(t, err)
		}
		requireReason(t, Validate(s, 0, ReserveFromTop(1)), "That deck is empty; you cannot reserve from it.")
		require.NoError(t, Validate(s, 0, ReserveFromMarket(1, 0)), "the market is still dealt")
	})

	t.Run("bad positions", func(t *testing.T) {
		s := testState(t, 2)
		requireReason(t, Validate(s, 0, ReserveFromTop(0)), "Invalid card tier.")
		requireReason(t, Validate(s, 0, ReserveFromMarket(2, 7)), "No card at that position.")
	})
}

func TestValidateDiscard(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]
	setTokens(t, p, gems{entities.White: 4, entities.Blue: 4, entities.Red: 3})

	requireReason(t, Validate(s, 0, Discard(nil)), "You must discard at least one token.")
	requireReason(t, Validate(s, 0, Discard(gems{entities.White: 0})), "Discard amounts must be positive.")
	requireReason(t, Validate(s, 0, Discard(gems{entities.Green: 1})), "You do not have 1 GREEN tokens to discard.")
	require.NoError(t, Validate(s, 0, Discard(gems{entities.Red: 1})))
	require.NoError(t, Validate(s, 0, Discard(gems{entities.Red: 1, entities.White: 2})))

	setTokens(t, p, gems{entities.Gold: 2})
	requireReason(t, Validate(s, 0, Discard(gems{entities.Red: 1})),
		"You must discard enough tokens to reach 10 or fewer.")
	require.NoError(t, Validate(s, 0, Discard(gems{entities.Gold: 2, entities.Red: 1})))
}

func TestValidateHasNoSideEffects(t *testing.T) {
	g, s := testGame(t, 2)
	before := g.Snapshot()

	require.Error(t, Validate(s, 0, nil))
	requireReason(t, Validate(s, 0, nil), "No action selected.")
	_ = Validate(s, 0, Take(gems{entities.White: 1, entities.Blue: 1, entities.Red: 1}))
	_ = Validate(s, 0, ReserveFromTop(1))
	_ = Validate(s, 0, BuyFromMarket(1, 0))

	require.Equal(t, before, g.Snapshot())
}

func TestValidateSeatOutOfRange(t *testing.T) {
	s := testState(t, 2)
	err := Validate(s, 5, ReserveFromTop(1))
	require.ErrorIs(t, err, ErrInvariant)
	require.False(t, IsValidationError(err))
}
