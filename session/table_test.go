package session

import (
	"sync"
	"testing"

	"go-splendor/engine"
	"go-splendor/entities"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *recorder) Send(m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *recorder) all() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.msgs = nil
	r.mu.Unlock()
}

func (r *recorder) types() []MessageType {
	var out []MessageType
	for _, m := range r.all() {
		out = append(out, m.Type)
	}
	return out
}

// lastOf 最后一条指定类型的消息
func (r *recorder) lastOf(t MessageType) (Message, bool) {
	msgs := r.all()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == t {
			return msgs[i], true
		}
	}
	return Message{}, false
}

type observerRecorder struct {
	statuses []entities.RoomStatus
	actions  []string
	results  []GameResult
}

func (o *observerRecorder) StatusChanged(_ string, status entities.RoomStatus) {
	o.statuses = append(o.statuses, status)
}

func (o *observerRecorder) ActionApplied(_ string, _ int, player string, action engine.Action) {
	o.actions = append(o.actions, player+" "+action.String())
}

func (o *observerRecorder) GameFinished(result GameResult) {
	o.results = append(o.results, result)
}

// fixture 固定布局的对局：每级 6 张卡，费用 WHITE:1，一级桌面第 0 张为白色折扣
type fixture struct {
	lobby    *Lobby
	observer *observerRecorder
	state    *engine.GameState
}

func newFixture(t *testing.T, nobles ...entities.Noble) *fixture {
	t.Helper()
	f := &fixture{observer: &observerRecorder{}}
	factory := func(names []string) (*engine.Game, error) {
		var decks [entities.MaxTier]*entities.Deck
		id := 1
		for tier := entities.MinTier; tier <= entities.MaxTier; tier++ {
			var cards []entities.Card
			for i := 0; i < 6; i++ {
				c, err := entities.NewCard(id, tier, tier, entities.StandardGems[i%5], map[entities.GemType]int{entities.White: 1})
				require.NoError(t, err)
				cards = append(cards, c)
				id++
			}
			decks[tier-1] = entities.NewDeck(tier, cards)
		}
		board, err := entities.NewBoard(decks, nobles)
		require.NoError(t, err)
		board.InitialDeal()
		for _, g := range entities.StandardGems {
			require.NoError(t, board.Supply().Set(g, 20))
		}
		require.NoError(t, board.Supply().Set(entities.Gold, 5))

		players := make([]*entities.Player, len(names))
		for i, n := range names {
			players[i] = entities.NewPlayer(n)
		}
		f.state, err = engine.NewGameState(board, players)
		require.NoError(t, err)
		return engine.NewGame(f.state, 0)
	}
	f.lobby = NewLobby(factory, WithObserver(f.observer), WithLogger(zap.NewNop()))
	return f
}

func (f *fixture) join(t *testing.T, room, name string) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := NewSession(name, f.lobby, rec)
	s.Handle(Command{Type: CmdJoin, RoomID: room, Name: name})
	_, ok := rec.lastOf(MsgWelcome)
	require.True(t, ok, "welcome for %s", name)
	return s, rec
}

func takeThree() Command {
	return Command{Type: CmdAction, Action: engine.Take(map[entities.GemType]int{
		entities.Blue: 1, entities.Green: 1, entities.Red: 1,
	})}
}

func requireResult(t *testing.T, rec *recorder, ok bool, reason string) {
	t.Helper()
	m, found := rec.lastOf(MsgResult)
	require.True(t, found)
	require.Equal(t, ok, m.OK)
	require.Equal(t, reason, m.Error)
}

func TestTableJoinAndStart(t *testing.T) {
	f := newFixture(t)
	alice, aliceRec := f.join(t, "r1", "alice")
	require.Equal(t, AwaitingAction, alice.Phase())
	waiting, ok := aliceRec.lastOf(MsgWaiting)
	require.True(t, ok)
	require.Equal(t, 1, waiting.Joined)
	require.Equal(t, 2, waiting.MaxPlayers)

	bob, bobRec := f.join(t, "r1", "bob")
	require.Equal(t, 1, bob.Seat())

	_, ok = aliceRec.lastOf(MsgYourTurn)
	require.True(t, ok)
	_, ok = bobRec.lastOf(MsgYourTurn)
	require.False(t, ok)
	st, ok := bobRec.lastOf(MsgState)
	require.True(t, ok)
	require.Len(t, st.State.Players, 2)

	tb, ok := f.lobby.Table("r1")
	require.True(t, ok)
	require.Equal(t, entities.RoomStatusPlaying, tb.Info().GameStatus)
	require.Equal(t, []entities.RoomStatus{entities.RoomStatusWaiting, entities.RoomStatusPlaying}, f.observer.statuses)

	carol := NewSession("carol", f.lobby, &recorder{})
	err := f.lobby.Join(carol, "r1", "carol")
	require.ErrorIs(t, err, ErrRoomFull)
	require.Equal(t, "room is full", err.Error())
	require.Equal(t, "Room is full.", UserMessage(err))
	require.Equal(t, AwaitingJoin, carol.Phase())
}

func TestSessionRequiresJoin(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	s := NewSession("x", f.lobby, rec)

	s.Handle(takeThree())
	requireResult(t, rec, false, "Join a room first.")
	require.Equal(t, AwaitingJoin, s.Phase())

	s.Handle(Command{Type: CmdJoin, RoomID: "", Name: "x"})
	require.Equal(t, AwaitingJoin, s.Phase())
}

func TestTableTurnGating(t *testing.T) {
	f := newFixture(t)
	alice, aliceRec := f.join(t, "r1", "alice")
	bob, bobRec := f.join(t, "r1", "bob")

	before := f.state.TokenTotals()
	bob.Handle(takeThree())
	requireResult(t, bobRec, false, "Not your turn.")
	require.Equal(t, 0, f.state.Players[1].TotalTokens())

	alice.Handle(takeThree())
	requireResult(t, aliceRec, true, "")
	require.Equal(t, before, f.state.TokenTotals())
	require.Equal(t, 3, f.state.Players[0].TotalTokens())

	_, ok := bobRec.lastOf(MsgYourTurn)
	require.True(t, ok)
	require.Equal(t, []string{"alice TAKE BLUE:1,GREEN:1,RED:1"}, f.observer.actions)

	bob.Handle(Command{Type: CmdAction, Action: engine.Take(map[entities.GemType]int{entities.Gold: 1})})
	requireResult(t, bobRec, false, "You may not take gold tokens.")
	require.Equal(t, AwaitingAction, bob.Phase())
}

func TestTableForcedDiscard(t *testing.T) {
	f := newFixture(t)
	alice, aliceRec := f.join(t, "r1", "alice")
	_, bobRec := f.join(t, "r1", "bob")
	require.NoError(t, f.state.Players[0].Tokens().Set(entities.Black, 9))

	alice.Handle(takeThree())
	require.Equal(t, AwaitingDiscard, alice.Phase())
	need, ok := aliceRec.lastOf(MsgDiscardNeeded)
	require.True(t, ok)
	require.Equal(t, 2, need.Count)

	alice.Handle(takeThree())
	requireResult(t, aliceRec, false, "Expected awaiting_discard.")

	alice.Handle(Command{Type: CmdDiscard, Discard: engine.Discard(map[entities.GemType]int{entities.Black: 1})})
	requireResult(t, aliceRec, false, "You must discard enough tokens to reach 10 or fewer.")
	require.Equal(t, AwaitingDiscard, alice.Phase())

	alice.Handle(Command{Type: CmdDiscard, Discard: engine.Discard(map[entities.GemType]int{entities.Black: 2})})
	requireResult(t, aliceRec, true, "")
	require.Equal(t, AwaitingAction, alice.Phase())
	require.Equal(t, 10, f.state.Players[0].TotalTokens())
	_, ok = bobRec.lastOf(MsgYourTurn)
	require.True(t, ok)
}

func TestTableNobleAutoClaim(t *testing.T) {
	noble, err := entities.NewNoble("N1", "Mary Stuart", map[entities.GemType]int{entities.White: 1})
	require.NoError(t, err)
	f := newFixture(t, noble)
	alice, aliceRec := f.join(t, "r1", "alice")
	f.join(t, "r1", "bob")
	require.NoError(t, f.state.Players[0].Tokens().Set(entities.White, 1))

	alice.Handle(Command{Type: CmdAction, Action: engine.BuyFromMarket(1, 0)})
	requireResult(t, aliceRec, true, "")
	_, ok := aliceRec.lastOf(MsgNobleChoice)
	require.False(t, ok)
	require.Len(t, f.state.Players[0].Nobles(), 1)
	require.Equal(t, 1+entities.NoblePrestige, f.state.Players[0].Prestige())
	require.Empty(t, f.state.Board.Nobles())
	require.Equal(t, AwaitingAction, alice.Phase())
}

func TestTableNobleChoice(t *testing.T) {
	n1, err := entities.NewNoble("N1", "Mary Stuart", map[entities.GemType]int{entities.White: 1})
	require.NoError(t, err)
	n2, err := entities.NewNoble("N2", "Henry VIII", map[entities.GemType]int{entities.White: 1})
	require.NoError(t, err)
	f := newFixture(t, n1, n2)
	alice, aliceRec := f.join(t, "r1", "alice")
	_, bobRec := f.join(t, "r1", "bob")
	require.NoError(t, f.state.Players[0].Tokens().Set(entities.White, 1))

	alice.Handle(Command{Type: CmdAction, Action: engine.BuyFromMarket(1, 0)})
	require.Equal(t, AwaitingNobleChoice, alice.Phase())
	choice, ok := aliceRec.lastOf(MsgNobleChoice)
	require.True(t, ok)
	require.Equal(t, 2, choice.Count)
	require.Len(t, choice.Nobles, 2)

	alice.Handle(Command{Type: CmdNoble, NobleIndex: 5})
	requireResult(t, aliceRec, false, "Noble index is out of range.")
	require.Equal(t, AwaitingNobleChoice, alice.Phase())

	bobRec.reset()
	alice.Handle(Command{Type: CmdNoble, NobleIndex: 1})
	requireResult(t, aliceRec, true, "")
	require.Equal(t, "N2", f.state.Players[0].Nobles()[0].ID)
	require.Equal(t, []MessageType{MsgState, MsgYourTurn}, bobRec.types())
}

func TestTableNobleDecline(t *testing.T) {
	n1, err := entities.NewNoble("N1", "Mary Stuart", map[entities.GemType]int{entities.White: 1})
	require.NoError(t, err)
	n2, err := entities.NewNoble("N2", "Henry VIII", map[entities.GemType]int{entities.White: 1})
	require.NoError(t, err)
	f := newFixture(t, n1, n2)
	alice, aliceRec := f.join(t, "r1", "alice")
	f.join(t, "r1", "bob")
	require.NoError(t, f.state.Players[0].Tokens().Set(entities.White, 1))

	alice.Handle(Command{Type: CmdAction, Action: engine.BuyFromMarket(1, 0)})
	alice.Handle(Command{Type: CmdNoble, NobleIndex: DeclineNoble})
	requireResult(t, aliceRec, true, "")
	require.Empty(t, f.state.Players[0].Nobles())
	require.Len(t, f.state.Board.Nobles(), 2)
	require.Equal(t, AwaitingAction, alice.Phase())
}

func TestTableGameOver(t *testing.T) {
	f := newFixture(t)
	alice, aliceRec := f.join(t, "r1", "alice")
	bob, bobRec := f.join(t, "r1", "bob")
	f.state.Players[0].Purchase(entities.Card{ID: 900, Tier: 3, Prestige: 15, Bonus: entities.Black})

	alice.Handle(takeThree())
	tb, _ := f.lobby.Table("r1")
	require.Equal(t, entities.RoomStatusLastTurn, tb.Info().GameStatus)

	bob.Handle(takeThree())
	for _, rec := range []*recorder{aliceRec, bobRec} {
		over, ok := rec.lastOf(MsgGameOver)
		require.True(t, ok)
		require.Equal(t, "alice", over.Winner)
		require.Equal(t, 15, over.Prestige)
	}
	require.Equal(t, Done, alice.Phase())
	require.Equal(t, Done, bob.Phase())
	require.Equal(t, entities.RoomStatusEnd, tb.Info().GameStatus)

	require.Len(t, f.observer.results, 1)
	res := f.observer.results[0]
	require.Equal(t, "alice", res.Winner)
	require.Equal(t, 0, res.WinnerSeat)
	require.Len(t, res.Players, 2)

	bob.Handle(takeThree())
	requireResult(t, bobRec, false, "Session is finished.")
	bobRec.reset()
	bob.Handle(Command{Type: CmdState})
	require.Equal(t, []MessageType{MsgState}, bobRec.types())
}

func TestTableReconnect(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.join(t, "r1", "alice")
	f.join(t, "r1", "bob")

	alice.Close()
	require.Equal(t, Done, alice.Phase())
	tb, _ := f.lobby.Table("r1")
	require.Equal(t, 1, tb.Online())

	again, rec := f.join(t, "r1", "alice")
	require.Equal(t, 0, again.Seat())
	require.Equal(t, []MessageType{MsgWelcome, MsgState, MsgYourTurn}, rec.types())

	again.Handle(takeThree())
	requireResult(t, rec, true, "")
}

func TestTableSeatIdentity(t *testing.T) {
	f := newFixture(t)
	joinAs := func(name, key string) (*Session, *recorder) {
		rec := &recorder{}
		s := NewSession(name+"-"+key, f.lobby, rec)
		s.SetIdentity(key)
		s.Handle(Command{Type: CmdJoin, RoomID: "r1", Name: name})
		return s, rec
	}
	alice, _ := joinAs("alice", "k-alice")
	joinAs("bob", "k-bob")

	tb, ok := f.lobby.Table("r1")
	require.True(t, ok)
	require.True(t, tb.OwnedBy("k-alice"))
	require.False(t, tb.OwnedBy("k-bob"))

	t.Run("online seat", func(t *testing.T) {
		_, rec := joinAs("alice", "k-alice")
		requireResult(t, rec, false, "Player alice is already connected.")
	})

	alice.Close()

	t.Run("other identity cannot take the seat", func(t *testing.T) {
		s, rec := joinAs("alice", "k-mallory")
		requireResult(t, rec, false, "Seat alice belongs to another player.")
		require.Equal(t, AwaitingJoin, s.Phase())

		err := f.lobby.Join(NewSession("x", f.lobby, &recorder{}), "r1", "alice")
		require.ErrorIs(t, err, ErrSeatClaimed)
	})

	t.Run("same identity reconnects", func(t *testing.T) {
		s, rec := joinAs("alice", "k-alice")
		require.Equal(t, 0, s.Seat())
		_, ok := rec.lastOf(MsgYourTurn)
		require.True(t, ok)
	})
}

func TestTableLeaveBeforeStart(t *testing.T) {
	f := newFixture(t)
	f.lobby.defaultMaxPlayers = 3
	alice, _ := f.join(t, "r1", "alice")
	bob, bobRec := f.join(t, "r1", "bob")

	alice.Handle(Command{Type: CmdQuit})
	require.Equal(t, Done, alice.Phase())
	require.Equal(t, 0, bob.Seat())
	waiting, ok := bobRec.lastOf(MsgWaiting)
	require.True(t, ok)
	require.Equal(t, 1, waiting.Joined)

	bob.Handle(takeThree())
	requireResult(t, bobRec, false, "Game has not started.")
}
