package session

import (
	"fmt"
	"sync"
	"time"

	"go-splendor/engine"
	"go-splendor/entities"

	"go.uber.org/zap"
)

type seat struct {
	name    string
	key     string   // 入座连接的身份，重连必须一致
	session *Session // nil 表示离线
}

// SeatInfo 座位快照
type SeatInfo struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

// Table 一个房间。所有入站指令在锁内串行处理，只有轮到的座位可以修改对局
type Table struct {
	id         string
	owner      string
	ownerKey   string
	maxPlayers int
	createdAt  time.Time
	factory    GameFactory
	observer   Observer
	log        *zap.Logger

	mu        sync.Mutex
	seats     []*seat
	game      *engine.Game
	status    entities.RoomStatus
	startedAt time.Time
}

func newTable(id, owner, ownerKey string, maxPlayers int, factory GameFactory, observer Observer, log *zap.Logger) *Table {
	return &Table{
		id:         id,
		owner:      owner,
		ownerKey:   ownerKey,
		maxPlayers: maxPlayers,
		createdAt:  time.Now(),
		factory:    factory,
		observer:   observer,
		log:        log.With(zap.String("roomID", id)),
		status:     entities.RoomStatusWaiting,
	}
}

func (t *Table) ID() string { return t.id }

// OwnedBy 房间没有绑定身份时任何人都算房主
func (t *Table) OwnedBy(key string) bool {
	return t.ownerKey == "" || t.ownerKey == key
}

// Info 房间信息
func (t *Table) Info() entities.RoomInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return entities.RoomInfo{
		RoomID:     t.id,
		UserID:     t.owner,
		MaxPlayers: t.maxPlayers,
		GameStatus: t.status,
		CreatedAt:  t.createdAt,
	}
}

func (t *Table) Seats() []SeatInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SeatInfo, len(t.seats))
	for i, st := range t.seats {
		out[i] = SeatInfo{Seat: i, Name: st.name, Online: st.session != nil}
	}
	return out
}

// Snapshot 对局快照，未开局时 ok=false
func (t *Table) Snapshot() (engine.Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.game == nil {
		return engine.Snapshot{}, false
	}
	return t.game.Snapshot(), true
}

func (t *Table) setStatus(status entities.RoomStatus) {
	if t.status == status {
		return
	}
	t.status = status
	t.observer.StatusChanged(t.id, status)
}

func (t *Table) broadcast(msg Message) {
	for _, st := range t.seats {
		if st.session != nil {
			st.session.send(msg)
		}
	}
}

func (t *Table) stateMessage() Message {
	snap := t.game.Snapshot()
	return Message{Type: MsgState, RoomID: t.id, Seat: snap.CurrentPlayer, State: &snap}
}

// Join 按名字入座；同名再次加入视为重连
func (t *Table) Join(s *Session, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, st := range t.seats {
		if st.name != name {
			continue
		}
		if st.key != s.Identity() {
			return Reject(fmt.Errorf("join %s: %w", name, ErrSeatClaimed), "Seat %s belongs to another player.", name)
		}
		if st.session != nil && st.session != s {
			return Reject(fmt.Errorf("join %s: %w", name, ErrSeatOnline), "Player %s is already connected.", name)
		}
		st.session = s
		t.log.Info("🔁 玩家重连", zap.String("playerID", name), zap.Int("seat", i))
		t.welcome(s, i, name)
		return nil
	}

	if t.status == entities.RoomStatusEnd {
		return Reject(ErrGameFinished, "Game is already over.")
	}
	if t.game != nil || len(t.seats) >= t.maxPlayers {
		return Reject(ErrRoomFull, "Room is full.")
	}

	t.seats = append(t.seats, &seat{name: name, key: s.Identity(), session: s})
	idx := len(t.seats) - 1
	t.log.Info("✅ 玩家加入房间", zap.String("playerID", name), zap.Int("seat", idx))
	t.welcome(s, idx, name)

	if len(t.seats) == t.maxPlayers {
		t.start()
	}
	return nil
}

// welcome 绑定座位并补发当前进度
func (t *Table) welcome(s *Session, idx int, name string) {
	phase := AwaitingAction
	if t.status == entities.RoomStatusEnd {
		phase = Done
	}
	s.bind(t, idx, name, phase)
	s.send(Message{Type: MsgWelcome, RoomID: t.id, Seat: idx})

	if t.game == nil {
		t.broadcast(Message{Type: MsgWaiting, RoomID: t.id, Joined: len(t.seats), MaxPlayers: t.maxPlayers})
		return
	}
	s.send(t.stateMessage())
	if t.game.IsGameOver() {
		s.send(t.gameOverMessage())
		return
	}
	if t.game.CurrentPlayer() == idx {
		t.prompt(s)
	}
}

func (t *Table) start() {
	names := make([]string, len(t.seats))
	for i, st := range t.seats {
		names[i] = st.name
	}
	game, err := t.factory(names)
	if err != nil {
		t.log.Error("❌ 创建对局失败", zap.Error(err))
		t.broadcast(errorResult("Failed to start the game."))
		return
	}
	t.game = game
	t.startedAt = time.Now()
	t.setStatus(entities.RoomStatusPlaying)
	t.log.Info("🎮 游戏开始", zap.Strings("players", names))

	t.broadcast(t.stateMessage())
	if cur := t.seats[game.CurrentPlayer()].session; cur != nil {
		cur.send(Message{Type: MsgYourTurn, Seat: game.CurrentPlayer()})
	}
	t.warnIfStalled()
}

// warnIfStalled 规则没有跳过回合，当前玩家无合法动作时对局无法继续
func (t *Table) warnIfStalled() {
	if t.game.HasLegalAction() {
		return
	}
	seatIdx := t.game.CurrentPlayer()
	t.log.Warn("⚠️ 当前玩家没有合法动作", zap.String("playerID", t.seats[seatIdx].name), zap.Int("seat", seatIdx))
}

// prompt 按当前回合阶段提示轮到的玩家（重连时使用）
func (t *Table) prompt(s *Session) {
	switch t.game.Phase() {
	case engine.PhaseAction:
		s.setPhase(AwaitingAction)
		s.send(Message{Type: MsgYourTurn, Seat: t.game.CurrentPlayer()})
	case engine.PhaseDiscard:
		s.setPhase(AwaitingDiscard)
		s.send(Message{Type: MsgDiscardNeeded, Count: t.game.TokensOverLimit()})
	case engine.PhaseNoble:
		s.setPhase(AwaitingNobleChoice)
		s.send(Message{Type: MsgNobleChoice, Count: len(t.game.ClaimableNobles()), Nobles: t.game.ClaimableNobles()})
	}
}

// Handle 处理已入座连接的指令
func (t *Table) Handle(s *Session, cmd Command) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch cmd.Type {
	case CmdState:
		if t.game == nil {
			s.send(Message{Type: MsgWaiting, RoomID: t.id, Joined: len(t.seats), MaxPlayers: t.maxPlayers})
			return
		}
		s.send(t.stateMessage())
		return
	case CmdQuit:
		t.leave(s)
		s.send(okResult())
		return
	}

	if t.game == nil {
		s.send(errorResult("Game has not started."))
		return
	}
	if t.game.IsGameOver() {
		s.send(errorResult("Game is over."))
		return
	}
	seatIdx := s.Seat()
	if seatIdx != t.game.CurrentPlayer() {
		s.send(errorResult("Not your turn."))
		return
	}

	switch cmd.Type {
	case CmdAction:
		t.handleAction(s, seatIdx, cmd.Action)
	case CmdDiscard:
		t.handleDiscard(s, cmd.Discard)
	case CmdNoble:
		t.handleNoble(s, cmd.NobleIndex)
	default:
		s.send(errorResult(fmt.Sprintf("Unsupported command %q.", cmd.Type)))
	}
}

func (t *Table) handleAction(s *Session, seatIdx int, action engine.Action) {
	if s.Phase() != AwaitingAction {
		s.send(errorResult(fmt.Sprintf("Expected %s.", s.Phase())))
		return
	}
	if err := t.game.ApplyAction(action); err != nil {
		t.reject(s, err)
		return
	}
	name := t.seats[seatIdx].name
	t.log.Info("🎯 执行动作", zap.String("playerID", name), zap.Int("seat", seatIdx), zap.Stringer("action", action))
	t.observer.ActionApplied(t.id, seatIdx, name, action)
	s.send(okResult())

	if t.game.TokenLimitExceeded() {
		s.setPhase(AwaitingDiscard)
		s.send(Message{Type: MsgDiscardNeeded, Count: t.game.TokensOverLimit()})
		return
	}
	t.resolveNobles(s)
}

func (t *Table) handleDiscard(s *Session, d engine.DiscardTokens) {
	if s.Phase() != AwaitingDiscard {
		s.send(errorResult(fmt.Sprintf("Expected %s.", s.Phase())))
		return
	}
	if err := t.game.ApplyDiscard(d); err != nil {
		t.reject(s, err)
		return
	}
	seatIdx := t.game.CurrentPlayer()
	t.observer.ActionApplied(t.id, seatIdx, t.seats[seatIdx].name, d)
	s.send(okResult())
	t.resolveNobles(s)
}

func (t *Table) handleNoble(s *Session, index int) {
	if s.Phase() != AwaitingNobleChoice {
		s.send(errorResult(fmt.Sprintf("Expected %s.", s.Phase())))
		return
	}
	if index == DeclineNoble {
		s.send(okResult())
		t.endTurn(s)
		return
	}
	nobles := t.game.ClaimableNobles()
	if index < 0 || index >= len(nobles) {
		s.send(errorResult("Noble index is out of range."))
		return
	}
	if err := t.game.ClaimNoble(nobles[index].ID); err != nil {
		t.reject(s, err)
		return
	}
	t.log.Info("👑 获得贵族", zap.String("playerID", s.Name()), zap.String("noble", nobles[index].ID))
	s.send(okResult())
	t.endTurn(s)
}

// resolveNobles 只有一位可选时自动获得，多位时让玩家选择
func (t *Table) resolveNobles(s *Session) {
	nobles := t.game.ClaimableNobles()
	switch len(nobles) {
	case 0:
	case 1:
		if err := t.game.ClaimNoble(nobles[0].ID); err != nil {
			t.log.Error("❌ 自动获得贵族失败", zap.String("noble", nobles[0].ID), zap.Error(err))
			break
		}
		t.log.Info("👑 自动获得贵族", zap.String("playerID", s.Name()), zap.String("noble", nobles[0].ID))
	default:
		s.setPhase(AwaitingNobleChoice)
		s.send(Message{Type: MsgNobleChoice, Count: len(nobles), Nobles: nobles})
		return
	}
	t.endTurn(s)
}

func (t *Table) endTurn(s *Session) {
	s.setPhase(AwaitingAction)
	next, err := t.game.EndTurn()
	if err != nil {
		t.log.Error("❌ 结束回合失败", zap.Error(err))
		s.send(errorResult("Failed to end the turn."))
		return
	}
	t.broadcast(t.stateMessage())

	if t.game.IsGameOver() {
		t.finish()
		return
	}
	if t.game.FinalRoundTriggered() {
		t.setStatus(entities.RoomStatusLastTurn)
	}
	if cur := t.seats[next].session; cur != nil {
		cur.send(Message{Type: MsgYourTurn, Seat: next})
	}
	t.warnIfStalled()
}

func (t *Table) gameOverMessage() Message {
	snap := t.game.Snapshot()
	if snap.Winner < 0 {
		return Message{Type: MsgGameOver}
	}
	w := snap.Players[snap.Winner]
	return Message{Type: MsgGameOver, Seat: w.Seat, Winner: w.Name, Prestige: w.Prestige}
}

func (t *Table) finish() {
	snap := t.game.Snapshot()
	msg := t.gameOverMessage()
	t.log.Info("🏁 游戏结束", zap.String("winner", msg.Winner), zap.Int("prestige", msg.Prestige))

	for _, st := range t.seats {
		if st.session != nil {
			st.session.send(msg)
			st.session.setPhase(Done)
		}
	}
	t.setStatus(entities.RoomStatusEnd)

	result := GameResult{
		RoomID:     t.id,
		Winner:     msg.Winner,
		WinnerSeat: snap.Winner,
		StartedAt:  t.startedAt,
		FinishedAt: time.Now(),
	}
	for _, p := range snap.Players {
		result.Players = append(result.Players, PlayerResult{
			Seat:      p.Seat,
			Name:      p.Name,
			Prestige:  p.Prestige,
			Purchased: len(p.Purchased),
			Nobles:    len(p.Nobles),
		})
	}
	t.observer.GameFinished(result)
}

// reject 校验错误返回原因，其它错误记日志
func (t *Table) reject(s *Session, err error) {
	if !engine.IsValidationError(err) {
		t.log.Warn("⚠️ 动作被拒绝", zap.String("playerID", s.Name()), zap.Error(err))
	}
	s.send(errorResult(UserMessage(err)))
}

// Leave 连接断开或主动退出
func (t *Table) Leave(s *Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leave(s)
}

func (t *Table) leave(s *Session) {
	for i, st := range t.seats {
		if st.session != s {
			continue
		}
		s.setPhase(Done)
		if t.game == nil {
			t.seats = append(t.seats[:i], t.seats[i+1:]...)
			for j := i; j < len(t.seats); j++ {
				if t.seats[j].session != nil {
					t.seats[j].session.bind(t, j, t.seats[j].name, AwaitingAction)
				}
			}
			t.log.Info("👋 玩家离开房间", zap.String("playerID", st.name))
			t.broadcast(Message{Type: MsgWaiting, RoomID: t.id, Joined: len(t.seats), MaxPlayers: t.maxPlayers})
			return
		}
		st.session = nil
		t.log.Info("📴 玩家标记为离线", zap.String("playerID", st.name), zap.Int("seat", i))
		return
	}
}

// Online 在线连接数
func (t *Table) Online() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, st := range t.seats {
		if st.session != nil {
			n++
		}
	}
	return n
}
