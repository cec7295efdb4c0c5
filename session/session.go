package session

import (
	"sync"

	"go.uber.org/zap"
)

// Session 一个客户端连接。入站指令按顺序交给 Handle，不在多个 goroutine 并发调用
type Session struct {
	id     string
	lobby  *Lobby
	sender Sender

	mu       sync.Mutex
	identity string
	phase    Phase
	table    *Table
	seat     int
	name     string
}

func NewSession(id string, lobby *Lobby, sender Sender) *Session {
	return &Session{id: id, lobby: lobby, sender: sender, phase: AwaitingJoin, seat: -1}
}

func (s *Session) ID() string { return s.id }

// SetIdentity 绑定已认证的身份，入座前调用
func (s *Session) SetIdentity(key string) {
	s.mu.Lock()
	s.identity = key
	s.mu.Unlock()
}

func (s *Session) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Seat 座位号，未加入时为 -1
func (s *Session) Seat() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seat
}

func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Session) Table() *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}

func (s *Session) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

func (s *Session) bind(t *Table, seat int, name string, p Phase) {
	s.mu.Lock()
	s.table, s.seat, s.name, s.phase = t, seat, name, p
	s.mu.Unlock()
}

func (s *Session) send(msg Message) {
	if err := s.sender.Send(msg); err != nil {
		s.lobby.log.Warn("⚠️ 消息发送失败",
			zap.String("session", s.id),
			zap.String("type", string(msg.Type)),
			zap.Error(err))
	}
}

// Handle 处理一条入站指令，结果通过 Sender 返回
func (s *Session) Handle(cmd Command) {
	switch s.Phase() {
	case AwaitingJoin:
		switch cmd.Type {
		case CmdJoin:
			if err := s.lobby.Join(s, cmd.RoomID, cmd.Name); err != nil {
				s.send(errorResult(UserMessage(err)))
			}
		case CmdQuit:
			s.setPhase(Done)
			s.send(okResult())
		default:
			s.send(errorResult("Join a room first."))
		}
		return
	case Done:
		if cmd.Type == CmdState {
			if t := s.Table(); t != nil {
				t.Handle(s, cmd)
				return
			}
		}
		s.send(errorResult("Session is finished."))
		return
	}

	if cmd.Type == CmdJoin {
		s.send(errorResult("Already joined a room."))
		return
	}
	s.Table().Handle(s, cmd)
}

// Close 连接断开时调用
func (s *Session) Close() {
	if t := s.Table(); t != nil {
		t.Leave(s)
		return
	}
	s.setPhase(Done)
}
