package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go-splendor/engine"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Lobby 所有房间
type Lobby struct {
	factory           GameFactory
	observer          Observer
	log               *zap.Logger
	defaultMaxPlayers int

	mu     sync.Mutex
	tables map[string]*Table
}

type LobbyOption func(*Lobby)

func WithObserver(o Observer) LobbyOption {
	return func(l *Lobby) { l.observer = o }
}

func WithLogger(log *zap.Logger) LobbyOption {
	return func(l *Lobby) { l.log = log }
}

// WithDefaultMaxPlayers JOIN 一个不存在的房间时自动创建，使用该人数
func WithDefaultMaxPlayers(n int) LobbyOption {
	return func(l *Lobby) { l.defaultMaxPlayers = n }
}

func NewLobby(factory GameFactory, opts ...LobbyOption) *Lobby {
	l := &Lobby{
		factory:           factory,
		observer:          NopObserver{},
		log:               zap.L(),
		defaultMaxPlayers: engine.MinPlayers,
		tables:            make(map[string]*Table),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewRoomID 8 位房间号
func NewRoomID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// CreateTable 创建房间，id 为空时自动生成
func (l *Lobby) CreateTable(id, owner string, maxPlayers int) (*Table, error) {
	return l.CreateOwnedTable(id, owner, "", maxPlayers)
}

// CreateOwnedTable ownerKey 非空时只有该身份可以删除房间
func (l *Lobby) CreateOwnedTable(id, owner, ownerKey string, maxPlayers int) (*Table, error) {
	if maxPlayers < engine.MinPlayers || maxPlayers > engine.MaxPlayers {
		return nil, fmt.Errorf("max players must be between %d and %d, got %d", engine.MinPlayers, engine.MaxPlayers, maxPlayers)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if id == "" {
		id = NewRoomID()
	}
	if _, ok := l.tables[id]; ok {
		return nil, fmt.Errorf("create room %s: %w", id, ErrRoomExists)
	}
	t := newTable(id, owner, ownerKey, maxPlayers, l.factory, l.observer, l.log)
	l.tables[id] = t
	l.observer.StatusChanged(id, t.status)
	l.log.Info("🏠 房间创建成功", zap.String("roomID", id), zap.Int("maxPlayers", maxPlayers))
	return t, nil
}

func (l *Lobby) Table(id string) (*Table, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tables[id]
	return t, ok
}

// Tables 按创建时间排序
func (l *Lobby) Tables() []*Table {
	l.mu.Lock()
	out := make([]*Table, 0, len(l.tables))
	for _, t := range l.tables {
		out = append(out, t)
	}
	l.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].createdAt.Equal(out[j].createdAt) {
			return out[i].id < out[j].id
		}
		return out[i].createdAt.Before(out[j].createdAt)
	})
	return out
}

// Remove 删除房间，在线连接全部结束
func (l *Lobby) Remove(id string) error {
	l.mu.Lock()
	t, ok := l.tables[id]
	delete(l.tables, id)
	l.mu.Unlock()
	if !ok {
		return fmt.Errorf("remove room %s: %w", id, ErrRoomNotFound)
	}

	t.mu.Lock()
	for _, st := range t.seats {
		if st.session != nil {
			st.session.send(errorResult("Room was closed."))
			st.session.setPhase(Done)
			st.session = nil
		}
	}
	t.mu.Unlock()
	l.log.Info("🗑️ 房间已删除", zap.String("roomID", id))
	return nil
}

// Join 加入房间；房间不存在时按默认人数创建
func (l *Lobby) Join(s *Session, roomID, name string) error {
	if strings.TrimSpace(roomID) == "" || strings.TrimSpace(name) == "" {
		return Reject(ErrMissingName, "Room and name are required.")
	}
	t, ok := l.Table(roomID)
	if !ok {
		var err error
		t, err = l.CreateOwnedTable(roomID, name, s.Identity(), l.defaultMaxPlayers)
		if errors.Is(err, ErrRoomExists) {
			t, ok = l.Table(roomID)
			if !ok {
				return fmt.Errorf("join room %s: %w", roomID, ErrRoomNotFound)
			}
		} else if err != nil {
			return err
		}
	}
	return t.Join(s, name)
}
