package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"go-splendor/engine"
	"go-splendor/entities"
	"go-splendor/repository"
	"go-splendor/session"

	"go.uber.org/zap"
)

type fakeStore struct {
	mu      sync.Mutex
	rooms   map[string]entities.RoomInfo
	last    map[string]map[string]repository.LastAction
	wins    map[string]int
	deleted []string
	failWin bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms: map[string]entities.RoomInfo{},
		last:  map[string]map[string]repository.LastAction{},
		wins:  map[string]int{},
	}
}

func (f *fakeStore) SaveRoomInfo(_ context.Context, info entities.RoomInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms[info.RoomID] = info
	return nil
}

func (f *fakeStore) GetRoomInfo(_ context.Context, roomID string) (*entities.RoomInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.rooms[roomID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &info, nil
}

func (f *fakeStore) SetGameStatus(_ context.Context, roomID string, status entities.RoomStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	info := f.rooms[roomID]
	info.RoomID = roomID
	info.GameStatus = status
	f.rooms[roomID] = info
	return nil
}

func (f *fakeStore) SetLastAction(_ context.Context, roomID string, a repository.LastAction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last[roomID] == nil {
		f.last[roomID] = map[string]repository.LastAction{}
	}
	f.last[roomID][a.PlayerID] = a
	return nil
}

func (f *fakeStore) GetLastActions(_ context.Context, roomID string) (map[string]repository.LastAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]repository.LastAction{}
	for k, v := range f.last[roomID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) DeleteRoom(_ context.Context, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, roomID)
	delete(f.last, roomID)
	f.deleted = append(f.deleted, roomID)
	return nil
}

func (f *fakeStore) IncrWin(_ context.Context, player string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWin {
		return errors.New("redis down")
	}
	f.wins[player]++
	return nil
}

func (f *fakeStore) Leaderboard(_ context.Context, n int) ([]repository.WinCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.WinCount, 0, len(f.wins))
	for p, w := range f.wins {
		out = append(out, repository.WinCount{Player: p, Wins: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins == out[j].Wins {
			return out[i].Player < out[j].Player
		}
		return out[i].Wins > out[j].Wins
	})
	if n < len(out) {
		out = out[:n]
	}
	return out, nil
}

type fakeArchive struct {
	records []repository.GameRecord
	err     error
}

func (f *fakeArchive) SaveResult(_ context.Context, rec repository.GameRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func newTestLobby(t *testing.T, observer session.Observer) *session.Lobby {
	t.Helper()
	factory := func(names []string) (*engine.Game, error) {
		return engine.NewStandardGame(names, engine.WithSeed(7))
	}
	return session.NewLobby(factory, session.WithObserver(observer), session.WithLogger(zap.NewNop()))
}

func discard(session.Message) error { return nil }
