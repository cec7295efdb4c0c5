package service

import (
	"context"
	"errors"
	"fmt"

	"go-splendor/dto"
	"go-splendor/repository"
	"go-splendor/session"
	"go-splendor/utils"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrRoomNotFound = errors.New("房间不存在")
	ErrForbidden    = errors.New("只有房主可以删除房间")
)

// RoomService 房间的 HTTP 侧操作：内存中的 Lobby 为准，Redis 补充元数据
type RoomService struct {
	lobby *session.Lobby
	store RoomStore
	log   *zap.Logger
}

func NewRoomService(lobby *session.Lobby, store RoomStore, log *zap.Logger) *RoomService {
	return &RoomService{lobby: lobby, store: store, log: log}
}

// CreateRoom key 是调用方 token 的身份 key，之后只有同一身份能删除房间
func (s *RoomService) CreateRoom(ctx context.Context, userID, key string, params dto.CreateRoomRequest) (string, error) {
	table, err := s.lobby.CreateOwnedTable("", userID, key, params.MaxPlayers)
	if err != nil {
		return "", fmt.Errorf("创建房间失败: %w", err)
	}
	if err := s.store.SaveRoomInfo(ctx, table.Info()); err != nil {
		return "", fmt.Errorf("初始化房间信息失败: %w", err)
	}
	return table.ID(), nil
}

func (s *RoomService) roomInfo(ctx context.Context, table *session.Table) dto.RoomInfo {
	info := table.Info()
	seats := table.Seats()
	players := make([]dto.RoomPlayer, 0, len(seats))
	for _, st := range seats {
		players = append(players, dto.RoomPlayer{Seat: st.Seat, Name: st.Name, Online: st.Online})
	}
	room := dto.RoomInfo{
		RoomID:     info.RoomID,
		UserID:     info.UserID,
		MaxPlayers: info.MaxPlayers,
		Status:     info.GameStatus,
		RoomPlayer: players,
	}
	last, err := s.store.GetLastActions(ctx, info.RoomID)
	if err != nil {
		s.log.Warn("⚠️ 获取最近动作失败", zap.String("roomID", info.RoomID), zap.Error(err))
		return room
	}
	if len(last) > 0 {
		room.LastAction = make(map[string]string, len(last))
		for player, a := range last {
			room.LastAction[player] = a.Action
		}
	}
	return room
}

// GetRoomList limit <= 0 表示全部
func (s *RoomService) GetRoomList(ctx context.Context, limit int) []dto.RoomInfo {
	tables := utils.SafeSlice(s.lobby.Tables(), limit)
	rooms := make([]dto.RoomInfo, 0, len(tables))
	for _, t := range tables {
		rooms = append(rooms, s.roomInfo(ctx, t))
	}
	return rooms
}

func (s *RoomService) GetRoom(ctx context.Context, roomID string) (dto.RoomInfo, error) {
	if table, ok := s.lobby.Table(roomID); ok {
		return s.roomInfo(ctx, table), nil
	}
	info, err := s.store.GetRoomInfo(ctx, roomID)
	if errors.Is(err, repository.ErrNotFound) {
		return dto.RoomInfo{}, ErrRoomNotFound
	}
	if err != nil {
		return dto.RoomInfo{}, err
	}
	return dto.RoomInfo{
		RoomID:     info.RoomID,
		UserID:     info.UserID,
		MaxPlayers: info.MaxPlayers,
		Status:     info.GameStatus,
		RoomPlayer: []dto.RoomPlayer{},
	}, nil
}

// DeleteRoom 关闭内存中的房间并清理 Redis，房主名和身份 key 都要匹配
func (s *RoomService) DeleteRoom(ctx context.Context, userID, key, roomID string) error {
	table, ok := s.lobby.Table(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	if owner := table.Info().UserID; owner != "" && owner != userID {
		return ErrForbidden
	}
	if !table.OwnedBy(key) {
		return ErrForbidden
	}
	err := s.lobby.Remove(roomID)
	if errors.Is(err, session.ErrRoomNotFound) {
		return ErrRoomNotFound
	}
	err = multierr.Append(err, s.store.DeleteRoom(ctx, roomID))
	if err != nil {
		return fmt.Errorf("删除房间失败: %w", err)
	}
	return nil
}

func (s *RoomService) GetLeaderboard(ctx context.Context, n int) ([]dto.LeaderboardEntry, error) {
	wins, err := s.store.Leaderboard(ctx, n)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.LeaderboardEntry, 0, len(wins))
	for i, w := range wins {
		entries = append(entries, dto.LeaderboardEntry{Rank: i + 1, Player: w.Player, Wins: w.Wins})
	}
	return entries, nil
}
