package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-splendor/entities"

	"github.com/go-redis/redis/v8"
)

var ErrNotFound = errors.New("not found")

const leaderboardKey = "splendor:leaderboard"

func roomInfoKey(roomID string) string { return fmt.Sprintf("room:%s:roomInfo", roomID) }
func lastDataKey(roomID string) string { return fmt.Sprintf("room:%s:last_data", roomID) }
func playerField(name string) string   { return fmt.Sprintf("player:%s", name) }

// LastAction 玩家最近一次成功的动作
type LastAction struct {
	Action   string    `json:"action"`
	PlayerID string    `json:"playerID"`
	Seat     int       `json:"seat"`
	At       time.Time `json:"at"`
}

// WinCount 排行榜条目
type WinCount struct {
	Player string
	Wins   int
}

// RoomStore 房间元数据、最近动作和胜场排行，存 Redis
type RoomStore struct {
	rdb redis.Cmdable
}

func NewRoomStore(rdb redis.Cmdable) *RoomStore {
	return &RoomStore{rdb: rdb}
}

func encodeRoomInfo(info entities.RoomInfo) map[string]interface{} {
	return map[string]interface{}{
		"roomID":     info.RoomID,
		"userID":     info.UserID,
		"maxPlayers": strconv.Itoa(info.MaxPlayers),
		"gameStatus": string(info.GameStatus),
		"createdAt":  info.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func decodeRoomInfo(roomID string, m map[string]string) (*entities.RoomInfo, error) {
	if len(m) == 0 {
		return nil, ErrNotFound
	}
	info := &entities.RoomInfo{
		RoomID:     roomID,
		UserID:     m["userID"],
		GameStatus: entities.RoomStatus(m["gameStatus"]),
	}
	if s := m["maxPlayers"]; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("maxPlayers 字段解析失败: %w", err)
		}
		info.MaxPlayers = n
	}
	if s := m["createdAt"]; s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("createdAt 字段解析失败: %w", err)
		}
		info.CreatedAt = ts
	}
	return info, nil
}

// SaveRoomInfo 设置房间的全部信息（Hash）
func (s *RoomStore) SaveRoomInfo(ctx context.Context, info entities.RoomInfo) error {
	if err := s.rdb.HSet(ctx, roomInfoKey(info.RoomID), encodeRoomInfo(info)).Err(); err != nil {
		return fmt.Errorf("❌ 设置房间信息失败: %w", err)
	}
	return nil
}

func (s *RoomStore) GetRoomInfo(ctx context.Context, roomID string) (*entities.RoomInfo, error) {
	m, err := s.rdb.HGetAll(ctx, roomInfoKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("❌ 获取房间信息失败: %w", err)
	}
	return decodeRoomInfo(roomID, m)
}

func (s *RoomStore) SetGameStatus(ctx context.Context, roomID string, status entities.RoomStatus) error {
	if err := s.rdb.HSet(ctx, roomInfoKey(roomID), "gameStatus", string(status)).Err(); err != nil {
		return fmt.Errorf("更新房间状态失败: %w", err)
	}
	return nil
}

func (s *RoomStore) SetLastAction(ctx context.Context, roomID string, action LastAction) error {
	raw, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("序列化 LastAction 失败: %w", err)
	}
	return s.rdb.HSet(ctx, lastDataKey(roomID), playerField(action.PlayerID), raw).Err()
}

// GetLastActions playerID -> 最近动作
func (s *RoomStore) GetLastActions(ctx context.Context, roomID string) (map[string]LastAction, error) {
	m, err := s.rdb.HGetAll(ctx, lastDataKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("获取最近动作失败: %w", err)
	}
	return decodeLastActions(m)
}

func decodeLastActions(m map[string]string) (map[string]LastAction, error) {
	out := make(map[string]LastAction, len(m))
	for field, raw := range m {
		var a LastAction
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, fmt.Errorf("反序列化 LastAction %s 失败: %w", field, err)
		}
		out[a.PlayerID] = a
	}
	return out, nil
}

// DeleteRoom 用 SCAN 删除所有以 room:{roomID}: 开头的 key
func (s *RoomStore) DeleteRoom(ctx context.Context, roomID string) error {
	prefix := fmt.Sprintf("room:%s:", roomID)
	var cursor uint64
	var keys []string
	for {
		batch, cur, err := s.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("扫描房间相关 key 失败: %w", err)
		}
		keys = append(keys, batch...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("删除房间相关 key 失败: %w", err)
	}
	return nil
}

func (s *RoomStore) IncrWin(ctx context.Context, player string) error {
	if err := s.rdb.ZIncrBy(ctx, leaderboardKey, 1, player).Err(); err != nil {
		return fmt.Errorf("更新排行榜失败: %w", err)
	}
	return nil
}

// Leaderboard 胜场最多的前 n 名
func (s *RoomStore) Leaderboard(ctx context.Context, n int) ([]WinCount, error) {
	if n <= 0 {
		return nil, nil
	}
	zs, err := s.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("获取排行榜失败: %w", err)
	}
	out := make([]WinCount, 0, len(zs))
	for _, z := range zs {
		name, _ := z.Member.(string)
		out = append(out, WinCount{Player: name, Wins: int(z.Score)})
	}
	return out, nil
}
