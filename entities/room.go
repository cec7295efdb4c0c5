package entities

import "time"

// RoomInfo 房间信息（存 Redis hash）
type RoomInfo struct {
	RoomID     string     `json:"roomID"`
	UserID     string     `json:"userID"` // 创建者
	MaxPlayers int        `json:"maxPlayers"`
	GameStatus RoomStatus `json:"gameStatus"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"   // 等待玩家加入房间
	RoomStatusPlaying  RoomStatus = "playing"   // 对局进行中
	RoomStatusLastTurn RoomStatus = "last_turn" // 有人到达 15 分，最后一轮
	RoomStatusEnd      RoomStatus = "end"
)
