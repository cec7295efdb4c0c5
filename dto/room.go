package dto

import "go-splendor/entities"

type CreateRoomRequest struct {
	MaxPlayers int `json:"maxPlayers" binding:"required,min=2,max=4"`
}

type CreateRoomResponse struct {
	RoomID string `json:"roomID"`
}

type RoomPlayer struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

type RoomInfo struct {
	RoomID     string              `json:"roomID"`
	UserID     string              `json:"userID"`
	MaxPlayers int                 `json:"maxPlayers"`
	Status     entities.RoomStatus `json:"status"`
	RoomPlayer []RoomPlayer        `json:"roomPlayer"`
	LastAction map[string]string   `json:"lastAction,omitempty"` // playerID -> 最后一次动作
}

type GetRoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}
