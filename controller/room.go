package controller

import (
	"errors"
	"net/http"
	"strconv"

	"go-splendor/dto"
	"go-splendor/middleware"
	"go-splendor/service"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	svc *service.RoomService
}

func NewRoomController(svc *service.RoomService) *RoomController {
	return &RoomController{svc: svc}
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	roomID, err := rc.svc.CreateRoom(c.Request.Context(), c.GetString(middleware.ContextUserID), c.GetString(middleware.ContextIdentity), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间创建成功",
		"data": dto.CreateRoomResponse{
			RoomID: roomID,
		},
	})
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	err := rc.svc.DeleteRoom(c.Request.Context(),
		c.GetString(middleware.ContextUserID), c.GetString(middleware.ContextIdentity), c.Param("roomID"))
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间删除成功",
	})
}

func (rc *RoomController) GetRoomList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rooms := rc.svc.GetRoomList(c.Request.Context(), limit)
	c.JSON(http.StatusOK, gin.H{
		"message":     "获取成功",
		"status_code": http.StatusOK,
		"data": dto.GetRoomList{
			Rooms: rooms,
		},
	})
}

func (rc *RoomController) GetRoomInfo(c *gin.Context) {
	room, err := rc.svc.GetRoom(c.Request.Context(), c.Param("roomID"))
	if errors.Is(err, service.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "获取房间信息失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "获取成功",
		"status_code": http.StatusOK,
		"data":        room,
	})
}

func (rc *RoomController) GetLeaderboard(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "n 必须是正整数"})
		return
	}
	entries, err := rc.svc.GetLeaderboard(c.Request.Context(), n)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "获取排行榜失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "获取成功",
		"status_code": http.StatusOK,
		"data":        dto.GetLeaderboard{Entries: entries},
	})
}
