package router

import (
	"go-splendor/controller"
	"go-splendor/middleware"
	"go-splendor/utils"
	"go-splendor/ws"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Room   *controller.RoomController
	Auth   *controller.AuthController
	WS     *ws.Handler
	Issuer *utils.TokenIssuer
}

func InitRouter(r *gin.Engine, h Handlers) {
	auth := middleware.AuthMiddleware(h.Issuer.Identify)

	r.GET("/health", controller.Health)

	a := r.Group("/auth")
	{
		a.POST("/token", h.Auth.IssueToken)
		a.POST("/refresh", h.Auth.RefreshToken)
	}

	// 房间接口路由
	api := r.Group("/room")
	{
		api.POST("/create", auth, h.Room.CreateRoom)
		api.GET("/list", h.Room.GetRoomList)
		api.GET("/:roomID", h.Room.GetRoomInfo)
		api.DELETE("/:roomID", auth, h.Room.DeleteRoom)
	}

	r.GET("/leaderboard", h.Room.GetLeaderboard)

	// WebSocket 路由
	r.GET("/ws", h.WS.HandleWebSocket)
}
