package controller

import (
	"net/http"

	"go-splendor/dto"
	"go-splendor/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	issuer *utils.TokenIssuer
}

func NewAuthController(issuer *utils.TokenIssuer) *AuthController {
	return &AuthController{issuer: issuer}
}

func (ac *AuthController) respondTokens(c *gin.Context, userID, key string) {
	access, err := ac.issuer.GenerateAccessToken(userID, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 token 失败"})
		return
	}
	refresh, err := ac.issuer.GenerateRefreshToken(userID, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 token 失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "登录成功",
		"data":        dto.TokenResponse{AccessToken: access, RefreshToken: refresh},
	})
}

// IssueToken 以玩家名签发 token，玩家名就是对局里的座位名；每次签发都是新身份
func (ac *AuthController) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	ac.respondTokens(c, req.UserID, utils.NewIdentityKey())
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	claims, err := ac.issuer.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token 无效或已过期"})
		return
	}
	ac.respondTokens(c, claims.UserID, claims.Subject)
}
