package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID gin.Context 中保存玩家名的 key
	ContextUserID = "userID"
	// ContextIdentity 保存身份 key，房主校验用它而不是玩家名
	ContextIdentity = "identity"
)

// IdentityParser 校验 token，返回玩家名和身份 key
type IdentityParser func(token string) (userID, key string, err error)

func AuthMiddleware(parse IdentityParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未授权"})
			c.Abort()
			return
		}
		userID, key, err := parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token 无效或已过期"})
			c.Abort()
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextIdentity, key)
		c.Next()
	}
}
