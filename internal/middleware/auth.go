// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"
	"strings"

	"private-chat-go/internal/repository"
	"private-chat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SessionAuth 创建一个 Gin 中间件，用于会话 token 认证。
// 它从 Authorization 请求头提取 Bearer token，在会话存储中查找：
// 存在即放行，不存在一律 401。token 是不透明字符串，本身不携带任何信息。
func SessionAuth(sessionRepo repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "请求未包含授权头"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的授权头格式"})
			return
		}
		token := strings.TrimPrefix(authHeader, bearerPrefix)

		ok, err := sessionRepo.Exists(c.Request.Context(), token)
		if err != nil {
			// 会话存储不可用属于服务端故障，不能误报为认证失败
			log.Error("SessionAuth: 查询会话存储失败", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效或未知的会话 token"})
			return
		}

		c.Next()
	}
}
