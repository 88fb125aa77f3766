// Package middleware 存放 Gin 框架的中间件。
package middleware

import (
	"time"

	"private-chat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// RequestLogger 是一个 Gin 中间件，用于记录请求级别的访问日志。
// 刻意不记录请求体和响应体：登录口令、模型密钥和自动化密钥都经由
// 请求体或响应传递，不能落入日志。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		log.Infow("HTTP Request Log",
			"statusCode", c.Writer.Status(),
			"latency", latency.String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}
}
