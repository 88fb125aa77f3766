// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"private-chat-go/internal/service"
	"private-chat-go/pkg/gemini"
	"private-chat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// writeServiceError 把业务层错误映射为 HTTP 响应。
// 认证和校验类错误原样返回给调用方；存储类和未知错误记录完整日志，
// 只返回通用消息；上游错误返回 500 并内嵌上游原文。
func writeServiceError(c *gin.Context, op string, err error) {
	var apiErr *gemini.APIError

	switch {
	case errors.Is(err, service.ErrChatNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "对话不存在"})
	case errors.Is(err, service.ErrFolderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "文件夹不存在"})
	case errors.Is(err, service.ErrNothingToUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有需要更新的字段"})
	case errors.Is(err, service.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件过大（上限 15MB）"})
	case errors.Is(err, service.ErrGeminiKeyNotSet):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "模型 API 密钥未设置，请先在设置中配置"})
	case errors.As(err, &apiErr):
		// 密钥不经过这里，上游错误原文可以安全回传
		log.Errorf("%s: 上游生成接口返回错误, status=%d", op, apiErr.StatusCode)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gemini API error: " + apiErr.Body})
	default:
		log.Error(op+": unexpected error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}
