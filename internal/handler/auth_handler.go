// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"private-chat-go/internal/service"
	"private-chat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责处理操作者认证相关的 API 请求。
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest 定义了登录 API 的请求体结构。
type LoginRequest struct {
	Password string `json:"password"`
}

// Login 处理登录请求：口令正确则返回新建会话的 token。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "口令不正确"})
		case errors.Is(err, service.ErrMasterPasswordNotSet):
			// 配置错误只对当前请求致命，进程继续运行
			log.Errorf("Login: 操作者口令未配置")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "操作者口令未配置"})
		default:
			log.Error("Login: failed to create session", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Check 验证会话 token。到达这里说明中间件已放行，直接返回 ok。
func (h *AuthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
