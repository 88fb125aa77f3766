// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"private-chat-go/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingHandler 负责处理全局密钥设置相关的 API 请求。
type SettingHandler struct {
	settingService service.SettingService
}

// NewSettingHandler 创建一个新的 SettingHandler 实例。
func NewSettingHandler(settingService service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetSettings 返回各密钥是否已设置的布尔标志，绝不返回密钥本身。
func (h *SettingHandler) GetSettings(c *gin.Context) {
	flags, err := h.settingService.Flags()
	if err != nil {
		writeServiceError(c, "GetSettings", err)
		return
	}
	c.JSON(http.StatusOK, flags)
}

// UpdateSettingsBody 定义了写入全局密钥 API 的请求体结构。两个字段均可省略。
type UpdateSettingsBody struct {
	GeminiAPIKey     string `json:"geminiApiKey"`
	AutomationAPIKey string `json:"automationApiKey"`
}

// UpdateSettings 写入提交的密钥，空字段忽略。
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	if err := h.settingService.SetSecret(service.SettingGeminiAPIKey, req.GeminiAPIKey); err != nil {
		writeServiceError(c, "UpdateSettings", err)
		return
	}
	if err := h.settingService.SetSecret(service.SettingAutomationAPIKey, req.AutomationAPIKey); err != nil {
		writeServiceError(c, "UpdateSettings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
