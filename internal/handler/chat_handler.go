// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"private-chat-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler 负责处理对话的增删查和设置相关的 API 请求。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler 实例。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// CreateChatRequest 定义了创建对话 API 的请求体结构。两个字段均可省略。
type CreateChatRequest struct {
	Title    string  `json:"title"`
	FolderID *string `json:"folderId"`
}

// ListChats 处理获取对话列表的请求，新的在前。
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chatService.ListChats()
	if err != nil {
		writeServiceError(c, "ListChats", err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

// CreateChat 处理创建对话的请求。
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req CreateChatRequest
	// 允许空请求体，全部字段走默认值
	_ = c.ShouldBindJSON(&req)

	chat, err := h.chatService.CreateChat(req.Title, req.FolderID)
	if err != nil {
		writeServiceError(c, "CreateChat", err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// DeleteChat 处理级联删除对话的请求。
// 单个对象删除失败不会中止级联，失败数量在响应中汇报。
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	chatID := c.Param("id")

	report, err := h.chatService.DeleteChat(c.Request.Context(), chatID)
	if err != nil {
		writeServiceError(c, "DeleteChat", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":               true,
		"failedBlobCount":  len(report.FailedBlobKeys),
		"attachmentsCount": report.AttachmentCount,
	})
}

// GetSettings 处理读取对话设置的请求。
func (h *ChatHandler) GetSettings(c *gin.Context) {
	chat, err := h.chatService.GetChat(c.Param("id"))
	if err != nil {
		writeServiceError(c, "GetSettings", err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// UpdateSettingsRequest 定义了更新对话设置 API 的请求体结构。
// 指针字段缺省表示不修改；regenerateApiKey 为 true 时轮换自动化密钥。
type UpdateSettingsRequest struct {
	Title            *string `json:"title"`
	FolderID         *string `json:"folderId"`
	SystemPrompt     *string `json:"systemPrompt"`
	RegenerateAPIKey bool    `json:"regenerateApiKey"`
}

// UpdateSettings 处理更新对话设置的请求，返回更新后的完整记录。
func (h *ChatHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	chat, err := h.chatService.UpdateSettings(c.Param("id"), service.ChatSettingsUpdate{
		Title:            req.Title,
		FolderID:         req.FolderID,
		SystemPrompt:     req.SystemPrompt,
		RegenerateAPIKey: req.RegenerateAPIKey,
	})
	if err != nil {
		writeServiceError(c, "UpdateSettings", err)
		return
	}
	c.JSON(http.StatusOK, chat)
}
