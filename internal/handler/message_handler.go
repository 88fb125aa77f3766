// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strings"

	"private-chat-go/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler 负责处理消息历史和发送-生成相关的 API 请求。
type MessageHandler struct {
	chatService         service.ChatService
	conversationService service.ConversationService
}

// NewMessageHandler 创建一个新的 MessageHandler 实例。
func NewMessageHandler(chatService service.ChatService, conversationService service.ConversationService) *MessageHandler {
	return &MessageHandler{
		chatService:         chatService,
		conversationService: conversationService,
	}
}

// ListMessages 处理获取消息历史的请求，按时间升序返回。
func (h *MessageHandler) ListMessages(c *gin.Context) {
	chatID := c.Param("id")
	if _, err := h.chatService.GetChat(chatID); err != nil {
		writeServiceError(c, "ListMessages", err)
		return
	}

	messages, err := h.conversationService.ListMessages(chatID)
	if err != nil {
		writeServiceError(c, "ListMessages", err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessageRequest 定义了发送消息 API 的请求体结构。
type SendMessageRequest struct {
	Message string `json:"message"`
}

// SendMessage 处理发送消息并取回模型回复的请求。
func (h *MessageHandler) SendMessage(c *gin.Context) {
	chat, err := h.chatService.GetChat(c.Param("id"))
	if err != nil {
		writeServiceError(c, "SendMessage", err)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message 不能为空"})
		return
	}

	reply, err := h.conversationService.SendMessage(c.Request.Context(), chat, req.Message)
	if err != nil {
		writeServiceError(c, "SendMessage", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
