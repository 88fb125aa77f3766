// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"private-chat-go/internal/service"
	"private-chat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ExternalHandler 负责处理外部自动化入口。
// 该路由不走会话中间件，只认对话自身的自动化密钥（X-CHAT-API-KEY 请求头）。
type ExternalHandler struct {
	chatService         service.ChatService
	attachmentService   service.AttachmentService
	conversationService service.ConversationService
}

// NewExternalHandler 创建一个新的 ExternalHandler 实例。
func NewExternalHandler(
	chatService service.ChatService,
	attachmentService service.AttachmentService,
	conversationService service.ConversationService,
) *ExternalHandler {
	return &ExternalHandler{
		chatService:         chatService,
		attachmentService:   attachmentService,
		conversationService: conversationService,
	}
}

// ExternalRequest 定义了外部自动化 API 的请求体结构。
type ExternalRequest struct {
	Message     string                       `json:"message"`
	Attachments []service.ExternalAttachment `json:"attachments"`
}

// Handle 处理外部自动化请求：校验密钥、保存随请求提交的附件，
// 然后执行与内部发送相同的拼装-生成流程。
func (h *ExternalHandler) Handle(c *gin.Context) {
	chatID := c.Param("id")

	chat, err := h.chatService.GetChat(chatID)
	if err != nil {
		writeServiceError(c, "External", err)
		return
	}
	// 未签发过密钥的对话对外不可见
	if chat.APIKey == nil || *chat.APIKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "对话不存在或未签发自动化密钥"})
		return
	}

	provided := c.GetHeader("X-CHAT-API-KEY")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(*chat.APIKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "自动化密钥不正确"})
		return
	}

	var req ExternalRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message 不能为空"})
		return
	}

	if len(req.Attachments) > 0 {
		saved, err := h.attachmentService.SaveFromAPI(c.Request.Context(), chatID, req.Attachments)
		if err != nil {
			writeServiceError(c, "External", err)
			return
		}
		log.Infof("External: 对话 %s 保存了 %d 个外部附件", chatID, saved)
	}

	reply, err := h.conversationService.SendMessage(c.Request.Context(), chat, req.Message)
	if err != nil {
		writeServiceError(c, "External", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
