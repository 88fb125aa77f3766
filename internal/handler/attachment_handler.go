// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"private-chat-go/internal/service"

	"github.com/gin-gonic/gin"
)

// AttachmentHandler 负责处理附件列表和上传相关的 API 请求。
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler 创建一个新的 AttachmentHandler 实例。
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// ListAttachments 处理获取附件列表的请求，按上传时间升序返回。
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	attachments, err := h.attachmentService.List(c.Param("id"))
	if err != nil {
		writeServiceError(c, "ListAttachments", err)
		return
	}
	c.JSON(http.StatusOK, attachments)
}

// UploadAttachment 处理 multipart 表单上传，文件字段名为 "file"。
// 大小超过上限时返回 400，且不写入任何对象或元数据行。
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未能获取上传的文件"})
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	att, err := h.attachmentService.Upload(
		c.Request.Context(),
		c.Param("id"),
		header.Filename,
		mimeType,
		header.Size,
		file,
	)
	if err != nil {
		writeServiceError(c, "UploadAttachment", err)
		return
	}
	c.JSON(http.StatusOK, att)
}
