// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strings"

	"private-chat-go/internal/service"

	"github.com/gin-gonic/gin"
)

// FolderHandler 负责处理文件夹相关的 API 请求。
type FolderHandler struct {
	folderService service.FolderService
}

// NewFolderHandler 创建一个新的 FolderHandler 实例。
func NewFolderHandler(folderService service.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

// CreateFolderRequest 定义了创建文件夹 API 的请求体结构。
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

// ListFolders 处理获取文件夹列表的请求，树形结构由前端构建。
func (h *FolderHandler) ListFolders(c *gin.Context) {
	folders, err := h.folderService.ListFolders()
	if err != nil {
		writeServiceError(c, "ListFolders", err)
		return
	}
	c.JSON(http.StatusOK, folders)
}

// CreateFolder 处理创建文件夹的请求。
func (h *FolderHandler) CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	_ = c.ShouldBindJSON(&req)

	folder, err := h.folderService.CreateFolder(req.Name, req.ParentID)
	if err != nil {
		writeServiceError(c, "CreateFolder", err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

// GetFolder 处理读取单个文件夹的请求。
func (h *FolderHandler) GetFolder(c *gin.Context) {
	folder, err := h.folderService.GetFolder(c.Param("id"))
	if err != nil {
		writeServiceError(c, "GetFolder", err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

// RenameFolderRequest 定义了重命名文件夹 API 的请求体结构。
type RenameFolderRequest struct {
	Name string `json:"name"`
}

// RenameFolder 处理重命名文件夹的请求，名称不能为空。
func (h *FolderHandler) RenameFolder(c *gin.Context) {
	var req RenameFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件夹名称不能为空"})
		return
	}

	folder, err := h.folderService.RenameFolder(c.Param("id"), strings.TrimSpace(req.Name))
	if err != nil {
		writeServiceError(c, "RenameFolder", err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

// DeleteFolder 处理删除文件夹的请求：其中的对话移至根目录，
// 子文件夹提升为顶级，绝不连带删除。
func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	if err := h.folderService.DeleteFolder(c.Param("id")); err != nil {
		writeServiceError(c, "DeleteFolder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
