// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"

	"gorm.io/gorm"
)

// 业务层的哨兵错误。handler 层据此映射 HTTP 状态码：
// 认证失败 -> 401，资源不存在 -> 404，参数校验 -> 400，配置缺失 -> 500。
// 存储层和上游错误不在此列，它们记录完整日志后以通用 500 返回。
var (
	// ErrInvalidPassword 表示登录口令不正确。
	ErrInvalidPassword = errors.New("口令不正确")
	// ErrInvalidToken 表示会话 token 不存在或无效。
	ErrInvalidToken = errors.New("无效的会话 token")
	// ErrMasterPasswordNotSet 表示操作者口令未配置，属于配置错误而非认证失败。
	ErrMasterPasswordNotSet = errors.New("操作者口令未配置")
	// ErrGeminiKeyNotSet 表示模型密钥尚未通过 UI/API 写入设置表。
	ErrGeminiKeyNotSet = errors.New("模型 API 密钥未设置")
	// ErrChatNotFound 表示目标对话不存在。
	ErrChatNotFound = errors.New("对话不存在")
	// ErrFolderNotFound 表示目标文件夹不存在。
	ErrFolderNotFound = errors.New("文件夹不存在")
	// ErrNothingToUpdate 表示更新请求中没有任何可应用的字段。
	ErrNothingToUpdate = errors.New("没有需要更新的字段")
	// ErrFileTooLarge 表示上传内容超过单文件上限。
	ErrFileTooLarge = errors.New("文件过大")
)

// isNotFound 判断一个存储层错误是否为"记录不存在"。
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
