// Package model 包含了应用的数据模型定义。
package model

import "time"

// Chat 对应于数据库中的 'chats' 表，代表一个独立的对话。
type Chat struct {
	// ID 是对话的唯一标识符（UUID 字符串），作为主键。
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`
	// Title 是对话的显示标题。
	Title string `gorm:"type:varchar(255);not null" json:"title"`
	// FolderID 指向所属文件夹。使用指针以接受 NULL 值，表示位于根目录。
	FolderID *string `gorm:"type:varchar(36);index" json:"folderId"`
	// SystemPrompt 是可选的系统提示词，拼装请求时置于最前。
	SystemPrompt *string `gorm:"type:text" json:"systemPrompt"`
	// APIKey 是该对话的外部自动化密钥，按需生成，重新生成即覆盖旧值。
	APIKey    *string   `gorm:"type:varchar(64)" json:"apiKey"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Chat) TableName() string {
	return "chats"
}
