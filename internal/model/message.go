// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// Role 表示消息的角色，只有 user 和 model 两种取值。
type Role string

const (
	// RoleUser 表示操作者发送的消息。
	RoleUser Role = "user"
	// RoleModel 表示生成模型返回的消息。
	RoleModel Role = "model"
)

// NormalizeRole 将存储的角色字符串归一化：等于 "model" 时返回 RoleModel，
// 其余一律按 RoleUser 处理。
func NormalizeRole(s string) Role {
	if s == string(RoleModel) {
		return RoleModel
	}
	return RoleUser
}

// Message 对应于数据库中的 'messages' 表。
// 消息只追加不修改，按 created_at 升序构成对话历史。
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID    string    `gorm:"type:varchar(36);index;not null" json:"chatId"`
	Role      Role      `gorm:"type:varchar(16);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Message) TableName() string {
	return "messages"
}
