// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"private-chat-go/internal/model"

	"gorm.io/gorm"
)

// MessageRepository 接口定义了消息日志的数据操作方法。
// 消息只追加、按对话批量删除，不支持单条修改。
type MessageRepository interface {
	Append(msg *model.Message) error
	// FindByChat 按时间升序返回对话最早的 limit 条消息；limit <= 0 时不限制。
	FindByChat(chatID string, limit int) ([]model.Message, error)
	// FindRecent 返回对话最近的 limit 条消息，按时间升序排列。
	FindRecent(chatID string, limit int) ([]model.Message, error)
	DeleteByChat(chatID string) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建一个新的 MessageRepository 实例。
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Append 在消息日志末尾追加一条记录。
func (r *messageRepository) Append(msg *model.Message) error {
	return r.db.Create(msg).Error
}

// FindByChat 按 created_at 升序检索对话的消息，id 作为同时间戳的次级排序。
func (r *messageRepository) FindByChat(chatID string, limit int) ([]model.Message, error) {
	q := r.db.Where("chat_id = ?", chatID).Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var msgs []model.Message
	err := q.Find(&msgs).Error
	return msgs, err
}

// FindRecent 先按时间倒序取出最近的 limit 条，再反转为升序返回。
func (r *messageRepository) FindRecent(chatID string, limit int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// 反转为 oldest -> newest
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// DeleteByChat 删除对话的全部消息记录。
func (r *messageRepository) DeleteByChat(chatID string) error {
	return r.db.Delete(&model.Message{}, "chat_id = ?", chatID).Error
}
