// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"private-chat-go/internal/model"

	"gorm.io/gorm"
)

// AttachmentRepository 接口定义了附件元数据的数据操作方法。
// 二进制内容本身由 BlobRepository 负责。
type AttachmentRepository interface {
	Create(att *model.Attachment) error
	// FindByChat 按创建时间升序返回对话的全部附件元数据。
	FindByChat(chatID string) ([]model.Attachment, error)
	DeleteByChat(chatID string) error
}

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository 创建一个新的 AttachmentRepository 实例。
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

// Create 在数据库中插入一条新的附件元数据记录。
func (r *attachmentRepository) Create(att *model.Attachment) error {
	return r.db.Create(att).Error
}

// FindByChat 按 created_at 升序检索对话的附件，id 作为次级排序。
func (r *attachmentRepository) FindByChat(chatID string) ([]model.Attachment, error) {
	var atts []model.Attachment
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&atts).Error
	return atts, err
}

// DeleteByChat 删除对话的全部附件元数据记录。
func (r *attachmentRepository) DeleteByChat(chatID string) error {
	return r.db.Delete(&model.Attachment{}, "chat_id = ?", chatID).Error
}
