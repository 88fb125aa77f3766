// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"private-chat-go/internal/model"

	"gorm.io/gorm"
)

// ChatRepository 接口定义了对话记录的数据操作方法。
type ChatRepository interface {
	Create(chat *model.Chat) error
	FindByID(id string) (*model.Chat, error)
	FindAll() ([]model.Chat, error)
	Update(chat *model.Chat) error
	Delete(id string) error
	// DetachFromFolder 将指定文件夹下的所有对话移动到根目录（folder_id 置空）。
	DetachFromFolder(folderID string) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建一个新的 ChatRepository 实例。
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Create 在数据库中插入一条新的对话记录。
func (r *chatRepository) Create(chat *model.Chat) error {
	return r.db.Create(chat).Error
}

// FindByID 根据给定的 id 从数据库中查找一个对话。
func (r *chatRepository) FindByID(id string) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.Where("id = ?", id).First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindAll 检索所有对话记录，按创建时间倒序排列（新的在前）。
func (r *chatRepository) FindAll() ([]model.Chat, error) {
	var chats []model.Chat
	err := r.db.Order("created_at DESC").Find(&chats).Error
	return chats, err
}

// Update 更新数据库中一个已存在的对话记录。
func (r *chatRepository) Update(chat *model.Chat) error {
	return r.db.Save(chat).Error
}

// Delete 根据给定的 id 从数据库中删除一个对话记录。
func (r *chatRepository) Delete(id string) error {
	return r.db.Delete(&model.Chat{}, "id = ?", id).Error
}

// DetachFromFolder 将指定文件夹下的所有对话的 folder_id 置空。
func (r *chatRepository) DetachFromFolder(folderID string) error {
	return r.db.Model(&model.Chat{}).
		Where("folder_id = ?", folderID).
		Update("folder_id", nil).Error
}
