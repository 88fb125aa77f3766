// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"private-chat-go/internal/model"

	"gorm.io/gorm"
)

// FolderRepository 接口定义了文件夹的数据操作方法。
type FolderRepository interface {
	Create(folder *model.Folder) error
	FindByID(id string) (*model.Folder, error)
	FindAll() ([]model.Folder, error)
	Update(folder *model.Folder) error
	Delete(id string) error
	// DetachChildren 将指定文件夹的所有直接子文件夹提升为顶级（parent_id 置空）。
	DetachChildren(parentID string) error
}

type folderRepository struct {
	db *gorm.DB
}

// NewFolderRepository 创建一个新的 FolderRepository 实例。
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepository{db: db}
}

// Create 在数据库中插入一条新的文件夹记录。
func (r *folderRepository) Create(folder *model.Folder) error {
	return r.db.Create(folder).Error
}

// FindByID 根据给定的 id 从数据库中查找一个文件夹。
func (r *folderRepository) FindByID(id string) (*model.Folder, error) {
	var folder model.Folder
	err := r.db.Where("id = ?", id).First(&folder).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// FindAll 检索所有文件夹记录，树形结构由前端自行构建。
func (r *folderRepository) FindAll() ([]model.Folder, error) {
	var folders []model.Folder
	err := r.db.Order("created_at ASC").Find(&folders).Error
	return folders, err
}

// Update 更新数据库中一个已存在的文件夹记录。
func (r *folderRepository) Update(folder *model.Folder) error {
	return r.db.Save(folder).Error
}

// Delete 根据给定的 id 从数据库中删除一个文件夹记录。
func (r *folderRepository) Delete(id string) error {
	return r.db.Delete(&model.Folder{}, "id = ?", id).Error
}

// DetachChildren 将直接子文件夹的 parent_id 置空，删除文件夹时避免连带丢失嵌套内容。
func (r *folderRepository) DetachChildren(parentID string) error {
	return r.db.Model(&model.Folder{}).
		Where("parent_id = ?", parentID).
		Update("parent_id", nil).Error
}
