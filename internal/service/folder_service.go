// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"
	"strings"

	"private-chat-go/internal/model"
	"private-chat-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 新建文件夹的默认名称，与前端一致。
const defaultFolderName = "New folder"

// FolderService 接口定义了文件夹的业务操作。
// 删除文件夹绝不销毁其中的对话或消息，只做摘除（引用置空）。
type FolderService interface {
	CreateFolder(name string, parentID *string) (*model.Folder, error)
	ListFolders() ([]model.Folder, error)
	GetFolder(id string) (*model.Folder, error)
	RenameFolder(id, name string) (*model.Folder, error)
	DeleteFolder(id string) error
}

type folderService struct {
	folderRepo repository.FolderRepository
	chatRepo   repository.ChatRepository
}

// NewFolderService 创建一个新的 FolderService 实例。
func NewFolderService(folderRepo repository.FolderRepository, chatRepo repository.ChatRepository) FolderService {
	return &folderService{
		folderRepo: folderRepo,
		chatRepo:   chatRepo,
	}
}

// CreateFolder 创建一个新文件夹，空名称回退为默认名称。
func (s *folderService) CreateFolder(name string, parentID *string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultFolderName
	}
	folder := &model.Folder{
		ID:       uuid.NewString(),
		Name:     name,
		ParentID: normalizeRef(parentID),
	}
	if err := s.folderRepo.Create(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// ListFolders 返回全部文件夹。
func (s *folderService) ListFolders() ([]model.Folder, error) {
	return s.folderRepo.FindAll()
}

// GetFolder 按 id 查找文件夹，不存在时返回 ErrFolderNotFound。
func (s *folderService) GetFolder(id string) (*model.Folder, error) {
	folder, err := s.folderRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFolderNotFound
	}
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// RenameFolder 修改文件夹名称，名称不能为空。
func (s *folderService) RenameFolder(id, name string) (*model.Folder, error) {
	folder, err := s.GetFolder(id)
	if err != nil {
		return nil, err
	}
	folder.Name = name
	return folder, s.folderRepo.Update(folder)
}

// DeleteFolder 删除一个文件夹：其中的对话移至根目录，直接子文件夹提升为
// 顶级，最后删除文件夹本身。任何对话和消息都不会被销毁。
func (s *folderService) DeleteFolder(id string) error {
	if _, err := s.GetFolder(id); err != nil {
		return err
	}
	if err := s.chatRepo.DetachFromFolder(id); err != nil {
		return err
	}
	if err := s.folderRepo.DetachChildren(id); err != nil {
		return err
	}
	return s.folderRepo.Delete(id)
}
