package service

import (
	"errors"
	"testing"

	"private-chat-go/internal/model"
	"private-chat-go/internal/repository"

	"gorm.io/gorm"
)

func newFolderFixture(t *testing.T) (FolderService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	svc := NewFolderService(repository.NewFolderRepository(db), repository.NewChatRepository(db))
	return svc, db
}

func TestCreateFolder_DefaultName(t *testing.T) {
	svc, _ := newFolderFixture(t)

	folder, err := svc.CreateFolder("", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if folder.Name != "New folder" {
		t.Fatalf("expected default name, got %q", folder.Name)
	}
}

func TestDeleteFolder_DetachesChatsAndChildren(t *testing.T) {
	svc, db := newFolderFixture(t)

	folder, err := svc.CreateFolder("parent", nil)
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := svc.CreateFolder("child", &folder.ID)
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	chat := &model.Chat{ID: "chat-in-folder", Title: "t", FolderID: &folder.ID}
	if err := db.Create(chat).Error; err != nil {
		t.Fatalf("seed chat: %v", err)
	}
	if err := db.Create(&model.Message{ChatID: chat.ID, Role: model.RoleUser, Content: "kept"}).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}

	if err := svc.DeleteFolder(folder.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// 对话移至根目录，消息原样保留
	var gotChat model.Chat
	if err := db.First(&gotChat, "id = ?", chat.ID).Error; err != nil {
		t.Fatalf("chat must survive folder deletion: %v", err)
	}
	if gotChat.FolderID != nil {
		t.Fatalf("chat should be detached, got folder %v", *gotChat.FolderID)
	}
	var msgCount int64
	db.Model(&model.Message{}).Where("chat_id = ?", chat.ID).Count(&msgCount)
	if msgCount != 1 {
		t.Fatalf("messages must survive, got %d", msgCount)
	}

	// 子文件夹提升为顶级
	var gotChild model.Folder
	if err := db.First(&gotChild, "id = ?", child.ID).Error; err != nil {
		t.Fatalf("child folder must survive: %v", err)
	}
	if gotChild.ParentID != nil {
		t.Fatalf("child should be promoted to top level, got parent %v", *gotChild.ParentID)
	}

	if _, err := svc.GetFolder(folder.ID); !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound after delete, got %v", err)
	}
}

func TestRenameFolder_NotFound(t *testing.T) {
	svc, _ := newFolderFixture(t)
	if _, err := svc.RenameFolder("no-such-folder", "x"); !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
}
