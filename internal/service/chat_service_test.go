package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"private-chat-go/internal/model"
	"private-chat-go/internal/repository"

	"gorm.io/gorm"
)

func newChatFixture(t *testing.T) (ChatService, *gorm.DB, *fakeBlobRepo) {
	t.Helper()
	db := openTestDB(t)
	blob := newFakeBlobRepo()
	svc := NewChatService(
		repository.NewChatRepository(db),
		repository.NewMessageRepository(db),
		repository.NewAttachmentRepository(db),
		blob,
	)
	return svc, db, blob
}

func TestCreateChat_Defaults(t *testing.T) {
	svc, _, _ := newChatFixture(t)

	chat, err := svc.CreateChat("  ", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if chat.Title != "Untitled chat" {
		t.Fatalf("expected default title, got %q", chat.Title)
	}
	if chat.ID == "" {
		t.Fatalf("expected generated id")
	}
	if chat.APIKey != nil {
		t.Fatalf("new chat must not have an automation key")
	}
	if chat.FolderID != nil {
		t.Fatalf("expected no folder, got %v", *chat.FolderID)
	}
}

func TestUpdateSettings_RegenerateKeyRotates(t *testing.T) {
	svc, _, _ := newChatFixture(t)

	chat, err := svc.CreateChat("with key", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.UpdateSettings(chat.ID, ChatSettingsUpdate{RegenerateAPIKey: true})
	if err != nil {
		t.Fatalf("first regenerate: %v", err)
	}
	if first.APIKey == nil || !strings.HasPrefix(*first.APIKey, "chat_") {
		t.Fatalf("unexpected key: %v", first.APIKey)
	}
	if len(*first.APIKey) != len("chat_")+32 {
		t.Fatalf("unexpected key length: %d", len(*first.APIKey))
	}

	second, err := svc.UpdateSettings(chat.ID, ChatSettingsUpdate{RegenerateAPIKey: true})
	if err != nil {
		t.Fatalf("second regenerate: %v", err)
	}
	// 旧密钥整列被覆盖，立即失效
	if *second.APIKey == *first.APIKey {
		t.Fatalf("regenerated key must differ from previous")
	}

	stored, err := svc.GetChat(chat.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.APIKey == nil || *stored.APIKey != *second.APIKey {
		t.Fatalf("stored key does not match latest: %v", stored.APIKey)
	}
}

func TestUpdateSettings_EmptyValuesClearReferences(t *testing.T) {
	svc, db, _ := newChatFixture(t)

	folderID := "folder-1"
	if err := db.Create(&model.Folder{ID: folderID, Name: "f"}).Error; err != nil {
		t.Fatalf("seed folder: %v", err)
	}
	chat, err := svc.CreateChat("titled", &folderID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	empty := ""
	updated, err := svc.UpdateSettings(chat.ID, ChatSettingsUpdate{
		Title:        &empty,
		FolderID:     &empty,
		SystemPrompt: &empty,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Untitled chat" {
		t.Fatalf("empty title should fall back to default, got %q", updated.Title)
	}
	if updated.FolderID != nil {
		t.Fatalf("empty folder id should clear the reference")
	}
	if updated.SystemPrompt != nil {
		t.Fatalf("empty system prompt should clear the column")
	}
}

func TestUpdateSettings_NothingToUpdate(t *testing.T) {
	svc, _, _ := newChatFixture(t)

	chat, err := svc.CreateChat("t", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateSettings(chat.ID, ChatSettingsUpdate{}); !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
}

func TestDeleteChat_CascadeSurvivesBlobFailures(t *testing.T) {
	svc, db, blob := newChatFixture(t)

	chat, err := svc.CreateChat("doomed", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	keys := []string{
		chat.ID + "/k1-a.png",
		chat.ID + "/k2-b.pdf",
		chat.ID + "/k3-c.txt",
	}
	for _, key := range keys {
		blob.objects[key] = []byte("x")
		if err := db.Create(&model.Attachment{ChatID: chat.ID, Name: key, MimeType: "application/octet-stream", BlobKey: key}).Error; err != nil {
			t.Fatalf("seed attachment: %v", err)
		}
	}
	blob.failKeys[keys[1]] = true

	for i := 0; i < 3; i++ {
		if err := db.Create(&model.Message{ChatID: chat.ID, Role: model.RoleUser, Content: "m"}).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	report, err := svc.DeleteChat(context.Background(), chat.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if report.AttachmentCount != 3 {
		t.Fatalf("expected 3 attachments in report, got %d", report.AttachmentCount)
	}
	if len(report.FailedBlobKeys) != 1 || report.FailedBlobKeys[0] != keys[1] {
		t.Fatalf("unexpected failed keys: %v", report.FailedBlobKeys)
	}

	// 单个对象删除失败不阻断级联：所有行都要消失
	var chats, msgs, atts int64
	db.Model(&model.Chat{}).Where("id = ?", chat.ID).Count(&chats)
	db.Model(&model.Message{}).Where("chat_id = ?", chat.ID).Count(&msgs)
	db.Model(&model.Attachment{}).Where("chat_id = ?", chat.ID).Count(&atts)
	if chats != 0 || msgs != 0 || atts != 0 {
		t.Fatalf("cascade left rows behind: chats=%d msgs=%d atts=%d", chats, msgs, atts)
	}

	if _, err := svc.GetChat(chat.ID); !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound after delete, got %v", err)
	}
}

func TestDeleteChat_NotFound(t *testing.T) {
	svc, _, _ := newChatFixture(t)
	if _, err := svc.DeleteChat(context.Background(), "no-such-chat"); !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
}
