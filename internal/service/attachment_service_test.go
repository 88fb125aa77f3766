package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"private-chat-go/internal/model"
	"private-chat-go/internal/repository"

	"gorm.io/gorm"
)

func newAttachmentFixture(t *testing.T) (AttachmentService, *gorm.DB, *fakeBlobRepo) {
	t.Helper()
	db := openTestDB(t)
	blob := newFakeBlobRepo()
	svc := NewAttachmentService(
		repository.NewChatRepository(db),
		repository.NewAttachmentRepository(db),
		blob,
	)
	return svc, db, blob
}

func seedChat(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	if err := db.Create(&model.Chat{ID: id, Title: "t"}).Error; err != nil {
		t.Fatalf("seed chat: %v", err)
	}
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	svc, db, blob := newAttachmentFixture(t)
	seedChat(t, db, "chat-big")

	_, err := svc.Upload(context.Background(), "chat-big", "big.bin", "application/octet-stream",
		MaxAttachmentBytes+1, strings.NewReader("x"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	// 拒绝发生在任何写入之前
	if len(blob.objects) != 0 {
		t.Fatalf("no object must be written, got %d", len(blob.objects))
	}
	var count int64
	db.Model(&model.Attachment{}).Count(&count)
	if count != 0 {
		t.Fatalf("no metadata row must be written, got %d", count)
	}
}

func TestUpload_DefaultsAndBlobKey(t *testing.T) {
	svc, db, blob := newAttachmentFixture(t)
	seedChat(t, db, "chat-up")

	att, err := svc.Upload(context.Background(), "chat-up", "", "", 5, strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if att.Name != "file" || att.MimeType != "application/octet-stream" {
		t.Fatalf("unexpected defaults: name=%q mime=%q", att.Name, att.MimeType)
	}
	if !strings.HasPrefix(att.BlobKey, "chat-up/") || !strings.HasSuffix(att.BlobKey, "-file") {
		t.Fatalf("unexpected blob key: %q", att.BlobKey)
	}
	if string(blob.objects[att.BlobKey]) != "hello" {
		t.Fatalf("object content mismatch")
	}
}

func TestUpload_UnknownChat(t *testing.T) {
	svc, _, _ := newAttachmentFixture(t)
	_, err := svc.Upload(context.Background(), "no-such-chat", "f", "text/plain", 1, strings.NewReader("x"))
	if !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
}

func TestSaveFromAPI_SkipsBadEntries(t *testing.T) {
	svc, db, blob := newAttachmentFixture(t)
	seedChat(t, db, "chat-ext")

	items := []ExternalAttachment{
		{Filename: "ok.png", Mime: "image/png", Base64: base64.StdEncoding.EncodeToString([]byte("PNG"))},
		{Filename: "empty.txt", Mime: "text/plain", Base64: ""},
		{Filename: "broken.bin", Mime: "application/octet-stream", Base64: "%%%not-base64%%%"},
	}
	saved, err := svc.SaveFromAPI(context.Background(), "chat-ext", items)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved != 1 {
		t.Fatalf("expected 1 saved, got %d", saved)
	}

	atts, err := svc.List("chat-ext")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(atts) != 1 || atts[0].Name != "ok.png" {
		t.Fatalf("unexpected attachments: %+v", atts)
	}
	if string(blob.objects[atts[0].BlobKey]) != "PNG" {
		t.Fatalf("decoded object content mismatch")
	}
}

func TestList_UnknownChat(t *testing.T) {
	svc, _, _ := newAttachmentFixture(t)
	if _, err := svc.List("no-such-chat"); !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
}
