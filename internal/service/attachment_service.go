// Package service 包含了应用的业务逻辑层。
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"private-chat-go/internal/model"
	"private-chat-go/internal/repository"
	"private-chat-go/pkg/log"

	"github.com/google/uuid"
)

// MaxAttachmentBytes 是单个附件的大小上限（15 MiB）。
// 超出直接拒绝，这是上传路径上唯一的校验。
const MaxAttachmentBytes = 15 << 20

// ExternalAttachment 是外部自动化接口提交的附件负载。
type ExternalAttachment struct {
	Filename string `json:"filename"`
	Mime     string `json:"mime"`
	Base64   string `json:"base64"`
}

// AttachmentService 接口定义了附件的业务操作。
// 每个附件由一条元数据行和一个二进制对象组成，两者同建同删。
type AttachmentService interface {
	List(chatID string) ([]model.Attachment, error)
	// Upload 保存一个上传的文件：先写对象，再写元数据行。
	Upload(ctx context.Context, chatID, name, mimeType string, size int64, reader io.Reader) (*model.Attachment, error)
	// SaveFromAPI 保存外部接口以 base64 提交的附件，返回成功保存的数量。
	SaveFromAPI(ctx context.Context, chatID string, items []ExternalAttachment) (int, error)
}

type attachmentService struct {
	chatRepo       repository.ChatRepository
	attachmentRepo repository.AttachmentRepository
	blobRepo       repository.BlobRepository
}

// NewAttachmentService 创建一个新的 AttachmentService 实例。
func NewAttachmentService(
	chatRepo repository.ChatRepository,
	attachmentRepo repository.AttachmentRepository,
	blobRepo repository.BlobRepository,
) AttachmentService {
	return &attachmentService{
		chatRepo:       chatRepo,
		attachmentRepo: attachmentRepo,
		blobRepo:       blobRepo,
	}
}

// List 返回对话的全部附件元数据，按上传时间升序。
func (s *attachmentService) List(chatID string) ([]model.Attachment, error) {
	if err := s.requireChat(chatID); err != nil {
		return nil, err
	}
	return s.attachmentRepo.FindByChat(chatID)
}

// Upload 校验大小上限后保存附件。对象键格式为 "<chatId>/<唯一后缀>-<文件名>"。
func (s *attachmentService) Upload(ctx context.Context, chatID, name, mimeType string, size int64, reader io.Reader) (*model.Attachment, error) {
	if err := s.requireChat(chatID); err != nil {
		return nil, err
	}
	if size > MaxAttachmentBytes {
		return nil, ErrFileTooLarge
	}
	if name == "" {
		name = "file"
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	key := blobKey(chatID, name)
	if err := s.blobRepo.Put(ctx, key, mimeType, reader, size); err != nil {
		return nil, err
	}

	att := &model.Attachment{
		ChatID:   chatID,
		Name:     name,
		MimeType: mimeType,
		BlobKey:  key,
	}
	if err := s.attachmentRepo.Create(att); err != nil {
		return nil, err
	}
	return att, nil
}

// SaveFromAPI 解码外部接口提交的 base64 附件并保存。
// 空负载跳过；解码失败的条目记录日志后跳过，不影响其余条目。
func (s *attachmentService) SaveFromAPI(ctx context.Context, chatID string, items []ExternalAttachment) (int, error) {
	saved := 0
	for _, item := range items {
		if item.Base64 == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(item.Base64)
		if err != nil {
			log.Warnf("外部附件 base64 解码失败，跳过: filename=%s, err=%v", item.Filename, err)
			continue
		}
		name := item.Filename
		if name == "" {
			name = "file"
		}
		mimeType := item.Mime
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		key := blobKey(chatID, name)
		if err := s.blobRepo.Put(ctx, key, mimeType, bytes.NewReader(data), int64(len(data))); err != nil {
			return saved, err
		}
		att := &model.Attachment{
			ChatID:   chatID,
			Name:     name,
			MimeType: mimeType,
			BlobKey:  key,
		}
		if err := s.attachmentRepo.Create(att); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// requireChat 确认对话存在，不存在时返回 ErrChatNotFound。
func (s *attachmentService) requireChat(chatID string) error {
	_, err := s.chatRepo.FindByID(chatID)
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return ErrChatNotFound
	}
	return err
}

// blobKey 生成对象存储键："<chatId>/<唯一后缀>-<文件名>"。
func blobKey(chatID, name string) string {
	return fmt.Sprintf("%s/%s-%s", chatID, uuid.NewString(), name)
}
