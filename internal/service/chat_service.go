// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"strings"

	"private-chat-go/internal/model"
	"private-chat-go/internal/repository"
	"private-chat-go/pkg/log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 新建对话的默认标题，与前端一致。
const defaultChatTitle = "Untitled chat"

// ChatSettingsUpdate 描述一次对话设置的更新请求。
// 指针为 nil 表示"未提供该字段"；提供空字符串时，标题回退为默认值，
// 文件夹和系统提示则被清空。
type ChatSettingsUpdate struct {
	Title            *string
	FolderID         *string
	SystemPrompt     *string
	RegenerateAPIKey bool
}

// CascadeReport 汇总一次级联删除的结果。对象删除失败不会中断级联，
// 失败的键被收集在此统一上报。
type CascadeReport struct {
	AttachmentCount int
	FailedBlobKeys  []string
}

// ChatService 接口定义了对话记录的增删改查及设置管理。
type ChatService interface {
	CreateChat(title string, folderID *string) (*model.Chat, error)
	ListChats() ([]model.Chat, error)
	GetChat(id string) (*model.Chat, error)
	UpdateSettings(id string, upd ChatSettingsUpdate) (*model.Chat, error)
	// DeleteChat 级联删除对话及其全部消息、附件元数据和二进制对象。
	DeleteChat(ctx context.Context, id string) (*CascadeReport, error)
}

type chatService struct {
	chatRepo       repository.ChatRepository
	messageRepo    repository.MessageRepository
	attachmentRepo repository.AttachmentRepository
	blobRepo       repository.BlobRepository
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	attachmentRepo repository.AttachmentRepository,
	blobRepo repository.BlobRepository,
) ChatService {
	return &chatService{
		chatRepo:       chatRepo,
		messageRepo:    messageRepo,
		attachmentRepo: attachmentRepo,
		blobRepo:       blobRepo,
	}
}

// CreateChat 创建一个新对话，空标题回退为默认标题。
func (s *chatService) CreateChat(title string, folderID *string) (*model.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultChatTitle
	}
	chat := &model.Chat{
		ID:       uuid.NewString(),
		Title:    title,
		FolderID: normalizeRef(folderID),
	}
	if err := s.chatRepo.Create(chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// ListChats 返回全部对话，新的在前。
func (s *chatService) ListChats() ([]model.Chat, error) {
	return s.chatRepo.FindAll()
}

// GetChat 按 id 查找对话，不存在时返回 ErrChatNotFound。
func (s *chatService) GetChat(id string) (*model.Chat, error) {
	chat, err := s.chatRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChatNotFound
	}
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// UpdateSettings 更新对话的标题、所属文件夹、系统提示，并可按需轮换自动化密钥。
// 一次请求中没有任何可应用的字段时返回 ErrNothingToUpdate。
func (s *chatService) UpdateSettings(id string, upd ChatSettingsUpdate) (*model.Chat, error) {
	chat, err := s.GetChat(id)
	if err != nil {
		return nil, err
	}

	changed := false
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			title = defaultChatTitle
		}
		chat.Title = title
		changed = true
	}
	if upd.FolderID != nil {
		chat.FolderID = normalizeRef(upd.FolderID)
		changed = true
	}
	if upd.SystemPrompt != nil {
		prompt := strings.TrimSpace(*upd.SystemPrompt)
		if prompt == "" {
			chat.SystemPrompt = nil
		} else {
			chat.SystemPrompt = &prompt
		}
		changed = true
	}
	if upd.RegenerateAPIKey {
		// 整列覆盖，旧密钥随 UPDATE 立即失效，没有宽限期
		key := newChatAPIKey()
		chat.APIKey = &key
		changed = true
	}

	if !changed {
		return nil, ErrNothingToUpdate
	}

	if err := s.chatRepo.Update(chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// DeleteChat 执行级联删除：先尽力删除二进制对象（单个失败只记录、不中断），
// 再依次删除消息行、附件行和对话本身。
func (s *chatService) DeleteChat(ctx context.Context, id string) (*CascadeReport, error) {
	if _, err := s.GetChat(id); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindByChat(id)
	if err != nil {
		return nil, err
	}

	report := &CascadeReport{AttachmentCount: len(attachments)}
	for _, att := range attachments {
		if err := s.blobRepo.Delete(ctx, att.BlobKey); err != nil {
			log.Errorf("删除对象失败，级联继续: key=%s, err=%v", att.BlobKey, err)
			report.FailedBlobKeys = append(report.FailedBlobKeys, att.BlobKey)
		}
	}

	if err := s.messageRepo.DeleteByChat(id); err != nil {
		return nil, err
	}
	if err := s.attachmentRepo.DeleteByChat(id); err != nil {
		return nil, err
	}
	if err := s.chatRepo.Delete(id); err != nil {
		return nil, err
	}

	if len(report.FailedBlobKeys) > 0 {
		log.Warnf("对话 %s 已删除，但有 %d 个对象未能清理", id, len(report.FailedBlobKeys))
	}
	return report, nil
}

// newChatAPIKey 生成一个新的外部自动化密钥。
func newChatAPIKey() string {
	return "chat_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// normalizeRef 将空字符串引用归一化为 NULL。
func normalizeRef(ref *string) *string {
	if ref == nil || strings.TrimSpace(*ref) == "" {
		return nil
	}
	return ref
}
