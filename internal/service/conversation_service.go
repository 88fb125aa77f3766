// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"private-chat-go/internal/model"
	"private-chat-go/internal/repository"
	"private-chat-go/pkg/gemini"
	"private-chat-go/pkg/log"
)

const (
	// historyLimit 是每次拼装请求时回看的最大历史消息条数。
	historyLimit = 40
	// messageListLimit 是消息列表接口返回的最大条数。
	messageListLimit = 200
	// maxInlineImages 是单次请求内联的图片附件上限，按最早上传优先。
	maxInlineImages = 3
)

// ConversationService 负责把对话的存量状态拼装为生成请求并取回回复。
// 回合顺序固定：[系统提示?] -> [历史...] -> [图片回合...] -> [非图片摘要?] -> [新消息]。
type ConversationService interface {
	// ListMessages 按时间升序返回对话的消息历史。
	ListMessages(chatID string) ([]model.Message, error)
	// AssembleContents 按固定顺序把历史、附件和新消息拼装为回合数组。
	AssembleContents(ctx context.Context, chat *model.Chat, history []model.Message, newMessage string) ([]gemini.Content, error)
	// SendMessage 持久化用户消息、拼装请求、调用生成接口，成功后持久化模型回复。
	SendMessage(ctx context.Context, chat *model.Chat, text string) (string, error)
}

type conversationService struct {
	messageRepo    repository.MessageRepository
	attachmentRepo repository.AttachmentRepository
	blobRepo       repository.BlobRepository
	settingService SettingService
	gateway        gemini.Client
}

// NewConversationService 创建一个新的 ConversationService 实例。
func NewConversationService(
	messageRepo repository.MessageRepository,
	attachmentRepo repository.AttachmentRepository,
	blobRepo repository.BlobRepository,
	settingService SettingService,
	gateway gemini.Client,
) ConversationService {
	return &conversationService{
		messageRepo:    messageRepo,
		attachmentRepo: attachmentRepo,
		blobRepo:       blobRepo,
		settingService: settingService,
		gateway:        gateway,
	}
}

// ListMessages 返回对话最早的 200 条消息，升序排列。
func (s *conversationService) ListMessages(chatID string) ([]model.Message, error) {
	return s.messageRepo.FindByChat(chatID, messageListLimit)
}

// AssembleContents 拼装发送给生成接口的回合数组：
//  1. 历史消息映射为单文本回合，角色归一化为 user/model 两种；
//  2. 最早的至多 3 个图片附件各成一个回合（文本标签 + 内联 base64），
//     对象读取失败只跳过该图片，不使整个请求失败；
//  3. 其余非图片附件合并为一个摘要回合；超出上限的图片不算"其余"，直接排除；
//  4. 若有系统提示，在最前插入一个 system 回合；
//  5. 新消息作为最后一个 user 回合。
func (s *conversationService) AssembleContents(ctx context.Context, chat *model.Chat, history []model.Message, newMessage string) ([]gemini.Content, error) {
	contents := make([]gemini.Content, 0, len(history)+maxInlineImages+3)

	for _, m := range history {
		role := model.NormalizeRole(string(m.Role))
		contents = append(contents, gemini.NewTextContent(string(role), m.Content))
	}

	attachments, err := s.attachmentRepo.FindByChat(chat.ID)
	if err != nil {
		return nil, err
	}

	var others []model.Attachment
	inlined := 0
	for _, att := range attachments {
		if !att.IsImage() {
			others = append(others, att)
			continue
		}
		if inlined >= maxInlineImages {
			// 超出上限的图片直接排除，不进入非图片摘要
			continue
		}
		data, err := s.blobRepo.Get(ctx, att.BlobKey)
		if err != nil || len(data) == 0 {
			log.Warnf("读取附件对象失败，跳过该图片: key=%s, err=%v", att.BlobKey, err)
			continue
		}
		contents = append(contents, gemini.Content{
			Role: string(model.RoleUser),
			Parts: []gemini.Part{
				{Text: fmt.Sprintf("Reference image: %s", att.Name)},
				{InlineData: &gemini.InlineData{
					MimeType: att.MimeType,
					Data:     base64.StdEncoding.EncodeToString(data),
				}},
			},
		})
		inlined++
	}

	if len(others) > 0 {
		descs := make([]string, 0, len(others))
		for _, att := range others {
			descs = append(descs, fmt.Sprintf("%s (%s)", att.Name, att.MimeType))
		}
		contents = append(contents, gemini.NewTextContent(string(model.RoleUser),
			"Previously attached non-image files for this chat, consider their content if relevant: "+strings.Join(descs, ", ")))
	}

	if chat.SystemPrompt != nil && *chat.SystemPrompt != "" {
		contents = append([]gemini.Content{gemini.NewTextContent("system", *chat.SystemPrompt)}, contents...)
	}

	contents = append(contents, gemini.NewTextContent(string(model.RoleUser), newMessage))
	return contents, nil
}

// SendMessage 执行一次完整的发送-生成流程。
// 用户消息在外呼之前持久化：即使生成失败，它也已经入库且不回滚。
// 模型回复仅在成功时入库。
func (s *conversationService) SendMessage(ctx context.Context, chat *model.Chat, text string) (string, error) {
	// 先取历史（不含本条新消息），再落库新消息
	history, err := s.messageRepo.FindRecent(chat.ID, historyLimit)
	if err != nil {
		return "", err
	}

	if err := s.messageRepo.Append(&model.Message{
		ChatID:  chat.ID,
		Role:    model.RoleUser,
		Content: text,
	}); err != nil {
		return "", err
	}

	contents, err := s.AssembleContents(ctx, chat, history, text)
	if err != nil {
		return "", err
	}

	apiKey, err := s.settingService.GetSecret(SettingGeminiAPIKey)
	if err != nil {
		return "", err
	}
	if apiKey == "" {
		return "", ErrGeminiKeyNotSet
	}

	reply, err := s.gateway.GenerateContent(ctx, apiKey, contents)
	if err != nil {
		return "", err
	}

	if err := s.messageRepo.Append(&model.Message{
		ChatID:  chat.ID,
		Role:    model.RoleModel,
		Content: reply,
	}); err != nil {
		return "", err
	}
	return reply, nil
}
