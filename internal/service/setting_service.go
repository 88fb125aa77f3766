// Package service 包含了应用的业务逻辑层。
package service

import (
	"strings"

	"private-chat-go/internal/repository"
)

// 设置表中使用的两个键。
const (
	// SettingGeminiAPIKey 是外部生成接口的密钥。
	SettingGeminiAPIKey = "gemini_api_key"
	// SettingAutomationAPIKey 是供外部自动化主机保存的密钥。
	SettingAutomationAPIKey = "automation_api_key"
)

// SecretFlags 描述各密钥是否已设置。出于安全考虑，读取接口只返回布尔标志，
// 绝不返回密钥本身。
type SecretFlags struct {
	GeminiAPIKeySet     bool `json:"geminiApiKeySet"`
	AutomationAPIKeySet bool `json:"automationApiKeySet"`
}

// SettingService 接口定义了全局密钥的读写操作。
type SettingService interface {
	// GetSecret 返回键对应的密钥值，未设置时为空字符串。
	GetSecret(key string) (string, error)
	// SetSecret 去除首尾空白后写入；空值直接忽略，不会清除已有密钥。
	SetSecret(key, value string) error
	// Flags 返回各密钥的设置状态。
	Flags() (*SecretFlags, error)
}

type settingService struct {
	settingRepo repository.SettingRepository
}

// NewSettingService 创建一个新的 SettingService 实例。
func NewSettingService(settingRepo repository.SettingRepository) SettingService {
	return &settingService{settingRepo: settingRepo}
}

// GetSecret 读取一个密钥。
func (s *settingService) GetSecret(key string) (string, error) {
	return s.settingRepo.Get(key)
}

// SetSecret 以 upsert 语义写入一个密钥。
func (s *settingService) SetSecret(key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return s.settingRepo.Set(key, value)
}

// Flags 汇报两个密钥的设置状态。
func (s *settingService) Flags() (*SecretFlags, error) {
	geminiKey, err := s.settingRepo.Get(SettingGeminiAPIKey)
	if err != nil {
		return nil, err
	}
	automationKey, err := s.settingRepo.Get(SettingAutomationAPIKey)
	if err != nil {
		return nil, err
	}
	return &SecretFlags{
		GeminiAPIKeySet:     geminiKey != "",
		AutomationAPIKeySet: automationKey != "",
	}, nil
}
