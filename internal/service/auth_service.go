// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"crypto/subtle"

	"private-chat-go/internal/config"
	"private-chat-go/internal/repository"

	"github.com/google/uuid"
)

// AuthService 接口定义了操作者认证相关的业务操作。
// 系统只有一个共享口令和一张会话表，没有用户概念。
type AuthService interface {
	// Login 校验口令。成功时生成一个新的不透明 token 并写入会话存储。
	Login(ctx context.Context, password string) (string, error)
	// Check 检查 token 是否对应一条会话记录，存在即视为已授权。
	Check(ctx context.Context, token string) error
}

type authService struct {
	sessionRepo repository.SessionRepository
	cfg         config.AuthConfig
}

// NewAuthService 创建一个新的 AuthService 实例。
func NewAuthService(sessionRepo repository.SessionRepository, cfg config.AuthConfig) AuthService {
	return &authService{
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// Login 将提交的口令与配置中的操作者口令比较。
// 口令未配置返回 ErrMasterPasswordNotSet（配置错误）；口令不符返回
// ErrInvalidPassword，且不创建任何会话记录。
func (s *authService) Login(ctx context.Context, password string) (string, error) {
	expected := s.cfg.MasterPassword
	if expected == "" {
		return "", ErrMasterPasswordNotSet
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(expected)) != 1 {
		return "", ErrInvalidPassword
	}

	token := uuid.NewString()
	if err := s.sessionRepo.Create(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

// Check 查询会话存储，token 无对应记录时返回 ErrInvalidToken。
func (s *authService) Check(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	ok, err := s.sessionRepo.Exists(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidToken
	}
	return nil
}
