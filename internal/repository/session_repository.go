// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// SessionRepository 定义了登录会话的操作接口。
// 会话只有"存在/不存在"两种状态：登录成功时创建，此设计中不过期也不吊销。
type SessionRepository interface {
	Create(ctx context.Context, token string) error
	Exists(ctx context.Context, token string) (bool, error)
}

type redisSessionRepository struct {
	redisClient *redis.Client
}

// NewSessionRepository 创建一个新的 SessionRepository 实例。
func NewSessionRepository(redisClient *redis.Client) SessionRepository {
	return &redisSessionRepository{redisClient: redisClient}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Create 为给定 token 建立一条会话记录。不设置 TTL，与"会话永不过期"的语义对齐。
func (r *redisSessionRepository) Create(ctx context.Context, token string) error {
	if err := r.redisClient.Set(ctx, sessionKey(token), "1", 0).Err(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Exists 检查给定 token 是否存在会话记录，存在即视为已授权。
func (r *redisSessionRepository) Exists(ctx context.Context, token string) (bool, error) {
	n, err := r.redisClient.Exists(ctx, sessionKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}
