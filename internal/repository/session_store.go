package repository

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore 按 key 保存会话记录的原始 JSON。读取时不做解析，损坏的记录由调用方处理
type SessionStore interface {
	Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// ExpiredPurger 由不能自动过期的存储实现（mysql），供后台定期清理
type ExpiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
