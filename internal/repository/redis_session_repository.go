package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisSessionRepository struct {
	Redis *redis.Client
}

func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{Redis: rdb}
}

func (r *RedisSessionRepository) Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error {
	return r.Redis.Set(ctx, key, blob, ttl).Err()
}

func (r *RedisSessionRepository) Load(ctx context.Context, key string) ([]byte, error) {
	blob, err := r.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	return blob, err
}

func (r *RedisSessionRepository) Delete(ctx context.Context, key string) error {
	return r.Redis.Del(ctx, key).Err()
}

func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return r.Redis.Ping(ctx).Err()
}
