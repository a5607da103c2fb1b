package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoClient возвращается, когда Redis клиент не задан
var ErrNoClient = errors.New("ratelimit: redis client is nil")

// Limiter ограничитель с фиксированным окном поверх Redis
// Счетчик общий для всех экземпляров сервиса
type Limiter struct {
	client *redis.Client
	prefix string
}

// NewLimiter создает ограничитель с префиксом ключей prefix
func NewLimiter(client *redis.Client, prefix string) *Limiter {
	return &Limiter{client: client, prefix: prefix}
}

// Allow увеличивает счетчик ключа и сообщает, укладывается ли он в limit за окно window
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if l.client == nil {
		return false, ErrNoClient
	}

	fullKey := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := l.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit: increment %s: %w", fullKey, err)
	}

	// Окно отсчитывается от первого обращения
	if count == 1 {
		if err := l.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return false, fmt.Errorf("ratelimit: expire %s: %w", fullKey, err)
		}
	}

	return count <= int64(limit), nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
