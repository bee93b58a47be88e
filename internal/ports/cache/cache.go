package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound ключ отсутствует в кэше или его TTL истёк
var ErrKeyNotFound = errors.New("cache: key not found")

// Cache интерфейс для работы с кэшем
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear удаляет все записи независимо от TTL
	Clear(ctx context.Context) error
	Close() error
}
