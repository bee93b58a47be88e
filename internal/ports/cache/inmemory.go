package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// InMemory реализация Cache поверх map с проверкой TTL при чтении.
// Просроченные записи считаются отсутствующими и удаляются лениво.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewInMemory создаёт новый in-memory кэш
func NewInMemory() *InMemory {
	return &InMemory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get получает значение по ключу; просроченная запись - промах
func (c *InMemory) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", ErrKeyNotFound
	}
	// Запись живёт строго меньше TTL: ровно в момент истечения это уже промах
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", ErrKeyNotFound
	}
	return e.value, nil
}

// Set устанавливает значение с TTL
func (c *InMemory) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Delete удаляет значение по ключу
func (c *InMemory) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Clear удаляет все записи независимо от TTL
func (c *InMemory) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return nil
}

func (c *InMemory) Close() error {
	return nil
}
