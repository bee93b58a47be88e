package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_SetGet(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Hour))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestInMemory_MissingKey(t *testing.T) {
	c := NewInMemory()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestInMemory_TTLExpiry(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()

	current := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", "v", 24*time.Hour))

	// До истечения TTL запись доступна
	current = current.Add(23 * time.Hour)
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	// После истечения TTL запись считается отсутствующей
	current = current.Add(2 * time.Hour)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestInMemory_ExactTTLBoundaryIsMiss(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()

	current := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", "v", 24*time.Hour))

	// Запись живёт строго меньше TTL: ровно через 24 часа это промах
	current = current.Add(24 * time.Hour)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestInMemory_SetOverwritesTTL(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()

	current := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", "v1", time.Minute))
	current = current.Add(30 * time.Second)
	require.NoError(t, c.Set(ctx, "k", "v2", time.Minute))

	// Повторный Set сдвигает срок жизни от момента записи
	current = current.Add(45 * time.Second)
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}

func TestInMemory_DeleteAndClear(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", time.Hour))
	require.NoError(t, c.Set(ctx, "b", "2", time.Hour))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, c.Clear(ctx))
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
