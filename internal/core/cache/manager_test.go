package cache

import (
	"context"
	"testing"
	"time"

	"noshnurture/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int, ttl time.Duration) *Manager {
	t.Helper()
	m := NewManager(config.CacheConfig{MaxSize: maxSize, TTL: ttl})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestManager_GetSet(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 10, time.Hour)

	_, err := m.Get(ctx, "fuzzy:Tomatoes")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Set(ctx, "fuzzy:Tomatoes", "tomato"))
	val, err := m.Get(ctx, "fuzzy:Tomatoes")
	require.NoError(t, err)
	assert.Equal(t, "tomato", val)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}

func TestManager_Expiry(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 10, time.Minute)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", "v"))
	now = now.Add(2 * time.Minute)

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, m.Stats()["size"])
}

func TestManager_EvictsLeastUsed(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 2, time.Hour)

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))

	// a 被訪問過，b 應該被淘汰
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrMiss)
	val, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
}

func TestManager_OverwriteDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 1, time.Hour)

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "a", "2"))

	val, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", val)
}

func TestNewStore_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Enabled = false

	store, err := NewStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNewStore_Memory(t *testing.T) {
	cfg := config.Default()

	store, err := NewStore(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	assert.Equal(t, "memory", store.Stats()["backend"])
}

func TestNewStore_RedisUnreachable(t *testing.T) {
	cfg := config.Default()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	store, err := NewStore(ctx, cfg)
	assert.Error(t, err)
	assert.Nil(t, store)
}
