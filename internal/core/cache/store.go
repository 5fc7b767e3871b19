// Package cache 提供正規化結果的緩存，支援記憶體與 Redis 兩種後端。
package cache

import (
	"context"
	"errors"

	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrMiss 緩存未命中
var ErrMiss = errors.New("cache miss")

// Store 緩存介面
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Stats() map[string]interface{}
	Close() error
}

// NewStore 依設定建立緩存；未啟用時回傳 nil
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	if cfg.Redis.Enabled {
		store, err := NewRedisStore(ctx, cfg.Redis, cfg.Cache)
		if err != nil {
			return nil, err
		}
		common.LogInfo("Redis 快取已連線", zap.String("addr", cfg.Redis.Addr))
		return store, nil
	}

	return NewManager(cfg.Cache), nil
}
