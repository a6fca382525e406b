package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/config"
)

// NewIdempotencyStore creates the idempotency store named by configuration.
// "memory" is the default; "redis" is for deployments with more than one
// instance, where retry fencing must be shared.
func NewIdempotencyStore(cfg *config.Config, logger *zap.Logger) (shared.IdempotencyStore, error) {
	switch cfg.Idempotency.Store {
	case "redis":
		store, err := NewRedisIdempotencyStore(RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis idempotency store: %w", err)
		}
		logger.Info("using redis idempotency store")
		return store, nil

	case "memory":
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil

	default:
		return nil, fmt.Errorf("unknown idempotency store %q", cfg.Idempotency.Store)
	}
}
