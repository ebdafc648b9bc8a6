package cache

import (
	"fmt"

	"weatherdash.app/config"
	"weatherdash.app/errors"
)

// NewSnapshotCache builds the snapshot cache backend selected by config.
func NewSnapshotCache(cfg *config.CacheConfig) (SnapshotCache, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCache(), nil
	case config.CacheTypeRedis:
		return NewRedisCache(&cfg.Redis)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type), nil)
	}
}
