package cache

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"weatherdash.app/config"
	"weatherdash.app/models"
)

// RedisCache stores the current snapshot under a single redis key. The whole
// snapshot is marshaled and written with one SET, so readers see either the
// old value or the new one.
type RedisCache struct {
	client *redis.Client
	key    string
	ctx    context.Context
}

func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	slog.Info("Redis snapshot cache connected", "addr", cfg.Addr)

	return &RedisCache{
		client: client,
		key:    cfg.Key,
		ctx:    ctx,
	}, nil
}

func (r *RedisCache) Publish(snapshot *models.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	// No TTL: staleness is only observable via generated_at.
	return r.client.Set(r.ctx, r.key, data, 0).Err()
}

func (r *RedisCache) Current() (*models.Snapshot, bool) {
	val, err := r.client.Get(r.ctx, r.key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("Redis get error", "error", err, "key", r.key)
		}
		return nil, false
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		slog.Error("Redis unmarshal error", "error", err, "key", r.key)
		return nil, false
	}

	return &snapshot, true
}
