package cache

import (
	"context"
	"time"

	"github.com/qaops/testcase-gateway/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores completed generation results keyed by a hash of the
// request (mode, free text and image payloads), so a repeated upload can
// be replayed without another model call. Entries expire after the
// configured TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisCache{
		client: rdb,
		ttl:    cfg.TTL,
	}
}

// Get returns the cached generation text for the request hash, reporting
// a miss as found=false rather than an error.
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores the full generated text under the request hash with the
// configured TTL.
func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}
