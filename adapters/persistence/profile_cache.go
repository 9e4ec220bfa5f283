package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vuhoang/dev-connector/internal/domain/profile"
)

const (
	profileCacheTTL     = 30 * time.Second
	profileListCacheKey = "profiles:all"
)

// redisProfileCache caches the public profile reads. Everything here
// is best-effort: callers fall through to Postgres on miss or fault.
type redisProfileCache struct {
	client *redis.Client
}

func NewRedisProfileCache(client *redis.Client) profile.Cache {
	return &redisProfileCache{client: client}
}

func handleKey(handle string) string {
	return fmt.Sprintf("profile:handle:%s", handle)
}

func (c *redisProfileCache) GetByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	val, err := c.client.Get(ctx, handleKey(handle)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p := &profile.Profile{}
	if err := json.Unmarshal(val, p); err != nil {
		return nil, fmt.Errorf("corrupt cached profile: %w", err)
	}
	return p, nil
}

func (c *redisProfileCache) SetByHandle(ctx context.Context, p *profile.Profile) error {
	val, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, handleKey(p.Handle), val, profileCacheTTL).Err()
}

func (c *redisProfileCache) GetAll(ctx context.Context) ([]profile.Profile, error) {
	val, err := c.client.Get(ctx, profileListCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ps := []profile.Profile{}
	if err := json.Unmarshal(val, &ps); err != nil {
		return nil, fmt.Errorf("corrupt cached profile list: %w", err)
	}
	return ps, nil
}

func (c *redisProfileCache) SetAll(ctx context.Context, ps []profile.Profile) error {
	val, err := json.Marshal(ps)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileListCacheKey, val, profileCacheTTL).Err()
}

func (c *redisProfileCache) Invalidate(ctx context.Context, handle string) error {
	keys := []string{profileListCacheKey}
	if handle != "" {
		keys = append(keys, handleKey(handle))
	}
	return c.client.Del(ctx, keys...).Err()
}
