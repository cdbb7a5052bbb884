package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"portion-vision/plate-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) MenuKey(date string) string {
	return "menu:" + date
}

// GetMenu returns nil without error on a cache miss.
func (c *RedisCache) GetMenu(ctx context.Context, date string) (*domain.Menu, error) {
	raw, err := c.Client.Get(ctx, c.MenuKey(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var menu domain.Menu
	if err := json.Unmarshal(raw, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

func (c *RedisCache) SetMenu(ctx context.Context, menu *domain.Menu) error {
	payload, err := json.Marshal(menu)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.MenuKey(menu.Date), payload, c.TTL).Err()
}
