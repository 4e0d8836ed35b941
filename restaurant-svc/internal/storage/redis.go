package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"quickbite/restaurant-svc/internal/domain"
)

// MenuCache is a read-through cache for menu item lookups. The order
// service hits GetMenuItem once per order line, so hot items are served
// from Redis instead of Postgres. Entries are dropped on update/delete.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

func (c *MenuCache) key(id int) string {
	return "menu_item:" + strconv.Itoa(id)
}

func (c *MenuCache) Get(ctx context.Context, id int) (*domain.MenuItem, bool) {
	payload, err := c.Client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var item domain.MenuItem
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil, false
	}
	return &item, true
}

func (c *MenuCache) Set(ctx context.Context, item *domain.MenuItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.key(item.ID), payload, c.TTL).Err()
}

func (c *MenuCache) Invalidate(ctx context.Context, id int) error {
	return c.Client.Del(ctx, c.key(id)).Err()
}
