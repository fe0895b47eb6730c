package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/event_booking/internal/core/domain"
)

const keyPrefix = "catalog"

// CatalogCache keeps catalog listings in Redis, one key per kind.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func Key(kind domain.Kind) string {
	return fmt.Sprintf("%s:%s", keyPrefix, kind)
}

func (c *CatalogCache) Get(ctx context.Context, kind domain.Kind) ([]domain.Item, bool, error) {
	raw, err := c.client.Get(ctx, Key(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get %s: %w", kind, err)
	}

	items, err := domain.DecodeItems(kind, raw)
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, kind domain.Kind, items []domain.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("catalog cache encode %s: %w", kind, err)
	}
	if err := c.client.Set(ctx, Key(kind), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache set %s: %w", kind, err)
	}
	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context, kind domain.Kind) error {
	if err := c.client.Del(ctx, Key(kind)).Err(); err != nil {
		return fmt.Errorf("catalog cache invalidate %s: %w", kind, err)
	}
	return nil
}
