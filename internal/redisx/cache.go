package redisx

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the client with the handful of cache operations the order
// flow needs. All writes are best-effort; callers log and move on.
type Cache struct {
	R *redis.Client
}

func (c *Cache) InvalidateProducts(ctx context.Context) error {
	return InvalidatePattern(ctx, c.R, PatternProducts)
}

func (c *Cache) GetProductList(ctx context.Context) (string, bool) {
	s, err := c.R.Get(ctx, KeyProductList).Result()
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

func (c *Cache) SetProductList(ctx context.Context, body string) {
	_ = c.R.Set(ctx, KeyProductList, body, TTLProductList).Err()
}

func (c *Cache) SetOrderStatus(ctx context.Context, orderID, status string) {
	key := fmt.Sprintf(KeyOrderStatus, orderID)
	_ = c.R.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, status), TTLStatusCache).Err()
}

func (c *Cache) DropOrderStatus(ctx context.Context, orderID string) {
	_ = c.R.Del(ctx, fmt.Sprintf(KeyOrderStatus, orderID)).Err()
}
