package directory

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"nadir/models"

	"github.com/redis/go-redis/v9"
)

const (
	listingKey = "directory:products"
	listingTTL = 60 * time.Second
)

// Cache keeps the normalized product listing in Redis for a short TTL so
// catalog pagination does not hammer the upstream. Misses and Redis errors
// both fall through to a live fetch.
type Cache struct {
	conn *redis.Client
}

// NewCache returns nil when no Redis connection exists, which disables
// caching entirely.
func NewCache(conn *redis.Client) *Cache {
	if conn == nil {
		return nil
	}
	return &Cache{conn: conn}
}

func (c *Cache) GetListing(ctx context.Context) ([]models.Product, bool) {
	raw, err := c.conn.Get(ctx, listingKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("Catalog cache get error:", err)
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		log.Println("Catalog cache decode error:", err)
		return nil, false
	}
	return products, true
}

func (c *Cache) SetListing(ctx context.Context, products []models.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		log.Println("Catalog cache encode error:", err)
		return
	}
	if err := c.conn.Set(ctx, listingKey, raw, listingTTL).Err(); err != nil {
		log.Println("Catalog cache set error:", err)
	}
}
