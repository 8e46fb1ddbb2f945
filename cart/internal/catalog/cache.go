package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Alturino/mallcart/cart/internal/domain"
	"github.com/Alturino/mallcart/internal/constants"
)

func CacheKey(productID uuid.UUID) string {
	return constants.CacheKeyProducts + productID.String()
}

type entryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (e entryCache) enabled() bool {
	return e.client != nil && e.ttl > 0
}

// get returns redis.Nil on a miss.
func (e entryCache) get(c context.Context, productID uuid.UUID) (domain.CatalogEntry, error) {
	jsonCache, err := e.client.Get(c, CacheKey(productID)).Result()
	if err != nil {
		return domain.CatalogEntry{}, err
	}
	entry := domain.CatalogEntry{}
	if err := json.Unmarshal([]byte(jsonCache), &entry); err != nil {
		return domain.CatalogEntry{}, fmt.Errorf("failed unmarshalling jsonCache with error=%w", err)
	}
	return entry, nil
}

func (e entryCache) set(c context.Context, entry domain.CatalogEntry) error {
	jsonCache, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed marshalling catalog entry with error=%w", err)
	}
	return e.client.Set(c, CacheKey(entry.ProductID), jsonCache, e.ttl).Err()
}
