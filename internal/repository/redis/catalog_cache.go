package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/internal/repository"
)

const productKeyPrefix = "product:"

// CatalogCache is a read-through cache in front of a
// repository.CatalogRepository. Catalog rows change out of band and
// rarely, so entries expire on a TTL instead of being invalidated.
// Cache failures degrade to the underlying repository and are logged,
// never surfaced.
type CatalogCache struct {
	next   repository.CatalogRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCatalogCache wraps next with a Redis read-through cache.
func NewCatalogCache(next repository.CatalogRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetByID returns the cached product or falls through to the
// underlying repository, backfilling the cache on a hit there.
func (c *CatalogCache) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := c.cached(ctx, id); ok {
		return p, nil
	}

	p, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, p)
	return p, nil
}

// GetBySlug always hits the underlying repository. Slug lookups happen
// once per product page and the id keyed cache cannot serve them.
func (c *CatalogCache) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := c.next.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	c.store(ctx, p)
	return p, nil
}

// ListByIDs serves as many ids as possible from a single MGET and
// fetches only the misses from the underlying repository.
func (c *CatalogCache) ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	byID := make(map[string]domain.Product, len(ids))
	misses := ids

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKeyPrefix + id
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.WarnContext(ctx, "catalog cache mget failed", "error", err)
	} else {
		misses = misses[:0:0]
		for i, v := range values {
			s, ok := v.(string)
			if !ok {
				misses = append(misses, ids[i])
				continue
			}
			var p domain.Product
			if err := json.Unmarshal([]byte(s), &p); err != nil {
				misses = append(misses, ids[i])
				continue
			}
			byID[p.ID] = p
		}
	}

	if len(misses) > 0 {
		fetched, err := c.next.ListByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		for i := range fetched {
			byID[fetched[i].ID] = fetched[i]
			c.store(ctx, &fetched[i])
		}
	}

	// Preserve the caller's id order; ids without a catalog row stay
	// absent.
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}

	return products, nil
}

// List always hits the underlying repository. Listing pages vary by
// filter and pagination and are cheap enough to serve from Postgres.
func (c *CatalogCache) List(ctx context.Context, filter repository.CatalogFilter) ([]domain.Product, error) {
	return c.next.List(ctx, filter)
}

func (c *CatalogCache) cached(ctx context.Context, id string) (*domain.Product, bool) {
	data, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "catalog cache get failed", "error", err)
		}
		return nil, false
	}

	var p domain.Product
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.WarnContext(ctx, "catalog cache entry corrupt", "product_id", id, "error", err)
		return nil, false
	}

	return &p, true
}

func (c *CatalogCache) store(ctx context.Context, p *domain.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.WarnContext(ctx, "catalog cache marshal failed", "product_id", p.ID, "error", err)
		return
	}

	if err := c.client.Set(ctx, productKeyPrefix+p.ID, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalog cache set failed", "product_id", p.ID, "error", err)
	}
}
