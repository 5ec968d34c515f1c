package larek

import (
	"context"
	"encoding/json"
	"time"

	"github.com/angelmondragon/larek-storefront/internal/order"
	"github.com/angelmondragon/larek-storefront/pkg/logger"
	"github.com/angelmondragon/larek-storefront/pkg/redis"
	"github.com/angelmondragon/larek-storefront/pkg/types"
)

// Cache is the part of the redis client the catalog cache needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(apiURL string) string
}

// CachedBackend serves the product list from redis when it can. Cache
// failures are logged and fall through to the API.
type CachedBackend struct {
	next  Backend
	cache Cache
	key   string
	ttl   time.Duration
	logg  *logger.Logger
}

func NewCachedBackend(next Backend, cache Cache, apiURL string, ttl time.Duration, logg *logger.Logger) *CachedBackend {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CachedBackend{
		next:  next,
		cache: cache,
		key:   cache.CatalogKey(apiURL),
		ttl:   ttl,
		logg:  logg,
	}
}

func (b *CachedBackend) FetchCatalog(ctx context.Context) ([]types.Product, error) {
	logCtx := b.logg.WithField(ctx, "cache_key", b.key)

	raw, err := b.cache.Get(ctx, b.key)
	switch {
	case err == nil:
		var products []types.Product
		if jsonErr := json.Unmarshal([]byte(raw), &products); jsonErr == nil {
			b.logg.Debug(logCtx, "catalog.cache_hit")
			return products, nil
		}
		b.logg.Warn(logCtx, "catalog.cache_corrupt")
	case redis.IsMiss(err):
		b.logg.Debug(logCtx, "catalog.cache_miss")
	default:
		b.logg.Error(logCtx, "catalog.cache_read_failed", err)
	}

	products, err := b.next.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(products)
	if err != nil {
		b.logg.Error(logCtx, "catalog.cache_encode_failed", err)
		return products, nil
	}
	if err := b.cache.Set(ctx, b.key, string(encoded), b.ttl); err != nil {
		b.logg.Error(logCtx, "catalog.cache_write_failed", err)
	}
	return products, nil
}

// FetchProduct always goes to the API; the preview refresh wants fresh data.
func (b *CachedBackend) FetchProduct(ctx context.Context, id string) (types.Product, error) {
	return b.next.FetchProduct(ctx, id)
}

func (b *CachedBackend) PlaceOrder(ctx context.Context, draft order.Draft) (types.OrderResult, error) {
	return b.next.PlaceOrder(ctx, draft)
}
