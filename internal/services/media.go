package services

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streamhive/streamhive-backend/internal/storage"
)

const mediaURLPrefix = "mediaurl:"

// URLResolver turns stored media references into playable URLs. With a
// public-read bucket the stored value already is a URL and passes through;
// with a private bucket the stored value is an object key that gets a
// presigned URL, cached in Redis for slightly less than its validity.
type URLResolver struct {
	store storage.ObjectStore
	cache *redis.Client
	ttl   time.Duration
}

func NewURLResolver(store storage.ObjectStore, cache *redis.Client, ttl time.Duration) *URLResolver {
	return &URLResolver{store: store, cache: cache, ttl: ttl}
}

func (r *URLResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}

	cacheKey := mediaURLPrefix + ref
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	signed, err := r.store.PresignURL(ctx, ref, r.ttl)
	if err != nil {
		return "", err
	}
	if r.cache != nil {
		cacheTTL := r.ttl - 30*time.Second
		if cacheTTL > 0 {
			_ = r.cache.Set(ctx, cacheKey, signed, cacheTTL).Err()
		}
	}
	return signed, nil
}
