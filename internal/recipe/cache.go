package recipe

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/udisondev/craftdex/internal/model"
)

// CachedSource memoizes item lookups of a slower ItemSource (e.g. PostgreSQL).
// Only hits are cached, so newly imported items become visible immediately.
type CachedSource struct {
	next  ItemSource
	cache *gocache.Cache
}

// NewCachedSource wraps next with a TTL cache. ttl <= 0 disables expiration.
func NewCachedSource(next ItemSource, ttl time.Duration) *CachedSource {
	expiration := ttl
	cleanup := 2 * ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
		cleanup = 0
	}
	return &CachedSource{
		next:  next,
		cache: gocache.New(expiration, cleanup),
	}
}

// Item returns the cached item or loads it from the wrapped source.
func (s *CachedSource) Item(ctx context.Context, id string) (*model.Item, error) {
	if v, ok := s.cache.Get(id); ok {
		return v.(*model.Item), nil
	}
	item, err := s.next.Item(ctx, id)
	if err != nil || item == nil {
		return item, err
	}
	s.cache.SetDefault(id, item)
	return item, nil
}

// Invalidate drops every cached item.
func (s *CachedSource) Invalidate() {
	s.cache.Flush()
}

// Len returns the number of cached items.
func (s *CachedSource) Len() int {
	return s.cache.ItemCount()
}
