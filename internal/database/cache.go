package database

import (
	"context"
	"strconv"
	"time"

	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/search"
	"github.com/patrickmn/go-cache"
)

// CachedCatalog keeps successful lookups of a catalog for a while. Misses
// and errors are not cached, so newly created facets show up immediately.
type CachedCatalog struct {
	next  search.Catalog
	cache *cache.Cache
}

// NewCachedCatalog wraps next with a cache whose entries expire after ttl.
func NewCachedCatalog(next search.Catalog, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func cached[T any](c *CachedCatalog, key string, load func() (T, error)) (T, error) {
	if v, ok := c.cache.Get(key); ok {
		return v.(T), nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.cache.SetDefault(key, v)
	return v, nil
}

func slugKey(kind gallery.Kind, slug string) string {
	return kind.Key() + ":" + slug
}

func (c *CachedCatalog) TagBySlug(ctx context.Context, slug string) (gallery.Tag, error) {
	return cached(c, slugKey(gallery.KindTag, slug), func() (gallery.Tag, error) {
		return c.next.TagBySlug(ctx, slug)
	})
}

func (c *CachedCatalog) PersonBySlug(ctx context.Context, slug string) (gallery.Person, error) {
	return cached(c, slugKey(gallery.KindPerson, slug), func() (gallery.Person, error) {
		return c.next.PersonBySlug(ctx, slug)
	})
}

func (c *CachedCatalog) PlaceBySlug(ctx context.Context, slug string) (gallery.Place, error) {
	return cached(c, slugKey(gallery.KindPlace, slug), func() (gallery.Place, error) {
		return c.next.PlaceBySlug(ctx, slug)
	})
}

func (c *CachedCatalog) PhotoDate(ctx context.Context, id int32) (*time.Time, error) {
	return cached(c, "photo:"+strconv.FormatInt(int64(id), 10), func() (*time.Time, error) {
		return c.next.PhotoDate(ctx, id)
	})
}
