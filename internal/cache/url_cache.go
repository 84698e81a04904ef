// Package cache memoises resolved photo URLs.
package cache

import (
	"context"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"logyourbody/internal/domain"
)

const megabyte = 1024 * 1024

var _ domain.PhotoURLResolver = (*URLCache)(nil)

// Observer receives cache hit and miss events.
type Observer interface {
	ObserveCache(hit bool)
}

// URLCache wraps a PhotoURLResolver and keeps its results in freecache for
// expire. Expire must be shorter than the lifetime of the resolved URLs.
type URLCache struct {
	next     domain.PhotoURLResolver
	cache    *freecache.Cache
	expire   time.Duration
	observer Observer
}

// NewURLCache creates a URLCache of sizeMB megabytes in front of next.
func NewURLCache(next domain.PhotoURLResolver, sizeMB int, expire time.Duration, observer Observer) *URLCache {
	return &URLCache{
		next:     next,
		cache:    freecache.NewCache(sizeMB * megabyte),
		expire:   expire,
		observer: observer,
	}
}

// ResolveURL implements domain.PhotoURLResolver.
func (c *URLCache) ResolveURL(ctx context.Context, ref string) (string, error) {
	key := []byte(ref)
	if url, err := c.cache.Get(key); err == nil {
		c.observe(true)
		return string(url), nil
	}
	c.observe(false)

	url, err := c.next.ResolveURL(ctx, ref)
	if err != nil {
		return "", err
	}

	expireSeconds := int(c.expire / time.Second)
	if expireSeconds <= 0 {
		return url, nil
	}
	if err := c.cache.Set(key, []byte(url), expireSeconds); err != nil {
		log.Errorf("failed to cache photo url for %s: %s", ref, err)
	}
	return url, nil
}

// Len is the number of cached URLs.
func (c *URLCache) Len() int64 {
	return c.cache.EntryCount()
}

func (c *URLCache) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveCache(hit)
	}
}
