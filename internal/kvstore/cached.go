package kvstore

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Store = (*Cached)(nil)

// Cached is a write-through cache in front of another store. The cache only
// learns a value after the inner store accepted it.
type Cached struct {
	inner         Store
	cache         *freecache.Cache
	expireSeconds int
}

// NewCached wraps inner with a freecache of sizeBytes (freecache enforces a 512KB
// minimum). expireSeconds <= 0 keeps entries until evicted.
func NewCached(inner Store, sizeBytes, expireSeconds int) *Cached {
	if expireSeconds < 0 {
		expireSeconds = 0
	}
	return &Cached{
		inner:         inner,
		cache:         freecache.NewCache(sizeBytes),
		expireSeconds: expireSeconds,
	}
}

func (c *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	if value, err := c.cache.Get([]byte(key)); err == nil {
		return value, nil
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Warnf("kv cache get [%s]: %s", key, err)
	}

	value, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	c.remember(key, value)
	return value, nil
}

func (c *Cached) Set(ctx context.Context, key string, value []byte) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		return err
	}
	c.remember(key, value)
	return nil
}

func (c *Cached) SetMany(ctx context.Context, values map[string][]byte) error {
	if err := c.inner.SetMany(ctx, values); err != nil {
		return err
	}
	for key, value := range values {
		c.remember(key, value)
	}
	return nil
}

func (c *Cached) Close() error {
	c.cache.Clear()
	return c.inner.Close()
}

func (c *Cached) remember(key string, value []byte) {
	if err := c.cache.Set([]byte(key), value, c.expireSeconds); err != nil {
		// too large for the cache; drop any stale copy so reads go to the inner store
		log.Debugf("kv cache set [%s]: %s", key, err)
		c.cache.Del([]byte(key))
	}
}
