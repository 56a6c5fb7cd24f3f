// Package ristretto implements the cache port using dgraph-io/ristretto.
// It holds rendered proposal documents and export payloads so repeated
// previews of an unchanged proposal skip the render pipeline.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// renderedDocBytes is the assumed average size of a cached entry, used to
// size ristretto's admission counters. Rendered proposals are HTML trees
// of a few dozen KB.
const renderedDocBytes = 64 << 10

// Cache is an in-process byte cache keyed by string.
type Cache struct {
	rc *ristretto.Cache[string, []byte]
}

// New builds a cache bounded at maxCostBytes of stored value bytes.
func New(maxCostBytes int64) (*Cache, error) {
	counters := maxCostBytes / renderedDocBytes * 10
	if counters < 1024 {
		counters = 1024
	}
	rc, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: counters,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{rc: rc}, nil
}

// Get looks up key. ok is false on a miss; err is always nil since the
// cache is in-process.
func (c *Cache) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	val, found := c.rc.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores value under key for ttl. The value length is its cost, so
// large exports evict more aggressively than small previews.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.rc.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

// Delete drops key. Used when a proposal is updated or removed.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.rc.Del(key)
	return nil
}

// Close releases the cache's internal goroutines.
func (c *Cache) Close() {
	c.rc.Close()
}
