// Package cache defines the port interface for caching rendered documents.
package cache

import (
	"context"
	"time"
)

// Cache is the port interface for key-value caching. The renderer caches
// serialized visual trees keyed by proposal id; entries are invalidated
// by proposal updates and deletes.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
