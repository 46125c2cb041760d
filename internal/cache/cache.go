// Package cache provides the best-effort read accelerator wrapped around the
// repository read paths. A miss or a cache failure always falls through to
// the store; the cache is never a correctness dependency.
package cache

import (
	"context"
	"time"
)

// Cache is a minimal get/set/del contract. Get returns ("", nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Noop disables caching; every lookup is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, error)              { return "", nil }
func (Noop) Set(context.Context, string, string, time.Duration) error { return nil }
func (Noop) Del(context.Context, string) error                        { return nil }
