// Package cache provides a small string cache used to memoize computed
// analytics responses between dashboard page loads.
package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching services. A miss is reported as
// an empty string with a nil error so callers can fall through to a
// recompute without branching on error types.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
