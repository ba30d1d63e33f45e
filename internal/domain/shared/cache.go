package shared

import (
	"context"
	"time"
)

// ReportCache stores serialized report payloads with a TTL. A miss is not an
// error; errors mean the cache backend itself failed and callers should fall
// through to the source query.
type ReportCache interface {
	// Get returns the cached payload and whether the key was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload under the key with the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes the key
	Invalidate(ctx context.Context, key string) error
}
