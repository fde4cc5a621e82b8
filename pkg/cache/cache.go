// Package cache stores solver results keyed by graph content and search
// options.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// Keys come from a [Keyer] so callers never build them by hand:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ResultKey(graphHash, cache.ResultKeyOpts{Quality: "optimal", Seed: 42})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLResult applies to completed searches. A search that exhausted the
	// branch-and-bound tree never changes, so it is kept for a long time.
	TTLResult = 30 * 24 * time.Hour

	// TTLPartialResult applies to searches stopped by a deadline. A later
	// run with more time may do better.
	TTLPartialResult = 24 * time.Hour

	// TTLColoring applies to whole-graph colorings.
	TTLColoring = 7 * 24 * time.Hour
)

// Cache is a byte-level key/value store with expiration.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
