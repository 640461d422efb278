// Package cache stores derived artifacts of a skeleton store: snapshots
// rebuilt from a commit history and exports rendered from a snapshot.
//
// # Backends
//
//   - [FileCache]: one file per entry under a local directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers and CI runners
//   - [NullCache]: never stores anything; used with --no-cache
//
// # Keys
//
// A [Keyer] builds keys from content hashes so an entry never needs
// invalidation: a snapshot is keyed by the hash of the commits that produced
// it, and an export by the snapshot hash plus its options. [ScopedKeyer]
// prefixes every key, which separates datasets sharing one Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the cached value. A miss is reported as ok == false with
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}
