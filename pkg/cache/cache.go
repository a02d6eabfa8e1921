// Package cache defines the result-cache contract used to memoize
// catalog discovery and taxon-list aggregation.
//
// Values are opaque byte slices; callers serialize their own types.
// Expiry is absolute and computed at write time. An expired entry is
// never returned. There is no eviction beyond expiry-on-read and no
// cross-request lock: concurrent misses may recompute the same value,
// which is accepted (writes are idempotent, last write wins).
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a process- or cluster-wide key/value store with entry-level
// time-to-live.
type Cache interface {
	// Get returns the stored value, or nil when the key is absent or
	// its entry has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Add stores a value that stays valid until the expiry instant.
	Add(ctx context.Context, key string, value []byte, expiry time.Time) error

	// Close releases backend resources.
	Close() error
}

// Key builds a composite cache key from the tuple that varies per
// scope, e.g. Key(server, user, "MODULES").
func Key(parts ...string) string {
	return strings.Join(parts, "_")
}
