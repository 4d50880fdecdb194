package cache

import (
	"context"
	"time"
)

// Cache is a size-bounded, in-memory key/value cache for byte payloads.
// All methods are safe for concurrent use by multiple goroutines; each call
// runs in a single critical section, so the key table, the byte counter and
// the policy bookkeeping never diverge.
//
// Keys must be non-empty. Payloads must be non-nil (an empty, non-nil slice
// is a valid zero-byte payload). The cache keeps the payload slice as given;
// callers must not modify it after Set or after it is returned by Get.
type Cache interface {
	// Get returns the payload for key and whether it was found.
	// An expired entry is removed as a side effect and reported as a miss.
	// On hit, the entry is reported to the policy as an access.
	Get(key string) ([]byte, bool, error)

	// Set inserts or overwrites key with no explicit TTL (Options.DefaultTTL
	// applies if configured). Evicts through the policy when full, or fails
	// with ErrCapacityExceeded under the strict policy.
	Set(key string, payload []byte) error

	// SetWithTTL is Set with a per-entry TTL. ttl must be > 0.
	SetWithTTL(key string, payload []byte, ttl time.Duration) error

	// Remove deletes key if present and reports whether it existed.
	// Explicit removal is not counted as an eviction. An expired entry is
	// purged as a TTL expiration and reported as absent.
	Remove(key string) (bool, error)

	// GetOrLoad returns the payload for key, loading it via Options.Loader on miss.
	// Concurrent loads for the same key are coalesced (singleflight).
	// The Loader runs with a context detached from cancellation (values are
	// kept); a caller whose ctx ends stops waiting with ctx.Err() while the
	// shared load continues for the others.
	// If no Loader was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, key string) ([]byte, error)

	// Len returns the number of resident entries (expired ones not yet purged included).
	Len() int

	// Size returns the current sum of payload lengths in bytes.
	Size() int64

	// Limit returns the configured byte budget.
	Limit() int64

	// Policy returns the name of the bound eviction policy.
	Policy() string

	// Stats returns a point-in-time snapshot of counters.
	Stats() Stats

	// Close marks the cache closed. Later operations return ErrClosed.
	Close() error
}
