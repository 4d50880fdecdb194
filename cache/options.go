package cache

import (
	"context"
	"time"

	"github.com/phuslu/log"

	"github.com/ahira-justice/caching/policy"
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity: removed by the active policy to make room for an insertion.
	EvictCapacity EvictReason = iota
	// EvictTTL: expired by TTL (lazy eviction on access).
	EvictTTL
)

func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictTTL:
		return "ttl"
	default:
		return "unknown"
	}
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	// Reject is called when an insertion fails with ErrCapacityExceeded.
	Reject()
	Size(entries int, bytes int64)
}

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures the cache behavior. Zero values are safe except
// SizeLimit; defaults are applied in New():
//   - nil Policy   => strict (reject on overflow)
//   - nil Metrics  => NoopMetrics
//   - nil Clock    => time.Now()
//   - nil Logger   => no logging
type Options struct {
	// SizeLimit is the byte budget for the sum of stored payload lengths.
	// Required, must be > 0. Fixed for the lifetime of the cache.
	SizeLimit int64

	// Policy selects the eviction strategy (strict/random/fifo/lfu/mru).
	Policy policy.Policy

	// DefaultTTL applies to Set and to GetOrLoad results (0 = no TTL).
	// SetWithTTL always uses its explicit ttl.
	DefaultTTL time.Duration

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, key string) ([]byte, error)

	// Observability
	// OnEvict is called on eviction under the cache lock; keep callbacks lightweight.
	OnEvict func(key string, payload []byte, reason EvictReason)
	Metrics Metrics
	// Logger receives debug records for capacity evictions and rejections.
	Logger *log.Logger

	// Clock allows overriding time source (tests). Nil => time.Now().
	Clock Clock
}

// Validate reports configuration errors as ErrInvalidArgument.
func (o Options) Validate() error {
	if o.SizeLimit <= 0 {
		return invalidArgument("SizeLimit must be > 0", map[string]interface{}{"size_limit": o.SizeLimit})
	}
	if o.DefaultTTL < 0 {
		return invalidArgument("DefaultTTL cannot be negative", map[string]interface{}{"default_ttl": o.DefaultTTL.String()})
	}
	return nil
}
