package cache

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ahira-justice/caching/internal/util"
	"github.com/ahira-justice/caching/policy"
	"github.com/ahira-justice/caching/policy/strict"
)

// cache binds one store to one eviction policy instance.
// The binding is fixed at construction.
type cache struct {
	// ---- guarded by mu ----
	mu  sync.Mutex
	st  *store
	pol policy.Instance

	polName string
	closed  atomic.Bool
	opt     Options

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group

	// ---- counters (separate cache lines; read by Stats without the lock) ----
	_       util.CacheLinePad
	hits    util.PaddedAtomicUint64
	misses  util.PaddedAtomicUint64
	evicts  util.PaddedAtomicUint64
	expired util.PaddedAtomicUint64
	rejects util.PaddedAtomicUint64
}

// New constructs a cache with the provided Options.
// Defaults:
//   - nil Policy   -> strict (no eviction, ErrCapacityExceeded on overflow)
//   - nil Metrics  -> NoopMetrics
//   - nil Clock    -> wall clock
func New(opt Options) (Cache, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = strict.New()
	}

	st := newStore(opt.SizeLimit)
	return &cache{
		st:      st,
		pol:     opt.Policy.New(st),
		polName: opt.Policy.Name(),
		opt:     opt,
	}, nil
}

// ---- Cache implementation ----

// Get returns the payload for key and a presence flag.
// TTL: if expired, the entry is removed and a miss is returned.
func (c *cache) Get(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, invalidArgument("key must not be empty", nil)
	}
	if c.closed.Load() {
		return nil, false, ErrClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.st.lookup(key)
	if !ok {
		c.missLocked()
		return nil, false, nil
	}
	if !e.live(c.now()) {
		c.evictLocked(e, EvictTTL)
		c.missLocked()
		return nil, false, nil
	}

	c.pol.OnAccess(key)
	c.hits.Add(1)
	c.opt.Metrics.Hit()
	return e.payload, true, nil
}

// Set inserts or overwrites key, using DefaultTTL if set.
func (c *cache) Set(key string, payload []byte) error {
	return c.set(key, payload, c.opt.DefaultTTL, false)
}

// SetWithTTL inserts or overwrites key with a per-entry TTL (relative duration).
func (c *cache) SetWithTTL(key string, payload []byte, ttl time.Duration) error {
	return c.set(key, payload, ttl, true)
}

// Remove deletes key if present and returns true on success.
// An expired entry is purged as a TTL eviction and reported as absent.
func (c *cache) Remove(key string) (bool, error) {
	if key == "" {
		return false, invalidArgument("key must not be empty", nil)
	}
	if c.closed.Load() {
		return false, ErrClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.st.lookup(key)
	if !ok {
		return false, nil
	}
	if !e.live(c.now()) {
		c.evictLocked(e, EvictTTL)
		return false, nil
	}
	c.st.remove(key)
	c.pol.OnRemove(key)
	c.opt.Metrics.Size(c.st.Len(), c.st.Size())
	return true, nil
}

// GetOrLoad returns the payload for key; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight).
// A loaded payload that cannot be stored (e.g. strict policy, cache full) is
// still returned to the caller.
func (c *cache) GetOrLoad(ctx context.Context, key string) ([]byte, error) {
	// fast path
	v, ok, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	if ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		return nil, ErrNoLoader
	}

	ch := c.sf.DoChan(key, func() (interface{}, error) {
		// double-check after flight join
		if v, ok, err := c.Get(key); err != nil || ok {
			return v, err
		}
		// The flight is shared: one caller's cancellation must not fail the
		// others, each of which still honors its own ctx below.
		v, err := c.opt.Loader(context.WithoutCancel(ctx), key)
		if err != nil {
			return nil, err
		}
		if v == nil {
			v = []byte{}
		}
		if err := c.Set(key, v); err != nil {
			if l := c.opt.Logger; l != nil {
				l.Debug().Str("policy", c.polName).Str("key", key).Err(err).Msg("loaded payload not cached")
			}
		}
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of resident entries.
func (c *cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.Len()
}

// Size returns the current sum of payload lengths.
func (c *cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.Size()
}

// Limit returns the configured byte budget.
func (c *cache) Limit() int64 { return c.st.limit }

// Policy returns the bound policy name.
func (c *cache) Policy() string { return c.polName }

// Close marks the cache as closed. Future operations return ErrClosed.
func (c *cache) Close() error {
	c.closed.Store(true)
	return nil
}

// ---- helpers ----

func (c *cache) set(key string, payload []byte, ttl time.Duration, explicitTTL bool) error {
	if key == "" {
		return invalidArgument("key must not be empty", nil)
	}
	if payload == nil {
		return invalidArgument("payload must not be nil", map[string]interface{}{"key": key})
	}
	if explicitTTL && ttl <= 0 {
		return invalidArgument("ttl must be > 0", map[string]interface{}{"key": key, "ttl": ttl.String()})
	}
	if c.closed.Load() {
		return ErrClosed
	}

	n := int64(len(payload))

	c.mu.Lock()
	defer c.mu.Unlock()

	// A payload larger than the whole budget can never fit; refuse before
	// touching anything.
	if n > c.st.limit {
		return c.rejectLocked(key, n)
	}

	now := c.now()

	// fits nets out the payload already stored under key, live or not, so a
	// rejection below leaves a stale entry in place.
	for !c.st.fits(key, n) {
		victims := c.pol.Victims()
		if len(victims) == 0 {
			return c.rejectLocked(key, n)
		}
		for _, k := range victims {
			if e, ok := c.st.lookup(k); ok {
				reason := EvictCapacity
				if !e.live(now) {
					reason = EvictTTL
				}
				c.evictLocked(e, reason)
				c.debugLocked("evicted", k)
			} else {
				// Policy proposed an unknown key; make it forget so the loop progresses.
				c.pol.OnRemove(k)
			}
		}
	}

	// The write is admitted. A stale entry under the same key expires now so
	// the policy sees a fresh insertion.
	if old, ok := c.st.lookup(key); ok && !old.live(now) {
		c.evictLocked(old, EvictTTL)
	}

	e := &entry{key: key, payload: payload, insertedAt: now}
	if ttl > 0 {
		e.exp = deadline(now, ttl)
	}
	if old := c.st.put(e); old != nil {
		c.pol.OnUpdate(key)
	} else {
		c.pol.OnInsert(key)
	}
	c.opt.Metrics.Size(c.st.Len(), c.st.Size())
	return nil
}

// evictLocked removes the entry, updates metrics/counters, and calls OnEvict.
func (c *cache) evictLocked(e *entry, reason EvictReason) {
	c.st.remove(e.key)
	c.pol.OnRemove(e.key)
	switch reason {
	case EvictTTL:
		c.expired.Add(1)
	default:
		c.evicts.Add(1)
	}
	c.opt.Metrics.Evict(reason)
	c.opt.Metrics.Size(c.st.Len(), c.st.Size())
	if cb := c.opt.OnEvict; cb != nil {
		cb(e.key, e.payload, reason)
	}
}

func (c *cache) rejectLocked(key string, n int64) error {
	c.rejects.Add(1)
	c.opt.Metrics.Reject()
	c.debugLocked("rejected", key)
	return capacityExceeded(key, c.st.prospective(key, n), c.st.limit)
}

func (c *cache) missLocked() {
	c.misses.Add(1)
	c.opt.Metrics.Miss()
}

// deadline returns now+ttl, saturating at math.MaxInt64.
func deadline(now int64, ttl time.Duration) int64 {
	if int64(ttl) > math.MaxInt64-now {
		return math.MaxInt64
	}
	return now + int64(ttl)
}

func (c *cache) now() int64 {
	if c.opt.Clock != nil {
		return c.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

// debugLocked writes a debug record when a Logger is configured.
func (c *cache) debugLocked(msg, key string) {
	if l := c.opt.Logger; l != nil {
		l.Debug().
			Str("policy", c.polName).
			Str("key", key).
			Int64("size", c.st.Size()).
			Int64("limit", c.st.limit).
			Msg(msg)
	}
}
