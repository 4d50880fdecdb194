// Package cache provides an in-process, size-bounded key/value cache for
// byte payloads with interchangeable eviction policies, per-entry TTL,
// optional singleflight loading and lightweight metrics hooks.
//
// Design
//
//   - Capacity: Options.SizeLimit is a byte budget for the sum of stored
//     payload lengths. After every successful Set, Size() <= Limit().
//
//   - Policies: eviction is pluggable via the policy package. The default is
//     strict (package policy/strict): nothing is evicted and an insertion that
//     would overflow fails with ErrCapacityExceeded. Evicting alternatives are
//     random, fifo, lfu (batch eviction of the lowest-frequency bucket) and
//     mru (evicts the most recently used key).
//
//   - TTL: entries can carry a deadline. Expiration is lazy: an expired entry
//     still counts toward Size until a Get (or a Set on the same key) purges it.
//     There is no background sweep.
//
//   - Concurrency: one mutex per cache; every operation is a single critical
//     section, so the key table, the byte counter and the policy bookkeeping
//     are always consistent.
//
//   - Oversized payloads: a payload larger than SizeLimit is rejected with
//     ErrCapacityExceeded before any eviction, under every policy.
//
//   - Errors: failures wrap ErrInvalidArgument or ErrCapacityExceeded
//     (github.com/jmgilman/go/errors codes INVALID_INPUT and CAPACITY_EXCEEDED).
//
// Basic usage
//
//	c, err := cache.New(cache.Options{SizeLimit: 1 << 20, Policy: fifo.New()})
//	if err != nil {
//	    return err
//	}
//	_ = c.Set("a", []byte("1"))
//	if v, ok, _ := c.Get("a"); ok {
//	    _ = v // use value
//	}
//
// With TTL
//
//	_ = c.SetWithTTL("tmp", []byte("v"), 200*time.Millisecond)
//
// Strict profile
//
//	c, _ := cache.New(cache.Options{SizeLimit: 10})
//	_ = c.Set("a", make([]byte, 6))
//	err := c.Set("b", make([]byte, 6)) // errors.Is(err, cache.ErrCapacityExceeded)
//
// Exporting metrics (Prometheus adapter)
//
//	m := prom.New(nil, "caching", "demo", nil) // implements Metrics
//	c, _ := cache.New(cache.Options{SizeLimit: 1 << 20, Metrics: m})
package cache
