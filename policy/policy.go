// Package policy defines the contract between the cache store and its
// eviction strategies. Each strategy lives in its own subpackage
// (strict, random, fifo, lfu, mru) and is plugged into cache.Options.
package policy

// Hooks expose a read-only view of the store that a policy can consult
// when it has no bookkeeping of its own (e.g. random eviction).
//
// Concurrency: all hook calls happen under the cache lock.
type Hooks interface {
	// Len returns the number of entries currently held by the store,
	// expired-but-not-yet-purged entries included.
	Len() int
	// Size returns the current sum of payload lengths in bytes.
	Size() int64
	// Range calls fn for every key in the store until fn returns false.
	// Iteration order is unspecified.
	Range(fn func(key string) bool)
}

// Instance is an eviction policy bound to one store.
// All methods are invoked under the cache lock.
//
// Semantics:
//   - OnInsert is called after a new key is admitted to the store.
//   - OnUpdate is called after a live key is overwritten in place.
//   - OnAccess is called on a live hit only (never on a miss or an
//     expiry-triggered removal).
//   - OnRemove is called after a key has left the store for any reason
//     (capacity eviction, expiry, explicit removal). The policy must
//     forget the key.
//   - Victims returns the keys to remove in one eviction round. The store
//     removes them and calls OnRemove for each. An empty result means the
//     policy has nothing (more) to give up.
type Instance interface {
	OnInsert(key string)
	OnUpdate(key string)
	OnAccess(key string)
	OnRemove(key string)
	Victims() []string
}

// Policy is a factory that creates policy instances bound to a store.
type Policy interface {
	// Name is a stable identifier used in logs and metrics labels.
	Name() string
	// New binds a fresh instance to the store hooks.
	New(h Hooks) Instance
}
