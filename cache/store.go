package cache

import (
	"github.com/ahira-justice/caching/policy"
)

// store is the key→entry table plus the derived byte size.
// It knows nothing about eviction order; the bound policy decides, the
// cache orchestrates. All methods require the cache lock.
type store struct {
	m     map[string]*entry
	size  int64 // Σ len(payload) over every present entry, expired ones included
	limit int64 // fixed byte budget
}

func newStore(limit int64) *store {
	return &store{
		m:     make(map[string]*entry),
		limit: limit,
	}
}

// lookup returns the entry for key regardless of liveness.
func (s *store) lookup(key string) (*entry, bool) {
	e, ok := s.m[key]
	return e, ok
}

// put inserts or replaces the entry and returns the superseded one, if any.
// The size counter nets out the old payload.
func (s *store) put(e *entry) (old *entry) {
	if prev, ok := s.m[e.key]; ok {
		s.size -= prev.cost()
		old = prev
	}
	s.m[e.key] = e
	s.size += e.cost()
	return old
}

// remove deletes key and returns the removed entry.
func (s *store) remove(key string) (*entry, bool) {
	e, ok := s.m[key]
	if !ok {
		return nil, false
	}
	delete(s.m, key)
	s.size -= e.cost()
	if s.size < 0 {
		s.size = 0
	}
	return e, true
}

// prospective is the size the store would have after writing n bytes under
// key, counting an existing payload for key as freed.
func (s *store) prospective(key string, n int64) int64 {
	p := s.size + n
	if e, ok := s.m[key]; ok {
		p -= e.cost()
	}
	return p
}

// fits reports whether writing n bytes under key stays within the limit.
func (s *store) fits(key string, n int64) bool {
	return s.prospective(key, n) <= s.limit
}

// -------------------- policy hooks --------------------

// Len returns the number of present entries.
func (s *store) Len() int { return len(s.m) }

// Size returns the current byte size.
func (s *store) Size() int64 { return s.size }

// Range iterates over keys until fn returns false.
func (s *store) Range(fn func(key string) bool) {
	for k := range s.m {
		if !fn(k) {
			return
		}
	}
}

var _ policy.Hooks = (*store)(nil)
