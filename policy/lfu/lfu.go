// Package lfu implements least-frequently-used eviction with batch removal:
// one eviction round drops every key that shares the lowest recorded
// access frequency.
package lfu

import (
	"container/list"
	"sort"

	"github.com/ahira-justice/caching/policy"
)

// Name is the identifier reported by the LFU policy.
const Name = "lfu"

// lfu tracks read frequencies.
//
//   - buckets: frequency -> set of keys at that frequency (frequency >= 1)
//   - freq:    key -> current frequency, so OnAccess never scans buckets
//   - unread:  keys admitted but never read, oldest first. They sit at an
//     implicit frequency of zero and are not placed in any bucket; the first
//     read moves them to bucket 1.
//
// Concurrency: all methods are called under the cache lock.
type lfu struct {
	buckets map[int]map[string]struct{}
	freq    map[string]int

	unread    *list.List
	unreadIdx map[string]*list.Element

	// min is the smallest populated bucket; 0 means it must be recomputed.
	min int
}

type lfuPolicy struct{}

// New returns a Policy factory that constructs LFU instances.
func New() policy.Policy { return lfuPolicy{} }

func (lfuPolicy) Name() string { return Name }

func (lfuPolicy) New(policy.Hooks) policy.Instance {
	return &lfu{
		buckets:   make(map[int]map[string]struct{}),
		freq:      make(map[string]int),
		unread:    list.New(),
		unreadIdx: make(map[string]*list.Element),
	}
}

// OnInsert registers a new key without seeding a bucket.
func (p *lfu) OnInsert(key string) {
	p.forget(key)
	p.unreadIdx[key] = p.unread.PushBack(key)
}

// OnUpdate keeps the recorded frequency of an overwritten key.
func (p *lfu) OnUpdate(string) {}

// OnAccess moves the key from bucket f to bucket f+1 in O(1).
func (p *lfu) OnAccess(key string) {
	if el, ok := p.unreadIdx[key]; ok {
		p.unread.Remove(el)
		delete(p.unreadIdx, key)
		p.place(key, 1)
		p.min = 1
		return
	}
	f, ok := p.freq[key]
	if !ok {
		// Unknown key: treat as a first read.
		p.place(key, 1)
		p.min = 1
		return
	}
	wasMin := p.min == f
	p.leave(key, f)
	p.place(key, f+1)
	if wasMin && p.buckets[f] == nil {
		p.min = f + 1
	}
}

func (p *lfu) OnRemove(key string) { p.forget(key) }

// Victims returns the whole minimum-frequency bucket. When no key has been
// read yet, the oldest unread key is proposed instead so the cache can
// always make room.
func (p *lfu) Victims() []string {
	if len(p.buckets) > 0 {
		b := p.buckets[p.minFreq()]
		out := make([]string, 0, len(b))
		for k := range b {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	}
	if head := p.unread.Front(); head != nil {
		return []string{head.Value.(string)}
	}
	return nil
}

// Frequency reports the recorded read count of key (0 if never read or unknown).
func (p *lfu) Frequency(key string) int { return p.freq[key] }

// ---- internals ----

func (p *lfu) place(key string, f int) {
	b := p.buckets[f]
	if b == nil {
		b = make(map[string]struct{})
		p.buckets[f] = b
	}
	b[key] = struct{}{}
	p.freq[key] = f
}

// leave removes key from bucket f and drops the bucket once it is empty.
func (p *lfu) leave(key string, f int) {
	b := p.buckets[f]
	if b == nil {
		return
	}
	delete(b, key)
	if len(b) == 0 {
		delete(p.buckets, f)
		if p.min == f {
			p.min = 0
		}
	}
}

func (p *lfu) forget(key string) {
	if el, ok := p.unreadIdx[key]; ok {
		p.unread.Remove(el)
		delete(p.unreadIdx, key)
	}
	if f, ok := p.freq[key]; ok {
		p.leave(key, f)
		delete(p.freq, key)
	}
}

func (p *lfu) minFreq() int {
	if p.min != 0 {
		if _, ok := p.buckets[p.min]; ok {
			return p.min
		}
	}
	m := 0
	for f := range p.buckets {
		if m == 0 || f < m {
			m = f
		}
	}
	p.min = m
	return m
}
