// Package mru implements most-recently-used eviction: the key that was
// touched last is the first to go.
package mru

import (
	"container/list"

	"github.com/ahira-justice/caching/policy"
)

// Name is the identifier reported by the MRU policy.
const Name = "mru"

// mru is a "move-to-front" recency list: Front() is the most recent key.
type mru struct {
	recency *list.List
	idx     map[string]*list.Element // element.Value is the key
}

type mruPolicy struct{}

// New returns a Policy factory that constructs MRU instances.
func New() policy.Policy { return mruPolicy{} }

func (mruPolicy) Name() string { return Name }

func (mruPolicy) New(policy.Hooks) policy.Instance {
	return &mru{
		recency: list.New(),
		idx:     make(map[string]*list.Element),
	}
}

// OnInsert places the new key at the head.
func (p *mru) OnInsert(key string) { p.touch(key) }

// OnUpdate treats an overwrite as recent use.
func (p *mru) OnUpdate(key string) { p.touch(key) }

// OnAccess promotes the key to the head.
func (p *mru) OnAccess(key string) { p.touch(key) }

func (p *mru) OnRemove(key string) {
	if el, ok := p.idx[key]; ok {
		p.recency.Remove(el)
		delete(p.idx, key)
	}
}

// Victims proposes the head of the recency list.
func (p *mru) Victims() []string {
	head := p.recency.Front()
	if head == nil {
		return nil
	}
	return []string{head.Value.(string)}
}

// touch moves key to the head, inserting it if absent, so every key
// appears at most once.
func (p *mru) touch(key string) {
	if el, ok := p.idx[key]; ok {
		p.recency.MoveToFront(el)
		return
	}
	p.idx[key] = p.recency.PushFront(key)
}
