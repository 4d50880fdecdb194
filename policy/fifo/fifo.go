// Package fifo implements first-in-first-out eviction.
package fifo

import (
	"container/list"

	"github.com/ahira-justice/caching/policy"
)

// Name is the identifier reported by the FIFO policy.
const Name = "fifo"

// fifo keeps keys in admission order: Front() is the oldest, Back() the newest.
//
// Accesses and in-place overwrites never reorder the queue.
type fifo struct {
	queue *list.List
	idx   map[string]*list.Element // element.Value is the key
}

type fifoPolicy struct{}

// New returns a Policy factory that constructs FIFO instances.
func New() policy.Policy { return fifoPolicy{} }

func (fifoPolicy) Name() string { return Name }

func (fifoPolicy) New(policy.Hooks) policy.Instance {
	return &fifo{
		queue: list.New(),
		idx:   make(map[string]*list.Element),
	}
}

// OnInsert enqueues the key at the tail. A key that is somehow still queued
// keeps a single position (the new one).
func (q *fifo) OnInsert(key string) {
	if el, ok := q.idx[key]; ok {
		q.queue.Remove(el)
	}
	q.idx[key] = q.queue.PushBack(key)
}

// OnUpdate keeps the original admission position.
func (q *fifo) OnUpdate(string) {}

// OnAccess is a no-op: FIFO ordering ignores reads.
func (q *fifo) OnAccess(string) {}

func (q *fifo) OnRemove(key string) {
	if el, ok := q.idx[key]; ok {
		q.queue.Remove(el)
		delete(q.idx, key)
	}
}

// Victims proposes the head of the queue. The cache calls OnRemove for it,
// which dequeues it.
func (q *fifo) Victims() []string {
	head := q.queue.Front()
	if head == nil {
		return nil
	}
	return []string{head.Value.(string)}
}
