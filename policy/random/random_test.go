package random

import (
	"sort"
	"testing"
)

// --- test doubles ---

type mockHooks struct {
	keys []string
}

func (h *mockHooks) Len() int    { return len(h.keys) }
func (h *mockHooks) Size() int64 { return int64(len(h.keys)) }
func (h *mockHooks) Range(fn func(string) bool) {
	for _, k := range h.keys {
		if !fn(k) {
			return
		}
	}
}

// --- tests ---

// An empty store yields no victim.
func TestRandom_EmptyStore(t *testing.T) {
	t.Parallel()

	p := NewSeeded(1).New(&mockHooks{})
	if v := p.Victims(); v != nil {
		t.Fatalf("expected no victims, got %v", v)
	}
}

// Exactly one present key is proposed per round.
func TestRandom_OneVictimFromKeySet(t *testing.T) {
	t.Parallel()

	h := &mockHooks{keys: []string{"a", "b", "c"}}
	p := NewSeeded(7).New(h)

	for i := 0; i < 50; i++ {
		v := p.Victims()
		if len(v) != 1 {
			t.Fatalf("expected exactly one victim, got %v", v)
		}
		idx := sort.SearchStrings(h.keys, v[0])
		if idx >= len(h.keys) || h.keys[idx] != v[0] {
			t.Fatalf("victim %q is not in the key set", v[0])
		}
	}
}

// Every key is eventually chosen (rough uniformity check).
func TestRandom_CoversAllKeys(t *testing.T) {
	t.Parallel()

	h := &mockHooks{keys: []string{"a", "b", "c", "d"}}
	p := NewSeeded(42).New(h)

	seen := map[string]int{}
	for i := 0; i < 4000; i++ {
		seen[p.Victims()[0]]++
	}
	for _, k := range h.keys {
		if seen[k] < 500 {
			t.Fatalf("key %q chosen %d times out of 4000; distribution is skewed: %v", k, seen[k], seen)
		}
	}
}

// Two instances from the same seeded factory make the same choices.
func TestRandom_SeededIsDeterministic(t *testing.T) {
	t.Parallel()

	h := &mockHooks{keys: []string{"a", "b", "c", "d", "e"}}
	f := NewSeeded(99)
	p1, p2 := f.New(h), f.New(h)
	for i := 0; i < 20; i++ {
		if a, b := p1.Victims()[0], p2.Victims()[0]; a != b {
			t.Fatalf("round %d: %q != %q", i, a, b)
		}
	}
}
