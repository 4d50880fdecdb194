package cache

import (
	"bytes"
	"testing"

	"github.com/ahira-justice/caching/policy/lfu"
)

// Fuzz basic Set/Get/Remove semantics under arbitrary inputs.
// Guards against panics and ensures core invariants hold.
// NOTE: values are capped so they always fit the budget.
func FuzzCache_SetGetRemove(f *testing.F) {
	// Seed corpus: ASCII, Unicode, binary, long payloads.
	f.Add("a", []byte("1"))
	f.Add("αβγ", []byte("δ"))
	f.Add("emoji🙂", []byte("🙂🙂"))
	f.Add("bin", []byte{0, 1, 2, 255})
	f.Add("long", bytes.Repeat([]byte("x"), 1024))

	f.Fuzz(func(t *testing.T, k string, v []byte) {
		if k == "" || v == nil {
			t.Skip()
		}
		const limit = 1 << 12 // 4096
		if len(v) > limit {
			v = v[:limit]
		}

		c, err := New(Options{SizeLimit: limit, Policy: lfu.New()})
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = c.Close() })

		// Set -> Get must return the same payload.
		if err := c.Set(k, v); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, ok, err := c.Get(k)
		if err != nil || !ok || !bytes.Equal(got, v) {
			t.Fatalf("after Set/Get: want %q, got %q ok=%v err=%v", v, got, ok, err)
		}
		if c.Size() != int64(len(v)) {
			t.Fatalf("size = %d, want %d", c.Size(), len(v))
		}

		// Remove must delete and return true once.
		if ok, err := c.Remove(k); err != nil || !ok {
			t.Fatalf("Remove must return true, got %v err=%v", ok, err)
		}
		if _, ok, _ := c.Get(k); ok {
			t.Fatalf("key must be absent after Remove")
		}
		if c.Size() != 0 {
			t.Fatalf("size must be 0 after Remove, got %d", c.Size())
		}
	})
}
