package util

import (
	"sync"
	"testing"
	"unsafe"
)

func TestPaddedAtomicUint64_Size(t *testing.T) {
	t.Parallel()

	if got := unsafe.Sizeof(PaddedAtomicUint64{}); got != CacheLineSize {
		t.Fatalf("PaddedAtomicUint64 size = %d, want %d", got, CacheLineSize)
	}
	if got := unsafe.Sizeof(CacheLinePad{}); got != CacheLineSize {
		t.Fatalf("CacheLinePad size = %d, want %d", got, CacheLineSize)
	}
}

func TestPaddedAtomicUint64_ConcurrentAdd(t *testing.T) {
	t.Parallel()

	var c PaddedAtomicUint64
	var wg sync.WaitGroup
	const workers, perWorker = 8, 1000
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := c.Load(); got != workers*perWorker {
		t.Fatalf("counter = %d, want %d", got, workers*perWorker)
	}
}
