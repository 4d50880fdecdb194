package cache

import (
	"context"
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// A mixed workload of concurrent Set/Get/SetWithTTL/Remove on random keys,
// once per evicting policy. Should pass under `-race` without detector
// reports, and the byte budget must hold at every observation.
func TestRace_Basic(t *testing.T) {
	for name, p := range evictingPolicies() {
		t.Run(name, func(t *testing.T) {
			c := mustNew(t, Options{SizeLimit: 4_096, Policy: p})

			workers := 4 * runtime.GOMAXPROCS(0)
			keyspace := 2_000
			deadline := time.Now().Add(500 * time.Millisecond)

			var overLimit atomic.Bool
			var wg sync.WaitGroup
			wg.Add(workers)
			for w := 0; w < workers; w++ {
				go func(id int) {
					defer wg.Done()
					r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
					for time.Now().Before(deadline) {
						k := "k:" + strconv.Itoa(r.Intn(keyspace))
						v := make([]byte, 1+r.Intn(64))
						switch r.Intn(100) {
						case 0, 1, 2, 3, 4: // ~5%: Remove
							_, _ = c.Remove(k)
						case 5, 6, 7, 8, 9: // ~5%: SetWithTTL
							_ = c.SetWithTTL(k, v, time.Duration(10+r.Intn(20))*time.Millisecond)
						case 10, 11, 12, 13, 14, 15, 16, 17, 18, 19: // ~10%: Set
							_ = c.Set(k, v)
						default: // ~80%: Get
							_, _, _ = c.Get(k)
						}
						if c.Size() > c.Limit() {
							overLimit.Store(true)
						}
					}
				}(w)
			}
			wg.Wait()

			if overLimit.Load() {
				t.Fatal("size exceeded the limit under concurrent use")
			}
		})
	}
}

// One hundred goroutines call GetOrLoad on the same key concurrently.
// The Loader should run at most once (singleflight coalescing).
func TestRace_GetOrLoad(t *testing.T) {
	var calls int64

	c := mustNew(t, Options{
		SizeLimit: 1024,
		Policy:    evictingPolicies()["lfu"],
		Loader: func(_ context.Context, k string) ([]byte, error) {
			atomic.AddInt64(&calls, 1)
			time.Sleep(2 * time.Millisecond) // simulate I/O
			return []byte("v:" + k), nil
		},
	})

	const goroutines = 100
	key := "same-key"

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := c.GetOrLoad(context.Background(), key)
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
				return
			}
			if string(v) != "v:"+key {
				t.Errorf("unexpected value: %q", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt64(&calls); got > 1 {
		t.Fatalf("loader should run at most once, got %d", got)
	}

	// Subsequent call should be a pure cache hit.
	if v, err := c.GetOrLoad(context.Background(), key); err != nil || string(v) != "v:"+key {
		t.Fatalf("second GetOrLoad failed: v=%q err=%v", v, err)
	}
}
