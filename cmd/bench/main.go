// Command bench runs a synthetic workload against the cache and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahira-justice/caching/cache"
	pmet "github.com/ahira-justice/caching/metrics/prom"
)

func defaults() workload {
	return workload{
		Limit:       64 << 20,
		Policy:      "lfu",
		ValueSize:   256,
		Workers:     2 * runtime.GOMAXPROCS(0),
		Duration:    10 * time.Second,
		Reads:       80,
		Keys:        1_000_000,
		ZipfS:       1.1,
		ZipfV:       1.0,
		Seed:        time.Now().UnixNano(),
		MetricsAddr: ":8080",
	}
}

func main() {
	logger := &log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.ConsoleWriter{Writer: os.Stderr, ColorOutput: true, EndWithMessage: true},
	}

	w, err := parseWorkload(flag.CommandLine, os.Args[1:], defaults())
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid workload")
	}
	if w.Debug {
		logger.Level = log.DebugLevel
	}

	// ---- pprof server (on DefaultServeMux) ----
	if w.PprofAddr != "" {
		go func() {
			logger.Info().Str("addr", w.PprofAddr).Msg("pprof: serving")
			logger.Error().Err(http.ListenAndServe(w.PprofAddr, nil)).Msg("pprof")
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "caching", "bench", nil)
	if w.MetricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info().Str("addr", w.MetricsAddr).Msg("metrics: serving")
			logger.Error().Err(http.ListenAndServe(w.MetricsAddr, nil)).Msg("metrics")
		}()
	}

	// ---- Build cache ----
	pol, _ := policyByName(w.Policy, uint64(w.Seed)) // validated by parseWorkload
	c, err := cache.New(cache.Options{
		SizeLimit: w.Limit,
		Policy:    pol,
		Metrics:   metrics,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("cache init")
	}
	defer func() { _ = c.Close() }()

	// ---- Preload half the budget to get a realistic hit-rate ----
	pl := w.Preload
	if pl == 0 {
		pl = int(w.Limit / int64(w.ValueSize) / 2)
	}
	val := make([]byte, w.ValueSize)
	for i := 0; i < pl; i++ {
		_ = c.Set("k:"+strconv.Itoa(i), val)
	}

	// ---- Load generation ----
	var reads, writes, hits, misses, rejects, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), w.Duration)
	defer cancel()

	keysMax := uint64(w.Keys - 1)
	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(w.Workers)
	for id := 0; id < w.Workers; id++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(w.Seed + int64(id)*9973))
			localZipf := rand.NewZipf(localR, w.ZipfS, w.ZipfV, keysMax)

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < w.Reads {
					atomic.AddUint64(&reads, 1)
					if _, ok, _ := c.Get(keyByZipf()); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
					continue
				}

				atomic.AddUint64(&writes, 1)
				var err error
				if w.TTL > 0 {
					err = c.SetWithTTL(keyByZipf(), val, w.TTL)
				} else {
					err = c.Set(keyByZipf(), val)
				}
				if err != nil {
					atomic.AddUint64(&rejects, 1)
				}
			}
		}(id)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	hitsN := atomic.LoadUint64(&hits)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("policy=%s limit=%d value=%d workers=%d keys=%d dur=%v seed=%d\n",
		c.Policy(), w.Limit, w.ValueSize, w.Workers, w.Keys, elapsed, w.Seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d  rejected=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, atomic.LoadUint64(&writes), atomic.LoadUint64(&rejects))
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", hitsN, atomic.LoadUint64(&misses), hitRate)

	st := c.Stats()
	fmt.Printf("Len()=%d  Size()=%d/%d  evictions=%d  expirations=%d\n",
		st.Entries, st.Size, st.Limit, st.Evictions, st.Expirations)
}
