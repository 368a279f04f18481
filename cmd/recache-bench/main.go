// Command recache-bench runs a synthetic workload against the cache and
// exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
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

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/IvanBrykalov/recache/cache"
	pmet "github.com/IvanBrykalov/recache/metrics/prom"
)

type benchFlags struct {
	capacity   int
	defaultTTL time.Duration

	workers  int
	duration time.Duration
	readPct  int

	keys    int
	zipfS   float64
	zipfV   float64
	seed    int64
	preload int

	pprofAddr   string
	metricsAddr string
}

func newBenchCmd() *cobra.Command {
	f := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "recache-bench",
		Short: "Run a synthetic Zipf workload against the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd.Context(), f)
		},
	}

	cmd.Flags().IntVar(&f.capacity, "cap", 100_000, "cache capacity (entries)")
	cmd.Flags().DurationVar(&f.defaultTTL, "ttl", 0, "default TTL (0 = entries never expire)")
	cmd.Flags().IntVar(&f.workers, "workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
	cmd.Flags().DurationVar(&f.duration, "duration", 10*time.Second, "benchmark duration")
	cmd.Flags().IntVar(&f.readPct, "reads", 80, "read percentage [0..100]")
	cmd.Flags().IntVar(&f.keys, "keys", 1_000_000, "keyspace size")
	cmd.Flags().Float64Var(&f.zipfS, "zipf_s", 1.1, "Zipf s > 1 (skew)")
	cmd.Flags().Float64Var(&f.zipfV, "zipf_v", 1.0, "Zipf v")
	cmd.Flags().Int64Var(&f.seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&f.preload, "preload", 0, "preload entries (0 = cap/2)")
	cmd.Flags().StringVar(&f.pprofAddr, "pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
	cmd.Flags().StringVar(&f.metricsAddr, "http", ":8080", "serve Prometheus metrics at addr")

	return cmd
}

func runBench(ctx context.Context, f *benchFlags) error {
	logger := log.With(log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)), "ts", log.DefaultTimestampUTC)

	// ---- pprof server (on DefaultServeMux) ----
	if f.pprofAddr != "" {
		go func() {
			level.Info(logger).Log("msg", "serving pprof", "addr", f.pprofAddr)
			level.Error(logger).Log("msg", "pprof server stopped", "err", http.ListenAndServe(f.pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "recache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		level.Info(logger).Log("msg", "serving metrics", "addr", f.metricsAddr)
		level.Error(logger).Log("msg", "metrics server stopped", "err", http.ListenAndServe(f.metricsAddr, nil))
	}()

	// ---- Build cache ----
	// The workload is concurrent, so use the single-mutex wrapper.
	c, err := cache.NewLocked[string, string](cache.Options[string, string]{
		Capacity:   f.capacity,
		DefaultTTL: f.defaultTTL,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := f.preload
	if pl == 0 {
		pl = f.capacity / 2
	}
	for i := 0; i < pl; i++ {
		k := "k:" + strconv.Itoa(i)
		c.Set(k, "v"+strconv.Itoa(i))
	}

	workersN := f.workers
	if workersN <= 0 {
		workersN = 1
	}
	keysMax := uint64(f.keys - 1)

	// ---- Load generation ----
	var reads, writes, hits, misses, total uint64
	ctx, cancel := context.WithTimeout(ctx, f.duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(f.seed + int64(id)*9973))
			localZipf := rand.NewZipf(localR, f.zipfS, f.zipfV, keysMax)

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
				if int(localR.Int31n(100)) < f.readPct {
					atomic.AddUint64(&reads, 1)
					if _, ok := c.Get(keyByZipf()); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					k := keyByZipf()
					c.Set(k, "v"+strconv.Itoa(localR.Int()))
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	hitsN := atomic.LoadUint64(&hits)
	missesN := atomic.LoadUint64(&misses)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("cap=%d ttl=%v workers=%d keys=%d dur=%v seed=%d\n",
		f.capacity, f.defaultTTL, workersN, f.keys, elapsed, f.seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", hitsN, missesN, hitRate)
	fmt.Printf("Len()=%d\n", c.Len())
	return nil
}

func main() {
	if err := newBenchCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
