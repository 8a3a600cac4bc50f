package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IvanBrykalov/ringmap/internal/config"
	pmet "github.com/IvanBrykalov/ringmap/metrics/prom"
)

// counters are shared by all workers of one run.
type counters struct {
	reads, writes, hits, misses, total atomic.Uint64
}

// keyGen draws Zipf-distributed keys; one per worker (rand.Rand is NOT goroutine-safe).
type keyGen struct {
	r    *rand.Rand
	zipf *rand.Zipf
}

func newKeyGen(cfg *config.Config, id int) *keyGen {
	r := rand.New(rand.NewSource(cfg.Seed + int64(id)*9973))
	return &keyGen{r: r, zipf: rand.NewZipf(r, cfg.Keys.ZipfS, cfg.Keys.ZipfV, uint64(cfg.Keys.Space-1))}
}

func (g *keyGen) key() string      { return "k:" + strconv.FormatUint(g.zipf.Uint64(), 10) }
func (g *keyGen) read(pct int) bool { return int(g.r.Int31n(100)) < pct }

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.HTTP.Pprof != "" {
		go serve(cfg.HTTP.Pprof, nil, "pprof")
	}

	var metrics *pmet.Adapter
	if cfg.HTTP.Metrics != "" {
		metrics = pmet.New(nil, "ringmap", "bench", nil)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go serve(cfg.HTTP.Metrics, mux, "metrics")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	var cnt counters
	start := time.Now()
	var (
		resident int
		err      error
	)
	switch cfg.Workload {
	case config.WorkloadOrderedMap:
		resident, err = runOrderedMap(ctx, cfg, metrics, &cnt)
	default:
		resident, err = runCache(ctx, cfg, metrics, &cnt)
	}
	if err != nil {
		return err
	}
	report(cfg, &cnt, time.Since(start), resident)
	return nil
}

func serve(addr string, h http.Handler, what string) {
	logger.Info("serving", "what", what, "addr", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("http server stopped", "what", what, "err", err)
	}
}

func report(cfg *config.Config, cnt *counters, elapsed time.Duration, resident int) {
	ops := cnt.total.Load()
	readsN := cnt.reads.Load()
	hitsN := cnt.hits.Load()

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	logger.Debug("run finished", "workload", cfg.Workload, "elapsed", elapsed, "ops", ops)
	fmt.Printf("workload=%s policy=%s cap=%d shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		cfg.Workload, cfg.Cache.Policy, cfg.Cache.Capacity, cfg.Cache.Shards, cfg.Workers, cfg.Keys.Space, elapsed, cfg.Seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, cnt.writes.Load())
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", hitsN, cnt.misses.Load(), hitRate)
	fmt.Printf("resident=%d\n", resident)
}
