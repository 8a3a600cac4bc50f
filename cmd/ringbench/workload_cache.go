package main

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/ringmap/cache"
	"github.com/IvanBrykalov/ringmap/internal/config"
	"github.com/IvanBrykalov/ringmap/internal/util"
	pmet "github.com/IvanBrykalov/ringmap/metrics/prom"
	"github.com/IvanBrykalov/ringmap/policy/twoq"
)

// runCache drives the sharded cache and returns the final resident count.
func runCache(ctx context.Context, cfg *config.Config, metrics *pmet.Adapter, cnt *counters) (int, error) {
	opt := cache.Options[string, string]{
		Capacity:   cfg.Cache.Capacity,
		Shards:     cfg.Cache.Shards,
		DefaultTTL: cfg.Cache.TTL,
	}
	if metrics != nil {
		opt.Metrics = metrics
	}
	if cfg.Cache.Policy == "2q" {
		// 2Q sizes are per shard: A1in ≈ 25%, ghosts ≈ 50%
		perShard := cfg.Cache.Capacity / util.ShardCount(cfg.Cache.Shards)
		opt.Policy = twoq.New[string](perShard/4, perShard/2)
	}
	c := cache.New[string, string](opt)
	defer func() { _ = c.Close() }()

	// Preload half capacity to get a realistic hit-rate.
	pl := cfg.Cache.Preload
	if pl == 0 {
		pl = cfg.Cache.Capacity / 2
	}
	for i := 0; i < pl; i++ {
		c.Set("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}
	logger.Debug("cache preloaded", "entries", c.Len(), "policy", cfg.Cache.Policy)

	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			gen := newKeyGen(cfg, w)
			for gctx.Err() == nil {
				cnt.total.Add(1)
				k := gen.key()
				if gen.read(cfg.Reads) {
					cnt.reads.Add(1)
					if _, ok := c.Get(k); ok {
						cnt.hits.Add(1)
					} else {
						cnt.misses.Add(1)
					}
					continue
				}
				cnt.writes.Add(1)
				c.Set(k, "v"+strconv.Itoa(gen.r.Int()))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	st := c.Stats()
	logger.Info("cache stats", "hits", st.Hits, "misses", st.Misses, "evictions", st.Evictions)
	return c.Len(), nil
}
