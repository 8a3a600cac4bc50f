package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanBrykalov/ringmap/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ringbench",
	Short: "Synthetic workloads for the ordered map and the sharded cache",
	Long: `ringbench drives a Zipf-distributed read/write mix against either the
sharded cache (workload=cache) or a single ordered map whose entries live
exactly as long as the handles the workers hold (workload=orderedmap).

Settings come from defaults, an optional YAML file (--config), RINGBENCH_*
environment variables and flags, in increasing order of precedence.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		setDebug(cfg.Verbose)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return run(ctx, cfg)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfgFile, "config", "", "YAML configuration file")

	f.String("workload", config.WorkloadCache, "workload: cache | orderedmap")
	f.Duration("duration", 10*time.Second, "benchmark duration")
	f.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
	f.Int("reads", 80, "read percentage [0..100]")
	f.Int64("seed", 1, "random seed")
	f.BoolP("verbose", "v", false, "debug logging")

	f.Int("keys", 1_000_000, "keyspace size")
	f.Float64("zipf-s", 1.1, "Zipf s > 1 (skew)")
	f.Float64("zipf-v", 1.0, "Zipf v >= 1")

	f.Int("cap", 100_000, "cache capacity (entries)")
	f.Int("shards", 0, "number of shards (0=auto)")
	f.String("policy", "lru", "eviction policy: lru | 2q")
	f.Int("preload", 0, "preload entries (0 = cap/2)")
	f.Duration("ttl", 0, "per-entry TTL for cache writes (0 = none)")

	f.Int("live", 1024, "open handles kept per worker (orderedmap)")
	f.String("snapshot", "", "write the final ordered map to this file (.json or YAML)")

	f.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
	f.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")

	rootCmd.SetContext(context.Background())
}
