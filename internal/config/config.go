// Package config loads ringbench settings from defaults, an optional YAML
// file, RINGBENCH_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// RINGBENCH_CACHE_CAPACITY.
const EnvPrefix = "RINGBENCH"

// Workload names.
const (
	WorkloadCache      = "cache"
	WorkloadOrderedMap = "orderedmap"
)

type Config struct {
	Workload string        `mapstructure:"workload"`
	Duration time.Duration `mapstructure:"duration"`
	Workers  int           `mapstructure:"workers"`
	Reads    int           `mapstructure:"reads"` // read percentage [0..100]
	Seed     int64         `mapstructure:"seed"`
	Verbose  bool          `mapstructure:"verbose"`

	Keys       KeysConfig       `mapstructure:"keys"`
	Cache      CacheConfig      `mapstructure:"cache"`
	OrderedMap OrderedMapConfig `mapstructure:"orderedmap"`
	HTTP       HTTPConfig       `mapstructure:"http"`
}

type KeysConfig struct {
	Space int     `mapstructure:"space"`
	ZipfS float64 `mapstructure:"zipf_s"`
	ZipfV float64 `mapstructure:"zipf_v"`
}

type CacheConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Shards   int           `mapstructure:"shards"`
	Policy   string        `mapstructure:"policy"`
	Preload  int           `mapstructure:"preload"` // 0 = capacity/2
	TTL      time.Duration `mapstructure:"ttl"`
}

type OrderedMapConfig struct {
	// Live bounds the handles each worker keeps open; older ones are closed.
	Live int `mapstructure:"live"`
	// Snapshot, if set, receives the final map as JSON (.json) or YAML.
	Snapshot string `mapstructure:"snapshot"`
}

type HTTPConfig struct {
	Metrics string `mapstructure:"metrics"` // empty = disabled
	Pprof   string `mapstructure:"pprof"`   // empty = disabled
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"workload": "workload",
	"duration": "duration",
	"workers":  "workers",
	"reads":    "reads",
	"seed":     "seed",
	"verbose":  "verbose",
	"keys":     "keys.space",
	"zipf-s":   "keys.zipf_s",
	"zipf-v":   "keys.zipf_v",
	"cap":      "cache.capacity",
	"shards":   "cache.shards",
	"policy":   "cache.policy",
	"preload":  "cache.preload",
	"ttl":      "cache.ttl",
	"live":     "orderedmap.live",
	"snapshot": "orderedmap.snapshot",
	"http":     "http.metrics",
	"pprof":    "http.pprof",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workload", WorkloadCache)
	v.SetDefault("duration", 10*time.Second)
	v.SetDefault("workers", 2*runtime.GOMAXPROCS(0))
	v.SetDefault("reads", 80)
	v.SetDefault("seed", 1)
	v.SetDefault("verbose", false)

	v.SetDefault("keys.space", 1_000_000)
	v.SetDefault("keys.zipf_s", 1.1)
	v.SetDefault("keys.zipf_v", 1.0)

	v.SetDefault("cache.capacity", 100_000)
	v.SetDefault("cache.shards", 0)
	v.SetDefault("cache.policy", "lru")
	v.SetDefault("cache.preload", 0)
	v.SetDefault("cache.ttl", time.Duration(0))

	v.SetDefault("orderedmap.live", 1024)
	v.SetDefault("orderedmap.snapshot", "")

	v.SetDefault("http.metrics", ":8080")
	v.SetDefault("http.pprof", "")
}

// Load builds a Config. path may be empty; flags may be nil. Only flags the
// user actually set override file and environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "config: bind flag %s", name)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Workload {
	case WorkloadCache, WorkloadOrderedMap:
	default:
		return errors.Errorf("config: unknown workload %q (use %s or %s)", c.Workload, WorkloadCache, WorkloadOrderedMap)
	}
	switch c.Cache.Policy {
	case "lru", "2q":
	default:
		return errors.Errorf("config: unknown policy %q (use lru or 2q)", c.Cache.Policy)
	}
	switch {
	case c.Duration <= 0:
		return errors.Errorf("config: duration must be > 0, got %v", c.Duration)
	case c.Workers <= 0:
		return errors.Errorf("config: workers must be > 0, got %d", c.Workers)
	case c.Reads < 0 || c.Reads > 100:
		return errors.Errorf("config: reads must be in [0..100], got %d", c.Reads)
	case c.Keys.Space < 2:
		return errors.Errorf("config: keys.space must be >= 2, got %d", c.Keys.Space)
	case c.Keys.ZipfS <= 1:
		return errors.Errorf("config: keys.zipf_s must be > 1, got %v", c.Keys.ZipfS)
	case c.Keys.ZipfV < 1:
		return errors.Errorf("config: keys.zipf_v must be >= 1, got %v", c.Keys.ZipfV)
	case c.Cache.Capacity <= 0:
		return errors.Errorf("config: cache.capacity must be > 0, got %d", c.Cache.Capacity)
	case c.OrderedMap.Live <= 0:
		return errors.Errorf("config: orderedmap.live must be > 0, got %d", c.OrderedMap.Live)
	}
	return nil
}
