package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/IvanBrykalov/ringmap/internal/config"
	pmet "github.com/IvanBrykalov/ringmap/metrics/prom"
	"github.com/IvanBrykalov/ringmap/orderedmap"
)

type omHandle = orderedmap.Handle[string, int]

// runOrderedMap drives one map shared by all workers. Every write keeps
// the returned handle; once a worker holds cfg.OrderedMap.Live handles it
// closes a random one per write, so entries die with their last handle.
// It returns the resident count observed before the final drain.
func runOrderedMap(ctx context.Context, cfg *config.Config, metrics *pmet.Adapter, cnt *counters) (int, error) {
	opt := orderedmap.Options[string, int]{}
	if metrics != nil {
		opt.Metrics = metrics
	}
	m := orderedmap.NewWithOptions(opt)

	var mu sync.Mutex // guards m and every handle
	held := make([][]*omHandle, cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			gen := newKeyGen(cfg, w)
			var hs []*omHandle
			defer func() { held[w] = hs }()

			for gctx.Err() == nil {
				cnt.total.Add(1)
				k := gen.key()
				if gen.read(cfg.Reads) {
					cnt.reads.Add(1)
					mu.Lock()
					_, ok := m.Get(k)
					mu.Unlock()
					if ok {
						cnt.hits.Add(1)
					} else {
						cnt.misses.Add(1)
					}
					continue
				}

				cnt.writes.Add(1)
				mu.Lock()
				_, _, h := m.Insert(k, gen.r.Int())
				if len(hs) < cfg.OrderedMap.Live {
					hs = append(hs, h)
					mu.Unlock()
					continue
				}
				i := gen.r.Intn(len(hs))
				err := hs[i].Close()
				hs[i] = h
				mu.Unlock()
				if err != nil {
					return errors.Wrapf(err, "worker %d", w)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	resident := m.Len()
	if path := cfg.OrderedMap.Snapshot; path != "" {
		if err := writeSnapshot(path, m); err != nil {
			return resident, err
		}
		logger.Info("snapshot written", "path", path, "entries", resident)
	}

	// Closing every held handle must drain the map.
	for _, hs := range held {
		for _, h := range hs {
			if err := h.Close(); err != nil {
				return resident, errors.Wrap(err, "drain")
			}
		}
	}
	if n := m.Len(); n != 0 {
		return resident, errors.Errorf("orderedmap: %d entries left after closing every handle", n)
	}
	return resident, nil
}

// writeSnapshot encodes m as JSON for *.json paths and YAML otherwise.
func writeSnapshot(path string, m *orderedmap.Map[string, int]) error {
	var (
		b   []byte
		err error
	)
	if filepath.Ext(path) == ".json" {
		b, err = json.Marshal(m)
	} else {
		b, err = yaml.Marshal(m)
	}
	if err != nil {
		return errors.Wrap(err, "snapshot: encode")
	}
	return errors.Wrap(os.WriteFile(path, b, 0o644), "snapshot: write")
}
