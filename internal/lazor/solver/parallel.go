package solver

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

// Parallel expands the first level of the Backtrack tree and searches the
// resulting subtrees on a bounded pool of workers. Each subtree owns its
// configuration copies. The first worker to find a solution stores it and
// raises the stop flag; the others notice it between propagation runs.
//
// The solution returned may differ between runs when several subtrees hold
// one; node counts are likewise not reproducible. Use Backtrack when that
// matters.
func Parallel(ctx context.Context, b *core.Board, opts Options) (Result, error) {
	start := time.Now()
	c := &counters{}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if !feasible(b) {
		return Result{Stats: c.stats(workers, start)}, nil
	}

	var (
		stop atomic.Bool
		slot atomic.Pointer[frame]
	)
	s := &searcher{opts: opts, count: c, stop: &stop}

	root := s.root(b)
	c.nodes.Add(1)
	if root.kinds.Total() == 0 {
		if root.covered {
			return solved(root.cfg, root.path, c.stats(workers, start)), nil
		}
		return Result{Stats: c.stats(workers, start)}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, sub := range s.expand(root) {
		if stop.Load() || gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if stop.Load() {
				return nil
			}
			f, err := s.run(gctx, []frame{sub})
			if err != nil {
				return err
			}
			if f != nil && slot.CompareAndSwap(nil, f) {
				stop.Store(true)
			}
			return nil
		})
	}

	err := g.Wait()
	if f := slot.Load(); f != nil {
		// A solution wins over errors raised by cancelled siblings.
		return solved(f.cfg, f.path, c.stats(workers, start)), nil
	}
	if err == nil {
		err = ctx.Err()
	}
	return Result{Stats: c.stats(workers, start)}, err
}
