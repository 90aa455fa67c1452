package solver

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

// frame is one node of the placement tree.
// cfg already holds the placements made on the way down; path is its
// propagated path and covered whether that path hits every target.
type frame struct {
	cfg       *core.Configuration
	path      *core.Path
	covered   bool
	positions []core.Coord   // open cells not used yet, in board order
	kinds     core.Inventory // blocks still to place
}

// searcher walks frames depth-first using an explicit stack.
type searcher struct {
	opts  Options
	count *counters
	stop  *atomic.Bool // set once any worker has a solution; may be nil
}

// Backtrack runs the pruned depth-first search on a single goroutine.
// Results and node counts are reproducible for identical inputs.
func Backtrack(ctx context.Context, b *core.Board, opts Options) (Result, error) {
	start := time.Now()
	c := &counters{}

	if !feasible(b) {
		return Result{Stats: c.stats(1, start)}, nil
	}

	s := &searcher{opts: opts, count: c}
	f, err := s.run(ctx, []frame{s.root(b)})
	if err != nil {
		return Result{Stats: c.stats(1, start)}, err
	}
	if f == nil {
		return Result{Stats: c.stats(1, start)}, nil
	}
	return solved(f.cfg, f.path, c.stats(1, start)), nil
}

// root builds the top frame with nothing placed.
func (s *searcher) root(b *core.Board) frame {
	cfg := b.NewConfiguration()
	path, covered := evaluate(cfg, s.count)
	return frame{
		cfg:       cfg,
		path:      path,
		covered:   covered,
		positions: b.OpenPositions(),
		kinds:     b.Inventory(),
	}
}

// run pops frames until a solved leaf is found or the stack is empty.
// It returns nil, nil when the subtree has no solution.
func (s *searcher) run(ctx context.Context, stack []frame) (*frame, error) {
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.stop != nil && s.stop.Load() {
			return nil, nil
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := s.count.nodes.Add(1)
		if s.opts.MaxNodes > 0 && n > s.opts.MaxNodes {
			return nil, ErrSearchLimit
		}

		if f.kinds.Total() == 0 {
			if f.covered {
				return &f, nil
			}
			continue
		}

		children := s.expand(f)
		// Push in reverse so the first child is searched first.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil, nil
}

// expand lists the children of f in search order: block kinds in
// enumeration order, then open positions in board order.
//
// A placement whose path equals the parent's cannot help unless the parent
// already covers every target, so it is skipped in that case.
func (s *searcher) expand(f frame) []frame {
	var children []frame

	for _, kind := range core.AllKinds {
		if f.kinds.Count(kind) == 0 {
			continue
		}
		for i, pos := range f.positions {
			if s.stop != nil && s.stop.Load() {
				return nil
			}
			child := f.cfg.Clone()
			if err := child.PlaceBlock(kind, pos); err != nil {
				s.count.rejected.Add(1)
				continue
			}

			path, covered := evaluate(child, s.count)
			if !f.covered && path.Equal(f.path) {
				s.count.pruned.Add(1)
				continue
			}

			kinds := f.kinds
			kinds[kind]--
			children = append(children, frame{
				cfg:       child,
				path:      path,
				covered:   covered,
				positions: without(f.positions, i),
				kinds:     kinds,
			})
		}
	}

	return children
}

// without returns a copy of positions with index i removed.
func without(positions []core.Coord, i int) []core.Coord {
	out := make([]core.Coord, 0, len(positions)-1)
	out = append(out, positions[:i]...)
	return append(out, positions[i+1:]...)
}
