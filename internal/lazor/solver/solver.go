// Package solver searches for block placements that route every ray of a
// board through all of its targets.
//
// Three strategies share one search core:
//   - Exhaustive enumerates every combination of open positions and every
//     distinct ordering of the block multiset. It is the correctness
//     baseline for small boards.
//   - Backtrack walks the placement tree depth-first with an explicit frame
//     stack, skipping placements that do not change the traced path.
//   - Parallel splits the first level of the Backtrack tree across a
//     bounded worker pool and stops siblings once any worker succeeds.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

// ErrSearchLimit is returned when Options.MaxNodes is exceeded.
var ErrSearchLimit = errors.New("solver: node limit exceeded")

// Strategy selects the search algorithm.
type Strategy string

const (
	StrategyBacktrack  Strategy = "backtrack"
	StrategyExhaustive Strategy = "exhaustive"
	StrategyParallel   Strategy = "parallel"
)

// ParseStrategy converts a flag or config value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyBacktrack, "":
		return StrategyBacktrack, nil
	case StrategyExhaustive:
		return StrategyExhaustive, nil
	case StrategyParallel:
		return StrategyParallel, nil
	default:
		return "", fmt.Errorf("solver: unknown strategy %q (want backtrack, exhaustive or parallel)", s)
	}
}

// Options configures a search.
type Options struct {
	Strategy Strategy
	Workers  int         // Parallel only; <= 0 means runtime.NumCPU()
	MaxNodes int64       // 0 = unlimited
	Logger   *log.Logger // nil = silent
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Strategy: StrategyBacktrack,
		Workers:  runtime.NumCPU(),
	}
}

// Stats describes the work done by a search.
type Stats struct {
	Nodes       int64 // search frames visited
	Evaluations int64 // full propagation runs
	Pruned      int64 // placements skipped because the path did not change
	Rejected    int64 // placements refused by the configuration
	Workers     int
	Duration    time.Duration
}

// Result is the outcome of a search. A board with no solution yields
// Solved=false and a nil error.
type Result struct {
	Solved     bool
	Placements []core.Placement
	Config     *core.Configuration // solved configuration, nil if unsolved
	Path       *core.Path          // path of Config, nil if unsolved
	Stats      Stats
}

// Solve runs the strategy selected in opts.
func Solve(ctx context.Context, b *core.Board, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	logger.Debug("search started",
		"strategy", opts.Strategy,
		"size", fmt.Sprintf("%dx%d", b.W, b.H),
		"open", len(b.OpenPositions()),
		"blocks", b.Inventory().Total(),
		"targets", len(b.Targets()),
	)

	var (
		res Result
		err error
	)
	switch opts.Strategy {
	case StrategyExhaustive:
		res, err = Exhaustive(ctx, b, opts)
	case StrategyParallel:
		res, err = Parallel(ctx, b, opts)
	default:
		res, err = Backtrack(ctx, b, opts)
	}
	if err != nil {
		logger.Warn("search aborted", "error", err, "nodes", res.Stats.Nodes)
		return res, err
	}

	logger.Info("search finished",
		"solved", res.Solved,
		"placements", len(res.Placements),
		"nodes", res.Stats.Nodes,
		"evaluations", res.Stats.Evaluations,
		"pruned", res.Stats.Pruned,
		"duration", res.Stats.Duration,
	)
	return res, nil
}

// counters are shared between workers.
type counters struct {
	nodes       atomic.Int64
	evaluations atomic.Int64
	pruned      atomic.Int64
	rejected    atomic.Int64
}

func (c *counters) stats(workers int, start time.Time) Stats {
	return Stats{
		Nodes:       c.nodes.Load(),
		Evaluations: c.evaluations.Load(),
		Pruned:      c.pruned.Load(),
		Rejected:    c.rejected.Load(),
		Workers:     workers,
		Duration:    time.Since(start),
	}
}

// solved builds a successful Result from a configuration and its path.
func solved(cfg *core.Configuration, path *core.Path, stats Stats) Result {
	return Result{
		Solved:     true,
		Placements: cfg.Placements(),
		Config:     cfg,
		Path:       path,
		Stats:      stats,
	}
}

// feasible reports whether the inventory fits on the open cells.
func feasible(b *core.Board) bool {
	return b.Inventory().Total() <= len(b.OpenPositions())
}

// evaluate propagates cfg and reports whether it covers every target.
func evaluate(cfg *core.Configuration, c *counters) (*core.Path, bool) {
	c.evaluations.Add(1)
	path := core.Propagate(cfg)
	b := cfg.Board()
	return path, core.Covers(path, b.Rays(), b.Targets())
}
