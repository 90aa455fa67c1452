package solver

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

// reflectBoard is a 2x2 open board with one Reflect block to place and a
// ray entering at (1,0) heading down-right. Only a reflect block at [1,0]
// bends the ray through (1,2).
func reflectBoard(t *testing.T, target core.Point) *core.Board {
	t.Helper()
	b, err := core.Load(core.BoardSpec{
		Rows:    []string{"o o", "o o"},
		Blocks:  map[core.BlockKind]int{core.Reflect: 1},
		Rays:    []core.Ray{core.NewRay(core.P(1, 0), core.P(1, 1))},
		Targets: []core.Point{target},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return b
}

var strategies = []Strategy{StrategyBacktrack, StrategyExhaustive, StrategyParallel}

func solveWith(t *testing.T, b *core.Board, s Strategy) Result {
	t.Helper()
	res, err := Solve(context.Background(), b, Options{Strategy: s, Workers: 2})
	if err != nil {
		t.Fatalf("%s: Solve failed: %v", s, err)
	}
	return res
}

func TestSingleReflectPlacement(t *testing.T) {
	b := reflectBoard(t, core.P(1, 2))
	want := core.Placement{At: core.C(1, 0), Kind: core.Reflect}

	for _, s := range strategies {
		res := solveWith(t, b, s)
		if !res.Solved {
			t.Errorf("%s: expected a solution", s)
			continue
		}
		if len(res.Placements) != 1 || res.Placements[0] != want {
			t.Errorf("%s: expected [%v], got %v", s, want, res.Placements)
		}
		if res.Path == nil || !res.Path.Contains(core.Segment{From: core.P(2, 1), To: core.P(1, 2)}) {
			t.Errorf("%s: solution path should bend at (2,1)", s)
		}
	}
}

func TestOneRowBoardNeedsFarCell(t *testing.T) {
	// 1x2 board: the ray crosses [0,0] untouched and only a reflect block
	// in the second cell sends it down through (1,2).
	b := core.MustLoad(core.BoardSpec{
		Rows:    []string{"o o"},
		Blocks:  map[core.BlockKind]int{core.Reflect: 1},
		Rays:    []core.Ray{core.NewRay(core.P(1, 0), core.P(1, 1))},
		Targets: []core.Point{core.P(1, 2)},
	})
	want := core.Placement{At: core.C(1, 0), Kind: core.Reflect}

	for _, s := range strategies {
		res := solveWith(t, b, s)
		if !res.Solved || len(res.Placements) != 1 || res.Placements[0] != want {
			t.Errorf("%s: expected [%v], got solved=%v %v", s, want, res.Solved, res.Placements)
		}
	}
}

func TestBacktrackPrunesUnchangedPaths(t *testing.T) {
	res := solveWith(t, reflectBoard(t, core.P(1, 2)), StrategyBacktrack)

	// Root plus four candidate placements; [0,1] is off the beam.
	if res.Stats.Evaluations != 5 {
		t.Errorf("expected 5 evaluations, got %d", res.Stats.Evaluations)
	}
	if res.Stats.Pruned != 1 {
		t.Errorf("expected 1 pruned placement, got %d", res.Stats.Pruned)
	}
	if res.Stats.Nodes != 3 {
		t.Errorf("expected 3 nodes, got %d", res.Stats.Nodes)
	}
}

func TestStrategiesAgreeOnUnreachableTarget(t *testing.T) {
	b := reflectBoard(t, core.P(3, 4))

	for _, s := range strategies {
		if res := solveWith(t, b, s); res.Solved {
			t.Errorf("%s: expected no solution, got %v", s, res.Placements)
		}
	}
}

func TestEmptyPlacementSolution(t *testing.T) {
	b := core.MustLoad(core.BoardSpec{
		Rows:    []string{"o o", "o o"},
		Rays:    []core.Ray{core.NewRay(core.P(1, 0), core.P(1, 1))},
		Targets: []core.Point{core.P(3, 2)},
	})

	for _, s := range strategies {
		res := solveWith(t, b, s)
		if !res.Solved {
			t.Errorf("%s: expected success with no blocks", s)
		}
		if len(res.Placements) != 0 {
			t.Errorf("%s: expected empty placements, got %v", s, res.Placements)
		}
	}
}

func TestTooFewOpenCells(t *testing.T) {
	b := core.MustLoad(core.BoardSpec{
		Rows:    []string{"o x", "x x"},
		Blocks:  map[core.BlockKind]int{core.Reflect: 2},
		Rays:    []core.Ray{core.NewRay(core.P(1, 0), core.P(1, 1))},
		Targets: []core.Point{core.P(3, 2)},
	})

	for _, s := range strategies {
		res := solveWith(t, b, s)
		if res.Solved {
			t.Errorf("%s: expected no solution", s)
		}
		if res.Stats.Evaluations != 0 || res.Stats.Nodes != 0 {
			t.Errorf("%s: expected no work, got %d evaluations and %d nodes",
				s, res.Stats.Evaluations, res.Stats.Nodes)
		}
	}
}

func TestBacktrackDeterministic(t *testing.T) {
	b := core.MustLoad(core.BoardSpec{
		Rows:    []string{"o o o", "o o o", "o o o"},
		Blocks:  map[core.BlockKind]int{core.Reflect: 1, core.Opaque: 1},
		Rays:    []core.Ray{core.NewRay(core.P(1, 0), core.P(1, 1))},
		Targets: []core.Point{core.P(1, 2)},
	})

	first := solveWith(t, b, StrategyBacktrack)
	second := solveWith(t, b, StrategyBacktrack)

	if !first.Solved || !second.Solved {
		t.Fatal("expected both runs to solve")
	}
	if first.Stats.Nodes != second.Stats.Nodes || first.Stats.Evaluations != second.Stats.Evaluations {
		t.Errorf("stats differ: %+v vs %+v", first.Stats, second.Stats)
	}
	if len(first.Placements) != len(second.Placements) {
		t.Fatalf("placements differ: %v vs %v", first.Placements, second.Placements)
	}
	for i := range first.Placements {
		if first.Placements[i] != second.Placements[i] {
			t.Errorf("placement %d differs: %v vs %v", i, first.Placements[i], second.Placements[i])
		}
	}
}

func TestStrategiesAgreeOnRandomBoards(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kinds := []core.BlockKind{core.Reflect, core.Opaque, core.Refract}

	for n := 0; n < 200; n++ {
		rows := []string{"o o o", "o o o"}
		k := 1 + rng.Intn(3)
		blocks := map[core.BlockKind]int{}
		for i := 0; i < k; i++ {
			blocks[kinds[rng.Intn(len(kinds))]]++
		}
		ray := core.NewRay(core.P(2*rng.Intn(4), 1+2*rng.Intn(2)), core.P(1-2*rng.Intn(2), 1-2*rng.Intn(2)))

		tmpl := core.MustLoad(core.BoardSpec{Rows: rows, Blocks: blocks, Rays: []core.Ray{ray}})

		// Derive targets from a random full placement so a solution exists.
		cfg := tmpl.NewConfiguration()
		open := rng.Perm(len(tmpl.OpenPositions()))
		for i, kind := range tmpl.Inventory().Kinds() {
			if err := cfg.PlaceBlock(kind, tmpl.OpenPositions()[open[i]]); err != nil {
				t.Fatalf("board %d: PlaceBlock failed: %v", n, err)
			}
		}
		var targets []core.Point
		for _, s := range core.Propagate(cfg).Segments() {
			if tmpl.InLattice(s.To) {
				targets = append(targets, s.To)
			}
		}
		if len(targets) == 0 {
			continue
		}

		b := core.MustLoad(core.BoardSpec{
			Rows:    rows,
			Blocks:  blocks,
			Rays:    []core.Ray{ray},
			Targets: targets,
		})

		ex := solveWith(t, b, StrategyExhaustive)
		if !ex.Solved {
			t.Fatalf("board %d: exhaustive search missed a known solution", n)
		}

		for _, s := range []Strategy{StrategyBacktrack, StrategyParallel} {
			res := solveWith(t, b, s)
			if !res.Solved {
				t.Errorf("board %d: exhaustive found %v but %s found none", n, ex.Placements, s)
				continue
			}
			check := b.NewConfiguration()
			if err := check.Apply(res.Placements); err != nil {
				t.Fatalf("board %d %s: invalid placements %v: %v", n, s, res.Placements, err)
			}
			if !check.IsSolution() {
				t.Errorf("board %d %s: placements %v do not cover the targets", n, s, res.Placements)
			}
			if len(res.Placements) != k {
				t.Errorf("board %d %s: expected %d placements, got %d", n, s, k, len(res.Placements))
			}
		}
	}
}

func TestStopFlagHaltsSearch(t *testing.T) {
	b := reflectBoard(t, core.P(1, 2))

	var stop atomic.Bool
	c := &counters{}
	s := &searcher{count: c, stop: &stop}
	root := s.root(b)
	evaluated := c.evaluations.Load()

	stop.Store(true)

	f, err := s.run(context.Background(), []frame{root})
	if f != nil || err != nil {
		t.Fatalf("expected nil, nil once stopped; got %v, %v", f, err)
	}
	if c.nodes.Load() != 0 {
		t.Errorf("expected no frames visited, got %d", c.nodes.Load())
	}
	if children := s.expand(root); children != nil {
		t.Errorf("expected no children once stopped, got %d", len(children))
	}
	if c.evaluations.Load() != evaluated {
		t.Errorf("expected no propagation after stop, got %d more", c.evaluations.Load()-evaluated)
	}
}

func TestNodeLimit(t *testing.T) {
	_, err := Solve(context.Background(), reflectBoard(t, core.P(1, 2)), Options{
		Strategy: StrategyBacktrack,
		MaxNodes: 1,
	})
	if !errors.Is(err, ErrSearchLimit) {
		t.Errorf("expected ErrSearchLimit, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, s := range strategies {
		_, err := Solve(ctx, reflectBoard(t, core.P(1, 2)), Options{Strategy: s, Workers: 2})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", s, err)
		}
	}
}

func TestSolveLogsResult(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	_, err := Solve(context.Background(), reflectBoard(t, core.P(1, 2)), Options{
		Strategy: StrategyBacktrack,
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !strings.Contains(buf.String(), "search finished") {
		t.Errorf("expected a search finished log line, got %q", buf.String())
	}
}

func TestParseStrategy(t *testing.T) {
	tests := map[string]Strategy{
		"":           StrategyBacktrack,
		"backtrack":  StrategyBacktrack,
		"Exhaustive": StrategyExhaustive,
		" parallel ": StrategyParallel,
	}
	for in, want := range tests {
		got, err := ParseStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseStrategy("greedy"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestCombinationsAndPermutations(t *testing.T) {
	var combos [][]int
	forEachCombination(4, 2, func(idx []int) bool {
		combos = append(combos, append([]int(nil), idx...))
		return true
	})
	if len(combos) != 6 {
		t.Errorf("expected C(4,2)=6 combinations, got %d", len(combos))
	}

	calls := 0
	forEachCombination(2, 3, func([]int) bool { calls++; return true })
	if calls != 0 {
		t.Errorf("k > n should yield no combinations, got %d", calls)
	}

	kinds := []core.BlockKind{core.Reflect, core.Reflect, core.Refract}
	perms := 1
	for nextPermutation(kinds) {
		perms++
	}
	if perms != 3 {
		t.Errorf("expected 3 distinct orderings of {A,A,C}, got %d", perms)
	}
}
