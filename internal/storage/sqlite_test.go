package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/lazor/solver"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{BoardID: "mad_1", Strategy: "backtrack", Status: StatusSolved, Placements: 3, Nodes: 40, Evaluations: 120, Pruned: 7, Workers: 1, Duration: 1500 * time.Microsecond},
		{BoardID: "mad_1", Strategy: "exhaustive", Status: StatusSolved, Placements: 3, Nodes: 900, Evaluations: 900, Workers: 1, Duration: 9 * time.Millisecond},
		{BoardID: "tiny", Strategy: "backtrack", Status: StatusNoSolution, Nodes: 4, Evaluations: 5, Workers: 1},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RunsForBoard("mad_1", 10)
	if err != nil {
		t.Fatalf("RunsForBoard() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(got))
	}

	// Newest first
	if got[0].Strategy != "exhaustive" || got[1].Strategy != "backtrack" {
		t.Errorf("Runs not newest first: %v", got)
	}
	if got[1].Duration != 1500*time.Microsecond {
		t.Errorf("Expected duration to round-trip, got %v", got[1].Duration)
	}
	if got[1].Pruned != 7 || got[1].Placements != 3 {
		t.Errorf("Counters did not round-trip: %+v", got[1])
	}
	if got[1].CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{BoardID: "b", Strategy: "backtrack", Status: StatusSolved, Nodes: int64(i)})
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Nodes != 4 || runs[2].Nodes != 2 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreErrorRun(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{BoardID: "big", Strategy: "backtrack", Status: StatusError, Error: "solver: node limit exceeded"})
	store.SaveRun(Run{BoardID: "big", Strategy: "backtrack", Status: StatusNoSolution})

	runs, err := store.RunsForBoard("big", 0)
	if err != nil {
		t.Fatalf("RunsForBoard() failed: %v", err)
	}
	if runs[0].Error != "" {
		t.Errorf("Expected empty error for no-solution run, got %q", runs[0].Error)
	}
	if runs[1].Error != "solver: node limit exceeded" {
		t.Errorf("Expected error text, got %q", runs[1].Error)
	}
}

func TestStoreBoardStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetBoardStats("none")
	if err != nil {
		t.Fatalf("GetBoardStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.FewestNodes != 0 || !empty.LastRun.IsZero() {
		t.Errorf("Expected zero stats for unknown board, got %+v", empty)
	}

	store.SaveRun(Run{BoardID: "b", Strategy: "backtrack", Status: StatusSolved, Nodes: 30, Duration: 2 * time.Millisecond})
	store.SaveRun(Run{BoardID: "b", Strategy: "exhaustive", Status: StatusSolved, Nodes: 10, Duration: 4 * time.Millisecond})
	store.SaveRun(Run{BoardID: "b", Strategy: "backtrack", Status: StatusError, Nodes: 1})
	store.SaveRun(Run{BoardID: "c", Strategy: "backtrack", Status: StatusNoSolution, Nodes: 2})

	stats, err := store.GetBoardStats("b")
	if err != nil {
		t.Fatalf("GetBoardStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Solved != 2 {
		t.Errorf("Expected 3 runs and 2 solved, got %+v", stats)
	}
	if stats.FewestNodes != 10 {
		t.Errorf("Expected fewest nodes 10, got %d", stats.FewestNodes)
	}
	if stats.AvgDuration != 2*time.Millisecond {
		t.Errorf("Expected average 2ms, got %v", stats.AvgDuration)
	}

	all, err := store.GetAllBoardStats()
	if err != nil {
		t.Fatalf("GetAllBoardStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 boards, got %d", len(all))
	}
	if all["c"].Solved != 0 || all["c"].FewestNodes != 0 {
		t.Errorf("Unexpected stats for unsolved board: %+v", all["c"])
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{BoardID: "a", Strategy: "backtrack", Status: StatusSolved})
	store.SaveRun(Run{BoardID: "b", Strategy: "backtrack", Status: StatusSolved})

	if err := store.ClearRuns("a"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.RunsForBoard("a", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if runs, _ := store.RunsForBoard("b", 10); len(runs) != 1 {
		t.Errorf("Runs of other boards should not be affected")
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(\"\") failed: %v", err)
	}
	if runs, _ := store.RecentRuns(10); len(runs) != 0 {
		t.Errorf("Expected no runs after clearing all, got %d", len(runs))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestNewRunFromResult(t *testing.T) {
	res := solver.Result{
		Solved:     true,
		Placements: make([]core.Placement, 2),
		Stats:      solver.Stats{Nodes: 9, Evaluations: 12, Workers: 1},
	}

	r := NewRun("b", solver.StrategyExhaustive, res, nil)
	if r.Status != StatusSolved || r.Placements != 2 || r.Strategy != "exhaustive" {
		t.Errorf("unexpected solved run %+v", r)
	}

	r = NewRun("b", "", solver.Result{}, nil)
	if r.Status != StatusNoSolution || r.Strategy != "backtrack" {
		t.Errorf("unexpected unsolved run %+v", r)
	}

	r = NewRun("b", solver.StrategyBacktrack, solver.Result{}, solver.ErrSearchLimit)
	if r.Status != StatusError || r.Error != solver.ErrSearchLimit.Error() {
		t.Errorf("unexpected error run %+v", r)
	}
}
