package levels_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/lazor/levels"
	"github.com/vovakirdan/lazor/internal/lazor/solver"
)

// getTestdataPath returns path to testdata/<name>.
func getTestdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("boards"))

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	want := []string{"cramped", "diagonal", "intro", "mad_1"}
	if len(lvls) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(lvls))
	}
	for i, id := range want {
		if lvls[i].ID != id {
			t.Errorf("level %d: expected %q, got %q", i, id, lvls[i].ID)
		}
	}
}

func TestLoaderBFF(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("boards"))

	lvl, err := loader.LoadByID("mad_1")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "mad_1" {
		t.Errorf("expected name from file, got %q", lvl.Name)
	}

	b, err := lvl.Board()
	if err != nil {
		t.Fatalf("Board failed: %v", err)
	}
	if b.W != 4 || b.H != 4 {
		t.Errorf("expected 4x4, got %dx%d", b.W, b.H)
	}
	inv := b.Inventory()
	if inv.Count(core.Reflect) != 2 || inv.Count(core.Refract) != 1 || inv.Count(core.Opaque) != 0 {
		t.Errorf("unexpected inventory %v", inv)
	}
	if len(b.Rays()) != 1 || b.Rays()[0].Pos != core.P(2, 7) || b.Rays()[0].Dir != core.P(1, -1) {
		t.Errorf("unexpected rays %v", b.Rays())
	}
	if len(b.Targets()) != 4 {
		t.Errorf("expected 4 targets, got %d", len(b.Targets()))
	}
}

func TestLoaderYAMLMetadata(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("boards"))

	lvl, err := loader.LoadByID("diagonal")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "Straight Through" {
		t.Errorf("expected name 'Straight Through', got %q", lvl.Name)
	}
	if lvl.Metadata["difficulty"] != "trivial" {
		t.Errorf("expected metadata to survive, got %v", lvl.Metadata)
	}
}

func TestLoadedBoardsSolve(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("boards"))

	tests := []struct {
		id     string
		solved bool
	}{
		{"intro", true},
		{"diagonal", true},
		{"cramped", false},
	}

	for _, tt := range tests {
		lvl, err := loader.LoadByID(tt.id)
		if err != nil {
			t.Fatalf("%s: LoadByID failed: %v", tt.id, err)
		}
		b, err := lvl.Board()
		if err != nil {
			t.Fatalf("%s: Board failed: %v", tt.id, err)
		}
		res, err := solver.Solve(context.Background(), b, solver.DefaultOptions())
		if err != nil {
			t.Fatalf("%s: Solve failed: %v", tt.id, err)
		}
		if res.Solved != tt.solved {
			t.Errorf("%s: expected solved=%v, got %v", tt.id, tt.solved, res.Solved)
		}
	}
}

func TestLoaderScanReportsBadFiles(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("broken"))

	lvls, bad, err := loader.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(lvls) != 0 {
		t.Errorf("expected no valid levels, got %d", len(lvls))
	}
	if len(bad) != 3 {
		t.Fatalf("expected 3 bad files, got %d: %v", len(bad), bad)
	}

	var perr *core.ParseError
	for _, fe := range bad {
		if filepath.Base(fe.Path) == "directive.bff" {
			if !errors.As(fe, &perr) {
				t.Fatalf("expected ParseError for directive.bff, got %v", fe.Err)
			}
			if perr.Line != 4 {
				t.Errorf("expected line 4, got %d", perr.Line)
			}
		}
	}
}

func TestLoaderNotFound(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("boards"))

	if _, err := loader.LoadByID("nonexistent"); err == nil {
		t.Error("expected error for nonexistent level")
	}
}

func TestLoaderResolvePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.bff")
	data := "GRID START\no\nGRID STOP\nL 0 1 1 1\nP 1 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loader := levels.NewLoader(getTestdataPath("boards"))
	lvl, err := loader.Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if lvl.ID != "single" || lvl.FilePath != path {
		t.Errorf("unexpected level %q at %q", lvl.ID, lvl.FilePath)
	}

	lvl, err = loader.Resolve("intro")
	if err != nil {
		t.Fatalf("Resolve by ID failed: %v", err)
	}
	if lvl.ID != "intro" {
		t.Errorf("expected intro, got %q", lvl.ID)
	}
}

func TestListIDs(t *testing.T) {
	ids, err := levels.NewLoader(getTestdataPath("boards")).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 4 || ids[0] != "cramped" {
		t.Errorf("unexpected ids %v", ids)
	}
}
