package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/lazor/solver"
)

func solvedReport(t *testing.T) Report {
	t.Helper()
	b := core.MustLoad(core.BoardSpec{
		Rows:    []string{"o o", "o o"},
		Blocks:  map[core.BlockKind]int{core.Reflect: 1},
		Rays:    []core.Ray{core.NewRay(core.P(1, 0), core.P(1, 1))},
		Targets: []core.Point{core.P(1, 2)},
	})
	res, err := solver.Solve(context.Background(), b, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	return New("intro", b, solver.StrategyBacktrack, res)
}

func TestNewReport(t *testing.T) {
	r := solvedReport(t)

	if !r.Solved || r.Size != [2]int{2, 2} {
		t.Errorf("unexpected header %+v", r)
	}
	if len(r.Placements) != 1 || r.Placements[0] != (Placement{Col: 1, Row: 0, Kind: "A"}) {
		t.Errorf("unexpected placements %v", r.Placements)
	}
	if len(r.Grid) != 2 || r.Grid[0] != "o A" {
		t.Errorf("unexpected grid %q", r.Grid)
	}
	if len(r.Segments) == 0 || r.Segments[0] != [4]int{1, 0, 2, 1} {
		t.Errorf("unexpected segments %v", r.Segments)
	}
}

func TestSaveLoadPlainAndCompressed(t *testing.T) {
	r := solvedReport(t)
	dir := t.TempDir()

	for _, name := range []string{"out.json", "nested/out.json.zst"} {
		path := filepath.Join(dir, name)
		if err := Save(path, r); err != nil {
			t.Fatalf("%s: Save failed: %v", name, err)
		}

		got, err := Load(path)
		if err != nil {
			t.Fatalf("%s: Load failed: %v", name, err)
		}
		if got.BoardID != r.BoardID || len(got.Segments) != len(r.Segments) || !got.Solved {
			t.Errorf("%s: report did not survive: %+v", name, got)
		}
	}

	// The compressed file must not be plain JSON.
	raw, err := os.ReadFile(filepath.Join(dir, "nested/out.json.zst"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if bytes.HasPrefix(raw, []byte("{")) {
		t.Error("expected zstd frame, got plain JSON")
	}
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	if _, err := Read(bytes.NewBufferString(`{"version": 99}`)); err == nil {
		t.Error("expected error for unknown version")
	}
}

func TestUnsolvedReportHasEmptyPlacements(t *testing.T) {
	b := core.MustLoad(core.BoardSpec{
		Rows:   []string{"o"},
		Blocks: map[core.BlockKind]int{core.Opaque: 2},
		Rays:   []core.Ray{core.NewRay(core.P(0, 1), core.P(1, 1))},
	})
	res, err := solver.Solve(context.Background(), b, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, New("x", b, solver.StrategyBacktrack, res)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"placements": []`)) {
		t.Errorf("expected empty placements array, got %s", buf.String())
	}
}
