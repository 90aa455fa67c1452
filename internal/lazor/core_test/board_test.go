package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

func TestLoadBasic(t *testing.T) {
	b, err := core.Load(core.BoardSpec{
		Rows:    []string{"o x o", "A o B"},
		Blocks:  map[core.BlockKind]int{core.Reflect: 2, core.Refract: 1},
		Rays:    []core.Ray{core.NewRay(core.P(0, 1), core.P(1, -1))},
		Targets: []core.Point{core.P(6, 4)},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if b.W != 3 || b.H != 2 {
		t.Errorf("expected 3x2, got %dx%d", b.W, b.H)
	}
	if b.Cell(core.C(1, 0)) != core.CellBlocked {
		t.Errorf("expected blocked at [1,0], got %v", b.Cell(core.C(1, 0)))
	}
	if b.Cell(core.C(2, 1)) != core.CellOpaque {
		t.Errorf("expected opaque at [2,1], got %v", b.Cell(core.C(2, 1)))
	}
	if b.Inventory().Total() != 3 {
		t.Errorf("expected 3 blocks to place, got %d", b.Inventory().Total())
	}
	if len(b.Rays()) != 1 || !b.Rays()[0].Active {
		t.Errorf("expected one active ray, got %v", b.Rays())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		spec core.BoardSpec
	}{
		{"no rows", core.BoardSpec{}},
		{"ragged rows", core.BoardSpec{Rows: []string{"o o", "o"}}},
		{"unknown symbol", core.BoardSpec{Rows: []string{"o z"}}},
		{"ray outside", core.BoardSpec{
			Rows: []string{"o o"},
			Rays: []core.Ray{core.NewRay(core.P(5, 1), core.P(1, 1))},
		}},
		{"zero direction", core.BoardSpec{
			Rows: []string{"o o"},
			Rays: []core.Ray{core.NewRay(core.P(1, 0), core.P(0, 0))},
		}},
		{"long direction", core.BoardSpec{
			Rows: []string{"o o"},
			Rays: []core.Ray{core.NewRay(core.P(1, 0), core.P(2, 1))},
		}},
		{"target outside", core.BoardSpec{
			Rows:    []string{"o o"},
			Targets: []core.Point{core.P(1, -1)},
		}},
		{"negative count", core.BoardSpec{
			Rows:   []string{"o o"},
			Blocks: map[core.BlockKind]int{core.Opaque: -1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.Load(tt.spec)
			var pe *core.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
		})
	}
}

func TestOpenPositionsRowMajor(t *testing.T) {
	b := core.MustLoad(core.BoardSpec{Rows: []string{"o x o", "A o o"}})

	want := []core.Coord{core.C(0, 0), core.C(2, 0), core.C(1, 1), core.C(2, 1)}
	got := b.OpenPositions()
	if len(got) != len(want) {
		t.Fatalf("expected %d open positions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPlaceBlock(t *testing.T) {
	b := core.MustLoad(core.BoardSpec{
		Rows:   []string{"o x", "A o"},
		Blocks: map[core.BlockKind]int{core.Reflect: 1},
	})
	cfg := b.NewConfiguration()

	var occ *core.OccupiedError
	if err := cfg.PlaceBlock(core.Reflect, core.C(1, 0)); !errors.As(err, &occ) {
		t.Errorf("placing on blocked cell: expected *OccupiedError, got %v", err)
	}
	if err := cfg.PlaceBlock(core.Reflect, core.C(0, 1)); !errors.As(err, &occ) {
		t.Errorf("placing on fixed block: expected *OccupiedError, got %v", err)
	}
	if err := cfg.PlaceBlock(core.Reflect, core.C(5, 5)); !errors.As(err, &occ) || !occ.Off {
		t.Errorf("placing off grid: expected off-board *OccupiedError, got %v", err)
	}

	var exh *core.InventoryExhaustedError
	if err := cfg.PlaceBlock(core.Opaque, core.C(0, 0)); !errors.As(err, &exh) {
		t.Errorf("placing kind with no stock: expected *InventoryExhaustedError, got %v", err)
	}

	branch := cfg.Clone()
	if err := branch.PlaceBlock(core.Reflect, core.C(0, 0)); err != nil {
		t.Fatalf("PlaceBlock failed: %v", err)
	}
	if branch.CellAt(core.C(0, 0)) != core.CellReflect {
		t.Error("branch should hold the placed reflect block")
	}
	if cfg.CellAt(core.C(0, 0)) != core.CellOpen {
		t.Error("placing on a clone must not change the original")
	}
	if b.Cell(core.C(0, 0)) != core.CellOpen {
		t.Error("placing must not change the template")
	}
	if branch.Remaining().Count(core.Reflect) != 0 || cfg.Remaining().Count(core.Reflect) != 1 {
		t.Error("inventory should be consumed only on the branch")
	}

	if err := branch.PlaceBlock(core.Reflect, core.C(1, 1)); !errors.As(err, &exh) {
		t.Errorf("second reflect: expected *InventoryExhaustedError, got %v", err)
	}

	placements := branch.Placements()
	if len(placements) != 1 || placements[0] != (core.Placement{At: core.C(0, 0), Kind: core.Reflect}) {
		t.Errorf("unexpected placements %v", placements)
	}
}

func TestInventoryKinds(t *testing.T) {
	b := core.MustLoad(core.BoardSpec{
		Rows:   []string{"o o o o"},
		Blocks: map[core.BlockKind]int{core.Refract: 1, core.Reflect: 2},
	})

	kinds := b.Inventory().Kinds()
	want := []core.BlockKind{core.Reflect, core.Reflect, core.Refract}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kind %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
}

func TestBoardStats(t *testing.T) {
	b := core.MustLoad(core.BoardSpec{
		Rows:   []string{"o A", "x C"},
		Blocks: map[core.BlockKind]int{core.Opaque: 2},
	})

	stats := core.ComputeBoardStats(b)
	if stats.Open != 1 || stats.Fixed != 2 {
		t.Errorf("expected 1 open and 2 fixed, got %d and %d", stats.Open, stats.Fixed)
	}
	if stats.Feasible {
		t.Error("2 blocks on 1 open cell should not be feasible")
	}
}

func TestConfigurationRows(t *testing.T) {
	b := core.MustLoad(core.BoardSpec{
		Rows:   []string{"o x", "B o"},
		Blocks: map[core.BlockKind]int{core.Refract: 1},
	})
	cfg := b.NewConfiguration()
	if err := cfg.PlaceBlock(core.Refract, core.C(1, 1)); err != nil {
		t.Fatalf("PlaceBlock failed: %v", err)
	}

	got := cfg.Rows()
	want := []string{"o x", "B C"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %q, got %q", want, got)
	}
	// The template is untouched.
	if rows := b.Rows(); rows[1] != "B o" {
		t.Errorf("template row changed to %q", rows[1])
	}
}
