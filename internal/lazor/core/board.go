package core

import (
	"fmt"
	"strings"
	"unicode"
)

// BoardSpec is a validated-shape-free description of a board as produced by
// a file parser. Load checks it and builds the immutable template.
type BoardSpec struct {
	Source  string // Used in error messages
	Rows    []string
	Blocks  map[BlockKind]int
	Rays    []Ray
	Targets []Point
}

// Board is the immutable template for one puzzle.
// Cells are stored in row-major order: index = row*W + col.
type Board struct {
	W       int
	H       int
	cells   []Cell
	inv     Inventory
	rays    []Ray
	targets []Point
	open    []Coord
}

// Load validates a BoardSpec and builds a Board.
func Load(spec BoardSpec) (*Board, error) {
	fail := func(format string, args ...any) error {
		return &ParseError{Source: spec.Source, Reason: fmt.Sprintf(format, args...)}
	}

	if len(spec.Rows) == 0 {
		return nil, fail("grid has no rows")
	}

	var cells []Cell
	w := -1
	for r, row := range spec.Rows {
		rowCells := make([]Cell, 0, len(row))
		for _, ch := range row {
			if unicode.IsSpace(ch) {
				continue
			}
			cell, ok := ParseCell(ch)
			if !ok {
				return nil, fail("row %d: unrecognized cell symbol %q", r+1, ch)
			}
			rowCells = append(rowCells, cell)
		}
		if w < 0 {
			w = len(rowCells)
		} else if len(rowCells) != w {
			return nil, fail("row %d has width %d, expected %d", r+1, len(rowCells), w)
		}
		cells = append(cells, rowCells...)
	}
	if w == 0 {
		return nil, fail("grid has zero width")
	}

	b := &Board{
		W:     w,
		H:     len(spec.Rows),
		cells: cells,
	}

	for kind, n := range spec.Blocks {
		if int(kind) >= len(b.inv) {
			return nil, fail("unknown block kind %d", kind)
		}
		if n < 0 {
			return nil, fail("negative count %d for %s blocks", n, kind)
		}
		b.inv[kind] = n
	}

	for i, r := range spec.Rays {
		if !b.InLattice(r.Pos) {
			return nil, fail("ray %d start %s outside the board", i+1, r.Pos)
		}
		if r.Dir.IsZero() || abs(r.Dir.X) > 1 || abs(r.Dir.Y) > 1 {
			return nil, fail("ray %d has invalid direction %s", i+1, r.Dir)
		}
		b.rays = append(b.rays, NewRay(r.Pos, r.Dir))
	}

	for i, t := range spec.Targets {
		if !b.InLattice(t) {
			return nil, fail("target %d at %s outside the board", i+1, t)
		}
		b.targets = append(b.targets, t)
	}

	for row := 0; row < b.H; row++ {
		for col := 0; col < b.W; col++ {
			if b.cells[row*b.W+col] == CellOpen {
				b.open = append(b.open, C(col, row))
			}
		}
	}

	return b, nil
}

// MustLoad is like Load but panics on error. Intended for tests and
// hard-coded boards.
func MustLoad(spec BoardSpec) *Board {
	b, err := Load(spec)
	if err != nil {
		panic(err)
	}
	return b
}

// InGrid reports whether a cell index lies on the board.
func (b *Board) InGrid(c Coord) bool {
	return c.Col >= 0 && c.Col < b.W && c.Row >= 0 && c.Row < b.H
}

// InLattice reports whether a lattice point lies within 0..2W × 0..2H.
func (b *Board) InLattice(p Point) bool {
	return p.X >= 0 && p.X <= 2*b.W && p.Y >= 0 && p.Y <= 2*b.H
}

// Cell returns the template cell at c. Off-grid cells read as Blocked.
func (b *Board) Cell(c Coord) Cell {
	if !b.InGrid(c) {
		return CellBlocked
	}
	return b.cells[c.Row*b.W+c.Col]
}

// OpenPositions lists every cell eligible for a placed block in row-major
// order. The slice is shared; callers must not modify it.
func (b *Board) OpenPositions() []Coord {
	return b.open
}

// Inventory returns the blocks to place.
func (b *Board) Inventory() Inventory {
	return b.inv
}

// Rays returns a copy of the initial rays.
func (b *Board) Rays() []Ray {
	out := make([]Ray, len(b.rays))
	copy(out, b.rays)
	return out
}

// Targets returns the points that must be hit.
func (b *Board) Targets() []Point {
	return b.targets
}

// NewConfiguration returns a fresh snapshot with nothing placed.
func (b *Board) NewConfiguration() *Configuration {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Configuration{
		board:     b,
		cells:     cells,
		remaining: b.inv,
	}
}

// Rows renders the template grid back into board-file rows.
func (b *Board) Rows() []string {
	return symbolRows(b.W, b.H, b.cells)
}

// symbolRows formats a row-major cell slice as space-separated symbol rows.
func symbolRows(w, h int, cells []Cell) []string {
	rows := make([]string, h)
	for row := 0; row < h; row++ {
		var sb strings.Builder
		for col := 0; col < w; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(cells[row*w+col].Symbol())
		}
		rows[row] = sb.String()
	}
	return rows
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
