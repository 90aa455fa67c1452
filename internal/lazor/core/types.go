// Package core provides the propagation engine and board model for the
// lazor block-placement puzzle.
// This package is UI-agnostic and deterministic.
package core

import "fmt"

// Point is a position on the doubled lattice.
// Cell (col,row) has its centre at (2col+1, 2row+1); cell boundaries lie on
// even lines, so the parity of a point tells which boundary a ray straddles.
type Point struct {
	X int
	Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Coord is a cell index on the board grid.
type Coord struct {
	Col int
	Row int
}

// C is a convenience constructor for Coord.
func C(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("[%d,%d]", c.Col, c.Row)
}

// Center returns the lattice point at the centre of the cell.
func (c Coord) Center() Point {
	return Point{X: 2*c.Col + 1, Y: 2*c.Row + 1}
}

// Cell is the content of one board cell.
type Cell uint8

const (
	CellOpen Cell = iota
	CellBlocked
	CellReflect
	CellOpaque
	CellRefract
)

// String returns the board-file symbol for the cell.
func (c Cell) String() string {
	return string(c.Symbol())
}

// Symbol returns the board-file rune for the cell.
func (c Cell) Symbol() rune {
	switch c {
	case CellOpen:
		return 'o'
	case CellBlocked:
		return 'x'
	case CellReflect:
		return 'A'
	case CellOpaque:
		return 'B'
	case CellRefract:
		return 'C'
	default:
		return '?'
	}
}

// IsBlock reports whether the cell holds an optical block.
func (c Cell) IsBlock() bool {
	return c == CellReflect || c == CellOpaque || c == CellRefract
}

// Kind returns the block kind held by the cell.
// The second result is false for Open and Blocked cells.
func (c Cell) Kind() (BlockKind, bool) {
	switch c {
	case CellReflect:
		return Reflect, true
	case CellOpaque:
		return Opaque, true
	case CellRefract:
		return Refract, true
	default:
		return 0, false
	}
}

// ParseCell converts a board-file symbol into a Cell.
func ParseCell(r rune) (Cell, bool) {
	switch r {
	case 'o':
		return CellOpen, true
	case 'x':
		return CellBlocked, true
	case 'A':
		return CellReflect, true
	case 'B':
		return CellOpaque, true
	case 'C':
		return CellRefract, true
	default:
		return 0, false
	}
}

// BlockKind is a placeable block type.
type BlockKind uint8

// Block kinds in their fixed enumeration order. Search order depends on it.
const (
	Reflect BlockKind = iota
	Opaque
	Refract
)

// AllKinds lists every block kind in enumeration order.
var AllKinds = [...]BlockKind{Reflect, Opaque, Refract}

// String returns the name of the block kind.
func (k BlockKind) String() string {
	switch k {
	case Reflect:
		return "Reflect"
	case Opaque:
		return "Opaque"
	case Refract:
		return "Refract"
	default:
		return "Unknown"
	}
}

// Symbol returns the board-file letter for the kind.
func (k BlockKind) Symbol() rune {
	return k.Cell().Symbol()
}

// Cell returns the fixed cell a placed block of this kind becomes.
func (k BlockKind) Cell() Cell {
	switch k {
	case Reflect:
		return CellReflect
	case Opaque:
		return CellOpaque
	default:
		return CellRefract
	}
}

// ParseBlockKind converts a board-file letter or kind name into a BlockKind.
func ParseBlockKind(s string) (BlockKind, bool) {
	switch s {
	case "A", "a", "reflect", "Reflect":
		return Reflect, true
	case "B", "b", "opaque", "Opaque":
		return Opaque, true
	case "C", "c", "refract", "Refract":
		return Refract, true
	default:
		return 0, false
	}
}

// Inventory holds the remaining count of each block kind.
type Inventory [len(AllKinds)]int

// Count returns the remaining count for a kind.
func (inv Inventory) Count(k BlockKind) int {
	return inv[k]
}

// Total returns the number of blocks left to place.
func (inv Inventory) Total() int {
	total := 0
	for _, n := range inv {
		total += n
	}
	return total
}

// Kinds expands the inventory into a sorted multiset of kinds.
func (inv Inventory) Kinds() []BlockKind {
	kinds := make([]BlockKind, 0, inv.Total())
	for _, k := range AllKinds {
		for i := 0; i < inv[k]; i++ {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Placement assigns a block kind to a cell.
type Placement struct {
	At   Coord
	Kind BlockKind
}

// String returns a string representation of the placement.
func (p Placement) String() string {
	return fmt.Sprintf("%s@%s", p.Kind, p.At)
}
