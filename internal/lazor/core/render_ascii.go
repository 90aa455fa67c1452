package core

import (
	"fmt"
	"strings"
)

// Glyph classifies one lattice point for display.
type Glyph uint8

const (
	GlyphEmpty Glyph = iota
	GlyphCorner
	GlyphOpen
	GlyphBlocked
	GlyphReflect
	GlyphOpaque
	GlyphRefract
	GlyphPlaced // block placed by the solver (kind in the cell)
	GlyphBeam
	GlyphSource
	GlyphTarget
	GlyphTargetHit
)

// Rune returns the ASCII rune used for the glyph.
func (g Glyph) Rune() rune {
	switch g {
	case GlyphCorner:
		return '+'
	case GlyphOpen:
		return '.'
	case GlyphBlocked:
		return 'x'
	case GlyphReflect:
		return 'A'
	case GlyphOpaque:
		return 'B'
	case GlyphRefract:
		return 'C'
	case GlyphBeam:
		return '*'
	case GlyphSource:
		return 'L'
	case GlyphTarget:
		return 'P'
	case GlyphTargetHit:
		return '@'
	default:
		return ' '
	}
}

// LatticeCell is one rendered lattice point.
type LatticeCell struct {
	Glyph Glyph
	Kind  BlockKind // valid for GlyphPlaced
}

// Rune returns the ASCII rune for the cell. Placed blocks use lower case.
func (lc LatticeCell) Rune() rune {
	if lc.Glyph == GlyphPlaced {
		return lc.Kind.Symbol() + ('a' - 'A')
	}
	return lc.Glyph.Rune()
}

// Lattice classifies every lattice point of cfg, overlaying path and
// targets. The result is indexed [y][x] over 0..2H × 0..2W.
// path may be nil.
func Lattice(cfg *Configuration, path *Path) [][]LatticeCell {
	b := cfg.board
	out := make([][]LatticeCell, 2*b.H+1)
	for y := range out {
		out[y] = make([]LatticeCell, 2*b.W+1)
		for x := range out[y] {
			if x%2 == 0 && y%2 == 0 {
				out[y][x] = LatticeCell{Glyph: GlyphCorner}
			}
		}
	}

	placed := make(map[Coord]BlockKind, len(cfg.placements))
	for _, p := range cfg.placements {
		placed[p.At] = p.Kind
	}

	for row := 0; row < b.H; row++ {
		for col := 0; col < b.W; col++ {
			at := C(col, row)
			ctr := at.Center()
			lc := LatticeCell{}
			if kind, ok := placed[at]; ok {
				lc = LatticeCell{Glyph: GlyphPlaced, Kind: kind}
			} else {
				switch cfg.CellAt(at) {
				case CellOpen:
					lc.Glyph = GlyphOpen
				case CellBlocked:
					lc.Glyph = GlyphBlocked
				case CellReflect:
					lc.Glyph = GlyphReflect
				case CellOpaque:
					lc.Glyph = GlyphOpaque
				case CellRefract:
					lc.Glyph = GlyphRefract
				}
			}
			out[ctr.Y][ctr.X] = lc
		}
	}

	hit := map[Point]struct{}{}
	if path != nil {
		hit = path.Endpoints()
		for pt := range hit {
			if b.InLattice(pt) && out[pt.Y][pt.X].Glyph != GlyphPlaced {
				out[pt.Y][pt.X] = LatticeCell{Glyph: GlyphBeam}
			}
		}
	}

	for _, r := range b.rays {
		out[r.Pos.Y][r.Pos.X] = LatticeCell{Glyph: GlyphSource}
		hit[r.Pos] = struct{}{}
	}

	for _, t := range b.targets {
		g := GlyphTarget
		if _, ok := hit[t]; ok && path != nil {
			g = GlyphTargetHit
		}
		out[t.Y][t.X] = LatticeCell{Glyph: g}
	}

	return out
}

// RenderASCII creates an ASCII picture of the configuration and path.
// This is used for debugging, golden tests, and plain terminal output.
//
// Format:
//   - '+' lattice corners, '.' open cells, 'x' blocked cells
//   - 'A'/'B'/'C' fixed blocks, 'a'/'b'/'c' placed blocks
//   - '*' path vertices, 'L' ray sources
//   - 'P' targets not reached, '@' targets reached
func RenderASCII(cfg *Configuration, path *Path) string {
	var sb strings.Builder

	b := cfg.board
	status := "-"
	if path != nil {
		missing := Missing(path, b.rays, b.targets)
		status = fmt.Sprintf("%d/%d", len(b.targets)-len(missing), len(b.targets))
	}
	sb.WriteString(fmt.Sprintf("Board: %dx%d | Placed: %d | Left: %d | Targets: %s\n",
		b.W, b.H, len(cfg.placements), cfg.remaining.Total(), status))

	for _, row := range Lattice(cfg, path) {
		line := make([]rune, len(row))
		for x, lc := range row {
			line[x] = lc.Rune()
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteString("\n")
	}

	return sb.String()
}
