package core

// Configuration is one candidate board state: the template plus a private
// cell overlay, the inventory still to place and the placements made so far.
// A Configuration is owned by a single search branch; use Clone to branch.
type Configuration struct {
	board      *Board
	cells      []Cell
	remaining  Inventory
	placements []Placement
}

// Board returns the template this configuration was built from.
func (c *Configuration) Board() *Board {
	return c.board
}

// CellAt returns the current cell at coord, including placed blocks.
// Off-grid cells read as Blocked.
func (c *Configuration) CellAt(at Coord) Cell {
	if !c.board.InGrid(at) {
		return CellBlocked
	}
	return c.cells[at.Row*c.board.W+at.Col]
}

// Rows returns the configuration in board-file symbols, placed blocks
// included.
func (c *Configuration) Rows() []string {
	return symbolRows(c.board.W, c.board.H, c.cells)
}

// PlaceBlock converts an Open cell into a fixed block of the given kind.
func (c *Configuration) PlaceBlock(kind BlockKind, at Coord) error {
	if !c.board.InGrid(at) {
		return &OccupiedError{At: at, Cell: CellBlocked, Off: true}
	}
	idx := at.Row*c.board.W + at.Col
	if c.cells[idx] != CellOpen {
		return &OccupiedError{At: at, Cell: c.cells[idx]}
	}
	if c.remaining[kind] <= 0 {
		return &InventoryExhaustedError{Kind: kind}
	}
	c.cells[idx] = kind.Cell()
	c.remaining[kind]--
	c.placements = append(c.placements, Placement{At: at, Kind: kind})
	return nil
}

// Apply places every block in order, stopping at the first failure.
func (c *Configuration) Apply(placements []Placement) error {
	for _, p := range placements {
		if err := c.PlaceBlock(p.Kind, p.At); err != nil {
			return err
		}
	}
	return nil
}

// Remaining returns the inventory still to place.
func (c *Configuration) Remaining() Inventory {
	return c.remaining
}

// Placements returns a copy of the placements made so far.
func (c *Configuration) Placements() []Placement {
	out := make([]Placement, len(c.placements))
	copy(out, c.placements)
	return out
}

// Clone returns an independent copy sharing only the immutable template.
func (c *Configuration) Clone() *Configuration {
	cells := make([]Cell, len(c.cells))
	copy(cells, c.cells)
	placements := make([]Placement, len(c.placements), len(c.placements)+c.remaining.Total())
	copy(placements, c.placements)
	return &Configuration{
		board:      c.board,
		cells:      cells,
		remaining:  c.remaining,
		placements: placements,
	}
}

// IsSolution propagates the configuration and reports whether every target
// is covered.
func (c *Configuration) IsSolution() bool {
	return Covers(Propagate(c), c.board.rays, c.board.targets)
}
