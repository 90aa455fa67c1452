package core

// Covers reports whether every target is an endpoint of some segment in the
// path or the start of one of the initial rays.
func Covers(path *Path, rays []Ray, targets []Point) bool {
	return len(Missing(path, rays, targets)) == 0
}

// Missing returns the targets not reached, in target order.
func Missing(path *Path, rays []Ray, targets []Point) []Point {
	if len(targets) == 0 {
		return nil
	}
	hit := path.Endpoints()
	for _, r := range rays {
		hit[r.Pos] = struct{}{}
	}

	var missing []Point
	for _, t := range targets {
		if _, ok := hit[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

// BoardStats summarises a board for listings.
type BoardStats struct {
	Width    int
	Height   int
	Open     int
	Fixed    int
	Blocks   Inventory
	Rays     int
	Targets  int
	Feasible bool // false when there are more blocks than open cells
}

// ComputeBoardStats analyzes a board and returns statistics.
func ComputeBoardStats(b *Board) BoardStats {
	fixed := 0
	for _, c := range b.cells {
		if c.IsBlock() {
			fixed++
		}
	}
	return BoardStats{
		Width:    b.W,
		Height:   b.H,
		Open:     len(b.open),
		Fixed:    fixed,
		Blocks:   b.inv,
		Rays:     len(b.rays),
		Targets:  len(b.targets),
		Feasible: b.inv.Total() <= len(b.open),
	}
}
