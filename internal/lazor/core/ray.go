package core

import "fmt"

// Ray is a single light ray on the lattice.
type Ray struct {
	Pos    Point
	Dir    Point
	Active bool
}

// NewRay creates an active ray.
func NewRay(pos, dir Point) Ray {
	return Ray{Pos: pos, Dir: dir, Active: true}
}

// String returns a string representation of the ray.
func (r Ray) String() string {
	state := "active"
	if !r.Active {
		state = "done"
	}
	return fmt.Sprintf("ray %s dir %s %s", r.Pos, r.Dir, state)
}

// Axis is the orientation of the cell boundary a ray is crossing.
type Axis uint8

const (
	AxisNone       Axis = iota
	AxisVertical        // boundary on an even X line
	AxisHorizontal      // boundary on an even Y line
)

// crossing describes the cell a ray is about to enter.
type crossing struct {
	cell Coord
	axis Axis
}

// nextCrossing returns the boundary the ray straddles and the cell on the
// far side of it. ok is false when the ray is not on exactly one boundary
// line, or is not moving across the one it is on; such a step is a plain
// advance with no interaction.
func (r Ray) nextCrossing() (x crossing, ok bool) {
	evenX := r.Pos.X%2 == 0
	evenY := r.Pos.Y%2 == 0

	switch {
	case evenX && !evenY && r.Dir.X != 0:
		x.axis = AxisVertical
		x.cell = Coord{
			Col: floorDiv(r.Pos.X+r.Dir.X, 2),
			Row: floorDiv(r.Pos.Y, 2),
		}
		return x, true
	case evenY && !evenX && r.Dir.Y != 0:
		x.axis = AxisHorizontal
		x.cell = Coord{
			Col: floorDiv(r.Pos.X, 2),
			Row: floorDiv(r.Pos.Y+r.Dir.Y, 2),
		}
		return x, true
	default:
		return crossing{}, false
	}
}

// reflected returns the direction after bouncing off a boundary of the
// given orientation. Only the component normal to the boundary flips.
func reflected(dir Point, axis Axis) Point {
	switch axis {
	case AxisVertical:
		return Point{X: -dir.X, Y: dir.Y}
	case AxisHorizontal:
		return Point{X: dir.X, Y: -dir.Y}
	default:
		return dir
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
