package core

import (
	"errors"
	"fmt"
)

// ErrNoSolution reports that the search space was exhausted.
// The solver signals this through Result.Solved; the sentinel exists for
// outer layers that want to surface it as an error.
var ErrNoSolution = errors.New("no solution found")

// ParseError reports a malformed board description.
type ParseError struct {
	Source string // File or section name, may be empty
	Line   int    // 1-based line, 0 when not tied to a line
	Reason string
}

func (e *ParseError) Error() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("parse %s:%d: %s", e.Source, e.Line, e.Reason)
	case e.Source != "":
		return fmt.Sprintf("parse %s: %s", e.Source, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("parse line %d: %s", e.Line, e.Reason)
	default:
		return "parse: " + e.Reason
	}
}

// OccupiedError reports a placement on a cell that is not Open.
type OccupiedError struct {
	At   Coord
	Cell Cell
	Off  bool // true when At lies outside the grid
}

func (e *OccupiedError) Error() string {
	if e.Off {
		return fmt.Sprintf("cell %s is outside the board", e.At)
	}
	return fmt.Sprintf("cell %s is not open (holds %q)", e.At, e.Cell.Symbol())
}

// InventoryExhaustedError reports a placement with no remaining count.
type InventoryExhaustedError struct {
	Kind BlockKind
}

func (e *InventoryExhaustedError) Error() string {
	return fmt.Sprintf("no %s blocks left to place", e.Kind)
}
