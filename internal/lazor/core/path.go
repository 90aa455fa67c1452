package core

import "fmt"

// Segment is one straight step of a ray between two lattice points.
type Segment struct {
	From Point
	To   Point
}

// String returns a string representation of the segment.
func (s Segment) String() string {
	return fmt.Sprintf("%s->%s", s.From, s.To)
}

// Path is the set of segments traced in one propagation run.
// It keeps insertion order for display; membership is hash-keyed.
type Path struct {
	segs  []Segment
	index map[Segment]struct{}
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{index: make(map[Segment]struct{})}
}

// Add records a segment. Returns false if it was already present.
func (p *Path) Add(s Segment) bool {
	if _, ok := p.index[s]; ok {
		return false
	}
	p.index[s] = struct{}{}
	p.segs = append(p.segs, s)
	return true
}

// Contains reports whether the segment has been recorded.
func (p *Path) Contains(s Segment) bool {
	_, ok := p.index[s]
	return ok
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.segs)
}

// Segments returns the segments in insertion order.
// The slice is shared; callers must not modify it.
func (p *Path) Segments() []Segment {
	return p.segs
}

// Endpoints returns the set of all segment endpoints.
func (p *Path) Endpoints() map[Point]struct{} {
	pts := make(map[Point]struct{}, 2*len(p.segs))
	for _, s := range p.segs {
		pts[s.From] = struct{}{}
		pts[s.To] = struct{}{}
	}
	return pts
}

// Equal reports whether two paths hold the same set of segments.
func (p *Path) Equal(other *Path) bool {
	if len(p.segs) != len(other.segs) {
		return false
	}
	for s := range p.index {
		if _, ok := other.index[s]; !ok {
			return false
		}
	}
	return true
}
