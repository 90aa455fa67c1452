package core

// spawnKey identifies a refraction spawn within one propagation run.
type spawnKey struct {
	pos Point
	dir Point
}

// Engine drives every ray of a configuration until all are inactive.
//
// Rays are stepped in sweeps. Within a sweep rays are visited in creation
// order; rays spawned by refraction are appended and first move in the next
// sweep. Termination follows from the segment cycle check and the
// run-scoped spawn set: both are finite over a finite lattice.
type Engine struct {
	cfg     *Configuration
	rays    []Ray
	pending []Ray
	path    *Path
	spawned map[spawnKey]struct{}
	sweeps  int
	steps   int
}

// NewEngine prepares a propagation run over cfg's initial rays.
func NewEngine(cfg *Configuration) *Engine {
	return &Engine{
		cfg:     cfg,
		rays:    cfg.board.Rays(),
		path:    NewPath(),
		spawned: make(map[spawnKey]struct{}),
	}
}

// Propagate runs a full propagation of cfg and returns the traced path.
func Propagate(cfg *Configuration) *Path {
	return NewEngine(cfg).Run()
}

// Run sweeps until every ray is inactive and returns the path.
func (e *Engine) Run() *Path {
	for e.Sweep() {
	}
	return e.path
}

// Sweep advances every active ray by one step.
// Returns true while any ray is still active afterwards.
func (e *Engine) Sweep() bool {
	if e.Done() {
		return false
	}

	n := len(e.rays)
	for i := 0; i < n; i++ {
		if e.rays[i].Active {
			e.step(&e.rays[i])
			e.steps++
		}
	}
	e.rays = append(e.rays, e.pending...)
	e.pending = e.pending[:0]
	e.sweeps++

	return !e.Done()
}

// step performs one transition for r.
func (e *Engine) step(r *Ray) {
	// Interactions use the parity of the current position, before moving.
	if x, ok := r.nextCrossing(); ok {
		switch e.cfg.CellAt(x.cell) {
		case CellReflect:
			r.Dir = reflected(r.Dir, x.axis)
		case CellOpaque:
			r.Dir = Point{}
			r.Active = false
			return
		case CellRefract:
			e.spawn(r.Pos, reflected(r.Dir, x.axis))
		}
	}

	next := r.Pos.Add(r.Dir)
	seg := Segment{From: r.Pos, To: next}

	if e.exits(next) {
		e.path.Add(seg)
		r.Active = false
		return
	}

	if !e.path.Add(seg) {
		// Re-entered a traced segment; everything past here is known.
		r.Active = false
		return
	}
	r.Pos = next
}

// spawn queues a refracted ray unless the same one was already created.
func (e *Engine) spawn(pos, dir Point) {
	key := spawnKey{pos: pos, dir: dir}
	if _, ok := e.spawned[key]; ok {
		return
	}
	e.spawned[key] = struct{}{}
	e.pending = append(e.pending, NewRay(pos, dir))
}

// exits reports whether p lies on or beyond the outer lattice border.
func (e *Engine) exits(p Point) bool {
	b := e.cfg.board
	return p.X <= 0 || p.X >= 2*b.W || p.Y <= 0 || p.Y >= 2*b.H
}

// Done reports whether every ray has terminated.
func (e *Engine) Done() bool {
	if len(e.pending) > 0 {
		return false
	}
	for _, r := range e.rays {
		if r.Active {
			return false
		}
	}
	return true
}

// Rays returns a copy of all rays created so far, in creation order.
func (e *Engine) Rays() []Ray {
	out := make([]Ray, len(e.rays))
	copy(out, e.rays)
	return out
}

// Path returns the path traced so far.
func (e *Engine) Path() *Path {
	return e.path
}

// Configuration returns the configuration being propagated.
func (e *Engine) Configuration() *Configuration {
	return e.cfg
}

// Sweeps returns the number of completed sweeps.
func (e *Engine) Sweeps() int {
	return e.sweeps
}

// Steps returns the number of single-ray steps taken.
func (e *Engine) Steps() int {
	return e.steps
}
