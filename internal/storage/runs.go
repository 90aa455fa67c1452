package storage

import (
	"github.com/vovakirdan/lazor/internal/lazor/solver"
)

// NewRun converts a solver outcome into a history record.
func NewRun(boardID string, strategy solver.Strategy, res solver.Result, err error) Run {
	r := Run{
		BoardID:     boardID,
		Strategy:    string(strategy),
		Nodes:       res.Stats.Nodes,
		Evaluations: res.Stats.Evaluations,
		Pruned:      res.Stats.Pruned,
		Workers:     res.Stats.Workers,
		Duration:    res.Stats.Duration,
	}
	switch {
	case err != nil:
		r.Status = StatusError
		r.Error = err.Error()
	case res.Solved:
		r.Status = StatusSolved
		r.Placements = len(res.Placements)
	default:
		r.Status = StatusNoSolution
	}
	if r.Strategy == "" {
		r.Strategy = string(solver.StrategyBacktrack)
	}
	return r
}
