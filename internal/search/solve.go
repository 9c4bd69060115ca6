package search

import (
	"context"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/patrol"
)

// Solution answers both questions for a map: how many cells the
// unobstructed guard visits, and how many placements trap it.
type Solution struct {
	Visited      int
	Outcome      patrol.Outcome
	Path         *patrol.Result
	Obstructions *Report // nil when the search was skipped
}

// LoopCount returns the loop tally, or 0 if the search was skipped.
func (s *Solution) LoopCount() int {
	if s.Obstructions == nil {
		return 0
	}
	return s.Obstructions.LoopCount()
}

// Solve runs the unobstructed patrol and then, unless skipObstructions is
// set, the obstruction search.
func Solve(ctx context.Context, m *grid.Grid, opts Options, skipObstructions bool) (*Solution, error) {
	path, err := opts.simulator().Run(ctx, m)
	if err != nil {
		return nil, err
	}

	sol := &Solution{
		Visited: path.Visited(),
		Outcome: path.Outcome,
		Path:    path,
	}
	if skipObstructions {
		return sol, nil
	}

	report, err := Run(ctx, m, opts)
	if err != nil {
		return nil, err
	}
	sol.Obstructions = report
	return sol, nil
}
