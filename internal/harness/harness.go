package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/patrol"
	"github.com/roach88/patrol/internal/search"
)

// Option configures a scenario run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger routes simulator and search logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = l
	}
}

// Run executes a scenario and returns the result.
//
// The obstruction search only runs when an expectation depends on it.
// A returned error means the scenario could not be executed at all;
// unmet expectations are reported through Result.Errors.
func Run(ctx context.Context, s *Scenario, opts ...Option) (*Result, error) {
	cfg := &runConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if s.Map() == nil {
		if err := validateScenario(s); err != nil {
			return nil, fmt.Errorf("invalid scenario: %w", err)
		}
	}

	detection, err := patrol.ParseDetection(s.Detection)
	if err != nil {
		return nil, err
	}

	sol, err := search.Solve(ctx, s.Map(), search.Options{
		Workers:   s.Workers,
		Detection: detection,
		Logger:    cfg.logger,
	}, !s.Expect.NeedsSearch())
	if err != nil {
		return nil, fmt.Errorf("failed to solve %s: %w", s.Name, err)
	}

	result := NewResult(s.Name)
	result.Solution = sol
	checkExpectations(s.Expect, sol, result)
	return result, nil
}

// checkExpectations compares every set expectation against sol.
func checkExpectations(e Expectation, sol *search.Solution, result *Result) {
	if e.Outcome != "" && e.Outcome != sol.Outcome.String() {
		result.AddError(fmt.Sprintf("outcome: expected %s, got %s", e.Outcome, sol.Outcome))
	}

	if e.Visited != nil && *e.Visited != sol.Visited {
		result.AddError(fmt.Sprintf("visited: expected %d, got %d", *e.Visited, sol.Visited))
	}

	if sol.Obstructions == nil {
		return
	}
	report := sol.Obstructions

	if e.Loops != nil && *e.Loops != report.LoopCount() {
		result.AddError(fmt.Sprintf("loops: expected %d, got %d", *e.Loops, report.LoopCount()))
	}

	if e.Obstructions != nil {
		checkPlacements("obstructions", toPoints(e.Obstructions), report.Loops, result)
	}

	if e.Blocked != nil {
		checkPlacements("blocked", toPoints(e.Blocked), report.Blocked, result)
	}
}

func checkPlacements(field string, want, got []grid.Point, result *Result) {
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !slices.Equal(want, got) {
		result.AddError(fmt.Sprintf("%s: expected %v, got %v", field, want, got))
	}
}
