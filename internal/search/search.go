// Package search counts the single-cell obstacle placements that trap a
// patrolling guard in a loop.
//
// Every open cell other than the guard's start is a candidate. Each trial
// clones the source grid, drops an injected obstacle on the candidate and
// runs the simulator from scratch. Trials share nothing but the read-only
// source grid, so they can run on a worker pool; results are reported in
// row-major order either way.
package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/patrol"
)

// Options configures an obstruction search.
type Options struct {
	// Workers is the number of concurrent trials. Values <= 1 run trials
	// sequentially on the calling goroutine.
	Workers int

	// Detection is the loop detection policy used by every trial.
	Detection patrol.Detection

	// Logger receives anomaly reports. Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) simulator() *patrol.Simulator {
	return patrol.NewSimulator(
		patrol.WithDetection(o.Detection),
		patrol.WithLogger(o.logger()),
	)
}

// Report is the tally of an obstruction search.
type Report struct {
	// Trials is the number of candidate cells tried.
	Trials int `json:"trials"`

	// Loops are the placements that trapped the guard, row-major.
	Loops []grid.Point `json:"loops"`

	// Blocked are placements that left the guard unable to move at all.
	// They are anomalies and never counted as loops.
	Blocked []grid.Point `json:"blocked,omitempty"`
}

// LoopCount returns the number of loop-inducing placements.
func (r *Report) LoopCount() int {
	return len(r.Loops)
}

// Candidates returns every cell of m that is open and not the guard's
// start, in row-major order.
func Candidates(m *grid.Grid, start grid.Point) []grid.Point {
	out := make([]grid.Point, 0, m.Len())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := grid.Point{X: x, Y: y}
			if p == start || m.At(p).IsObstacle() {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// Run tries every candidate placement on m and tallies the outcomes.
// m is never modified.
func Run(ctx context.Context, m *grid.Grid, opts Options) (*Report, error) {
	start, err := m.FindGuard()
	if err != nil {
		return nil, err
	}

	candidates := Candidates(m, start.Pos)
	sim := opts.simulator()
	log := opts.logger()

	log.Info("obstruction search starting",
		"candidates", len(candidates),
		"workers", max(opts.Workers, 1),
		"detection", opts.Detection.String(),
	)

	report := &Report{Trials: len(candidates)}
	var mu sync.Mutex
	record := func(p grid.Point, outcome patrol.Outcome) {
		switch outcome {
		case patrol.Cycle:
			mu.Lock()
			report.Loops = append(report.Loops, p)
			mu.Unlock()
		case patrol.Blocked:
			log.Warn("obstruction leaves guard blocked", "x", p.X, "y", p.Y)
			mu.Lock()
			report.Blocked = append(report.Blocked, p)
			mu.Unlock()
		}
	}

	if opts.Workers <= 1 {
		for _, p := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcome, err := trial(ctx, sim, m, start, p)
			if err != nil {
				return nil, err
			}
			record(p, outcome)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for _, p := range candidates {
			if gctx.Err() != nil {
				break
			}
			p := p
			g.Go(func() error {
				outcome, err := trial(gctx, sim, m, start, p)
				if err != nil {
					return err
				}
				record(p, outcome)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	sortRowMajor(report.Loops)
	sortRowMajor(report.Blocked)

	log.Info("obstruction search finished",
		"trials", report.Trials,
		"loops", len(report.Loops),
		"blocked", len(report.Blocked),
	)
	return report, nil
}

// trial runs one placement on its own clone of m.
func trial(ctx context.Context, sim *patrol.Simulator, m *grid.Grid, start grid.Guard, p grid.Point) (patrol.Outcome, error) {
	clone := m.Clone()
	if err := clone.Set(p, grid.TempObstacle); err != nil {
		return patrol.Running, err
	}
	res, err := sim.RunFrom(ctx, clone, start)
	if err != nil {
		return patrol.Running, fmt.Errorf("trial at %s: %w", p, err)
	}
	return res.Outcome, nil
}

func sortRowMajor(ps []grid.Point) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}
