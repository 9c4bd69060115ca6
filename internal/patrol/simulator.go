package patrol

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/patrol/internal/grid"
)

// Outcome is the state of a simulation run.
type Outcome uint8

const (
	// Running is the only non-terminal state.
	Running Outcome = iota

	// Exited means the guard walked off the map.
	Exited

	// Cycle means the guard repeated a (cell, facing) state.
	Cycle

	// Blocked means the guard could not move in any direction.
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Exited:
		return "exited"
	case Cycle:
		return "cycle"
	case Blocked:
		return "blocked"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// ParseOutcome decodes the String form of a terminal outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "exited":
		return Exited, nil
	case "cycle":
		return Cycle, nil
	case "blocked":
		return Blocked, nil
	}
	return Running, fmt.Errorf("unknown outcome %q: must be one of exited, cycle, blocked", s)
}

// Detection selects how a run recognizes a loop.
type Detection uint8

const (
	// DetectRevisit declares a cycle the moment the guard enters a cell
	// with a facing already recorded there. Exact.
	DetectRevisit Detection = iota

	// DetectStepBudget declares a cycle once the guard has taken more steps
	// than there are (cell, facing) states.
	DetectStepBudget
)

func (d Detection) String() string {
	if d == DetectStepBudget {
		return "budget"
	}
	return "revisit"
}

// ParseDetection decodes "revisit" or "budget". Empty selects revisit.
func ParseDetection(s string) (Detection, error) {
	switch s {
	case "", "revisit":
		return DetectRevisit, nil
	case "budget":
		return DetectStepBudget, nil
	}
	return DetectRevisit, fmt.Errorf("unknown detection %q: must be revisit or budget", s)
}

// checkInterval is how many steps run between context checks.
const checkInterval = 4096

// Result is the terminal state of a run.
type Result struct {
	Outcome Outcome
	Start   grid.Guard
	Final   grid.Guard
	Steps   int
	Trail   *Trail
}

// Visited returns the number of distinct cells the guard occupied.
func (r *Result) Visited() int {
	return r.Trail.Count()
}

// Simulator drives the movement rule over a grid.
// A Simulator holds configuration only and may be shared between goroutines.
type Simulator struct {
	detection  Detection
	stepBudget int // 0 = 4 × width × height
	logger     *slog.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithDetection selects the loop detection policy.
func WithDetection(d Detection) Option {
	return func(s *Simulator) {
		s.detection = d
	}
}

// WithStepBudget overrides the step budget. n <= 0 restores the default of
// four steps per cell.
func WithStepBudget(n int) Option {
	return func(s *Simulator) {
		s.stepBudget = n
	}
}

// WithLogger sets the logger used for anomalies such as blocked guards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSimulator creates a Simulator. By default it uses revisit detection and
// discards logs.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		detection: DetectRevisit,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Detection returns the configured loop detection policy.
func (s *Simulator) Detection() Detection {
	return s.detection
}

// Budget returns the step budget applied to m.
func (s *Simulator) Budget(m *grid.Grid) int {
	if s.stepBudget > 0 {
		return s.stepBudget
	}
	return 4 * m.Len()
}

// Run locates the guard on m and walks it to a terminal outcome.
// m is only read.
func (s *Simulator) Run(ctx context.Context, m *grid.Grid) (*Result, error) {
	start, err := m.FindGuard()
	if err != nil {
		return nil, err
	}
	return s.RunFrom(ctx, m, start)
}

// RunFrom walks a guard starting at start. The start cell is recorded as
// visited before the first step.
func (s *Simulator) RunFrom(ctx context.Context, m *grid.Grid, start grid.Guard) (*Result, error) {
	if !m.InBounds(start.Pos) {
		_, err := m.Get(start.Pos)
		return nil, err
	}

	trail := NewTrail(m)
	trail.Record(start)

	res := &Result{
		Outcome: Running,
		Start:   start,
		Final:   start,
		Trail:   trail,
	}
	budget := s.Budget(m)
	guard := start

	for res.Outcome == Running {
		if res.Steps%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		next, move := Step(guard, m)
		switch move {
		case MoveExited:
			res.Outcome = Exited
		case MoveBlocked:
			res.Outcome = Blocked
			s.logger.Warn("guard blocked in every direction",
				"x", guard.Pos.X,
				"y", guard.Pos.Y,
				"facing", guard.Facing.String(),
			)
		case MoveNormal:
			res.Steps++
			guard = next
			if fresh := trail.Record(guard); !fresh && s.detection == DetectRevisit {
				res.Outcome = Cycle
				break
			}
			if res.Steps > budget {
				if s.detection == DetectStepBudget {
					res.Outcome = Cycle
					break
				}
				return nil, &StepsExceededError{Steps: res.Steps, Limit: budget}
			}
		}
		res.Final = guard
	}

	s.logger.Debug("patrol finished",
		"outcome", res.Outcome.String(),
		"steps", res.Steps,
		"visited", trail.Count(),
	)
	return res, nil
}
