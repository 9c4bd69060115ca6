package harness

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/search"
)

// Trace renders a solved scenario as plain text: a summary block, a blank
// line, then the map with the unobstructed path painted as X.
//
// The output is deterministic for a given scenario, which is what golden
// files compare.
func Trace(s *Scenario, sol *search.Solution) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "scenario: %s\n", s.Name)
	fmt.Fprintf(&b, "outcome: %s\n", sol.Outcome)
	fmt.Fprintf(&b, "visited: %d\n", sol.Visited)
	fmt.Fprintf(&b, "steps: %d\n", sol.Path.Steps)

	if r := sol.Obstructions; r != nil {
		fmt.Fprintf(&b, "trials: %d\n", r.Trials)
		fmt.Fprintf(&b, "loops: %d\n", r.LoopCount())
		fmt.Fprintf(&b, "obstructions: %s\n", formatPoints(r.Loops))
		fmt.Fprintf(&b, "blocked: %s\n", formatPoints(r.Blocked))
	} else {
		b.WriteString("search: skipped\n")
	}

	b.WriteByte('\n')
	b.WriteString(sol.Path.Trail.Paint(s.Map()).String())
	return b.Bytes()
}

func formatPoints(ps []grid.Point) string {
	if len(ps) == 0 {
		return "none"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario, result)
	return result, nil
}

// AssertGolden compares an already computed result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Trace(scenario, result.Solution))
}
