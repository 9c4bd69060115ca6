package search

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/patrol"
	"github.com/roach88/patrol/internal/testutil"
)

var sampleLoops = []grid.Point{
	{X: 3, Y: 6},
	{X: 6, Y: 7},
	{X: 7, Y: 7},
	{X: 1, Y: 8},
	{X: 3, Y: 8},
	{X: 7, Y: 9},
}

func TestCandidates_ExcludeObstaclesAndStart(t *testing.T) {
	m := grid.MustParse(
		"#.",
		"^O",
	)

	got := Candidates(m, grid.Point{X: 0, Y: 1})
	assert.Equal(t, []grid.Point{{X: 1, Y: 0}}, got)
}

func TestCandidates_SampleCount(t *testing.T) {
	m := grid.MustParse(testutil.SampleRows()...)

	// 100 cells, 8 obstacles, 1 guard start.
	assert.Len(t, Candidates(m, grid.Point{X: 4, Y: 6}), 91)
}

func TestRun_SampleSequential(t *testing.T) {
	m := grid.MustParse(testutil.SampleRows()...)
	before := m.String()

	report, err := Run(context.Background(), m, Options{})
	require.NoError(t, err)

	assert.Equal(t, 91, report.Trials)
	assert.Equal(t, 6, report.LoopCount())
	if diff := cmp.Diff(sampleLoops, report.Loops); diff != "" {
		t.Errorf("loop placements mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, report.Blocked)
	assert.Equal(t, before, m.String(), "source grid must stay untouched")
}

func TestRun_SampleParallelMatchesSequential(t *testing.T) {
	m := grid.MustParse(testutil.SampleRows()...)

	for _, workers := range []int{2, 4, 16} {
		report, err := Run(context.Background(), m, Options{Workers: workers})
		require.NoError(t, err)
		if diff := cmp.Diff(sampleLoops, report.Loops); diff != "" {
			t.Errorf("workers=%d (-want +got):\n%s", workers, diff)
		}
	}
}

func TestRun_SampleStepBudgetAgrees(t *testing.T) {
	m := grid.MustParse(testutil.SampleRows()...)

	report, err := Run(context.Background(), m, Options{Detection: patrol.DetectStepBudget})
	require.NoError(t, err)
	assert.Equal(t, sampleLoops, report.Loops)
}

func TestRun_BlockedPlacementIsExcluded(t *testing.T) {
	// The only open neighbour of the guard is (1,2). Filling it walls the
	// guard in; every other placement is irrelevant and lets it exit south.
	var logs bytes.Buffer
	m := grid.MustParse(
		".#.",
		"#^#",
		"...",
	)

	report, err := Run(context.Background(), m, Options{
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, report.Trials)
	assert.Empty(t, report.Loops)
	assert.Equal(t, []grid.Point{{X: 1, Y: 2}}, report.Blocked)
	assert.Contains(t, logs.String(), "obstruction leaves guard blocked")
}

func TestRun_NoGuard(t *testing.T) {
	_, err := Run(context.Background(), grid.MustParse("..", ".."), Options{})
	assert.True(t, grid.IsNoGuardError(err))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := grid.MustParse(testutil.SampleRows()...)

	_, err := Run(ctx, m, Options{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Run(ctx, m, Options{Workers: 4})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolve_Sample(t *testing.T) {
	m := grid.MustParse(testutil.SampleRows()...)

	sol, err := Solve(context.Background(), m, Options{Workers: 3}, false)
	require.NoError(t, err)

	assert.Equal(t, 41, sol.Visited)
	assert.Equal(t, patrol.Exited, sol.Outcome)
	assert.Equal(t, 6, sol.LoopCount())
	require.NotNil(t, sol.Path)
	assert.Equal(t, testutil.SampleTrailRows(), sol.Path.Trail.Paint(m).Rows())
}

func TestSolve_SkipObstructions(t *testing.T) {
	m := grid.MustParse(testutil.SampleRows()...)

	sol, err := Solve(context.Background(), m, Options{}, true)
	require.NoError(t, err)

	assert.Equal(t, 41, sol.Visited)
	assert.Nil(t, sol.Obstructions)
	assert.Zero(t, sol.LoopCount())
}

func TestSolve_LoopingMap(t *testing.T) {
	m := grid.MustParse(testutil.LoopRows()...)

	sol, err := Solve(context.Background(), m, Options{}, true)
	require.NoError(t, err)
	assert.Equal(t, patrol.Cycle, sol.Outcome)
	assert.Equal(t, 12, sol.Visited)
}
