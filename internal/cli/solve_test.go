package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/store"
	"github.com/roach88/patrol/internal/testutil"
)

var sampleLoops = []grid.Point{
	{X: 3, Y: 6}, {X: 6, Y: 7}, {X: 7, Y: 7},
	{X: 1, Y: 8}, {X: 3, Y: 8}, {X: 7, Y: 9},
}

func TestSolve_SampleText(t *testing.T) {
	path := writeMap(t, testutil.SampleRows())

	out, _, err := execute(t, "solve", path)
	require.NoError(t, err)
	assert.Equal(t, "Outcome: exited\nVisited: 41\nLoops: 6 (of 91 placements)\n", out)
}

func TestSolve_WorkersAgreeWithSequential(t *testing.T) {
	path := writeMap(t, testutil.SampleRows())

	for _, workers := range []string{"1", "3", "8"} {
		t.Run("workers="+workers, func(t *testing.T) {
			out, _, err := execute(t, "solve", path, "--workers", workers, "--format", "json")
			require.NoError(t, err)

			res := decodeSolve(t, out)
			assert.Equal(t, 6, res.Loops)
			assert.Equal(t, sampleLoops, res.Obstructions)
		})
	}
}

func TestSolve_BudgetDetection(t *testing.T) {
	path := writeMap(t, testutil.SampleRows())

	out, _, err := execute(t, "solve", path, "--detect", "budget", "--format", "json")
	require.NoError(t, err)

	res := decodeSolve(t, out)
	assert.Equal(t, 41, res.Visited)
	assert.Equal(t, 6, res.Loops)
}

func TestSolve_JSON(t *testing.T) {
	path := writeMap(t, testutil.SampleRows())

	out, _, err := execute(t, "--format", "json", "solve", path)
	require.NoError(t, err)

	res := decodeSolve(t, out)
	assert.Equal(t, "exited", res.Outcome)
	assert.Equal(t, 41, res.Visited)
	assert.Equal(t, 44, res.Steps)
	assert.True(t, res.Searched)
	assert.Equal(t, 91, res.Trials)
	assert.Equal(t, sampleLoops, res.Obstructions)
	assert.Empty(t, res.Blocked)
	assert.Len(t, res.Digest, 64)
	assert.Equal(t, 10, res.Width)
	assert.Empty(t, res.RunID)
}

func TestSolve_SkipObstructions(t *testing.T) {
	path := writeMap(t, testutil.LoopRows())

	out, _, err := execute(t, "solve", path, "--skip-obstructions")
	require.NoError(t, err)
	assert.Equal(t, "Outcome: cycle\nVisited: 12\n", out)
}

func TestSolve_Blocked(t *testing.T) {
	path := writeMap(t, testutil.WalledRows())

	out, errOut, err := execute(t, "solve", path, "--skip-obstructions")
	require.NoError(t, err)
	assert.Equal(t, "Outcome: blocked\nVisited: 1\n", out)
	assert.Contains(t, errOut, "guard blocked in every direction")
}

func TestSolve_BadFlags(t *testing.T) {
	path := writeMap(t, testutil.SampleRows())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"detect", []string{"--detect", "psychic"}, "invalid --detect"},
		{"workers", []string{"--workers", "0"}, "invalid --workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, append([]string{"solve", path}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestSolve_MapErrors(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		wantCode string
	}{
		{"no guard", []string{"...", "..."}, ErrCodeNoGuard},
		{"ragged", []string{"...", ".^"}, ErrCodeParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "--format", "json", "solve", writeMap(t, tt.rows))
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestSolve_MissingFile(t *testing.T) {
	out, _, err := execute(t, "solve", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestSolve_RecordsRun(t *testing.T) {
	path := writeMap(t, testutil.SampleRows())
	dbPath := filepath.Join(t.TempDir(), "patrol.db")

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newSolveCommand(&SolveOptions{
		RootOptions: &RootOptions{Format: "json"},
		IDGenerator: testutil.NewFixedIDGenerator("run-sample"),
	})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{path, "--db", dbPath})
	require.NoError(t, cmd.Execute())

	res := decodeSolve(t, out.String())
	assert.Equal(t, "run-sample", res.RunID)
	assert.Contains(t, errOut.String(), "run recorded")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(context.Background(), "run-sample")
	require.NoError(t, err)
	assert.Equal(t, res.Digest, run.GridDigest)
	assert.Equal(t, "revisit", run.Detection)
	assert.Equal(t, "exited", run.Outcome)
	assert.Equal(t, 41, run.Visited)
	assert.Equal(t, 91, run.Trials)
	assert.Equal(t, sampleLoops, run.Loops)
}

func decodeSolve(t *testing.T, out string) SolveResult {
	t.Helper()
	var resp struct {
		Status string      `json:"status"`
		Data   SolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}
