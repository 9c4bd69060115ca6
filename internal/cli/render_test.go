package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/patrol/internal/testutil"
)

func TestRender_Plain(t *testing.T) {
	path := writeMap(t, testutil.SampleRows())

	out, _, err := execute(t, "render", path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(testutil.SampleRows(), "\n")+"\n", out)
}

func TestRender_PlainWithoutGuard(t *testing.T) {
	out, _, err := execute(t, "render", writeMap(t, []string{"#.", ".."}))
	require.NoError(t, err)
	assert.Equal(t, "#.\n..\n", out)
}

func TestRender_Trail(t *testing.T) {
	path := writeMap(t, testutil.SampleRows())

	out, _, err := execute(t, "render", path, "--trail")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(testutil.SampleTrailRows(), "\n")+"\n", out)
}

func TestRender_Headings(t *testing.T) {
	path := writeMap(t, []string{"#..", "...", "^.."})

	out, _, err := execute(t, "render", path, "--headings")
	require.NoError(t, err)
	assert.Equal(t, "#..\n^>>\n^..\n", out)
}

func TestRender_TrailAndHeadingsExclusive(t *testing.T) {
	path := writeMap(t, testutil.SampleRows())

	_, _, err := execute(t, "render", path, "--trail", "--headings")
	require.Error(t, err)
}

func TestRender_TrailNeedsGuard(t *testing.T) {
	out, _, err := execute(t, "render", writeMap(t, []string{"..", ".."}), "--trail")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
}

func TestRender_JSON(t *testing.T) {
	path := writeMap(t, testutil.LoopRows())

	out, _, err := execute(t, "--format", "json", "render", path, "--trail")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   RenderResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "cycle", resp.Data.Outcome)
	assert.Equal(t, 12, resp.Data.Visited)
	assert.Equal(t, []string{
		".#....",
		".XXXX#",
		".X..X.",
		".X..X.",
		"#XXXX.",
		"....#.",
	}, resp.Data.Rows)
}
