package patrol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/patrol/internal/grid"
)

func guardAt(x, y int, facing grid.Orientation) grid.Guard {
	return grid.Guard{Pos: grid.Point{X: x, Y: y}, Facing: facing}
}

func TestStep_MovesForward(t *testing.T) {
	m := grid.MustParse("...", ".^.", "...")

	next, move := Step(guardAt(1, 1, grid.North), m)
	assert.Equal(t, MoveNormal, move)
	assert.Equal(t, guardAt(1, 0, grid.North), next)
}

func TestStep_ExitsAtEdge(t *testing.T) {
	m := grid.MustParse(".^.", "...")

	next, move := Step(guardAt(1, 0, grid.North), m)
	assert.Equal(t, MoveExited, move)
	assert.Equal(t, grid.Point{X: 1, Y: 0}, next.Pos)
}

func TestStep_DeflectsToOnlyOpenDirection(t *testing.T) {
	// Facing north into '#', east is '#', south is open, west is '#'.
	m := grid.MustParse(
		".#.",
		"#^#",
		"...",
	)

	next, move := Step(guardAt(1, 1, grid.North), m)
	assert.Equal(t, MoveNormal, move)
	assert.Equal(t, guardAt(1, 2, grid.South), next)
}

func TestStep_DeflectsClockwiseFirst(t *testing.T) {
	m := grid.MustParse(
		".#.",
		".^.",
		"...",
	)

	next, move := Step(guardAt(1, 1, grid.North), m)
	assert.Equal(t, MoveNormal, move)
	assert.Equal(t, guardAt(2, 1, grid.East), next)
}

func TestStep_InjectedObstacleDeflects(t *testing.T) {
	m := grid.MustParse(
		".O.",
		".^.",
		"...",
	)

	next, move := Step(guardAt(1, 1, grid.North), m)
	assert.Equal(t, MoveNormal, move)
	assert.Equal(t, grid.East, next.Facing)
}

func TestStep_TurnSkipsFacingOffTheMap(t *testing.T) {
	// Obstacle ahead. Turning east would leave the map, turning south too,
	// so the guard keeps turning and walks west.
	m := grid.MustParse(
		".#",
		".^",
	)

	next, move := Step(guardAt(1, 1, grid.North), m)
	assert.Equal(t, MoveNormal, move)
	assert.Equal(t, guardAt(0, 1, grid.West), next)
}

func TestStep_EastFacingCornerTurnsWest(t *testing.T) {
	m := grid.MustParse(
		"...",
		".>#",
	)

	next, move := Step(guardAt(1, 1, grid.East), m)
	assert.Equal(t, MoveNormal, move)
	assert.Equal(t, guardAt(0, 1, grid.West), next)
}

func TestStep_BlockedByEdgesAndObstacles(t *testing.T) {
	// North and west are obstacles; east and south are off the map.
	m := grid.MustParse(
		".#",
		"#^",
	)
	g := guardAt(1, 1, grid.North)

	next, move := Step(g, m)
	assert.Equal(t, MoveBlocked, move)
	assert.Equal(t, g, next)
}

func TestStep_OnlyStraightAheadExits(t *testing.T) {
	m := grid.MustParse(".^.", "...")
	g := guardAt(1, 0, grid.North)

	next, move := Step(g, m)
	assert.Equal(t, MoveExited, move)
	assert.Equal(t, g, next)
}

func TestStep_Blocked(t *testing.T) {
	m := grid.MustParse(
		".#.",
		"#^#",
		".#.",
	)
	g := guardAt(1, 1, grid.West)

	next, move := Step(g, m)
	assert.Equal(t, MoveBlocked, move)
	assert.Equal(t, g, next)
}

func TestStep_Deterministic(t *testing.T) {
	m := grid.MustParse(
		"....#.....",
		".........#",
		"..#.......",
		"....^..#..",
	)
	g := guardAt(4, 3, grid.North)
	before := m.String()

	first, firstMove := Step(g, m)
	for i := 0; i < 10; i++ {
		next, move := Step(g, m)
		assert.Equal(t, first, next)
		assert.Equal(t, firstMove, move)
	}
	assert.Equal(t, before, m.String(), "Step must not mutate the grid")
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "moved", MoveNormal.String())
	assert.Equal(t, "exited", MoveExited.String())
	assert.Equal(t, "blocked", MoveBlocked.String())
	assert.Equal(t, "unknown", Move(42).String())
}
