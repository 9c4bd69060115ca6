package patrol

import "github.com/roach88/patrol/internal/grid"

// Move is the result of a single application of the movement rule.
type Move uint8

const (
	// MoveNormal means the guard entered a new cell, possibly after turning.
	MoveNormal Move = iota

	// MoveExited means the cell straight ahead lies outside the map.
	MoveExited

	// MoveBlocked means every facing leads into an obstacle or, after a
	// turn, off the map.
	MoveBlocked
)

func (m Move) String() string {
	switch m {
	case MoveNormal:
		return "moved"
	case MoveExited:
		return "exited"
	case MoveBlocked:
		return "blocked"
	}
	return "unknown"
}

// Step applies the movement rule to g on m and returns the next guard state.
//
// The guard looks at the cell ahead. Outside the map it exits; an open cell
// it enters. An obstacle turns it clockwise, up to three times, and it
// takes the first new facing whose cell is on the map and open. A turned
// facing never leads off the map. If no facing qualifies the guard is
// blocked and g is returned unchanged.
//
// Step reads m and never writes it.
func Step(g grid.Guard, m *grid.Grid) (grid.Guard, Move) {
	ahead := g.Pos.Add(g.Facing.Delta())
	if !m.InBounds(ahead) {
		return g, MoveExited
	}
	if !m.At(ahead).IsObstacle() {
		return grid.Guard{Pos: ahead, Facing: g.Facing}, MoveNormal
	}

	facing := g.Facing
	for turn := 0; turn < 3; turn++ {
		facing = facing.RotateClockwise()
		next := g.Pos.Add(facing.Delta())
		if !m.InBounds(next) || m.At(next).IsObstacle() {
			continue
		}
		return grid.Guard{Pos: next, Facing: facing}, MoveNormal
	}
	return g, MoveBlocked
}
