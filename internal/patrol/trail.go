package patrol

import "github.com/roach88/patrol/internal/grid"

// Trail records which (cell, facing) pairs a guard has occupied.
//
// Each cell holds a bitmask with one bit per orientation, so Seen is an
// exact set-membership test rather than a comparison of painted symbols.
// Trail is sized to its grid and is not safe for concurrent use; every
// simulation run owns its own.
type Trail struct {
	width  int
	height int
	seen   []uint8 // Orientation.Bit() union per cell
	last   []uint8 // latest facing + 1 per cell; 0 = never visited
	cells  int
}

// NewTrail creates an empty trail covering m.
func NewTrail(m *grid.Grid) *Trail {
	n := m.Len()
	return &Trail{
		width:  m.Width(),
		height: m.Height(),
		seen:   make([]uint8, n),
		last:   make([]uint8, n),
	}
}

func (t *Trail) index(p grid.Point) int {
	return p.Y*t.width + p.X
}

func (t *Trail) inBounds(p grid.Point) bool {
	return p.X >= 0 && p.X < t.width && p.Y >= 0 && p.Y < t.height
}

// Seen reports whether g has already been recorded.
func (t *Trail) Seen(g grid.Guard) bool {
	if !t.inBounds(g.Pos) {
		return false
	}
	return t.seen[t.index(g.Pos)]&g.Facing.Bit() != 0
}

// Record marks g as visited.
// Returns false if g had already been recorded.
func (t *Trail) Record(g grid.Guard) bool {
	if !t.inBounds(g.Pos) {
		return false
	}
	i := t.index(g.Pos)
	bit := g.Facing.Bit()
	if t.seen[i]&bit != 0 {
		return false
	}
	if t.seen[i] == 0 {
		t.cells++
	}
	t.seen[i] |= bit
	t.last[i] = uint8(g.Facing) + 1
	return true
}

// Visited reports whether p was entered with any facing.
func (t *Trail) Visited(p grid.Point) bool {
	return t.inBounds(p) && t.seen[t.index(p)] != 0
}

// Headings returns the facings p was entered with, in clockwise order.
func (t *Trail) Headings(p grid.Point) []grid.Orientation {
	if !t.inBounds(p) {
		return nil
	}
	mask := t.seen[t.index(p)]
	var out []grid.Orientation
	for _, o := range grid.Orientations {
		if mask&o.Bit() != 0 {
			out = append(out, o)
		}
	}
	return out
}

// Count returns the number of distinct cells visited.
func (t *Trail) Count() int {
	return t.cells
}

// Cells returns the visited cells in row-major order.
func (t *Trail) Cells() []grid.Point {
	out := make([]grid.Point, 0, t.cells)
	for i, mask := range t.seen {
		if mask != 0 {
			out = append(out, grid.Point{X: i % t.width, Y: i / t.width})
		}
	}
	return out
}

// Paint returns a clone of m with every visited cell set to grid.Visited.
func (t *Trail) Paint(m *grid.Grid) *grid.Grid {
	out := m.Clone()
	for _, p := range t.Cells() {
		out.Put(p, grid.Visited)
	}
	return out
}

// PaintHeadings returns a clone of m with every visited cell set to the
// guard marker of the latest facing recorded there.
func (t *Trail) PaintHeadings(m *grid.Grid) *grid.Grid {
	out := m.Clone()
	for _, p := range t.Cells() {
		facing := grid.Orientation(t.last[t.index(p)] - 1)
		out.Put(p, facing.Symbol())
	}
	return out
}
