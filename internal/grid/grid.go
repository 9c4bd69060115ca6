package grid

import (
	"fmt"
	"strings"
)

// Symbol is the content of a single cell.
type Symbol byte

// Map alphabet.
const (
	Open         Symbol = '.'
	Obstacle     Symbol = '#'
	TempObstacle Symbol = 'O' // injected by obstruction trials
	Visited      Symbol = 'X' // diagnostic painting only
	GuardNorth   Symbol = '^'
	GuardEast    Symbol = '>'
	GuardSouth   Symbol = 'v'
	GuardWest    Symbol = '<'
)

// IsObstacle reports whether s blocks movement.
func (s Symbol) IsObstacle() bool {
	return s == Obstacle || s == TempObstacle
}

// IsGuardMarker reports whether s is one of the four orientation markers.
func (s Symbol) IsGuardMarker() bool {
	_, ok := OrientationFromSymbol(s)
	return ok
}

func (s Symbol) valid() bool {
	switch s {
	case Open, Obstacle, TempObstacle, Visited:
		return true
	}
	return s.IsGuardMarker()
}

// Point is a cell coordinate. X is the column, Y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Guard is a guard position and facing.
type Guard struct {
	Pos    Point       `json:"pos"`
	Facing Orientation `json:"facing"`
}

// Grid is a rectangular map of cells stored row-major in a single slice.
type Grid struct {
	width  int
	height int
	cells  []Symbol
}

// New creates a width×height grid with every cell Open.
func New(width, height int) *Grid {
	cells := make([]Symbol, width*height)
	for i := range cells {
		cells[i] = Open
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Parse builds a grid from text rows.
//
// Trailing carriage returns are trimmed and trailing blank rows ignored.
// Every remaining row must have the width of the first. At most one guard
// marker may be present; a grid with none parses, and FindGuard reports it.
func Parse(lines []string) (*Grid, error) {
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.TrimRight(line, "\r"))
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &Error{Code: ErrCodeEmpty, Message: "grid has no cells"}
	}

	width := len(rows[0])
	g := &Grid{width: width, height: len(rows), cells: make([]Symbol, 0, width*len(rows))}

	var guard *Point
	for y, row := range rows {
		if len(row) != width {
			return nil, &Error{
				Code:    ErrCodeRaggedRow,
				Message: fmt.Sprintf("row %d has width %d, expected %d", y, len(row), width),
				Pos:     &Point{X: len(row), Y: y},
			}
		}
		for x := 0; x < width; x++ {
			s := Symbol(row[x])
			p := Point{X: x, Y: y}
			if !s.valid() {
				return nil, &Error{
					Code:    ErrCodeInvalidSymbol,
					Message: fmt.Sprintf("unexpected character %q", row[x]),
					Pos:     &p,
				}
			}
			if s.IsGuardMarker() {
				if guard != nil {
					return nil, &Error{
						Code:    ErrCodeMultipleGuards,
						Message: fmt.Sprintf("second guard marker, first at %s", guard),
						Pos:     &p,
					}
				}
				guard = &p
			}
			g.cells = append(g.cells, s)
		}
	}
	return g, nil
}

// MustParse is Parse for fixtures. It panics on error.
func MustParse(lines ...string) *Grid {
	g, err := Parse(lines)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether p addresses a cell of g.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Index returns the row-major offset of p. p must be in bounds.
func (g *Grid) Index(p Point) int {
	return p.Y*g.width + p.X
}

// Get returns the symbol at p, or an OUT_OF_BOUNDS error.
func (g *Grid) Get(p Point) (Symbol, error) {
	if !g.InBounds(p) {
		return 0, newOutOfBounds(p, g.width, g.height)
	}
	return g.cells[g.Index(p)], nil
}

// At returns the symbol at p without a bounds check.
// Callers must have checked InBounds.
func (g *Grid) At(p Point) Symbol {
	return g.cells[g.Index(p)]
}

// Set stores s at p, or returns an OUT_OF_BOUNDS error.
func (g *Grid) Set(p Point, s Symbol) error {
	if !g.InBounds(p) {
		return newOutOfBounds(p, g.width, g.height)
	}
	g.cells[g.Index(p)] = s
	return nil
}

// Put stores s at p without a bounds check.
// Callers must have checked InBounds.
func (g *Grid) Put(p Point, s Symbol) {
	g.cells[g.Index(p)] = s
}

// IsObstacle reports whether p holds a permanent or injected obstacle.
// Out-of-bounds coordinates are not obstacles.
func (g *Grid) IsObstacle(p Point) bool {
	return g.InBounds(p) && g.At(p).IsObstacle()
}

// IsGuardMarker reports whether p holds one of ^ > v <.
func (g *Grid) IsGuardMarker(p Point) bool {
	return g.InBounds(p) && g.At(p).IsGuardMarker()
}

// FindGuard scans rows top to bottom, left to right, and returns the first
// guard marker found.
func (g *Grid) FindGuard() (Guard, error) {
	for i, s := range g.cells {
		if o, ok := OrientationFromSymbol(s); ok {
			return Guard{Pos: Point{X: i % g.width, Y: i / g.width}, Facing: o}, nil
		}
	}
	return Guard{}, &Error{Code: ErrCodeNoGuard, Message: "grid has no guard marker"}
}

// CountVisited counts cells bearing a guard marker or the visited marker.
func (g *Grid) CountVisited() int {
	n := 0
	for _, s := range g.cells {
		if s == Visited || s.IsGuardMarker() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	cells := make([]Symbol, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Rows returns the grid as one string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	buf := make([]byte, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			buf[x] = byte(g.cells[y*g.width+x])
		}
		rows[y] = string(buf)
	}
	return rows
}

// String renders the grid, one newline-terminated line per row.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for _, row := range g.Rows() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}
