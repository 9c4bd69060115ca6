package grid

import "fmt"

// Orientation is the direction a guard faces.
//
// The zero value is North. Values follow the clockwise cycle
// North → East → South → West → North, so rotation is modular addition.
type Orientation uint8

const (
	North Orientation = iota
	East
	South
	West
)

// Orientations lists every orientation in clockwise order starting at North.
var Orientations = [4]Orientation{North, East, South, West}

var deltas = [4]Point{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

var orientationSymbols = [4]Symbol{
	North: GuardNorth,
	East:  GuardEast,
	South: GuardSouth,
	West:  GuardWest,
}

var orientationNames = [4]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

// RotateClockwise returns the orientation 90° clockwise from o.
func (o Orientation) RotateClockwise() Orientation {
	return (o + 1) % 4
}

// Delta returns the unit step for o. North decreases y.
func (o Orientation) Delta() Point {
	return deltas[o%4]
}

// Symbol returns the guard marker for o (^ > v <).
func (o Orientation) Symbol() Symbol {
	return orientationSymbols[o%4]
}

// Bit returns a one-hot mask for o, used by visitation overlays.
func (o Orientation) Bit() uint8 {
	return 1 << (o % 4)
}

// String returns the lowercase compass name.
func (o Orientation) String() string {
	if o > West {
		return fmt.Sprintf("orientation(%d)", uint8(o))
	}
	return orientationNames[o]
}

// OrientationFromSymbol decodes a guard marker.
// Returns false if s is not one of ^ > v <.
func OrientationFromSymbol(s Symbol) (Orientation, bool) {
	switch s {
	case GuardNorth:
		return North, true
	case GuardEast:
		return East, true
	case GuardSouth:
		return South, true
	case GuardWest:
		return West, true
	}
	return North, false
}
