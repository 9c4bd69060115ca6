package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateClockwise_Order(t *testing.T) {
	assert.Equal(t, East, North.RotateClockwise())
	assert.Equal(t, South, East.RotateClockwise())
	assert.Equal(t, West, South.RotateClockwise())
	assert.Equal(t, North, West.RotateClockwise())
}

func TestRotateClockwise_FourTimesIsIdentity(t *testing.T) {
	for _, o := range Orientations {
		got := o.RotateClockwise().RotateClockwise().RotateClockwise().RotateClockwise()
		assert.Equal(t, o, got, o.String())
	}
}

func TestDelta(t *testing.T) {
	assert.Equal(t, Point{X: 0, Y: -1}, North.Delta())
	assert.Equal(t, Point{X: 1, Y: 0}, East.Delta())
	assert.Equal(t, Point{X: 0, Y: 1}, South.Delta())
	assert.Equal(t, Point{X: -1, Y: 0}, West.Delta())
}

func TestSymbolRoundTrip(t *testing.T) {
	for _, o := range Orientations {
		got, ok := OrientationFromSymbol(o.Symbol())
		assert.True(t, ok)
		assert.Equal(t, o, got)
	}

	_, ok := OrientationFromSymbol(Obstacle)
	assert.False(t, ok)
	_, ok = OrientationFromSymbol(Visited)
	assert.False(t, ok)
}

func TestBit_Distinct(t *testing.T) {
	var mask uint8
	for _, o := range Orientations {
		assert.Zero(t, mask&o.Bit())
		mask |= o.Bit()
	}
	assert.Equal(t, uint8(0x0f), mask)
}

func TestOrientationString(t *testing.T) {
	assert.Equal(t, "north", North.String())
	assert.Equal(t, "west", West.String())
	assert.Equal(t, "orientation(9)", Orientation(9).String())
}
