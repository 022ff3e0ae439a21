package noise

import (
	"testing"

	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"github.com/Rismosch/ris-terrain-generator/internal/rng"
	"github.com/stretchr/testify/assert"
)

func TestCornerIsExactlyZero(t *testing.T) {
	width := 9
	f := New(rng.New(rng.Seed{Hi: 11, Lo: 22}), width, 2, 0.5)

	corners := []cube.Coord{
		{Face: cube.F, X: 0, Y: 0},
		{Face: cube.F, X: width - 1, Y: 0},
		{Face: cube.F, X: 0, Y: width - 1},
		{Face: cube.F, X: width - 1, Y: width - 1},
		{Face: cube.U, X: 0, Y: 0},
	}
	for _, c := range corners {
		v := f.Sample(c.Face, float64(c.X), float64(c.Y), width)
		assert.Equal(t, 0.0, v, "corner %+v should be exactly zero at every octave", c)
	}
}

func TestSeamAgreement(t *testing.T) {
	width := 9
	f := New(rng.New(rng.Seed{Hi: 3, Lo: 4}), width, 1, 0.5)

	for x := 0; x < width; x++ {
		cf := cube.Coord{Face: cube.F, X: x, Y: 0}
		n := cube.Neighbors4(cf, width)[0]
		vf := f.Sample(cube.F, float64(x), 0, width)
		vn := f.Sample(n.Coord.Face, float64(n.Coord.X), float64(n.Coord.Y), width)
		assert.InDelta(t, vf, vn, 1e-9)
	}
}

func TestOctaveCount(t *testing.T) {
	assert.Equal(t, 10, OctaveCount(513))
	assert.Equal(t, 1, OctaveCount(2))
}

func TestDeterministic(t *testing.T) {
	a := New(rng.New(rng.Seed{Hi: 1, Lo: 2}), 17, 2, 0.5)
	b := New(rng.New(rng.Seed{Hi: 1, Lo: 2}), 17, 2, 0.5)
	for x := 0; x < 17; x++ {
		assert.Equal(t, a.Sample(cube.F, float64(x), 3, 17), b.Sample(cube.F, float64(x), 3, 17))
	}
}
