package post

import (
	"testing"

	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeConstantLeftUnchanged(t *testing.T) {
	h := cube.NewCubeSurface[float64](3)
	for _, g := range h.Grids() {
		for i := range g.Data {
			g.Data[i] = 7
		}
	}
	Normalize(h)
	for _, g := range h.Grids() {
		for _, v := range g.Data {
			assert.Equal(t, 7.0, v)
		}
	}
}

func TestNormalizeRescalesToUnitRange(t *testing.T) {
	h := cube.NewCubeSurface[float64](2)
	h.F.Set(0, 0, 2)
	h.F.Set(1, 0, 4)
	h.F.Set(0, 1, 6)
	h.F.Set(1, 1, 10)
	Normalize(h)
	// The other five faces are all 0, so the surface-wide minimum is 0 and
	// F's smallest sample 2 maps to 2/10.
	assert.Equal(t, 0.2, h.F.At(0, 0))
	assert.Equal(t, 1.0, h.F.At(1, 1))
	assert.True(t, h.F.At(1, 0) > 0 && h.F.At(1, 0) < 1)
}

func TestWeightEndpoints(t *testing.T) {
	h := cube.NewCubeSurface[float64](2)
	h.F.Set(0, 0, 0)
	h.F.Set(1, 0, 1)
	h.F.Set(0, 1, 0.5)
	h.F.Set(1, 1, 0.5)
	Weight(h, 2.0)
	assert.Equal(t, 0.0, h.F.At(0, 0))
	assert.Equal(t, 1.0, h.F.At(1, 0))
	assert.InDelta(t, 0.25, h.F.At(0, 1), 1e-12)
}
