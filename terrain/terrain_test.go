package terrain

import (
	"math"
	"testing"

	"github.com/Rismosch/ris-terrain-generator/config"
	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// scenario1: width=3, continent_count=1, erosion_iterations=0,
// fractal_weight=0 -- output is a constant grid of value 0 after the
// final normalize (min=max case), per spec.md §8 scenario 1. The main
// fractal layer is lowered to one a width of 3 has.
func TestScenarioConstantGridIsZero(t *testing.T) {
	a := config.Default()
	a.Width = 3
	a.FractalMainLayer = 1
	a.ContinentCount = 1
	a.ErosionIterations = 0
	a.FractalWeight = 0

	out, err := Generate(a)
	require.NoError(t, err)
	for _, g := range out.Grids() {
		for _, v := range g.Data {
			assert.Equal(t, float32(0), v)
		}
	}
}

// scenario 3: running Args::default twice must byte-compare equal.
func TestDefaultArgsAreDeterministic(t *testing.T) {
	a := config.Default()
	out1, err := Generate(a)
	require.NoError(t, err)
	out2, err := Generate(a)
	require.NoError(t, err)

	for _, face := range []Face{L, B, R, F, U, D} {
		assert.Equal(t, out1.Face(face).Data, out2.Face(face).Data)
	}
}

// scenario 4: only_generate_first_face leaves every face but the first
// all-zero, and the first face non-constant.
func TestOnlyGenerateFirstFace(t *testing.T) {
	a := config.Default()
	a.Width = 17
	a.OnlyGenerateFirstFace = true

	out, err := Generate(a)
	require.NoError(t, err)

	for _, face := range []Face{B, R, F, U, D} {
		for _, v := range out.Face(face).Data {
			assert.Equal(t, float32(0), v)
		}
	}

	distinct := map[float32]bool{}
	for _, v := range out.Face(L).Data {
		distinct[v] = true
	}
	assert.Greater(t, len(distinct), 1, "the generated face should not be constant")
}

// scenario 5: incrementing the seed changes at least one output pixel.
func TestSeedIsolation(t *testing.T) {
	a := config.Default()
	a.Width = 9
	a.FractalMainLayer = 1
	a.ContinentCount = 2
	a.ErosionIterations = 0

	out1, err := Generate(a)
	require.NoError(t, err)

	a.Seed.Lo++
	out2, err := Generate(a)
	require.NoError(t, err)

	differs := false
	for _, face := range []Face{L, B, R, F, U, D} {
		g1, g2 := out1.Face(face), out2.Face(face)
		for i := range g1.Data {
			if g1.Data[i] != g2.Data[i] {
				differs = true
			}
		}
	}
	assert.True(t, differs, "changing only the seed should change at least one pixel")
}

func TestInvalidArgsFailsClosed(t *testing.T) {
	a := config.Default()
	a.Width = 1
	_, err := Generate(a)
	assert.Error(t, err)
}

// scenario 6: large-width smoke test verifying seam equality pixel by
// pixel after a full run including one erosion sweep.
func TestSeamEqualityLargeWidth(t *testing.T) {
	a := config.Default()
	a.Width = 65
	a.ContinentCount = 5
	a.ErosionIterations = 1
	a.ErosionMaxLifetime = 30

	out, err := Generate(a)
	require.NoError(t, err)
	assertSeamsEqual(t, out)
}

func TestOutputAlwaysFiniteAndNormalized(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := config.Default()
		a.Width = rapid.IntRange(3, 9).Draw(rt, "width")
		a.FractalMainLayer = 1 // a layer every drawn width has
		a.ContinentCount = rapid.IntRange(1, 4).Draw(rt, "continents")
		a.ErosionIterations = rapid.IntRange(0, 1).Draw(rt, "erosion_iterations")

		out, err := Generate(a)
		if err != nil {
			rt.Fatalf("unexpected validation failure for %+v: %v", a, err)
		}
		for _, g := range out.Grids() {
			for _, v := range g.Data {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					rt.Fatalf("non-finite sample %v", v)
				}
				if v < 0 || v > 1 {
					rt.Fatalf("sample %v out of [0,1]", v)
				}
			}
		}
	})
}

// assertSeamsEqual walks every edge pixel on every face and checks it
// equals its counterpart across the seam, per spec.md §8's seam
// continuity property (exact after the final normalize only up to
// floating rounding, since normalize is a uniform affine rescale of
// values that were exactly equal beforehand).
//
// The partner pixel is located via cube.Position3D rather than by
// hand-encoding the face-adjacency rotation table a second time: two
// boundary pixels are "the same seam location" exactly when they embed to
// the same point on the unit cube, which is the physical property the
// invariant is actually about, and it is checkable without assuming
// anything about which rotationType internal/cube assigns to which edge.
func assertSeamsEqual(t *testing.T, out CubeSurface) {
	t.Helper()
	width := out.Width
	for _, face := range []Face{L, B, R, F, U, D} {
		for i := 0; i < width; i++ {
			checkSeamPixel(t, out, face, i, 0, width)
			checkSeamPixel(t, out, face, i, width-1, width)
			checkSeamPixel(t, out, face, 0, i, width)
			checkSeamPixel(t, out, face, width-1, i, width)
		}
	}
}

func checkSeamPixel(t *testing.T, out CubeSurface, face Face, x, y, width int) {
	t.Helper()
	max := width - 1
	if (x == 0 || x == max) && (y == 0 || y == max) {
		return // corners are resolved by three-way averaging, not pairwise equality
	}
	partnerFace, px, py, found := seamPartner(face, x, y, width)
	if !found {
		return
	}
	got := out.Face(face).At(x, y)
	want := out.Face(partnerFace).At(px, py)
	assert.InDelta(t, float64(want), float64(got), 1e-4,
		"seam mismatch at face %v (%d,%d) vs face %v (%d,%d)", face, x, y, partnerFace, px, py)
}

// seamPartner finds the boundary pixel on a different face whose
// Position3D coincides with (face, x, y)'s, i.e. the pixel physically
// duplicating this one across the seam. Brute-force over the other five
// faces' boundary rings; width is small enough in the tests exercising
// this that it costs nothing.
func seamPartner(face Face, x, y, width int) (Face, int, int, bool) {
	max := width - 1
	target := cube.Position3D(face, float64(x), float64(y), width)
	for _, other := range []Face{L, B, R, F, U, D} {
		if other == face {
			continue
		}
		for _, oy := range []int{0, max} {
			for ox := 0; ox < width; ox++ {
				if samePoint(target, cube.Position3D(other, float64(ox), float64(oy), width)) {
					return other, ox, oy, true
				}
			}
		}
		for _, ox := range []int{0, max} {
			for oy := 0; oy < width; oy++ {
				if samePoint(target, cube.Position3D(other, float64(ox), float64(oy), width)) {
					return other, ox, oy, true
				}
			}
		}
	}
	return face, 0, 0, false
}

func samePoint(a, b mgl64.Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X()-b.X()) < eps && math.Abs(a.Y()-b.Y()) < eps && math.Abs(a.Z()-b.Z()) < eps
}
