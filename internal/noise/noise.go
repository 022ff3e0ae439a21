// Package noise implements the seamless fractal Perlin noise stage (C4):
// classical 3D gradient noise evaluated at cube-surface positions mapped
// into 3-space, so that samples taken on either side of a face seam land
// on the identical lattice and agree exactly.
//
// Grounded in structure on tw-backend/internal/worldgen/geography/
// heightmap.go's octave-weighted noise sum ("Multiple octaves of noise
// using sphere position"); the lattice and gradient hashing themselves are
// a fresh implementation, since the teacher's go-perlin dependency cannot
// be keyed by this repo's own PRNG or special-cased at the cube corners
// (see SPEC_FULL.md's DOMAIN STACK section).
package noise

import (
	"math"

	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"github.com/Rismosch/ris-terrain-generator/internal/rng"
	"github.com/go-gl/mathgl/mgl64"
)

// Field is one fractal noise generator: a fixed gradient stream plus the
// octave weighting parameters from Args.
type Field struct {
	stream    *rng.Stream
	octaves   int
	mainLayer int
	alpha     float64
}

// New builds a Field. width determines the octave count (§4.4: the
// smallest count such that the highest-frequency lattice cell is <= 1
// pixel wide).
func New(stream *rng.Stream, width, mainLayer int, alpha float64) *Field {
	return &Field{
		stream:    stream.SubStream("noise"),
		octaves:   OctaveCount(width),
		mainLayer: mainLayer,
		alpha:     alpha,
	}
}

// OctaveCount returns ceil(log2(width)).
func OctaveCount(width int) int {
	return int(math.Ceil(math.Log2(float64(width))))
}

// Sample evaluates the fractal sum F(p) at a cube-surface position.
func (f *Field) Sample(face cube.Face, fx, fy float64, width int) float64 {
	p := cube.Position3D(face, fx, fy, width)
	var sum float64
	for o := 0; o < f.octaves; o++ {
		scale := math.Exp2(float64(o))
		q := p.Mul(scale)
		n := f.lattice(q, o)

		w := math.Pow(f.alpha, math.Abs(float64(o-f.mainLayer)))
		if o == f.mainLayer {
			w = 1
		}
		sum += w * n
	}
	return sum
}

// lattice evaluates classical gradient noise at q within octave o's
// lattice, whose spacing is 1 (q already carries the per-octave frequency
// scale applied by Sample).
func (f *Field) lattice(q mgl64.Vec3, octave int) float64 {
	i0, j0, k0 := int(math.Floor(q.X())), int(math.Floor(q.Y())), int(math.Floor(q.Z()))
	tx, ty, tz := q.X()-float64(i0), q.Y()-float64(j0), q.Z()-float64(k0)

	var corners [8]float64
	n := 0
	for di := 0; di <= 1; di++ {
		for dj := 0; dj <= 1; dj++ {
			for dk := 0; dk <= 1; dk++ {
				i, j, k := i0+di, j0+dj, k0+dk
				g := f.gradient(i, j, k, octave)
				d := mgl64.Vec3{q.X() - float64(i), q.Y() - float64(j), q.Z() - float64(k)}
				corners[n] = g.Dot(d)
				n++
			}
		}
	}

	u, v, w := fade(tx), fade(ty), fade(tz)
	// corners are ordered (di,dj,dk) with dk fastest-varying, matching the
	// loop above: index = di*4 + dj*2 + dk.
	x00 := lerp(corners[0], corners[1], w)
	x01 := lerp(corners[2], corners[3], w)
	x10 := lerp(corners[4], corners[5], w)
	x11 := lerp(corners[6], corners[7], w)
	y0 := lerp(x00, x01, v)
	y1 := lerp(x10, x11, v)
	return lerp(y0, y1, u)
}

// gradient returns the pseudorandom unit gradient vector at lattice point
// (i,j,k) of the given octave, except at the eight points coincident with
// a cube corner, where §4.4 defines the gradient as the zero vector (the
// hairy-ball degeneracy).
func (f *Field) gradient(i, j, k, octave int) mgl64.Vec3 {
	scale := int(math.Round(math.Exp2(float64(octave))))
	if abs(i) == scale && abs(j) == scale && abs(k) == scale {
		return mgl64.Vec3{0, 0, 0}
	}
	s := f.stream.SubStreamIndexed("gradient", zigzag(i), zigzag(j), zigzag(k), uint64(octave))
	return randomUnitVector3(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func zigzag(v int) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// randomUnitVector3 draws a uniform point on the 2-sphere via Marsaglia's
// rejection method, the same construction used for continent axes.
func randomUnitVector3(s *rng.Stream) mgl64.Vec3 {
	for {
		x1 := 2*s.NextFloat64() - 1
		x2 := 2*s.NextFloat64() - 1
		d := x1*x1 + x2*x2
		if d >= 1 {
			continue
		}
		sq := math.Sqrt(1 - d)
		return mgl64.Vec3{2 * x1 * sq, 2 * x2 * sq, 1 - 2*d}
	}
}
