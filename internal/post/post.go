// Package post implements the post-processing stage (C6): the
// min/max normalize pass run after every stage, and the monotonic
// weighting reshape run once between the fractal and erosion stages.
package post

import (
	"math"

	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"gonum.org/v1/gonum/floats"
)

// Normalize rescales h in place to [0,1] via H <- (H-mi)/(ma-mi), using a
// fixed left-to-right reduction over the canonical face order so the
// result is identical regardless of how the caller parallelized the stage
// that produced h (§9's floating-point determinism note). If ma == mi, h
// is left unchanged.
func Normalize(h *cube.CubeSurface[float64]) {
	mi, ma := minMax(h)
	if ma == mi {
		return
	}
	span := ma - mi
	for _, g := range h.Grids() {
		for i, v := range g.Data {
			g.Data[i] = (v - mi) / span
		}
	}
}

// minMax computes the min and max over all six faces using gonum's
// reduction over each face's row-major data in canonical face order, then
// folds the six per-face results together in that same fixed order.
func minMax(h *cube.CubeSurface[float64]) (float64, float64) {
	mi := math.Inf(1)
	ma := math.Inf(-1)
	for _, g := range h.Grids() {
		if len(g.Data) == 0 {
			continue
		}
		mi = math.Min(mi, floats.Min(g.Data))
		ma = math.Max(ma, floats.Max(g.Data))
	}
	return mi, ma
}

// Weight applies the monotonic CDF-reshaping function w(x) = x^gamma in
// place, pushing mass toward low elevations. Inputs are assumed already
// normalized to [0,1]; gamma is the Args.WeightGamma config value.
func Weight(h *cube.CubeSurface[float64], gamma float64) {
	for _, g := range h.Grids() {
		for i, v := range g.Data {
			g.Data[i] = math.Pow(clamp01(v), gamma)
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
