package continent

import (
	"math"

	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Elevate accumulates the drift-vector elevation pass into h, per §4.3(c).
// h is expected to be freshly allocated (zeroed) before this call; the
// orchestrator normalizes afterward.
func (f *Field) Elevate(h *cube.CubeSurface[float64], kernelRadius int) {
	sigma := float64(kernelRadius) / 2
	for _, face := range cube.Faces {
		for y := 0; y < f.Width; y++ {
			for x := 0; x < f.Width; x++ {
				c := cube.Coord{Face: face, X: x, Y: y}
				contribution := f.pixelContribution(c, sigma)
				h.Face(face).Set(x, y, h.Face(face).At(x, y)+contribution)
			}
		}
	}
}

func (f *Field) pixelContribution(c cube.Coord, sigma float64) float64 {
	dist := f.TouchDist.At(c)
	touching := f.TouchID.At(c)
	if touching == unassigned {
		return 0
	}

	ownID := f.IDs.At(c)
	pos := cube.Position3D(c.Face, float64(c.X), float64(c.Y), f.Width)

	ownDrift := tangentProjection(f.Continents[ownID].Axis, pos, c.Face)
	touchingDrift := tangentProjection(f.Continents[touching].Axis, pos, c.Face)
	relativeVec := touchingDrift.Sub(ownDrift)

	toward := towardBoundary(f.TouchDist, c, f.Width)
	if toward.Len() == 0 {
		return 0
	}
	toward = toward.Normalize()

	relative := relativeVec.Dot(toward)
	magnitude := -relative
	kernel := math.Exp(-float64(dist*dist) / (2 * sigma * sigma))
	return magnitude * kernel
}

// tangentProjection computes axis x position, projected onto the face's
// local 2D tangent basis.
func tangentProjection(axis, pos mgl64.Vec3, face cube.Face) mgl64.Vec2 {
	drift := axis.Cross(pos)
	ex, ey := faceBasis(face)
	return mgl64.Vec2{drift.Dot(ex), drift.Dot(ey)}
}

func faceBasis(face cube.Face) (ex, ey mgl64.Vec3) {
	switch face {
	case cube.F:
		return mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, -1, 0}
	case cube.B:
		return mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, -1, 0}
	case cube.L:
		return mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, -1, 0}
	case cube.R:
		return mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, -1, 0}
	case cube.U:
		return mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}
	default: // cube.D
		return mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}
	}
}

// towardBoundary approximates, via central differences of the distance
// field, the local 2-vector pointing from c toward decreasing distance to
// the nearest continent boundary.
func towardBoundary(dist *cube.CubeSurface[int], c cube.Coord, width int) mgl64.Vec2 {
	n := cube.Neighbors4(c, width)
	dNorth := float64(dist.At(n[0].Coord))
	dSouth := float64(dist.At(n[1].Coord))
	dEast := float64(dist.At(n[2].Coord))
	dWest := float64(dist.At(n[3].Coord))
	gradX := (dEast - dWest) / 2
	gradY := (dSouth - dNorth) / 2
	return mgl64.Vec2{-gradX, -gradY}
}
