// Package terrain is the public facade for the planetary heightmap core
// (spec.md §6): a single Generate entry point taking an Args configuration
// and returning six face grids, normalized to [0,1], in the canonical
// L, B, R, F, U, D order.
//
// Everything under internal/ is an implementation detail; this package is
// the only one external callers (a CLI, a renderer, a save-format writer)
// should depend on, matching how tw-backend/internal/worldgen/orchestrator
// exposes one Service behind which geography/weather/minerals/evolution
// all live unexported.
package terrain

import (
	"github.com/Rismosch/ris-terrain-generator/config"
	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"github.com/Rismosch/ris-terrain-generator/internal/generator"
)

// Args configures one Generate call. It is an alias of config.Args so
// callers can depend on either package path interchangeably; config also
// exposes Default, Preset, and the file loaders.
type Args = config.Args

// Face identifies one of the six cube faces, in the canonical output
// order L, B, R, F, U, D.
type Face = cube.Face

// The six canonical face identifiers.
const (
	L = cube.L
	B = cube.B
	R = cube.R
	F = cube.F
	U = cube.U
	D = cube.D
)

// FaceGrid is a dense width x width array of normalized height samples,
// row-major with index x + y*width.
type FaceGrid struct {
	Width int
	Data  []float32
}

// At returns the sample at (x, y).
func (g FaceGrid) At(x, y int) float32 {
	return g.Data[x+y*g.Width]
}

// CubeSurface is the six FaceGrids of one Generate call, in canonical
// L, B, R, F, U, D order.
type CubeSurface struct {
	Width            int
	L, B, R, F, U, D FaceGrid
}

// Face returns the grid for the given face identifier.
func (s CubeSurface) Face(face Face) FaceGrid {
	switch face {
	case L:
		return s.L
	case B:
		return s.B
	case R:
		return s.R
	case F:
		return s.F
	case U:
		return s.U
	default: // D
		return s.D
	}
}

// Grids returns every face grid in canonical order.
func (s CubeSurface) Grids() [6]FaceGrid {
	return [6]FaceGrid{s.L, s.B, s.R, s.F, s.U, s.D}
}

// Generate runs the full pipeline (spec.md §2, §4.7) for a and returns the
// six resulting face grids. a is validated first; an invalid Args fails
// immediately with an *errs.Aggregate holding one *errs.InvalidArgument
// per violated field, and no generation work is performed, per spec.md §7.
func Generate(a Args) (CubeSurface, error) {
	if err := a.Validate(); err != nil {
		return CubeSurface{}, err
	}
	h := generator.Generate(a)
	return toFloat32(h), nil
}

func toFloat32(h *cube.CubeSurface[float64]) CubeSurface {
	out := CubeSurface{Width: h.Width}
	for _, face := range cube.Faces {
		*out.faceSlot(face) = convertGrid(h.Face(face))
	}
	return out
}

func (s *CubeSurface) faceSlot(face Face) *FaceGrid {
	switch face {
	case L:
		return &s.L
	case B:
		return &s.B
	case R:
		return &s.R
	case F:
		return &s.F
	case U:
		return &s.U
	default: // D
		return &s.D
	}
}

func convertGrid(g *cube.FaceGrid[float64]) FaceGrid {
	data := make([]float32, len(g.Data))
	for i, v := range g.Data {
		data[i] = float32(v)
	}
	return FaceGrid{Width: g.Width, Data: data}
}
