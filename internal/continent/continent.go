// Package continent implements the continent field (C3): multi-source
// randomized BFS partitioning, boundary and nearest-touching-continent
// extraction, and the drift-vector-driven elevation pass.
//
// Grounded on tw-backend/internal/worldgen/geography/heightmap.go's
// plate-elevation pass (base elevation accumulated per tectonic plate) and
// erosion.go's particle-loop style, adapted from that package's vertex-list
// plates onto this one's cube-surface flood fill.
package continent

import (
	"math"

	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"github.com/Rismosch/ris-terrain-generator/internal/rng"
	"github.com/go-gl/mathgl/mgl64"
)

// Continent is one partition of the cube surface: a seed pixel and a
// rotation axis fixed at creation, immutable thereafter.
type Continent struct {
	ID   int
	Seed cube.Coord
	Axis mgl64.Vec3
}

// Field holds the per-pixel partition, boundary flags, and nearest-touching
// continent data computed once per run.
type Field struct {
	Width      int
	Continents []Continent
	IDs        *cube.CubeSurface[int]
	Boundary   *cube.CubeSurface[bool]
	TouchID    *cube.CubeSurface[int]
	TouchDist  *cube.CubeSurface[int]
}

const unassigned = -1

// Build runs the full three-pass construction of §4.3: flood fill,
// boundary + nearest assignment, and axis sampling (the elevation pass
// itself is a separate call, Elevate, since the orchestrator normalizes
// between stages).
func Build(width, continentCount int, stream *rng.Stream) *Field {
	f := &Field{Width: width}
	f.floodFill(width, continentCount, stream.SubStream("continent:flood"))
	f.markBoundaryAndNearest(width)
	f.assignAxes(stream.SubStream("continent:axis"))
	return f
}

type queueItem struct {
	c  cube.Coord
	id int
}

func (f *Field) floodFill(width, continentCount int, stream *rng.Stream) {
	f.IDs = cube.NewCubeSurface[int](width)
	for _, g := range f.IDs.Grids() {
		for i := range g.Data {
			g.Data[i] = unassigned
		}
	}

	seedStream := stream.SubStream("seeds")
	used := make(map[cube.Coord]bool, continentCount)
	f.Continents = make([]Continent, continentCount)

	queue := make([]queueItem, 0, continentCount)
	for i := 0; i < continentCount; i++ {
		var c cube.Coord
		for {
			c = randomCoord(seedStream, width)
			if !used[c] {
				break
			}
		}
		used[c] = true
		f.Continents[i] = Continent{ID: i, Seed: c}
		queue = append(queue, queueItem{c, i})
	}

	orderStream := stream.SubStream("order")
	head := 0
	for head < len(queue) {
		item := queue[head]
		head++
		if f.IDs.At(item.c) != unassigned {
			continue
		}
		f.IDs.Set(item.c, item.id)

		neighbors := cube.Neighbors4(item.c, width)
		for _, idx := range randPerm4(orderStream) {
			n := neighbors[idx]
			if f.IDs.At(n.Coord) == unassigned {
				queue = append(queue, queueItem{n.Coord, item.id})
			}
		}
	}
}

func randomCoord(s *rng.Stream, width int) cube.Coord {
	face := cube.Faces[s.NextIntN(6)]
	return cube.Coord{Face: face, X: s.NextIntN(width), Y: s.NextIntN(width)}
}

// randPerm4 returns a deterministic Fisher-Yates shuffle of {0,1,2,3}
// drawn from s, used to randomize the BFS neighbor visitation order.
func randPerm4(s *rng.Stream) [4]int {
	p := [4]int{0, 1, 2, 3}
	for i := 3; i > 0; i-- {
		j := s.NextIntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

func (f *Field) markBoundaryAndNearest(width int) {
	f.Boundary = cube.NewCubeSurface[bool](width)
	f.TouchID = cube.NewCubeSurface[int](width)
	f.TouchDist = cube.NewCubeSurface[int](width)
	for _, g := range f.TouchID.Grids() {
		for i := range g.Data {
			g.Data[i] = unassigned
		}
	}
	for _, g := range f.TouchDist.Grids() {
		for i := range g.Data {
			g.Data[i] = -1
		}
	}

	queue := make([]cube.Coord, 0, width*width)
	for _, face := range cube.Faces {
		for y := 0; y < width; y++ {
			for x := 0; x < width; x++ {
				c := cube.Coord{Face: face, X: x, Y: y}
				own := f.IDs.At(c)
				neighbors := cube.Neighbors4(c, width)
				touching := unassigned
				for _, n := range neighbors {
					if nid := f.IDs.At(n.Coord); nid != own {
						touching = nid
						break
					}
				}
				if touching == unassigned {
					continue
				}
				f.Boundary.Set(c, true)
				f.TouchID.Set(c, touching)
				f.TouchDist.Set(c, 0)
				queue = append(queue, c)
			}
		}
	}

	head := 0
	for head < len(queue) {
		c := queue[head]
		head++
		d := f.TouchDist.At(c)
		id := f.TouchID.At(c)
		for _, n := range cube.Neighbors4(c, width) {
			if f.TouchDist.At(n.Coord) != -1 {
				continue
			}
			f.TouchDist.Set(n.Coord, d+1)
			f.TouchID.Set(n.Coord, id)
			queue = append(queue, n.Coord)
		}
	}
}

// assignAxes draws a uniform unit rotation axis per continent via
// Marsaglia's rejection method (decision recorded in SPEC_FULL.md §6),
// keyed by continent id so each axis is reproducible independent of draw
// order.
func (f *Field) assignAxes(stream *rng.Stream) {
	for i := range f.Continents {
		s := stream.SubStreamIndexed("axis", uint64(i))
		f.Continents[i].Axis = randomUnitVector(s)
	}
}

func randomUnitVector(s *rng.Stream) mgl64.Vec3 {
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
