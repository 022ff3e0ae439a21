package cube

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNeighbors4Interior(t *testing.T) {
	width := 10
	c := Coord{F, 5, 5}
	ns := Neighbors4(c, width)
	for _, n := range ns {
		assert.Equal(t, F, n.Coord.Face)
		assert.Equal(t, Rot0, n.Rotation)
	}
}

func TestNeighbors4EdgeCrossesExactlyOne(t *testing.T) {
	width := 10
	c := Coord{F, 5, 0} // top edge of F
	ns := Neighbors4(c, width)
	crossings := 0
	for _, n := range ns {
		if n.Coord.Face != F {
			crossings++
		}
	}
	assert.Equal(t, 1, crossings)
}

func TestNeighbors4CornerCrossesExactlyTwo(t *testing.T) {
	width := 10
	c := Coord{F, 0, 0}
	ns := Neighbors4(c, width)
	crossings := 0
	for _, n := range ns {
		if n.Coord.Face != F {
			crossings++
		}
	}
	assert.Equal(t, 2, crossings)
}

// Every edge crossing must be reciprocal: if pixel p on face A lands on
// pixel q on face B, stepping back from q in the opposite direction must
// return to p.
func TestSeamReciprocity(t *testing.T) {
	width := 8
	opposite := map[direction]direction{
		dirNorth: dirSouth, dirSouth: dirNorth,
		dirEast: dirWest, dirWest: dirEast,
	}
	for _, face := range Faces {
		for pos := 0; pos < width; pos++ {
			edges := []struct {
				c Coord
				d direction
			}{
				{Coord{face, pos, 0}, dirNorth},
				{Coord{face, pos, width - 1}, dirSouth},
				{Coord{face, 0, pos}, dirWest},
				{Coord{face, width - 1, pos}, dirEast},
			}
			for _, e := range edges {
				ns := Neighbors4(e.c, width)
				var dest Neighbor
				for i, dd := range directionOrder {
					if dd == e.d {
						dest = ns[i]
					}
				}
				if dest.Coord.Face == face {
					continue // interior-looking direction at this position, skip
				}
				back := Neighbors4(dest.Coord, width)
				var ret Neighbor
				for i, dd := range directionOrder {
					if dd == opposite[e.d] {
						ret = back[i]
					}
				}
				assert.Equal(t, e.c, ret.Coord, "face %v edge %v pos %d did not round-trip", face, e.d, pos)
			}
		}
	}
}

func TestResolveCornerThreeFaces(t *testing.T) {
	width := 5
	taps := Resolve(F, -1, -1, width)
	assert.Len(t, taps, 3)
	sum := 0.0
	seen := map[Face]bool{}
	for _, tp := range taps {
		sum += tp.Weight
		seen[tp.Coord.Face] = true
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.True(t, seen[F])
}

func TestTransportVectorGroup(t *testing.T) {
	v := mgl64.Vec2{3, -2}
	r90 := TransportVector(v, Rot90)
	r180 := TransportVector(r90, Rot90)
	r270 := TransportVector(r180, Rot90)
	r360 := TransportVector(r270, Rot90)
	assert.InDelta(t, TransportVector(v, Rot180).X(), r180.X(), 1e-12)
	assert.InDelta(t, TransportVector(v, Rot270).X(), r270.X(), 1e-12)
	assert.InDelta(t, v.X(), r360.X(), 1e-12)
	assert.InDelta(t, v.Y(), r360.Y(), 1e-12)
}

func TestPosition3DSeamAgreement(t *testing.T) {
	width := 9
	// The F/U seam: F's north edge (y=0) coincides with U's south edge.
	for x := 0; x < width; x++ {
		pf := Position3D(F, float64(x), 0, width)
		n := Neighbors4(Coord{F, x, 0}, width)[0] // dirNorth is index 0
		pu := Position3D(n.Coord.Face, float64(n.Coord.X), float64(n.Coord.Y), width)
		assert.InDelta(t, pf.X(), pu.X(), 1e-9)
		assert.InDelta(t, pf.Y(), pu.Y(), 1e-9)
		assert.InDelta(t, pf.Z(), pu.Z(), 1e-9)
	}
}

func TestSampleBilinearInterior(t *testing.T) {
	width := 4
	h := NewCubeSurface[float64](width)
	h.F.Set(1, 1, 1.0)
	h.F.Set(2, 1, 1.0)
	h.F.Set(1, 2, 1.0)
	h.F.Set(2, 2, 1.0)
	v := SampleBilinear(h, F, 1.5, 1.5, width)
	assert.InDelta(t, 1.0, v, 1e-12)
}
