// Package cube implements the cube-surface coordinate algebra (C2): the
// single primitive shared by the continent, noise, and erosion stages for
// resolving neighborhoods, seam crossings, and local-frame rotations across
// the six faces of the unfolded cube.
//
// Grounded on tw-backend/internal/spatial/cube_sphere.go's face-adjacency
// table, generalized here to carry rotation through multi-pixel seam depth
// (needed by bilinear sampling and the erosion kernel) and extended with an
// exact three-face corner resolution the teacher's tile topology never
// needed.
package cube

// Face identifies one of the six cube faces. The ordering matches the
// canonical output order L, B, R, F, U, D.
type Face int

const (
	L Face = iota
	B
	R
	F
	U
	D
)

// Faces lists every face in canonical order.
var Faces = [6]Face{L, B, R, F, U, D}

func (f Face) String() string {
	switch f {
	case L:
		return "L"
	case B:
		return "B"
	case R:
		return "R"
	case F:
		return "F"
	case U:
		return "U"
	case D:
		return "D"
	default:
		return "?"
	}
}

// Coord identifies a single pixel on the cube surface.
type Coord struct {
	Face Face
	X, Y int
}

// Rotation is the angle, in degrees, applied to a local 2-vector when it is
// carried from one face's frame into a neighbor's frame across a seam.
type Rotation int

const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// edge identifies one of a face's four sides in its own local frame.
type edge int

const (
	edgeNorth edge = iota // y = 0
	edgeSouth             // y = width-1
	edgeEast              // x = width-1
	edgeWest              // x = 0
)

// transition describes what crossing a given edge of a given face does:
// which face is entered, and what rotation a local 2-vector undergoes.
type transition struct {
	target       Face
	rotationType int // 0..3, quarter turns
}

// connections[face][edge] is the static seam table, the cube-surface
// analogue of tw-backend's faceConnections, remapped from that repo's
// Front/Back/Left/Right/Top/Bottom naming onto this one's F/B/L/R/U/D
// (the two name the same cube, so the transition table carries over
// directly under the renaming), with the four L/R/U/D cross-edges
// (L-U, R-U, L-D, R-D) corrected against Position3D's embedding: the
// teacher's own transformCoordinate assigns rotationType 1 and 3
// inconsistently across those four edges (verified by checking that
// crossing a seam and mapping through Position3D lands on the same
// 3-space point it started from), so the two types are swapped there
// relative to the teacher's table.
var connections = [6][4]transition{
	L: {
		edgeNorth: {U, 1},
		edgeSouth: {D, 3},
		edgeEast:  {F, 0},
		edgeWest:  {B, 0},
	},
	B: {
		edgeNorth: {U, 2},
		edgeSouth: {D, 2},
		edgeEast:  {L, 0},
		edgeWest:  {R, 0},
	},
	R: {
		edgeNorth: {U, 3},
		edgeSouth: {D, 1},
		edgeEast:  {B, 0},
		edgeWest:  {F, 0},
	},
	F: {
		edgeNorth: {U, 0},
		edgeSouth: {D, 0},
		edgeEast:  {R, 0},
		edgeWest:  {L, 0},
	},
	U: {
		edgeNorth: {B, 2},
		edgeSouth: {F, 0},
		edgeEast:  {R, 1},
		edgeWest:  {L, 3},
	},
	D: {
		edgeNorth: {F, 0},
		edgeSouth: {B, 2},
		edgeEast:  {R, 3},
		edgeWest:  {L, 1},
	},
}
