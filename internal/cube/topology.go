package cube

import "github.com/go-gl/mathgl/mgl64"

// Neighbor is one of the (at most) four axis-aligned neighbors of a pixel,
// tagged with the rotation a local 2-vector must undergo to be interpreted
// in the neighbor's frame.
type Neighbor struct {
	Coord    Coord
	Rotation Rotation
}

type direction int

const (
	dirNorth direction = iota
	dirSouth
	dirEast
	dirWest
)

var directionOrder = [4]direction{dirNorth, dirSouth, dirEast, dirWest}

func (d direction) delta() (dx, dy int) {
	switch d {
	case dirNorth:
		return 0, -1
	case dirSouth:
		return 0, 1
	case dirEast:
		return 1, 0
	default: // dirWest
		return -1, 0
	}
}

// Neighbors4 returns the four axis-aligned neighbors of c in North, South,
// East, West order. Interior pixels yield all four with Rot0. An edge pixel
// has exactly one neighbor crossing a seam; a corner pixel has exactly two,
// and the absent diagonal neighbor is never produced, matching §4.2.
func Neighbors4(c Coord, width int) [4]Neighbor {
	var out [4]Neighbor
	for i, d := range directionOrder {
		dx, dy := d.delta()
		x, y := c.X+dx, c.Y+dy
		if inRange(x, width) && inRange(y, width) {
			out[i] = Neighbor{Coord{c.Face, x, y}, Rot0}
			continue
		}
		f2, x2, y2, rot := crossSeam(c.Face, x, y, width)
		out[i] = Neighbor{Coord{f2, x2, y2}, rot}
	}
	return out
}

func inRange(v, width int) bool {
	return v >= 0 && v < width
}

// crossSeam resolves a coordinate that is out of range on exactly one axis,
// walking exactly one seam. depth is how many pixels past the edge the
// coordinate sits (0 = the first pixel past the boundary), so a single call
// also serves kernel taps that overshoot a face by more than one pixel.
func crossSeam(face Face, x, y, width int) (Face, int, int, Rotation) {
	max := width - 1
	var e edge
	var edgePos, depth int

	switch {
	case y < 0:
		e, edgePos, depth = edgeNorth, x, -y-1
	case y >= width:
		e, edgePos, depth = edgeSouth, x, y-width
	case x >= width:
		e, edgePos, depth = edgeEast, y, x-width
	default: // x < 0
		e, edgePos, depth = edgeWest, y, -x-1
	}

	tr := connections[face][e]
	tx, ty := enter(e, tr.rotationType, edgePos, depth, max)
	return tr.target, tx, ty, Rotation(tr.rotationType * 90)
}

// enter maps (edgePos, depth) on source edge e, under the given quarter
// rotation, to target-face coordinates. depth 0 lands on the target face's
// entry edge, as tw-backend/internal/spatial.transformCoordinate's depth-0
// case does (with the quarter-turn branches corrected, see enterF);
// depth > 0 extends inward along the entry edge's perpendicular axis, which
// the original tile topology never needed since it only ever stepped one
// pixel past a boundary.
func enter(e edge, rotationType, edgePos, depth, max int) (int, int) {
	x, y := enterF(e, rotationType, float64(edgePos), float64(depth), float64(max))
	return int(x), int(y)
}

// enterF is the float64 form of enter, shared by the discrete (pixel)
// seam crossing used for neighbor/kernel lookups and the continuous
// (sub-pixel) crossing used to transport erosion droplets.
//
// Each rotationType is a proper quarter turn of the target face relative
// to the source face (0/90/180/270, matching Rotation/TransportVector):
// rotationType 0 enters the target's opposite edge with edgePos carried
// straight across; rotationType 2 (180 degrees) always re-enters the same
// edge type with edgePos mirrored; rotationType 1 and 3 (90 and 270
// degrees) rotate the entry edge a quarter turn and mirror edgePos on
// exactly the two branches (of the four source edges) where that turn
// does not already land it straight across.
func enterF(e edge, rotationType int, edgePos, depth, max float64) (float64, float64) {
	switch rotationType {
	case 0:
		switch e {
		case edgeNorth:
			return edgePos, max - depth
		case edgeSouth:
			return edgePos, depth
		case edgeEast:
			return depth, edgePos
		default: // edgeWest
			return max - depth, edgePos
		}
	case 1:
		switch e {
		case edgeNorth:
			return depth, edgePos
		case edgeSouth:
			return max - depth, edgePos
		case edgeEast:
			return max - edgePos, depth
		default: // edgeWest
			return max - edgePos, max - depth
		}
	case 2:
		switch e {
		case edgeNorth:
			return max - edgePos, depth
		case edgeSouth:
			return max - edgePos, max - depth
		case edgeEast:
			return max - depth, max - edgePos
		default:
			return depth, max - edgePos
		}
	default: // 3
		switch e {
		case edgeNorth:
			return max - depth, max - edgePos
		case edgeSouth:
			return depth, max - edgePos
		case edgeEast:
			return edgePos, max - depth
		default: // edgeWest
			return edgePos, depth
		}
	}
}

// CrossSeamContinuous resolves a sub-pixel droplet position that is out of
// range on exactly one axis, walking exactly one seam and rotating its
// direction vector accordingly (§4.5 step 3). Positions within [0,width-1]
// on the in-range axis are preserved exactly; depth 0 sits exactly on the
// boundary, matching the continuous coordinate convention (unlike the
// discrete neighbor/kernel crossing, which treats depth 0 as one full
// pixel past the boundary).
func CrossSeamContinuous(face Face, x, y float64, width int) (Face, float64, float64, Rotation) {
	max := float64(width - 1)
	var e edge
	var edgePos, depth float64

	switch {
	case y < 0:
		e, edgePos, depth = edgeNorth, x, -y
	case y > max:
		e, edgePos, depth = edgeSouth, x, y-max
	case x > max:
		e, edgePos, depth = edgeEast, y, x-max
	default: // x < 0
		e, edgePos, depth = edgeWest, y, -x
	}

	tr := connections[face][e]
	tx, ty := enterF(e, tr.rotationType, edgePos, depth, max)
	return tr.target, tx, ty, Rotation(tr.rotationType * 90)
}

// Tap is one weighted source pixel contributing to a resolved sample.
type Tap struct {
	Coord  Coord
	Weight float64
}

// Resolve maps a possibly off-face integer coordinate to one or more
// weighted taps: a single tap with weight 1 when in range, a single
// rotated-seam tap when exactly one axis is out of range (recursing to
// walk multiple seams if the depth itself overshoots the next face), or
// three equal-weight taps — the pixels of the three faces meeting at that
// corner — when both axes are out of range at once. Per §4.2 and §4.4 the
// latter is also how the eight singular cube corners are identified.
func Resolve(face Face, x, y, width int) []Tap {
	inX, inY := inRange(x, width), inRange(y, width)
	if inX && inY {
		return []Tap{{Coord{face, x, y}, 1}}
	}
	if !inX && !inY {
		return resolveCorner(face, x, y, width)
	}
	f2, x2, y2, _ := crossSeam(face, x, y, width)
	return Resolve(f2, x2, y2, width)
}

// resolveCorner returns the three-way equal-weight corner resolution.
// Any tap off-face on both axes at once collapses to the exact corner
// average, which slightly blurs erosion-kernel taps that overshoot a face
// diagonally by more than one pixel without reaching the true corner; an
// acceptable simplification given the kernel's small fixed radius.
func resolveCorner(face Face, x, y, width int) []Tap {
	xSide, ySide := -1, -1
	if x >= width {
		xSide = 1
	}
	if y >= width {
		ySide = 1
	}
	group := cornerGroup(face, xSide, ySide)
	taps := make([]Tap, len(group))
	for i, c := range group {
		cx, cy := 0, 0
		if c.xSide == 1 {
			cx = width - 1
		}
		if c.ySide == 1 {
			cy = width - 1
		}
		taps[i] = Tap{Coord{c.face, cx, cy}, 1.0 / float64(len(group))}
	}
	return taps
}

// SeamGroup returns every grid cell that stores the same physical point as
// (face, x, y): itself alone for an interior pixel, itself plus one
// partner for an edge pixel, or itself plus two partners for a corner.
// FaceGrid gives each (face, x, y) triple its own storage cell, so a
// boundary point that two or three faces meet at is duplicated across
// their grids; this is the partner-finding half of that duplication,
// reusing crossSeam/cornerGroup instead of searching by 3-space position.
func SeamGroup(face Face, x, y, width int) []Coord {
	max := width - 1
	onX := x == 0 || x == max
	onY := y == 0 || y == max

	switch {
	case onX && onY:
		xSide, ySide := -1, -1
		if x == max {
			xSide = 1
		}
		if y == max {
			ySide = 1
		}
		group := cornerGroup(face, xSide, ySide)
		out := make([]Coord, len(group))
		for i, c := range group {
			cx, cy := 0, 0
			if c.xSide == 1 {
				cx = max
			}
			if c.ySide == 1 {
				cy = max
			}
			out[i] = Coord{c.face, cx, cy}
		}
		return out
	case onX || onY:
		dx, dy := 0, 0
		switch {
		case x == 0:
			dx = -1
		case x == max:
			dx = 1
		case y == 0:
			dy = -1
		default:
			dy = 1
		}
		f2, x2, y2, _ := crossSeam(face, x+dx, y+dy, width)
		return []Coord{{face, x, y}, {f2, x2, y2}}
	default:
		return []Coord{{face, x, y}}
	}
}

// SyncSeams averages every boundary cell of h together with its seam
// partner(s) from SeamGroup and writes the average back to every member of
// the group. A stage that splats values onto one face independently of its
// neighbor (continent elevation's drift splat, erosion's deposit/erode
// splat) leaves duplicated seam cells disagreeing; this brings them back
// into agreement before the next stage reads h, which §8's seam-continuity
// property requires.
func SyncSeams(h *CubeSurface[float64]) {
	width := h.Width
	visited := make(map[Coord]bool, 4*width*len(Faces))

	for _, face := range Faces {
		for i := 0; i < width; i++ {
			syncSeamGroup(h, visited, face, i, 0, width)
			syncSeamGroup(h, visited, face, i, width-1, width)
			syncSeamGroup(h, visited, face, 0, i, width)
			syncSeamGroup(h, visited, face, width-1, i, width)
		}
	}
}

func syncSeamGroup(h *CubeSurface[float64], visited map[Coord]bool, face Face, x, y, width int) {
	c := Coord{face, x, y}
	if visited[c] {
		return
	}
	group := SeamGroup(face, x, y, width)

	var sum float64
	for _, g := range group {
		sum += h.At(g)
	}
	avg := sum / float64(len(group))

	for _, g := range group {
		h.Set(g, avg)
		visited[g] = true
	}
}

// SampleBilinear samples h at a continuous face position via bilinear
// interpolation over the four nearest lattice taps, resolving any tap that
// falls outside the face through Resolve.
func SampleBilinear(h *CubeSurface[float64], face Face, fx, fy float64, width int) float64 {
	x0 := int(floor(fx))
	y0 := int(floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	v00 := Sample(h, face, x0, y0, width)
	v10 := Sample(h, face, x0+1, y0, width)
	v01 := Sample(h, face, x0, y0+1, width)
	v11 := Sample(h, face, x0+1, y0+1, width)

	top := v00*(1-tx) + v10*tx
	bottom := v01*(1-tx) + v11*tx
	return top*(1-ty) + bottom*ty
}

// Sample reads a possibly off-face integer grid coordinate, resolving it
// through Resolve. Exported for callers (e.g. erosion's gradient taps)
// that need the individual corner values rather than
// the bilinear blend SampleBilinear produces.
func Sample(h *CubeSurface[float64], face Face, x, y, width int) float64 {
	var sum float64
	for _, tap := range Resolve(face, x, y, width) {
		sum += tap.Weight * h.At(tap.Coord)
	}
	return sum
}

func floor(v float64) float64 {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}

// TransportVector rotates a local 2-vector (x right, y down) by a multiple
// of 90 degrees, exactly, to carry it from one face frame into a neighbor's
// after crossing a seam.
func TransportVector(v mgl64.Vec2, rot Rotation) mgl64.Vec2 {
	switch rot {
	case Rot90:
		return mgl64.Vec2{-v.Y(), v.X()}
	case Rot180:
		return mgl64.Vec2{-v.X(), -v.Y()}
	case Rot270:
		return mgl64.Vec2{v.Y(), -v.X()}
	default:
		return v
	}
}

// Position3D maps a lattice point (which may be a real-valued position,
// not just an integer pixel) on a face into its position on the unit cube
// in 3-space, using the endpoint-inclusive mapping u,v = -1..1 across
// [0, width-1] so that positions on two faces meeting at a physical edge
// land on exactly the same 3-space point — the mechanism §4.4 requires for
// seam-consistent noise, grounded on tw-backend's ToSphere face embedding
// (kept un-normalized here since C3's drift algebra is specified on the
// raw cube, not its spherical projection).
func Position3D(face Face, fx, fy float64, width int) mgl64.Vec3 {
	u := fx/float64(width-1)*2 - 1
	v := fy/float64(width-1)*2 - 1
	switch face {
	case F:
		return mgl64.Vec3{u, -v, 1}
	case B:
		return mgl64.Vec3{-u, -v, -1}
	case L:
		return mgl64.Vec3{-1, -v, u}
	case R:
		return mgl64.Vec3{1, -v, -u}
	case U:
		return mgl64.Vec3{u, 1, v}
	default: // D
		return mgl64.Vec3{u, -1, -v}
	}
}

type faceCorner struct {
	face         Face
	xSide, ySide int
}

// cornerGroups partitions the 6*4 = 24 face corners into the 8 physical
// cube corners, each shared by exactly 3 faces, computed once from
// Position3D's face embedding rather than hand-enumerated.
var cornerGroups = buildCornerGroups()

func buildCornerGroups() map[[3]int][]faceCorner {
	groups := make(map[[3]int][]faceCorner)
	for _, f := range Faces {
		for _, xSide := range [2]int{-1, 1} {
			for _, ySide := range [2]int{-1, 1} {
				p := Position3D(f, sideToCoord(xSide), sideToCoord(ySide), 2)
				key := [3]int{signOf(p.X()), signOf(p.Y()), signOf(p.Z())}
				groups[key] = append(groups[key], faceCorner{f, xSide, ySide})
			}
		}
	}
	return groups
}

func sideToCoord(side int) float64 {
	if side == 1 {
		return 1
	}
	return 0
}

func signOf(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

func cornerGroup(face Face, xSide, ySide int) []faceCorner {
	p := Position3D(face, sideToCoord(xSide), sideToCoord(ySide), 2)
	key := [3]int{signOf(p.X()), signOf(p.Y()), signOf(p.Z())}
	return cornerGroups[key]
}
