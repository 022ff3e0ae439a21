// Package erosion implements the hydraulic erosion stage (C5): a
// particle-based droplet simulator adapted from the well-known
// compute-shader algorithm, extended so that droplets, gradients, and
// deposition/erosion kernels are transported across cube-surface seams
// with correct orientation.
//
// Grounded on tw-backend/internal/worldgen/geography/erosion.go's
// ApplyHydraulicErosion (speed/volume/sediment droplet loop, capacity from
// velocity and height delta, deposit-if-uphill-or-over-capacity /
// erode-otherwise branch) generalized from that package's flat width x
// height grid onto the cube surface via internal/cube, and from
// single-pixel erosion/deposit onto the §4.5 four-tap bilinear deposit and
// radial erosion kernel.
package erosion

import (
	"math"

	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"github.com/Rismosch/ris-terrain-generator/internal/rng"
)

// Params holds the subset of Args (spec.md §6) that configures one
// erosion run. Kept independent of the config package so this package has
// no dependency on it; config.Args converts to this via ToErosionParams.
type Params struct {
	Iterations             int
	MaxLifetime            int
	StartSpeed             float64
	StartWater             float64
	Inertia                float64
	MinSedimentCapacity    float64
	SedimentCapacityFactor float64
	ErodeSpeed             float64
	DepositSpeed           float64
	Gravity                float64
	EvaporateSpeed         float64
	Radius                 int
}

const waterEpsilon = 1e-4

// Simulate runs Params.Iterations full sweeps, one droplet per surface
// pixel per sweep, over h in place. Faces restricts which faces spawn
// droplets (the only_generate_first_face debug flag, §4.7); when nil, all
// six faces are used.
func Simulate(h *cube.CubeSurface[float64], p Params, width int, stream *rng.Stream, faces []cube.Face) {
	if faces == nil {
		faces = cube.Faces[:]
	}

	coords := make([]cube.Coord, 0, len(faces)*width*width)
	for _, face := range faces {
		for y := 0; y < width; y++ {
			for x := 0; x < width; x++ {
				coords = append(coords, cube.Coord{Face: face, X: x, Y: y})
			}
		}
	}

	orderStream := stream.SubStream("order")
	for iter := 0; iter < p.Iterations; iter++ {
		order := shuffledIndices(len(coords), orderStream.SubStreamIndexed("iteration", uint64(iter)))
		for _, idx := range order {
			simulateDroplet(h, p, width, coords[idx])
		}
	}
}

func shuffledIndices(n int, s *rng.Stream) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := s.NextIntN(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

type droplet struct {
	face       cube.Face
	x, y       float64
	dirX, dirY float64
	speed      float64
	water      float64
	sediment   float64
	lifetime   int
}

func simulateDroplet(h *cube.CubeSurface[float64], p Params, width int, start cube.Coord) {
	d := &droplet{
		face:  start.Face,
		x:     float64(start.X),
		y:     float64(start.Y),
		speed: p.StartSpeed,
		water: p.StartWater,
	}

	for {
		height, gradX, gradY := bilinearAndGradient(h, d.face, d.x, d.y, width)

		newDirX := d.dirX*p.Inertia - gradX*(1-p.Inertia)
		newDirY := d.dirY*p.Inertia - gradY*(1-p.Inertia)
		length := math.Hypot(newDirX, newDirY)
		if length == 0 {
			return
		}
		newDirX /= length
		newDirY /= length

		newFace, newX, newY, corner := step(d.face, d.x+newDirX, d.y+newDirY, width)
		if corner {
			depositBilinear(h, d.face, d.x, d.y, width, d.sediment)
			return
		}
		if newFace != d.face {
			rot := seamRotation(d.face, d.x+newDirX, d.y+newDirY, width)
			newDirX, newDirY = rotateVector(newDirX, newDirY, rot)
		}

		newHeight, _, _ := bilinearAndGradient(h, newFace, newX, newY, width)
		deltaH := newHeight - height

		capacity := math.Max(-deltaH*d.speed*d.water*p.SedimentCapacityFactor, p.MinSedimentCapacity)

		if d.sediment > capacity || deltaH > 0 {
			var amount float64
			if deltaH > 0 {
				amount = math.Min(d.sediment-capacity, deltaH)
			} else {
				amount = (d.sediment - capacity) * p.DepositSpeed
			}
			amount = math.Max(amount, 0)
			d.sediment -= amount
			depositBilinear(h, d.face, d.x, d.y, width, amount)
		} else {
			amount := math.Min((capacity-d.sediment)*p.ErodeSpeed, -deltaH)
			amount = math.Max(amount, 0)
			d.sediment += amount
			erodeKernel(h, d.face, d.x, d.y, width, p.Radius, amount)
		}

		d.speed = math.Sqrt(math.Max(0, d.speed*d.speed+deltaH*(-p.Gravity)))
		d.water *= 1 - p.EvaporateSpeed

		d.face, d.x, d.y, d.dirX, d.dirY = newFace, newX, newY, newDirX, newDirY
		d.lifetime++

		if d.lifetime >= p.MaxLifetime || d.water <= waterEpsilon {
			return
		}
	}
}

// bilinearAndGradient returns both the bilinear height and its gradient at
// (fx, fy) in one pass, since both are needed at every droplet step.
func bilinearAndGradient(h *cube.CubeSurface[float64], face cube.Face, fx, fy float64, width int) (height, gradX, gradY float64) {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	nw := cube.Sample(h, face, x0, y0, width)
	ne := cube.Sample(h, face, x0+1, y0, width)
	sw := cube.Sample(h, face, x0, y0+1, width)
	se := cube.Sample(h, face, x0+1, y0+1, width)

	height = nw*(1-tx)*(1-ty) + ne*tx*(1-ty) + sw*(1-tx)*ty + se*tx*ty
	gradX = (ne-nw)*(1-ty) + (se-sw)*ty
	gradY = (sw-nw)*(1-tx) + (se-ne)*tx
	return
}

// step resolves the droplet's next continuous position, reporting whether
// it attempted to cross onto a cube corner (both axes out of range at
// once), which terminates the droplet per SPEC_FULL.md's open-question
// decision.
func step(face cube.Face, x, y float64, width int) (newFace cube.Face, newX, newY float64, corner bool) {
	max := float64(width - 1)
	outX := x < 0 || x > max
	outY := y < 0 || y > max
	if !outX && !outY {
		return face, x, y, false
	}
	if outX && outY {
		return face, x, y, true
	}
	newFace, newX, newY, _ = cube.CrossSeamContinuous(face, x, y, width)
	return newFace, newX, newY, false
}

func seamRotation(face cube.Face, x, y float64, width int) cube.Rotation {
	_, _, _, rot := cube.CrossSeamContinuous(face, x, y, width)
	return rot
}

func rotateVector(x, y float64, rot cube.Rotation) (float64, float64) {
	switch rot {
	case cube.Rot90:
		return -y, x
	case cube.Rot180:
		return -x, -y
	case cube.Rot270:
		return y, -x
	default:
		return x, y
	}
}

// depositBilinear distributes amount onto the four bilinear source weights
// at (fx, fy), per §4.5 step 6 ("distributed only to the four source
// bilinear weights at the old position"), resolving each corner across a
// seam if needed. Each tap writes one storage cell only, so a duplicated
// edge pixel's partner on the neighbouring face is not updated here; the
// orchestrator reconciles the two with cube.SyncSeams.
func depositBilinear(h *cube.CubeSurface[float64], face cube.Face, fx, fy float64, width int, amount float64) {
	if amount == 0 {
		return
	}
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	addWeighted(h, face, x0, y0, width, amount*(1-tx)*(1-ty))
	addWeighted(h, face, x0+1, y0, width, amount*tx*(1-ty))
	addWeighted(h, face, x0, y0+1, width, amount*(1-tx)*ty)
	addWeighted(h, face, x0+1, y0+1, width, amount*tx*ty)
}

// erodeKernel removes amount from a circular neighborhood of (fx, fy) with
// radius p.Radius, weighted by a linear falloff 1 - d/(radius+1) normalized
// to sum 1 (the decision recorded in SPEC_FULL.md §6 for the
// under-specified source kernel). It only writes h; the caller adds amount
// to the droplet's sediment.
func erodeKernel(h *cube.CubeSurface[float64], face cube.Face, fx, fy float64, width, radius int, amount float64) {
	if amount == 0 {
		return
	}
	cx := int(math.Round(fx))
	cy := int(math.Round(fy))

	type off struct {
		dx, dy int
		w      float64
	}
	var offs []off
	var total float64
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if d > float64(radius) {
				continue
			}
			w := 1 - d/float64(radius+1)
			offs = append(offs, off{dx, dy, w})
			total += w
		}
	}
	if total == 0 {
		return
	}
	for _, o := range offs {
		addWeighted(h, face, cx+o.dx, cy+o.dy, width, -amount*o.w/total)
	}
}

// addWeighted adds delta to h at a possibly off-face integer coordinate,
// resolving the coordinate through cube.Resolve so seam/corner pixels
// receive the correctly rotated, weight-split contribution.
func addWeighted(h *cube.CubeSurface[float64], face cube.Face, x, y, width int, delta float64) {
	for _, tap := range cube.Resolve(face, x, y, width) {
		h.Set(tap.Coord, h.At(tap.Coord)+delta*tap.Weight)
	}
}
