package cube

// FaceGrid is a dense width x width array of T, row-major with index
// x + y*width, matching §3's FaceGrid<T>.
type FaceGrid[T any] struct {
	Width int
	Data  []T
}

// NewFaceGrid allocates a zero-valued width x width grid.
func NewFaceGrid[T any](width int) *FaceGrid[T] {
	return &FaceGrid[T]{Width: width, Data: make([]T, width*width)}
}

func (g *FaceGrid[T]) index(x, y int) int {
	return x + y*g.Width
}

// At returns the value at (x, y).
func (g *FaceGrid[T]) At(x, y int) T {
	return g.Data[g.index(x, y)]
}

// Set writes the value at (x, y).
func (g *FaceGrid[T]) Set(x, y int, v T) {
	g.Data[g.index(x, y)] = v
}

// CubeSurface is the ordered tuple (L, B, R, F, U, D) of same-width
// FaceGrids, matching §3's CubeSurface<T>.
type CubeSurface[T any] struct {
	Width             int
	L, B, R, F, U, D *FaceGrid[T]
}

// NewCubeSurface allocates six zero-valued width x width face grids.
func NewCubeSurface[T any](width int) *CubeSurface[T] {
	return &CubeSurface[T]{
		Width: width,
		L:     NewFaceGrid[T](width),
		B:     NewFaceGrid[T](width),
		R:     NewFaceGrid[T](width),
		F:     NewFaceGrid[T](width),
		U:     NewFaceGrid[T](width),
		D:     NewFaceGrid[T](width),
	}
}

// Face returns the grid for the given face.
func (s *CubeSurface[T]) Face(face Face) *FaceGrid[T] {
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

// Grids returns every face grid in canonical order L, B, R, F, U, D.
func (s *CubeSurface[T]) Grids() [6]*FaceGrid[T] {
	return [6]*FaceGrid[T]{s.L, s.B, s.R, s.F, s.U, s.D}
}

// At returns the value at c.
func (s *CubeSurface[T]) At(c Coord) T {
	return s.Face(c.Face).At(c.X, c.Y)
}

// Set writes the value at c.
func (s *CubeSurface[T]) Set(c Coord, v T) {
	s.Face(c.Face).Set(c.X, c.Y, v)
}
