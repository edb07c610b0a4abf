package meshkernel

import "github.com/chazu/meshkernel/internal/ipgeom"

// InputMesh is a closed, consistently-oriented polyhedron surface: a
// flat position list plus one CCW (viewed from outside) vertex-index
// loop per face. Faces need not be triangles.
type InputMesh struct {
	Positions []ipgeom.Pos
	Faces     [][]int
}

// EdgeState classifies one edge of the input mesh against the two
// faces it borders.
type EdgeState int

const (
	EdgeUnclassified EdgeState = iota
	EdgeConvex
	EdgePlanar
	EdgeConcave
	EdgeBoundary
	EdgeDegenerate
)

func (s EdgeState) String() string {
	switch s {
	case EdgeConvex:
		return "convex"
	case EdgePlanar:
		return "planar"
	case EdgeConcave:
		return "concave"
	case EdgeBoundary:
		return "boundary"
	case EdgeDegenerate:
		return "degenerate"
	default:
		return "unclassified"
	}
}

// IsNonConvex reports whether an edge of this state disqualifies its
// incident faces' planes from the "trivially convex" fast path and
// marks the face as needing its plane listed among the concave-adjacent
// cutting planes.
func (s EdgeState) IsNonConvex() bool {
	return s != EdgeConvex && s != EdgePlanar
}
