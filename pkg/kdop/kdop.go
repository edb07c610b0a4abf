// Package kdop implements the discrete-oriented-polytope bounding volume
// the kernel constructor uses to skip plane cuts that cannot possibly
// shrink the candidate polyhedron any further.
package kdop

import (
	"math"

	"github.com/chazu/meshkernel/internal/ipgeom"
)

// Kind is the closed set of supported k-DOP axis counts.
type Kind int

const (
	Kind3  Kind = 3  // axis-aligned bounding box
	Kind8  Kind = 8  // AABB plus 5 pairs of face diagonals
	Kind9  Kind = 9  // Kind8 plus one more diagonal pair
	Kind12 Kind = 12 // Kind9 plus the 3 cube-diagonal pairs
)

// axesFor returns the canonical axis set for a given K, following the
// flexible-collision-library convention the reference implementation
// cites: axes always start with the 3 coordinate axes so that every
// k-DOP, regardless of K, bounds at least an AABB.
func axesFor(k Kind) [][3]float64 {
	axes := [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if k >= Kind8 {
		axes = append(axes,
			[3]float64{1, 1, 0}, [3]float64{1, 0, 1}, [3]float64{0, 1, 1},
			[3]float64{1, -1, 0}, [3]float64{1, 0, -1},
		)
	}
	if k >= Kind9 {
		axes = append(axes, [3]float64{0, 1, -1})
	}
	if k >= Kind12 {
		axes = append(axes,
			[3]float64{1, 1, -1}, [3]float64{1, -1, 1}, [3]float64{-1, 1, 1},
		)
	}
	return axes
}

// KDOP is a conservative bounding volume over a fixed axis set. Per
// axis it tracks [min,max] (always padded outward by at least one unit)
// and the witness vertex handle achieving each bound; K=3 is the plain
// AABB.
type KDOP struct {
	Kind Kind
	Axes [][3]float64

	Min, Max       []float64
	MinVert, MaxVert []int // vertex handle index, or -1 if unknown
}

// New constructs an empty k-DOP for the given kind.
func New(k Kind) *KDOP {
	axes := axesFor(k)
	n := len(axes)
	d := &KDOP{
		Kind:     k,
		Axes:     axes,
		Min:      make([]float64, n),
		Max:      make([]float64, n),
		MinVert:  make([]int, n),
		MaxVert:  make([]int, n),
	}
	return d
}

func dot(axis [3]float64, p ipgeom.Pos) float64 {
	return axis[0]*float64(p.X) + axis[1]*float64(p.Y) + axis[2]*float64(p.Z)
}

// InitializeFromPositions scans every (handle, position) pair and sets
// the initial, conservatively padded, bounds.
func (d *KDOP) InitializeFromPositions(handles []int, positions []ipgeom.Pos) {
	for a := range d.Axes {
		d.Min[a] = math.Inf(1)
		d.Max[a] = math.Inf(-1)
	}
	for idx, h := range handles {
		p := positions[idx]
		for a, axis := range d.Axes {
			v := dot(axis, p)
			if v < d.Min[a] {
				d.Min[a] = v
				d.MinVert[a] = h
			}
			if v > d.Max[a] {
				d.Max[a] = v
				d.MaxVert[a] = h
			}
		}
	}
	for a := range d.Axes {
		d.Min[a] -= 1
		d.Max[a] += 1
	}
}

// removed reports whether handle h is no longer present among alive.
func removed(h int, alive map[int]bool) bool { return !alive[h] }

// Update rescans only cutVertices, the vertices touched by the most
// recent cut, after any witness vertex has been removed from the mesh.
// When a witness is gone but none of cutVertices beat the stale bound,
// the bound is conservatively widened by one unit rather than left
// referring to a dead vertex.
func (d *KDOP) Update(cutHandles []int, cutPositions []ipgeom.Pos, alive map[int]bool) {
	if len(cutHandles) == 0 {
		return
	}

	minNeeds := make([]bool, len(d.Axes))
	maxNeeds := make([]bool, len(d.Axes))
	for a := range d.Axes {
		minNeeds[a] = removed(d.MinVert[a], alive)
		maxNeeds[a] = removed(d.MaxVert[a], alive)
	}

	for idx, h := range cutHandles {
		p := cutPositions[idx]
		for a, axis := range d.Axes {
			v := dot(axis, p)
			if minNeeds[a] && v < d.Min[a] {
				d.Min[a] = v
				d.MinVert[a] = h
			}
			if maxNeeds[a] && v > d.Max[a] {
				d.Max[a] = v
				d.MaxVert[a] = h
			}
		}
	}

	for a := range d.Axes {
		if minNeeds[a] && removed(d.MinVert[a], alive) {
			d.Min[a] -= 1
		}
		if maxNeeds[a] && removed(d.MaxVert[a], alive) {
			d.Max[a] += 1
		}
	}
}

// Intersects reports whether the plane might still cut the volume
// bounded by this k-DOP. A false return is a hard guarantee the plane
// is redundant (no false negatives, the "k-DOP truth" invariant); a
// true return only means the caller must check exactly.
//
// The decisive test always uses axes 0-2 (x,y,z, present for every K by
// construction) via the exact integer AABB classifier: since the actual
// k-DOP -- and therefore the candidate polyhedron -- is always a subset
// of that axis-aligned box, a plane that cannot cut the box cannot cut
// the tighter shape either. The extra diagonal axes present for K=8/9/12
// are still maintained by Update/InitializeFromPositions so a future,
// tighter corner-enumeration test can use them; exercising only the
// AABB slab here keeps the oracle exact rather than relying on the
// float64 diagonal bounds on the decision path.
func (d *KDOP) Intersects(plane ipgeom.Plane) bool {
	bb := ipgeom.AABB{
		Min: ipgeom.Pos{X: int64(math.Floor(d.Min[0])), Y: int64(math.Floor(d.Min[1])), Z: int64(math.Floor(d.Min[2]))},
		Max: ipgeom.Pos{X: int64(math.Ceil(d.Max[0])), Y: int64(math.Ceil(d.Max[1])), Z: int64(math.Ceil(d.Max[2]))},
	}
	return ipgeom.ClassifyAABB(bb, plane) != -1
}
