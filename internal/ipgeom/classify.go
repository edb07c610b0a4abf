package ipgeom

// Classify returns the exact sign of (a*X+b*Y+c*Z+d*W) * sign(W) for a
// homogeneous point against a plane: -1 strictly inside the halfspace
// the plane bounds, 0 exactly on the plane, +1 strictly outside.
func Classify(pt Point4, p Plane) int {
	d := add(add(mul(pt.X, p.A), mul(pt.Y, p.B)), add(mul(pt.Z, p.C), mul(pt.W, p.D)))
	return sign(d) * sign(pt.W)
}

// ClassifyPos classifies an integer position against a plane.
func ClassifyPos(pos Pos, p Plane) int {
	return sign(SignedDistance(p, pos))
}

// AABB is an axis-aligned box over integer positions.
type AABB struct {
	Min, Max Pos
}

// ClassifyAABB classifies a box relative to a plane: +1 if the box is
// strictly on the positive side, -1 if strictly on the negative side, 0
// if the plane might cross it. It never misreports a side (this is the
// "k-DOP truth" invariant the bounding-volume oracle relies on): a -1 or
// +1 here is always exact, so false is returned by callers only when
// every corner is provably on one side.
func ClassifyAABB(bb AABB, p Plane) int {
	cx, cy, cz := bb.Min.X+bb.Max.X, bb.Min.Y+bb.Max.Y, bb.Min.Z+bb.Max.Z
	sx, sy, sz := bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y, bb.Max.Z-bb.Min.Z

	d := new(Int).Lsh(p.D, 1)
	d = add(d, mul(i(cx), p.A))
	d = add(d, mul(i(cy), p.B))
	d = add(d, mul(i(cz), p.C))

	hn := add(add(mul(i(sx), absBig(p.A)), mul(i(sy), absBig(p.B))), mul(i(sz), absBig(p.C)))

	if sign(add(hn, d)) < 0 {
		return -1
	}
	if sign(sub(hn, d)) < 0 {
		return 1
	}
	return 0
}
