package ipgeom

// AreParallelPlanes reports whether two planes' normals are parallel
// (their cross product is zero); they may still sit at different
// distances from the origin.
func AreParallelPlanes(p, q Plane) bool {
	crossA := sub(mul(p.B, q.C), mul(p.C, q.B))
	crossB := sub(mul(p.C, q.A), mul(p.A, q.C))
	crossC := sub(mul(p.A, q.B), mul(p.B, q.A))
	return isZero(crossA) && isZero(crossB) && isZero(crossC)
}

// AreParallelPlaneLine reports whether a plane's normal is
// perpendicular to a line's direction, i.e. the line lies in some
// plane parallel to it.
func AreParallelPlaneLine(p Plane, l Line) bool {
	return isZero(linePlaneDot(l, p))
}

func linePlaneDot(l Line, p Plane) *Int {
	dx, dy, dz := l.Direction()
	return add(add(mul(dx, p.A), mul(dy, p.B)), mul(dz, p.C))
}

// LineOrientation returns 1 if the line's direction and the plane's
// normal point the same way, -1 if they point opposite ways, and 0 if
// the line is parallel to the plane. Used by the Seidel solver's 1D
// sub-problem to tell a "left" bound from a "right" bound along a line.
func LineOrientation(l Line, p Plane) int {
	return sign(linePlaneDot(l, p))
}
