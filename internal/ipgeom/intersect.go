package ipgeom

// IntersectPlanes returns the line where two planes meet.
func IntersectPlanes(p, q Plane) Line {
	return Line{
		BCcb: sub(mul(p.B, q.C), mul(p.C, q.B)),
		CAac: sub(mul(p.C, q.A), mul(p.A, q.C)),
		ABba: sub(mul(p.A, q.B), mul(p.B, q.A)),
		ADda: sub(mul(p.A, q.D), mul(p.D, q.A)),
		BDdb: sub(mul(p.B, q.D), mul(p.D, q.B)),
		CDdc: sub(mul(p.C, q.D), mul(p.D, q.C)),
	}
}

// IntersectThreePlanes returns the homogeneous point where three planes
// meet. W=0 iff the planes are not in general position (two of them
// parallel, or all three sharing a common line).
func IntersectThreePlanes(p, q, r Plane) Point4 {
	detAB := sub(mul(p.A, q.B), mul(p.B, q.A))
	detAC := sub(mul(p.A, q.C), mul(p.C, q.A))
	detAD := sub(mul(p.A, q.D), mul(p.D, q.A))
	detBC := sub(mul(p.B, q.C), mul(p.C, q.B))
	detBD := sub(mul(p.B, q.D), mul(p.D, q.B))
	detCD := sub(mul(p.C, q.D), mul(p.D, q.C))

	detABC := add(sub(mul(detAB, r.C), mul(detAC, r.B)), mul(detBC, r.A))
	detABD := sub(sub(mul(detAD, r.B), mul(detAB, r.D)), mul(detBD, r.A))
	detACD := add(sub(mul(detAC, r.D), mul(detAD, r.C)), mul(detCD, r.A))
	detBCD := sub(sub(mul(detBD, r.C), mul(detCD, r.B)), mul(detBC, r.D))

	return Point4{X: detBCD, Y: detACD, Z: detABD, W: detABC}
}

// IntersectLinePlane returns the homogeneous point where a line meets a
// plane. Callers should check AreParallelPlaneLine first if a parallel
// line/plane pair needs special handling; the determinant computed here
// is meaningless (but still finite) in that case.
func IntersectLinePlane(l Line, p Plane) Point4 {
	x := sub(sub(mul(p.C, l.BDdb), mul(p.B, l.CDdc)), mul(p.D, l.BCcb))
	y := sub(sub(mul(p.A, l.CDdc), mul(p.C, l.ADda)), mul(p.D, l.CAac))
	z := sub(sub(mul(p.B, l.ADda), mul(p.A, l.BDdb)), mul(p.D, l.ABba))
	w := add(add(mul(p.A, l.BCcb), mul(p.B, l.CAac)), mul(p.C, l.ABba))
	return Point4{X: x, Y: y, Z: z, W: w}
}
