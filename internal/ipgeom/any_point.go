package ipgeom

// AnyPointOnPlane returns an arbitrary valid point lying on the plane,
// chosen as its intersection with whichever coordinate axis is not
// perpendicular to the normal.
func AnyPointOnPlane(p Plane) Point4 {
	switch {
	case !isZero(p.A):
		return Point4{X: neg(p.D), Y: i(0), Z: i(0), W: p.A}
	case !isZero(p.B):
		return Point4{X: i(0), Y: neg(p.D), Z: i(0), W: p.B}
	default:
		return Point4{X: i(0), Y: i(0), Z: neg(p.D), W: p.C}
	}
}

// AnyPointOnLine returns an arbitrary valid point lying on the line.
func AnyPointOnLine(l Line) Point4 {
	p := Point4{X: i(0), Y: i(0), Z: i(0), W: i(0)}
	if !isZero(l.BCcb) {
		p = Point4{X: i(0), Y: l.CDdc, Z: neg(l.BDdb), W: l.BCcb}
	}
	if !isZero(l.CAac) {
		p = Point4{X: neg(l.CDdc), Y: i(0), Z: l.ADda, W: l.CAac}
	}
	if !isZero(l.ABba) {
		p = Point4{X: l.BDdb, Y: neg(l.ADda), Z: i(0), W: l.ABba}
	}
	return p
}
