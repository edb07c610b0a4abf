package ipgeom

// Plane is the exact plane equation a*x + b*y + c*z + d = 0. The normal
// (a,b,c) points out of the solid: a point is strictly inside the
// halfspace the plane bounds iff its signed distance is negative.
type Plane struct {
	A, B, C, D *Int
}

// IsValid reports whether the normal is non-zero.
func (p Plane) IsValid() bool {
	return !isZero(p.A) || !isZero(p.B) || !isZero(p.C)
}

// Inverted flips the plane's orientation.
func (p Plane) Inverted() Plane {
	return Plane{A: neg(p.A), B: neg(p.B), C: neg(p.C), D: neg(p.D)}
}

// Translate shifts the plane by v: a plane through points offset by v
// keeps its normal and gets an adjusted d.
func (p Plane) Translate(v Vec) Plane {
	d := sub(sub(sub(p.D, mul(p.A, i(v.X))), mul(p.B, i(v.Y))), mul(p.C, i(v.Z)))
	return Plane{A: p.A, B: p.B, C: p.C, D: d}
}

// PlaneFromPosNormal builds a plane through p with the given (non-unit)
// normal.
func PlaneFromPosNormal(p Pos, n Vec) Plane {
	a, b, c := i(n.X), i(n.Y), i(n.Z)
	d := add(add(mul(neg(a), i(p.X)), mul(neg(b), i(p.Y))), mul(neg(c), i(p.Z)))
	return Plane{A: a, B: b, C: c, D: d}
}

// PlaneFromPoints builds the plane through three ordered points with
// normal = (p1-p0) x (p2-p0), canonicalized by dividing through the gcd
// of the normal's components so that coplanar input faces deduplicate
// to the same plane value. Returns ok=false for collinear points (zero
// normal), which callers must treat as an invalid/degenerate face.
func PlaneFromPoints(p0, p1, p2 Pos) (Plane, bool) {
	pl, ok := planeFromPointsRaw(p0, p1, p2)
	if !ok {
		return Plane{}, false
	}
	g := gcdBig(gcdBig(pl.A, pl.B), pl.C)
	if g.Cmp(i(1)) > 0 {
		pl.A = new(Int).Quo(pl.A, g)
		pl.B = new(Int).Quo(pl.B, g)
		pl.C = new(Int).Quo(pl.C, g)
		// d is rebuilt from the reduced normal rather than divided,
		// since it was computed from the unreduced one.
		pl.D = add(add(mul(neg(pl.A), i(p0.X)), mul(neg(pl.B), i(p0.Y))), mul(neg(pl.C), i(p0.Z)))
	}
	return pl, true
}

// PlaneFromPointsNoGCD is the non-canonicalizing variant, used for the
// candidate polyhedron's supporting planes, which are never looked up
// in a deduplicating set.
func PlaneFromPointsNoGCD(p0, p1, p2 Pos) (Plane, bool) {
	return planeFromPointsRaw(p0, p1, p2)
}

func planeFromPointsRaw(p0, p1, p2 Pos) (Plane, bool) {
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	a := sub(mul(i(e1.Y), i(e2.Z)), mul(i(e1.Z), i(e2.Y)))
	b := sub(mul(i(e1.Z), i(e2.X)), mul(i(e1.X), i(e2.Z)))
	c := sub(mul(i(e1.X), i(e2.Y)), mul(i(e1.Y), i(e2.X)))
	if isZero(a) && isZero(b) && isZero(c) {
		return Plane{}, false
	}
	d := add(add(mul(neg(a), i(p0.X)), mul(neg(b), i(p0.Y))), mul(neg(c), i(p0.Z)))
	return Plane{A: a, B: b, C: c, D: d}, true
}

// SignedDistance returns a*x+b*y+c*z+d for an integer position, exact.
// Negative means strictly inside the halfspace the plane bounds.
func SignedDistance(p Plane, pos Pos) *Int {
	return add(add(add(mul(p.A, i(pos.X)), mul(p.B, i(pos.Y))), mul(p.C, i(pos.Z))), p.D)
}
