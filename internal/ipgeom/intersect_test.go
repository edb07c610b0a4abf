package ipgeom

import "testing"

func TestIntersectThreePlanesCorner(t *testing.T) {
	px := PlaneFromPosNormal(Pos{0, 0, 0}, Vec{1, 0, 0}) // x=0
	py := PlaneFromPosNormal(Pos{0, 0, 0}, Vec{0, 1, 0}) // y=0
	pz := PlaneFromPosNormal(Pos{0, 0, 0}, Vec{0, 0, 1}) // z=0

	pt := IntersectThreePlanes(px, py, pz)
	if !pt.IsValid() {
		t.Fatal("expected valid intersection point")
	}
	x, y, z, finite := pt.Euclidean()
	if !finite {
		t.Fatal("expected finite euclidean coordinates")
	}
	if x != 0 || y != 0 || z != 0 {
		t.Errorf("got (%v,%v,%v), want origin", x, y, z)
	}
}

func TestIntersectThreePlanesParallelIsInvalid(t *testing.T) {
	p0 := PlaneFromPosNormal(Pos{0, 0, 0}, Vec{0, 0, 1})
	p1 := PlaneFromPosNormal(Pos{0, 0, 5}, Vec{0, 0, 1}) // parallel to p0
	p2 := PlaneFromPosNormal(Pos{0, 0, 0}, Vec{1, 0, 0})

	pt := IntersectThreePlanes(p0, p1, p2)
	if pt.IsValid() {
		t.Errorf("expected invalid (W=0) intersection for planes not in general position")
	}
}

func TestIntersectPlanesThenLinePlaneRecoversCorner(t *testing.T) {
	px := PlaneFromPosNormal(Pos{2, 0, 0}, Vec{1, 0, 0}) // x=2
	py := PlaneFromPosNormal(Pos{0, 3, 0}, Vec{0, 1, 0}) // y=3
	pz := PlaneFromPosNormal(Pos{0, 0, 5}, Vec{0, 0, 1}) // z=5

	l := IntersectPlanes(px, py)
	if !l.IsValid() {
		t.Fatal("expected valid line")
	}
	pt := IntersectLinePlane(l, pz)
	if !pt.IsValid() {
		t.Fatal("expected valid point")
	}
	x, y, z, finite := pt.Euclidean()
	if !finite {
		t.Fatal("expected finite coordinates")
	}
	if x != 2 || y != 3 || z != 5 {
		t.Errorf("got (%v,%v,%v), want (2,3,5)", x, y, z)
	}
}

func TestAreParallelPlanes(t *testing.T) {
	p0 := PlaneFromPosNormal(Pos{0, 0, 0}, Vec{0, 0, 1})
	p1 := PlaneFromPosNormal(Pos{0, 0, 5}, Vec{0, 0, 2})
	p2 := PlaneFromPosNormal(Pos{0, 0, 0}, Vec{1, 0, 0})

	if !AreParallelPlanes(p0, p1) {
		t.Error("expected p0, p1 to be parallel")
	}
	if AreParallelPlanes(p0, p2) {
		t.Error("expected p0, p2 to not be parallel")
	}
}

func TestAnyPointOnPlaneLiesOnPlane(t *testing.T) {
	planes := []Plane{
		PlaneFromPosNormal(Pos{3, 0, 0}, Vec{1, 0, 0}),
		PlaneFromPosNormal(Pos{0, -2, 0}, Vec{0, 1, 0}),
		PlaneFromPosNormal(Pos{0, 0, 7}, Vec{0, 0, 1}),
	}
	for _, pl := range planes {
		pt := AnyPointOnPlane(pl)
		if !pt.IsValid() {
			t.Fatalf("any_point produced invalid point for plane %+v", pl)
		}
		if Classify(pt, pl) != 0 {
			t.Errorf("any_point(%+v) does not lie on the plane", pl)
		}
	}
}

func TestAnyPointOnLineLiesOnLine(t *testing.T) {
	p0 := PlaneFromPosNormal(Pos{0, 0, 0}, Vec{1, 0, 0})
	p1 := PlaneFromPosNormal(Pos{0, 0, 0}, Vec{0, 1, 0})
	l := IntersectPlanes(p0, p1)
	pt := AnyPointOnLine(l)
	if !pt.IsValid() {
		t.Fatal("expected valid point on line")
	}
	if Classify(pt, p0) != 0 || Classify(pt, p1) != 0 {
		t.Errorf("any_point(line) does not lie on both generating planes")
	}
}
