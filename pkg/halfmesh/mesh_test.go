package halfmesh

import (
	"testing"

	"github.com/chazu/meshkernel/internal/ipgeom"
)

func dummyLine() ipgeom.Line {
	a := ipgeom.PlaneFromPosNormal(ipgeom.Pos{}, ipgeom.Vec{X: 1})
	b := ipgeom.PlaneFromPosNormal(ipgeom.Pos{}, ipgeom.Vec{Y: 1})
	return ipgeom.IntersectPlanes(a, b)
}

func dummyPlane(n ipgeom.Vec) ipgeom.Plane {
	return ipgeom.PlaneFromPosNormal(ipgeom.Pos{}, n)
}

// newTetrahedron builds a minimal closed mesh: four triangles, each edge
// shared by exactly two faces in opposite winding.
func newTetrahedron(t *testing.T) (*Mesh, [4]VertexID) {
	t.Helper()
	m := New()
	var v [4]VertexID
	positions := []ipgeom.Pos{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}
	for i, p := range positions {
		v[i] = m.AddVertex(ipgeom.FromPos(p))
	}
	lineFor := func(a, b VertexID) ipgeom.Line { return dummyLine() }
	m.AddFace([]VertexID{v[0], v[1], v[2]}, dummyPlane(ipgeom.Vec{Z: -1}), 0, lineFor)
	m.AddFace([]VertexID{v[0], v[3], v[1]}, dummyPlane(ipgeom.Vec{Y: -1}), 1, lineFor)
	m.AddFace([]VertexID{v[1], v[3], v[2]}, dummyPlane(ipgeom.Vec{X: 1, Y: 1, Z: 1}), 2, lineFor)
	m.AddFace([]VertexID{v[2], v[3], v[0]}, dummyPlane(ipgeom.Vec{X: -1}), 3, lineFor)
	return m, v
}

func TestTetrahedronEveryHalfedgeHasATwin(t *testing.T) {
	m, _ := newTetrahedron(t)
	if len(m.Halfedges) != 12 {
		t.Fatalf("expected 12 halfedges, got %d", len(m.Halfedges))
	}
	for i, he := range m.Halfedges {
		if he.Twin == HalfedgeID(None) {
			t.Errorf("halfedge %d has no twin", i)
		}
		if m.Halfedges[he.Twin].Twin != HalfedgeID(i) {
			t.Errorf("halfedge %d twin is not reciprocal", i)
		}
	}
	if len(m.Edges) != 6 {
		t.Errorf("expected 6 shared edges, got %d", len(m.Edges))
	}
}

func TestFaceHalfedgesFormAClosedLoop(t *testing.T) {
	m, _ := newTetrahedron(t)
	for f := range m.Faces {
		loop := m.FaceHalfedges(FaceID(f))
		if len(loop) != 3 {
			t.Fatalf("face %d: expected triangle, got %d sides", f, len(loop))
		}
		for _, he := range loop {
			if m.Halfedges[he].Face != FaceID(f) {
				t.Errorf("halfedge %d does not point back to face %d", he, f)
			}
		}
	}
}

func TestOutgoingHalfedgesSurroundEachVertex(t *testing.T) {
	m, v := newTetrahedron(t)
	for _, vid := range v {
		out := m.OutgoingHalfedges(vid)
		if len(out) != 3 {
			t.Errorf("vertex %d: expected valence 3, got %d", vid, len(out))
		}
		for _, he := range out {
			if m.Halfedges[he].Origin != vid {
				t.Errorf("halfedge %d does not originate at %d", he, vid)
			}
		}
	}
}

func TestSplitHalfedgePreservesLoopsAndTwins(t *testing.T) {
	m, v := newTetrahedron(t)
	he := m.findHalfedge(v[0], v[1])
	if he == HalfedgeID(None) {
		t.Fatal("expected an edge from v0 to v1")
	}
	face := m.Halfedges[he].Face
	newVert := m.SplitHalfedge(he, ipgeom.FromPos(ipgeom.Pos{X: 1, Y: 0, Z: 0}))

	if !m.Vertices[newVert].IsC0 {
		t.Error("split should mark the new vertex as c0")
	}
	loop := m.FaceHalfedges(face)
	if len(loop) != 4 {
		t.Errorf("splitting one side of the triangle should make it a quad, got %d sides", len(loop))
	}
	for _, h := range loop {
		twin := m.Halfedges[h].Twin
		if m.Halfedges[twin].Twin != h {
			t.Errorf("halfedge %d lost twin reciprocity after split", h)
		}
		if m.Dest(h) != m.Halfedges[m.Halfedges[h].Next].Origin {
			t.Errorf("halfedge %d does not connect to its Next's origin", h)
		}
	}
}

func TestSplitFaceDividesAQuadIntoTwoFaces(t *testing.T) {
	m := New()
	v0 := m.AddVertex(ipgeom.FromPos(ipgeom.Pos{X: 0, Y: 0, Z: 0}))
	v1 := m.AddVertex(ipgeom.FromPos(ipgeom.Pos{X: 1, Y: 0, Z: 0}))
	v2 := m.AddVertex(ipgeom.FromPos(ipgeom.Pos{X: 1, Y: 1, Z: 0}))
	v3 := m.AddVertex(ipgeom.FromPos(ipgeom.Pos{X: 0, Y: 1, Z: 0}))
	lineFor := func(a, b VertexID) ipgeom.Line { return dummyLine() }
	f := m.AddFace([]VertexID{v0, v1, v2, v3}, dummyPlane(ipgeom.Vec{Z: -1}), 0, lineFor)

	fa, fb := m.SplitFace(v0, v2, f, dummyLine())
	if len(m.FaceHalfedges(fa)) != 3 || len(m.FaceHalfedges(fb)) != 3 {
		t.Errorf("splitting a quad along a diagonal should yield two triangles, got %d and %d",
			len(m.FaceHalfedges(fa)), len(m.FaceHalfedges(fb)))
	}
	diag := m.findHalfedge(v0, v2)
	if diag == HalfedgeID(None) || m.Halfedges[m.Halfedges[diag].Twin].Twin != diag {
		t.Error("new diagonal halfedges should be mutual twins")
	}
}

func TestRemoveFaceAndCompact(t *testing.T) {
	m, v := newTetrahedron(t)
	before := len(m.Faces)
	target := m.Halfedges[m.findHalfedge(v[0], v[1])].Face
	for _, he := range m.FaceHalfedges(target) {
		m.RemoveHalfedge(he)
	}
	m.RemoveFace(target)
	if m.LiveFaceCount() != before-1 {
		t.Fatalf("expected %d live faces, got %d", before-1, m.LiveFaceCount())
	}

	m.Compact()
	if len(m.Faces) != before-1 {
		t.Errorf("expected compaction to drop the removed face, got %d faces", len(m.Faces))
	}
	for i, he := range m.Halfedges {
		if int(he.Face) >= len(m.Faces) {
			t.Errorf("halfedge %d face handle %d out of range after compaction", i, he.Face)
		}
	}
}

func TestClearC0Marks(t *testing.T) {
	m, v := newTetrahedron(t)
	m.Vertices[v[0]].IsC0 = true
	m.ClearC0Marks()
	for i, vx := range m.Vertices {
		if vx.IsC0 {
			t.Errorf("vertex %d still marked c0 after clear", i)
		}
	}
}
