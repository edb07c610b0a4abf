// Package halfmesh implements the candidate polyhedron's topology: a
// half-edge mesh stored arena-plus-index rather than pointer-based, so
// that vertex/edge/face removal is a cheap "mark free" and compaction is
// an explicit, separate operation. Vertices, halfedges, edges, and
// faces are kept in parallel slices indexed by stable integer handles.
package halfmesh

import (
	"github.com/chazu/meshkernel/internal/ipgeom"
)

// VertexID, HalfedgeID, EdgeID and FaceID are arena handles. -1 denotes
// "none".
type (
	VertexID   int
	HalfedgeID int
	EdgeID     int
	FaceID     int
)

const None = -1

// Vertex carries the exact homogeneous position plus a rounded double
// cache for output, and the "is this a c0 vertex of the current cut"
// flag the marching step maintains.
type Vertex struct {
	Halfedge HalfedgeID // one outgoing halfedge
	Position ipgeom.Point4
	DX, DY, DZ float64
	Finite     bool
	IsC0       bool
	removed    bool
}

// Halfedge is one directed side of an edge.
type Halfedge struct {
	Origin VertexID
	Twin   HalfedgeID
	Next   HalfedgeID
	Prev   HalfedgeID
	Face   FaceID
	Edge   EdgeID
	removed bool
}

// Edge carries the exact supporting line shared by the two faces on
// either side of it (or, for a boundary/cut edge, the line that
// generated it).
type Edge struct {
	Halfedge HalfedgeID // one of its two halfedges
	Line     ipgeom.Line
	removed  bool
}

// Face carries its exact supporting plane and a back-pointer to the
// input face that generated that plane, or None if it came from the
// initial cuboid or a later cut.
type Face struct {
	Halfedge  HalfedgeID
	Plane     ipgeom.Plane
	InputFace int
	removed   bool
}

// Mesh is the candidate polyhedron: a mutable, compactable half-edge
// mesh over exact homogeneous vertex coordinates.
type Mesh struct {
	Vertices  []Vertex
	Halfedges []Halfedge
	Edges     []Edge
	Faces     []Face
}

// New returns an empty mesh.
func New() *Mesh { return &Mesh{} }

func (m *Mesh) AddVertex(p ipgeom.Point4) VertexID {
	x, y, z, finite := p.Euclidean()
	m.Vertices = append(m.Vertices, Vertex{Halfedge: HalfedgeID(None), Position: p, DX: x, DY: y, DZ: z, Finite: finite})
	return VertexID(len(m.Vertices) - 1)
}

func (m *Mesh) addHalfedge(origin VertexID) HalfedgeID {
	m.Halfedges = append(m.Halfedges, Halfedge{Origin: origin, Twin: HalfedgeID(None), Next: HalfedgeID(None), Prev: HalfedgeID(None), Face: FaceID(None), Edge: EdgeID(None)})
	return HalfedgeID(len(m.Halfedges) - 1)
}

func (m *Mesh) addEdge(line ipgeom.Line) EdgeID {
	m.Edges = append(m.Edges, Edge{Halfedge: HalfedgeID(None), Line: line})
	return EdgeID(len(m.Edges) - 1)
}

func (m *Mesh) addFace(plane ipgeom.Plane, inputFace int) FaceID {
	m.Faces = append(m.Faces, Face{Halfedge: HalfedgeID(None), Plane: plane, InputFace: inputFace})
	return FaceID(len(m.Faces) - 1)
}

// Dest returns the halfedge's destination vertex (the origin of its
// twin).
func (m *Mesh) Dest(he HalfedgeID) VertexID {
	return m.Halfedges[m.Halfedges[he].Twin].Origin
}

// NextOutgoing rotates around he's origin vertex to the next outgoing
// halfedge in CCW order: twin(prev(he)).
func (m *Mesh) NextOutgoing(he HalfedgeID) HalfedgeID {
	return m.Halfedges[m.Halfedges[he].Prev].Twin
}

// OutgoingHalfedges returns every halfedge leaving v, starting from
// v's stored reference halfedge.
func (m *Mesh) OutgoingHalfedges(v VertexID) []HalfedgeID {
	start := m.Vertices[v].Halfedge
	if start == HalfedgeID(None) {
		return nil
	}
	var out []HalfedgeID
	he := start
	for {
		out = append(out, he)
		he = m.NextOutgoing(he)
		if he == start {
			break
		}
	}
	return out
}

// FaceHalfedges returns every halfedge bounding f, in face order.
func (m *Mesh) FaceHalfedges(f FaceID) []HalfedgeID {
	start := m.Faces[f].Halfedge
	if start == HalfedgeID(None) {
		return nil
	}
	var out []HalfedgeID
	he := start
	for {
		out = append(out, he)
		he = m.Halfedges[he].Next
		if he == start {
			break
		}
	}
	return out
}

// AddFace creates a new face and a closed loop of halfedges through the
// given vertices (in order), linking twins against any halfedge already
// present between two consecutive vertices in the opposite direction.
// edgeLineFor is called once per new edge (not reused from an existing
// twin) to compute its supporting line.
func (m *Mesh) AddFace(verts []VertexID, plane ipgeom.Plane, inputFace int, edgeLineFor func(a, b VertexID) ipgeom.Line) FaceID {
	n := len(verts)
	f := m.addFace(plane, inputFace)
	hes := make([]HalfedgeID, n)
	for k := 0; k < n; k++ {
		hes[k] = m.addHalfedge(verts[k])
		m.Halfedges[hes[k]].Face = f
	}
	for k := 0; k < n; k++ {
		next := hes[(k+1)%n]
		m.Halfedges[hes[k]].Next = next
		m.Halfedges[next].Prev = hes[k]

		a, b := verts[k], verts[(k+1)%n]
		if twin := m.findHalfedge(b, a); twin != HalfedgeID(None) && m.Halfedges[twin].Twin == HalfedgeID(None) {
			m.Halfedges[hes[k]].Twin = twin
			m.Halfedges[twin].Twin = hes[k]
			m.Halfedges[hes[k]].Edge = m.Halfedges[twin].Edge
		} else {
			e := m.addEdge(edgeLineFor(a, b))
			m.Edges[e].Halfedge = hes[k]
			m.Halfedges[hes[k]].Edge = e
		}
		if m.Vertices[a].Halfedge == HalfedgeID(None) {
			m.Vertices[a].Halfedge = hes[k]
		}
	}
	m.Faces[f].Halfedge = hes[0]
	return f
}

// FindHalfedge returns a live halfedge from a to b, if one exists, or
// None.
func (m *Mesh) FindHalfedge(a, b VertexID) HalfedgeID { return m.findHalfedge(a, b) }

// Adjacent reports whether a live halfedge connects a and b in either
// direction.
func (m *Mesh) Adjacent(a, b VertexID) bool {
	return m.findHalfedge(a, b) != HalfedgeID(None) || m.findHalfedge(b, a) != HalfedgeID(None)
}

// RemoveFaces marks every given face, and every halfedge bounding it, as
// free. An edge is freed only once both its halfedges are gone; if only
// one side is being removed, its surviving twin is disconnected (Twin
// set to None) so it becomes a boundary halfedge, ready to be matched
// against by a later AddFace call (e.g. filling the hole left behind).
func (m *Mesh) RemoveFaces(faces []FaceID) {
	removedHE := make(map[HalfedgeID]bool)
	for _, f := range faces {
		for _, he := range m.FaceHalfedges(f) {
			m.Halfedges[he].removed = true
			removedHE[he] = true
		}
		m.Faces[f].removed = true
	}
	for he := range removedHE {
		twin := m.Halfedges[he].Twin
		e := m.Halfedges[he].Edge
		switch {
		case twin != HalfedgeID(None) && removedHE[twin]:
			if e != EdgeID(None) {
				m.Edges[e].removed = true
			}
		case twin != HalfedgeID(None):
			m.Halfedges[twin].Twin = HalfedgeID(None)
			if e != EdgeID(None) {
				m.Edges[e].Halfedge = twin
			}
		}
	}
}

// findHalfedge returns a live halfedge from a to b, if one exists.
func (m *Mesh) findHalfedge(a, b VertexID) HalfedgeID {
	for i := range m.Halfedges {
		h := &m.Halfedges[i]
		if h.removed || h.Origin != a || h.Next == HalfedgeID(None) {
			continue
		}
		if m.Halfedges[h.Next].Origin == b {
			return HalfedgeID(i)
		}
	}
	return HalfedgeID(None)
}

// SplitHalfedge inserts a new vertex at position p in the middle of
// he's edge, splitting both he and its twin into two halfedges each.
// The new edge inherits line on the half nearer he's original
// destination; the half nearer he's origin keeps the original edge's
// line (both halves of a straight line carry the same supporting line,
// so this is purely bookkeeping, not a geometric approximation).
func (m *Mesh) SplitHalfedge(he HalfedgeID, p ipgeom.Point4) VertexID {
	v := m.AddVertex(p)
	m.Vertices[v].IsC0 = true

	twin := m.Halfedges[he].Twin
	origEdge := m.Halfedges[he].Edge
	line := m.Edges[origEdge].Line

	// new halfedge continuing from v to he's old destination
	heNew := m.addHalfedge(v)
	m.Halfedges[heNew].Face = m.Halfedges[he].Face
	m.Halfedges[heNew].Next = m.Halfedges[he].Next
	m.Halfedges[m.Halfedges[heNew].Next].Prev = heNew
	m.Halfedges[he].Next = heNew
	m.Halfedges[heNew].Prev = he

	// new halfedge continuing from v to twin's old destination
	twinNew := m.addHalfedge(v)
	m.Halfedges[twinNew].Face = m.Halfedges[twin].Face
	m.Halfedges[twinNew].Next = m.Halfedges[twin].Next
	m.Halfedges[m.Halfedges[twinNew].Next].Prev = twinNew
	m.Halfedges[twin].Next = twinNew
	m.Halfedges[twinNew].Prev = twin

	m.Halfedges[he].Twin = twinNew
	m.Halfedges[twinNew].Twin = he
	m.Halfedges[twin].Twin = heNew
	m.Halfedges[heNew].Twin = twin

	eNew := m.addEdge(line)
	m.Edges[eNew].Halfedge = he
	m.Halfedges[he].Edge = eNew
	m.Halfedges[twinNew].Edge = eNew

	m.Edges[origEdge].Halfedge = heNew
	m.Halfedges[heNew].Edge = origEdge
	m.Halfedges[twin].Edge = origEdge

	m.Vertices[v].Halfedge = heNew
	return v
}

// SplitFace adds a new edge from vFrom to vTo, both already on face f's
// boundary, dividing f into two faces. The two halves inherit f's
// supporting plane and input-face back-pointer; the new edge carries
// line.
func (m *Mesh) SplitFace(vFrom, vTo VertexID, f FaceID, line ipgeom.Line) (FaceID, FaceID) {
	heFrom := m.findHalfedgeOnFace(vFrom, f)
	heTo := m.findHalfedgeOnFace(vTo, f)

	a := m.addHalfedge(vFrom)
	b := m.addHalfedge(vTo)
	e := m.addEdge(line)
	m.Edges[e].Halfedge = a
	m.Halfedges[a].Edge = e
	m.Halfedges[b].Edge = e
	m.Halfedges[a].Twin = b
	m.Halfedges[b].Twin = a

	prevFrom := m.Halfedges[heFrom].Prev
	prevTo := m.Halfedges[heTo].Prev

	// a runs from vFrom into the loop ending at vTo; b runs the other way.
	m.Halfedges[a].Next = heTo
	m.Halfedges[heTo].Prev = a
	m.Halfedges[prevFrom].Next = a
	m.Halfedges[a].Prev = prevFrom

	m.Halfedges[b].Next = heFrom
	m.Halfedges[heFrom].Prev = b
	m.Halfedges[prevTo].Next = b
	m.Halfedges[b].Prev = prevTo

	plane := m.Faces[f].Plane
	inputFace := m.Faces[f].InputFace
	f2 := m.addFace(plane, inputFace)

	m.Faces[f].Halfedge = heTo
	m.Faces[f2].Halfedge = heFrom
	for _, he := range m.faceLoop(heFrom) {
		m.Halfedges[he].Face = f2
	}
	for _, he := range m.faceLoop(heTo) {
		m.Halfedges[he].Face = f
	}
	return f, f2
}

func (m *Mesh) faceLoop(start HalfedgeID) []HalfedgeID {
	var out []HalfedgeID
	he := start
	for {
		out = append(out, he)
		he = m.Halfedges[he].Next
		if he == start {
			break
		}
	}
	return out
}

func (m *Mesh) findHalfedgeOnFace(v VertexID, f FaceID) HalfedgeID {
	for _, he := range m.FaceHalfedges(f) {
		if m.Halfedges[he].Origin == v {
			return he
		}
	}
	return HalfedgeID(None)
}

// RemoveVertex marks v (and nothing else) free. Callers are responsible
// for having already disconnected incident halfedges/edges/faces.
func (m *Mesh) RemoveVertex(v VertexID) { m.Vertices[v].removed = true }
func (m *Mesh) RemoveFace(f FaceID)     { m.Faces[f].removed = true }
func (m *Mesh) RemoveEdge(e EdgeID)     { m.Edges[e].removed = true }
func (m *Mesh) RemoveHalfedge(he HalfedgeID) { m.Halfedges[he].removed = true }

func (m *Mesh) VertexRemoved(v VertexID) bool { return m.Vertices[v].removed }
func (m *Mesh) FaceRemoved(f FaceID) bool     { return m.Faces[f].removed }

// HalfedgeRemoved reports whether he has been marked free.
func (m *Mesh) HalfedgeRemoved(he HalfedgeID) bool { return m.Halfedges[he].removed }

// LiveVertexCount and LiveFaceCount report counts excluding removed
// (but not yet compacted) elements.
func (m *Mesh) LiveVertexCount() int {
	n := 0
	for _, v := range m.Vertices {
		if !v.removed {
			n++
		}
	}
	return n
}

func (m *Mesh) LiveFaceCount() int {
	n := 0
	for _, f := range m.Faces {
		if !f.removed {
			n++
		}
	}
	return n
}

// Compact rebuilds all four arenas excluding removed elements,
// remapping every handle. Must be called with a fully consistent mesh
// (no halfedge referencing a removed vertex, etc.) -- callers finish a
// deletion pass (faces, halfedges, edges, then vertices) before calling
// this.
func (m *Mesh) Compact() {
	vMap := make([]VertexID, len(m.Vertices))
	newVerts := make([]Vertex, 0, len(m.Vertices))
	for idx, v := range m.Vertices {
		if v.removed {
			vMap[idx] = VertexID(None)
			continue
		}
		vMap[idx] = VertexID(len(newVerts))
		newVerts = append(newVerts, v)
	}

	heMap := make([]HalfedgeID, len(m.Halfedges))
	newHEs := make([]Halfedge, 0, len(m.Halfedges))
	for idx, he := range m.Halfedges {
		if he.removed {
			heMap[idx] = HalfedgeID(None)
			continue
		}
		heMap[idx] = HalfedgeID(len(newHEs))
		newHEs = append(newHEs, he)
	}

	eMap := make([]EdgeID, len(m.Edges))
	newEdges := make([]Edge, 0, len(m.Edges))
	for idx, e := range m.Edges {
		if e.removed {
			eMap[idx] = EdgeID(None)
			continue
		}
		eMap[idx] = EdgeID(len(newEdges))
		newEdges = append(newEdges, e)
	}

	fMap := make([]FaceID, len(m.Faces))
	newFaces := make([]Face, 0, len(m.Faces))
	for idx, f := range m.Faces {
		if f.removed {
			fMap[idx] = FaceID(None)
			continue
		}
		fMap[idx] = FaceID(len(newFaces))
		newFaces = append(newFaces, f)
	}

	remapHE := func(h HalfedgeID) HalfedgeID {
		if h == HalfedgeID(None) {
			return HalfedgeID(None)
		}
		return heMap[h]
	}

	for i := range newHEs {
		newHEs[i].Origin = vMap[newHEs[i].Origin]
		newHEs[i].Twin = remapHE(newHEs[i].Twin)
		newHEs[i].Next = remapHE(newHEs[i].Next)
		newHEs[i].Prev = remapHE(newHEs[i].Prev)
		if newHEs[i].Face != FaceID(None) {
			newHEs[i].Face = fMap[newHEs[i].Face]
		}
		if newHEs[i].Edge != EdgeID(None) {
			newHEs[i].Edge = eMap[newHEs[i].Edge]
		}
	}
	for i := range newVerts {
		newVerts[i].Halfedge = remapHE(newVerts[i].Halfedge)
	}
	for i := range newEdges {
		newEdges[i].Halfedge = remapHE(newEdges[i].Halfedge)
	}
	for i := range newFaces {
		newFaces[i].Halfedge = remapHE(newFaces[i].Halfedge)
	}

	m.Vertices = newVerts
	m.Halfedges = newHEs
	m.Edges = newEdges
	m.Faces = newFaces
}

// ClearC0Marks resets every vertex's IsC0 flag, called once a plane cut
// has finished consuming them.
func (m *Mesh) ClearC0Marks() {
	for i := range m.Vertices {
		m.Vertices[i].IsC0 = false
	}
}
