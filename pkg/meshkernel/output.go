package meshkernel

import "github.com/chazu/meshkernel/pkg/halfmesh"

// faceVertexLoop returns the origin vertex of every halfedge bounding f,
// in loop order.
func faceVertexLoop(mesh *halfmesh.Mesh, f halfmesh.FaceID) []halfmesh.VertexID {
	hes := mesh.FaceHalfedges(f)
	verts := make([]halfmesh.VertexID, len(hes))
	for i, he := range hes {
		verts[i] = mesh.Halfedges[he].Origin
	}
	return verts
}

// Triangulate fan-triangulates every live face of mesh in place, naively
// from its first vertex. It does not check the face is convex: a
// concave output face (which the kernel constructor never produces,
// since every cut plane removes exactly the strictly-positive side)
// would triangulate incorrectly, but a legitimate kernel face never hits
// that case.
func Triangulate(mesh *halfmesh.Mesh) {
	n := len(mesh.Faces)
	for fi := 0; fi < n; fi++ {
		f := halfmesh.FaceID(fi)
		if mesh.FaceRemoved(f) {
			continue
		}
		triangulateFace(mesh, f)
	}
}

func triangulateFace(mesh *halfmesh.Mesh, f halfmesh.FaceID) {
	for {
		verts := faceVertexLoop(mesh, f)
		if len(verts) <= 3 {
			return
		}
		v0, v2 := verts[0], verts[2]
		line := edgeLineFromSegment(approxPos(mesh, v0), approxPos(mesh, v2))
		fa, fb := mesh.SplitFace(v0, v2, f, line)
		if len(mesh.FaceHalfedges(fa)) > 3 {
			f = fa
		} else {
			f = fb
		}
	}
}

// isClosed reports whether every live halfedge has a live twin, the
// definition of a closed (boundaryless) manifold surface.
func isClosed(mesh *halfmesh.Mesh) bool {
	for hi := range mesh.Halfedges {
		he := halfmesh.HalfedgeID(hi)
		if mesh.HalfedgeRemoved(he) {
			continue
		}
		twin := mesh.Halfedges[he].Twin
		if twin == halfmesh.HalfedgeID(halfmesh.None) || mesh.HalfedgeRemoved(twin) {
			return false
		}
	}
	return true
}
