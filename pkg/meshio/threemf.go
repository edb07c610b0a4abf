package meshio

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/chazu/meshkernel/internal/ipgeom"
	"github.com/chazu/meshkernel/pkg/halfmesh"
	"github.com/chazu/meshkernel/pkg/meshkernel"
	"github.com/hpinc/go3mf"
)

// ThreeMFScale mirrors LoadOBJScale: 3MF vertex coordinates are floats
// in the model's declared unit (millimeters by default), quantized onto
// the same integer lattice the kernel's InputMesh requires.
const ThreeMFScale = 1024.0

// Load3MF decodes a 3MF package and flattens every mesh object that
// appears in the model's build (applying each build item's transform)
// into a single InputMesh, quantized by scale. 3MF allows a model to
// reference components recursively; this loader only follows one level
// of build-item -> object indirection, matching what Save3MF ever
// produces, since the kernel core itself has no notion of nested parts.
func Load3MF(r io.Reader, scale float64) (meshkernel.InputMesh, error) {
	if scale <= 0 {
		return meshkernel.InputMesh{}, fmt.Errorf("meshio: Load3MF scale must be positive, got %g", scale)
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return meshkernel.InputMesh{}, fmt.Errorf("meshio: reading 3MF stream: %w", err)
	}

	model := new(go3mf.Model)
	decoder := go3mf.NewDecoder(bytes.NewReader(buf), int64(len(buf)))
	if err := decoder.Decode(model); err != nil {
		return meshkernel.InputMesh{}, fmt.Errorf("meshio: decoding 3MF: %w", err)
	}

	objectsByID := make(map[uint32]*go3mf.Object, len(model.Resources.Objects))
	for _, obj := range model.Resources.Objects {
		objectsByID[obj.ID] = obj
	}

	var positions []ipgeom.Pos
	var faces [][]int

	for _, item := range model.Build.Items {
		obj, ok := objectsByID[item.ObjectID]
		if !ok || obj.Mesh == nil {
			continue
		}
		base := len(positions)
		for _, v := range obj.Mesh.Vertices.Vertex {
			x, y, z := transformPoint(item.Transform, v[0], v[1], v[2])
			positions = append(positions, ipgeom.Pos{
				X: int64(math.Round(float64(x) * scale)),
				Y: int64(math.Round(float64(y) * scale)),
				Z: int64(math.Round(float64(z) * scale)),
			})
		}
		for _, tri := range obj.Mesh.Triangles.Triangle {
			faces = append(faces, []int{
				base + int(tri.V1),
				base + int(tri.V2),
				base + int(tri.V3),
			})
		}
	}

	if len(positions) == 0 || len(faces) == 0 {
		return meshkernel.InputMesh{}, fmt.Errorf("meshio: 3MF package has no buildable mesh geometry")
	}
	return meshkernel.InputMesh{Positions: positions, Faces: faces}, nil
}

// transformPoint applies a 3MF build item's row-major 4x4 transform
// (stored flattened, translation in the last row per the 3MF spec) to a
// point; an empty (zero-value) transform is treated as identity.
func transformPoint(m go3mf.Matrix, x, y, z float32) (float32, float32, float32) {
	if m == (go3mf.Matrix{}) {
		return x, y, z
	}
	nx := m[0]*x + m[4]*y + m[8]*z + m[12]
	ny := m[1]*x + m[5]*y + m[9]*z + m[13]
	nz := m[2]*x + m[6]*y + m[10]*z + m[14]
	return nx, ny, nz
}

// Save3MF encodes a candidate polyhedron's live, triangulated faces as a
// single-object 3MF package, de-quantizing by 1/scale. Callers that want
// a minimal file (no stale removed elements) should call mesh.Compact()
// and meshkernel.Triangulate(mesh) first; Save3MF itself triangulates
// nothing, since a kernel face is convex and a consumer may prefer the
// untriangulated polygon (3MF triangle meshes require triangles, though,
// so a non-triangular face here is an error, not silently fanned).
func Save3MF(w io.Writer, mesh *halfmesh.Mesh, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("meshio: Save3MF scale must be positive, got %g", scale)
	}

	vertexIndex := make(map[halfmesh.VertexID]uint32)
	var verts []go3mf.Point3D
	for vi := range mesh.Vertices {
		v := halfmesh.VertexID(vi)
		if mesh.VertexRemoved(v) {
			continue
		}
		x, y, z, finite := mesh.Vertices[v].Position.Euclidean()
		if !finite {
			return fmt.Errorf("meshio: vertex %d has no finite Euclidean position", v)
		}
		vertexIndex[v] = uint32(len(verts))
		verts = append(verts, go3mf.Point3D{
			float32(x / scale), float32(y / scale), float32(z / scale),
		})
	}

	var tris []go3mf.Triangle
	for fi := range mesh.Faces {
		f := halfmesh.FaceID(fi)
		if mesh.FaceRemoved(f) {
			continue
		}
		loop := faceVertexLoopOBJ(mesh, f)
		if len(loop) != 3 {
			return fmt.Errorf("meshio: Save3MF requires a triangulated mesh, face %d has %d vertices", f, len(loop))
		}
		tris = append(tris, go3mf.Triangle{
			V1: vertexIndex[loop[0]],
			V2: vertexIndex[loop[1]],
			V3: vertexIndex[loop[2]],
		})
	}

	model := &go3mf.Model{
		Units:    go3mf.UnitMillimeter,
		Language: "en-US",
	}
	obj := &go3mf.Object{
		ID:   1,
		Name: "kernel",
		Mesh: &go3mf.Mesh{
			Vertices:  go3mf.Vertices{Vertex: verts},
			Triangles: go3mf.Triangles{Triangle: tris},
		},
	}
	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})

	encoder := go3mf.NewEncoder(w)
	if err := encoder.Encode(model); err != nil {
		return fmt.Errorf("meshio: encoding 3MF: %w", err)
	}
	return nil
}

// faceVertexLoopOBJ mirrors meshkernel's own internal faceVertexLoop
// (unexported there): the origin vertex of every halfedge bounding f,
// in face order.
func faceVertexLoopOBJ(mesh *halfmesh.Mesh, f halfmesh.FaceID) []halfmesh.VertexID {
	hes := mesh.FaceHalfedges(f)
	verts := make([]halfmesh.VertexID, len(hes))
	for i, he := range hes {
		verts[i] = mesh.Halfedges[he].Origin
	}
	return verts
}
