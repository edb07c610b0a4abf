// Package quantize bridges the kernel's bounded-integer world and the
// floating-point triangle meshes the rest of the scene pipeline produces.
// It has no teacher analog: the teacher's kernel backends (sdfx/manifold)
// consume and produce float geometry throughout, so nothing in the
// original pipeline ever needed to cross an exact/inexact boundary.
package quantize

import (
	"fmt"
	"math"

	"github.com/chazu/meshkernel/internal/ipgeom"
	"github.com/chazu/meshkernel/pkg/halfmesh"
	"github.com/chazu/meshkernel/pkg/kernel"
	"github.com/chazu/meshkernel/pkg/meshkernel"
)

// Scale records the mapping applied by Quantize, so Dequantize can map a
// kernel result's exact coordinates back to the same working units.
type Scale struct {
	Factor float64 // integer coordinate = round(float coordinate * Factor)
}

// DefaultPrecision is the grid resolution used when the caller has no
// opinion on quantization error: 1024 integer units per working unit.
const DefaultPrecision = 1024.0

// Quantize converts a triangle mesh in floating-point working units into
// the bounded-integer InputMesh the kernel operates on. Every vertex is
// scaled by factor and rounded to the nearest lattice point; degenerate
// or duplicate triangles produced by the rounding are left for the
// kernel's own analysis pass to detect, not filtered here.
func Quantize(m *kernel.Mesh, factor float64) (meshkernel.InputMesh, Scale, error) {
	if factor <= 0 {
		return meshkernel.InputMesh{}, Scale{}, fmt.Errorf("quantize: factor must be positive, got %g", factor)
	}
	if m.TriangleCount() == 0 {
		return meshkernel.InputMesh{}, Scale{}, fmt.Errorf("quantize: mesh has no triangles")
	}

	n := m.VertexCount()
	positions := make([]ipgeom.Pos, n)
	for i := 0; i < n; i++ {
		positions[i] = ipgeom.Pos{
			X: int64(math.Round(float64(m.Vertices[i*3]) * factor)),
			Y: int64(math.Round(float64(m.Vertices[i*3+1]) * factor)),
			Z: int64(math.Round(float64(m.Vertices[i*3+2]) * factor)),
		}
	}

	faces := make([][]int, m.TriangleCount())
	for i := range faces {
		faces[i] = []int{
			int(m.Indices[i*3]),
			int(m.Indices[i*3+1]),
			int(m.Indices[i*3+2]),
		}
	}

	return meshkernel.InputMesh{Positions: positions, Faces: faces}, Scale{Factor: factor}, nil
}

// Dequantize triangulates a kernel result mesh in place and maps its
// vertex positions back to the working units Quantize started from,
// producing a renderable kernel.Mesh.
func Dequantize(mesh *halfmesh.Mesh, scale Scale, partName string) (*kernel.Mesh, error) {
	if scale.Factor <= 0 {
		return nil, fmt.Errorf("dequantize: scale factor must be positive, got %g", scale.Factor)
	}

	meshkernel.Triangulate(mesh)

	out := &kernel.Mesh{PartName: partName}
	vertexIndex := make(map[halfmesh.VertexID]uint32)

	addVertex := func(v halfmesh.VertexID) (uint32, error) {
		if idx, ok := vertexIndex[v]; ok {
			return idx, nil
		}
		x, y, z, finite := mesh.Vertices[v].Position.Euclidean()
		if !finite {
			return 0, fmt.Errorf("dequantize: vertex %d has no finite Euclidean position", v)
		}
		idx := uint32(len(out.Vertices) / 3)
		out.Vertices = append(out.Vertices,
			float32(x/scale.Factor), float32(y/scale.Factor), float32(z/scale.Factor))
		vertexIndex[v] = idx
		return idx, nil
	}

	for i := range mesh.Faces {
		f := halfmesh.FaceID(i)
		if mesh.FaceRemoved(f) {
			continue
		}
		loop := faceVertexLoop(mesh, f)
		if len(loop) != 3 {
			return nil, fmt.Errorf("dequantize: face %d has %d vertices after triangulation, want 3", f, len(loop))
		}
		for _, v := range loop {
			idx, err := addVertex(v)
			if err != nil {
				return nil, err
			}
			out.Indices = append(out.Indices, idx)
		}
	}

	out.Normals = make([]float32, len(out.Vertices))
	return out, nil
}

// faceVertexLoop walks a face's halfedge ring and returns its vertices in
// face order.
func faceVertexLoop(mesh *halfmesh.Mesh, f halfmesh.FaceID) []halfmesh.VertexID {
	halfedges := mesh.FaceHalfedges(f)
	loop := make([]halfmesh.VertexID, len(halfedges))
	for i, he := range halfedges {
		loop[i] = mesh.Dest(mesh.Halfedges[mesh.Halfedges[he].Prev].Twin)
	}
	return loop
}
