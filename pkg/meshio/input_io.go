package meshio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chazu/meshkernel/pkg/meshkernel"
	"github.com/hpinc/go3mf"
)

// SaveOBJInput writes an InputMesh (not yet run through the kernel, so
// no exact homogeneous coordinates exist to de-quantize) directly as an
// OBJ stream, de-quantizing by 1/scale -- the inverse of LoadOBJ. Used
// by the "convert" CLI subcommand to round-trip a mesh between formats
// without ever constructing face planes or running the analyzer.
func SaveOBJInput(w io.Writer, input meshkernel.InputMesh, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("meshio: SaveOBJInput scale must be positive, got %g", scale)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# produced by meshkernel")
	for _, p := range input.Positions {
		if _, err := fmt.Fprintf(bw, "v %.9g %.9g %.9g\n",
			float64(p.X)/scale, float64(p.Y)/scale, float64(p.Z)/scale); err != nil {
			return err
		}
	}
	for _, face := range input.Faces {
		bw.WriteString("f")
		for _, idx := range face {
			fmt.Fprintf(bw, " %d", idx+1)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Save3MFInput is Save3MF's InputMesh counterpart: every face must
// already be a triangle (3MF meshes are triangle-only), matching
// Save3MF's own requirement.
func Save3MFInput(w io.Writer, input meshkernel.InputMesh, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("meshio: Save3MFInput scale must be positive, got %g", scale)
	}

	verts := make([]go3mf.Point3D, len(input.Positions))
	for i, p := range input.Positions {
		verts[i] = go3mf.Point3D{
			float32(float64(p.X) / scale),
			float32(float64(p.Y) / scale),
			float32(float64(p.Z) / scale),
		}
	}

	tris := make([]go3mf.Triangle, 0, len(input.Faces))
	for _, face := range input.Faces {
		if len(face) != 3 {
			return fmt.Errorf("meshio: Save3MFInput requires a triangulated mesh, face has %d vertices", len(face))
		}
		tris = append(tris, go3mf.Triangle{
			V1: uint32(face[0]), V2: uint32(face[1]), V3: uint32(face[2]),
		})
	}

	model := &go3mf.Model{Units: go3mf.UnitMillimeter, Language: "en-US"}
	obj := &go3mf.Object{
		ID:   1,
		Name: "mesh",
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

// TriangulateInput fan-triangulates every face of input in place,
// naively from each face's first vertex -- the InputMesh-level
// counterpart to meshkernel.Triangulate, needed because Save3MFInput
// cannot accept a polygon face and the convert subcommand never builds
// a halfmesh.Mesh (and so can't call meshkernel.Triangulate) for a plain
// format conversion.
func TriangulateInput(input meshkernel.InputMesh) meshkernel.InputMesh {
	out := meshkernel.InputMesh{Positions: input.Positions}
	for _, face := range input.Faces {
		if len(face) <= 3 {
			out.Faces = append(out.Faces, face)
			continue
		}
		for i := 1; i < len(face)-1; i++ {
			out.Faces = append(out.Faces, []int{face[0], face[i], face[i+1]})
		}
	}
	return out
}
