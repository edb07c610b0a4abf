package meshkernel

import (
	"testing"

	"github.com/chazu/meshkernel/internal/ipgeom"
	"github.com/chazu/meshkernel/pkg/halfmesh"
)

// unitCube returns the 8-vertex, 12-triangle unit cube, every face wound
// CCW as viewed from outside so PlaneFromPoints' (p1-p0)x(p2-p0) normal
// points out of the solid.
func unitCube() InputMesh {
	positions := []ipgeom.Pos{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	faces := [][]int{
		{0, 3, 2}, {0, 2, 1}, // bottom, -Z
		{4, 5, 6}, {4, 6, 7}, // top, +Z
		{0, 1, 5}, {0, 5, 4}, // front, -Y
		{3, 7, 6}, {3, 6, 2}, // back, +Y
		{0, 4, 7}, {0, 7, 3}, // left, -X
		{1, 2, 6}, {1, 6, 5}, // right, +X
	}
	return InputMesh{Positions: positions, Faces: faces}
}

// tetrahedron returns a 4-vertex, 4-face tetrahedron, every face wound
// CCW as viewed from outside.
func tetrahedron() InputMesh {
	positions := []ipgeom.Pos{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
	}
	faces := [][]int{
		{0, 2, 1}, // base, z=0
		{0, 1, 3}, // y=0
		{0, 3, 2}, // x=0
		{1, 2, 3}, // slanted
	}
	return InputMesh{Positions: positions, Faces: faces}
}

// triangularPrismWithDegenerateFace returns a triangular prism (5
// planes: 2 triangular caps, 3 rectangular sides, triangulated into 8
// proper triangles) plus one extra collinear "sliver" triangle through
// the midpoint of one bottom edge, matching spec.md section 8 scenario
// 5: a degenerate face that contributes no cutting plane, whose
// presence alone must force the non-convex (full cutting) code path
// even though the underlying solid is convex.
func triangularPrismWithDegenerateFace() InputMesh {
	positions := []ipgeom.Pos{
		{X: 0, Y: 0, Z: 0}, // 0
		{X: 2, Y: 0, Z: 0}, // 1
		{X: 0, Y: 2, Z: 0}, // 2
		{X: 0, Y: 0, Z: 1}, // 3
		{X: 2, Y: 0, Z: 1}, // 4
		{X: 0, Y: 2, Z: 1}, // 5
		{X: 1, Y: 0, Z: 0}, // 6: midpoint of edge 0-1, collinear
	}
	faces := [][]int{
		{0, 2, 1},    // bottom cap, -Z
		{3, 4, 5},    // top cap, +Z
		{0, 1, 4}, {0, 4, 3}, // side A (y=0)
		{1, 2, 5}, {1, 5, 4}, // side B (hypotenuse)
		{2, 0, 3}, {2, 3, 5}, // side C (x=0)
		{0, 6, 1}, // degenerate: 0, 6, 1 are collinear
	}
	return InputMesh{Positions: positions, Faces: faces}
}

func TestUnitCubeIsItsOwnKernel(t *testing.T) {
	result, err := Compute(unitCube(), DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !result.InputWasConvex {
		t.Fatal("expected the unit cube to take the convex short-circuit")
	}
	if !result.HasKernel {
		t.Fatal("expected the unit cube's kernel to be itself")
	}
	if got := result.Mesh.LiveVertexCount(); got != 8 {
		t.Errorf("vertex count = %d, want 8", got)
	}
	if got := result.Mesh.LiveFaceCount(); got != 12 {
		t.Errorf("face count = %d, want 12", got)
	}
	assertVertexFinite(t, result.Mesh)
	assertFacePlaneInvariant(t, result.Mesh)
}

func TestTetrahedronConvexShortCircuit(t *testing.T) {
	result, err := Compute(tetrahedron(), DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !result.InputWasConvex {
		t.Fatal("expected the tetrahedron to take the convex short-circuit")
	}
	if !result.HasKernel {
		t.Fatal("expected a nonempty kernel")
	}
	if got := result.Mesh.LiveVertexCount(); got != 4 {
		t.Errorf("vertex count = %d, want 4", got)
	}
	if got := result.Mesh.LiveFaceCount(); got != 4 {
		t.Errorf("face count = %d, want 4", got)
	}
	assertVertexFinite(t, result.Mesh)
	assertFacePlaneInvariant(t, result.Mesh)
}

func TestDegenerateFaceForcesFullCuttingButKernelMatchesPrism(t *testing.T) {
	result, err := Compute(triangularPrismWithDegenerateFace(), DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.InputWasConvex {
		t.Fatal("a collinear degenerate face's boundary edges must disqualify the convex short-circuit")
	}
	if !result.HasKernel {
		t.Fatal("expected the prism's kernel to be nonempty (it is itself convex)")
	}
	if !result.Closed {
		t.Error("expected the kernel mesh to be closed")
	}
	// 2 triangular caps + 3 quadrilateral sides = 5 supporting planes,
	// each surviving as exactly one kernel face since the constructor
	// never pre-triangulates its own cuts.
	if got := result.Mesh.LiveFaceCount(); got != 5 {
		t.Errorf("kernel face count = %d, want 5", got)
	}
	if got := result.Mesh.LiveVertexCount(); got != 6 {
		t.Errorf("kernel vertex count = %d, want 6", got)
	}
	if result.Stats.TotalPlanes != 5 {
		t.Errorf("TotalPlanes = %d, want 5 (the degenerate face must not contribute a cutting plane)", result.Stats.TotalPlanes)
	}
	assertVertexFinite(t, result.Mesh)
	assertFacePlaneInvariant(t, result.Mesh)
}

func TestComputeRejectsEmptyInput(t *testing.T) {
	_, err := Compute(InputMesh{}, DefaultOptions())
	if err != ErrDegenerateInput {
		t.Errorf("Compute(empty) error = %v, want ErrDegenerateInput", err)
	}
}

func TestTranslationInvariance(t *testing.T) {
	base := triangularPrismWithDegenerateFace()
	shift := ipgeom.Vec{X: 5, Y: -3, Z: 7}

	shifted := InputMesh{Faces: base.Faces, Positions: make([]ipgeom.Pos, len(base.Positions))}
	for i, p := range base.Positions {
		shifted.Positions[i] = p.Add(shift)
	}

	r0, err := Compute(base, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute(base): %v", err)
	}
	r1, err := Compute(shifted, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute(shifted): %v", err)
	}

	if r0.HasKernel != r1.HasKernel {
		t.Fatalf("HasKernel mismatch: base=%v shifted=%v", r0.HasKernel, r1.HasKernel)
	}
	if r0.Mesh.LiveVertexCount() != r1.Mesh.LiveVertexCount() {
		t.Errorf("vertex count mismatch: base=%d shifted=%d", r0.Mesh.LiveVertexCount(), r1.Mesh.LiveVertexCount())
	}
	if r0.Mesh.LiveFaceCount() != r1.Mesh.LiveFaceCount() {
		t.Errorf("face count mismatch: base=%d shifted=%d", r0.Mesh.LiveFaceCount(), r1.Mesh.LiveFaceCount())
	}
}

// assertVertexFinite checks invariant 2: every returned vertex has W!=0.
func assertVertexFinite(t *testing.T, mesh *halfmesh.Mesh) {
	t.Helper()
	for vi := range mesh.Vertices {
		v := halfmesh.VertexID(vi)
		if mesh.VertexRemoved(v) {
			continue
		}
		if !mesh.Vertices[v].Position.IsValid() {
			t.Errorf("vertex %d has W=0 (invalid homogeneous point)", v)
		}
	}
}

// assertFacePlaneInvariant checks invariant 3: every face's own
// vertices classify <= 0 against that face's supporting plane.
func assertFacePlaneInvariant(t *testing.T, mesh *halfmesh.Mesh) {
	t.Helper()
	for fi := range mesh.Faces {
		f := halfmesh.FaceID(fi)
		if mesh.FaceRemoved(f) {
			continue
		}
		plane := mesh.Faces[fi].Plane
		for _, he := range mesh.FaceHalfedges(f) {
			v := mesh.Halfedges[he].Origin
			if c := ipgeom.Classify(mesh.Vertices[v].Position, plane); c > 0 {
				t.Errorf("face %d vertex %d classifies %d against its own plane, want <= 0", f, v, c)
			}
		}
	}
}
