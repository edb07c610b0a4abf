package tessellate_test

import (
	"testing"

	"github.com/chazu/meshkernel/pkg/graph"
	"github.com/chazu/meshkernel/pkg/kernel"
	"github.com/chazu/meshkernel/pkg/kernel/sdfx"
	"github.com/chazu/meshkernel/pkg/tessellate"
)

// newKernel returns a fresh sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.New()
}

// makeBox creates a box primitive node with the given name and dimensions.
func makeBox(name string, x, y, z float64) *graph.Node {
	id := graph.NewNodeID(name)
	return &graph.Node{
		ID:   id,
		Kind: graph.NodePrimitive,
		Name: name,
		Data: graph.BoxData{
			PrimKind:   graph.PrimBox,
			Dimensions: graph.Vec3{X: x, Y: y, Z: z},
		},
	}
}

// makeCylinder creates a cylinder primitive node.
func makeCylinder(name string, height, radius float64) *graph.Node {
	id := graph.NewNodeID(name)
	return &graph.Node{
		ID:   id,
		Kind: graph.NodePrimitive,
		Name: name,
		Data: graph.CylinderData{
			PrimKind: graph.PrimCylinder,
			Height:   height,
			Radius:   radius,
		},
	}
}

// makeTranslate creates a transform node with a translation.
func makeTranslate(name string, tx, ty, tz float64, child graph.NodeID) *graph.Node {
	id := graph.NewNodeID(name)
	t := graph.Vec3{X: tx, Y: ty, Z: tz}
	return &graph.Node{
		ID:       id,
		Kind:     graph.NodeTransform,
		Name:     name,
		Children: []graph.NodeID{child},
		Data: graph.TransformData{
			Translation: &t,
		},
	}
}

// makeGroup creates a group node with children.
func makeGroup(name string, children ...graph.NodeID) *graph.Node {
	id := graph.NewNodeID(name)
	return &graph.Node{
		ID:       id,
		Kind:     graph.NodeGroup,
		Name:     name,
		Children: children,
		Data:     graph.GroupData{Description: name},
	}
}

// makeBoolean creates a boolean combination node over the given operands.
func makeBoolean(name string, kind graph.BooleanKind, operands ...graph.NodeID) *graph.Node {
	id := graph.NewNodeID(name)
	return &graph.Node{
		ID:       id,
		Kind:     graph.NodeBoolean,
		Name:     name,
		Children: operands,
		Data:     graph.BooleanData{Kind: kind},
	}
}

func TestSingleBox(t *testing.T) {
	k := newKernel()
	g := graph.New()

	box := makeBox("shelf", 600, 300, 18)
	g.AddNode(box)
	g.AddRoot(box.ID)

	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	m := meshes[0]
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if m.PartName != "shelf" {
		t.Errorf("expected PartName %q, got %q", "shelf", m.PartName)
	}
	if m.VertexCount() == 0 {
		t.Error("mesh should have vertices")
	}
	if m.TriangleCount() == 0 {
		t.Error("mesh should have triangles")
	}
}

func TestTwoRootSolids(t *testing.T) {
	k := newKernel()
	g := graph.New()

	side := makeBox("side-panel", 400, 300, 18)
	top := makeBox("top-panel", 600, 300, 18)
	g.AddNode(side)
	g.AddNode(top)
	g.AddRoot(side.ID)
	g.AddRoot(top.ID)

	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(meshes))
	}

	names := map[string]bool{}
	for _, m := range meshes {
		if m.IsEmpty() {
			t.Error("mesh should not be empty")
		}
		names[m.PartName] = true
	}

	if !names["side-panel"] {
		t.Error("missing mesh for side-panel")
	}
	if !names["top-panel"] {
		t.Error("missing mesh for top-panel")
	}
}

func TestSolidWithTransform(t *testing.T) {
	k := newKernel()
	g := graph.New()

	box := makeBox("shelf", 100, 50, 10)
	g.AddNode(box)

	translate := makeTranslate("translate-shelf", 200, 100, 50, box.ID)
	g.AddNode(translate)
	g.AddRoot(translate.ID)

	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	m := meshes[0]
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}

	// Box has min-corner at origin, so a 100x50x10 box translated by
	// (200,100,50) spans (200,100,50)-(300,150,60). Centroid should be
	// near (250, 125, 55).
	var cx, cy, cz float64
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		cx += float64(m.Vertices[i*3])
		cy += float64(m.Vertices[i*3+1])
		cz += float64(m.Vertices[i*3+2])
	}
	cx /= float64(n)
	cy /= float64(n)
	cz /= float64(n)

	// Use a generous tolerance since marching cubes is approximate.
	const tol = 20.0
	if abs(cx-250) > tol {
		t.Errorf("centroid X = %.1f, expected near 250", cx)
	}
	if abs(cy-125) > tol {
		t.Errorf("centroid Y = %.1f, expected near 125", cy)
	}
	if abs(cz-55) > tol {
		t.Errorf("centroid Z = %.1f, expected near 55", cz)
	}
}

func TestGroupOfMultipleSolids(t *testing.T) {
	k := newKernel()
	g := graph.New()

	left := makeBox("left-side", 400, 300, 18)
	right := makeBox("right-side", 400, 300, 18)
	top := makeBox("top", 600, 300, 18)
	g.AddNode(left)
	g.AddNode(right)
	g.AddNode(top)

	placeLeft := makeTranslate("place-left", 0, 0, 0, left.ID)
	placeRight := makeTranslate("place-right", 582, 0, 0, right.ID)
	placeTop := makeTranslate("place-top", 300, 400, 0, top.ID)
	g.AddNode(placeLeft)
	g.AddNode(placeRight)
	g.AddNode(placeTop)

	assembly := makeGroup("bookshelf", placeLeft.ID, placeRight.ID, placeTop.ID)
	g.AddNode(assembly)
	g.AddRoot(assembly.ID)

	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(meshes))
	}

	names := map[string]bool{}
	for _, m := range meshes {
		if m.IsEmpty() {
			t.Errorf("mesh %q should not be empty", m.PartName)
		}
		names[m.PartName] = true
	}

	for _, want := range []string{"left-side", "right-side", "top"} {
		if !names[want] {
			t.Errorf("missing mesh for %q", want)
		}
	}
}

func TestEmptyGraph(t *testing.T) {
	k := newKernel()
	g := graph.New()

	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 0 {
		t.Fatalf("expected 0 meshes, got %d", len(meshes))
	}
}

func TestBooleanDifferenceProducesSingleMesh(t *testing.T) {
	k := newKernel()
	g := graph.New()

	body := makeBox("body", 40, 40, 40)
	bore := makeCylinder("bore", 60, 5)
	g.AddNode(body)
	g.AddNode(bore)

	diff := makeBoolean("bracket", graph.BooleanDifference, body.ID, bore.ID)
	g.AddNode(diff)
	g.AddRoot(diff.ID)

	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh for the combined solid, got %d", len(meshes))
	}
	if meshes[0].IsEmpty() {
		t.Fatal("bracket mesh should not be empty")
	}
	if meshes[0].PartName != "bracket" {
		t.Errorf("expected PartName %q, got %q", "bracket", meshes[0].PartName)
	}
}

func TestBooleanUnionUnderGroup(t *testing.T) {
	k := newKernel()
	g := graph.New()

	a := makeBox("a", 20, 20, 20)
	b := makeCylinder("b", 30, 8)
	g.AddNode(a)
	g.AddNode(b)

	union := makeBoolean("combined", graph.BooleanUnion, a.ID, b.ID)
	g.AddNode(union)

	part := makeGroup("widget", union.ID)
	g.AddNode(part)
	g.AddRoot(part.ID)

	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	if meshes[0].IsEmpty() {
		t.Fatal("combined mesh should not be empty")
	}
}

func TestTransformedBooleanOperand(t *testing.T) {
	k := newKernel()
	g := graph.New()

	body := makeBox("body", 40, 20, 19)
	bore := makeCylinder("bore", 30, 5)
	g.AddNode(body)
	g.AddNode(bore)

	translatedBore := makeTranslate("translate-bore", 20, 10, 0, bore.ID)
	g.AddNode(translatedBore)

	diff := makeBoolean("bracket", graph.BooleanDifference, body.ID, translatedBore.ID)
	g.AddNode(diff)
	g.AddRoot(diff.ID)

	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	if meshes[0].IsEmpty() {
		t.Fatal("bracket mesh should not be empty")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
