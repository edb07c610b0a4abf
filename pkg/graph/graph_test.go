package graph

import "testing"

func TestNewDesignGraph(t *testing.T) {
	g := New()
	if g.Nodes == nil {
		t.Fatal("Nodes map should be initialized")
	}
	if g.NameIndex == nil {
		t.Fatal("NameIndex map should be initialized")
	}
	if g.Defaults.Units != "mm" {
		t.Errorf("default units = %q, want %q", g.Defaults.Units, "mm")
	}
	if g.NodeCount() != 0 {
		t.Errorf("empty graph should have 0 nodes, got %d", g.NodeCount())
	}
}

func TestAddNodeAndLookup(t *testing.T) {
	g := New()

	id := NewNodeID("box/crate")
	node := &Node{
		ID:   id,
		Kind: NodePrimitive,
		Name: "crate",
		Data: BoxData{
			PrimKind:   PrimBox,
			Dimensions: Vec3{400, 200, 19},
		},
	}
	g.AddNode(node)
	g.AddRoot(id)

	if g.NodeCount() != 1 {
		t.Errorf("node count = %d, want 1", g.NodeCount())
	}

	// Lookup by name
	found := g.Lookup("crate")
	if found == nil {
		t.Fatal("Lookup('crate') returned nil")
	}
	if found.ID != id {
		t.Errorf("lookup returned wrong node")
	}

	// MustLookup
	must := g.MustLookup("crate")
	if must.ID != id {
		t.Errorf("MustLookup returned wrong node")
	}

	// Lookup miss
	if g.Lookup("nonexistent") != nil {
		t.Error("Lookup should return nil for missing name")
	}

	// Get by ID
	got := g.Get(id)
	if got == nil || got.Name != "crate" {
		t.Errorf("Get by ID failed")
	}

	// Roots
	if len(g.Roots) != 1 || g.Roots[0] != id {
		t.Errorf("roots = %v, want [%s]", g.Roots, id.Short())
	}
}

func TestMustLookupPanics(t *testing.T) {
	g := New()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustLookup should panic on missing name")
		}
	}()
	g.MustLookup("missing")
}

func TestPartsAndBooleans(t *testing.T) {
	g := New()

	boxID := NewNodeID("box/a")
	cylID := NewNodeID("cylinder/b")
	diffID := NewNodeID("difference/a-b")

	g.AddNode(&Node{
		ID: boxID, Kind: NodePrimitive, Name: "a",
		Data: BoxData{PrimKind: PrimBox, Dimensions: Vec3{40, 20, 19}},
	})
	g.AddNode(&Node{
		ID: cylID, Kind: NodePrimitive, Name: "b",
		Data: CylinderData{PrimKind: PrimCylinder, Height: 30, Radius: 5},
	})
	g.AddNode(&Node{
		ID:       diffID,
		Kind:     NodeBoolean,
		Children: []NodeID{boxID, cylID},
		Data:     BooleanData{Kind: BooleanDifference},
	})

	parts := g.Parts()
	if len(parts) != 2 {
		t.Errorf("Parts() count = %d, want 2", len(parts))
	}
	booleans := g.Booleans()
	if len(booleans) != 1 {
		t.Errorf("Booleans() count = %d, want 1", len(booleans))
	}
}

func TestChildren(t *testing.T) {
	g := New()

	childID := NewNodeID("box/shelf")
	parentID := NewNodeID("part/bookcase")

	g.AddNode(&Node{
		ID: childID, Kind: NodePrimitive, Name: "shelf",
		Data: BoxData{PrimKind: PrimBox, Dimensions: Vec3{600, 300, 19}},
	})
	g.AddNode(&Node{
		ID: parentID, Kind: NodeGroup, Name: "bookcase",
		Children: []NodeID{childID},
		Data:     GroupData{},
	})

	parent := g.Get(parentID)
	children := g.Children(parent)
	if len(children) != 1 {
		t.Fatalf("Children count = %d, want 1", len(children))
	}
	if children[0].Name != "shelf" {
		t.Errorf("child name = %q, want %q", children[0].Name, "shelf")
	}
}

func TestNodeIDDeterministic(t *testing.T) {
	a := NewNodeID("box/front")
	b := NewNodeID("box/front")
	if a != b {
		t.Error("same path should produce same NodeID")
	}

	c := NewNodeID("box/back")
	if a == c {
		t.Error("different paths should produce different NodeIDs")
	}
}

func TestNodeIDZero(t *testing.T) {
	var id NodeID
	if !id.IsZero() {
		t.Error("zero-value NodeID should be zero")
	}
	id = NewNodeID("something")
	if id.IsZero() {
		t.Error("non-zero NodeID should not be zero")
	}
}

func TestVec3(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, want (5, 7, 9)", sum)
	}

	scaled := a.Scale(2)
	if scaled != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v, want (2, 4, 6)", scaled)
	}
}

func TestNodeDataInterface(t *testing.T) {
	// Verify all concrete types implement NodeData at compile time.
	var _ NodeData = BoxData{}
	var _ NodeData = CylinderData{}
	var _ NodeData = TransformData{}
	var _ NodeData = GroupData{}
	var _ NodeData = BooleanData{}
}

func TestStringers(t *testing.T) {
	if NodePrimitive.String() != "primitive" {
		t.Errorf("NodePrimitive.String() = %q", NodePrimitive.String())
	}
	if NodeBoolean.String() != "boolean" {
		t.Errorf("NodeBoolean.String() = %q", NodeBoolean.String())
	}
	if BooleanUnion.String() != "union" {
		t.Errorf("BooleanUnion.String() = %q", BooleanUnion.String())
	}
	if PrimCylinder.String() != "cylinder" {
		t.Errorf("PrimCylinder.String() = %q", PrimCylinder.String())
	}

	id := NewNodeID("test")
	if len(id.Short()) != 12 { // 6 bytes = 12 hex chars
		t.Errorf("Short() len = %d, want 12", len(id.Short()))
	}

	v := Vec3{1.5, 2.5, 3.5}
	if v.String() != "(1.5, 2.5, 3.5)" {
		t.Errorf("Vec3.String() = %q", v.String())
	}
}
