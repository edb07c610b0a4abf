// Package tessellate walks a design graph and produces triangle meshes
// using a geometry kernel. One mesh is produced per part.
package tessellate

import (
	"fmt"

	"github.com/chazu/meshkernel/pkg/graph"
	"github.com/chazu/meshkernel/pkg/kernel"
)

// transformStack accumulates spatial transforms during graph traversal.
type transformStack struct {
	translations []graph.Vec3
	rotations    []graph.Vec3
}

func newTransformStack() *transformStack {
	return &transformStack{}
}

func (ts *transformStack) pushTranslation(v graph.Vec3) {
	ts.translations = append(ts.translations, v)
}

func (ts *transformStack) pushRotation(v graph.Vec3) {
	ts.rotations = append(ts.rotations, v)
}

func (ts *transformStack) pop() {
	if len(ts.translations) > 0 {
		ts.translations = ts.translations[:len(ts.translations)-1]
	}
	if len(ts.rotations) > 0 {
		ts.rotations = ts.rotations[:len(ts.rotations)-1]
	}
}

// accumulatedTranslation returns the sum of all translations on the stack.
func (ts *transformStack) accumulatedTranslation() graph.Vec3 {
	var sum graph.Vec3
	for _, t := range ts.translations {
		sum = sum.Add(t)
	}
	return sum
}

// accumulatedRotation returns the sum of all rotations on the stack.
func (ts *transformStack) accumulatedRotation() graph.Vec3 {
	var sum graph.Vec3
	for _, r := range ts.rotations {
		sum = sum.Add(r)
	}
	return sum
}

// Tessellate walks the design graph and produces one triangle mesh per
// solid (a primitive, or a transform/boolean subtree composed into one
// solid) using the provided geometry kernel. The tessellator is
// read-only and never mutates the graph.
func Tessellate(g *graph.DesignGraph, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	ts := newTransformStack()

	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := walkNode(g, k, root, ts)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
		meshes = append(meshes, collected...)
	}

	return meshes, nil
}

// walkNode recursively traverses a node and its children, collecting one
// mesh per maximal primitive/transform/boolean subtree. A boolean node is
// never itself decomposed into multiple meshes: its whole operand tree is
// first composed into a single kernel.Solid via buildSolid, then
// materialized once.
func walkNode(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) ([]*kernel.Mesh, error) {
	switch n.Kind {
	case graph.NodePrimitive, graph.NodeBoolean:
		return materializeSolid(g, k, n, ts)

	case graph.NodeTransform:
		return handleTransform(g, k, n, ts)

	case graph.NodeGroup:
		return handleGroup(g, k, n, ts)

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// materializeSolid builds a single kernel.Solid for n's entire subtree and
// converts it to one named mesh.
func materializeSolid(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) ([]*kernel.Mesh, error) {
	solid, err := buildSolid(g, k, n, ts)
	if err != nil {
		return nil, err
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for node %s: %w", n.ID.Short(), err)
	}

	// Set the part name: prefer the node's Name, fall back to short ID.
	if n.Name != "" {
		mesh.PartName = n.Name
	} else {
		mesh.PartName = n.ID.Short()
	}

	return []*kernel.Mesh{mesh}, nil
}

// buildSolid recursively composes a kernel.Solid from a primitive,
// transform, or boolean subtree. It does not handle NodeGroup: groups are
// mesh-level constructs and may not appear inside a boolean operand.
func buildSolid(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) (kernel.Solid, error) {
	switch n.Kind {
	case graph.NodePrimitive:
		return buildPrimitiveSolid(k, n, ts)

	case graph.NodeTransform:
		return buildTransformSolid(g, k, n, ts)

	case graph.NodeBoolean:
		return buildBooleanSolid(g, k, n, ts)

	default:
		return nil, fmt.Errorf("node %s of kind %s cannot appear inside a solid-producing subtree", n.ID.Short(), n.Kind)
	}
}

// buildPrimitiveSolid creates geometry for a primitive node and applies any
// transform currently accumulated on the stack.
func buildPrimitiveSolid(k kernel.Kernel, n *graph.Node, ts *transformStack) (kernel.Solid, error) {
	var solid kernel.Solid

	switch data := n.Data.(type) {
	case graph.BoxData:
		solid = k.Box(data.Dimensions.X, data.Dimensions.Y, data.Dimensions.Z)
	case graph.CylinderData:
		segments := data.Segments
		if segments < 3 {
			segments = 32
		}
		solid = k.Cylinder(data.Height, data.Radius, segments)
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}

	// Apply accumulated rotation first, then translation.
	rot := ts.accumulatedRotation()
	if rot.X != 0 || rot.Y != 0 || rot.Z != 0 {
		solid = k.Rotate(solid, rot.X, rot.Y, rot.Z)
	}

	trans := ts.accumulatedTranslation()
	if trans.X != 0 || trans.Y != 0 || trans.Z != 0 {
		solid = k.Translate(solid, trans.X, trans.Y, trans.Z)
	}

	return solid, nil
}

// buildTransformSolid pushes a transform node's translation/rotation onto
// the stack, builds its single child's solid, then pops.
func buildTransformSolid(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) (kernel.Solid, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	if len(n.Children) != 1 {
		return nil, fmt.Errorf("transform node %s must have exactly 1 child, got %d", n.ID.Short(), len(n.Children))
	}

	translation := graph.Vec3{}
	rotation := graph.Vec3{}
	if td.Translation != nil {
		translation = *td.Translation
	}
	if td.Rotation != nil {
		rotation = *td.Rotation
	}
	ts.pushTranslation(translation)
	ts.pushRotation(rotation)
	defer ts.pop()

	child := g.Get(n.Children[0])
	if child == nil {
		return nil, fmt.Errorf("transform node %s references missing child %s", n.ID.Short(), n.Children[0].Short())
	}
	return buildSolid(g, k, child, ts)
}

// buildBooleanSolid composes a boolean node's operands, in order, into a
// single solid. For BooleanDifference the first operand is the base and
// every later operand is subtracted from it.
func buildBooleanSolid(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) (kernel.Solid, error) {
	bd, ok := n.Data.(graph.BooleanData)
	if !ok {
		return nil, fmt.Errorf("boolean node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	if len(n.Children) < 2 {
		return nil, fmt.Errorf("boolean node %s requires at least 2 operands, got %d", n.ID.Short(), len(n.Children))
	}

	operands := make([]kernel.Solid, 0, len(n.Children))
	for _, childID := range n.Children {
		childNode := g.Get(childID)
		if childNode == nil {
			return nil, fmt.Errorf("boolean node %s references missing operand %s", n.ID.Short(), childID.Short())
		}
		operand, err := buildSolid(g, k, childNode, ts)
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}

	switch bd.Kind {
	case graph.BooleanUnion:
		result := operands[0]
		for _, s := range operands[1:] {
			result = k.Union(result, s)
		}
		return result, nil

	case graph.BooleanDifference:
		result := operands[0]
		for _, s := range operands[1:] {
			result = k.Difference(result, s)
		}
		return result, nil

	case graph.BooleanIntersection:
		result := operands[0]
		for _, s := range operands[1:] {
			result = k.Intersection(result, s)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("boolean node %s has unknown kind %s", n.ID.Short(), bd.Kind)
	}
}

// handleTransform pushes the transform, recurses into children, then pops.
func handleTransform(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) ([]*kernel.Mesh, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	// Push transform onto the stack.
	translation := graph.Vec3{}
	rotation := graph.Vec3{}
	if td.Translation != nil {
		translation = *td.Translation
	}
	if td.Rotation != nil {
		rotation = *td.Rotation
	}
	ts.pushTranslation(translation)
	ts.pushRotation(rotation)

	var meshes []*kernel.Mesh
	for _, child := range g.Children(n) {
		collected, err := walkNode(g, k, child, ts)
		if err != nil {
			ts.pop()
			return nil, err
		}
		meshes = append(meshes, collected...)
	}

	ts.pop()
	return meshes, nil
}

// handleGroup recurses into children transparently.
func handleGroup(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for _, child := range g.Children(n) {
		collected, err := walkNode(g, k, child, ts)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}
