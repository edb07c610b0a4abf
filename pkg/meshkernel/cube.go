package meshkernel

import (
	"github.com/chazu/meshkernel/internal/ipgeom"
	"github.com/chazu/meshkernel/pkg/halfmesh"
)

// aabbOf returns the bounding box of a position list. Callers must pass
// a non-empty slice.
func aabbOf(positions []ipgeom.Pos) (min, max ipgeom.Pos) {
	min, max = positions[0], positions[0]
	for _, p := range positions[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return
}

// newCandidateCuboid builds the starting candidate polyhedron: the
// axis-aligned box bounding the input, which contains the kernel
// (intersection of halfspaces, each of which already contains the input
// polyhedron, which in turn sits inside its own bounding box).
func newCandidateCuboid(min, max ipgeom.Pos) *halfmesh.Mesh {
	corner := func(x, y, z int64) ipgeom.Pos {
		px, py, pz := min.X, min.Y, min.Z
		if x != 0 {
			px = max.X
		}
		if y != 0 {
			py = max.Y
		}
		if z != 0 {
			pz = max.Z
		}
		return ipgeom.Pos{X: px, Y: py, Z: pz}
	}

	positions := []ipgeom.Pos{
		corner(0, 0, 0), corner(1, 0, 0), corner(1, 1, 0), corner(0, 1, 0),
		corner(0, 0, 1), corner(1, 0, 1), corner(1, 1, 1), corner(0, 1, 1),
	}

	m := halfmesh.New()
	verts := make([]halfmesh.VertexID, len(positions))
	for i, p := range positions {
		verts[i] = m.AddVertex(ipgeom.FromPos(p))
	}

	lineFor := func(a, b halfmesh.VertexID) ipgeom.Line {
		return edgeLineFromSegment(positions[a], positions[b])
	}

	loops := [][]int{
		{0, 3, 2, 1}, // bottom, -Z
		{4, 5, 6, 7}, // top, +Z
		{0, 1, 5, 4}, // front, -Y
		{3, 7, 6, 2}, // back, +Y
		{0, 4, 7, 3}, // left, -X
		{1, 2, 6, 5}, // right, +X
	}
	normals := []ipgeom.Vec{
		{Z: -1}, {Z: 1}, {Y: -1}, {Y: 1}, {X: -1}, {X: 1},
	}
	anchors := []ipgeom.Pos{min, max, min, max, min, max}

	for i, loop := range loops {
		verticesForFace := make([]halfmesh.VertexID, len(loop))
		for j, idx := range loop {
			verticesForFace[j] = verts[idx]
		}
		plane := ipgeom.PlaneFromPosNormal(anchors[i], normals[i])
		m.AddFace(verticesForFace, plane, -1, lineFor)
	}
	return m
}

func crossVec(a, b ipgeom.Vec) ipgeom.Vec {
	return ipgeom.Vec{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// edgeLineFromSegment builds the exact Plücker line through a straight
// integer segment by intersecting two planes that both contain it, each
// formed from the segment direction crossed with a coordinate axis --
// the same construction the candidate polyhedron's initial cuboid edges
// and every axis-aligned cut afterwards both need.
func edgeLineFromSegment(p0, p1 ipgeom.Pos) ipgeom.Line {
	d := p1.Sub(p0)
	var planeA, planeB ipgeom.Plane
	switch {
	case d.X != 0:
		planeA = ipgeom.PlaneFromPosNormal(p0, crossVec(d, ipgeom.Vec{Y: 1}))
		planeB = ipgeom.PlaneFromPosNormal(p0, crossVec(d, ipgeom.Vec{Z: 1}))
	case d.Y != 0:
		planeA = ipgeom.PlaneFromPosNormal(p0, crossVec(d, ipgeom.Vec{Z: 1}))
		planeB = ipgeom.PlaneFromPosNormal(p0, crossVec(d, ipgeom.Vec{X: 1}))
	default:
		planeA = ipgeom.PlaneFromPosNormal(p0, crossVec(d, ipgeom.Vec{X: 1}))
		planeB = ipgeom.PlaneFromPosNormal(p0, crossVec(d, ipgeom.Vec{Y: 1}))
	}
	return ipgeom.IntersectPlanes(planeA, planeB)
}
