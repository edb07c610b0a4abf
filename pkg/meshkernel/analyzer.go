package meshkernel

import (
	"math/big"
	"sync"

	"github.com/chazu/meshkernel/internal/ipgeom"
	"github.com/samber/lo"
)

// analysis is the result of running C6 (the input analyzer) over an
// InputMesh: one plane per face (invalid for degenerate faces), one
// state per edge, and the ordered cutting-plane list consumed by the
// kernel constructor.
type analysis struct {
	facePlanes     []ipgeom.Plane
	facePlaneValid []bool
	edgeStates     map[edgeKey]EdgeState

	cuttingPlanes     []ipgeom.Plane
	cuttingPlaneFaces []int
	numConcavePlanes  int

	isConvex bool
}

type edgeKey struct{ a, b int } // a < b

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type occurrence struct {
	face     int
	from, to int
}

func analyze(input InputMesh, opts Options) (*analysis, error) {
	if len(input.Faces) == 0 {
		return nil, ErrDegenerateInput
	}

	an := &analysis{
		edgeStates: make(map[edgeKey]EdgeState),
	}
	an.facePlanes = make([]ipgeom.Plane, len(input.Faces))
	an.facePlaneValid = make([]bool, len(input.Faces))

	computeFacePlane := func(fi int) {
		face := input.Faces[fi]
		if len(face) < 3 {
			return
		}
		p0, p1, p2 := input.Positions[face[0]], input.Positions[face[1]], input.Positions[face[2]]
		var pl ipgeom.Plane
		var ok bool
		if opts.UseHashSetForPlanes {
			pl, ok = ipgeom.PlaneFromPoints(p0, p1, p2)
		} else {
			pl, ok = ipgeom.PlaneFromPointsNoGCD(p0, p1, p2)
		}
		an.facePlanes[fi] = pl
		an.facePlaneValid[fi] = ok
	}
	runIndexed(len(input.Faces), opts.MinFacesForParallelSetup, computeFacePlane)

	anyValid := false
	for _, ok := range an.facePlaneValid {
		if ok {
			anyValid = true
			break
		}
	}
	if !anyValid {
		return nil, ErrDegenerateInput
	}

	occurrences := make(map[edgeKey][]occurrence)
	for fi, face := range input.Faces {
		n := len(face)
		for i := 0; i < n; i++ {
			a, b := face[i], face[(i+1)%n]
			k := makeEdgeKey(a, b)
			occurrences[k] = append(occurrences[k], occurrence{face: fi, from: a, to: b})
		}
	}

	for k, occs := range occurrences {
		an.edgeStates[k] = classifyEdge(input, an, occs)
	}

	an.isConvex = true
	for _, st := range an.edgeStates {
		if st != EdgeConvex && st != EdgePlanar {
			an.isConvex = false
			break
		}
	}

	if an.isConvex {
		return an, nil
	}

	if opts.UseHashSetForPlanes {
		buildCuttingPlanesHashSet(input, an)
	} else {
		buildCuttingPlanesFloodFill(input, an)
	}
	return an, nil
}

func classifyEdge(input InputMesh, an *analysis, occs []occurrence) EdgeState {
	if len(occs) != 2 {
		if len(occs) == 1 {
			return EdgeBoundary
		}
		return EdgeDegenerate
	}
	o0, o1 := occs[0], occs[1]
	if o0.from != o1.to || o0.to != o1.from {
		return EdgeDegenerate
	}

	faceA, faceB := o0.face, o1.face
	if !an.facePlaneValid[faceA] || !an.facePlaneValid[faceB] {
		return EdgeDegenerate
	}
	planeA, planeB := an.facePlanes[faceA], an.facePlanes[faceB]

	oppVertex := nextVertexInFace(input.Faces[faceB], o0.from)
	c := ipgeom.ClassifyPos(input.Positions[oppVertex], planeA)
	switch c {
	case -1:
		return EdgeConvex
	case 1:
		return EdgeConcave
	default:
		if dotNormals(planeA, planeB).Sign() > 0 {
			return EdgePlanar
		}
		return EdgeConcave
	}
}

// dotNormals returns the (exact) dot product of two planes' normals,
// used to tell a genuinely coplanar edge (dot > 0, normals agree) from
// a knife-edge fold where an opposite vertex happens to land exactly on
// the plane (dot <= 0).
func dotNormals(a, b ipgeom.Plane) *big.Int {
	sum := new(big.Int)
	sum.Add(sum, new(big.Int).Mul(a.A, b.A))
	sum.Add(sum, new(big.Int).Mul(a.B, b.B))
	sum.Add(sum, new(big.Int).Mul(a.C, b.C))
	return sum
}

// tallyEdgeStates counts an.edgeStates by EdgeState, for Stats'
// per-edge-state breakdown.
func tallyEdgeStates(an *analysis) (convex, planar, concave, boundary, degenerate int) {
	for _, st := range an.edgeStates {
		switch st {
		case EdgeConvex:
			convex++
		case EdgePlanar:
			planar++
		case EdgeConcave:
			concave++
		case EdgeBoundary:
			boundary++
		case EdgeDegenerate:
			degenerate++
		}
	}
	return
}

func nextVertexInFace(face []int, v int) int {
	for i, x := range face {
		if x == v {
			return face[(i+1)%len(face)]
		}
	}
	return v
}

func buildCuttingPlanesHashSet(input InputMesh, an *analysis) {
	type key struct{ a, b, c, d string }
	seen := make(map[key]bool)

	hasNonConvexEdge := func(fi int) bool {
		face := input.Faces[fi]
		n := len(face)
		for i := 0; i < n; i++ {
			k := makeEdgeKey(face[i], face[(i+1)%n])
			if an.edgeStates[k].IsNonConvex() {
				return true
			}
		}
		return false
	}

	var concaveFaces, convexFaces []int
	for fi := range input.Faces {
		if !an.facePlaneValid[fi] {
			continue
		}
		pl := an.facePlanes[fi]
		k := key{pl.A.String(), pl.B.String(), pl.C.String(), pl.D.String()}
		if seen[k] {
			continue
		}
		seen[k] = true
		if hasNonConvexEdge(fi) {
			concaveFaces = append(concaveFaces, fi)
		} else {
			convexFaces = append(convexFaces, fi)
		}
	}

	an.numConcavePlanes = len(concaveFaces)
	for _, fi := range lo.Flatten([][]int{concaveFaces, convexFaces}) {
		an.cuttingPlanes = append(an.cuttingPlanes, an.facePlanes[fi])
		an.cuttingPlaneFaces = append(an.cuttingPlaneFaces, fi)
	}
}

func buildCuttingPlanesFloodFill(input InputMesh, an *analysis) {
	uf := newUnionFind(len(input.Faces))

	occurrences := make(map[edgeKey][]int)
	for fi, face := range input.Faces {
		n := len(face)
		for i := 0; i < n; i++ {
			k := makeEdgeKey(face[i], face[(i+1)%n])
			occurrences[k] = append(occurrences[k], fi)
		}
	}
	for k, st := range an.edgeStates {
		if st != EdgePlanar {
			continue
		}
		faces := occurrences[k]
		if len(faces) == 2 {
			uf.union(faces[0], faces[1])
		}
	}

	visited := make([]bool, len(input.Faces))
	var addIfUnvisited = func(rep int, out *[]int) {
		if visited[rep] {
			return
		}
		visited[rep] = true
		if an.facePlaneValid[rep] {
			*out = append(*out, rep)
		}
	}

	var concaveReps []int
	for k, faces := range occurrences {
		st := an.edgeStates[k]
		if st == EdgeConvex || st == EdgePlanar || len(faces) != 2 {
			continue
		}
		repA, repB := uf.find(faces[0]), uf.find(faces[1])
		addIfUnvisited(repA, &concaveReps)
		addIfUnvisited(repB, &concaveReps)
	}
	an.numConcavePlanes = len(concaveReps)

	var convexReps []int
	for fi := range input.Faces {
		rep := uf.find(fi)
		addIfUnvisited(rep, &convexReps)
	}

	for _, fi := range concaveReps {
		an.cuttingPlanes = append(an.cuttingPlanes, an.facePlanes[fi])
		an.cuttingPlaneFaces = append(an.cuttingPlaneFaces, fi)
	}
	for _, fi := range convexReps {
		an.cuttingPlanes = append(an.cuttingPlanes, an.facePlanes[fi])
		an.cuttingPlaneFaces = append(an.cuttingPlaneFaces, fi)
	}
}

// unionFind is a small path-compressing disjoint-set structure; no
// library in the retrieved pack offers one, so it is hand-rolled.
type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// runIndexed runs fn(i) for i in [0,n), spread across a goroutine pool
// when n exceeds threshold, and serially otherwise.
func runIndexed(n, threshold int, fn func(i int)) {
	if n <= threshold || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	workers := 8
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
