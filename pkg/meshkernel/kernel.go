package meshkernel

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/chazu/meshkernel/internal/ipgeom"
	"github.com/chazu/meshkernel/pkg/halfmesh"
	"github.com/chazu/meshkernel/pkg/kdop"
	"github.com/chazu/meshkernel/pkg/seidel"
)

// Result is the outcome of Compute: the kernel mesh (when one exists),
// whether the input already was its own kernel, whether the output
// survived the optional closedness check, and the bookkeeping C6/C5
// accumulate along the way.
type Result struct {
	Mesh           *halfmesh.Mesh
	HasKernel      bool
	InputWasConvex bool
	Closed         bool
	Stats          Stats
}

// Compute runs the analyzer (C6) and, for non-convex input, the
// constructor (C5): start from the input's bounding cuboid and cut away
// a halfspace per cutting plane until every plane has been applied or
// the intersection has provably collapsed to nothing.
func Compute(input InputMesh, opts Options) (*Result, error) {
	start := time.Now()
	an, err := analyze(input, opts)
	if err != nil {
		return nil, err
	}

	stats := Stats{InputFaces: len(input.Faces), TotalPlanes: len(an.cuttingPlanes)}
	stats.ConvexEdges, stats.PlanarEdges, stats.ConcaveEdges, stats.BoundaryEdges, stats.DegenerateEdges = tallyEdgeStates(an)

	if an.isConvex {
		stats.IsConvex = true
		stats.KernelFaces = len(input.Faces)
		stats.ConvexContributionKernel = len(input.Faces)
		stats.Duration = time.Since(start)
		return &Result{
			Mesh:           buildMeshFromInput(input, an),
			HasKernel:      true,
			InputWasConvex: true,
			Closed:         true,
			Stats:          stats,
		}, nil
	}
	stats.NumberConcavePlanes = an.numConcavePlanes

	var solver *seidel.Solver
	solveDone := make(chan seidel.State, 1)
	if opts.UseSeidelSolver {
		solver = seidel.New(an.cuttingPlanes, rand.New(rand.NewSource(1)))
		if opts.ParallelFeasibility {
			go func() { solveDone <- solver.Solve() }()
		} else {
			solveDone <- solver.Solve()
		}
	}

	min, max := aabbOf(input.Positions)
	mesh := newCandidateCuboid(min, max)

	var bv *kdop.KDOP
	if opts.UseBoundingVolume {
		bv = kdop.New(opts.KDOPKind)
		bv.InitializeFromPositions(kdopPositionsConservative(mesh, allVertices(mesh)))
	}

	hasKernel := true
	feasibilityChecked := false
	sinceUpdate := 0

planeLoop:
	for i, plane := range an.cuttingPlanes {
		if opts.UseSeidelSolver && !feasibilityChecked {
			select {
			case state := <-solveDone:
				feasibilityChecked = true
				if state == seidel.Infeasible {
					stats.FeasibilityEarlyOut = true
					hasKernel = false
					break planeLoop
				}
			default:
			}
		}

		if bv != nil && !bv.Intersects(plane) {
			if opts.OnPlaneCut != nil {
				opts.OnPlaneCut(i, mesh)
			}
			continue
		}

		cut := newCutter(mesh, plane)
		startVertex := halfmesh.VertexID(len(mesh.Vertices) - 1)
		startHE, found := cut.descent(startVertex)

		if !found {
			// No halfedge straddles the plane: either the whole
			// candidate lies on its negative side (plane is
			// redundant) or entirely on its positive side (the
			// intersection is empty).
			if cut.classify(startVertex) <= 0 {
				if opts.OnPlaneCut != nil {
					opts.OnPlaneCut(i, mesh)
				}
				continue
			}
			hasKernel = false
			break planeLoop
		}

		if err := cut.marching(startHE, 4*len(mesh.Halfedges)+64); err != nil {
			return nil, &ErrMarchingOverrun{PlaneIndex: i}
		}

		properCut := cut.deleteC1Vertices()
		if !properCut {
			if opts.OnPlaneCut != nil {
				opts.OnPlaneCut(i, mesh)
			}
			continue
		}
		cut.fillCutHole(an.cuttingPlaneFaces[i])

		sinceUpdate++
		if bv != nil {
			handles, positions := kdopPositionsConservative(mesh, cut.c0Vertices)
			alive := liveVertexSet(mesh)
			bv.Update(handles, positions, alive)
			if opts.MaxKDOPUpdateInterval > 0 && sinceUpdate >= opts.MaxKDOPUpdateInterval {
				live := make([]halfmesh.VertexID, 0, len(alive))
				for v := range alive {
					live = append(live, halfmesh.VertexID(v))
				}
				bv.InitializeFromPositions(kdopPositionsConservative(mesh, live))
				sinceUpdate = 0
			}
		}

		if opts.OnPlaneCut != nil {
			opts.OnPlaneCut(i, mesh)
		}
	}

	if solver != nil {
		solver.Stop()
	}

	if !hasKernel {
		mesh = halfmesh.New()
	} else {
		mesh.Compact()
	}

	if opts.TriangulateOutput && hasKernel {
		Triangulate(mesh)
	}

	closed := true
	if hasKernel && opts.VerifyClosedOutput {
		closed = isClosed(mesh)
		if !closed {
			log.Printf("meshkernel: result mesh is not closed after %d cutting planes", len(an.cuttingPlanes))
		}
	}

	if hasKernel {
		stats.KernelFaces = mesh.LiveFaceCount()
		for fi := range mesh.Faces {
			f := halfmesh.FaceID(fi)
			if mesh.FaceRemoved(f) {
				continue
			}
			if faceIsConcaveContribution(input, an, mesh.Faces[fi].InputFace) {
				stats.ConcaveContributionKernel++
			} else {
				stats.ConvexContributionKernel++
			}
		}
	}

	stats.Duration = time.Since(start)
	return &Result{Mesh: mesh, HasKernel: hasKernel, InputWasConvex: false, Closed: closed, Stats: stats}, nil
}

// buildMeshFromInput builds a mesh directly from the input's own faces
// and planes, used on the convexity fast path where the kernel equals
// the input.
func buildMeshFromInput(input InputMesh, an *analysis) *halfmesh.Mesh {
	m := halfmesh.New()
	verts := make([]halfmesh.VertexID, len(input.Positions))
	for i, p := range input.Positions {
		verts[i] = m.AddVertex(ipgeom.FromPos(p))
	}
	lineFor := func(a, b halfmesh.VertexID) ipgeom.Line {
		return edgeLineFromSegment(input.Positions[a], input.Positions[b])
	}
	for fi, face := range input.Faces {
		faceVerts := make([]halfmesh.VertexID, len(face))
		for j, idx := range face {
			faceVerts[j] = verts[idx]
		}
		m.AddFace(faceVerts, an.facePlanes[fi], fi, lineFor)
	}
	return m
}

// faceIsConcaveContribution reports whether a kernel face's generating
// input face (or the plane it was built from, for inputFace < 0, i.e.
// the initial cuboid's own sides) sits on a non-convex edge of the
// input -- used only to bucket Stats.ConcaveContributionKernel versus
// Stats.ConvexContributionKernel.
func faceIsConcaveContribution(input InputMesh, an *analysis, inputFace int) bool {
	if inputFace < 0 || inputFace >= len(input.Faces) {
		return false
	}
	face := input.Faces[inputFace]
	n := len(face)
	for i := 0; i < n; i++ {
		k := makeEdgeKey(face[i], face[(i+1)%n])
		if an.edgeStates[k].IsNonConvex() {
			return true
		}
	}
	return false
}

func allVertices(mesh *halfmesh.Mesh) []halfmesh.VertexID {
	out := make([]halfmesh.VertexID, len(mesh.Vertices))
	for i := range mesh.Vertices {
		out[i] = halfmesh.VertexID(i)
	}
	return out
}

// liveVertexSet reports, for every vertex handle in mesh, whether it is
// still present -- the "alive" map kdop.Update needs to tell a stale
// witness from a current one.
func liveVertexSet(mesh *halfmesh.Mesh) map[int]bool {
	out := make(map[int]bool, len(mesh.Vertices))
	for i := range mesh.Vertices {
		if !mesh.VertexRemoved(halfmesh.VertexID(i)) {
			out[i] = true
		}
	}
	return out
}

// kdopPositionsConservative doubles each vertex into a floor-rounded and
// a ceil-rounded integer position so the k-DOP's bound -- which only
// ever widens towards whichever duplicate is more extreme -- stays a
// superset of the vertex's true (possibly non-integer) rational
// position, not just its nearest-integer approximation.
func kdopPositionsConservative(mesh *halfmesh.Mesh, ids []halfmesh.VertexID) ([]int, []ipgeom.Pos) {
	handles := make([]int, 0, len(ids)*2)
	positions := make([]ipgeom.Pos, 0, len(ids)*2)
	for _, v := range ids {
		vx := &mesh.Vertices[v]
		floorP := ipgeom.Pos{X: int64(math.Floor(vx.DX)), Y: int64(math.Floor(vx.DY)), Z: int64(math.Floor(vx.DZ))}
		ceilP := ipgeom.Pos{X: int64(math.Ceil(vx.DX)), Y: int64(math.Ceil(vx.DY)), Z: int64(math.Ceil(vx.DZ))}
		handles = append(handles, int(v), int(v))
		positions = append(positions, floorP, ceilP)
	}
	return handles, positions
}
